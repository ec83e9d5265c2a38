//go:build opencl

package device

import "context"

// OpenCLBackend is a stub backend enabled with the "opencl" build tag.
// It reports itself unavailable; plans fall back to an error at construction.
type OpenCLBackend struct{}

func (b *OpenCLBackend) Info() BackendInfo {
	return BackendInfo{
		Name:        "opencl",
		Version:     "stub",
		Description: "OpenCL backend stub (no implementation)",
	}
}

func (b *OpenCLBackend) Available() bool {
	return false
}

func (b *OpenCLBackend) Devices() ([]DeviceInfo, error) {
	return nil, ErrBackendUnavailable
}

func (b *OpenCLBackend) Launch(_ context.Context, _ Geometry, _ Kernel) error {
	return ErrBackendUnavailable
}

// RegisterOpenCLBackend registers the OpenCL backend stub.
func RegisterOpenCLBackend() {
	RegisterBackend(&OpenCLBackend{})
}
