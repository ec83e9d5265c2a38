package device

import (
	"context"
	"sync"
)

// Backend is implemented by execution backends.
// It is responsible for device discovery and kernel execution.
type Backend interface {
	Info() BackendInfo
	Available() bool
	Devices() ([]DeviceInfo, error)
	// Launch runs kernel once per worker of geom and returns when every
	// worker has finished. Lanes of one wavefront run concurrently.
	Launch(ctx context.Context, geom Geometry, kernel Kernel) error
}

var (
	backendMu sync.RWMutex
	backend   Backend = NewCPUBackend(0)
)

// RegisterBackend registers the process-wide backend.
// Passing nil restores the default CPU backend.
func RegisterBackend(b Backend) {
	if b == nil {
		b = NewCPUBackend(0)
	}

	backendMu.Lock()
	backend = b
	backendMu.Unlock()
}

// CurrentBackendInfo reports the currently registered backend.
func CurrentBackendInfo() BackendInfo {
	return Current().Info()
}

// Current returns the registered backend.
func Current() Backend {
	backendMu.RLock()
	b := backend
	backendMu.RUnlock()

	return b
}
