package device

import "errors"

var (
	// ErrBackendUnavailable is returned when the backend is registered but not available
	// on the current system (e.g., no device, driver missing).
	ErrBackendUnavailable = errors.New("device: backend unavailable")

	// ErrInvalidGeometry is returned for launch geometries that cannot be executed:
	// non-positive sizes, a non-power-of-two vector width, or a group size
	// that is not a multiple of the vector width.
	ErrInvalidGeometry = errors.New("device: invalid launch geometry")

	// ErrNilKernel is returned when Launch is called without a kernel.
	ErrNilKernel = errors.New("device: nil kernel")
)
