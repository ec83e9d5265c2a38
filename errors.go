package algospmv

import "errors"

// Sentinel errors returned by matrix construction and plan execution.
// Construction errors are wrapped with the offending row or index; match
// them with errors.Is.
var (
	// ErrInvalidShape is returned for negative row or column counts, or
	// shapes whose element count overflows the index type.
	ErrInvalidShape = errors.New("algospmv: invalid matrix shape")

	// ErrInvalidDelimiters is returned when CSR row delimiters do not start
	// at zero or decrease.
	ErrInvalidDelimiters = errors.New("algospmv: invalid row delimiters")

	// ErrColumnOutOfRange is returned when a stored or decoded column index
	// does not address the input vector.
	ErrColumnOutOfRange = errors.New("algospmv: column index out of range")

	// ErrInvalidStencil is returned for inconsistent Kronecker stencil
	// parameters (Jd, mesh index) or tables.
	ErrInvalidStencil = errors.New("algospmv: invalid Kronecker stencil")

	// ErrNilSlice is returned when a nil slice is passed to a multiply.
	ErrNilSlice = errors.New("algospmv: nil slice")

	// ErrNilMatrix is returned when NewPlan receives a nil matrix.
	ErrNilMatrix = errors.New("algospmv: nil matrix")

	// ErrLengthMismatch is returned when table or vector lengths don't match
	// the matrix dimensions.
	ErrLengthMismatch = errors.New("algospmv: slice length mismatch")

	// ErrInvalidVecWidth is returned when a vector width is not a power of two,
	// exceeds the device maximum, or is combined with the scalar strategy.
	ErrInvalidVecWidth = errors.New("algospmv: invalid vector width")

	// ErrInvalidGroupSize is returned when the group size is not a multiple of
	// the vector width or the group count does not cover every row.
	ErrInvalidGroupSize = errors.New("algospmv: invalid group size")

	// ErrInvalidChannels is returned for a channel count below one, or more
	// than one channel outside the batched strategy.
	ErrInvalidChannels = errors.New("algospmv: invalid channel count")

	// ErrInvalidStride is returned when a channel stride is invalid for the
	// given data layout.
	ErrInvalidStride = errors.New("algospmv: invalid stride")

	// ErrUnknownFormat is returned when a format name cannot be parsed.
	ErrUnknownFormat = errors.New("algospmv: unknown format")

	// ErrUnsupportedStrategy is returned when a strategy is not available for
	// the matrix format.
	ErrUnsupportedStrategy = errors.New("algospmv: strategy not supported for format")
)
