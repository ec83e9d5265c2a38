package algospmv

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-spmv/device"
)

// Format tags the sparse storage layout of a Matrix.
type Format uint8

const (
	FormatCSR Format = iota
	FormatELL
	FormatKroneckerELL
)

// String returns a short name for the format.
func (f Format) String() string {
	switch f {
	case FormatCSR:
		return "csr"
	case FormatELL:
		return "ell"
	case FormatKroneckerELL:
		return "pell"
	default:
		return "unknown"
	}
}

// Strategy selects how rows are mapped onto workers.
type Strategy uint8

const (
	// StrategyAuto picks a strategy from the matrix shape and options.
	StrategyAuto Strategy = iota
	// StrategyScalar assigns one worker per row and sums taps in order.
	StrategyScalar
	// StrategyVector assigns VecWidth cooperating lanes per row.
	StrategyVector
	// StrategyBatched is the channel-interleaved Kronecker multiply.
	StrategyBatched
)

// String returns a short name for the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyScalar:
		return "scalar"
	case StrategyVector:
		return "vector"
	case StrategyBatched:
		return "batched"
	default:
		return "unknown"
	}
}

// ParseStrategy parses the names produced by Strategy.String.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return StrategyAuto, nil
	case "scalar":
		return StrategyScalar, nil
	case "vector":
		return StrategyVector, nil
	case "batched":
		return StrategyBatched, nil
	default:
		return StrategyAuto, fmt.Errorf("%w: unknown strategy %q", ErrUnsupportedStrategy, name)
	}
}

// Matrix is a validated, immutable sparse operator.
// It is implemented by *CSRMatrix, *ELLMatrix and *KroneckerELL.
type Matrix interface {
	Format() Format
	// Rows returns the number of output rows (samples for Kronecker stencils).
	Rows() int
	// Cols returns the length of the input vector for one channel.
	Cols() int

	// rowLen returns the typical number of taps per row.
	rowLen() int
	// kernel binds the tables to vec and out. reps > 0 selects the
	// channel-interleaved kernel with that many channels.
	kernel(vec, out []complex64, reps int) device.Kernel
}
