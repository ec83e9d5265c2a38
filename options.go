package algospmv

import (
	"sync/atomic"

	"github.com/cwbudde/algo-spmv/device"
)

// DefaultGroupSize is the number of workers per group when
// PlanOptions.GroupSize is zero and the vector width is not larger.
const DefaultGroupSize = 64

// autoVectorRowLen is the row length from which StrategyAuto prefers
// cooperating lanes over one worker per row.
const autoVectorRowLen = 16

// PlanOptions controls plan creation. The zero value is valid.
type PlanOptions struct {
	// Strategy selects the worker mapping. StrategyAuto defers to the
	// process default (SetStrategy) and then to a shape heuristic.
	Strategy Strategy

	// VecWidth is the number of lanes per row for the vector and batched
	// strategies (a power of two). Zero picks a width from the tuning table
	// or the host CPU. The scalar strategy only accepts 0 or 1.
	VecWidth int

	// GroupSize is the number of workers per group; it must be a multiple of
	// VecWidth. Zero selects max(DefaultGroupSize, VecWidth).
	GroupSize int

	// Groups overrides the number of groups launched. Zero launches just
	// enough groups to cover every row. Surplus groups do no work.
	Groups int

	// Channels is the number of interleaved data channels sharing one
	// Kronecker stencil (batched strategy only). Zero means one.
	Channels int

	// Backend executes the plan. Nil uses device.Current().
	Backend device.Backend
}

var defaultStrategy atomic.Uint32

// SetStrategy sets the process-wide strategy used when PlanOptions.Strategy
// is StrategyAuto. Plans already created are not affected.
func SetStrategy(s Strategy) {
	defaultStrategy.Store(uint32(s))
}

// CurrentStrategy returns the process-wide default strategy.
func CurrentStrategy() Strategy {
	return Strategy(defaultStrategy.Load())
}
