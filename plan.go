package algospmv

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-spmv/device"
	"github.com/cwbudde/algo-spmv/internal/cmath"
	"github.com/cwbudde/algo-spmv/internal/cpu"
)

// Plan is a reusable multiply y = A*x for one matrix and launch configuration.
//
// All validation happens in NewPlan; Multiply only checks slice lengths
// before launching. A Plan holds no mutable state and may be used by
// several goroutines at once as long as each call writes its own output.
type Plan struct {
	m        Matrix
	strategy Strategy
	channels int
	geom     device.Geometry
	backend  device.Backend
}

// NewPlan validates opts against m and resolves defaults.
//
// Returns ErrNilMatrix if m is nil.
// Returns ErrUnsupportedStrategy if the batched strategy is requested for a
// format other than KroneckerELL.
// Returns ErrInvalidChannels for Channels < 0, or Channels > 1 outside the batched strategy.
// Returns ErrInvalidVecWidth if VecWidth is not a power of two up to
// device.MaxVecWidth, or VecWidth > 1 with the scalar strategy.
// Returns ErrInvalidGroupSize if GroupSize is not a multiple of VecWidth or
// Groups does not cover every row.
func NewPlan(m Matrix, opts PlanOptions) (*Plan, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}

	channels := opts.Channels
	if channels == 0 {
		channels = 1
	}

	if channels < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, opts.Channels)
	}

	strategy := resolveStrategy(m, opts.Strategy, channels)

	switch strategy {
	case StrategyBatched:
		if m.Format() != FormatKroneckerELL {
			return nil, fmt.Errorf("%w: %s with %s", ErrUnsupportedStrategy, strategy, m.Format())
		}
	case StrategyScalar, StrategyVector:
		if channels != 1 {
			return nil, fmt.Errorf("%w: %d channels need the batched strategy, got %s",
				ErrInvalidChannels, channels, strategy)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStrategy, strategy)
	}

	vecWidth, err := resolveVecWidth(m, strategy, opts.VecWidth)
	if err != nil {
		return nil, err
	}

	groupSize := opts.GroupSize
	if groupSize == 0 {
		groupSize = max(DefaultGroupSize, vecWidth)
	}

	if groupSize < vecWidth || groupSize%vecWidth != 0 {
		return nil, fmt.Errorf("%w: group size %d, vector width %d", ErrInvalidGroupSize, groupSize, vecWidth)
	}

	rows := m.Rows() * channels

	geom, err := device.GeometryFor(rows, groupSize, vecWidth)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGroupSize, err)
	}

	if opts.Groups != 0 {
		if opts.Groups < geom.Groups {
			return nil, fmt.Errorf("%w: %d groups of %d rows cannot cover %d rows",
				ErrInvalidGroupSize, opts.Groups, geom.WavefrontsPerGroup(), rows)
		}

		geom.Groups = opts.Groups
	}

	backend := opts.Backend
	if backend == nil {
		backend = device.Current()
	}

	if !backend.Available() {
		return nil, fmt.Errorf("%w: %s", device.ErrBackendUnavailable, backend.Info().Name)
	}

	return &Plan{
		m:        m,
		strategy: strategy,
		channels: channels,
		geom:     geom,
		backend:  backend,
	}, nil
}

func resolveStrategy(m Matrix, requested Strategy, channels int) Strategy {
	if requested == StrategyAuto {
		requested = CurrentStrategy()
	}

	if requested != StrategyAuto {
		return requested
	}

	switch {
	case channels > 1:
		return StrategyBatched
	case m.rowLen() >= autoVectorRowLen:
		return StrategyVector
	default:
		return StrategyScalar
	}
}

func resolveVecWidth(m Matrix, strategy Strategy, requested int) (int, error) {
	if strategy == StrategyScalar {
		if requested > 1 || requested < 0 {
			return 0, fmt.Errorf("%w: scalar strategy with width %d", ErrInvalidVecWidth, requested)
		}

		return 1, nil
	}

	if requested == 0 {
		return defaultVecWidth(m), nil
	}

	if !cmath.IsPowerOf2(requested) || requested > device.MaxVecWidth {
		return 0, fmt.Errorf("%w: %d is not a power of two in [1,%d]",
			ErrInvalidVecWidth, requested, device.MaxVecWidth)
	}

	return requested, nil
}

// defaultVecWidth consults the tuning table first, then sizes the width to
// the host vector registers without exceeding the row length.
func defaultVecWidth(m Matrix) int {
	rowLen := m.rowLen()

	if w, ok := DefaultTuning.Lookup(m.Format(), rowLen); ok {
		return w
	}

	w := cpu.DetectFeatures().PreferredVecWidth()
	for w > 1 && w > rowLen {
		w /= 2
	}

	return w
}

// Matrix returns the operator the plan multiplies by.
func (p *Plan) Matrix() Matrix { return p.m }

// Strategy returns the resolved strategy.
func (p *Plan) Strategy() Strategy { return p.strategy }

// VecWidth returns the lanes per row (1 for the scalar strategy).
func (p *Plan) VecWidth() int { return p.geom.VecWidth }

// GroupSize returns the workers per group.
func (p *Plan) GroupSize() int { return p.geom.GroupSize }

// Groups returns the number of groups launched per multiply.
func (p *Plan) Groups() int { return p.geom.Groups }

// Geometry returns the launch geometry.
func (p *Plan) Geometry() device.Geometry { return p.geom }

// Channels returns the number of interleaved channels.
func (p *Plan) Channels() int { return p.channels }

// InLen returns the number of input elements read: Cols*Channels.
func (p *Plan) InLen() int { return p.m.Cols() * p.channels }

// OutLen returns the number of output elements written: Rows*Channels.
func (p *Plan) OutLen() int { return p.m.Rows() * p.channels }

// Len returns OutLen.
func (p *Plan) Len() int { return p.OutLen() }

// Multiply computes out = A*vec, overwriting out[:OutLen()].
//
// Returns ErrNilSlice if out or vec is nil.
// Returns ErrLengthMismatch if len(out) < OutLen() or len(vec) < InLen().
// Elements of out beyond OutLen() are never written.
func (p *Plan) Multiply(out, vec []complex64) error {
	return p.MultiplyContext(context.Background(), out, vec)
}

// MultiplyContext is Multiply with cancellation. Cancellation is observed
// between work groups; on error the contents of out are unspecified.
func (p *Plan) MultiplyContext(ctx context.Context, out, vec []complex64) error {
	if p == nil {
		return ErrNilMatrix
	}

	if out == nil || vec == nil {
		return ErrNilSlice
	}

	if len(out) < p.OutLen() || len(vec) < p.InLen() {
		return fmt.Errorf("%w: out %d (need %d), vec %d (need %d)",
			ErrLengthMismatch, len(out), p.OutLen(), len(vec), p.InLen())
	}

	reps := 0
	if p.strategy == StrategyBatched {
		reps = p.channels
	}

	return p.backend.Launch(ctx, p.geom, p.m.kernel(vec, out, reps))
}
