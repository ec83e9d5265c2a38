package device

import "github.com/cwbudde/algo-spmv/internal/wavefront"

// Kernel is the per-lane body of a launch.
type Kernel func(l *Lane)

// Lane is one worker of a launch.
//
// All lanes of a wavefront share the same Row. A Lane must not be retained
// after the kernel returns.
type Lane struct {
	// Row is the wavefront index, i.e. the logical row this lane works on.
	Row int

	// ID is the lane index within the wavefront, in [0, Width).
	ID int

	// Width is the wavefront width (the launch VecWidth).
	Width int

	// Group is the work-group index.
	Group int

	// LocalID is the worker index within the work group.
	LocalID int

	partial []complex64
	barrier *wavefront.Barrier
}

// Sync blocks until every lane of this wavefront has called Sync.
func (l *Lane) Sync() {
	l.barrier.Wait()
}

// Reduce publishes sum as this lane's partial result and runs the tree
// reduction over the wavefront. Every lane of the wavefront must call it.
// The returned total is only valid on lane 0.
func (l *Lane) Reduce(sum complex64) complex64 {
	l.partial[l.ID] = sum

	return wavefront.Reduce(l.ID, l.partial, l.Sync)
}
