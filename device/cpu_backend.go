package device

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-spmv/internal/cpu"
	"github.com/cwbudde/algo-spmv/internal/wavefront"
)

// CPUBackend executes launches on the host with goroutines.
//
// Work groups are scheduled through an errgroup bounded by the concurrency
// limit. Inside a group every wavefront owns its own barrier and lane
// scratch; lanes of a wavefront wider than one run as goroutines so they can
// meet at the barrier. Cancellation is checked before each group starts,
// never while a row is in flight.
type CPUBackend struct {
	device      DeviceInfo
	concurrency int
}

// NewCPUBackend returns a CPU backend running at most concurrency groups at
// once. concurrency <= 0 uses GOMAXPROCS.
func NewCPUBackend(concurrency int) *CPUBackend {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	return &CPUBackend{
		device: DeviceInfo{
			Name:         "cpu",
			Vendor:       runtime.GOARCH,
			Driver:       "goroutines",
			ComputeUnits: concurrency,
			ComputeCap:   cpu.DetectFeatures().String(),
		},
		concurrency: concurrency,
	}
}

func (b *CPUBackend) Info() BackendInfo {
	return BackendInfo{
		Name:        "cpu",
		Version:     "1.0",
		Description: "goroutine-backed work-group executor",
	}
}

func (b *CPUBackend) Available() bool {
	return true
}

func (b *CPUBackend) Devices() ([]DeviceInfo, error) {
	return []DeviceInfo{b.device}, nil
}

// Concurrency returns the maximum number of groups that run at once.
func (b *CPUBackend) Concurrency() int {
	return b.concurrency
}

func (b *CPUBackend) Launch(ctx context.Context, geom Geometry, kernel Kernel) error {
	if kernel == nil {
		return ErrNilKernel
	}

	if err := geom.Validate(); err != nil {
		return err
	}

	if geom.Groups == 0 {
		return ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for group := range geom.Groups {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			runGroup(geom, group, kernel)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("device: launch aborted: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("device: launch aborted: %w", err)
	}

	return nil
}

// runGroup executes every worker of one work group.
func runGroup(geom Geometry, group int, kernel Kernel) {
	perGroup := geom.WavefrontsPerGroup()
	first := group * perGroup

	if geom.VecWidth == 1 {
		// One lane per row: no partner lanes, so the group runs inline.
		single := wavefront.NewBarrier(1)
		scratch := make([]complex64, 1)

		for w := range perGroup {
			scratch[0] = 0
			lane := Lane{
				Row:     first + w,
				Width:   1,
				Group:   group,
				LocalID: w,
				partial: scratch,
				barrier: single,
			}
			kernel(&lane)
		}

		return
	}

	var wg sync.WaitGroup

	wg.Add(geom.GroupSize)

	for w := range perGroup {
		partial := make([]complex64, geom.VecWidth)
		barrier := wavefront.NewBarrier(geom.VecWidth)

		for id := range geom.VecWidth {
			go func() {
				defer wg.Done()

				lane := Lane{
					Row:     first + w,
					ID:      id,
					Width:   geom.VecWidth,
					Group:   group,
					LocalID: w*geom.VecWidth + id,
					partial: partial,
					barrier: barrier,
				}
				kernel(&lane)
			}()
		}
	}

	wg.Wait()
}
