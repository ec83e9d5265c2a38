package wavefront

import "github.com/cwbudde/algo-spmv/internal/cmath"

// Reduce folds the lane partial sums of one wavefront into partial[0].
//
// Every lane of the wavefront must call Reduce with the same partial slice
// (length = width, a power of two) and its own lane id. Each lane stores its
// local sum into partial[id] before calling. The schedule is:
// barrier; lanes id < bar add partial[id+bar] into partial[id]; barrier;
// bar halves until it reaches zero. Inactive lanes still execute every
// barrier. The return value is only meaningful for lane 0.
func Reduce(id int, partial []complex64, sync func()) complex64 {
	width := len(partial)

	sync()

	for bar := width / 2; bar > 0; bar /= 2 {
		if id < bar {
			partial[id] = cmath.Add(partial[id], partial[id+bar])
		}

		sync()
	}

	return partial[id]
}

// ReduceSerial applies the same halving schedule as Reduce on a single
// goroutine. Its result is bit-identical to the concurrent schedule.
func ReduceSerial(partial []complex64) complex64 {
	for bar := len(partial) / 2; bar > 0; bar /= 2 {
		for id := range bar {
			partial[id] = cmath.Add(partial[id], partial[id+bar])
		}
	}

	return partial[0]
}
