// Package kernels contains the per-lane SpMV bodies for every sparse format.
//
// Each constructor returns a device.Kernel bound to validated tables and the
// dense input/output slices. The same body serves the scalar and the vector
// strategy: launched with VecWidth 1 a lane walks the whole row in natural
// order and the reduction has zero rounds; launched wider, the lanes of a
// wavefront stride over the row and meet in the tree reduction. Kernels
// trust their tables and perform no bounds validation beyond the row check.
package kernels

import "github.com/cwbudde/algo-spmv/device"

// store reduces the wavefront partials and lets lane 0 write the row.
func store(l *device.Lane, out []complex64, row int, sum complex64) {
	total := l.Reduce(sum)
	if l.ID == 0 {
		out[row] = total
	}
}
