package kernels

import (
	"github.com/cwbudde/algo-spmv/device"
	"github.com/cwbudde/algo-spmv/internal/cmath"
)

// CSR is the raw compressed-row table set.
type CSR struct {
	Rows          int
	RowDelimiters []uint32
	Cols          []uint32
	Vals          []complex64
}

// CSRKernel computes out[r] = sum vals[j]*vec[cols[j]] over row r.
func CSRKernel(m CSR, vec, out []complex64) device.Kernel {
	return func(l *device.Lane) {
		row := l.Row
		if row >= m.Rows {
			return
		}

		start := int(m.RowDelimiters[row])
		end := int(m.RowDelimiters[row+1])

		store(l, out, row, strideDot(m.Cols, m.Vals, vec, start+l.ID, end, l.Width))
	}
}

// strideDot sums vals[j]*vec[cols[j]] for j = first, first+step, ... < end.
func strideDot(cols []uint32, vals, vec []complex64, first, end, step int) complex64 {
	var acc complex64

	for j := first; j < end; j += step {
		acc = cmath.MulAdd(acc, vals[j], vec[cols[j]])
	}

	return acc
}
