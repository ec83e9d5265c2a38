package kernels

import "github.com/cwbudde/algo-spmv/device"

// ELL is the raw fixed-width table set.
type ELL struct {
	Rows     int
	RowWidth int
	Cols     []uint32
	Vals     []complex64
}

// ELLKernel computes out[r] over the fixed range [r*RowWidth, (r+1)*RowWidth).
func ELLKernel(m ELL, vec, out []complex64) device.Kernel {
	return func(l *device.Lane) {
		row := l.Row
		if row >= m.Rows {
			return
		}

		start := row * m.RowWidth

		store(l, out, row, strideDot(m.Cols, m.Vals, vec, start+l.ID, start+m.RowWidth, l.Width))
	}
}
