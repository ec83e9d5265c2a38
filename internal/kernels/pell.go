package kernels

import (
	"github.com/cwbudde/algo-spmv/device"
	"github.com/cwbudde/algo-spmv/internal/cmath"
)

// Stencil is the raw Kronecker-structured ELL table set.
//
// Row r owns kindx/udata entries [r*SumJd, (r+1)*SumJd), split into Dim
// consecutive axis blocks of Jd[d] entries starting at AxisBase[d].
// MeshIndex[j*Dim+d] is the offset of tap j inside axis block d.
type Stencil struct {
	Rows      int
	Dim       int
	SumJd     int
	ProdJd    int
	Jd        []int
	AxisBase  []int
	MeshIndex []uint32
	Kindx     []uint32
	Udata     []complex64
}

// Tap decodes tap j of sample into its mixed column index and
// Kronecker-product coefficient.
//
// The column starts at the axis-0 kindx entry; every further axis adds its
// kindx entry plus one. The coefficient is the running complex product of
// the per-axis udata entries, multiplied left to right. Column arithmetic is
// unsigned 32-bit, matching the stored table encoding.
func (s *Stencil) Tap(sample, j int) (uint32, complex64) {
	base := sample * s.SumJd
	mesh := s.MeshIndex[j*s.Dim : (j+1)*s.Dim]

	idx := base + int(mesh[0])
	col := s.Kindx[idx]
	coeff := s.Udata[idx]

	for d := 1; d < s.Dim; d++ {
		idx = base + s.AxisBase[d] + int(mesh[d])
		col += s.Kindx[idx] + 1
		coeff = cmath.Mul(coeff, s.Udata[idx])
	}

	return col, coeff
}

// tapDot sums coeff*vec[col*reps+channel] for taps first, first+step, ...
func (s *Stencil) tapDot(vec []complex64, sample, reps, channel, first, step int) complex64 {
	var acc complex64

	for j := first; j < s.ProdJd; j += step {
		col, coeff := s.Tap(sample, j)
		acc = cmath.MulAdd(acc, coeff, vec[int(col)*reps+channel])
	}

	return acc
}

// PELLKernel computes out[r] for the single-channel Kronecker stencil.
func PELLKernel(s *Stencil, vec, out []complex64) device.Kernel {
	return func(l *device.Lane) {
		row := l.Row
		if row >= s.Rows {
			return
		}

		store(l, out, row, s.tapDot(vec, row, 1, 0, l.ID, l.Width))
	}
}

// PELLBatchedKernel computes the channel-interleaved multiply: logical row
// m decomposes into sample m/reps and channel m%reps, the stencil of the
// sample is shared by all channels, vec is read at col*reps+channel and the
// result lands in out[m].
func PELLBatchedKernel(s *Stencil, reps int, vec, out []complex64) device.Kernel {
	rows := s.Rows * reps

	return func(l *device.Lane) {
		row := l.Row
		if row >= rows {
			return
		}

		sample := row / reps
		channel := row - sample*reps

		store(l, out, row, s.tapDot(vec, sample, reps, channel, l.ID, l.Width))
	}
}
