package algospmv

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-spmv/device"
	"github.com/cwbudde/algo-spmv/internal/kernels"
)

// StencilTables are the inputs of NewKroneckerELL.
//
// For each of Rows samples and each axis d the tables hold a block of Jd[d]
// entries: Kindx is the unmixed column contribution of the axis and Udata
// the 1-D interpolation coefficient. The blocks of one sample are
// consecutive, so sample m owns [m*sumJd, (m+1)*sumJd).
type StencilTables struct {
	// Rows is the number of non-uniform samples.
	Rows int

	// Cols is the length of the (single-channel) uniform grid vector.
	Cols int

	// Jd is the per-axis stencil width.
	Jd []int

	// MeshIndex maps tap j and axis d to MeshIndex[j*len(Jd)+d], the offset
	// inside the axis block. Nil selects MeshIndex(Jd).
	MeshIndex []uint32

	// Kindx holds the encoded column contributions. For axes d >= 1 the
	// decoder adds kindx+1, so those entries are stored biased by minus one
	// in unsigned 32-bit arithmetic.
	Kindx []uint32

	// Udata holds the per-axis interpolation coefficients.
	Udata []complex64
}

// KroneckerELL is a multi-dimensional interpolation stencil whose row
// entries are the Kronecker product of per-axis factor tables. Columns and
// coefficients are decoded per tap during the multiply; the expanded
// product is never stored.
type KroneckerELL struct {
	numCols int
	s       kernels.Stencil
}

// NewKroneckerELL validates and copies a stencil.
//
// Returns ErrInvalidShape for negative Rows/Cols or Cols beyond the 32-bit column range.
// Returns ErrInvalidStencil if Jd is empty, has an entry < 1, its product
// overflows, or a MeshIndex entry is outside its axis block.
// Returns ErrLengthMismatch if MeshIndex, Kindx or Udata have the wrong length.
// Returns ErrColumnOutOfRange if any decoded tap column is >= Cols.
func NewKroneckerELL(t StencilTables) (*KroneckerELL, error) {
	if t.Rows < 0 || t.Cols < 0 || int64(t.Cols) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: rows=%d cols=%d", ErrInvalidShape, t.Rows, t.Cols)
	}

	dim := len(t.Jd)
	if dim == 0 {
		return nil, fmt.Errorf("%w: no axes", ErrInvalidStencil)
	}

	sumJd, prodJd, err := stencilSizes(t.Jd)
	if err != nil {
		return nil, err
	}

	mesh := t.MeshIndex
	if mesh == nil {
		mesh, err = MeshIndex(t.Jd)
		if err != nil {
			return nil, err
		}
	} else {
		mesh = slices.Clone(mesh)
	}

	if len(mesh) != prodJd*dim {
		return nil, fmt.Errorf("%w: mesh index has %d entries, want %d*%d",
			ErrLengthMismatch, len(mesh), prodJd, dim)
	}

	for i, off := range mesh {
		if d := i % dim; int64(off) >= int64(t.Jd[d]) {
			return nil, fmt.Errorf("%w: mesh index entry %d (tap %d, axis %d) is %d, axis width %d",
				ErrInvalidStencil, i, i/dim, d, off, t.Jd[d])
		}
	}

	if t.Rows > 0 && sumJd > (int(^uint(0)>>1))/t.Rows {
		return nil, fmt.Errorf("%w: %d rows of %d entries overflow", ErrInvalidShape, t.Rows, sumJd)
	}

	n := t.Rows * sumJd
	if len(t.Kindx) != n || len(t.Udata) != n {
		return nil, fmt.Errorf("%w: want %d table entries, len(kindx)=%d, len(udata)=%d",
			ErrLengthMismatch, n, len(t.Kindx), len(t.Udata))
	}

	axisBase := make([]int, dim)
	for d := 1; d < dim; d++ {
		axisBase[d] = axisBase[d-1] + t.Jd[d-1]
	}

	m := &KroneckerELL{
		numCols: t.Cols,
		s: kernels.Stencil{
			Rows:      t.Rows,
			Dim:       dim,
			SumJd:     sumJd,
			ProdJd:    prodJd,
			Jd:        slices.Clone(t.Jd),
			AxisBase:  axisBase,
			MeshIndex: mesh,
			Kindx:     slices.Clone(t.Kindx),
			Udata:     slices.Clone(t.Udata),
		},
	}

	for row := range t.Rows {
		for j := range prodJd {
			if col, _ := m.s.Tap(row, j); int64(col) >= int64(t.Cols) {
				return nil, fmt.Errorf("%w: row %d tap %d decodes to column %d, grid has %d",
					ErrColumnOutOfRange, row, j, col, t.Cols)
			}
		}
	}

	return m, nil
}

// stencilSizes returns sum(jd) and prod(jd).
func stencilSizes(jd []int) (int, int, error) {
	sum, prod := 0, 1

	for d, w := range jd {
		if w < 1 {
			return 0, 0, fmt.Errorf("%w: axis %d has width %d", ErrInvalidStencil, d, w)
		}

		if prod > math.MaxInt32/w {
			return 0, 0, fmt.Errorf("%w: tap count overflows at axis %d", ErrInvalidStencil, d)
		}

		sum += w
		prod *= w
	}

	return sum, prod, nil
}

func (m *KroneckerELL) Format() Format { return FormatKroneckerELL }
func (m *KroneckerELL) Rows() int      { return m.s.Rows }
func (m *KroneckerELL) Cols() int      { return m.numCols }

// Dim returns the number of axes.
func (m *KroneckerELL) Dim() int { return m.s.Dim }

// Jd returns a copy of the per-axis stencil widths.
func (m *KroneckerELL) Jd() []int { return slices.Clone(m.s.Jd) }

// SumJd returns the number of table entries per sample.
func (m *KroneckerELL) SumJd() int { return m.s.SumJd }

// ProdJd returns the number of taps per sample.
func (m *KroneckerELL) ProdJd() int { return m.s.ProdJd }

// Tap decodes tap j of row into its grid column and coefficient.
func (m *KroneckerELL) Tap(row, j int) (int, complex64, error) {
	if row < 0 || row >= m.s.Rows || j < 0 || j >= m.s.ProdJd {
		return 0, 0, fmt.Errorf("%w: tap (%d, %d) of %dx%d", ErrInvalidShape, row, j, m.s.Rows, m.s.ProdJd)
	}

	col, coeff := m.s.Tap(row, j)

	return int(col), coeff, nil
}

// ToCSR expands the stencil into explicit compressed-row storage with
// ProdJd entries per row in tap order. Duplicate columns are kept.
// Returns ErrInvalidShape if the entry count exceeds the 32-bit delimiter range.
func (m *KroneckerELL) ToCSR() (*CSRMatrix, error) {
	rows, taps := m.s.Rows, m.s.ProdJd
	if int64(rows)*int64(taps) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d rows of %d taps exceed the delimiter range", ErrInvalidShape, rows, taps)
	}

	delims := make([]uint32, rows+1)
	cols := make([]uint32, rows*taps)
	vals := make([]complex64, rows*taps)

	for row := range rows {
		delims[row+1] = uint32((row + 1) * taps)

		for j := range taps {
			cols[row*taps+j], vals[row*taps+j] = m.s.Tap(row, j)
		}
	}

	return &CSRMatrix{
		numCols: m.numCols,
		t: kernels.CSR{
			Rows:          rows,
			RowDelimiters: delims,
			Cols:          cols,
			Vals:          vals,
		},
	}, nil
}

func (m *KroneckerELL) rowLen() int {
	return m.s.ProdJd
}

func (m *KroneckerELL) kernel(vec, out []complex64, reps int) device.Kernel {
	if reps > 0 {
		return kernels.PELLBatchedKernel(&m.s, reps, vec, out)
	}

	return kernels.PELLKernel(&m.s, vec, out)
}
