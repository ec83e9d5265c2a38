package algospmv

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-spmv/internal/reference"
)

// Shared test helper functions used across multiple test files

func assertApproxComplex64f(t *testing.T, got, want complex64, tol float64, format string, args ...any) {
	t.Helper()

	diff := cmplx.Abs(complex128(got) - complex128(want))
	if diff > tol {
		t.Fatalf(format+": got %v want %v (diff=%v)", append(args, got, want, diff)...)
	}
}

// assertCloseScaled checks |got[i]-want[i]| <= tol*max(1, scale[i]), where
// scale is the absolute row sum, so reassociation error is measured against
// the magnitude of the terms rather than the possibly cancelled result.
func assertCloseScaled(t *testing.T, got []complex64, want []complex128, scale []float64, tol float64) {
	t.Helper()

	if len(got) < len(want) {
		t.Fatalf("len(got)=%d < len(want)=%d", len(got), len(want))
	}

	for i := range want {
		limit := tol * math.Max(1, scale[i])
		if diff := cmplx.Abs(complex128(got[i]) - want[i]); diff > limit {
			t.Fatalf("out[%d]: got %v want %v (diff=%g, limit=%g)", i, got[i], want[i], diff, limit)
		}
	}
}

func widen(v []complex64) []complex128 {
	out := make([]complex128, len(v))
	for i, x := range v {
		out[i] = complex128(x)
	}

	return out
}

func randomComplex(rnd *rand.Rand) complex64 {
	return complex(rnd.Float32()*2-1, rnd.Float32()*2-1)
}

func randomVector(rnd *rand.Rand, n int) []complex64 {
	v := make([]complex64, n)
	for i := range v {
		v[i] = randomComplex(rnd)
	}

	return v
}

func filled(n int, v complex64) []complex64 {
	out := make([]complex64, n)
	for i := range out {
		out[i] = v
	}

	return out
}

type csrTables struct {
	numCols int
	delims  []uint32
	cols    []uint32
	vals    []complex64
}

// randomCSRTables returns rows with 0..maxRowLen entries; every third row
// of a generated matrix is forced empty.
func randomCSRTables(rnd *rand.Rand, rows, numCols, maxRowLen int) csrTables {
	tb := csrTables{numCols: numCols, delims: make([]uint32, rows+1)}

	for r := range rows {
		n := rnd.Intn(maxRowLen + 1)
		if r%3 == 2 {
			n = 0
		}

		for range n {
			tb.cols = append(tb.cols, uint32(rnd.Intn(numCols)))
			tb.vals = append(tb.vals, randomComplex(rnd))
		}

		tb.delims[r+1] = uint32(len(tb.cols))
	}

	if tb.cols == nil {
		tb.cols = []uint32{}
		tb.vals = []complex64{}
	}

	return tb
}

func mustCSR(t *testing.T, tb csrTables) *CSRMatrix {
	t.Helper()

	m, err := NewCSR(tb.numCols, tb.delims, tb.cols, tb.vals)
	if err != nil {
		t.Fatalf("NewCSR: %v", err)
	}

	return m
}

// csrReference returns the dense product and the absolute row sums.
func csrReference(tb csrTables, vec []complex64) ([]complex128, []float64) {
	want := reference.FromCSR(tb.numCols, tb.delims, tb.cols, tb.vals).MulVec(vec)
	scale := make([]float64, len(tb.delims)-1)

	for r := range scale {
		for j := tb.delims[r]; j < tb.delims[r+1]; j++ {
			scale[r] += cmplx.Abs(complex128(tb.vals[j])) * cmplx.Abs(complex128(vec[tb.cols[j]]))
		}
	}

	return want, scale
}

// stencilCase is a random gridding stencil together with the unencoded
// per-axis grid columns used to build the expected Kronecker expansion.
type stencilCase struct {
	tables StencilTables
	kd     []int
	// axisCols[row][d][i] is the column contribution of entry i of axis d.
	axisCols [][][]int
}

// randomStencil builds a stencil on a grid of shape kd: each sample picks a
// random start per axis and takes jd[d] consecutive (wrapped) grid points.
// The column of multi-index k is sum k[d]*stride[d] with the last axis
// contiguous; axes d >= 1 are stored biased by minus one.
func randomStencil(rnd *rand.Rand, rows int, kd, jd []int) stencilCase {
	dim := len(kd)
	strides := make([]int, dim)
	strides[dim-1] = 1

	for d := dim - 2; d >= 0; d-- {
		strides[d] = strides[d+1] * kd[d+1]
	}

	sumJd, cols := 0, 1
	for d := range dim {
		sumJd += jd[d]
		cols *= kd[d]
	}

	sc := stencilCase{
		tables: StencilTables{
			Rows:  rows,
			Cols:  cols,
			Jd:    append([]int(nil), jd...),
			Kindx: make([]uint32, rows*sumJd),
			Udata: make([]complex64, rows*sumJd),
		},
		kd:       kd,
		axisCols: make([][][]int, rows),
	}

	for r := range rows {
		idx := r * sumJd
		sc.axisCols[r] = make([][]int, dim)

		for d := range dim {
			start := rnd.Intn(kd[d])
			for i := range jd[d] {
				k := (start + i) % kd[d]
				c := k * strides[d]

				sc.axisCols[r][d] = append(sc.axisCols[r][d], c)
				if d == 0 {
					sc.tables.Kindx[idx] = uint32(c)
				} else {
					sc.tables.Kindx[idx] = uint32(c) - 1
				}

				sc.tables.Udata[idx] = randomComplex(rnd)
				idx++
			}
		}
	}

	return sc
}

func mustStencil(t *testing.T, tables StencilTables) *KroneckerELL {
	t.Helper()

	m, err := NewKroneckerELL(tables)
	if err != nil {
		t.Fatalf("NewKroneckerELL: %v", err)
	}

	return m
}

// expandedRow returns the Kronecker-expanded columns and coefficients of row r.
func (sc stencilCase) expandedRow(r int) ([]int, []complex128) {
	jd := sc.tables.Jd
	sumJd := 0

	for _, w := range jd {
		sumJd += w
	}

	factors := make([][]complex128, len(jd))
	base := r * sumJd

	for d, w := range jd {
		factors[d] = widen(sc.tables.Udata[base : base+w])
		base += w
	}

	cols := []int{0}
	for d := range jd {
		next := make([]int, 0, len(cols)*jd[d])
		for _, c := range cols {
			for _, a := range sc.axisCols[r][d] {
				next = append(next, c+a)
			}
		}

		cols = next
	}

	return cols, reference.Kronecker(factors...)
}

// stencilReference returns the expected product for channel-interleaved
// data with reps channels, plus the absolute row sums.
func (sc stencilCase) stencilReference(vec []complex64, reps int) ([]complex128, []float64) {
	rows := sc.tables.Rows
	want := make([]complex128, rows*reps)
	scale := make([]float64, rows*reps)

	for r := range rows {
		cols, coeffs := sc.expandedRow(r)

		for c := range reps {
			idx := make([]int, len(cols))
			for i, col := range cols {
				idx[i] = col*reps + c
				scale[r*reps+c] += cmplx.Abs(coeffs[i]) * cmplx.Abs(complex128(vec[idx[i]]))
			}

			want[r*reps+c] = reference.Dot(coeffs, idx, vec)
		}
	}

	return want, scale
}

func mustPlan(t *testing.T, m Matrix, opts PlanOptions) *Plan {
	t.Helper()

	p, err := NewPlan(m, opts)
	if err != nil {
		t.Fatalf("NewPlan(%s, %+v): %v", m.Format(), opts, err)
	}

	return p
}

func multiply(t *testing.T, p *Plan, vec []complex64) []complex64 {
	t.Helper()

	out := make([]complex64, p.OutLen())
	if err := p.Multiply(out, vec); err != nil {
		t.Fatalf("Multiply: %v", err)
	}

	return out
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
