// Package reference provides slow, straightforward implementations used to
// verify the SpMV kernels. Arithmetic is carried out in complex128.
package reference

// Dense is a row-major dense complex matrix.
type Dense struct {
	Rows int
	Cols int
	Data []complex128
}

// NewDense allocates a zero rows x cols matrix.
func NewDense(rows, cols int) *Dense {
	return &Dense{Rows: rows, Cols: cols, Data: make([]complex128, rows*cols)}
}

// At returns the entry at (r, c).
func (d *Dense) At(r, c int) complex128 {
	return d.Data[r*d.Cols+c]
}

// Accumulate adds v to the entry at (r, c). Duplicate sparse entries sum.
func (d *Dense) Accumulate(r, c int, v complex64) {
	d.Data[r*d.Cols+c] += complex128(v)
}

// MulVec returns d*vec.
func (d *Dense) MulVec(vec []complex64) []complex128 {
	out := make([]complex128, d.Rows)

	for r := range d.Rows {
		var sum complex128
		for c := range d.Cols {
			sum += d.At(r, c) * complex128(vec[c])
		}

		out[r] = sum
	}

	return out
}

// FromCSR builds a dense matrix from compressed-row tables.
func FromCSR(numCols int, rowDelimiters, cols []uint32, vals []complex64) *Dense {
	rows := len(rowDelimiters) - 1
	d := NewDense(rows, numCols)

	for r := range rows {
		for j := rowDelimiters[r]; j < rowDelimiters[r+1]; j++ {
			d.Accumulate(r, int(cols[j]), vals[j])
		}
	}

	return d
}

// Kronecker returns the Kronecker product of the given vectors, with the
// last vector varying fastest: out[i0*n1*...+i1*...+iD] = f0[i0]*f1[i1]*...*fD[iD].
func Kronecker(factors ...[]complex128) []complex128 {
	out := []complex128{1}

	for _, f := range factors {
		next := make([]complex128, 0, len(out)*len(f))
		for _, a := range out {
			for _, b := range f {
				next = append(next, a*b)
			}
		}

		out = next
	}

	return out
}

// Dot returns sum(coeffs[i] * vec[idx[i]]).
func Dot(coeffs []complex128, idx []int, vec []complex64) complex128 {
	var sum complex128
	for i, c := range coeffs {
		sum += c * complex128(vec[idx[i]])
	}

	return sum
}
