package algospmv

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-spmv/device"
	"github.com/cwbudde/algo-spmv/internal/kernels"
)

// CSRMatrix is a compressed-row sparse matrix.
//
// Row r owns entries [rowDelimiters[r], rowDelimiters[r+1]) of cols and
// vals. Empty rows are allowed. The tables are copied at construction and
// never change afterwards.
type CSRMatrix struct {
	numCols int
	t       kernels.CSR
}

// NewCSR validates and copies compressed-row tables.
//
// Returns ErrInvalidShape if rowDelimiters is empty or numCols is negative.
// Returns ErrInvalidDelimiters if rowDelimiters[0] != 0 or it decreases.
// Returns ErrLengthMismatch if the last delimiter, len(cols) and len(vals) differ.
// Returns ErrColumnOutOfRange if any column is >= numCols.
func NewCSR(numCols int, rowDelimiters, cols []uint32, vals []complex64) (*CSRMatrix, error) {
	if numCols < 0 || len(rowDelimiters) == 0 {
		return nil, fmt.Errorf("%w: numCols=%d, %d delimiters", ErrInvalidShape, numCols, len(rowDelimiters))
	}

	if rowDelimiters[0] != 0 {
		return nil, fmt.Errorf("%w: first delimiter is %d", ErrInvalidDelimiters, rowDelimiters[0])
	}

	for r := 1; r < len(rowDelimiters); r++ {
		if rowDelimiters[r] < rowDelimiters[r-1] {
			return nil, fmt.Errorf("%w: row %d ends at %d before it starts at %d",
				ErrInvalidDelimiters, r-1, rowDelimiters[r], rowDelimiters[r-1])
		}
	}

	nnz := int(rowDelimiters[len(rowDelimiters)-1])
	if len(cols) != nnz || len(vals) != nnz {
		return nil, fmt.Errorf("%w: nnz=%d, len(cols)=%d, len(vals)=%d",
			ErrLengthMismatch, nnz, len(cols), len(vals))
	}

	if err := checkColumns(cols, numCols); err != nil {
		return nil, err
	}

	return &CSRMatrix{
		numCols: numCols,
		t: kernels.CSR{
			Rows:          len(rowDelimiters) - 1,
			RowDelimiters: slices.Clone(rowDelimiters),
			Cols:          slices.Clone(cols),
			Vals:          slices.Clone(vals),
		},
	}, nil
}

func checkColumns(cols []uint32, numCols int) error {
	for j, c := range cols {
		if int64(c) >= int64(numCols) {
			return fmt.Errorf("%w: entry %d has column %d, matrix has %d columns",
				ErrColumnOutOfRange, j, c, numCols)
		}
	}

	return nil
}

func (m *CSRMatrix) Format() Format { return FormatCSR }
func (m *CSRMatrix) Rows() int      { return m.t.Rows }
func (m *CSRMatrix) Cols() int      { return m.numCols }

// NNZ returns the number of stored entries.
func (m *CSRMatrix) NNZ() int {
	return len(m.t.Vals)
}

// Row returns copies of the column indices and values of row r.
func (m *CSRMatrix) Row(r int) ([]uint32, []complex64, error) {
	if r < 0 || r >= m.t.Rows {
		return nil, nil, fmt.Errorf("%w: row %d of %d", ErrInvalidShape, r, m.t.Rows)
	}

	start, end := m.t.RowDelimiters[r], m.t.RowDelimiters[r+1]

	return slices.Clone(m.t.Cols[start:end]), slices.Clone(m.t.Vals[start:end]), nil
}

// MaxRowLen returns the length of the longest row.
func (m *CSRMatrix) MaxRowLen() int {
	longest := 0

	for r := range m.t.Rows {
		if n := int(m.t.RowDelimiters[r+1] - m.t.RowDelimiters[r]); n > longest {
			longest = n
		}
	}

	return longest
}

// ToELL converts the matrix to fixed-width storage with MaxRowLen entries
// per row. Short rows are padded with column pad and a zero coefficient.
// Returns ErrColumnOutOfRange if padding is needed and pad is not a valid column.
func (m *CSRMatrix) ToELL(pad uint32) (*ELLMatrix, error) {
	width := m.MaxRowLen()
	cols := make([]uint32, m.t.Rows*width)
	vals := make([]complex64, m.t.Rows*width)

	for r := range m.t.Rows {
		start, end := int(m.t.RowDelimiters[r]), int(m.t.RowDelimiters[r+1])
		base := r * width

		copy(cols[base:], m.t.Cols[start:end])
		copy(vals[base:], m.t.Vals[start:end])

		for j := base + end - start; j < base+width; j++ {
			cols[j] = pad
		}
	}

	return NewELL(m.t.Rows, m.numCols, width, cols, vals)
}

func (m *CSRMatrix) rowLen() int {
	if m.t.Rows == 0 {
		return 0
	}

	return len(m.t.Vals) / m.t.Rows
}

func (m *CSRMatrix) kernel(vec, out []complex64, _ int) device.Kernel {
	return kernels.CSRKernel(m.t, vec, out)
}
