package algospmv

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-spmv/device"
	"github.com/cwbudde/algo-spmv/internal/kernels"
)

// ELLMatrix is a fixed-width sparse matrix: every row stores exactly
// rowWidth entries, row r at [r*rowWidth, (r+1)*rowWidth).
//
// Padding entries must contribute nothing (a zero coefficient on a valid
// column); the kernels cannot tell them apart from real entries.
type ELLMatrix struct {
	numCols int
	t       kernels.ELL
}

// NewELL validates and copies fixed-width tables.
//
// Returns ErrInvalidShape for negative sizes or an overflowing element count.
// Returns ErrLengthMismatch if len(cols) or len(vals) != numRows*rowWidth.
// Returns ErrColumnOutOfRange if any column is >= numCols.
func NewELL(numRows, numCols, rowWidth int, cols []uint32, vals []complex64) (*ELLMatrix, error) {
	if numRows < 0 || numCols < 0 || rowWidth < 0 {
		return nil, fmt.Errorf("%w: rows=%d cols=%d width=%d", ErrInvalidShape, numRows, numCols, rowWidth)
	}

	maxInt := int(^uint(0) >> 1)
	if rowWidth > 0 && numRows > maxInt/rowWidth {
		return nil, fmt.Errorf("%w: %d rows of width %d overflow", ErrInvalidShape, numRows, rowWidth)
	}

	n := numRows * rowWidth
	if len(cols) != n || len(vals) != n {
		return nil, fmt.Errorf("%w: want %d entries, len(cols)=%d, len(vals)=%d",
			ErrLengthMismatch, n, len(cols), len(vals))
	}

	if err := checkColumns(cols, numCols); err != nil {
		return nil, err
	}

	return &ELLMatrix{
		numCols: numCols,
		t: kernels.ELL{
			Rows:     numRows,
			RowWidth: rowWidth,
			Cols:     slices.Clone(cols),
			Vals:     slices.Clone(vals),
		},
	}, nil
}

func (m *ELLMatrix) Format() Format { return FormatELL }
func (m *ELLMatrix) Rows() int      { return m.t.Rows }
func (m *ELLMatrix) Cols() int      { return m.numCols }

// RowWidth returns the number of stored entries per row.
func (m *ELLMatrix) RowWidth() int {
	return m.t.RowWidth
}

func (m *ELLMatrix) rowLen() int {
	return m.t.RowWidth
}

func (m *ELLMatrix) kernel(vec, out []complex64, _ int) device.Kernel {
	return kernels.ELLKernel(m.t, vec, out)
}
