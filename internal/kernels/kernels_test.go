package kernels

import (
	"context"
	"testing"

	"github.com/cwbudde/algo-spmv/device"
)

const sentinel = complex64(complex(-7, 7))

func testStencil() *Stencil {
	return &Stencil{
		Rows:      1,
		Dim:       2,
		SumJd:     4,
		ProdJd:    4,
		Jd:        []int{2, 2},
		AxisBase:  []int{0, 2},
		MeshIndex: []uint32{0, 0, 0, 1, 1, 0, 1, 1},
		Kindx:     []uint32{10, 15, 0, 4},
		Udata:     []complex64{1 + 1i, 2, 1i, 3},
	}
}

func launch(t *testing.T, rows, width int, kernel device.Kernel) {
	t.Helper()

	geom, err := device.GeometryFor(rows, 4, width)
	if err != nil {
		t.Fatalf("GeometryFor(%d, 4, %d): %v", rows, width, err)
	}

	err = device.NewCPUBackend(2).Launch(context.Background(), geom, kernel)
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
}

func TestStencilTapBias(t *testing.T) {
	t.Parallel()

	s := testStencil()

	wantCols := []uint32{11, 15, 16, 20}
	wantCoeffs := []complex64{-1 + 1i, 3 + 3i, 2i, 6}

	for j := range 4 {
		col, coeff := s.Tap(0, j)
		if col != wantCols[j] || coeff != wantCoeffs[j] {
			t.Fatalf("Tap(0, %d) = (%d, %v), want (%d, %v)", j, col, coeff, wantCols[j], wantCoeffs[j])
		}
	}
}

func TestStencilTapWraps(t *testing.T) {
	t.Parallel()

	s := testStencil()
	s.Kindx[2] = ^uint32(0)

	if col, _ := s.Tap(0, 0); col != 10 {
		t.Fatalf("Tap(0, 0) column = %d, want 10", col)
	}
}

func TestCSRKernel(t *testing.T) {
	t.Parallel()

	m := CSR{
		Rows:          2,
		RowDelimiters: []uint32{0, 2, 3},
		Cols:          []uint32{0, 1, 2},
		Vals:          []complex64{1, 2, 3},
	}

	for _, width := range []int{1, 2, 4} {
		out := []complex64{sentinel, sentinel, sentinel}
		launch(t, m.Rows, width, CSRKernel(m, []complex64{1, 1, 1}, out))

		if out[0] != 3 || out[1] != 3 || out[2] != sentinel {
			t.Fatalf("width %d: out = %v", width, out)
		}
	}
}

func TestELLKernel(t *testing.T) {
	t.Parallel()

	m := ELL{
		Rows:     2,
		RowWidth: 2,
		Cols:     []uint32{0, 1, 2, 0},
		Vals:     []complex64{1, 2, 3, 0},
	}

	for _, width := range []int{1, 2, 4} {
		out := []complex64{sentinel, sentinel, sentinel}
		launch(t, m.Rows, width, ELLKernel(m, []complex64{1, 1, 1}, out))

		if out[0] != 3 || out[1] != 3 || out[2] != sentinel {
			t.Fatalf("width %d: out = %v", width, out)
		}
	}
}

func TestPELLBatchedMatchesPerChannel(t *testing.T) {
	t.Parallel()

	s := testStencil()

	const reps = 2

	vec := make([]complex64, 32*reps)
	channels := [reps][]complex64{make([]complex64, 32), make([]complex64, 32)}

	for i := range 32 {
		for c := range reps {
			v := complex(float32(i), float32(c+1))
			vec[i*reps+c] = v
			channels[c][i] = v
		}
	}

	for _, width := range []int{1, 2, 4} {
		out := make([]complex64, reps)
		launch(t, reps, width, PELLBatchedKernel(s, reps, vec, out))

		for c := range reps {
			single := []complex64{sentinel}
			launch(t, 1, width, PELLKernel(s, channels[c], single))

			if out[c] != single[0] {
				t.Fatalf("width %d channel %d: batched %v, single %v", width, c, out[c], single[0])
			}
		}
	}
}
