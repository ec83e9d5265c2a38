package main

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	algospmv "github.com/cwbudde/algo-spmv"
	"github.com/cwbudde/algo-spmv/device"
)

func TestParseList(t *testing.T) {
	t.Parallel()

	got := parseList(" 4, x,0, 16,,-2,8")
	want := []int{4, 16, 8}

	if len(got) != len(want) {
		t.Fatalf("parseList = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("parseList = %v, want %v", got, want)
		}
	}
}

func TestBenchmarkVerifiesAgainstScalar(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(1))

	m, err := algospmv.NewKroneckerELL(randomStencil(rnd, 64, []int{16, 16}, []int{4, 4}))
	if err != nil {
		t.Fatalf("NewKroneckerELL: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, reps := range []int{1, 3} {
		vec := make([]complex64, m.Cols()*reps)
		for i := range vec {
			vec[i] = complex(rnd.Float32(), rnd.Float32())
		}

		results, err := benchmark(logger, m, vec, reps, []int{1, 4, 3}, 2, 1, device.NewCPUBackend(2))
		if err != nil {
			t.Fatalf("benchmark: %v", err)
		}

		// Width 3 is rejected and skipped.
		if len(results) != 2 {
			t.Fatalf("got %d results, want 2", len(results))
		}

		for _, res := range results {
			if res.maxErr > 1e-5 {
				t.Fatalf("width %d: max rel err %g", res.width, res.maxErr)
			}
		}
	}
}
