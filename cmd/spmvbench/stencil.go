package main

import (
	"math/rand"

	algospmv "github.com/cwbudde/algo-spmv"
)

// randomStencil places each sample at a random grid position and gives
// every axis jd[d] consecutive (wrapped) grid points with random weights.
func randomStencil(rnd *rand.Rand, rows int, kd, jd []int) algospmv.StencilTables {
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

	t := algospmv.StencilTables{
		Rows:  rows,
		Cols:  cols,
		Jd:    jd,
		Kindx: make([]uint32, rows*sumJd),
		Udata: make([]complex64, rows*sumJd),
	}

	idx := 0

	for range rows {
		for d := range dim {
			start := rnd.Intn(kd[d])

			for i := range jd[d] {
				c := uint32(((start + i) % kd[d]) * strides[d])
				if d > 0 {
					c--
				}

				t.Kindx[idx] = c
				t.Udata[idx] = complex(rnd.Float32(), rnd.Float32()*0.1)
				idx++
			}
		}
	}

	return t
}
