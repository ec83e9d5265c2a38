package algospmv

import "fmt"

// MeshIndex returns the tap-to-offset table for a full tensor stencil with
// per-axis widths jd. Taps are enumerated in row-major order with the last
// axis varying fastest: entry [j*len(jd)+d] is the offset of tap j on axis d.
func MeshIndex(jd []int) ([]uint32, error) {
	dim := len(jd)
	if dim == 0 {
		return nil, fmt.Errorf("%w: no axes", ErrInvalidStencil)
	}

	_, prod, err := stencilSizes(jd)
	if err != nil {
		return nil, err
	}

	mesh := make([]uint32, prod*dim)

	for j := range prod {
		rem := j
		for d := dim - 1; d >= 0; d-- {
			mesh[j*dim+d] = uint32(rem % jd[d])
			rem /= jd[d]
		}
	}

	return mesh, nil
}
