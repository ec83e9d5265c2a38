package device

import (
	"fmt"

	"github.com/cwbudde/algo-spmv/internal/cmath"
)

// MaxVecWidth is the largest supported wavefront width.
const MaxVecWidth = 1024

// DeviceInfo describes an execution device.
type DeviceInfo struct {
	Name         string
	Vendor       string
	Driver       string
	ComputeUnits int
	ComputeCap   string
}

// BackendInfo describes a backend implementation.
type BackendInfo struct {
	Name        string
	Version     string
	Description string
}

// Geometry is a launch configuration.
type Geometry struct {
	// Groups is the number of work groups.
	Groups int

	// GroupSize is the number of workers per group. It must be a multiple of VecWidth.
	GroupSize int

	// VecWidth is the number of lanes cooperating on one row (a power of two).
	VecWidth int
}

// Validate reports whether the geometry can be launched.
func (g Geometry) Validate() error {
	if g.Groups < 0 {
		return fmt.Errorf("%w: groups %d", ErrInvalidGeometry, g.Groups)
	}

	if !cmath.IsPowerOf2(g.VecWidth) || g.VecWidth > MaxVecWidth {
		return fmt.Errorf("%w: vector width %d is not a power of two in [1,%d]",
			ErrInvalidGeometry, g.VecWidth, MaxVecWidth)
	}

	if g.GroupSize < g.VecWidth || g.GroupSize%g.VecWidth != 0 {
		return fmt.Errorf("%w: group size %d is not a multiple of vector width %d",
			ErrInvalidGeometry, g.GroupSize, g.VecWidth)
	}

	return nil
}

// WavefrontsPerGroup returns the number of rows one group processes.
func (g Geometry) WavefrontsPerGroup() int {
	return g.GroupSize / g.VecWidth
}

// Wavefronts returns the number of row slots the launch covers.
// It may exceed the logical row count; surplus wavefronts do no work.
func (g Geometry) Wavefronts() int {
	return g.Groups * g.WavefrontsPerGroup()
}

// Workers returns the total number of workers in the launch.
func (g Geometry) Workers() int {
	return g.Groups * g.GroupSize
}

// GeometryFor returns the smallest geometry that covers rows with the given
// group size and vector width.
func GeometryFor(rows, groupSize, vecWidth int) (Geometry, error) {
	g := Geometry{GroupSize: groupSize, VecWidth: vecWidth}
	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}

	if rows < 0 {
		return Geometry{}, fmt.Errorf("%w: rows %d", ErrInvalidGeometry, rows)
	}

	g.Groups = cmath.CeilDiv(rows, g.WavefrontsPerGroup())

	return g, nil
}
