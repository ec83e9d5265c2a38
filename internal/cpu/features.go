// Package cpu reports host CPU features used to pick default launch widths.
package cpu

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Features describes the SIMD capabilities of the host.
type Features struct {
	HasSSE2      bool
	HasAVX2      bool
	HasAVX512    bool
	HasNEON      bool
	HasSVE       bool
	Architecture string
}

// DetectFeatures reports the available CPU features for the current process.
func DetectFeatures() Features {
	return Features{
		HasSSE2:      cpu.X86.HasSSE2,
		HasAVX2:      cpu.X86.HasAVX2,
		HasAVX512:    cpu.X86.HasAVX512F,
		HasNEON:      cpu.ARM64.HasASIMD,
		HasSVE:       cpu.ARM64.HasSVE,
		Architecture: runtime.GOARCH,
	}
}

// Float32Lanes returns the number of float32 values that fit the widest
// vector register the host reports. Hosts without SIMD report 1.
func (f Features) Float32Lanes() int {
	switch {
	case f.HasAVX512:
		return 16
	case f.HasAVX2:
		return 8
	case f.HasSSE2, f.HasNEON, f.HasSVE:
		return 4
	default:
		return 1
	}
}

// PreferredVecWidth suggests a lane count for vector-strategy launches.
// Each lane accumulates one complex64 (two float32), so the preferred
// width is half the float32 lane count, never below 2.
func (f Features) PreferredVecWidth() int {
	w := f.Float32Lanes() / 2
	if w < 2 {
		w = 2
	}

	return w
}

// String returns a compact feature list such as "amd64:sse2,avx2".
func (f Features) String() string {
	var names []string

	if f.HasSSE2 {
		names = append(names, "sse2")
	}

	if f.HasAVX2 {
		names = append(names, "avx2")
	}

	if f.HasAVX512 {
		names = append(names, "avx512")
	}

	if f.HasNEON {
		names = append(names, "neon")
	}

	if f.HasSVE {
		names = append(names, "sve")
	}

	if len(names) == 0 {
		names = append(names, "generic")
	}

	return f.Architecture + ":" + strings.Join(names, ",")
}
