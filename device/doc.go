// Package device executes SpMV kernels over a work-group launch geometry.
//
// A launch is described by a Geometry: Groups work groups of GroupSize
// workers each, where every VecWidth consecutive workers form a wavefront
// that cooperates on one logical row. Kernels are written per lane and
// receive a Lane carrying the row, the lane id and the synchronization
// shared with the other lanes of the same row.
//
// The package mirrors a GPU backend surface (backend registration, device
// discovery) but the only working backend runs on the CPU with goroutines.
package device
