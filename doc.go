// Package algospmv multiplies complex sparse matrices by dense vectors on a
// work-group execution device, with a Kronecker-structured format for
// non-uniform Fourier gridding.
//
// Three storage formats are supported:
//
//   - CSRMatrix: compressed rows (row delimiters plus column/value arrays).
//   - ELLMatrix: a fixed number of entries per row.
//   - KroneckerELL: a multi-dimensional interpolation stencil stored as
//     per-axis factor tables. Each row is the Kronecker product of its axis
//     coefficients; columns and coefficients are decoded per tap during the
//     multiply and the expanded row is never stored.
//
// Tables are validated once at construction. A Plan binds a matrix to a
// strategy and launch geometry:
//
//   - StrategyScalar: one worker per row, taps summed in order. Results are
//     bit-reproducible.
//   - StrategyVector: VecWidth lanes stride over a row and combine their
//     partial sums with a binary-tree reduction. The result is deterministic
//     for a fixed width.
//   - StrategyBatched: the Kronecker stencil applied to channel-interleaved
//     data, element (index, channel) stored at index*Channels+channel.
//
// Example:
//
//	m, err := algospmv.NewCSR(3, []uint32{0, 2, 3}, []uint32{0, 1, 2}, []complex64{1, 2, 3})
//	if err != nil {
//	    return err
//	}
//	plan, err := algospmv.NewPlan(m, algospmv.PlanOptions{Strategy: algospmv.StrategyVector, VecWidth: 4})
//	if err != nil {
//	    return err
//	}
//	out := make([]complex64, plan.OutLen())
//	err = plan.Multiply(out, []complex64{1, 1, 1}) // out = [3 3]
//
// Complex products are rounded explicitly so no fused multiply-add changes
// the operation order between architectures.
package algospmv
