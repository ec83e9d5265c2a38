// Package cmath holds the complex64 primitives shared by every SpMV kernel.
//
// Products are rounded through explicit float32 conversions so the compiler
// cannot fuse them into multiply-add instructions. The resulting operation
// order is the same on every architecture, which keeps scalar results
// bit-reproducible and reduction trees deterministic for a fixed width.
package cmath

// Mul returns a*b computed as (ar*br - ai*bi, ar*bi + ai*br).
func Mul(a, b complex64) complex64 {
	ar, ai := real(a), imag(a)
	br, bi := real(b), imag(b)

	re := float32(ar*br) - float32(ai*bi)
	im := float32(ar*bi) + float32(ai*br)

	return complex(re, im)
}

// Add returns a+b as a fresh value.
func Add(a, b complex64) complex64 {
	return complex(real(a)+real(b), imag(a)+imag(b))
}

// MulAdd returns acc + a*b. The product is rounded before the sum.
func MulAdd(acc, a, b complex64) complex64 {
	return Add(acc, Mul(a, b))
}
