// Package poly implements polynomials over the torus and
// their Fourier-domain representation for fast negacyclic multiplication.
package poly

import (
	"github.com/SNUCP/sparse-tfhe/math/num"
	"github.com/SNUCP/sparse-tfhe/math/vec"
)

// Poly is a polynomial over the torus modulo X^N + 1.
type Poly[T num.Unsigned] struct {
	Coeffs []T
}

// NewPoly allocates a new polynomial of degree N.
//
// Panics when N is not a power of two.
func NewPoly[T num.Unsigned](N int) Poly[T] {
	if !num.IsPowerOfTwo(N) {
		panic("degree not power of two")
	}
	return Poly[T]{Coeffs: make([]T, N)}
}

// Degree returns the degree of the polynomial.
func (p Poly[T]) Degree() int {
	return len(p.Coeffs)
}

// Copy returns a copy of the polynomial.
func (p Poly[T]) Copy() Poly[T] {
	return Poly[T]{Coeffs: vec.Copy(p.Coeffs)}
}

// CopyFrom copies p0 to p.
func (p *Poly[T]) CopyFrom(p0 Poly[T]) {
	vec.CopyAssign(p0.Coeffs, p.Coeffs)
}

// Clear clears all the coefficients to zero.
func (p Poly[T]) Clear() {
	for i := range p.Coeffs {
		p.Coeffs[i] = 0
	}
}

// Equals checks if p0 equals p.
func (p Poly[T]) Equals(p0 Poly[T]) bool {
	return vec.Equals(p.Coeffs, p0.Coeffs)
}

// FourierPoly is a polynomial in the Fourier domain.
// It holds the evaluations at the N/2 primitive 2N-th roots of unity ζ^{4k+1}.
// The remaining evaluations are their conjugates.
type FourierPoly struct {
	Coeffs []complex128
}

// NewFourierPoly allocates a new Fourier polynomial of degree N.
//
// Panics when N is not a power of two or N < 4.
func NewFourierPoly(N int) FourierPoly {
	if !num.IsPowerOfTwo(N) || N < 4 {
		panic("degree not power of two or too small")
	}
	return FourierPoly{Coeffs: make([]complex128, N/2)}
}

// Degree returns the degree of the polynomial.
func (fp FourierPoly) Degree() int {
	return 2 * len(fp.Coeffs)
}

// Copy returns a copy of the polynomial.
func (fp FourierPoly) Copy() FourierPoly {
	return FourierPoly{Coeffs: vec.Copy(fp.Coeffs)}
}

// CopyFrom copies fp0 to fp.
func (fp *FourierPoly) CopyFrom(fp0 FourierPoly) {
	vec.CopyAssign(fp0.Coeffs, fp.Coeffs)
}

// Clear clears all the coefficients to zero.
func (fp FourierPoly) Clear() {
	for i := range fp.Coeffs {
		fp.Coeffs[i] = 0
	}
}

// Equals checks if fp0 equals fp.
func (fp FourierPoly) Equals(fp0 FourierPoly) bool {
	return vec.Equals(fp.Coeffs, fp0.Coeffs)
}
