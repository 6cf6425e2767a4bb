package poly

import (
	"github.com/SNUCP/sparse-tfhe/math/vec"
)

// AddPolyAssign computes pOut = p0 + p1.
func (e *Evaluator[T]) AddPolyAssign(p0, p1, pOut Poly[T]) {
	vec.AddAssign(p0.Coeffs, p1.Coeffs, pOut.Coeffs)
}

// SubPolyAssign computes pOut = p0 - p1.
func (e *Evaluator[T]) SubPolyAssign(p0, p1, pOut Poly[T]) {
	vec.SubAssign(p0.Coeffs, p1.Coeffs, pOut.Coeffs)
}

// NegPolyAssign computes pOut = -p0.
func (e *Evaluator[T]) NegPolyAssign(p0, pOut Poly[T]) {
	vec.NegAssign(p0.Coeffs, pOut.Coeffs)
}

// MulPoly returns p0 * p1.
func (e *Evaluator[T]) MulPoly(p0, p1 Poly[T]) Poly[T] {
	pOut := NewPoly[T](e.degree)
	e.MulPolyAssign(p0, p1, pOut)
	return pOut
}

// MulPolyAssign computes pOut = p0 * p1.
// The product is computed in the Fourier domain,
// so one of the operands should have small coefficients to stay exact.
func (e *Evaluator[T]) MulPolyAssign(p0, p1, pOut Poly[T]) {
	e.ToFourierPolyAssign(p0, e.buffer.fp0)
	e.ToFourierPolyAssign(p1, e.buffer.fp1)
	e.MulFourierPolyAssign(e.buffer.fp0, e.buffer.fp1, e.buffer.fp0)
	e.ToPolyAssignUnsafe(e.buffer.fp0, pOut)
}

// MulAddPolyAssign computes pOut += p0 * p1.
func (e *Evaluator[T]) MulAddPolyAssign(p0, p1, pOut Poly[T]) {
	e.ToFourierPolyAssign(p0, e.buffer.fp0)
	e.ToFourierPolyAssign(p1, e.buffer.fp1)
	e.MulFourierPolyAssign(e.buffer.fp0, e.buffer.fp1, e.buffer.fp0)
	e.ToPolyAddAssignUnsafe(e.buffer.fp0, pOut)
}

// MonomialMulPoly returns X^d * p0.
func (e *Evaluator[T]) MonomialMulPoly(p0 Poly[T], d int) Poly[T] {
	pOut := NewPoly[T](e.degree)
	e.MonomialMulPolyAssign(p0, d, pOut)
	return pOut
}

// MonomialMulPolyAssign computes pOut = X^d * p0 modulo X^N + 1.
// d is taken modulo 2N, so X^N acts as -1.
// p0 and pOut should not overlap. For inplace multiplication, use [*Evaluator.MonomialMulPolyInPlace].
func (e *Evaluator[T]) MonomialMulPolyAssign(p0 Poly[T], d int, pOut Poly[T]) {
	N := e.degree
	d &= 2*N - 1

	if d < N {
		for j := 0; j < d; j++ {
			pOut.Coeffs[j] = -p0.Coeffs[j-d+N]
		}
		for j := d; j < N; j++ {
			pOut.Coeffs[j] = p0.Coeffs[j-d]
		}
		return
	}

	d -= N
	for j := 0; j < d; j++ {
		pOut.Coeffs[j] = p0.Coeffs[j-d+N]
	}
	for j := d; j < N; j++ {
		pOut.Coeffs[j] = -p0.Coeffs[j-d]
	}
}

// MonomialMulPolyInPlace computes p0 = X^d * p0.
func (e *Evaluator[T]) MonomialMulPolyInPlace(p0 Poly[T], d int) {
	e.buffer.pRot.CopyFrom(p0)
	e.MonomialMulPolyAssign(e.buffer.pRot, d, p0)
}

// MonomialToFourierPolyAssign writes the Fourier transform of X^d to fpOut.
// This costs N/2 table lookups instead of a transform.
func (e *Evaluator[T]) MonomialToFourierPolyAssign(d int, fpOut FourierPoly) {
	mask := 2*e.degree - 1
	d &= mask
	for k, idx := 0, d; k < len(fpOut.Coeffs); k, idx = k+1, (idx+4*d)&mask {
		fpOut.Coeffs[k] = e.roots[idx]
	}
}

// MonomialSubOneToFourierPolyAssign writes the Fourier transform of X^d - 1 to fpOut.
func (e *Evaluator[T]) MonomialSubOneToFourierPolyAssign(d int, fpOut FourierPoly) {
	mask := 2*e.degree - 1
	d &= mask
	for k, idx := 0, d; k < len(fpOut.Coeffs); k, idx = k+1, (idx+4*d)&mask {
		fpOut.Coeffs[k] = e.roots[idx] - 1
	}
}

// AddFourierPolyAssign computes fpOut = fp0 + fp1.
func (e *Evaluator[T]) AddFourierPolyAssign(fp0, fp1, fpOut FourierPoly) {
	for i := range fpOut.Coeffs {
		fpOut.Coeffs[i] = fp0.Coeffs[i] + fp1.Coeffs[i]
	}
}

// SubFourierPolyAssign computes fpOut = fp0 - fp1.
func (e *Evaluator[T]) SubFourierPolyAssign(fp0, fp1, fpOut FourierPoly) {
	for i := range fpOut.Coeffs {
		fpOut.Coeffs[i] = fp0.Coeffs[i] - fp1.Coeffs[i]
	}
}

// MulFourierPolyAssign computes fpOut = fp0 * fp1.
func (e *Evaluator[T]) MulFourierPolyAssign(fp0, fp1, fpOut FourierPoly) {
	for i := range fpOut.Coeffs {
		fpOut.Coeffs[i] = fp0.Coeffs[i] * fp1.Coeffs[i]
	}
}

// MulAddFourierPolyAssign computes fpOut += fp0 * fp1.
func (e *Evaluator[T]) MulAddFourierPolyAssign(fp0, fp1, fpOut FourierPoly) {
	for i := range fpOut.Coeffs {
		fpOut.Coeffs[i] += fp0.Coeffs[i] * fp1.Coeffs[i]
	}
}
