package poly

import (
	"math"
	"math/cmplx"

	"github.com/SNUCP/sparse-tfhe/math/num"
)

// Evaluator computes polynomial operations over the torus modulo X^N + 1.
// Multiplication goes through the twisted N/2-point complex FFT.
//
// Evaluator is not safe for concurrent use.
// Use [*Evaluator.ShallowCopy] to get a safe copy.
type Evaluator[T num.Unsigned] struct {
	degree int
	sizeT  int

	// q is 2^sizeT as float64, and qInv its inverse.
	q    float64
	qInv float64

	// roots holds ζ^m for 0 <= m < 2N, where ζ = exp(iπ/N).
	roots []complex128
	// twist holds ζ^j for 0 <= j < N/2.
	twist []complex128
	// twistInv holds ζ^{-j} / (N/2) for 0 <= j < N/2.
	twistInv []complex128
	// tw and twInv hold the forward and inverse FFT twiddle factors.
	tw    []complex128
	twInv []complex128
	// revIdx is the bit reversal permutation of size N/2.
	revIdx []int

	buffer evaluationBuffer[T]
}

// evaluationBuffer contains buffer values for Evaluator.
type evaluationBuffer[T num.Unsigned] struct {
	// fp0, fp1 hold the operands of MulPolyAssign.
	fp0 FourierPoly
	fp1 FourierPoly
	// fpInv holds the intermediate value of ToPolyAssign.
	fpInv FourierPoly
	// pRot holds the intermediate value of in-place monomial multiplication.
	pRot Poly[T]
}

// NewEvaluator allocates a new Evaluator of degree N.
//
// Panics when N is not a power of two or N < 4.
func NewEvaluator[T num.Unsigned](N int) *Evaluator[T] {
	if !num.IsPowerOfTwo(N) || N < 4 {
		panic("degree not power of two or too small")
	}

	M := N / 2
	sizeT := num.SizeT[T]()

	roots := make([]complex128, 2*N)
	for m := 0; m < 2*N; m++ {
		roots[m] = cmplx.Rect(1, math.Pi*float64(m)/float64(N))
	}

	twist := make([]complex128, M)
	twistInv := make([]complex128, M)
	for j := 0; j < M; j++ {
		twist[j] = roots[j]
		twistInv[j] = cmplx.Conj(roots[j]) / complex(float64(M), 0)
	}

	tw := make([]complex128, M/2)
	twInv := make([]complex128, M/2)
	for j := 0; j < M/2; j++ {
		tw[j] = cmplx.Rect(1, 2*math.Pi*float64(j)/float64(M))
		twInv[j] = cmplx.Conj(tw[j])
	}

	logM := num.Log2(M)
	revIdx := make([]int, M)
	for j := 0; j < M; j++ {
		revIdx[j] = reverseBits(j, logM)
	}

	return &Evaluator[T]{
		degree: N,
		sizeT:  sizeT,

		q:    math.Exp2(float64(sizeT)),
		qInv: math.Exp2(-float64(sizeT)),

		roots:    roots,
		twist:    twist,
		twistInv: twistInv,
		tw:       tw,
		twInv:    twInv,
		revIdx:   revIdx,

		buffer: newEvaluationBuffer[T](N),
	}
}

// newEvaluationBuffer allocates an empty evaluationBuffer.
func newEvaluationBuffer[T num.Unsigned](N int) evaluationBuffer[T] {
	return evaluationBuffer[T]{
		fp0:   NewFourierPoly(N),
		fp1:   NewFourierPoly(N),
		fpInv: NewFourierPoly(N),
		pRot:  NewPoly[T](N),
	}
}

// ShallowCopy returns a shallow copy of this Evaluator.
// Returned Evaluator is safe for concurrent use.
func (e *Evaluator[T]) ShallowCopy() *Evaluator[T] {
	eCopy := *e
	eCopy.buffer = newEvaluationBuffer[T](e.degree)
	return &eCopy
}

// Degree returns the degree of polynomials this Evaluator handles.
func (e *Evaluator[T]) Degree() int {
	return e.degree
}

// reverseBits reverses the lowest logN bits of x.
func reverseBits(x, logN int) int {
	r := 0
	for i := 0; i < logN; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

// fftInPlace computes the in-order radix-2 FFT of coeffs with twiddle factors twiddle.
func (e *Evaluator[T]) fftInPlace(coeffs, twiddle []complex128) {
	M := len(coeffs)
	for i, r := range e.revIdx {
		if i < r {
			coeffs[i], coeffs[r] = coeffs[r], coeffs[i]
		}
	}

	for size := 2; size <= M; size <<= 1 {
		half, step := size>>1, M/size
		for start := 0; start < M; start += size {
			for j, k := start, 0; j < start+half; j, k = j+1, k+step {
				u, v := coeffs[j], coeffs[j+half]*twiddle[k]
				coeffs[j], coeffs[j+half] = u+v, u-v
			}
		}
	}
}

// toFloat converts a torus element to its centered real representative.
func (e *Evaluator[T]) toFloat(x T) float64 {
	return float64(num.ToSigned(x))
}

// fromFloat rounds x to the nearest integer modulo 2^sizeT.
func (e *Evaluator[T]) fromFloat(x float64) T {
	x -= math.Round(x*e.qInv) * e.q
	return T(int64(math.Round(x)))
}

// ToFourierPoly transforms Poly to FourierPoly and returns it.
func (e *Evaluator[T]) ToFourierPoly(p Poly[T]) FourierPoly {
	fpOut := NewFourierPoly(e.degree)
	e.ToFourierPolyAssign(p, fpOut)
	return fpOut
}

// ToFourierPolyAssign transforms Poly to FourierPoly and writes it to fpOut.
func (e *Evaluator[T]) ToFourierPolyAssign(p Poly[T], fpOut FourierPoly) {
	M := e.degree / 2
	for j := 0; j < M; j++ {
		c := complex(e.toFloat(p.Coeffs[j]), e.toFloat(p.Coeffs[j+M]))
		fpOut.Coeffs[j] = c * e.twist[j]
	}
	e.fftInPlace(fpOut.Coeffs, e.tw)
}

// ToPoly transforms FourierPoly to Poly and returns it.
func (e *Evaluator[T]) ToPoly(fp FourierPoly) Poly[T] {
	pOut := NewPoly[T](e.degree)
	e.ToPolyAssign(fp, pOut)
	return pOut
}

// ToPolyAssign transforms FourierPoly to Poly and writes it to pOut.
func (e *Evaluator[T]) ToPolyAssign(fp FourierPoly, pOut Poly[T]) {
	e.buffer.fpInv.CopyFrom(fp)
	e.ToPolyAssignUnsafe(e.buffer.fpInv, pOut)
}

// ToPolyAssignUnsafe transforms FourierPoly to Poly and writes it to pOut.
// This overwrites fp.
func (e *Evaluator[T]) ToPolyAssignUnsafe(fp FourierPoly, pOut Poly[T]) {
	e.fftInPlace(fp.Coeffs, e.twInv)
	M := e.degree / 2
	for j := 0; j < M; j++ {
		c := fp.Coeffs[j] * e.twistInv[j]
		pOut.Coeffs[j] = e.fromFloat(real(c))
		pOut.Coeffs[j+M] = e.fromFloat(imag(c))
	}
}

// ToPolyAddAssign transforms FourierPoly to Poly and adds it to pOut.
func (e *Evaluator[T]) ToPolyAddAssign(fp FourierPoly, pOut Poly[T]) {
	e.buffer.fpInv.CopyFrom(fp)
	e.ToPolyAddAssignUnsafe(e.buffer.fpInv, pOut)
}

// ToPolyAddAssignUnsafe transforms FourierPoly to Poly and adds it to pOut.
// This overwrites fp.
func (e *Evaluator[T]) ToPolyAddAssignUnsafe(fp FourierPoly, pOut Poly[T]) {
	e.fftInPlace(fp.Coeffs, e.twInv)
	M := e.degree / 2
	for j := 0; j < M; j++ {
		c := fp.Coeffs[j] * e.twistInv[j]
		pOut.Coeffs[j] += e.fromFloat(real(c))
		pOut.Coeffs[j+M] += e.fromFloat(imag(c))
	}
}
