package tfhe

import (
	"github.com/SNUCP/sparse-tfhe/math/poly"
)

// Decomposer performs the gadget decomposition.
//
// Decomposer is not safe for concurrent use.
// Use [*Decomposer.ShallowCopy] to get a safe copy.
type Decomposer[T TorusInt] struct {
	polyDegree int
	maxLevel   int

	buffer decompositionBuffer[T]
}

// decompositionBuffer contains buffer values for Decomposer.
type decompositionBuffer[T TorusInt] struct {
	// polyDecomposed holds the decomposed polynomial.
	polyDecomposed []poly.Poly[T]
	// scalarDecomposed holds the decomposed scalar.
	scalarDecomposed []T
}

// NewDecomposer allocates a new Decomposer
// for polynomials of degree N and gadgets of length at most maxLevel.
func NewDecomposer[T TorusInt](N, maxLevel int) *Decomposer[T] {
	return &Decomposer[T]{
		polyDegree: N,
		maxLevel:   maxLevel,
		buffer:     newDecompositionBuffer[T](N, maxLevel),
	}
}

// newDecompositionBuffer allocates an empty decompositionBuffer.
func newDecompositionBuffer[T TorusInt](N, maxLevel int) decompositionBuffer[T] {
	polyDecomposed := make([]poly.Poly[T], maxLevel)
	for i := range polyDecomposed {
		polyDecomposed[i] = poly.NewPoly[T](N)
	}

	return decompositionBuffer[T]{
		polyDecomposed:   polyDecomposed,
		scalarDecomposed: make([]T, maxLevel),
	}
}

// ShallowCopy returns a shallow copy of this Decomposer.
// Returned Decomposer is safe for concurrent use.
func (d *Decomposer[T]) ShallowCopy() *Decomposer[T] {
	return NewDecomposer[T](d.polyDegree, d.maxLevel)
}

// DecomposeScalar decomposes x with respect to gadgetParams into balanced digits in [-Base/2, Base/2).
func (d *Decomposer[T]) DecomposeScalar(x T, gadgetParams GadgetParameters[T]) []T {
	decomposedOut := make([]T, gadgetParams.level)
	d.DecomposeScalarAssign(x, gadgetParams, decomposedOut)
	return decomposedOut
}

// DecomposeScalarAssign decomposes x with respect to gadgetParams and writes it to decomposedOut.
// Digits are balanced, lying in [-Base/2, Base/2), and are stored in two's complement.
// decomposedOut[0] is the most significant digit.
func (d *Decomposer[T]) DecomposeScalarAssign(x T, gadgetParams GadgetParameters[T], decomposedOut []T) {
	mask := gadgetParams.base - 1
	half := gadgetParams.base >> 1

	x += gadgetParams.signedOffset
	for i := 0; i < gadgetParams.level; i++ {
		decomposedOut[i] = ((x >> gadgetParams.ScaledBaseLog(i)) & mask) - half
	}
}

// DecomposeScalarUnsignedAssign decomposes x with respect to gadgetParams and writes it to decomposedOut.
// Digits lie in [0, Base).
func (d *Decomposer[T]) DecomposeScalarUnsignedAssign(x T, gadgetParams GadgetParameters[T], decomposedOut []T) {
	mask := gadgetParams.base - 1

	x += gadgetParams.unsignedOffset
	for i := 0; i < gadgetParams.level; i++ {
		decomposedOut[i] = (x >> gadgetParams.ScaledBaseLog(i)) & mask
	}
}

// RecomposeScalar returns the sum of decomposed[i] multiplied by the i-th gadget element.
func (d *Decomposer[T]) RecomposeScalar(decomposed []T, gadgetParams GadgetParameters[T]) T {
	var x T
	for i := 0; i < gadgetParams.level; i++ {
		x += decomposed[i] << gadgetParams.ScaledBaseLog(i)
	}
	return x
}

// DecomposePoly decomposes p with respect to gadgetParams.
func (d *Decomposer[T]) DecomposePoly(p poly.Poly[T], gadgetParams GadgetParameters[T]) []poly.Poly[T] {
	decomposedOut := make([]poly.Poly[T], gadgetParams.level)
	for i := range decomposedOut {
		decomposedOut[i] = poly.NewPoly[T](p.Degree())
	}
	d.DecomposePolyAssign(p, gadgetParams, decomposedOut)
	return decomposedOut
}

// DecomposePolyAssign decomposes p with respect to gadgetParams and writes it to decomposedOut.
// Each coefficient is decomposed as in [*Decomposer.DecomposeScalarAssign].
func (d *Decomposer[T]) DecomposePolyAssign(p poly.Poly[T], gadgetParams GadgetParameters[T], decomposedOut []poly.Poly[T]) {
	mask := gadgetParams.base - 1
	half := gadgetParams.base >> 1

	for j, x := range p.Coeffs {
		x += gadgetParams.signedOffset
		for i := 0; i < gadgetParams.level; i++ {
			decomposedOut[i].Coeffs[j] = ((x >> gadgetParams.ScaledBaseLog(i)) & mask) - half
		}
	}
}
