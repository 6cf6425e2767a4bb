package tfhe

import (
	"github.com/SNUCP/sparse-tfhe/math/num"
	"github.com/SNUCP/sparse-tfhe/math/poly"
	"github.com/SNUCP/sparse-tfhe/math/vec"
)

// LookUpTable is a test vector for programmable bootstrapping.
// Its p-th coefficient, read anticyclically over 2N points,
// is the output for inputs of phase p / 2N.
type LookUpTable[T TorusInt] struct {
	// Value has length PolyDegree.
	Value poly.Poly[T]
}

// NewLookUpTable allocates an empty LookUpTable.
func NewLookUpTable[T TorusInt](params Parameters[T]) LookUpTable[T] {
	return LookUpTable[T]{Value: poly.NewPoly[T](params.polyDegree)}
}

// Copy returns a copy of the LUT.
func (lut LookUpTable[T]) Copy() LookUpTable[T] {
	return LookUpTable[T]{Value: lut.Value.Copy()}
}

// GenLookUpTable generates a lookup table based on function f.
// Input and output of f is cut by MessageModulus.
func (e *Evaluator[T]) GenLookUpTable(f func(int) int) LookUpTable[T] {
	lutOut := NewLookUpTable(e.Parameters)
	e.GenLookUpTableAssign(f, lutOut)
	return lutOut
}

// GenLookUpTableAssign generates a lookup table based on function f and writes it to lutOut.
// Inputs lie in [0, MessageModulus/2), and outputs are encoded modulo MessageModulus.
func (e *Evaluator[T]) GenLookUpTableAssign(f func(int) int, lutOut LookUpTable[T]) {
	e.GenLookUpTableFullAssign(func(x int) T { return encodeMessage(f(x), e.Parameters) }, lutOut)
}

// GenLookUpTableFullAssign generates a lookup table based on function f which outputs torus elements,
// and writes it to lutOut.
func (e *Evaluator[T]) GenLookUpTableFullAssign(f func(int) T, lutOut LookUpTable[T]) {
	N := e.Parameters.polyDegree
	M := int(e.Parameters.messageModulus)

	for x := 0; x < M/2; x++ {
		start := num.DivRound(2*x*N, M)
		end := num.DivRound(2*(x+1)*N, M)
		y := f(x)
		for xx := start; xx < end; xx++ {
			lutOut.Value.Coeffs[xx] = y
		}
	}

	offset := num.DivRound(N, M)
	vec.RotateInPlace(lutOut.Value.Coeffs, -offset)
	for i := N - offset; i < N; i++ {
		lutOut.Value.Coeffs[i] = -lutOut.Value.Coeffs[i]
	}
}
