package tfhe

import (
	"github.com/SNUCP/sparse-tfhe/math/poly"
)

// Evaluator evaluates homomorphic operations on ciphertexts.
// All ciphertexts should be encrypted with the same parameters and keys.
//
// Evaluator is not safe for concurrent use.
// Use [*Evaluator.ShallowCopy] to get a safe copy.
type Evaluator[T TorusInt] struct {
	// Parameters holds the parameters for this Evaluator.
	Parameters Parameters[T]

	// PolyEvaluator holds the polynomial evaluator for this Evaluator.
	PolyEvaluator *poly.Evaluator[T]
	// Decomposer holds the gadget decomposer for this Evaluator.
	Decomposer *Decomposer[T]

	// EvaluationKey holds the evaluation key for this Evaluator.
	EvaluationKey EvaluationKey[T]

	// strategy is the blind rotation algorithm used by this Evaluator.
	strategy BlindRotateStrategy
	// debug is the optional debug context. It is nil in production.
	debug *DebugContext[T]

	buffer evaluationBuffer[T]
}

// evaluationBuffer contains buffer values for Evaluator.
// Every value is overwritten by each call, so no state is carried between calls.
type evaluationBuffer[T TorusInt] struct {
	// bara holds the modulus switched mask of the bootstrapped ciphertext.
	bara []int

	// lut holds the test vector for the bootstrapping.
	lut LookUpTable[T]
	// testPoly holds the rotated test vector.
	testPoly poly.Poly[T]

	// ctAcc holds the accumulator.
	ctAcc GLWECiphertext[T]
	// ctAccNext holds the next value of the accumulator in the hoisted blind rotation.
	ctAccNext GLWECiphertext[T]
	// ctDiff holds the difference of CMux inputs.
	ctDiff GLWECiphertext[T]

	// ctAccFourierDecomposed holds the decomposed accumulator in Fourier domain.
	// Its shape is (GLWERank + 1) x Level.
	ctAccFourierDecomposed [][]poly.FourierPoly
	// ctFourierProd holds the result of the external product in Fourier domain.
	ctFourierProd FourierGLWECiphertext[T]
	// ctFourierAcc holds the sum of CMux terms of a block in Fourier domain.
	ctFourierAcc FourierGLWECiphertext[T]
	// ctCombined holds the combined selector of a block.
	ctCombined FourierGGSWCiphertext[T]
	// fMono holds the Fourier transform of X^a or X^a - 1.
	fMono poly.FourierPoly

	// ctExtract holds the extracted LWE ciphertext of dimension GLWEDimension.
	ctExtract LWECiphertext[T]
	// ctExtractAux is an additional extracted LWE ciphertext, used in MUX.
	ctExtractAux LWECiphertext[T]
	// ctGate holds the linear combination of gate inputs.
	ctGate LWECiphertext[T]
}

// NewEvaluator allocates an empty Evaluator based on parameters.
// The blind rotation strategy is the one of params.
// Does not copy evaluation keys, since they are large.
func NewEvaluator[T TorusInt](params Parameters[T], evk EvaluationKey[T]) *Evaluator[T] {
	maxLevel := max(params.blindRotateParameters.level, params.keySwitchParameters.level)
	return &Evaluator[T]{
		Parameters: params,

		PolyEvaluator: poly.NewEvaluator[T](params.polyDegree),
		Decomposer:    NewDecomposer[T](params.polyDegree, maxLevel),

		EvaluationKey: evk,

		strategy: params.blindRotateStrategy,

		buffer: newEvaluationBuffer(params),
	}
}

// newEvaluationBuffer allocates an empty evaluationBuffer.
func newEvaluationBuffer[T TorusInt](params Parameters[T]) evaluationBuffer[T] {
	ctAccFourierDecomposed := make([][]poly.FourierPoly, params.glweRank+1)
	for i := range ctAccFourierDecomposed {
		ctAccFourierDecomposed[i] = make([]poly.FourierPoly, params.blindRotateParameters.level)
		for j := range ctAccFourierDecomposed[i] {
			ctAccFourierDecomposed[i][j] = poly.NewFourierPoly(params.polyDegree)
		}
	}

	return evaluationBuffer[T]{
		bara: make([]int, params.lweDimension),

		lut:      NewLookUpTable(params),
		testPoly: poly.NewPoly[T](params.polyDegree),

		ctAcc:     NewGLWECiphertext(params),
		ctAccNext: NewGLWECiphertext(params),
		ctDiff:    NewGLWECiphertext(params),

		ctAccFourierDecomposed: ctAccFourierDecomposed,
		ctFourierProd:          NewFourierGLWECiphertext(params),
		ctFourierAcc:           NewFourierGLWECiphertext(params),
		ctCombined:             NewFourierGGSWCiphertext(params, params.blindRotateParameters),
		fMono:                  poly.NewFourierPoly(params.polyDegree),

		ctExtract:    NewLWECiphertextCustom[T](params.glweDimension),
		ctExtractAux: NewLWECiphertextCustom[T](params.glweDimension),
		ctGate:       NewLWECiphertext(params),
	}
}

// ShallowCopy returns a shallow copy of this Evaluator.
// Returned Evaluator is safe for concurrent use.
// The evaluation key is shared, not copied.
func (e *Evaluator[T]) ShallowCopy() *Evaluator[T] {
	return &Evaluator[T]{
		Parameters: e.Parameters,

		PolyEvaluator: e.PolyEvaluator.ShallowCopy(),
		Decomposer:    e.Decomposer.ShallowCopy(),

		EvaluationKey: e.EvaluationKey,

		strategy: e.strategy,
		debug:    e.debug,

		buffer: newEvaluationBuffer(e.Parameters),
	}
}

// WithStrategy returns a shallow copy of this Evaluator using the given blind rotation strategy.
//
// Panics when StrategyGroupedCombine is requested with dense parameters.
func (e *Evaluator[T]) WithStrategy(strategy BlindRotateStrategy) *Evaluator[T] {
	if strategy == StrategyGroupedCombine && !e.Parameters.IsSparse() {
		panic("GroupedCombine requires a block sparse secret key")
	}
	eCopy := e.ShallowCopy()
	eCopy.strategy = strategy
	return eCopy
}

// WithDebug returns a shallow copy of this Evaluator with the given debug context attached.
// Passing nil detaches the debug context.
func (e *Evaluator[T]) WithDebug(ctx *DebugContext[T]) *Evaluator[T] {
	eCopy := e.ShallowCopy()
	eCopy.debug = ctx
	return eCopy
}

// Strategy returns the blind rotation strategy of this Evaluator.
func (e *Evaluator[T]) Strategy() BlindRotateStrategy {
	return e.strategy
}
