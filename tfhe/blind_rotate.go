package tfhe

import (
	"fmt"
)

// BlindRotator homomorphically multiplies an accumulator by X^(sum bara_i * s_i),
// where s is the LWE key encrypted in the bootstrapping key.
//
// Every strategy mutates acc in place and leaves the same monomial applied to it,
// up to noise.
type BlindRotator[T TorusInt] interface {
	// Strategy returns the algorithm of this rotator.
	Strategy() BlindRotateStrategy
	// BlindRotateAssign rotates acc by bara, which should have length LWEDimension
	// with values in [0, 2N).
	BlindRotateAssign(acc GLWECiphertext[T], bara []int)
}

// BlindRotator returns the BlindRotator for the strategy of this Evaluator.
// The returned rotator uses the buffers of this Evaluator.
func (e *Evaluator[T]) BlindRotator() BlindRotator[T] {
	switch e.strategy {
	case StrategyGroupedCombine:
		return groupedCombineRotator[T]{e: e}
	case StrategyHoistedMux:
		return hoistedMuxRotator[T]{e: e}
	case StrategyDense:
		return denseRotator[T]{e: e}
	}
	panic(fmt.Sprintf("invalid blind rotation strategy %v", e.strategy))
}

// BlindRotateAssign rotates acc by bara using the strategy of this Evaluator.
func (e *Evaluator[T]) BlindRotateAssign(acc GLWECiphertext[T], bara []int) {
	e.BlindRotator().BlindRotateAssign(acc, bara)
}

// checkBlindRotate panics if acc, bara and the bootstrapping key do not agree with the parameters.
func (e *Evaluator[T]) checkBlindRotate(acc GLWECiphertext[T], bara []int) {
	params := e.Parameters
	switch {
	case params.hammingWeight*params.blockSize != params.lweDimension:
		panic(fmt.Sprintf("HammingWeight %d does not divide LWEDimension %d", params.hammingWeight, params.lweDimension))
	case len(bara) != params.lweDimension:
		panic(fmt.Sprintf("rotation index length %d does not match LWEDimension %d", len(bara), params.lweDimension))
	case len(e.EvaluationKey.BootstrapKey.Value) != params.lweDimension:
		panic("bootstrapping key length does not match LWEDimension")
	case len(acc.Value) != params.glweRank+1 || acc.Value[0].Degree() != params.polyDegree:
		panic("accumulator does not match GLWERank or PolyDegree")
	case len(e.EvaluationKey.BootstrapKey.Value[0].Value) != params.glweRank+1:
		panic("bootstrapping key does not match GLWERank")
	case e.EvaluationKey.BootstrapKey.Value[0].Value[0].Value[0].Value[0].Degree() != params.polyDegree:
		panic("bootstrapping key does not match PolyDegree")
	}
}

// groupedCombineRotator combines the selectors of a block into
// C = sum X^bara_j * bsk_j, and computes one external product acc * C per block.
//
// This requires at most one nonzero key entry per block.
type groupedCombineRotator[T TorusInt] struct {
	e *Evaluator[T]
}

// Strategy returns StrategyGroupedCombine.
func (r groupedCombineRotator[T]) Strategy() BlindRotateStrategy {
	return StrategyGroupedCombine
}

// BlindRotateAssign rotates acc by bara.
func (r groupedCombineRotator[T]) BlindRotateAssign(acc GLWECiphertext[T], bara []int) {
	e := r.e
	e.checkBlindRotate(acc, bara)
	if !e.Parameters.IsSparse() {
		panic("GroupedCombine requires a block sparse secret key")
	}

	bsk := e.EvaluationKey.BootstrapKey.Value
	blockSize := e.Parameters.blockSize
	for i := 0; i < e.Parameters.hammingWeight; i++ {
		start := i * blockSize
		e.MonomialMulFourierGGSWAssign(bsk[start], bara[start], e.buffer.ctCombined)
		for j := start + 1; j < start+blockSize; j++ {
			e.MonomialMulAddFourierGGSWAssign(bsk[j], bara[j], e.buffer.ctCombined)
		}
		e.ExternalProductAssign(e.buffer.ctCombined, acc, acc)
	}
}

// hoistedMuxRotator decomposes the accumulator once per block,
// and computes acc + sum (X^bara_j - 1) * (acc * bsk_j) on the shared decomposition.
//
// The block result is written to the buffer not holding the current accumulator,
// so two buffers alternate without copying.
type hoistedMuxRotator[T TorusInt] struct {
	e *Evaluator[T]
}

// Strategy returns StrategyHoistedMux.
func (r hoistedMuxRotator[T]) Strategy() BlindRotateStrategy {
	return StrategyHoistedMux
}

// BlindRotateAssign rotates acc by bara.
func (r hoistedMuxRotator[T]) BlindRotateAssign(acc GLWECiphertext[T], bara []int) {
	e := r.e
	e.checkBlindRotate(acc, bara)

	accs := [2]GLWECiphertext[T]{acc, e.buffer.ctAccNext}
	cur := 0
	for i := 0; i < e.Parameters.hammingWeight; i++ {
		e.hoistedBlockAssign(accs[cur], i*e.Parameters.blockSize, bara, accs[1-cur])
		cur = 1 - cur
	}

	if cur == 1 {
		acc.CopyFrom(e.buffer.ctAccNext)
	}
}

// hoistedBlockAssign computes the block of positions [start, start + BlockSize),
// and writes the result to ctOut. ctAcc and ctOut should not overlap.
func (e *Evaluator[T]) hoistedBlockAssign(ctAcc GLWECiphertext[T], start int, bara []int, ctOut GLWECiphertext[T]) {
	bsk := e.EvaluationKey.BootstrapKey.Value

	e.decomposeFourierGLWEAssign(ctAcc, e.buffer.ctAccFourierDecomposed)
	for j := start; j < start+e.Parameters.blockSize; j++ {
		e.ExternalProductFourierDecomposedFourierGLWEAssign(bsk[j], e.buffer.ctAccFourierDecomposed, e.buffer.ctFourierProd)
		e.PolyEvaluator.MonomialSubOneToFourierPolyAssign(bara[j], e.buffer.fMono)
		if j == start {
			e.FourierPolyMulFourierGLWEAssign(e.buffer.ctFourierProd, e.buffer.fMono, e.buffer.ctFourierAcc)
		} else {
			e.FourierPolyMulAddFourierGLWEAssign(e.buffer.ctFourierProd, e.buffer.fMono, e.buffer.ctFourierAcc)
		}
	}

	for k := 0; k < e.Parameters.glweRank+1; k++ {
		e.PolyEvaluator.ToPolyAssignUnsafe(e.buffer.ctFourierAcc.Value[k], ctOut.Value[k])
	}
	e.AddGLWEAssign(ctOut, ctAcc, ctOut)
}

// denseRotator computes one CMux per LWE coordinate.
// It is valid for any binary key.
type denseRotator[T TorusInt] struct {
	e *Evaluator[T]
}

// Strategy returns StrategyDense.
func (r denseRotator[T]) Strategy() BlindRotateStrategy {
	return StrategyDense
}

// BlindRotateAssign rotates acc by bara.
func (r denseRotator[T]) BlindRotateAssign(acc GLWECiphertext[T], bara []int) {
	e := r.e
	e.checkBlindRotate(acc, bara)

	bsk := e.EvaluationKey.BootstrapKey.Value
	for i := 0; i < e.Parameters.lweDimension; i++ {
		e.decomposeFourierGLWEAssign(acc, e.buffer.ctAccFourierDecomposed)
		e.ExternalProductFourierDecomposedFourierGLWEAssign(bsk[i], e.buffer.ctAccFourierDecomposed, e.buffer.ctFourierProd)
		e.PolyEvaluator.MonomialSubOneToFourierPolyAssign(bara[i], e.buffer.fMono)
		e.FourierPolyMulFourierGLWEAssign(e.buffer.ctFourierProd, e.buffer.fMono, e.buffer.ctFourierAcc)

		for k := 0; k < e.Parameters.glweRank+1; k++ {
			e.PolyEvaluator.ToPolyAddAssignUnsafe(e.buffer.ctFourierAcc.Value[k], acc.Value[k])
		}
	}
}
