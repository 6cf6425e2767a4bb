package tfhe

import (
	"github.com/SNUCP/sparse-tfhe/math/poly"
)

// MonomialMulFourierGGSWAssign computes ctOut = X^d * ct0.
func (e *Evaluator[T]) MonomialMulFourierGGSWAssign(ct0 FourierGGSWCiphertext[T], d int, ctOut FourierGGSWCiphertext[T]) {
	e.PolyEvaluator.MonomialToFourierPolyAssign(d, e.buffer.fMono)
	for i := range ct0.Value {
		for j := range ct0.Value[i].Value {
			e.FourierPolyMulFourierGLWEAssign(ct0.Value[i].Value[j], e.buffer.fMono, ctOut.Value[i].Value[j])
		}
	}
}

// MonomialMulAddFourierGGSWAssign computes ctOut += X^d * ct0.
func (e *Evaluator[T]) MonomialMulAddFourierGGSWAssign(ct0 FourierGGSWCiphertext[T], d int, ctOut FourierGGSWCiphertext[T]) {
	e.PolyEvaluator.MonomialToFourierPolyAssign(d, e.buffer.fMono)
	for i := range ct0.Value {
		for j := range ct0.Value[i].Value {
			e.FourierPolyMulAddFourierGLWEAssign(ct0.Value[i].Value[j], e.buffer.fMono, ctOut.Value[i].Value[j])
		}
	}
}

// AddFourierGGSWAssign computes ctOut = ct0 + ct1.
func (e *Evaluator[T]) AddFourierGGSWAssign(ct0, ct1, ctOut FourierGGSWCiphertext[T]) {
	for i := range ct0.Value {
		for j := range ct0.Value[i].Value {
			e.AddFourierGLWEAssign(ct0.Value[i].Value[j], ct1.Value[i].Value[j], ctOut.Value[i].Value[j])
		}
	}
}

// ExternalProduct returns the external product between ctFourierGGSW and ctGLWE.
func (e *Evaluator[T]) ExternalProduct(ctFourierGGSW FourierGGSWCiphertext[T], ctGLWE GLWECiphertext[T]) GLWECiphertext[T] {
	ctOut := NewGLWECiphertext(e.Parameters)
	e.ExternalProductAssign(ctFourierGGSW, ctGLWE, ctOut)
	return ctOut
}

// ExternalProductAssign computes the external product between ctFourierGGSW and ctGLWE and writes it to ctOut.
// ctGLWE and ctOut may be the same ciphertext.
func (e *Evaluator[T]) ExternalProductAssign(ctFourierGGSW FourierGGSWCiphertext[T], ctGLWE, ctOut GLWECiphertext[T]) {
	e.decomposeFourierGLWEAssign(ctGLWE, e.buffer.ctAccFourierDecomposed)
	e.ExternalProductFourierDecomposedFourierGLWEAssign(ctFourierGGSW, e.buffer.ctAccFourierDecomposed, e.buffer.ctFourierProd)
	for i := 0; i < e.Parameters.glweRank+1; i++ {
		e.PolyEvaluator.ToPolyAssignUnsafe(e.buffer.ctFourierProd.Value[i], ctOut.Value[i])
	}
}

// CMuxAssign computes ctOut = ct0 + ctFourierGGSW * (ct1 - ct0).
// If ctFourierGGSW encrypts 0, ctOut encrypts ct0; if it encrypts 1, ctOut encrypts ct1.
func (e *Evaluator[T]) CMuxAssign(ctFourierGGSW FourierGGSWCiphertext[T], ct0, ct1, ctOut GLWECiphertext[T]) {
	e.SubGLWEAssign(ct1, ct0, e.buffer.ctDiff)
	e.decomposeFourierGLWEAssign(e.buffer.ctDiff, e.buffer.ctAccFourierDecomposed)
	e.ExternalProductFourierDecomposedFourierGLWEAssign(ctFourierGGSW, e.buffer.ctAccFourierDecomposed, e.buffer.ctFourierProd)
	if &ctOut.Value[0].Coeffs[0] != &ct0.Value[0].Coeffs[0] {
		ctOut.CopyFrom(ct0)
	}
	for i := 0; i < e.Parameters.glweRank+1; i++ {
		e.PolyEvaluator.ToPolyAddAssignUnsafe(e.buffer.ctFourierProd.Value[i], ctOut.Value[i])
	}
}

// decomposeFourierGLWEAssign decomposes every polynomial of ct
// with respect to the blind rotation gadget, and transforms the digits to Fourier domain.
func (e *Evaluator[T]) decomposeFourierGLWEAssign(ct GLWECiphertext[T], decomposedOut [][]poly.FourierPoly) {
	gadgetParams := e.Parameters.blindRotateParameters
	polyDecomposed := e.Decomposer.buffer.polyDecomposed[:gadgetParams.level]
	for i := 0; i < e.Parameters.glweRank+1; i++ {
		e.Decomposer.DecomposePolyAssign(ct.Value[i], gadgetParams, polyDecomposed)
		for j := 0; j < gadgetParams.level; j++ {
			e.PolyEvaluator.ToFourierPolyAssign(polyDecomposed[j], decomposedOut[i][j])
		}
	}
}

// ExternalProductFourierDecomposedFourierGLWEAssign computes the external product
// between ctFourierGGSW and a decomposed GLWE ciphertext in Fourier domain, and writes it to ctOut.
func (e *Evaluator[T]) ExternalProductFourierDecomposedFourierGLWEAssign(ctFourierGGSW FourierGGSWCiphertext[T], ctFourierDecomposed [][]poly.FourierPoly, ctOut FourierGLWECiphertext[T]) {
	for i := 0; i < e.Parameters.glweRank+1; i++ {
		for j := 0; j < ctFourierGGSW.GadgetParameters.level; j++ {
			if i == 0 && j == 0 {
				e.FourierPolyMulFourierGLWEAssign(ctFourierGGSW.Value[i].Value[j], ctFourierDecomposed[i][j], ctOut)
			} else {
				e.FourierPolyMulAddFourierGLWEAssign(ctFourierGGSW.Value[i].Value[j], ctFourierDecomposed[i][j], ctOut)
			}
		}
	}
}
