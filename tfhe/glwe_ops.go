package tfhe

import (
	"github.com/SNUCP/sparse-tfhe/math/poly"
)

// AddGLWEAssign computes ctOut = ct0 + ct1.
func (e *Evaluator[T]) AddGLWEAssign(ct0, ct1, ctOut GLWECiphertext[T]) {
	for i := 0; i < e.Parameters.glweRank+1; i++ {
		e.PolyEvaluator.AddPolyAssign(ct0.Value[i], ct1.Value[i], ctOut.Value[i])
	}
}

// SubGLWEAssign computes ctOut = ct0 - ct1.
func (e *Evaluator[T]) SubGLWEAssign(ct0, ct1, ctOut GLWECiphertext[T]) {
	for i := 0; i < e.Parameters.glweRank+1; i++ {
		e.PolyEvaluator.SubPolyAssign(ct0.Value[i], ct1.Value[i], ctOut.Value[i])
	}
}

// MonomialMulGLWEAssign computes ctOut = X^d * ct0.
// ct0 and ctOut should not overlap.
func (e *Evaluator[T]) MonomialMulGLWEAssign(ct0 GLWECiphertext[T], d int, ctOut GLWECiphertext[T]) {
	for i := 0; i < e.Parameters.glweRank+1; i++ {
		e.PolyEvaluator.MonomialMulPolyAssign(ct0.Value[i], d, ctOut.Value[i])
	}
}

// TrivialGLWE returns the noiseless GLWE encryption of p, with zero mask.
func (e *Evaluator[T]) TrivialGLWE(p poly.Poly[T]) GLWECiphertext[T] {
	ctOut := NewGLWECiphertext(e.Parameters)
	e.TrivialGLWEAssign(p, ctOut)
	return ctOut
}

// TrivialGLWEAssign writes the noiseless GLWE encryption of p to ctOut.
func (e *Evaluator[T]) TrivialGLWEAssign(p poly.Poly[T], ctOut GLWECiphertext[T]) {
	ctOut.Value[0].CopyFrom(p)
	for i := 1; i < e.Parameters.glweRank+1; i++ {
		ctOut.Value[i].Clear()
	}
}

// ToFourierGLWECiphertextAssign transforms GLWE ciphertext to Fourier domain and writes it to ctOut.
func (e *Evaluator[T]) ToFourierGLWECiphertextAssign(ct GLWECiphertext[T], ctOut FourierGLWECiphertext[T]) {
	for i := 0; i < e.Parameters.glweRank+1; i++ {
		e.PolyEvaluator.ToFourierPolyAssign(ct.Value[i], ctOut.Value[i])
	}
}

// ToGLWECiphertextAssign transforms FourierGLWE ciphertext to standard domain and writes it to ctOut.
func (e *Evaluator[T]) ToGLWECiphertextAssign(ct FourierGLWECiphertext[T], ctOut GLWECiphertext[T]) {
	for i := 0; i < e.Parameters.glweRank+1; i++ {
		e.PolyEvaluator.ToPolyAssign(ct.Value[i], ctOut.Value[i])
	}
}

// AddFourierGLWEAssign computes ctOut = ct0 + ct1.
func (e *Evaluator[T]) AddFourierGLWEAssign(ct0, ct1, ctOut FourierGLWECiphertext[T]) {
	for i := 0; i < e.Parameters.glweRank+1; i++ {
		e.PolyEvaluator.AddFourierPolyAssign(ct0.Value[i], ct1.Value[i], ctOut.Value[i])
	}
}

// SubFourierGLWEAssign computes ctOut = ct0 - ct1.
func (e *Evaluator[T]) SubFourierGLWEAssign(ct0, ct1, ctOut FourierGLWECiphertext[T]) {
	for i := 0; i < e.Parameters.glweRank+1; i++ {
		e.PolyEvaluator.SubFourierPolyAssign(ct0.Value[i], ct1.Value[i], ctOut.Value[i])
	}
}

// FourierPolyMulFourierGLWEAssign computes ctOut = fp * ct0.
func (e *Evaluator[T]) FourierPolyMulFourierGLWEAssign(ct0 FourierGLWECiphertext[T], fp poly.FourierPoly, ctOut FourierGLWECiphertext[T]) {
	for i := 0; i < e.Parameters.glweRank+1; i++ {
		e.PolyEvaluator.MulFourierPolyAssign(ct0.Value[i], fp, ctOut.Value[i])
	}
}

// FourierPolyMulAddFourierGLWEAssign computes ctOut += fp * ct0.
func (e *Evaluator[T]) FourierPolyMulAddFourierGLWEAssign(ct0 FourierGLWECiphertext[T], fp poly.FourierPoly, ctOut FourierGLWECiphertext[T]) {
	for i := 0; i < e.Parameters.glweRank+1; i++ {
		e.PolyEvaluator.MulAddFourierPolyAssign(ct0.Value[i], fp, ctOut.Value[i])
	}
}
