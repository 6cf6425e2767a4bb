package tfhe

import (
	"github.com/SNUCP/sparse-tfhe/math/vec"
)

// AddLWE returns ct0 + ct1.
func (e *Evaluator[T]) AddLWE(ct0, ct1 LWECiphertext[T]) LWECiphertext[T] {
	ctOut := NewLWECiphertextCustom[T](ct0.Dimension())
	e.AddLWEAssign(ct0, ct1, ctOut)
	return ctOut
}

// AddLWEAssign computes ctOut = ct0 + ct1.
func (e *Evaluator[T]) AddLWEAssign(ct0, ct1, ctOut LWECiphertext[T]) {
	vec.AddAssign(ct0.Value, ct1.Value, ctOut.Value)
}

// SubLWE returns ct0 - ct1.
func (e *Evaluator[T]) SubLWE(ct0, ct1 LWECiphertext[T]) LWECiphertext[T] {
	ctOut := NewLWECiphertextCustom[T](ct0.Dimension())
	e.SubLWEAssign(ct0, ct1, ctOut)
	return ctOut
}

// SubLWEAssign computes ctOut = ct0 - ct1.
func (e *Evaluator[T]) SubLWEAssign(ct0, ct1, ctOut LWECiphertext[T]) {
	vec.SubAssign(ct0.Value, ct1.Value, ctOut.Value)
}

// NegLWE returns -ct.
func (e *Evaluator[T]) NegLWE(ct LWECiphertext[T]) LWECiphertext[T] {
	ctOut := NewLWECiphertextCustom[T](ct.Dimension())
	e.NegLWEAssign(ct, ctOut)
	return ctOut
}

// NegLWEAssign computes ctOut = -ct.
func (e *Evaluator[T]) NegLWEAssign(ct, ctOut LWECiphertext[T]) {
	vec.NegAssign(ct.Value, ctOut.Value)
}

// ScalarMulLWEAssign computes ctOut = c * ct.
func (e *Evaluator[T]) ScalarMulLWEAssign(ct LWECiphertext[T], c T, ctOut LWECiphertext[T]) {
	vec.ScalarMulAssign(ct.Value, c, ctOut.Value)
}

// PlaintextAddLWEAssign computes ctOut = ct + pt.
func (e *Evaluator[T]) PlaintextAddLWEAssign(ct LWECiphertext[T], pt T, ctOut LWECiphertext[T]) {
	vec.CopyAssign(ct.Value, ctOut.Value)
	ctOut.Value[0] += pt
}
