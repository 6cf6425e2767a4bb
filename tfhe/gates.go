package tfhe

import (
	"github.com/SNUCP/sparse-tfhe/math/num"
)

// Boolean gates evaluate on ciphertexts encrypting +1/8 for true and -1/8 for false,
// as given by [*Encryptor.EncryptBool].
// Every gate except NOT is followed by a bootstrapping with key switching.
// The output may be the same ciphertext as any input.

// gateMu returns 1/8 as a torus element.
func (e *Evaluator[T]) gateMu() T {
	return T(1) << (num.SizeT[T]() - 3)
}

// NOT computes NOT ct0 and returns the result.
func (e *Evaluator[T]) NOT(ct0 LWECiphertext[T]) LWECiphertext[T] {
	ctOut := NewLWECiphertext(e.Parameters)
	e.NOTAssign(ct0, ctOut)
	return ctOut
}

// NOTAssign computes NOT ct0 and writes it to ctOut. It does not bootstrap.
func (e *Evaluator[T]) NOTAssign(ct0, ctOut LWECiphertext[T]) {
	e.NegLWEAssign(ct0, ctOut)
}

// AND computes ct0 AND ct1 and returns the result.
func (e *Evaluator[T]) AND(ct0, ct1 LWECiphertext[T]) LWECiphertext[T] {
	ctOut := NewLWECiphertext(e.Parameters)
	e.ANDAssign(ct0, ct1, ctOut)
	return ctOut
}

// ANDAssign computes ct0 AND ct1 and writes it to ctOut.
func (e *Evaluator[T]) ANDAssign(ct0, ct1, ctOut LWECiphertext[T]) {
	mu := e.gateMu()
	e.AddLWEAssign(ct0, ct1, e.buffer.ctGate)
	e.buffer.ctGate.Value[0] -= mu
	e.BootstrapAssign(e.buffer.ctGate, mu, ctOut)
}

// NAND computes ct0 NAND ct1 and returns the result.
func (e *Evaluator[T]) NAND(ct0, ct1 LWECiphertext[T]) LWECiphertext[T] {
	ctOut := NewLWECiphertext(e.Parameters)
	e.NANDAssign(ct0, ct1, ctOut)
	return ctOut
}

// NANDAssign computes ct0 NAND ct1 and writes it to ctOut.
func (e *Evaluator[T]) NANDAssign(ct0, ct1, ctOut LWECiphertext[T]) {
	mu := e.gateMu()
	e.AddLWEAssign(ct0, ct1, e.buffer.ctGate)
	e.NegLWEAssign(e.buffer.ctGate, e.buffer.ctGate)
	e.buffer.ctGate.Value[0] += mu
	e.BootstrapAssign(e.buffer.ctGate, mu, ctOut)
}

// OR computes ct0 OR ct1 and returns the result.
func (e *Evaluator[T]) OR(ct0, ct1 LWECiphertext[T]) LWECiphertext[T] {
	ctOut := NewLWECiphertext(e.Parameters)
	e.ORAssign(ct0, ct1, ctOut)
	return ctOut
}

// ORAssign computes ct0 OR ct1 and writes it to ctOut.
func (e *Evaluator[T]) ORAssign(ct0, ct1, ctOut LWECiphertext[T]) {
	mu := e.gateMu()
	e.AddLWEAssign(ct0, ct1, e.buffer.ctGate)
	e.buffer.ctGate.Value[0] += mu
	e.BootstrapAssign(e.buffer.ctGate, mu, ctOut)
}

// NOR computes ct0 NOR ct1 and returns the result.
func (e *Evaluator[T]) NOR(ct0, ct1 LWECiphertext[T]) LWECiphertext[T] {
	ctOut := NewLWECiphertext(e.Parameters)
	e.NORAssign(ct0, ct1, ctOut)
	return ctOut
}

// NORAssign computes ct0 NOR ct1 and writes it to ctOut.
func (e *Evaluator[T]) NORAssign(ct0, ct1, ctOut LWECiphertext[T]) {
	mu := e.gateMu()
	e.AddLWEAssign(ct0, ct1, e.buffer.ctGate)
	e.NegLWEAssign(e.buffer.ctGate, e.buffer.ctGate)
	e.buffer.ctGate.Value[0] -= mu
	e.BootstrapAssign(e.buffer.ctGate, mu, ctOut)
}

// XOR computes ct0 XOR ct1 and returns the result.
func (e *Evaluator[T]) XOR(ct0, ct1 LWECiphertext[T]) LWECiphertext[T] {
	ctOut := NewLWECiphertext(e.Parameters)
	e.XORAssign(ct0, ct1, ctOut)
	return ctOut
}

// XORAssign computes ct0 XOR ct1 and writes it to ctOut.
func (e *Evaluator[T]) XORAssign(ct0, ct1, ctOut LWECiphertext[T]) {
	mu := e.gateMu()
	e.AddLWEAssign(ct0, ct1, e.buffer.ctGate)
	e.ScalarMulLWEAssign(e.buffer.ctGate, 2, e.buffer.ctGate)
	e.buffer.ctGate.Value[0] += 2 * mu
	e.BootstrapAssign(e.buffer.ctGate, mu, ctOut)
}

// XNOR computes ct0 XNOR ct1 and returns the result.
func (e *Evaluator[T]) XNOR(ct0, ct1 LWECiphertext[T]) LWECiphertext[T] {
	ctOut := NewLWECiphertext(e.Parameters)
	e.XNORAssign(ct0, ct1, ctOut)
	return ctOut
}

// XNORAssign computes ct0 XNOR ct1 and writes it to ctOut.
func (e *Evaluator[T]) XNORAssign(ct0, ct1, ctOut LWECiphertext[T]) {
	mu := e.gateMu()
	e.AddLWEAssign(ct0, ct1, e.buffer.ctGate)
	e.ScalarMulLWEAssign(e.buffer.ctGate, 2, e.buffer.ctGate)
	e.NegLWEAssign(e.buffer.ctGate, e.buffer.ctGate)
	e.buffer.ctGate.Value[0] -= 2 * mu
	e.BootstrapAssign(e.buffer.ctGate, mu, ctOut)
}

// MUX computes ctSel ? ct0 : ct1 and returns the result.
func (e *Evaluator[T]) MUX(ctSel, ct0, ct1 LWECiphertext[T]) LWECiphertext[T] {
	ctOut := NewLWECiphertext(e.Parameters)
	e.MUXAssign(ctSel, ct0, ct1, ctOut)
	return ctOut
}

// MUXAssign computes ctSel ? ct0 : ct1 and writes it to ctOut.
// It uses two bootstrappings without key switching, followed by one key switching.
func (e *Evaluator[T]) MUXAssign(ctSel, ct0, ct1, ctOut LWECiphertext[T]) {
	mu := e.gateMu()

	e.AddLWEAssign(ctSel, ct0, e.buffer.ctGate)
	e.buffer.ctGate.Value[0] -= mu
	e.BootstrapWithoutKeySwitchAssign(e.buffer.ctGate, mu, e.buffer.ctExtract)

	e.SubLWEAssign(ct1, ctSel, e.buffer.ctGate)
	e.buffer.ctGate.Value[0] -= mu
	e.BootstrapWithoutKeySwitchAssign(e.buffer.ctGate, mu, e.buffer.ctExtractAux)

	e.AddLWEAssign(e.buffer.ctExtract, e.buffer.ctExtractAux, e.buffer.ctExtract)
	e.buffer.ctExtract.Value[0] += mu
	e.KeySwitchForBootstrapAssign(e.buffer.ctExtract, ctOut)
}
