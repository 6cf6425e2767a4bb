package tfhe

import (
	"math/bits"

	"github.com/SNUCP/sparse-tfhe/math/num"
	"github.com/SNUCP/sparse-tfhe/math/poly"
	"github.com/SNUCP/sparse-tfhe/math/vec"
)

// SwitchModulus returns round(x * modulus / Q) mod modulus,
// where Q is the torus modulus of T.
//
// Panics when modulus <= 0.
func SwitchModulus[T TorusInt](x T, modulus int) int {
	if modulus <= 0 {
		panic("modulus not positive")
	}

	sizeT := num.SizeT[T]()
	hi, lo := bits.Mul64(uint64(x), uint64(modulus))

	var q, r uint64
	if sizeT == 64 {
		q, r = hi, lo>>63
	} else {
		q, r = hi<<(64-sizeT)|lo>>sizeT, (lo>>(sizeT-1))&1
	}
	return int((q + r) % uint64(modulus))
}

// ModSwitch switches the modulus of x from Q to 2 * PolyDegree.
func (e *Evaluator[T]) ModSwitch(x T) int {
	return SwitchModulus(x, 2*e.Parameters.polyDegree)
}

// modSwitchAssign switches the modulus of the mask of ct to 2 * PolyDegree and writes it to baraOut.
// It returns the switched body.
func (e *Evaluator[T]) modSwitchAssign(ct LWECiphertext[T], baraOut []int) (barb int) {
	for i := range baraOut {
		baraOut[i] = e.ModSwitch(ct.Value[i+1])
	}
	return e.ModSwitch(ct.Value[0])
}

// BlindRotateAndExtract returns the LWE ciphertext of dimension GLWEDimension
// obtained by rotating v by barb and bara.
func (e *Evaluator[T]) BlindRotateAndExtract(v poly.Poly[T], barb int, bara []int) LWECiphertext[T] {
	ctOut := NewLWECiphertextCustom[T](e.Parameters.glweDimension)
	e.BlindRotateAndExtractAssign(v, barb, bara, ctOut)
	return ctOut
}

// BlindRotateAndExtractAssign rotates the trivial encryption of X^(-barb) * v by bara,
// extracts its constant coefficient and writes it to ctOut.
//
// ctOut decrypts under LWELargeKey to the p-th coefficient of v read anticyclically,
// where p = barb - sum bara_i * s_i mod 2N.
// ctOut should have dimension GLWEDimension.
func (e *Evaluator[T]) BlindRotateAndExtractAssign(v poly.Poly[T], barb int, bara []int, ctOut LWECiphertext[T]) {
	N2 := 2 * e.Parameters.polyDegree
	shift := (N2 - barb%N2) % N2

	if shift != 0 {
		e.PolyEvaluator.MonomialMulPolyAssign(v, shift, e.buffer.testPoly)
	} else {
		e.buffer.testPoly.CopyFrom(v)
	}
	e.TrivialGLWEAssign(e.buffer.testPoly, e.buffer.ctAcc)

	e.BlindRotateAssign(e.buffer.ctAcc, bara)
	if e.debug != nil {
		e.debug.report(e, e.buffer.testPoly, bara, e.buffer.ctAcc)
	}

	e.buffer.ctAcc.ToLWECiphertextAssign(0, ctOut)
}

// checkBootstrapInput panics if ct is not of dimension LWEDimension.
func (e *Evaluator[T]) checkBootstrapInput(ct LWECiphertext[T]) {
	if ct.Dimension() != e.Parameters.lweDimension {
		panic("input ciphertext does not match LWEDimension")
	}
}

// BootstrapWithoutKeySwitch returns the bootstrapped LWE ciphertext of ct,
// encrypting mu if the phase of ct is in (0, 1/2) and -mu otherwise.
// The output has dimension GLWEDimension and decrypts under LWELargeKey.
func (e *Evaluator[T]) BootstrapWithoutKeySwitch(ct LWECiphertext[T], mu T) LWECiphertext[T] {
	ctOut := NewLWECiphertextCustom[T](e.Parameters.glweDimension)
	e.BootstrapWithoutKeySwitchAssign(ct, mu, ctOut)
	return ctOut
}

// BootstrapWithoutKeySwitchAssign bootstraps ct with the constant test vector mu and writes it to ctOut.
// ctOut should have dimension GLWEDimension.
func (e *Evaluator[T]) BootstrapWithoutKeySwitchAssign(ct LWECiphertext[T], mu T, ctOut LWECiphertext[T]) {
	vec.Fill(e.buffer.lut.Value.Coeffs, mu)
	e.BootstrapLUTWithoutKeySwitchAssign(ct, e.buffer.lut, ctOut)
}

// Bootstrap returns the bootstrapped LWE ciphertext of ct,
// encrypting mu if the phase of ct is in (0, 1/2) and -mu otherwise.
// The output is switched back to LWEKey.
func (e *Evaluator[T]) Bootstrap(ct LWECiphertext[T], mu T) LWECiphertext[T] {
	ctOut := NewLWECiphertext(e.Parameters)
	e.BootstrapAssign(ct, mu, ctOut)
	return ctOut
}

// BootstrapAssign bootstraps ct with the constant test vector mu and writes it to ctOut.
// ct and ctOut may be the same ciphertext.
func (e *Evaluator[T]) BootstrapAssign(ct LWECiphertext[T], mu T, ctOut LWECiphertext[T]) {
	e.BootstrapWithoutKeySwitchAssign(ct, mu, e.buffer.ctExtract)
	e.KeySwitchForBootstrapAssign(e.buffer.ctExtract, ctOut)
}

// BootstrapFunc returns a bootstrapped LWE ciphertext with respect to given function.
func (e *Evaluator[T]) BootstrapFunc(ct LWECiphertext[T], f func(int) int) LWECiphertext[T] {
	e.GenLookUpTableAssign(f, e.buffer.lut)
	return e.BootstrapLUT(ct, e.buffer.lut)
}

// BootstrapFuncAssign bootstraps LWE ciphertext with respect to given function and writes it to ctOut.
func (e *Evaluator[T]) BootstrapFuncAssign(ct LWECiphertext[T], f func(int) int, ctOut LWECiphertext[T]) {
	e.GenLookUpTableAssign(f, e.buffer.lut)
	e.BootstrapLUTAssign(ct, e.buffer.lut, ctOut)
}

// BootstrapLUT returns a bootstrapped LWE ciphertext with respect to given LUT.
func (e *Evaluator[T]) BootstrapLUT(ct LWECiphertext[T], lut LookUpTable[T]) LWECiphertext[T] {
	ctOut := NewLWECiphertext(e.Parameters)
	e.BootstrapLUTAssign(ct, lut, ctOut)
	return ctOut
}

// BootstrapLUTAssign bootstraps LWE ciphertext with respect to given LUT and writes it to ctOut.
func (e *Evaluator[T]) BootstrapLUTAssign(ct LWECiphertext[T], lut LookUpTable[T], ctOut LWECiphertext[T]) {
	e.BootstrapLUTWithoutKeySwitchAssign(ct, lut, e.buffer.ctExtract)
	e.KeySwitchForBootstrapAssign(e.buffer.ctExtract, ctOut)
}

// BootstrapLUTWithoutKeySwitchAssign bootstraps LWE ciphertext with respect to given LUT
// without key switching, and writes it to ctOut.
// ctOut should have dimension GLWEDimension.
func (e *Evaluator[T]) BootstrapLUTWithoutKeySwitchAssign(ct LWECiphertext[T], lut LookUpTable[T], ctOut LWECiphertext[T]) {
	e.checkBootstrapInput(ct)
	barb := e.modSwitchAssign(ct, e.buffer.bara)
	e.BlindRotateAndExtractAssign(lut.Value, barb, e.buffer.bara, ctOut)
}
