package tfhe

import (
	"github.com/SNUCP/sparse-tfhe/math/poly"
)

// GLWESecretKey is a GLWE secret key, sampled from a binary distribution.
type GLWESecretKey[T TorusInt] struct {
	// Value has length GLWERank.
	Value []poly.Poly[T]
}

// NewGLWESecretKey allocates an empty GLWESecretKey.
func NewGLWESecretKey[T TorusInt](params Parameters[T]) GLWESecretKey[T] {
	sk := make([]poly.Poly[T], params.glweRank)
	for i := range sk {
		sk[i] = poly.NewPoly[T](params.polyDegree)
	}
	return GLWESecretKey[T]{Value: sk}
}

// ToLWESecretKey returns the LWE secret key that decrypts
// LWE ciphertexts extracted from GLWE ciphertexts under this key.
func (sk GLWESecretKey[T]) ToLWESecretKey() LWESecretKey[T] {
	N := sk.Value[0].Degree()
	skOut := NewLWESecretKeyCustom[T](len(sk.Value) * N)
	for i := range sk.Value {
		copy(skOut.Value[i*N:(i+1)*N], sk.Value[i].Coeffs)
	}
	return skOut
}

// Copy returns a copy of the key.
func (sk GLWESecretKey[T]) Copy() GLWESecretKey[T] {
	skCopy := make([]poly.Poly[T], len(sk.Value))
	for i := range sk.Value {
		skCopy[i] = sk.Value[i].Copy()
	}
	return GLWESecretKey[T]{Value: skCopy}
}

// GLWEPlaintext represents an encoded GLWE plaintext.
type GLWEPlaintext[T TorusInt] struct {
	// Value is a single polynomial.
	Value poly.Poly[T]
}

// NewGLWEPlaintext allocates an empty GLWEPlaintext.
func NewGLWEPlaintext[T TorusInt](params Parameters[T]) GLWEPlaintext[T] {
	return GLWEPlaintext[T]{Value: poly.NewPoly[T](params.polyDegree)}
}

// GLWECiphertext represents a GLWE ciphertext.
type GLWECiphertext[T TorusInt] struct {
	// Value has length GLWERank + 1.
	// Value[0] is the body, Value[1:] is the mask.
	Value []poly.Poly[T]
}

// NewGLWECiphertext allocates an empty GLWECiphertext.
func NewGLWECiphertext[T TorusInt](params Parameters[T]) GLWECiphertext[T] {
	ct := make([]poly.Poly[T], params.glweRank+1)
	for i := range ct {
		ct[i] = poly.NewPoly[T](params.polyDegree)
	}
	return GLWECiphertext[T]{Value: ct}
}

// Copy returns a copy of the ciphertext.
func (ct GLWECiphertext[T]) Copy() GLWECiphertext[T] {
	ctCopy := make([]poly.Poly[T], len(ct.Value))
	for i := range ct.Value {
		ctCopy[i] = ct.Value[i].Copy()
	}
	return GLWECiphertext[T]{Value: ctCopy}
}

// CopyFrom copies values from the ciphertext.
func (ct *GLWECiphertext[T]) CopyFrom(ctIn GLWECiphertext[T]) {
	for i := range ct.Value {
		ct.Value[i].CopyFrom(ctIn.Value[i])
	}
}

// Clear clears the ciphertext.
func (ct *GLWECiphertext[T]) Clear() {
	for i := range ct.Value {
		ct.Value[i].Clear()
	}
}

// ToLWECiphertext extracts LWE ciphertext of given index from GLWE ciphertext.
// The output ciphertext has dimension GLWEDimension.
func (ct GLWECiphertext[T]) ToLWECiphertext(idx int) LWECiphertext[T] {
	ctOut := NewLWECiphertextCustom[T]((len(ct.Value) - 1) * ct.Value[0].Degree())
	ct.ToLWECiphertextAssign(idx, ctOut)
	return ctOut
}

// ToLWECiphertextAssign extracts LWE ciphertext of given index from GLWE ciphertext and writes it to ctOut.
// The output ciphertext should have dimension GLWEDimension.
// It decrypts under the key returned by [GLWESecretKey.ToLWESecretKey].
func (ct GLWECiphertext[T]) ToLWECiphertextAssign(idx int, ctOut LWECiphertext[T]) {
	N := ct.Value[0].Degree()
	if idx < 0 || idx >= N {
		panic("extraction index out of range")
	}
	if ctOut.Dimension() != (len(ct.Value)-1)*N {
		panic("LWE dimension mismatch with GLWE")
	}

	for i := 0; i < len(ct.Value)-1; i++ {
		mask := ct.Value[i+1].Coeffs
		out := ctOut.Value[1+i*N : 1+(i+1)*N]
		for j := 0; j <= idx; j++ {
			out[j] = mask[idx-j]
		}
		for j := idx + 1; j < N; j++ {
			out[j] = -mask[N+idx-j]
		}
	}
	ctOut.Value[0] = ct.Value[0].Coeffs[idx]
}

// FourierGLWECiphertext is a GLWE ciphertext in Fourier domain.
type FourierGLWECiphertext[T TorusInt] struct {
	// Value has length GLWERank + 1.
	Value []poly.FourierPoly
}

// NewFourierGLWECiphertext allocates an empty FourierGLWECiphertext.
func NewFourierGLWECiphertext[T TorusInt](params Parameters[T]) FourierGLWECiphertext[T] {
	ct := make([]poly.FourierPoly, params.glweRank+1)
	for i := range ct {
		ct[i] = poly.NewFourierPoly(params.polyDegree)
	}
	return FourierGLWECiphertext[T]{Value: ct}
}

// Copy returns a copy of the ciphertext.
func (ct FourierGLWECiphertext[T]) Copy() FourierGLWECiphertext[T] {
	ctCopy := make([]poly.FourierPoly, len(ct.Value))
	for i := range ct.Value {
		ctCopy[i] = ct.Value[i].Copy()
	}
	return FourierGLWECiphertext[T]{Value: ctCopy}
}

// CopyFrom copies values from the ciphertext.
func (ct *FourierGLWECiphertext[T]) CopyFrom(ctIn FourierGLWECiphertext[T]) {
	for i := range ct.Value {
		ct.Value[i].CopyFrom(ctIn.Value[i])
	}
}

// Clear clears the ciphertext.
func (ct *FourierGLWECiphertext[T]) Clear() {
	for i := range ct.Value {
		ct.Value[i].Clear()
	}
}
