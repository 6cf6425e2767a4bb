package tfhe

import (
	"github.com/SNUCP/sparse-tfhe/math/vec"
)

// LWESecretKey is a LWE secret key, sampled from a binary distribution.
type LWESecretKey[T TorusInt] struct {
	// Value has length LWEDimension.
	Value []T
}

// NewLWESecretKey allocates an empty LWESecretKey.
func NewLWESecretKey[T TorusInt](params Parameters[T]) LWESecretKey[T] {
	return LWESecretKey[T]{Value: make([]T, params.lweDimension)}
}

// NewLWESecretKeyCustom allocates an empty LWESecretKey with given dimension.
func NewLWESecretKeyCustom[T TorusInt](lweDimension int) LWESecretKey[T] {
	return LWESecretKey[T]{Value: make([]T, lweDimension)}
}

// Copy returns a copy of the key.
func (sk LWESecretKey[T]) Copy() LWESecretKey[T] {
	return LWESecretKey[T]{Value: vec.Copy(sk.Value)}
}

// HammingWeight returns the number of nonzero entries of the key.
func (sk LWESecretKey[T]) HammingWeight() int {
	hw := 0
	for _, s := range sk.Value {
		if s != 0 {
			hw++
		}
	}
	return hw
}

// LWEPlaintext represents an encoded LWE plaintext.
type LWEPlaintext[T TorusInt] struct {
	// Value is a scalar.
	Value T
}

// LWECiphertext represents a LWE ciphertext.
type LWECiphertext[T TorusInt] struct {
	// Value[0] = b, Value[1:] = a.
	Value []T
}

// NewLWECiphertext allocates an empty LWECiphertext of dimension LWEDimension.
func NewLWECiphertext[T TorusInt](params Parameters[T]) LWECiphertext[T] {
	return LWECiphertext[T]{Value: make([]T, params.lweDimension+1)}
}

// NewLWECiphertextCustom allocates an empty LWECiphertext with given dimension.
// Note that the resulting ciphertext has length lweDimension + 1.
func NewLWECiphertextCustom[T TorusInt](lweDimension int) LWECiphertext[T] {
	return LWECiphertext[T]{Value: make([]T, lweDimension+1)}
}

// Dimension returns the dimension of the mask.
func (ct LWECiphertext[T]) Dimension() int {
	return len(ct.Value) - 1
}

// Copy returns a copy of the ciphertext.
func (ct LWECiphertext[T]) Copy() LWECiphertext[T] {
	return LWECiphertext[T]{Value: vec.Copy(ct.Value)}
}

// CopyFrom copies values from the ciphertext.
func (ct *LWECiphertext[T]) CopyFrom(ctIn LWECiphertext[T]) {
	vec.CopyAssign(ctIn.Value, ct.Value)
}

// Clear clears the ciphertext.
func (ct *LWECiphertext[T]) Clear() {
	vec.Fill(ct.Value, 0)
}
