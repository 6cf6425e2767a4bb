package tfhe

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/blake3"
)

// SecretKey is a structure containing LWE and GLWE key.
//
// LWEKey and GLWEKey are independent.
// LWELargeKey is the LWE key induced by GLWEKey, which decrypts extracted ciphertexts.
type SecretKey[T TorusInt] struct {
	// LWEKey is a key of dimension LWEDimension, used for encrypting input ciphertexts.
	// If the parameters are sparse, it has exactly one nonzero entry per block.
	LWEKey LWESecretKey[T]
	// GLWEKey is a key used for the blind rotation accumulator.
	GLWEKey GLWESecretKey[T]
	// LWELargeKey is a LWE key of dimension GLWEDimension, holding the coefficients of GLWEKey.
	LWELargeKey LWESecretKey[T]
}

// NewSecretKey allocates an empty SecretKey.
func NewSecretKey[T TorusInt](params Parameters[T]) SecretKey[T] {
	glweKey := NewGLWESecretKey(params)
	return SecretKey[T]{
		LWEKey:      NewLWESecretKey(params),
		GLWEKey:     glweKey,
		LWELargeKey: glweKey.ToLWESecretKey(),
	}
}

// BootstrapKey is a key for the blind rotation.
// Value[i] is a FourierGGSW encryption of the i-th entry of the LWE key under the GLWE key.
// It is read-only once generated, and may be shared by any number of evaluators.
type BootstrapKey[T TorusInt] struct {
	// Value has length LWEDimension.
	Value []FourierGGSWCiphertext[T]
}

// NewBootstrapKey allocates an empty BootstrapKey.
func NewBootstrapKey[T TorusInt](params Parameters[T]) BootstrapKey[T] {
	bsk := make([]FourierGGSWCiphertext[T], params.lweDimension)
	for i := range bsk {
		bsk[i] = NewFourierGGSWCiphertext(params, params.blindRotateParameters)
	}
	return BootstrapKey[T]{Value: bsk}
}

// Copy returns a copy of the key.
func (bsk BootstrapKey[T]) Copy() BootstrapKey[T] {
	bskCopy := make([]FourierGGSWCiphertext[T], len(bsk.Value))
	for i := range bsk.Value {
		bskCopy[i] = bsk.Value[i].Copy()
	}
	return BootstrapKey[T]{Value: bskCopy}
}

// Fingerprint returns the blake3 digest of the key material.
// Two keys have the same fingerprint if and only if they are equal, up to hash collisions.
func (bsk BootstrapKey[T]) Fingerprint() [32]byte {
	h := blake3.New()
	buf := make([]byte, 16)
	for _, ggsw := range bsk.Value {
		for _, glev := range ggsw.Value {
			for _, glwe := range glev.Value {
				for _, fp := range glwe.Value {
					for _, c := range fp.Coeffs {
						binary.LittleEndian.PutUint64(buf[0:], math.Float64bits(real(c)))
						binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(imag(c)))
						h.Write(buf)
					}
				}
			}
		}
	}

	var digest [32]byte
	copy(digest[:], h.Sum(nil))
	return digest
}

// EvaluationKey is a public key for Evaluator,
// which consists of Bootstrapping Key and KeySwitching Key.
// All keys should be treated as read-only.
type EvaluationKey[T TorusInt] struct {
	// BootstrapKey is a bootstrapping key.
	BootstrapKey BootstrapKey[T]
	// KeySwitchKey is a key switching key switching GLWE secret key -> LWE secret key.
	KeySwitchKey KeySwitchKey[T]
}
