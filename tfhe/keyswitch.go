package tfhe

import (
	"github.com/SNUCP/sparse-tfhe/math/vec"
)

// KeySwitchKey switches LWE ciphertexts of dimension InputDimension
// to LWE ciphertexts of dimension OutputDimension.
//
// It is implemented by [DenseKeySwitchKey] and [SparseKeySwitchKey].
type KeySwitchKey[T TorusInt] interface {
	// Kind returns the kind of this key.
	Kind() KeySwitchKeyKind
	// InputDimension returns the dimension of input ciphertexts.
	InputDimension() int
	// OutputDimension returns the dimension of output ciphertexts.
	OutputDimension() int

	keySwitchAssign(ct LWECiphertext[T], dcmp *Decomposer[T], ctOut LWECiphertext[T])
}

// DenseKeySwitchKey holds an encryption of every digit multiple of the input key.
//
// Value[i][j][v-1] encrypts v * s_i / Base^(j+1) for v in [1, Base).
// Key switching subtracts one entry for each nonzero digit, without multiplication.
type DenseKeySwitchKey[T TorusInt] struct {
	GadgetParameters GadgetParameters[T]

	Value [][][]LWECiphertext[T]
}

// NewDenseKeySwitchKey allocates an empty DenseKeySwitchKey.
func NewDenseKeySwitchKey[T TorusInt](inputDimension, outputDimension int, gadgetParams GadgetParameters[T]) DenseKeySwitchKey[T] {
	ksk := make([][][]LWECiphertext[T], inputDimension)
	for i := range ksk {
		ksk[i] = make([][]LWECiphertext[T], gadgetParams.level)
		for j := range ksk[i] {
			ksk[i][j] = make([]LWECiphertext[T], gadgetParams.base-1)
			for v := range ksk[i][j] {
				ksk[i][j][v] = NewLWECiphertextCustom[T](outputDimension)
			}
		}
	}
	return DenseKeySwitchKey[T]{GadgetParameters: gadgetParams, Value: ksk}
}

// Kind returns KeySwitchDense.
func (ksk DenseKeySwitchKey[T]) Kind() KeySwitchKeyKind {
	return KeySwitchDense
}

// InputDimension returns the dimension of input ciphertexts.
func (ksk DenseKeySwitchKey[T]) InputDimension() int {
	return len(ksk.Value)
}

// OutputDimension returns the dimension of output ciphertexts.
func (ksk DenseKeySwitchKey[T]) OutputDimension() int {
	return ksk.Value[0][0][0].Dimension()
}

func (ksk DenseKeySwitchKey[T]) keySwitchAssign(ct LWECiphertext[T], dcmp *Decomposer[T], ctOut LWECiphertext[T]) {
	scalarDecomposed := dcmp.buffer.scalarDecomposed[:ksk.GadgetParameters.level]

	vec.Fill(ctOut.Value, 0)
	ctOut.Value[0] = ct.Value[0]
	for i := 0; i < len(ksk.Value); i++ {
		dcmp.DecomposeScalarUnsignedAssign(ct.Value[i+1], ksk.GadgetParameters, scalarDecomposed)
		for j, v := range scalarDecomposed {
			if v != 0 {
				vec.SubAssign(ctOut.Value, ksk.Value[i][j][v-1].Value, ctOut.Value)
			}
		}
	}
}

// SparseKeySwitchKey holds an encryption of the input key scaled by each gadget element.
//
// Value[i][j] encrypts s_i / Base^(j+1).
// Key switching uses balanced digits and skips zero digits.
type SparseKeySwitchKey[T TorusInt] struct {
	GadgetParameters GadgetParameters[T]

	Value [][]LWECiphertext[T]
}

// NewSparseKeySwitchKey allocates an empty SparseKeySwitchKey.
func NewSparseKeySwitchKey[T TorusInt](inputDimension, outputDimension int, gadgetParams GadgetParameters[T]) SparseKeySwitchKey[T] {
	ksk := make([][]LWECiphertext[T], inputDimension)
	for i := range ksk {
		ksk[i] = make([]LWECiphertext[T], gadgetParams.level)
		for j := range ksk[i] {
			ksk[i][j] = NewLWECiphertextCustom[T](outputDimension)
		}
	}
	return SparseKeySwitchKey[T]{GadgetParameters: gadgetParams, Value: ksk}
}

// Kind returns KeySwitchSparse.
func (ksk SparseKeySwitchKey[T]) Kind() KeySwitchKeyKind {
	return KeySwitchSparse
}

// InputDimension returns the dimension of input ciphertexts.
func (ksk SparseKeySwitchKey[T]) InputDimension() int {
	return len(ksk.Value)
}

// OutputDimension returns the dimension of output ciphertexts.
func (ksk SparseKeySwitchKey[T]) OutputDimension() int {
	return ksk.Value[0][0].Dimension()
}

func (ksk SparseKeySwitchKey[T]) keySwitchAssign(ct LWECiphertext[T], dcmp *Decomposer[T], ctOut LWECiphertext[T]) {
	scalarDecomposed := dcmp.buffer.scalarDecomposed[:ksk.GadgetParameters.level]

	vec.Fill(ctOut.Value, 0)
	ctOut.Value[0] = ct.Value[0]
	for i := 0; i < len(ksk.Value); i++ {
		dcmp.DecomposeScalarAssign(ct.Value[i+1], ksk.GadgetParameters, scalarDecomposed)
		for j, d := range scalarDecomposed {
			if d != 0 {
				vec.ScalarMulSubAssign(ksk.Value[i][j].Value, d, ctOut.Value)
			}
		}
	}
}

// KeySwitch switches the key of ct using ksk and returns the result.
func (e *Evaluator[T]) KeySwitch(ct LWECiphertext[T], ksk KeySwitchKey[T]) LWECiphertext[T] {
	ctOut := NewLWECiphertextCustom[T](ksk.OutputDimension())
	e.KeySwitchAssign(ct, ksk, ctOut)
	return ctOut
}

// KeySwitchAssign switches the key of ct using ksk and writes it to ctOut.
// ct should have dimension ksk.InputDimension(), and ctOut should have dimension ksk.OutputDimension().
func (e *Evaluator[T]) KeySwitchAssign(ct LWECiphertext[T], ksk KeySwitchKey[T], ctOut LWECiphertext[T]) {
	if ct.Dimension() != ksk.InputDimension() || ctOut.Dimension() != ksk.OutputDimension() {
		panic("LWE dimension mismatch with key switching key")
	}
	ksk.keySwitchAssign(ct, e.Decomposer, ctOut)
}

// KeySwitchForBootstrap performs the key switching using evaluator's evaluation key.
// Input ciphertext should be of dimension GLWEDimension.
// Output ciphertext will be of dimension LWEDimension.
func (e *Evaluator[T]) KeySwitchForBootstrap(ct LWECiphertext[T]) LWECiphertext[T] {
	ctOut := NewLWECiphertext(e.Parameters)
	e.KeySwitchForBootstrapAssign(ct, ctOut)
	return ctOut
}

// KeySwitchForBootstrapAssign performs the key switching using evaluator's evaluation key.
// Input ciphertext should be of dimension GLWEDimension.
// Output ciphertext should be of dimension LWEDimension.
func (e *Evaluator[T]) KeySwitchForBootstrapAssign(ct, ctOut LWECiphertext[T]) {
	e.KeySwitchAssign(ct, e.EvaluationKey.KeySwitchKey, ctOut)
}
