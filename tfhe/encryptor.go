package tfhe

import (
	"encoding/binary"
	"runtime"
	"sync"

	"github.com/SNUCP/sparse-tfhe/math/csprng"
	"github.com/SNUCP/sparse-tfhe/math/num"
	"github.com/SNUCP/sparse-tfhe/math/poly"
	"github.com/SNUCP/sparse-tfhe/math/vec"
)

// Encryptor encrypts and decrypts TFHE plaintexts and ciphertexts.
// It also generates the evaluation keys.
//
// Encryptor is not safe for concurrent use.
// Use [*Encryptor.ShallowCopy] to get a safe copy.
type Encryptor[T TorusInt] struct {
	// Parameters holds the parameters for this Encryptor.
	Parameters Parameters[T]

	// UniformSampler is used for sampling the mask of encryptions.
	UniformSampler *csprng.UniformSampler[T]
	// GaussianSampler is used for sampling noise.
	GaussianSampler *csprng.GaussianSampler[T]

	// PolyEvaluator holds the polynomial evaluator for this Encryptor.
	PolyEvaluator *poly.Evaluator[T]

	// SecretKey holds the LWE and GLWE key for this Encryptor.
	SecretKey SecretKey[T]

	buffer encryptionBuffer[T]
}

// encryptionBuffer contains buffer values for Encryptor.
type encryptionBuffer[T TorusInt] struct {
	// ptGLWE holds the GLWE plaintext.
	ptGLWE GLWEPlaintext[T]
	// ctGLWE holds the standard GLWE ciphertext for Fourier encryption.
	ctGLWE GLWECiphertext[T]
}

// NewEncryptor allocates an empty Encryptor,
// seeded from the system entropy source, and generates a fresh secret key.
func NewEncryptor[T TorusInt](params Parameters[T]) *Encryptor[T] {
	return newEncryptor(params, csprng.NewUniformSampler[T]())
}

// NewEncryptorWithSeed allocates an empty Encryptor whose randomness is derived from seed,
// and generates a secret key from it.
// The same seed gives the same keys and ciphertexts.
func NewEncryptorWithSeed[T TorusInt](params Parameters[T], seed []byte) *Encryptor[T] {
	return newEncryptor(params, csprng.NewUniformSamplerWithSeed[T](seed))
}

func newEncryptor[T TorusInt](params Parameters[T], uniformSampler *csprng.UniformSampler[T]) *Encryptor[T] {
	enc := &Encryptor[T]{
		Parameters: params,

		UniformSampler:  uniformSampler,
		GaussianSampler: csprng.NewGaussianSampler(uniformSampler),

		PolyEvaluator: poly.NewEvaluator[T](params.polyDegree),

		buffer: newEncryptionBuffer(params),
	}

	enc.SecretKey = NewSecretKey(params)
	enc.GenLWESecretKeyAssign(enc.SecretKey.LWEKey)
	enc.GenGLWESecretKeyAssign(enc.SecretKey.GLWEKey)
	enc.SecretKey.LWELargeKey = enc.SecretKey.GLWEKey.ToLWESecretKey()

	return enc
}

// newEncryptionBuffer allocates an empty encryptionBuffer.
func newEncryptionBuffer[T TorusInt](params Parameters[T]) encryptionBuffer[T] {
	return encryptionBuffer[T]{
		ptGLWE: NewGLWEPlaintext(params),
		ctGLWE: NewGLWECiphertext(params),
	}
}

// ShallowCopy returns a shallow copy of this Encryptor.
// Returned Encryptor is safe for concurrent use.
// Its samplers are seeded from the samplers of this Encryptor.
func (e *Encryptor[T]) ShallowCopy() *Encryptor[T] {
	return e.shallowCopyWithSeed(e.sampleSeed())
}

// shallowCopyWithSeed returns a shallow copy of this Encryptor with samplers seeded by seed.
func (e *Encryptor[T]) shallowCopyWithSeed(seed []byte) *Encryptor[T] {
	uniformSampler := csprng.NewUniformSamplerWithSeed[T](seed)
	return &Encryptor[T]{
		Parameters: e.Parameters,

		UniformSampler:  uniformSampler,
		GaussianSampler: csprng.NewGaussianSampler(uniformSampler),

		PolyEvaluator: e.PolyEvaluator.ShallowCopy(),

		SecretKey: e.SecretKey,

		buffer: newEncryptionBuffer(e.Parameters),
	}
}

// sampleSeed draws a fresh seed from the uniform sampler.
func (e *Encryptor[T]) sampleSeed() []byte {
	seed := make([]byte, csprng.SeedSize)
	for i := 0; i < csprng.SeedSize; i += 8 {
		binary.LittleEndian.PutUint64(seed[i:], e.UniformSampler.SampleUint64())
	}
	return seed
}

// GenLWESecretKey samples a new LWE secret key.
// If the parameters are sparse, the key has exactly one nonzero entry in each block of BlockSize entries.
// Otherwise, it is a uniform binary key.
func (e *Encryptor[T]) GenLWESecretKey() LWESecretKey[T] {
	sk := NewLWESecretKey(e.Parameters)
	e.GenLWESecretKeyAssign(sk)
	return sk
}

// GenLWESecretKeyAssign samples a new LWE secret key and writes it to skOut.
func (e *Encryptor[T]) GenLWESecretKeyAssign(skOut LWESecretKey[T]) {
	if e.Parameters.IsSparse() {
		e.UniformSampler.SampleBlockSparseSliceAssign(e.Parameters.blockSize, skOut.Value)
	} else {
		e.UniformSampler.SampleBinarySliceAssign(skOut.Value)
	}
}

// GenGLWESecretKey samples a new uniform binary GLWE secret key.
func (e *Encryptor[T]) GenGLWESecretKey() GLWESecretKey[T] {
	sk := NewGLWESecretKey(e.Parameters)
	e.GenGLWESecretKeyAssign(sk)
	return sk
}

// GenGLWESecretKeyAssign samples a new uniform binary GLWE secret key and writes it to skOut.
func (e *Encryptor[T]) GenGLWESecretKeyAssign(skOut GLWESecretKey[T]) {
	for i := range skOut.Value {
		e.UniformSampler.SampleBinarySliceAssign(skOut.Value[i].Coeffs)
	}
}

// EncodeLWE encodes an integer message modulo MessageModulus to LWE plaintext.
func (e *Encryptor[T]) EncodeLWE(message int) LWEPlaintext[T] {
	return LWEPlaintext[T]{Value: encodeMessage(message, e.Parameters)}
}

// DecodeLWE decodes LWE plaintext to an integer message modulo MessageModulus.
func (e *Encryptor[T]) DecodeLWE(pt LWEPlaintext[T]) int {
	return decodeMessage(pt.Value, e.Parameters)
}

// encodeMessage returns message / MessageModulus as a torus element.
func encodeMessage[T TorusInt](message int, params Parameters[T]) T {
	return (T(message) % params.messageModulus) * params.scale
}

// decodeMessage rounds x to the nearest multiple of 1 / MessageModulus.
func decodeMessage[T TorusInt](x T, params Parameters[T]) int {
	return int(((x + params.scale/2) / params.scale) % params.messageModulus)
}

// EncryptLWE encodes and encrypts integer message to LWE ciphertext.
func (e *Encryptor[T]) EncryptLWE(message int) LWECiphertext[T] {
	return e.EncryptLWEPlaintext(e.EncodeLWE(message))
}

// EncryptLWETorus encrypts a torus element x to LWE ciphertext.
func (e *Encryptor[T]) EncryptLWETorus(x T) LWECiphertext[T] {
	return e.EncryptLWEPlaintext(LWEPlaintext[T]{Value: x})
}

// EncryptLWETorusCustom encrypts a torus element x to LWE ciphertext
// with noise of standard deviation stdDev.
func (e *Encryptor[T]) EncryptLWETorusCustom(x T, stdDev float64) LWECiphertext[T] {
	ctOut := NewLWECiphertext(e.Parameters)
	ctOut.Value[0] = x
	e.encryptLWEBody(ctOut, stdDev)
	return ctOut
}

// EncryptLWEPlaintext encrypts LWE plaintext to LWE ciphertext.
func (e *Encryptor[T]) EncryptLWEPlaintext(pt LWEPlaintext[T]) LWECiphertext[T] {
	ctOut := NewLWECiphertext(e.Parameters)
	e.EncryptLWEPlaintextAssign(pt, ctOut)
	return ctOut
}

// EncryptLWEPlaintextAssign encrypts LWE plaintext to LWE ciphertext and writes it to ctOut.
func (e *Encryptor[T]) EncryptLWEPlaintextAssign(pt LWEPlaintext[T], ctOut LWECiphertext[T]) {
	ctOut.Value[0] = pt.Value
	e.encryptLWEBody(ctOut, e.Parameters.lweStdDev)
}

// encryptLWEBody encrypts the value in the body of ct under the LWE key.
func (e *Encryptor[T]) encryptLWEBody(ct LWECiphertext[T], stdDev float64) {
	e.encryptLWEBodyCustom(ct, e.SecretKey.LWEKey, stdDev)
}

// encryptLWEBodyCustom encrypts the value in the body of ct under sk.
func (e *Encryptor[T]) encryptLWEBodyCustom(ct LWECiphertext[T], sk LWESecretKey[T], stdDev float64) {
	e.UniformSampler.SampleSliceAssign(ct.Value[1:])
	ct.Value[0] += vec.Dot(ct.Value[1:], sk.Value) + e.GaussianSampler.SampleTorus(stdDev)
}

// DecryptLWE decrypts and decodes LWE ciphertext to integer message.
func (e *Encryptor[T]) DecryptLWE(ct LWECiphertext[T]) int {
	return decodeMessage(e.PhaseLWE(ct), e.Parameters)
}

// EncryptBool encrypts a boolean as +1/8 if true, -1/8 if false.
func (e *Encryptor[T]) EncryptBool(b bool) LWECiphertext[T] {
	mu := T(1) << (num.SizeT[T]() - 3)
	if !b {
		mu = -mu
	}
	return e.EncryptLWETorus(mu)
}

// DecryptBool decrypts LWE ciphertext to boolean, by the sign of its phase.
func (e *Encryptor[T]) DecryptBool(ct LWECiphertext[T]) bool {
	return num.ToSigned(e.PhaseLWE(ct)) > 0
}

// PhaseLWE returns b - <a, s> of LWE ciphertext.
// The key is chosen by the dimension of ct: LWEKey for LWEDimension,
// LWELargeKey for GLWEDimension.
func (e *Encryptor[T]) PhaseLWE(ct LWECiphertext[T]) T {
	var sk LWESecretKey[T]
	switch ct.Dimension() {
	case e.Parameters.lweDimension:
		sk = e.SecretKey.LWEKey
	case e.Parameters.glweDimension:
		sk = e.SecretKey.LWELargeKey
	default:
		panic("LWE dimension matches neither LWE nor GLWE key")
	}
	return ct.Value[0] - vec.Dot(ct.Value[1:], sk.Value)
}

// EncodeGLWE encodes up to PolyDegree integer messages modulo MessageModulus into one GLWE plaintext.
func (e *Encryptor[T]) EncodeGLWE(messages []int) GLWEPlaintext[T] {
	pt := NewGLWEPlaintext(e.Parameters)
	for i := 0; i < e.Parameters.polyDegree && i < len(messages); i++ {
		pt.Value.Coeffs[i] = encodeMessage(messages[i], e.Parameters)
	}
	return pt
}

// DecodeGLWE decodes GLWE plaintext to PolyDegree integer messages.
func (e *Encryptor[T]) DecodeGLWE(pt GLWEPlaintext[T]) []int {
	messages := make([]int, e.Parameters.polyDegree)
	for i := range messages {
		messages[i] = decodeMessage(pt.Value.Coeffs[i], e.Parameters)
	}
	return messages
}

// EncryptGLWE encodes and encrypts integer messages to GLWE ciphertext.
func (e *Encryptor[T]) EncryptGLWE(messages []int) GLWECiphertext[T] {
	return e.EncryptGLWEPlaintext(e.EncodeGLWE(messages))
}

// EncryptGLWEPlaintext encrypts GLWE plaintext to GLWE ciphertext.
func (e *Encryptor[T]) EncryptGLWEPlaintext(pt GLWEPlaintext[T]) GLWECiphertext[T] {
	ctOut := NewGLWECiphertext(e.Parameters)
	e.EncryptGLWEPlaintextAssign(pt, ctOut)
	return ctOut
}

// EncryptGLWEPlaintextAssign encrypts GLWE plaintext to GLWE ciphertext and writes it to ctOut.
func (e *Encryptor[T]) EncryptGLWEPlaintextAssign(pt GLWEPlaintext[T], ctOut GLWECiphertext[T]) {
	ctOut.Value[0].CopyFrom(pt.Value)
	e.encryptGLWEBody(ctOut)
}

// encryptGLWEBody encrypts the value in the body of ct.
func (e *Encryptor[T]) encryptGLWEBody(ct GLWECiphertext[T]) {
	for i := 1; i < e.Parameters.glweRank+1; i++ {
		e.UniformSampler.SampleSliceAssign(ct.Value[i].Coeffs)
		e.PolyEvaluator.MulAddPolyAssign(ct.Value[i], e.SecretKey.GLWEKey.Value[i-1], ct.Value[0])
	}
	e.GaussianSampler.SampleTorusAddSliceAssign(e.Parameters.glweStdDev, ct.Value[0].Coeffs)
}

// DecryptGLWE decrypts and decodes GLWE ciphertext to integer messages.
func (e *Encryptor[T]) DecryptGLWE(ct GLWECiphertext[T]) []int {
	return e.DecodeGLWE(e.DecryptGLWEPhase(ct))
}

// DecryptGLWEPhase returns the phase Value[0] - sum Value[i] * s_i of GLWE ciphertext.
func (e *Encryptor[T]) DecryptGLWEPhase(ct GLWECiphertext[T]) GLWEPlaintext[T] {
	ptOut := NewGLWEPlaintext(e.Parameters)
	e.DecryptGLWEPhaseAssign(ct, ptOut)
	return ptOut
}

// DecryptGLWEPhaseAssign computes the phase of GLWE ciphertext and writes it to ptOut.
func (e *Encryptor[T]) DecryptGLWEPhaseAssign(ct GLWECiphertext[T], ptOut GLWEPlaintext[T]) {
	ptOut.Value.CopyFrom(ct.Value[0])
	for i := 1; i < e.Parameters.glweRank+1; i++ {
		e.PolyEvaluator.MulPolyAssign(ct.Value[i], e.SecretKey.GLWEKey.Value[i-1], e.buffer.ptGLWE.Value)
		e.PolyEvaluator.SubPolyAssign(ptOut.Value, e.buffer.ptGLWE.Value, ptOut.Value)
	}
}

// EncryptFourierGGSW encrypts integer messages to FourierGGSW ciphertext.
// messages[i] is the i-th coefficient of the encrypted polynomial; it is not scaled.
func (e *Encryptor[T]) EncryptFourierGGSW(messages []int, gadgetParams GadgetParameters[T]) FourierGGSWCiphertext[T] {
	pt := NewGLWEPlaintext(e.Parameters)
	for i := 0; i < e.Parameters.polyDegree && i < len(messages); i++ {
		pt.Value.Coeffs[i] = T(messages[i])
	}
	ctOut := NewFourierGGSWCiphertext(e.Parameters, gadgetParams)
	e.EncryptFourierGGSWAssign(pt, ctOut)
	return ctOut
}

// EncryptFourierGGSWAssign encrypts the unscaled polynomial pt to FourierGGSW ciphertext and writes it to ctOut.
//
// The j-th row of the i-th GLev is an encryption of zero
// with pt / Base^(j+1) added to its i-th component.
func (e *Encryptor[T]) EncryptFourierGGSWAssign(pt GLWEPlaintext[T], ctOut FourierGGSWCiphertext[T]) {
	gadgetParams := ctOut.GadgetParameters
	for i := 0; i < e.Parameters.glweRank+1; i++ {
		for j := 0; j < gadgetParams.level; j++ {
			for k := range e.buffer.ctGLWE.Value {
				e.buffer.ctGLWE.Value[k].Clear()
			}
			e.encryptGLWEBody(e.buffer.ctGLWE)

			scaledLog := gadgetParams.ScaledBaseLog(j)
			for c := 0; c < e.Parameters.polyDegree; c++ {
				e.buffer.ctGLWE.Value[i].Coeffs[c] += pt.Value.Coeffs[c] << scaledLog
			}

			for k := range e.buffer.ctGLWE.Value {
				e.PolyEvaluator.ToFourierPolyAssign(e.buffer.ctGLWE.Value[k], ctOut.Value[i].Value[j].Value[k])
			}
		}
	}
}

// GenBootstrapKey samples a new bootstrapping key.
//
// Each entry is encrypted with randomness derived from its own seed,
// so the result equals the one of [*Encryptor.GenBootstrapKeyParallel] for the same sampler state.
func (e *Encryptor[T]) GenBootstrapKey() BootstrapKey[T] {
	bsk := NewBootstrapKey(e.Parameters)
	seeds := e.sampleBootstrapKeySeeds()
	for i := 0; i < e.Parameters.lweDimension; i++ {
		e.shallowCopyWithSeed(seeds[i]).encryptBootstrapKeyEntry(i, bsk.Value[i])
	}
	return bsk
}

// GenBootstrapKeyParallel samples a new bootstrapping key in parallel.
func (e *Encryptor[T]) GenBootstrapKeyParallel() BootstrapKey[T] {
	bsk := NewBootstrapKey(e.Parameters)
	seeds := e.sampleBootstrapKeySeeds()

	workSize := e.Parameters.lweDimension
	chunkCount := min(runtime.NumCPU(), workSize)

	jobs := make(chan int)
	go func() {
		defer close(jobs)
		for i := 0; i < workSize; i++ {
			jobs <- i
		}
	}()

	var wg sync.WaitGroup
	wg.Add(chunkCount)
	for c := 0; c < chunkCount; c++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				e.shallowCopyWithSeed(seeds[i]).encryptBootstrapKeyEntry(i, bsk.Value[i])
			}
		}()
	}
	wg.Wait()

	return bsk
}

// sampleBootstrapKeySeeds draws one seed per bootstrapping key entry, in order.
func (e *Encryptor[T]) sampleBootstrapKeySeeds() [][]byte {
	seeds := make([][]byte, e.Parameters.lweDimension)
	for i := range seeds {
		seeds[i] = e.sampleSeed()
	}
	return seeds
}

// encryptBootstrapKeyEntry encrypts the i-th entry of the LWE key to ctOut.
func (e *Encryptor[T]) encryptBootstrapKeyEntry(i int, ctOut FourierGGSWCiphertext[T]) {
	e.buffer.ptGLWE.Value.Clear()
	e.buffer.ptGLWE.Value.Coeffs[0] = e.SecretKey.LWEKey.Value[i]
	e.EncryptFourierGGSWAssign(e.buffer.ptGLWE, ctOut)
}

// GenKeySwitchKey samples a new key switching key of kind KeySwitchKeyKind
// switching LWELargeKey to LWEKey.
func (e *Encryptor[T]) GenKeySwitchKey() KeySwitchKey[T] {
	switch e.Parameters.keySwitchKeyKind {
	case KeySwitchDense:
		return e.GenDenseKeySwitchKey()
	default:
		return e.GenSparseKeySwitchKey()
	}
}

// GenDenseKeySwitchKey samples a new DenseKeySwitchKey switching LWELargeKey to LWEKey.
func (e *Encryptor[T]) GenDenseKeySwitchKey() DenseKeySwitchKey[T] {
	gadgetParams := e.Parameters.keySwitchParameters
	ksk := NewDenseKeySwitchKey(e.Parameters.glweDimension, e.Parameters.lweDimension, gadgetParams)
	for i := range ksk.Value {
		for j := range ksk.Value[i] {
			for v := range ksk.Value[i][j] {
				ct := ksk.Value[i][j][v]
				ct.Value[0] = (T(v+1) * e.SecretKey.LWELargeKey.Value[i]) << gadgetParams.ScaledBaseLog(j)
				e.encryptLWEBody(ct, e.Parameters.lweStdDev)
			}
		}
	}
	return ksk
}

// GenSparseKeySwitchKey samples a new SparseKeySwitchKey switching LWELargeKey to LWEKey.
func (e *Encryptor[T]) GenSparseKeySwitchKey() SparseKeySwitchKey[T] {
	gadgetParams := e.Parameters.keySwitchParameters
	ksk := NewSparseKeySwitchKey(e.Parameters.glweDimension, e.Parameters.lweDimension, gadgetParams)
	for i := range ksk.Value {
		for j := range ksk.Value[i] {
			ct := ksk.Value[i][j]
			ct.Value[0] = e.SecretKey.LWELargeKey.Value[i] << gadgetParams.ScaledBaseLog(j)
			e.encryptLWEBody(ct, e.Parameters.lweStdDev)
		}
	}
	return ksk
}

// GenEvaluationKey samples a new evaluation key for bootstrapping.
func (e *Encryptor[T]) GenEvaluationKey() EvaluationKey[T] {
	return EvaluationKey[T]{
		BootstrapKey: e.GenBootstrapKey(),
		KeySwitchKey: e.GenKeySwitchKey(),
	}
}

// GenEvaluationKeyParallel samples a new evaluation key for bootstrapping in parallel.
func (e *Encryptor[T]) GenEvaluationKeyParallel() EvaluationKey[T] {
	return EvaluationKey[T]{
		BootstrapKey: e.GenBootstrapKeyParallel(),
		KeySwitchKey: e.GenKeySwitchKey(),
	}
}
