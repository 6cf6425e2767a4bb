package tfhe_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/SNUCP/sparse-tfhe/math/csprng"
	"github.com/SNUCP/sparse-tfhe/math/num"
	"github.com/SNUCP/sparse-tfhe/math/poly"
	"github.com/SNUCP/sparse-tfhe/tfhe"
	"github.com/google/go-cmp/cmp"
	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testParams    = tfhe.ParamsSparseBoolean.Compile()
	testEncryptor = tfhe.NewEncryptorWithSeed(testParams, []byte("sparse-tfhe test fixture"))
	testEvaluator = tfhe.NewEvaluator(testParams, testEncryptor.GenEvaluationKeyParallel())

	testSampler = csprng.NewUniformSampler[uint32]()
)

// smallParams returns toy parameters with a short LWE key,
// so that evaluation keys are cheap to generate.
func smallParams(hammingWeight int, strategy tfhe.BlindRotateStrategy) tfhe.Parameters[uint32] {
	return tfhe.ParametersLiteral[uint32]{
		LWEDimension:  12,
		GLWERank:      1,
		PolyDegree:    512,
		HammingWeight: hammingWeight,

		LWEStdDev:  0.000030517578125,
		GLWEStdDev: 0.000000007450580596923828125,

		MessageModulus: 1 << 3,

		BlindRotateParameters: tfhe.GadgetParametersLiteral[uint32]{Base: 1 << 10, Level: 2},
		KeySwitchParameters:   tfhe.GadgetParametersLiteral[uint32]{Base: 1 << 2, Level: 8},

		BlindRotateStrategy: strategy,
		KeySwitchKeyKind:    tfhe.KeySwitchSparse,
	}.Compile()
}

// randomMessages samples n messages in [0, MessageModulus).
func randomMessages(n int, params tfhe.Parameters[uint32]) []int {
	messages := make([]int, n)
	for i := range messages {
		messages[i] = testSampler.SampleN(int(params.MessageModulus()))
	}
	return messages
}

// torusError returns x as a signed torus fraction in [-1/2, 1/2).
func torusError(x uint32) float64 {
	return float64(num.ToSigned(x)) / (1 << 32)
}

func TestEncryptor(t *testing.T) {
	messages := randomMessages(testParams.PolyDegree(), testParams)

	t.Run("LWE", func(t *testing.T) {
		for _, m := range messages[:16] {
			assert.Equal(t, m, testEncryptor.DecryptLWE(testEncryptor.EncryptLWE(m)))
		}
	})

	t.Run("GLWE", func(t *testing.T) {
		assert.Equal(t, messages, testEncryptor.DecryptGLWE(testEncryptor.EncryptGLWE(messages)))
	})

	t.Run("Bool", func(t *testing.T) {
		for _, b := range []bool{true, false} {
			assert.Equal(t, b, testEncryptor.DecryptBool(testEncryptor.EncryptBool(b)))
		}
	})

	t.Run("SampleExtract", func(t *testing.T) {
		ct := testEncryptor.EncryptGLWE(messages)
		for _, idx := range []int{0, 1, 17, testParams.PolyDegree() - 1} {
			assert.Equal(t, messages[idx], testEncryptor.DecryptLWE(ct.ToLWECiphertext(idx)))
		}
		assert.Panics(t, func() { ct.ToLWECiphertext(testParams.PolyDegree()) })
	})

	t.Run("SparseSecretKey", func(t *testing.T) {
		sk := testEncryptor.SecretKey.LWEKey
		assert.Equal(t, testParams.HammingWeight(), sk.HammingWeight())

		blockSize := testParams.BlockSize()
		for b := 0; b < testParams.BlockCount(); b++ {
			var weight uint32
			for _, s := range sk.Value[b*blockSize : (b+1)*blockSize] {
				assert.LessOrEqual(t, s, uint32(1))
				weight += s
			}
			assert.Equal(t, uint32(1), weight, "block %d", b)
		}
	})

	t.Run("DenseSecretKey", func(t *testing.T) {
		params := tfhe.ParamsDenseBoolean.Compile()
		sk := tfhe.NewEncryptor(params).SecretKey.LWEKey
		for _, s := range sk.Value {
			assert.LessOrEqual(t, s, uint32(1))
		}
	})

	t.Run("Seed", func(t *testing.T) {
		params := smallParams(3, tfhe.StrategyHoistedMux)
		enc0 := tfhe.NewEncryptorWithSeed(params, []byte("seed"))
		enc1 := tfhe.NewEncryptorWithSeed(params, []byte("seed"))
		assert.Equal(t, enc0.SecretKey.LWEKey.Value, enc1.SecretKey.LWEKey.Value)
		assert.Equal(t, enc0.EncryptLWE(3).Value, enc1.EncryptLWE(3).Value)
	})
}

func TestSwitchModulus(t *testing.T) {
	N2 := 2 * testParams.PolyDegree()

	t.Run("Uint32", func(t *testing.T) {
		tests := []struct {
			x    uint32
			want int
		}{
			{0, 0},
			{1 << 31, N2 / 2},
			{3 << 30, 3 * N2 / 4},
			{1 << 21, 1},
			{1 << 20, 1},
			{1<<20 - 1, 0},
			{math.MaxUint32, 0},
		}
		for _, tc := range tests {
			assert.Equal(t, tc.want, tfhe.SwitchModulus(tc.x, N2), "x=%d", tc.x)
			assert.Equal(t, tc.want, testEvaluator.ModSwitch(tc.x), "x=%d", tc.x)
		}
	})

	t.Run("Uint64", func(t *testing.T) {
		assert.Equal(t, 2048, tfhe.SwitchModulus(uint64(1)<<63, 4096))
		assert.Equal(t, 1, tfhe.SwitchModulus(uint64(1)<<51, 4096))
		assert.Equal(t, 0, tfhe.SwitchModulus(uint64(1)<<51-1, 4096))
		assert.Equal(t, 0, tfhe.SwitchModulus(uint64(math.MaxUint64), 4096))
	})

	t.Run("Rounding", func(t *testing.T) {
		for i := 0; i < 1024; i++ {
			x := testSampler.Sample()
			want := int(math.Round(float64(x)*float64(N2)/(1<<32))) % N2
			assert.Equal(t, want, tfhe.SwitchModulus(x, N2), "x=%d", x)
		}
	})

	t.Run("NonPositive", func(t *testing.T) {
		assert.Panics(t, func() { tfhe.SwitchModulus(uint32(1), 0) })
	})
}

func TestDecomposer(t *testing.T) {
	dcmp := tfhe.NewDecomposer[uint32](testParams.PolyDegree(), 8)

	for _, gadget := range []tfhe.GadgetParameters[uint32]{
		testParams.BlindRotateParameters(),
		testParams.KeySwitchParameters(),
	} {
		bound := int64(1) << (32 - gadget.LogBase()*gadget.Level() - 1)
		half := int64(gadget.Base() / 2)

		t.Run(fmt.Sprintf("Scalar/Base=%v/Level=%v", gadget.Base(), gadget.Level()), func(t *testing.T) {
			for i := 0; i < 256; i++ {
				x := testSampler.Sample()
				digits := dcmp.DecomposeScalar(x, gadget)
				for _, d := range digits {
					assert.GreaterOrEqual(t, num.ToSigned(d), -half)
					assert.Less(t, num.ToSigned(d), half)
				}
				diff := num.ToSigned(x - dcmp.RecomposeScalar(digits, gadget))
				assert.LessOrEqual(t, num.Abs(diff), bound)
			}
		})

		t.Run(fmt.Sprintf("Unsigned/Base=%v/Level=%v", gadget.Base(), gadget.Level()), func(t *testing.T) {
			digits := make([]uint32, gadget.Level())
			for i := 0; i < 256; i++ {
				x := testSampler.Sample()
				dcmp.DecomposeScalarUnsignedAssign(x, gadget, digits)
				for _, d := range digits {
					assert.Less(t, d, gadget.Base())
				}
				diff := num.ToSigned(x - dcmp.RecomposeScalar(digits, gadget))
				assert.LessOrEqual(t, num.Abs(diff), bound)
			}
		})

		t.Run(fmt.Sprintf("Poly/Base=%v/Level=%v", gadget.Base(), gadget.Level()), func(t *testing.T) {
			p := poly.NewPoly[uint32](testParams.PolyDegree())
			testSampler.SampleSliceAssign(p.Coeffs)
			decomposed := dcmp.DecomposePoly(p, gadget)
			for _, j := range []int{0, 5, testParams.PolyDegree() - 1} {
				want := dcmp.DecomposeScalar(p.Coeffs[j], gadget)
				for i := range want {
					assert.Equal(t, want[i], decomposed[i].Coeffs[j])
				}
			}
		})
	}
}

func TestGGSW(t *testing.T) {
	messages := randomMessages(testParams.PolyDegree(), testParams)
	pt := testEncryptor.EncodeGLWE(messages)
	ct := testEncryptor.EncryptGLWEPlaintext(pt)
	gadget := testParams.BlindRotateParameters()

	t.Run("ExternalProduct", func(t *testing.T) {
		for _, d := range []int{0, 3, testParams.PolyDegree() + 1} {
			mono := make([]int, testParams.PolyDegree())
			if d < testParams.PolyDegree() {
				mono[d] = 1
			} else {
				mono[d-testParams.PolyDegree()] = -1
			}
			ggsw := testEncryptor.EncryptFourierGGSW(mono, gadget)

			want := testEncryptor.DecodeGLWE(tfhe.GLWEPlaintext[uint32]{Value: testEvaluator.PolyEvaluator.MonomialMulPoly(pt.Value, d)})
			got := testEncryptor.DecryptGLWE(testEvaluator.ExternalProduct(ggsw, ct))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ExternalProduct X^%d mismatch (-want +got):\n%s", d, diff)
			}
		}
	})

	t.Run("ExternalProductInPlace", func(t *testing.T) {
		ggsw := testEncryptor.EncryptFourierGGSW([]int{1}, gadget)
		ctInPlace := ct.Copy()
		testEvaluator.ExternalProductAssign(ggsw, ctInPlace, ctInPlace)
		assert.Equal(t, messages, testEncryptor.DecryptGLWE(ctInPlace))
	})

	t.Run("CMux", func(t *testing.T) {
		messagesOther := randomMessages(testParams.PolyDegree(), testParams)
		ctOther := testEncryptor.EncryptGLWE(messagesOther)
		ctOut := tfhe.NewGLWECiphertext(testParams)

		testEvaluator.CMuxAssign(testEncryptor.EncryptFourierGGSW([]int{0}, gadget), ct, ctOther, ctOut)
		assert.Equal(t, messages, testEncryptor.DecryptGLWE(ctOut))

		testEvaluator.CMuxAssign(testEncryptor.EncryptFourierGGSW([]int{1}, gadget), ct, ctOther, ctOut)
		assert.Equal(t, messagesOther, testEncryptor.DecryptGLWE(ctOut))

		ctInPlace := ct.Copy()
		testEvaluator.CMuxAssign(testEncryptor.EncryptFourierGGSW([]int{1}, gadget), ctInPlace, ctOther, ctInPlace)
		assert.Equal(t, messagesOther, testEncryptor.DecryptGLWE(ctInPlace))
	})
}

func TestKeySwitch(t *testing.T) {
	kskList := map[tfhe.KeySwitchKeyKind]tfhe.KeySwitchKey[uint32]{
		tfhe.KeySwitchDense:  testEvaluator.EvaluationKey.KeySwitchKey,
		tfhe.KeySwitchSparse: testEncryptor.GenSparseKeySwitchKey(),
	}

	for kind, ksk := range kskList {
		t.Run(fmt.Sprintf("Decrypt/%v", kind), func(t *testing.T) {
			assert.Equal(t, kind, ksk.Kind())
			assert.Equal(t, testParams.GLWEDimension(), ksk.InputDimension())
			assert.Equal(t, testParams.LWEDimension(), ksk.OutputDimension())

			messages := randomMessages(testParams.PolyDegree(), testParams)
			ct := testEncryptor.EncryptGLWE(messages)
			for _, idx := range []int{0, 7, 100} {
				ctOut := testEvaluator.KeySwitch(ct.ToLWECiphertext(idx), ksk)
				assert.Equal(t, testParams.LWEDimension(), ctOut.Dimension())
				assert.Equal(t, messages[idx], testEncryptor.DecryptLWE(ctOut))
			}
		})

		t.Run(fmt.Sprintf("Variance/%v", kind), func(t *testing.T) {
			errs := make(stats.Float64Data, 256)
			for i := range errs {
				messages := randomMessages(1, testParams)
				ctOut := testEvaluator.KeySwitch(testEncryptor.EncryptGLWE(messages).ToLWECiphertext(0), ksk)
				errs[i] = torusError(testEncryptor.PhaseLWE(ctOut) - testEncryptor.EncodeLWE(messages[0]).Value)
			}
			variance, err := errs.Variance()
			require.NoError(t, err)

			estimate := testParams.KeySwitchVariance(kind)
			assert.Greater(t, variance, estimate/2)
			assert.Less(t, variance, estimate*2)
		})
	}

	t.Run("DimensionMismatch", func(t *testing.T) {
		assert.Panics(t, func() {
			testEvaluator.KeySwitch(testEncryptor.EncryptLWE(0), testEvaluator.EvaluationKey.KeySwitchKey)
		})
	})
}

func TestBootstrapKey(t *testing.T) {
	params := smallParams(3, tfhe.StrategyHoistedMux)

	t.Run("ParallelDeterminism", func(t *testing.T) {
		serial := tfhe.NewEncryptorWithSeed(params, []byte("bootstrap key")).GenBootstrapKey()
		parallel := tfhe.NewEncryptorWithSeed(params, []byte("bootstrap key")).GenBootstrapKeyParallel()
		assert.Equal(t, serial.Fingerprint(), parallel.Fingerprint())

		other := tfhe.NewEncryptorWithSeed(params, []byte("other bootstrap key")).GenBootstrapKeyParallel()
		assert.NotEqual(t, serial.Fingerprint(), other.Fingerprint())
	})

	t.Run("Copy", func(t *testing.T) {
		bsk := tfhe.NewEncryptor(params).GenBootstrapKey()
		bskCopy := bsk.Copy()
		assert.Equal(t, bsk.Fingerprint(), bskCopy.Fingerprint())

		bskCopy.Value[0].Value[0].Value[0].Value[0].Coeffs[0] += 1
		assert.NotEqual(t, bsk.Fingerprint(), bskCopy.Fingerprint())
	})
}
