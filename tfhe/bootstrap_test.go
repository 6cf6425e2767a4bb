package tfhe_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/SNUCP/sparse-tfhe/tfhe"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var (
	strategyList = []tfhe.BlindRotateStrategy{
		tfhe.StrategyGroupedCombine,
		tfhe.StrategyHoistedMux,
		tfhe.StrategyDense,
	}

	testDenseParams    = tfhe.ParamsDenseBoolean.Compile()
	testDenseEncryptor = tfhe.NewEncryptor(testDenseParams)
	testDenseEvaluator = tfhe.NewEvaluator(testDenseParams, testDenseEncryptor.GenEvaluationKeyParallel())
)

// rotationOf returns sum bara_i * s_i mod 2N.
func rotationOf(bara []int, sk tfhe.LWESecretKey[uint32], N int) int {
	rotation := 0
	for i, s := range sk.Value {
		rotation = (rotation + bara[i]*int(s)) % (2 * N)
	}
	return rotation
}

// randomRotation samples n indices in [0, 2N).
func randomRotation(n, N int) []int {
	bara := make([]int, n)
	for i := range bara {
		bara[i] = testSampler.SampleN(2 * N)
	}
	return bara
}

// nearBoundary reports whether x is within margin of 0 or 1/2 on the torus.
func nearBoundary(x uint32, margin float64) bool {
	f := math.Abs(torusError(x))
	return f < margin || 0.5-f < margin
}

func TestBlindRotate(t *testing.T) {
	N := testParams.PolyDegree()
	pt := testEncryptor.EncodeGLWE(randomMessages(N, testParams))

	for _, strategy := range strategyList {
		eval := testEvaluator.WithStrategy(strategy)

		t.Run(fmt.Sprintf("Rotation/%v", strategy), func(t *testing.T) {
			assert.Equal(t, strategy, eval.Strategy())
			assert.Equal(t, strategy, eval.BlindRotator().Strategy())

			for i := 0; i < 2; i++ {
				bara := randomRotation(testParams.LWEDimension(), N)
				acc := eval.TrivialGLWE(pt.Value)
				eval.BlindRotateAssign(acc, bara)

				rotation := rotationOf(bara, testEncryptor.SecretKey.LWEKey, N)
				want := testEncryptor.DecodeGLWE(tfhe.GLWEPlaintext[uint32]{Value: eval.PolyEvaluator.MonomialMulPoly(pt.Value, rotation)})
				if diff := cmp.Diff(want, testEncryptor.DecryptGLWE(acc)); diff != "" {
					t.Errorf("X^%d mismatch (-want +got):\n%s", rotation, diff)
				}
			}
		})

		t.Run(fmt.Sprintf("ZeroRotation/%v", strategy), func(t *testing.T) {
			acc := eval.TrivialGLWE(pt.Value)
			eval.BlindRotateAssign(acc, make([]int, testParams.LWEDimension()))
			assert.Equal(t, testEncryptor.DecodeGLWE(pt), testEncryptor.DecryptGLWE(acc))
		})

		t.Run(fmt.Sprintf("LengthMismatch/%v", strategy), func(t *testing.T) {
			acc := eval.TrivialGLWE(pt.Value)
			assert.Panics(t, func() { eval.BlindRotateAssign(acc, make([]int, testParams.LWEDimension()-1)) })
		})
	}

	t.Run("GroupedCombineDenseKey", func(t *testing.T) {
		assert.Panics(t, func() { testDenseEvaluator.WithStrategy(tfhe.StrategyGroupedCombine) })
	})
}

func TestBlindRotateBlockCount(t *testing.T) {
	// Odd block counts leave the hoisted accumulator in the scratch buffer.
	for _, hammingWeight := range []int{1, 2, 3, 4, 6, 12} {
		for _, strategy := range strategyList {
			if strategy == tfhe.StrategyGroupedCombine && hammingWeight == 12 {
				continue
			}

			params := smallParams(hammingWeight, strategy)
			enc := tfhe.NewEncryptor(params)
			eval := tfhe.NewEvaluator(params, enc.GenEvaluationKey())
			N := params.PolyDegree()

			t.Run(fmt.Sprintf("HammingWeight=%v/%v", hammingWeight, strategy), func(t *testing.T) {
				pt := enc.EncodeGLWE(randomMessages(N, params))
				bara := randomRotation(params.LWEDimension(), N)

				acc := eval.TrivialGLWE(pt.Value)
				eval.BlindRotateAssign(acc, bara)

				rotation := rotationOf(bara, enc.SecretKey.LWEKey, N)
				want := enc.DecodeGLWE(tfhe.GLWEPlaintext[uint32]{Value: eval.PolyEvaluator.MonomialMulPoly(pt.Value, rotation)})
				assert.Equal(t, want, enc.DecryptGLWE(acc))
			})
		}
	}
}

func TestBlindRotateAndExtract(t *testing.T) {
	N := testParams.PolyDegree()
	messages := randomMessages(N, testParams)
	v := testEncryptor.EncodeGLWE(messages).Value

	// coeffAt reads v anticyclically at p in [0, 2N).
	coeffAt := func(p int) int {
		if p < N {
			return messages[p]
		}
		return (int(testParams.MessageModulus()) - messages[p-N]) % int(testParams.MessageModulus())
	}

	for _, strategy := range strategyList {
		eval := testEvaluator.WithStrategy(strategy)

		t.Run(fmt.Sprintf("Random/%v", strategy), func(t *testing.T) {
			bara := randomRotation(testParams.LWEDimension(), N)
			barb := testSampler.SampleN(2 * N)
			p := ((barb-rotationOf(bara, testEncryptor.SecretKey.LWEKey, N))%(2*N) + 2*N) % (2 * N)

			ct := eval.BlindRotateAndExtract(v, barb, bara)
			assert.Equal(t, testParams.GLWEDimension(), ct.Dimension())
			assert.Equal(t, coeffAt(p), testEncryptor.DecryptLWE(ct))
		})
	}

	t.Run("ZeroShift", func(t *testing.T) {
		for _, barb := range []int{0, 1, N, 2*N - 1} {
			ct := testEvaluator.BlindRotateAndExtract(v, barb, make([]int, testParams.LWEDimension()))
			assert.Equal(t, coeffAt(barb), testEncryptor.DecryptLWE(ct), "barb=%d", barb)
		}
	})
}

func TestBootstrap(t *testing.T) {
	mu := uint32(1) << 29
	sparseKSK := testEncryptor.GenSparseKeySwitchKey()

	evaluatorList := map[string]*tfhe.Evaluator[uint32]{
		"GroupedCombine": testEvaluator,
		"HoistedMux":     testEvaluator.WithStrategy(tfhe.StrategyHoistedMux),
		"Dense":          testEvaluator.WithStrategy(tfhe.StrategyDense),
		"SparseKeySwitch": tfhe.NewEvaluator(testParams, tfhe.EvaluationKey[uint32]{
			BootstrapKey: testEvaluator.EvaluationKey.BootstrapKey,
			KeySwitchKey: sparseKSK,
		}),
	}

	for name, eval := range evaluatorList {
		t.Run(fmt.Sprintf("Sign/%v", name), func(t *testing.T) {
			for i := 0; i < 8; i++ {
				b := testSampler.SampleBinary() == 1
				ctOut := eval.Bootstrap(testEncryptor.EncryptBool(b), mu)
				assert.Equal(t, testParams.LWEDimension(), ctOut.Dimension())
				assert.Equal(t, b, testEncryptor.DecryptBool(ctOut))
			}
		})

		t.Run(fmt.Sprintf("WithoutKeySwitch/%v", name), func(t *testing.T) {
			ctOut := eval.BootstrapWithoutKeySwitch(testEncryptor.EncryptBool(true), mu)
			assert.Equal(t, testParams.GLWEDimension(), ctOut.Dimension())
			assert.True(t, testEncryptor.DecryptBool(ctOut))
		})
	}

	t.Run("InPlace", func(t *testing.T) {
		ct := testEncryptor.EncryptBool(false)
		testEvaluator.BootstrapAssign(ct, mu, ct)
		assert.False(t, testEncryptor.DecryptBool(ct))
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		ct := tfhe.NewLWECiphertextCustom[uint32](testParams.LWEDimension() + 1)
		assert.Panics(t, func() { testEvaluator.Bootstrap(ct, mu) })
	})
}

func TestBootstrapDenseReference(t *testing.T) {
	// Inputs are i / nbSamples with noise of standard deviation 0.01,
	// compared against the dense key bootstrapping of the same plaintext.
	const nbSamples = 50
	mu := uint32(1) << 29

	for _, strategy := range strategyList {
		eval := testEvaluator.WithStrategy(strategy)

		t.Run(fmt.Sprintf("%v", strategy), func(t *testing.T) {
			for i := 0; i < nbSamples; i++ {
				x := uint32((uint64(i) << 32) / nbSamples)

				ctSparse := testEncryptor.EncryptLWETorusCustom(x, 0.01)
				ctDense := testDenseEncryptor.EncryptLWETorusCustom(x, 0.01)

				outSparse := testEncryptor.DecryptBool(eval.Bootstrap(ctSparse, mu))
				outDense := testDenseEncryptor.DecryptBool(testDenseEvaluator.Bootstrap(ctDense, mu))

				if phase := testEncryptor.PhaseLWE(ctSparse); !nearBoundary(phase, 0.015) {
					assert.Equal(t, phasePositive(phase), outSparse, "sample %d", i)
				}
				if phase := testDenseEncryptor.PhaseLWE(ctDense); !nearBoundary(phase, 0.015) {
					assert.Equal(t, phasePositive(phase), outDense, "sample %d", i)
				}
				if !nearBoundary(x, 0.06) {
					assert.Equal(t, outDense, outSparse, "sample %d", i)
				}
			}
		})
	}
}

// phasePositive reports whether x lies in (0, 1/2) on the torus.
func phasePositive(x uint32) bool {
	return torusError(x) > 0
}

func TestBootstrapFunc(t *testing.T) {
	f := func(x int) int { return 3*x + 1 }
	M := int(testParams.MessageModulus())

	for _, strategy := range strategyList {
		eval := testEvaluator.WithStrategy(strategy)

		t.Run(fmt.Sprintf("Func/%v", strategy), func(t *testing.T) {
			for x := 0; x < M/2; x++ {
				ctOut := eval.BootstrapFunc(testEncryptor.EncryptLWE(x), f)
				assert.Equal(t, f(x)%M, testEncryptor.DecryptLWE(ctOut), "x=%d", x)
			}
		})
	}

	t.Run("LUT", func(t *testing.T) {
		lut := testEvaluator.GenLookUpTable(func(x int) int { return x * x })
		for x := 0; x < M/2; x++ {
			assert.Equal(t, (x*x)%M, testEncryptor.DecryptLWE(testEvaluator.BootstrapLUT(testEncryptor.EncryptLWE(x), lut)), "x=%d", x)
		}
	})

	t.Run("Uint64", func(t *testing.T) {
		if testing.Short() {
			t.Skip("generates 64-bit evaluation key")
		}

		params := tfhe.ParamsSparseUint64.Compile()
		enc := tfhe.NewEncryptor(params)
		eval := tfhe.NewEvaluator(params, enc.GenEvaluationKeyParallel())

		M := int(params.MessageModulus())
		for x := 0; x < M/2; x++ {
			ctOut := eval.BootstrapFunc(enc.EncryptLWE(x), func(x int) int { return M/2 - 1 - x })
			assert.Equal(t, M/2-1-x, enc.DecryptLWE(ctOut), "x=%d", x)
		}
	})
}

func TestBootstrapParallel(t *testing.T) {
	mu := uint32(1) << 29
	fingerprint := testEvaluator.EvaluationKey.BootstrapKey.Fingerprint()

	bits := make([]bool, 16)
	cts := make([]tfhe.LWECiphertext[uint32], len(bits))
	for i := range cts {
		bits[i] = testSampler.SampleBinary() == 1
		cts[i] = testEncryptor.EncryptBool(bits[i])
	}

	t.Run("Sign", func(t *testing.T) {
		ctsOut := testEvaluator.BootstrapParallel(cts, mu)
		for i := range ctsOut {
			assert.Equal(t, bits[i], testEncryptor.DecryptBool(ctsOut[i]), "index %d", i)
			assert.Equal(t, testEncryptor.DecryptBool(testEvaluator.Bootstrap(cts[i], mu)), testEncryptor.DecryptBool(ctsOut[i]))
		}
	})

	t.Run("LUT", func(t *testing.T) {
		lut := testEvaluator.GenLookUpTable(func(x int) int { return x + 2 })
		ctsIn := []tfhe.LWECiphertext[uint32]{testEncryptor.EncryptLWE(0), testEncryptor.EncryptLWE(1), testEncryptor.EncryptLWE(3)}
		ctsOut := testEvaluator.BootstrapLUTParallel(ctsIn, lut)
		assert.Equal(t, 2, testEncryptor.DecryptLWE(ctsOut[0]))
		assert.Equal(t, 3, testEncryptor.DecryptLWE(ctsOut[1]))
		assert.Equal(t, 5, testEncryptor.DecryptLWE(ctsOut[2]))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, testEvaluator.BootstrapParallel(nil, mu))
	})

	t.Run("KeyUnchanged", func(t *testing.T) {
		assert.Equal(t, fingerprint, testEvaluator.EvaluationKey.BootstrapKey.Fingerprint())
	})
}

func TestDebugContext(t *testing.T) {
	mu := uint32(1) << 29

	for _, strategy := range strategyList {
		t.Run(fmt.Sprintf("Variance/%v", strategy), func(t *testing.T) {
			var reports []tfhe.DebugReport
			ctx := tfhe.NewDebugContext(testEncryptor.SecretKey, func(r tfhe.DebugReport) { reports = append(reports, r) })
			eval := testEvaluator.WithStrategy(strategy).WithDebug(ctx)

			for i := 0; i < 4; i++ {
				eval.Bootstrap(testEncryptor.EncryptBool(true), mu)
			}
			assert.Len(t, reports, 4)

			estimate := testParams.BlindRotateVariance(strategy)
			for _, r := range reports {
				assert.Equal(t, strategy, r.Strategy)
				assert.GreaterOrEqual(t, r.Rotation, 0)
				assert.Less(t, r.Rotation, 2*testParams.PolyDegree())
				assert.Less(t, r.MaxError, 1.0/16)
				assert.Greater(t, r.StdDev*r.StdDev, estimate/3)
				assert.Less(t, r.StdDev*r.StdDev, estimate*3)
			}
		})
	}

	t.Run("Detach", func(t *testing.T) {
		calls := 0
		ctx := tfhe.NewDebugContext(testEncryptor.SecretKey, func(tfhe.DebugReport) { calls++ })
		eval := testEvaluator.WithDebug(ctx).WithDebug(nil)
		eval.Bootstrap(testEncryptor.EncryptBool(true), mu)
		testEvaluator.Bootstrap(testEncryptor.EncryptBool(true), mu)
		assert.Zero(t, calls)
	})
}

func BenchmarkBlindRotate(b *testing.B) {
	pt := testEncryptor.EncodeGLWE(randomMessages(testParams.PolyDegree(), testParams))
	bara := randomRotation(testParams.LWEDimension(), testParams.PolyDegree())

	for _, strategy := range strategyList {
		eval := testEvaluator.WithStrategy(strategy)
		acc := eval.TrivialGLWE(pt.Value)

		b.Run(fmt.Sprintf("%v", strategy), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				eval.BlindRotateAssign(acc, bara)
			}
		})
	}
}

func BenchmarkBootstrap(b *testing.B) {
	mu := uint32(1) << 29
	ct := testEncryptor.EncryptBool(true)
	ctOut := tfhe.NewLWECiphertext(testParams)

	for _, strategy := range strategyList {
		eval := testEvaluator.WithStrategy(strategy)

		b.Run(fmt.Sprintf("%v", strategy), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				eval.BootstrapAssign(ct, mu, ctOut)
			}
		})
	}

	b.Run("DenseKey", func(b *testing.B) {
		ct := testDenseEncryptor.EncryptBool(true)
		for i := 0; i < b.N; i++ {
			testDenseEvaluator.BootstrapAssign(ct, mu, ctOut)
		}
	})
}

func BenchmarkKeySwitch(b *testing.B) {
	ct := testEncryptor.EncryptGLWE([]int{1}).ToLWECiphertext(0)
	ctOut := tfhe.NewLWECiphertext(testParams)

	b.Run("Dense", func(b *testing.B) {
		ksk := testEvaluator.EvaluationKey.KeySwitchKey
		for i := 0; i < b.N; i++ {
			testEvaluator.KeySwitchAssign(ct, ksk, ctOut)
		}
	})

	b.Run("Sparse", func(b *testing.B) {
		ksk := testEncryptor.GenSparseKeySwitchKey()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			testEvaluator.KeySwitchAssign(ct, ksk, ctOut)
		}
	})
}
