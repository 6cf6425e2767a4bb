package tfhe_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/SNUCP/sparse-tfhe/tfhe"
	"github.com/stretchr/testify/assert"
)

var (
	paramsList32 = map[string]tfhe.ParametersLiteral[uint32]{
		"SparseBoolean":    tfhe.ParamsSparseBoolean,
		"SparseBooleanMux": tfhe.ParamsSparseBooleanMux,
		"DenseBoolean":     tfhe.ParamsDenseBoolean,
	}
)

func TestParams(t *testing.T) {
	for name, params := range paramsList32 {
		t.Run(fmt.Sprintf("Compile/Params%v", name), func(t *testing.T) {
			assert.NotPanics(t, func() { params.Compile() })
		})
	}

	t.Run("Compile/ParamsSparseUint64", func(t *testing.T) {
		assert.NotPanics(t, func() { tfhe.ParamsSparseUint64.Compile() })
	})

	for name, params := range paramsList32 {
		t.Run(fmt.Sprintf("FailureProbability/Params%v", name), func(t *testing.T) {
			p := params.Compile()
			// Gate inputs are sums of two bootstrapped ciphertexts, doubled for XOR.
			stdDev := math.Sqrt(8 * p.BootstrapVariance())
			assert.Greater(t, 0.125/stdDev, 6.0)
		})
	}

	t.Run("BlockSize", func(t *testing.T) {
		params := tfhe.ParamsSparseBoolean.Compile()
		assert.Equal(t, 100, params.BlockCount())
		assert.Equal(t, 5, params.BlockSize())
		assert.True(t, params.IsSparse())

		dense := tfhe.ParamsDenseBoolean.Compile()
		assert.Equal(t, 500, dense.HammingWeight())
		assert.Equal(t, 1, dense.BlockSize())
		assert.False(t, dense.IsSparse())
	})

	t.Run("BlockSizeMismatch", func(t *testing.T) {
		assert.Panics(t, func() { tfhe.ParamsSparseBoolean.WithHammingWeight(7).Compile() })
		assert.Panics(t, func() { tfhe.ParamsSparseBoolean.WithHammingWeight(501).Compile() })
	})

	t.Run("GroupedCombineDenseKey", func(t *testing.T) {
		assert.Panics(t, func() {
			tfhe.ParamsDenseBoolean.WithBlindRotateStrategy(tfhe.StrategyGroupedCombine).Compile()
		})
		assert.NotPanics(t, func() {
			tfhe.ParamsSparseBoolean.WithBlindRotateStrategy(tfhe.StrategyHoistedMux).Compile()
		})
	})

	t.Run("Gadget", func(t *testing.T) {
		assert.Panics(t, func() { tfhe.GadgetParametersLiteral[uint32]{Base: 3, Level: 2}.Compile() })
		assert.Panics(t, func() { tfhe.GadgetParametersLiteral[uint32]{Base: 1 << 10, Level: 0}.Compile() })
		assert.Panics(t, func() { tfhe.GadgetParametersLiteral[uint32]{Base: 1 << 10, Level: 4}.Compile() })

		gadget := tfhe.GadgetParametersLiteral[uint32]{Base: 1 << 10, Level: 2}.Compile()
		assert.Equal(t, 10, gadget.LogBase())
		assert.Equal(t, 22, gadget.ScaledBaseLog(0))
		assert.Equal(t, 12, gadget.ScaledBaseLog(1))
		assert.Equal(t, uint32(1<<12), gadget.ScaledBase(1))
	})

	t.Run("Variance", func(t *testing.T) {
		params := tfhe.ParamsSparseBoolean.Compile()
		grouped := params.BlindRotateVariance(tfhe.StrategyGroupedCombine)
		hoisted := params.BlindRotateVariance(tfhe.StrategyHoistedMux)
		dense := params.BlindRotateVariance(tfhe.StrategyDense)

		assert.Less(t, grouped, hoisted)
		assert.InDelta(t, hoisted, dense, hoisted*1e-9)
		assert.Greater(t, params.KeySwitchVariance(tfhe.KeySwitchSparse), params.KeySwitchVariance(tfhe.KeySwitchDense))
		assert.Greater(t, params.BootstrapVariance(), grouped)
	})

	t.Run("Strings", func(t *testing.T) {
		assert.Equal(t, "GroupedCombine", tfhe.StrategyGroupedCombine.String())
		assert.Equal(t, "HoistedMux", tfhe.StrategyHoistedMux.String())
		assert.Equal(t, "Dense", tfhe.StrategyDense.String())
		assert.Equal(t, "Sparse", tfhe.KeySwitchSparse.String())
	})
}
