package csprng_test

import (
	"testing"

	"github.com/SNUCP/sparse-tfhe/math/csprng"
	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
)

func TestUniformSampler(t *testing.T) {
	t.Run("Seeded", func(t *testing.T) {
		s0 := csprng.NewUniformSamplerWithSeed[uint32]([]byte("fixture"))
		s1 := csprng.NewUniformSamplerWithSeed[uint32]([]byte("fixture"))
		for i := 0; i < 2048; i++ {
			assert.Equal(t, s0.Sample(), s1.Sample())
		}
	})

	t.Run("SampleN", func(t *testing.T) {
		s := csprng.NewUniformSampler[uint64]()
		for i := 0; i < 1000; i++ {
			x := s.SampleN(5)
			assert.GreaterOrEqual(t, x, 0)
			assert.Less(t, x, 5)
		}
	})

	t.Run("BlockSparse", func(t *testing.T) {
		s := csprng.NewUniformSampler[uint32]()
		v := make([]uint32, 500)
		s.SampleBlockSparseSliceAssign(5, v)
		for i := 0; i < len(v); i += 5 {
			var w uint32
			for j := i; j < i+5; j++ {
				w += v[j]
			}
			assert.Equal(t, uint32(1), w)
		}
		assert.Panics(t, func() { s.SampleBlockSparseSliceAssign(3, v) })
	})
}

func TestGaussianSampler(t *testing.T) {
	stdDev := 0.01
	s := csprng.NewGaussianSampler(csprng.NewUniformSampler[uint32]())

	samples := make([]float64, 10000)
	for i := range samples {
		samples[i] = s.SampleFloat64(stdDev)
	}

	mean, err := stats.Mean(samples)
	assert.NoError(t, err)
	sd, err := stats.StandardDeviation(samples)
	assert.NoError(t, err)

	assert.InDelta(t, 0, mean, 5*stdDev/100)
	assert.InDelta(t, stdDev, sd, stdDev/10)
}
