package csprng

import (
	"math"

	"github.com/SNUCP/sparse-tfhe/math/num"
)

// GaussianSampler samples from the rounded gaussian distribution over the torus.
// This is not safe for concurrent use.
type GaussianSampler[T num.Unsigned] struct {
	baseSampler *UniformSampler[T]
	scale       float64
}

// NewGaussianSampler allocates a new GaussianSampler on top of baseSampler.
func NewGaussianSampler[T num.Unsigned](baseSampler *UniformSampler[T]) *GaussianSampler[T] {
	return &GaussianSampler[T]{
		baseSampler: baseSampler,
		scale:       math.Exp2(float64(num.SizeT[T]())),
	}
}

// SampleFloat64 samples a float64 from the normal distribution with standard deviation stdDev,
// using the Box-Muller transform.
func (s *GaussianSampler[T]) SampleFloat64(stdDev float64) float64 {
	u, v := s.baseSampler.SampleFloat64(), s.baseSampler.SampleFloat64()
	return stdDev * math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}

// SampleTorus samples a torus element whose real value follows
// the normal distribution with standard deviation stdDev.
// stdDev is given as a fraction of the torus.
func (s *GaussianSampler[T]) SampleTorus(stdDev float64) T {
	return T(int64(math.Round(s.SampleFloat64(stdDev) * s.scale)))
}

// SampleTorusSliceAssign samples gaussian torus elements to vOut.
func (s *GaussianSampler[T]) SampleTorusSliceAssign(stdDev float64, vOut []T) {
	for i := range vOut {
		vOut[i] = s.SampleTorus(stdDev)
	}
}

// SampleTorusAddSliceAssign adds gaussian torus elements to vOut.
func (s *GaussianSampler[T]) SampleTorusAddSliceAssign(stdDev float64, vOut []T) {
	for i := range vOut {
		vOut[i] += s.SampleTorus(stdDev)
	}
}
