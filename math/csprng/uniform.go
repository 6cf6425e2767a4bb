// Package csprng implements cryptographically secure samplers
// built on the blake2b extendable output function.
package csprng

import (
	"crypto/rand"
	"encoding/binary"
	"math"

	"github.com/SNUCP/sparse-tfhe/math/num"
	"golang.org/x/crypto/blake2b"
)

const (
	// SeedSize is the size of the seed drawn from the system entropy source.
	SeedSize = 32

	// bufSize is the number of bytes pulled from the XOF at once.
	bufSize = 1024
)

// UniformSampler samples values from the uniform distribution.
// This is not safe for concurrent use.
type UniformSampler[T num.Unsigned] struct {
	xof  blake2b.XOF
	buf  [bufSize]byte
	ptr  int
	size int
}

// NewUniformSampler allocates an empty UniformSampler,
// seeded from the system entropy source.
//
// Panics when the entropy source fails.
func NewUniformSampler[T num.Unsigned]() *UniformSampler[T] {
	seed := make([]byte, SeedSize)
	if _, err := rand.Read(seed); err != nil {
		panic(err)
	}
	return NewUniformSamplerWithSeed[T](seed)
}

// NewUniformSamplerWithSeed allocates an empty UniformSampler with user supplied seed.
// The same seed gives the same stream of samples.
//
// Panics when the seed is longer than 64 bytes.
func NewUniformSamplerWithSeed[T num.Unsigned](seed []byte) *UniformSampler[T] {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, seed)
	if err != nil {
		panic(err)
	}

	return &UniformSampler[T]{
		xof:  xof,
		ptr:  bufSize,
		size: num.SizeT[T]() / 8,
	}
}

// fill refills the internal buffer if fewer than n bytes remain.
func (s *UniformSampler[T]) fill(n int) {
	if s.ptr+n <= bufSize {
		return
	}
	if _, err := s.xof.Read(s.buf[:]); err != nil {
		panic(err)
	}
	s.ptr = 0
}

// Sample uniformly samples a random value of type T.
func (s *UniformSampler[T]) Sample() T {
	s.fill(s.size)
	var x T
	switch s.size {
	case 1:
		x = T(s.buf[s.ptr])
	case 2:
		x = T(binary.LittleEndian.Uint16(s.buf[s.ptr:]))
	case 4:
		x = T(binary.LittleEndian.Uint32(s.buf[s.ptr:]))
	default:
		x = T(binary.LittleEndian.Uint64(s.buf[s.ptr:]))
	}
	s.ptr += s.size
	return x
}

// SampleUint64 uniformly samples a random uint64 value.
func (s *UniformSampler[T]) SampleUint64() uint64 {
	s.fill(8)
	x := binary.LittleEndian.Uint64(s.buf[s.ptr:])
	s.ptr += 8
	return x
}

// SampleN uniformly samples a random integer in [0, n).
//
// Panics when n <= 0.
func (s *UniformSampler[T]) SampleN(n int) int {
	if n <= 0 {
		panic("SampleN bound not positive")
	}
	bound := uint64(n)
	limit := math.MaxUint64 - math.MaxUint64%bound
	for {
		x := s.SampleUint64()
		if x < limit {
			return int(x % bound)
		}
	}
}

// SampleFloat64 uniformly samples a random float64 in (0, 1).
func (s *UniformSampler[T]) SampleFloat64() float64 {
	return (float64(s.SampleUint64()>>11) + 0.5) / (1 << 53)
}

// SampleBinary uniformly samples a random value in {0, 1}.
func (s *UniformSampler[T]) SampleBinary() T {
	return T(s.SampleUint64() & 1)
}

// SampleSliceAssign samples uniform values to vOut.
func (s *UniformSampler[T]) SampleSliceAssign(vOut []T) {
	for i := range vOut {
		vOut[i] = s.Sample()
	}
}

// SampleBinarySliceAssign samples uniform binary values to vOut.
func (s *UniformSampler[T]) SampleBinarySliceAssign(vOut []T) {
	for i := range vOut {
		vOut[i] = s.SampleBinary()
	}
}

// SampleBlockSparseSliceAssign samples a binary vector with exactly one
// nonzero entry in each of the len(vOut)/blockSize contiguous blocks.
//
// Panics when blockSize does not divide len(vOut).
func (s *UniformSampler[T]) SampleBlockSparseSliceAssign(blockSize int, vOut []T) {
	if blockSize <= 0 || len(vOut)%blockSize != 0 {
		panic("block size does not divide vector length")
	}

	for i := 0; i < len(vOut); i += blockSize {
		for j := i; j < i+blockSize; j++ {
			vOut[j] = 0
		}
		vOut[i+s.SampleN(blockSize)] = 1
	}
}
