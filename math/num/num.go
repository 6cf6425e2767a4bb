// Package num implements various utility functions regarding numeric types.
package num

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Integer represents the integer types.
type Integer interface {
	constraints.Integer
}

// Unsigned represents the unsigned integer types.
type Unsigned interface {
	constraints.Unsigned
}

// SizeT returns the bit length of T.
func SizeT[T Unsigned]() int {
	return bits.OnesCount64(uint64(^T(0)))
}

// Abs returns the absolute value of x.
func Abs[T Integer](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// IsPowerOfTwo returns whether x is a power of two.
func IsPowerOfTwo[T Integer](x T) bool {
	return x > 0 && x&(x-1) == 0
}

// Log2 returns floor(log2(x)).
// Panics if x <= 0.
func Log2[T Integer](x T) int {
	if x <= 0 {
		panic("Log2 of non-positive number")
	}
	return bits.Len64(uint64(x)) - 1
}

// DivRound returns round(x/y).
func DivRound(x, y int) int {
	q, r := x/y, x%y
	if 2*Abs(r) >= Abs(y) {
		if (x < 0) != (y < 0) {
			return q - 1
		}
		return q + 1
	}
	return q
}

// ToSigned reinterprets x as a two's complement signed integer.
func ToSigned[T Unsigned](x T) int64 {
	switch SizeT[T]() {
	case 8:
		return int64(int8(x))
	case 16:
		return int64(int16(x))
	case 32:
		return int64(int32(x))
	}
	return int64(x)
}
