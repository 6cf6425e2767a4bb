// Package vec implements vector operations acting on slices.
package vec

import (
	"github.com/SNUCP/sparse-tfhe/math/num"
)

// CopyAssign copies v0 to vOut.
func CopyAssign[T any](v0, vOut []T) {
	copy(vOut, v0)
}

// Copy returns a copy of v.
func Copy[T any](v []T) []T {
	if v == nil {
		return nil
	}
	vOut := make([]T, len(v))
	copy(vOut, v)
	return vOut
}

// Fill fills v with x.
func Fill[T any](v []T, x T) {
	for i := range v {
		v[i] = x
	}
}

// Equals returns whether v0 and v1 are equal.
func Equals[T comparable](v0, v1 []T) bool {
	if len(v0) != len(v1) {
		return false
	}
	for i := range v0 {
		if v0[i] != v1[i] {
			return false
		}
	}
	return true
}

// ReverseInPlace reverses v in place.
func ReverseInPlace[T any](v []T) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}

// RotateInPlace rotates v l times to the right in place.
// If l < 0, then it rotates v -l times to the left.
func RotateInPlace[T any](v []T, l int) {
	if len(v) == 0 {
		return
	}
	l %= len(v)
	if l < 0 {
		l += len(v)
	}
	ReverseInPlace(v)
	ReverseInPlace(v[:l])
	ReverseInPlace(v[l:])
}

// AddAssign computes vOut = v0 + v1.
func AddAssign[T num.Integer](v0, v1, vOut []T) {
	for i := range vOut {
		vOut[i] = v0[i] + v1[i]
	}
}

// SubAssign computes vOut = v0 - v1.
func SubAssign[T num.Integer](v0, v1, vOut []T) {
	for i := range vOut {
		vOut[i] = v0[i] - v1[i]
	}
}

// NegAssign computes vOut = -v0.
func NegAssign[T num.Integer](v0, vOut []T) {
	for i := range vOut {
		vOut[i] = -v0[i]
	}
}

// ScalarMulAssign computes vOut = c * v0.
func ScalarMulAssign[T num.Integer](v0 []T, c T, vOut []T) {
	for i := range vOut {
		vOut[i] = c * v0[i]
	}
}

// ScalarMulSubAssign computes vOut -= c * v0.
func ScalarMulSubAssign[T num.Integer](v0 []T, c T, vOut []T) {
	for i := range vOut {
		vOut[i] -= c * v0[i]
	}
}

// Dot returns the dot product of v0 and v1.
func Dot[T num.Integer](v0, v1 []T) T {
	var res T
	for i := range v0 {
		res += v0[i] * v1[i]
	}
	return res
}
