package vec_test

import (
	"testing"

	"github.com/SNUCP/sparse-tfhe/math/vec"
	"github.com/stretchr/testify/assert"
)

func TestVec(t *testing.T) {
	t.Run("RotateInPlace", func(t *testing.T) {
		v := []int{0, 1, 2, 3, 4}
		vec.RotateInPlace(v, 2)
		assert.Equal(t, []int{3, 4, 0, 1, 2}, v)

		vec.RotateInPlace(v, -2)
		assert.Equal(t, []int{0, 1, 2, 3, 4}, v)

		vec.RotateInPlace(v, 7)
		assert.Equal(t, []int{3, 4, 0, 1, 2}, v)
	})

	t.Run("Dot", func(t *testing.T) {
		assert.Equal(t, uint32(1*4+2*5+3*6), vec.Dot([]uint32{1, 2, 3}, []uint32{4, 5, 6}))
	})

	t.Run("ScalarMulSubAssign", func(t *testing.T) {
		v := []uint32{10, 10}
		vec.ScalarMulSubAssign([]uint32{1, 2}, 3, v)
		assert.Equal(t, []uint32{7, 4}, v)
	})
}
