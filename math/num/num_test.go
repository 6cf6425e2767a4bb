package num_test

import (
	"testing"

	"github.com/SNUCP/sparse-tfhe/math/num"
	"github.com/stretchr/testify/assert"
)

func TestNum(t *testing.T) {
	t.Run("SizeT", func(t *testing.T) {
		assert.Equal(t, 32, num.SizeT[uint32]())
		assert.Equal(t, 64, num.SizeT[uint64]())
	})

	t.Run("Log2", func(t *testing.T) {
		assert.Equal(t, 10, num.Log2(1024))
		assert.Equal(t, 9, num.Log2(1023))
		assert.Panics(t, func() { num.Log2(0) })
	})

	t.Run("DivRound", func(t *testing.T) {
		assert.Equal(t, 3, num.DivRound(5, 2))
		assert.Equal(t, 2, num.DivRound(9, 4))
		assert.Equal(t, -3, num.DivRound(-5, 2))
	})

	t.Run("ToSigned", func(t *testing.T) {
		assert.Equal(t, int64(-1), num.ToSigned(^uint32(0)))
		assert.Equal(t, int64(1<<31-1), num.ToSigned(uint32(1<<31-1)))
		assert.Equal(t, int64(-2), num.ToSigned(^uint64(1)))
	})

	t.Run("IsPowerOfTwo", func(t *testing.T) {
		assert.True(t, num.IsPowerOfTwo(1024))
		assert.False(t, num.IsPowerOfTwo(1000))
		assert.False(t, num.IsPowerOfTwo(0))
	})
}
