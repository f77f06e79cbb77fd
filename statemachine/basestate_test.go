package statemachine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBaseStateGetSet(t *testing.T) {
	t.Run("agrees with a reference bit array", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for size := 0; size < 40; size++ {
			bs := NewBaseState(size)
			ref := make([]bool, size)
			for step := 0; step < 3*size; step++ {
				i := rng.Intn(size)
				v := rng.Intn(2) == 1
				bs.Set(i, v)
				ref[i] = v
			}
			for i := 0; i < size; i++ {
				require.Equal(t, ref[i], bs.Get(i), "Bit %d of size %d should match the reference", i, size)
			}
		}
	})

	t.Run("allocates one spare byte", func(t *testing.T) {
		require.Equal(t, 1, NewBaseState(0).RawBytes())
		require.Equal(t, 2, NewBaseState(8).RawBytes())
		require.Equal(t, 2, NewBaseState(9).RawBytes())
	})

	t.Run("panics out of range", func(t *testing.T) {
		bs := NewBaseState(5)
		require.Panics(t, func() { bs.Get(5) }, "Index equal to size should panic")
		require.Panics(t, func() { bs.Set(-1, true) }, "Negative index should panic")
	})

	t.Run("renders bits", func(t *testing.T) {
		bs := NewBaseState(4)
		bs.Set(1, true)
		bs.Set(3, true)
		require.Equal(t, "0101", bs.String())
	})
}

func TestBaseStateRaw(t *testing.T) {
	t.Run("round trips any validly sized buffer", func(t *testing.T) {
		rng := rand.New(rand.NewSource(11))
		for size := 0; size < 64; size += 5 {
			bs := NewBaseState(size)
			buf := make([]byte, bs.RawBytes())
			rng.Read(buf)

			require.NoError(t, bs.SetRaw(buf))
			require.Equal(t, buf, bs.Raw(), "Export of an import should return the same bytes")
		}
	})

	t.Run("reverses bits within each byte", func(t *testing.T) {
		bs := NewBaseState(10)
		bs.Set(0, true)
		bs.Set(9, true)
		require.Equal(t, []byte{0x80, 0x40}, bs.Raw())
	})

	t.Run("rejects a buffer of the wrong length", func(t *testing.T) {
		bs := NewBaseState(10)
		err := bs.SetRaw([]byte{0})
		require.ErrorIs(t, err, ErrRange)
	})
}

func TestBaseStateEqualityAndHash(t *testing.T) {
	a := NewBaseState(12)
	b := NewBaseState(12)
	require.True(t, a.Equals(b))
	require.Equal(t, a.Hash(), b.Hash())

	a.Set(10, true)
	require.False(t, a.Equals(b), "States differing in one bit should not be equal")

	b.Assign(a)
	require.True(t, a.Equals(b), "Assign should copy every bit")
	require.Equal(t, a.Hash(), b.Hash(), "Equal states should hash equally")

	c := a.Copy()
	c.Set(10, false)
	require.True(t, a.Get(10), "Mutating a copy should not affect the original")

	require.Panics(t, func() { a.Assign(NewBaseState(3)) }, "Assigning across sizes should panic")
}
