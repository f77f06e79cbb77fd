package statemachine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLegalState(t *testing.T) {
	t.Run("churn leaves the surviving moves", func(t *testing.T) {
		ls := NewLegalState(3)
		ls.Insert(0)
		ls.Insert(1)

		ls.Remove(0)
		ls.Insert(2)

		require.Equal(t, 2, ls.Count())
		require.ElementsMatch(t, []int{1, 2}, ls.Legals())
		require.False(t, ls.Contains(0), "Removed move should not be contained")
	})

	t.Run("removing the tail element", func(t *testing.T) {
		ls := NewLegalState(4)
		ls.Insert(3)
		ls.Insert(1)
		ls.Remove(1)

		require.Equal(t, 1, ls.Count())
		require.Equal(t, 3, ls.Legal(0))
	})

	t.Run("matches a reference set under random churn", func(t *testing.T) {
		const capacity = 16
		rng := rand.New(rand.NewSource(3))
		ls := NewLegalState(capacity)
		ref := map[int]bool{}

		for step := 0; step < 2000; step++ {
			v := rng.Intn(capacity)
			if ref[v] {
				ls.Remove(v)
				delete(ref, v)
			} else {
				ls.Insert(v)
				ref[v] = true
			}

			require.Equal(t, len(ref), ls.Count(), "Count should equal the number of live moves")
			seen := map[int]bool{}
			for k := 0; k < ls.Count(); k++ {
				got := ls.Legal(k)
				require.True(t, ref[got], "Enumerated move %d should be live", got)
				require.False(t, seen[got], "Move %d enumerated twice", got)
				seen[got] = true
			}
			for v := 0; v < capacity; v++ {
				require.Equal(t, ref[v], ls.Contains(v))
			}
		}
	})

	t.Run("copies are independent", func(t *testing.T) {
		ls := NewLegalState(3)
		ls.Insert(2)
		c := ls.Copy()
		c.Remove(2)

		require.Equal(t, 1, ls.Count())
		require.Equal(t, 0, c.Count())
	})
}

func TestJointMove(t *testing.T) {
	jm := NewJointMove(3)
	for i := 0; i < 3; i++ {
		require.Equal(t, NoMove, jm.Get(i), "New joint moves should start unset")
	}

	jm.Set(1, 4)
	c := jm.Copy()
	require.True(t, c.Equals(jm))
	require.Equal(t, "(-1 4 -1)", jm.String())

	jm.Clear()
	require.False(t, c.Equals(jm))
}
