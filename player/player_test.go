package player

import (
	"testing"
	"time"

	"ggp/loader"
	"ggp/networks"
	"ggp/statemachine"

	"github.com/stretchr/testify/require"
)

func pennies(t *testing.T) *statemachine.Machine {
	t.Helper()
	sm, err := loader.Build(networks.Pennies())
	require.NoError(t, err)
	return sm
}

func TestNew(t *testing.T) {
	sm := pennies(t)

	p, err := New("legal", sm, 1, 0)
	require.NoError(t, err)
	require.Equal(t, "legal(column)", p.Name())
	require.Equal(t, 1, p.Role())

	_, err = New("mcts", sm, 0, 0)
	require.Error(t, err, "Unknown kinds should be rejected")

	_, err = New("random", sm, 2, 0)
	require.Error(t, err, "Out of range roles should be rejected")
}

func TestLegalPlayer(t *testing.T) {
	sm := pennies(t)
	p := NewLegalPlayer(sm, 0)
	deadline := time.Now().Add(time.Second)

	p.OnMetaGaming(deadline)
	require.Equal(t, 0, p.OnNextMove(deadline))

	move := sm.NewJointMove()
	move.Set(0, 0)
	move.Set(1, 1)
	p.OnApplyMove(move)
	require.Equal(t, statemachine.NoMove, p.OnNextMove(deadline), "No move should be offered once the game is over")
	require.False(t, sm.IsTerminal(), "Players should advance their own copy only")
}

func TestRandomPlayer(t *testing.T) {
	sm := pennies(t)
	deadline := time.Now().Add(time.Second)

	t.Run("only picks live legals", func(t *testing.T) {
		p := NewRandomPlayer(sm, 1, 7)
		p.OnMetaGaming(deadline)
		seen := map[int]bool{}
		for i := 0; i < 200; i++ {
			choice := p.OnNextMove(deadline)
			require.True(t, sm.LegalState(1).Contains(choice))
			seen[choice] = true
		}
		require.Len(t, seen, 2, "Both moves should eventually be chosen")
	})

	t.Run("is reproducible with a seed", func(t *testing.T) {
		a := NewRandomPlayer(sm, 0, 42)
		b := NewRandomPlayer(sm, 0, 42)
		for i := 0; i < 50; i++ {
			require.Equal(t, a.OnNextMove(deadline), b.OnNextMove(deadline))
		}
	})

	t.Run("meta gaming resets a finished game", func(t *testing.T) {
		p := NewRandomPlayer(sm, 0, 3)
		move := sm.NewJointMove()
		move.Set(0, 1)
		move.Set(1, 1)
		p.OnApplyMove(move)
		require.Equal(t, statemachine.NoMove, p.OnNextMove(deadline))

		p.OnMetaGaming(deadline)
		require.NotEqual(t, statemachine.NoMove, p.OnNextMove(deadline))
	})
}
