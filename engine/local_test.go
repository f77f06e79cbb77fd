package engine

import (
	"context"
	"testing"
	"time"

	"ggp/loader"
	"ggp/networks"
	"ggp/player"
	"ggp/statemachine"

	"github.com/stretchr/testify/require"
)

func build(t *testing.T, name string) *statemachine.Machine {
	t.Helper()
	d, err := networks.ByName(name)
	require.NoError(t, err)
	sm, err := loader.Build(d)
	require.NoError(t, err)
	return sm
}

// fixed always answers the same choice, legal or not.
type fixed struct {
	role   int
	choice int
}

func (f *fixed) Name() string                             { return "fixed" }
func (f *fixed) Role() int                                { return f.role }
func (f *fixed) OnMetaGaming(deadline time.Time)          {}
func (f *fixed) OnApplyMove(move *statemachine.JointMove) {}
func (f *fixed) OnNextMove(deadline time.Time) int        { return f.choice }

func TestNew(t *testing.T) {
	sm := build(t, "pennies")

	_, err := New(sm, []player.Player{player.NewLegalPlayer(sm, 0)})
	require.ErrorIs(t, err, ErrPlayers, "Each role needs a player")

	_, err = New(sm, []player.Player{player.NewLegalPlayer(sm, 1), player.NewLegalPlayer(sm, 0)})
	require.ErrorIs(t, err, ErrPlayers, "Players should sit at their role's index")
}

func TestRun(t *testing.T) {
	t.Run("legal players match heads", func(t *testing.T) {
		sm := build(t, "pennies")
		e, err := New(sm, []player.Player{player.NewLegalPlayer(sm, 0), player.NewLegalPlayer(sm, 1)})
		require.NoError(t, err)

		result, gameMetric, moveMetrics, err := e.Run(context.Background())
		require.NoError(t, err)
		require.True(t, result.Terminal)
		require.Equal(t, 1, result.Depth)
		require.Equal(t, []int{100, 0}, result.Goals)
		require.Equal(t, []string{"legal(row)", "legal(column)"}, gameMetric.Players)
		require.Equal(t, 1, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 2)
		require.Equal(t, "heads", moveMetrics[1].MoveText)
	})

	t.Run("replays from the initial state", func(t *testing.T) {
		sm := build(t, "pennies")
		e, err := New(sm, []player.Player{&fixed{role: 0, choice: 1}, &fixed{role: 1, choice: 0}})
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			result, _, _, err := e.Run(context.Background())
			require.NoError(t, err)
			require.Equal(t, []int{0, 100}, result.Goals, "Every match should start fresh")
		}
	})

	t.Run("random players always finish", func(t *testing.T) {
		sm := build(t, "pennies")
		e, err := New(sm, []player.Player{player.NewRandomPlayer(sm, 0, 1), player.NewRandomPlayer(sm, 1, 2)})
		require.NoError(t, err)

		result, _, _, err := e.Run(context.Background())
		require.NoError(t, err)
		require.Contains(t, [][]int{{100, 0}, {0, 100}}, result.Goals)
	})

	t.Run("rejects illegal moves", func(t *testing.T) {
		sm := build(t, "pennies")
		e, err := New(sm, []player.Player{&fixed{role: 0, choice: 2}, &fixed{role: 1, choice: 0}})
		require.NoError(t, err)

		_, _, _, err = e.Run(context.Background())
		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("stops at the move cap", func(t *testing.T) {
		sm := build(t, "switch")
		e, err := New(sm, []player.Player{player.NewLegalPlayer(sm, 0)}, WithMaxMoves(7))
		require.NoError(t, err)

		result, _, moveMetrics, err := e.Run(context.Background())
		require.NoError(t, err)
		require.False(t, result.Terminal)
		require.Equal(t, 7, result.Depth)
		require.Equal(t, []int{statemachine.UnknownGoal}, result.Goals)
		require.Len(t, moveMetrics, 7)
	})

	t.Run("honours cancellation", func(t *testing.T) {
		sm := build(t, "switch")
		e, err := New(sm, []player.Player{player.NewLegalPlayer(sm, 0)})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, _, err = e.Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}
