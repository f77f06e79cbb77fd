package statemachine_test

import (
	"testing"

	"ggp/loader"
	"ggp/networks"
	"ggp/statemachine"

	"github.com/stretchr/testify/require"
)

func buildPhases(t *testing.T, withGoals bool) *statemachine.Combined {
	t.Helper()
	d := networks.Phases()
	if !withGoals {
		d.Goals = nil
	}
	c, err := loader.BuildCombined(d)
	require.NoError(t, err)
	return c
}

func TestCombined(t *testing.T) {
	for _, withGoals := range []bool{true, false} {
		name := "without goal network"
		if withGoals {
			name = "with goal network"
		}
		t.Run(name, func(t *testing.T) {
			c := buildPhases(t, withGoals)
			opening := c.Current()
			require.Equal(t, "open", c.LegalToMove(0, c.LegalState(0).Legal(0)))

			next := play(c, 0)
			require.Equal(t, "010", next.String())
			require.NotSame(t, opening, c.Current(), "Clearing the opening control should switch networks")
			require.Equal(t, "close", c.LegalToMove(0, c.LegalState(0).Legal(0)))
			require.False(t, c.IsTerminal())

			play(c, 0)
			require.True(t, c.IsTerminal())
			require.Equal(t, 100, c.GoalValue(0))
		})
	}
}

func TestCombinedReset(t *testing.T) {
	c := buildPhases(t, true)
	opening := c.Current()
	play(c, 0)
	play(c, 0)

	c.Reset()
	require.Same(t, opening, c.Current(), "Reset should route back to the initial control")
	require.Equal(t, "100", c.CurrentState().String())
	require.False(t, c.IsTerminal())
}

func TestCombinedDupe(t *testing.T) {
	c := buildPhases(t, true)
	play(c, 0)

	d := c.Dupe().(*statemachine.Combined)
	require.NotSame(t, c.Current(), d.Current())
	require.True(t, c.CurrentState().Equals(d.CurrentState()))
	require.Equal(t, "close", d.LegalToMove(0, d.LegalState(0).Legal(0)), "The dupe should route to the same control")

	play(d, 0)
	require.True(t, d.IsTerminal())
	require.Equal(t, 100, d.GoalValue(0))
	require.False(t, c.IsTerminal(), "Mutating the dupe should not reach the original")
}

func TestCombinedMisuse(t *testing.T) {
	c := buildPhases(t, false)
	require.Panics(t, func() { c.SetInitialState(c.NewBaseState()) })
	require.Panics(t, func() { c.UpdateBases(c.NewBaseState()) }, "A state with no control base should panic")

	_, err := statemachine.NewCombined(nil, nil)
	require.ErrorIs(t, err, statemachine.ErrConfig)

	sm, err := loader.Build(networks.Switch())
	require.NoError(t, err)
	_, err = statemachine.NewCombined(nil, []statemachine.Control{{Index: 1, ControlBase: 0, SM: sm}})
	require.ErrorIs(t, err, statemachine.ErrRange)

	_, err = statemachine.NewCombined(nil, []statemachine.Control{{Index: 0, ControlBase: 3, SM: sm}})
	require.ErrorIs(t, err, statemachine.ErrRange)

	_, err = statemachine.NewCombined(nil, []statemachine.Control{{Index: 0, ControlBase: 0, SM: sm}})
	require.ErrorIs(t, err, statemachine.ErrConfig, "Switch starts with its only base off")
}
