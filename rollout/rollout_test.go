package rollout

import (
	"context"
	"testing"
	"time"

	"ggp/experiments/metrics"
	"ggp/loader"
	"ggp/networks"
	"ggp/statemachine"

	"github.com/prometheus/client_golang/prometheus"
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

func TestDepthCharge(t *testing.T) {
	t.Run("plays pennies to a scored terminal", func(t *testing.T) {
		sm := build(t, "pennies")
		dc := NewDepthCharge(sm.Dupe(), WithSeed(11))
		for i := 0; i < 20; i++ {
			require.NoError(t, dc.Run(sm.InitialState()))
			require.Equal(t, 1, dc.Depth)
			require.Contains(t, [][]int{{100, 0}, {0, 100}}, dc.Goals)
		}
		require.False(t, sm.IsTerminal(), "Depth charges should run on their own machine")
	})

	t.Run("stops at the depth cap", func(t *testing.T) {
		sm := build(t, "switch")
		dc := NewDepthCharge(sm, WithMaxDepth(25), WithSeed(1))
		err := dc.Run(sm.InitialState())
		require.ErrorIs(t, err, ErrMaxDepth)
		require.Equal(t, 25, dc.Depth)
	})

	t.Run("reports a stuck role", func(t *testing.T) {
		sm := build(t, "churn")
		dc := NewDepthCharge(sm, WithSeed(1))
		err := dc.Run(sm.InitialState())
		require.ErrorIs(t, err, ErrNoLegalMove)
	})

	t.Run("terminal start needs no moves", func(t *testing.T) {
		sm := build(t, "switch")
		start := sm.NewBaseState()
		start.Set(0, true)
		dc := NewDepthCharge(sm)
		require.NoError(t, dc.Run(start))
		require.Zero(t, dc.Depth)
		require.Equal(t, []int{statemachine.UnknownGoal}, dc.Goals)
	})
}

func TestThroughput(t *testing.T) {
	t.Run("counts rollouts across workers", func(t *testing.T) {
		sm := build(t, "pennies")
		collector := metrics.NewPrometheusCollector(prometheus.NewRegistry())
		test := NewTest(sm, 4, WithCollector(collector), WithTestSeed(5))

		m, err := test.Run(context.Background(), 50*time.Millisecond)
		require.NoError(t, err)
		require.Equal(t, 4, m.Goroutines)
		require.Positive(t, m.Rollouts)
		require.Equal(t, m.Rollouts, m.StateChanges, "Every pennies rollout is one state change")
		require.Equal(t, 1, m.MaxDepth)
		require.False(t, sm.IsTerminal(), "Workers should never touch the shared machine")
	})

	t.Run("surfaces rollout failures", func(t *testing.T) {
		sm := build(t, "switch")
		test := NewTest(sm, 2, WithTestMaxDepth(10))
		_, err := test.Run(context.Background(), time.Second)
		require.ErrorIs(t, err, ErrMaxDepth)
	})

	t.Run("honours cancellation", func(t *testing.T) {
		sm := build(t, "pennies")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewTest(sm, 2).Run(ctx, time.Second)
		require.ErrorIs(t, err, context.Canceled)
	})
}
