package rollout

import (
	"context"
	"time"

	"ggp/experiments/metrics"
	"ggp/meta"
	"ggp/statemachine"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type TestOption func(t *Test)

func WithCollector(collector metrics.Collector) TestOption {
	return func(t *Test) {
		if collector != nil {
			t.metrics = collector
		}
	}
}

func WithTestMaxDepth(depth int) TestOption {
	return func(t *Test) {
		if depth > 0 {
			t.maxDepth = depth
		}
	}
}

// WithTestSeed seeds worker i with seed+i.
func WithTestSeed(seed uint64) TestOption {
	return func(t *Test) {
		t.seed = seed
	}
}

func WithLogger(logger zerolog.Logger) TestOption {
	return func(t *Test) {
		t.logger = logger
	}
}

// Test measures depth-charge throughput from the initial state.
type Test struct {
	sm         statemachine.StateMachine
	goroutines int
	maxDepth   int
	seed       uint64
	metrics    metrics.Collector
	logger     zerolog.Logger
}

func NewTest(sm statemachine.StateMachine, goroutines int, options ...TestOption) *Test {
	if goroutines <= 0 {
		goroutines = meta.GO_ROUTINES
	}
	t := &Test{
		sm:         sm,
		goroutines: goroutines,
		maxDepth:   meta.MAX_NUMBER_STATES,
		metrics:    metrics.NewCollector(),
		logger:     zerolog.Nop(),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// Run keeps every worker rolling out on its own Dupe until duration
// elapses. A failed rollout stops all workers.
func (t *Test) Run(ctx context.Context, duration time.Duration) (metrics.RolloutMetric, error) {
	charges := make([]*DepthCharge, t.goroutines)
	for i := range charges {
		seed := t.seed
		if seed != 0 {
			seed += uint64(i)
		}
		charges[i] = NewDepthCharge(t.sm.Dupe(), WithMaxDepth(t.maxDepth), WithSeed(seed))
	}
	start := t.sm.InitialState().Copy()

	timed, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	t.metrics.Start(t.goroutines)
	g, gctx := errgroup.WithContext(timed)
	for _, dc := range charges {
		dc := dc
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				default:
				}
				if err := dc.Run(start); err != nil {
					return err
				}
				t.metrics.AddRollout(dc.Depth)
				t.metrics.AddStateChanges(dc.Depth)
			}
		})
	}
	err := g.Wait()
	metric := t.metrics.Complete()
	if err != nil {
		return metric, err
	}
	if err := ctx.Err(); err != nil {
		return metric, err
	}

	t.logger.Info().Msgf("depth charge test: %d rollouts, %d state changes in %d msecs on %d goroutines",
		metric.Rollouts, metric.StateChanges, metric.Msecs(), metric.Goroutines)
	return metric, nil
}
