package experiments

import (
	"context"
	"fmt"

	"ggp/config"
	"ggp/experiments/metrics"
	"ggp/rollout"
	"ggp/statemachine"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// RunPerf runs the depth-charge throughput test on network. With a non-nil
// reg the rollout series are also exported through Prometheus.
func RunPerf(ctx context.Context, cfg config.Config, network string, sm statemachine.StateMachine, reg prometheus.Registerer) (metrics.PerfRecord, error) {
	collector := metrics.NewCollector()
	if reg != nil {
		collector = metrics.NewPrometheusCollector(reg)
	}

	log.Info().Msgf("starting depth charge test of %s on %d goroutines for %s...", network, cfg.Perf.Goroutines, cfg.Perf.Duration)

	test := rollout.NewTest(sm, cfg.Perf.Goroutines,
		rollout.WithCollector(collector),
		rollout.WithTestMaxDepth(cfg.Perf.MaxDepth),
		rollout.WithTestSeed(cfg.Perf.Seed),
		rollout.WithLogger(log.Logger))

	metric, err := test.Run(ctx, cfg.Perf.Duration)
	record := metrics.PerfRecord{ID: 1, Network: network, RolloutMetric: metric}
	if err != nil {
		return record, fmt.Errorf("depth charge test: %w", err)
	}

	log.Info().Msgf("completed depth charge test: %.1f rollouts/sec, mean depth %.2f",
		metric.RolloutsPerSecond(), metric.MeanDepth())

	if !cfg.Output.WriteCSV {
		return record, nil
	}

	writer, err := metrics.NewWriter(cfg.Output.Dir)
	if err != nil {
		return record, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	err = writer.WritePerfRecords([]metrics.PerfRecord{record})
	if err != nil {
		return record, fmt.Errorf("failed to write perf records: %w", err)
	}
	log.Info().Msgf("stored perf records in %s", writer.Dir())

	return record, nil
}
