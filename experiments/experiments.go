package experiments

import (
	"context"
	"fmt"

	"ggp/config"
	"ggp/engine"
	"ggp/experiments/metrics"
	"ggp/player"
	"ggp/statemachine"

	"github.com/rs/zerolog/log"
)

// MatchReport holds the records of one batch of matches.
type MatchReport struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
	// Dir is where the records were written, if they were.
	Dir string
}

// RunMatches plays cfg.Match.Games matches of network with the configured
// player kinds and optionally stores the records as CSV.
func RunMatches(ctx context.Context, cfg config.Config, network string, sm statemachine.StateMachine) (MatchReport, error) {
	report := MatchReport{}
	roles := sm.RoleCount()

	log.Info().Msgf("starting %d matches of %s...", cfg.Match.Games, network)

	for i := 0; i < cfg.Match.Games; i++ {
		players := make([]player.Player, roles)
		for role := range players {
			seed := cfg.Match.Seed
			if seed != 0 {
				seed += uint64(i*roles + role)
			}
			p, err := player.New(cfg.Match.PlayerFor(role), sm, role, seed)
			if err != nil {
				return report, err
			}
			players[role] = p
		}

		e, err := engine.New(sm, players,
			engine.WithMaxMoves(cfg.Match.MaxMoves),
			engine.WithMoveTime(cfg.Match.MoveTime),
			engine.WithLogger(log.Logger))
		if err != nil {
			return report, err
		}

		result, gameMetric, moveMetrics, err := e.Run(ctx)
		if err != nil {
			return report, fmt.Errorf("match %d: %w", i+1, err)
		}

		id := i + 1
		report.Games = append(report.Games, metrics.GameRecord{
			ID:         id,
			Network:    network,
			GameMetric: gameMetric,
		})
		for _, mm := range moveMetrics {
			report.Moves = append(report.Moves, metrics.MoveRecord{
				Game:       id,
				MoveMetric: mm,
			})
		}

		log.Info().Msgf("completed match %d of %d after %d moves with goals %v", id, cfg.Match.Games, result.Depth, result.Goals)
	}

	log.Info().Msgf("completed %d matches of %s", cfg.Match.Games, network)

	if !cfg.Output.WriteCSV {
		return report, nil
	}

	writer, err := metrics.NewWriter(cfg.Output.Dir)
	if err != nil {
		return report, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	report.Dir = writer.Dir()

	err = writer.WriteGameRecords(report.Games)
	if err != nil {
		return report, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(report.Moves)
	if err != nil {
		return report, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return report, nil
}
