package engine

import (
	"context"
	"fmt"
	"time"

	"ggp/experiments/metrics"
	"ggp/player"
	"ggp/statemachine"

	"github.com/rs/zerolog"
)

// Engine referees a match: it owns the authoritative machine and asks each
// player for a move every step.
type Engine struct {
	sm       statemachine.StateMachine
	players  []player.Player
	maxMoves int
	moveTime time.Duration
	logger   zerolog.Logger
}

// New expects players[i] to play role i of sm.
func New(sm statemachine.StateMachine, players []player.Player, options ...Option) (*Engine, error) {
	if len(players) != sm.RoleCount() {
		return nil, fmt.Errorf("%w: %d players for %d roles", ErrPlayers, len(players), sm.RoleCount())
	}
	for i, p := range players {
		if p.Role() != i {
			return nil, fmt.Errorf("%w: player %s plays role %d at seat %d", ErrPlayers, p.Name(), p.Role(), i)
		}
	}

	e := &Engine{
		sm:       sm,
		players:  players,
		maxMoves: MaxMoves,
		moveTime: time.Second,
		logger:   zerolog.Nop(),
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// Run plays one match from the initial state until terminal or the move cap.
func (e *Engine) Run(ctx context.Context) (Result, metrics.GameMetric, []metrics.MoveMetric, error) {
	roles := e.sm.RoleCount()
	gameMetric := metrics.GameMetric{
		Players:   make([]string, roles),
		StartTime: time.Now(),
	}
	for i, p := range e.players {
		gameMetric.Players[i] = p.Name()
	}

	e.sm.Reset()
	deadline := time.Now().Add(e.moveTime)
	for _, p := range e.players {
		p.OnMetaGaming(deadline)
	}

	joint := e.sm.NewJointMove()
	next := e.sm.NewBaseState()
	var moveMetrics []metrics.MoveMetric
	step := 0
	for !e.sm.IsTerminal() && step < e.maxMoves {
		if err := ctx.Err(); err != nil {
			return Result{}, gameMetric, moveMetrics, err
		}
		step++

		for role, p := range e.players {
			start := time.Now()
			choice := p.OnNextMove(start.Add(e.moveTime))
			if !e.sm.LegalState(role).Contains(choice) {
				return Result{}, gameMetric, moveMetrics,
					fmt.Errorf("%w: %s chose %d at step %d", ErrIllegalMove, p.Name(), choice, step)
			}
			joint.Set(role, choice)
			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Step:     step,
				Role:     role,
				Player:   p.Name(),
				Move:     choice,
				MoveText: e.sm.LegalToMove(role, choice),
				Duration: time.Since(start),
			})
		}

		for _, p := range e.players {
			p.OnApplyMove(joint)
		}
		e.sm.NextState(joint, next)
		e.sm.UpdateBases(next)
		e.logger.Debug().Msgf("step %d: %s", step, joint)
	}

	result := Result{
		Goals:    make([]int, roles),
		Depth:    step,
		Terminal: e.sm.IsTerminal(),
	}
	for role := range result.Goals {
		result.Goals[role] = statemachine.UnknownGoal
		if result.Terminal {
			result.Goals[role] = e.sm.GoalValue(role)
		}
	}
	if !result.Terminal {
		e.logger.Warn().Msgf("stopped after %d moves without reaching terminal", step)
	}

	gameMetric.Goals = result.Goals
	gameMetric.Terminal = result.Terminal
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step
	return result, gameMetric, moveMetrics, nil
}
