package engine

import (
	"errors"
	"time"

	"ggp/meta"

	"github.com/rs/zerolog"
)

const MaxMoves = meta.MAX_MOVES

var (
	ErrIllegalMove = errors.New("engine: player chose an illegal move")
	ErrPlayers     = errors.New("engine: players do not match the game's roles")
)

// Result is the outcome of one match.
type Result struct {
	// Goals holds each role's goal value, or UnknownGoal when the match
	// stopped before terminal.
	Goals    []int
	Depth    int
	Terminal bool
}

type Option func(e *Engine)

func WithMaxMoves(moves int) Option {
	return func(e *Engine) {
		if moves > 0 {
			e.maxMoves = moves
		}
	}
}

// WithMoveTime sets the per-move deadline handed to players.
func WithMoveTime(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.moveTime = d
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}
