package rollout

import (
	"errors"
	"fmt"
	"time"

	"ggp/meta"
	"ggp/statemachine"

	"golang.org/x/exp/rand"
)

var (
	ErrMaxDepth    = errors.New("rollout: depth charge exceeded the maximum number of states")
	ErrNoLegalMove = errors.New("rollout: role has no legal move in a non-terminal state")
)

type Option func(dc *DepthCharge)

func WithMaxDepth(depth int) Option {
	return func(dc *DepthCharge) {
		if depth > 0 {
			dc.maxDepth = depth
		}
	}
}

// WithSeed fixes the random move sequence. Zero keeps a time-based seed.
func WithSeed(seed uint64) Option {
	return func(dc *DepthCharge) {
		if seed != 0 {
			dc.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// DepthCharge plays uniformly random joint moves until terminal.
// It owns its machine; pass it a Dupe when the machine is shared.
type DepthCharge struct {
	sm       statemachine.StateMachine
	rng      *rand.Rand
	maxDepth int
	move     *statemachine.JointMove
	next     *statemachine.BaseState

	// Depth and Goals describe the last completed rollout.
	Depth int
	Goals []int
}

func NewDepthCharge(sm statemachine.StateMachine, options ...Option) *DepthCharge {
	dc := &DepthCharge{
		sm:       sm,
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		maxDepth: meta.MAX_NUMBER_STATES,
		move:     sm.NewJointMove(),
		next:     sm.NewBaseState(),
		Goals:    make([]int, sm.RoleCount()),
	}
	for _, option := range options {
		option(dc)
	}
	return dc
}

// Run plays one rollout from start. The machine is reset first so no move
// input from an earlier rollout is still asserted.
func (dc *DepthCharge) Run(start *statemachine.BaseState) error {
	dc.sm.Reset()
	dc.sm.UpdateBases(start)
	dc.Depth = 0

	roles := dc.sm.RoleCount()
	for !dc.sm.IsTerminal() {
		if dc.Depth >= dc.maxDepth {
			return fmt.Errorf("%w (%d)", ErrMaxDepth, dc.maxDepth)
		}

		for role := 0; role < roles; role++ {
			ls := dc.sm.LegalState(role)
			if ls.Count() == 0 {
				return fmt.Errorf("%w: role %d at depth %d", ErrNoLegalMove, role, dc.Depth)
			}
			dc.move.Set(role, ls.Legal(dc.rng.Intn(ls.Count())))
		}

		dc.sm.NextState(dc.move, dc.next)
		dc.sm.UpdateBases(dc.next)
		dc.Depth++
	}

	for role := 0; role < roles; role++ {
		dc.Goals[role] = dc.sm.GoalValue(role)
	}
	return nil
}
