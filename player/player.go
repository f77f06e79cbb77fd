package player

import (
	"fmt"
	"time"

	"ggp/statemachine"
	"ggp/utils"

	"golang.org/x/exp/rand"
)

// Kinds lists the player kinds New accepts.
var Kinds = []string{"legal", "random"}

// Player represents a game player bound to one role.
type Player interface {
	Name() string
	Role() int
	// OnMetaGaming prepares the player for a fresh match.
	OnMetaGaming(deadline time.Time)
	// OnApplyMove advances the player's own view of the game.
	OnApplyMove(move *statemachine.JointMove)
	// OnNextMove returns the chosen legal index for the player's role.
	OnNextMove(deadline time.Time) int
}

// New creates a player of the given kind. A zero seed picks a time-based one.
func New(kind string, sm statemachine.StateMachine, role int, seed uint64) (Player, error) {
	if utils.FindIndex(Kinds, kind) < 0 {
		return nil, fmt.Errorf("unknown player kind %q (have %v)", kind, Kinds)
	}
	if role < 0 || role >= sm.RoleCount() {
		return nil, fmt.Errorf("role %d out of range [0, %d)", role, sm.RoleCount())
	}

	switch kind {
	case "random":
		return NewRandomPlayer(sm, role, seed), nil
	default:
		return NewLegalPlayer(sm, role), nil
	}
}

// view is the game state a player tracks on its own copy of the machine.
type view struct {
	kind string
	sm   statemachine.StateMachine
	role int
	next *statemachine.BaseState
}

func newView(kind string, sm statemachine.StateMachine, role int) view {
	d := sm.Dupe()
	return view{
		kind: kind,
		sm:   d,
		role: role,
		next: d.NewBaseState(),
	}
}

func (v *view) Name() string {
	return fmt.Sprintf("%s(%s)", v.kind, v.sm.RoleInfo(v.role).Name)
}

func (v *view) Role() int { return v.role }

func (v *view) OnMetaGaming(deadline time.Time) {
	v.sm.Reset()
}

func (v *view) OnApplyMove(move *statemachine.JointMove) {
	v.sm.NextState(move, v.next)
	v.sm.UpdateBases(v.next)
}

// legals returns the live legal set, or nil when the role has no move.
func (v *view) legals() *statemachine.LegalState {
	ls := v.sm.LegalState(v.role)
	if ls.Count() == 0 {
		return nil
	}
	return ls
}

// LegalPlayer always plays the first live legal move.
type LegalPlayer struct {
	view
}

func NewLegalPlayer(sm statemachine.StateMachine, role int) *LegalPlayer {
	return &LegalPlayer{view: newView("legal", sm, role)}
}

func (p *LegalPlayer) OnNextMove(deadline time.Time) int {
	ls := p.legals()
	if ls == nil {
		return statemachine.NoMove
	}
	return ls.Legal(0)
}

// RandomPlayer plays a uniformly random live legal move.
type RandomPlayer struct {
	view
	rng *rand.Rand
}

func NewRandomPlayer(sm statemachine.StateMachine, role int, seed uint64) *RandomPlayer {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomPlayer{
		view: newView("random", sm, role),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (p *RandomPlayer) OnNextMove(deadline time.Time) int {
	ls := p.legals()
	if ls == nil {
		return statemachine.NoMove
	}
	return ls.Legal(p.rng.Intn(ls.Count()))
}
