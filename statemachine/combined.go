package statemachine

import (
	"fmt"
)

// Control is one network of a Combined machine. It is valid while base
// ControlBase holds.
type Control struct {
	Index       int
	ControlBase int
	SM          StateMachine
}

// Combined splits a game into networks specialised per control base and
// routes every call to the network whose control base holds in the
// current position. An optional goal network answers goal queries.
type Combined struct {
	goals    StateMachine
	controls []Control
	current  StateMachine
}

// NewCombined orders controls by Index and resets to the first control's
// initial state. goals may be nil.
func NewCombined(goals StateMachine, controls []Control) (*Combined, error) {
	if len(controls) == 0 {
		return nil, fmt.Errorf("%w: combined machine without controls", ErrConfig)
	}

	ordered := make([]Control, len(controls))
	seen := make([]bool, len(controls))
	for _, control := range controls {
		if control.Index < 0 || control.Index >= len(controls) {
			return nil, fmt.Errorf("%w: control index %d not in [0, %d)", ErrRange, control.Index, len(controls))
		}
		if seen[control.Index] {
			return nil, fmt.Errorf("%w: control index %d set twice", ErrConfig, control.Index)
		}
		if control.SM == nil {
			return nil, fmt.Errorf("%w: control %d has no machine", ErrConfig, control.Index)
		}
		size := control.SM.NewBaseState().Len()
		if control.ControlBase < 0 || control.ControlBase >= size {
			return nil, fmt.Errorf("%w: control base %d not in [0, %d)", ErrRange, control.ControlBase, size)
		}
		seen[control.Index] = true
		ordered[control.Index] = control
	}

	c := &Combined{goals: goals, controls: ordered}
	if c.lookup(ordered[0].SM.InitialState()) == nil {
		return nil, fmt.Errorf("%w: no control base holds in the initial state", ErrConfig)
	}
	c.Reset()
	return c, nil
}

// lookup returns the last control whose base holds in bs, or nil.
func (c *Combined) lookup(bs *BaseState) StateMachine {
	var found StateMachine
	for i := range c.controls {
		if bs.Get(c.controls[i].ControlBase) {
			found = c.controls[i].SM
		}
	}
	return found
}

func (c *Combined) controlFor(bs *BaseState) StateMachine {
	sm := c.lookup(bs)
	if sm == nil {
		panic(fmt.Sprintf("statemachine: no control base holds in state %s", bs))
	}
	return sm
}

// Dupe copies every control network and the goal network. The copy
// routes to the same control as c.
func (c *Combined) Dupe() StateMachine {
	d := &Combined{controls: make([]Control, len(c.controls))}
	if c.goals != nil {
		d.goals = c.goals.Dupe()
	}
	for i, control := range c.controls {
		d.controls[i] = Control{
			Index:       control.Index,
			ControlBase: control.ControlBase,
			SM:          control.SM.Dupe(),
		}
		if control.SM == c.current {
			d.current = d.controls[i].SM
		}
	}
	return d
}

// Current returns the control network calls are routed to.
func (c *Combined) Current() StateMachine { return c.current }

// SetInitialState is not supported: each control network keeps its own.
func (c *Combined) SetInitialState(bs *BaseState) {
	panic("statemachine: SetInitialState on a combined machine")
}

// UpdateBases switches to the control valid in bs before synchronising it.
func (c *Combined) UpdateBases(bs *BaseState) {
	c.current = c.controlFor(bs)
	c.current.UpdateBases(bs)
}

// GoalValue consults the goal network, synced to the current position, when there is one.
func (c *Combined) GoalValue(role int) int {
	if c.goals == nil {
		return c.current.GoalValue(role)
	}
	c.goals.UpdateBases(c.current.CurrentState())
	return c.goals.GoalValue(role)
}

// Reset resets every control network and routes to the one valid in the initial state.
func (c *Combined) Reset() {
	for i := range c.controls {
		c.controls[i].SM.Reset()
	}
	c.current = c.controlFor(c.controls[0].SM.CurrentState())
}

func (c *Combined) NewBaseState() *BaseState                 { return c.current.NewBaseState() }
func (c *Combined) CurrentState() *BaseState                 { return c.current.CurrentState() }
func (c *Combined) InitialState() *BaseState                 { return c.controls[0].SM.InitialState() }
func (c *Combined) LegalState(role int) *LegalState          { return c.current.LegalState(role) }
func (c *Combined) GDL(index int) string                     { return c.current.GDL(index) }
func (c *Combined) LegalToMove(role, choice int) string      { return c.current.LegalToMove(role, choice) }
func (c *Combined) NewJointMove() *JointMove                 { return c.current.NewJointMove() }
func (c *Combined) IsTerminal() bool                         { return c.current.IsTerminal() }
func (c *Combined) NextState(move *JointMove, bs *BaseState) { c.current.NextState(move, bs) }
func (c *Combined) RoleCount() int                           { return c.current.RoleCount() }
func (c *Combined) RoleInfo(role int) *RoleInfo              { return c.current.RoleInfo(role) }
