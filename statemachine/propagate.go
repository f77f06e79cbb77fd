package statemachine

import (
	"fmt"
	"math/bits"
)

// frame walks one fan-out slice with a fixed polarity.
type frame struct {
	at    int
	value bool
}

// propagate forwards an edge event into the fan-out slice starting at offset.
// A gate acts only when its counter crosses zero: after the increment for a
// true event, before the decrement for a false one. Slices are walked
// depth-first on an explicit stack, in the same order a recursive walk would take.
func (m *Machine) propagate(offset int, value bool) {
	stack := append(m.stack[:0], frame{at: offset, value: value})
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		id := m.outputs[top.at]
		if id < 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		top.at++
		value := top.value

		c := &m.components[id]
		m.propagations++
		if value {
			c.count++
			if c.count != 0 {
				continue
			}
		} else {
			crossed := c.count == 0
			c.count--
			if !crossed {
				continue
			}
		}

		switch c.behavior {
		case PropagateSame:
			stack = append(stack, frame{at: c.fanout, value: value})
		case PropagateInverted:
			stack = append(stack, frame{at: c.fanout, value: !value})
		case TriggerLegal:
			role := &m.roles[c.role]
			if value {
				role.legals.Insert(id - role.LegalStart)
			} else {
				role.legals.Remove(id - role.LegalStart)
			}
		case TriggerTransition:
			m.transition.Set(id-m.transitionsIndex, value)
		}
	}
	m.stack = stack[:0]
}

// UpdateBases synchronises the network with bs, propagating an event from
// every base whose bit differs from the cached current state.
func (m *Machine) UpdateBases(bs *BaseState) {
	m.mustBeInitialised()
	if bs.size != m.numBases {
		panic(fmt.Sprintf("statemachine: base state of size %d, expected %d", bs.size, m.numBases))
	}

	for block, b := range bs.data {
		diff := b ^ m.current.data[block]
		for diff != 0 {
			bit := bits.TrailingZeros8(diff)
			diff &= diff - 1
			id := block*8 + bit
			if id >= m.numBases {
				break
			}
			m.propagate(m.components[id].fanout, b&(1<<bit) != 0)
		}
	}
	m.current.Assign(bs)
}

// NextState asserts the joint move's inputs and copies the resulting
// transition state into bs. The current state is left untouched.
// Move inputs stay asserted until superseded by a different move or
// retracted by Reset, so independent episodes must start with Reset.
func (m *Machine) NextState(move *JointMove, bs *BaseState) {
	m.mustBeInitialised()
	for role := range m.roles {
		last := m.lastMove.Get(role)
		cur := move.Get(role)
		if last == cur {
			continue
		}

		info := &m.roles[role]
		if cur < 0 || cur >= info.NumInputsLegals {
			panic(fmt.Sprintf("statemachine: move %d out of range for role %q", cur, info.Name))
		}
		m.lastMove.Set(role, cur)

		m.propagate(m.components[info.InputStart+cur].fanout, true)
		if last != NoMove {
			m.propagate(m.components[info.InputStart+last].fanout, false)
		}
	}
	bs.Assign(m.transition)
}
