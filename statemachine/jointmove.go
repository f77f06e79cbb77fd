package statemachine

import (
	"strconv"
	"strings"
)

// JointMove holds one move index per role, NoMove where unset.
type JointMove struct {
	moves []int
}

func NewJointMove(roleCount int) *JointMove {
	jm := &JointMove{moves: make([]int, roleCount)}
	jm.Clear()
	return jm
}

func (jm *JointMove) Len() int { return len(jm.moves) }

func (jm *JointMove) Get(role int) int { return jm.moves[role] }

func (jm *JointMove) Set(role, move int) { jm.moves[role] = move }

// Clear resets every role to NoMove.
func (jm *JointMove) Clear() {
	for i := range jm.moves {
		jm.moves[i] = NoMove
	}
}

func (jm *JointMove) Assign(other *JointMove) {
	copy(jm.moves, other.moves)
}

func (jm *JointMove) Copy() *JointMove {
	c := &JointMove{moves: make([]int, len(jm.moves))}
	copy(c.moves, jm.moves)
	return c
}

func (jm *JointMove) Equals(other *JointMove) bool {
	if len(jm.moves) != len(other.moves) {
		return false
	}
	for i, m := range jm.moves {
		if other.moves[i] != m {
			return false
		}
	}
	return true
}

func (jm *JointMove) String() string {
	parts := make([]string, len(jm.moves))
	for i, m := range jm.moves {
		parts[i] = strconv.Itoa(m)
	}
	return "(" + strings.Join(parts, " ") + ")"
}
