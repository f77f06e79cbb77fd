package statemachine

import "fmt"

// RoleInfo is one player's static index ranges plus its live legal set.
type RoleInfo struct {
	Name            string
	InputStart      int
	LegalStart      int // -1 when the role has no legal gates
	GoalStart       int
	NumInputsLegals int
	NumGoals        int

	legals *LegalState
}

func (r *RoleInfo) HasLegals() bool { return r.LegalStart != -1 }

func (r *RoleInfo) HasGoals() bool { return r.NumGoals > 0 }

func (r *RoleInfo) LegalState() *LegalState { return r.legals }

func (r *RoleInfo) copy() RoleInfo {
	c := *r
	if r.legals != nil {
		c.legals = r.legals.Copy()
	}
	return c
}

// MetaInfo is descriptive text attached to a component. Never read by propagation.
type MetaInfo struct {
	ComponentID int
	Type        string
	GDL         string
	Move        string
	GoalValue   int // -1 when unset
}

func newMetaInfo() MetaInfo {
	return MetaInfo{ComponentID: -1, GoalValue: -1}
}

func (mi MetaInfo) String() string {
	if mi.GDL != "" {
		return fmt.Sprintf("%s(%d - %s)", mi.Type, mi.ComponentID, mi.GDL)
	}
	return fmt.Sprintf("%s(%d)", mi.Type, mi.ComponentID)
}
