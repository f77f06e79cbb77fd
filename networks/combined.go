package networks

import (
	"fmt"
	"sort"

	"ggp/loader"
)

var combinedBuiltins = map[string]func() *loader.CombinedDescription{
	"phases": Phases,
}

func CombinedNames() []string {
	names := make([]string, 0, len(combinedBuiltins))
	for name := range combinedBuiltins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CombinedByName returns a built-in combined machine and whether it exists.
func CombinedByName(name string) (*loader.CombinedDescription, bool) {
	build, ok := combinedBuiltins[name]
	if !ok {
		return nil, false
	}
	return build(), true
}

// phase is one control network of Phases. Both share the base layout:
//
//	0 (control opening)  1 (control closing)  2 done  3 input  4 terminal
//	5 goal 100  6-8 next bases  9 legal
func phase(move string, nextDone bool) loader.ControlDescription {
	next := prop("(next done)", 0)
	if nextDone {
		next = constant(true)
	}
	return loader.ControlDescription{
		Description: *network{
			roles: []loader.Role{
				{RoleIndex: 0, Name: "player", InputStartIndex: 3, LegalStartIndex: 9, GoalStartIndex: 5, NumInputsLegals: 1, NumGoals: 1},
			},
			bases:       3,
			transitions: 3,
			gates: []gate{
				prop("(true (control opening))", 1),
				prop("(true (control closing))", 0),
				prop("(true done)", 0, 4, 5),
				prop(fmt.Sprintf("(does player %s)", move), 0).withMove(move),
				prop("terminal", 0),
				prop("(goal player 100)", 0).withGoal(100),
				prop("(next (control opening))", 0),
				constant(true),
				next,
				constant(true).withMove(move),
			},
			terminal: 4,
			initial:  []int{1, 0, 0},
		}.describe(),
	}
}

// Phases is a two-step single player game split by control base. The
// opening network only knows "open", which hands over to the closing
// network, whose "close" ends the game with 100.
func Phases() *loader.CombinedDescription {
	opening := phase("open", false)
	opening.Index, opening.ControlBase = 0, 0

	closing := phase("close", true)
	closing.Index, closing.ControlBase = 1, 1

	goals := closing.Description
	return &loader.CombinedDescription{
		Goals:       &goals,
		NumControls: 2,
		Controls:    []loader.ControlDescription{opening, closing},
	}
}
