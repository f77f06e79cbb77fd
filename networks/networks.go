// Package networks holds small hand-compiled propositional networks used as
// built-in games and as fixtures.
package networks

import (
	"fmt"
	"sort"

	"ggp/loader"
)

var builtins = map[string]func() *loader.Description{
	"switch":  Switch,
	"pennies": Pennies,
	"churn":   Churn,
}

func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ByName(name string) (*loader.Description, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in network %q (have %v)", name, Names())
	}
	return build(), nil
}

// Switch has one base wired through AND(base, true) into the terminal.
// The single role has one always-legal noop and there are no transitions.
//
//	0 base  1 input noop  2 constant  3 and  4 terminal  5 legal noop
func Switch() *loader.Description {
	return network{
		roles: []loader.Role{
			{RoleIndex: 0, Name: "player", InputStartIndex: 1, LegalStartIndex: 5, GoalStartIndex: 5, NumInputsLegals: 1},
		},
		bases: 1,
		gates: []gate{
			prop("(true on)", 0, 3),
			prop("(does player noop)", 0).withMove("noop"),
			constant(true, 3),
			and(2, 1, 4),
			prop("terminal", 0),
			constant(true).withMove("noop"),
		},
		controlFlows: 2,
		terminal:     4,
		initial:      []int{0},
	}.describe()
}

// Pennies is one-shot simultaneous matching pennies. Row scores 100 when the
// coins match, column scores 100 when they differ.
//
//	0 played  1 match  2-3 row inputs  4-5 column inputs
//	6 and(heads)  7 and(tails)  8 or(matched)  9 not(played)
//	10 and(played, match)  11 not(match)  12 and(played, not match)
//	13 terminal  14-15 row goals  16-17 column goals
//	18 next(played)  19 next(match)  20-21 row legals  22-23 column legals
func Pennies() *loader.Description {
	return network{
		roles: []loader.Role{
			{RoleIndex: 0, Name: "row", InputStartIndex: 2, LegalStartIndex: 20, GoalStartIndex: 14, NumInputsLegals: 2, NumGoals: 2},
			{RoleIndex: 1, Name: "column", InputStartIndex: 4, LegalStartIndex: 22, GoalStartIndex: 16, NumInputsLegals: 2, NumGoals: 2},
		},
		bases:       2,
		transitions: 2,
		gates: []gate{
			prop("(true played)", 0, 9, 10, 12, 13),
			prop("(true match)", 0, 10, 11),
			prop("(does row heads)", 0, 6, 18).withMove("heads"),
			prop("(does row tails)", 0, 7, 18).withMove("tails"),
			prop("(does column heads)", 0, 6).withMove("heads"),
			prop("(does column tails)", 0, 7).withMove("tails"),
			and(2, 0, 8),
			and(2, 0, 8),
			or(0, 19),
			not(0, 20, 21, 22, 23),
			and(2, 0, 14, 16),
			not(0, 12),
			and(2, 1, 15, 17),
			prop("terminal", 0),
			prop("(goal row 100)", 0).withGoal(100),
			prop("(goal row 0)", 0).withGoal(0),
			prop("(goal column 0)", 0).withGoal(0),
			prop("(goal column 100)", 0).withGoal(100),
			prop("(next played)", 0),
			prop("(next match)", 0),
			prop("(legal row heads)", 1).withMove("heads"),
			prop("(legal row tails)", 1).withMove("tails"),
			prop("(legal column heads)", 1).withMove("heads"),
			prop("(legal column tails)", 1).withMove("tails"),
		},
		controlFlows: 7,
		terminal:     13,
		initial:      []int{0, 0},
	}.describe()
}

// Churn has three bases each feeding one legal gate of a single role.
// Bases 0 and 1 start true, so legals 0 and 1 start live.
//
//	0-2 bases  3-5 inputs  6 terminal  7-9 legals
func Churn() *loader.Description {
	return network{
		roles: []loader.Role{
			{RoleIndex: 0, Name: "player", InputStartIndex: 3, LegalStartIndex: 7, GoalStartIndex: 7, NumInputsLegals: 3},
		},
		bases: 3,
		gates: []gate{
			prop("(true a)", 1, 7),
			prop("(true b)", 1, 8),
			prop("(true c)", 0, 9),
			prop("(does player a)", 0).withMove("a"),
			prop("(does player b)", 0).withMove("b"),
			prop("(does player c)", 0).withMove("c"),
			prop("terminal", 0),
			prop("(legal player a)", 1).withMove("a"),
			prop("(legal player b)", 1).withMove("b"),
			prop("(legal player c)", 0).withMove("c"),
		},
		terminal: 6,
		initial:  []int{1, 1, 0},
	}.describe()
}
