package networks

import "ggp/loader"

// gate is one hand-compiled component. initial is the number of its inputs
// that hold in the network's initial state.
type gate struct {
	typename     string
	requiredTrue int
	initial      int
	incr         int
	outs         []int
	gdl          string
	move         string
	goal         int
}

func prop(gdl string, initial int, outs ...int) gate {
	return gate{typename: "proposition", requiredTrue: 1, initial: initial, incr: 1, outs: outs, gdl: gdl, goal: -1}
}

func and(inputs, initial int, outs ...int) gate {
	return gate{typename: "and", requiredTrue: inputs, initial: initial, incr: 1, outs: outs, goal: -1}
}

func or(initial int, outs ...int) gate {
	return gate{typename: "or", requiredTrue: 1, initial: initial, incr: 1, outs: outs, goal: -1}
}

func not(initial int, outs ...int) gate {
	return gate{typename: "not", requiredTrue: 1, initial: initial, incr: -1, outs: outs, goal: -1}
}

func constant(value bool, outs ...int) gate {
	g := gate{typename: "constant", requiredTrue: 1, incr: 1, outs: outs, goal: -1}
	if value {
		g.initial = 1
	}
	return g
}

func (g gate) withMove(move string) gate {
	g.move = move
	return g
}

func (g gate) withGoal(value int) gate {
	g.goal = value
	return g
}

type network struct {
	roles        []loader.Role
	bases        int
	transitions  int
	gates        []gate
	controlFlows int
	terminal     int
	initial      []int
}

// describe lays the fan-out lists out in one table. Slot 0 is a shared
// terminator for gates without outputs.
func (n network) describe() *loader.Description {
	d := &loader.Description{
		Roles:         n.roles,
		ControlFlows:  n.controlFlows,
		TerminalIndex: n.terminal,
		InitialState:  n.initial,
	}

	d.Outputs = append(d.Outputs, []int{0, -1})
	next := 1
	for id, g := range n.gates {
		offset := 0
		if len(g.outs) > 0 {
			offset = next
			for _, out := range g.outs {
				d.Outputs = append(d.Outputs, []int{next, out})
				next++
			}
			d.Outputs = append(d.Outputs, []int{next, -1})
			next++
		}
		d.Components = append(d.Components, []int{
			id, g.requiredTrue - 1, g.requiredTrue, offset, len(g.outs), g.initial, g.incr, id,
		})
		d.Metas = append(d.Metas, loader.Meta{
			ComponentID: id,
			TypeName:    g.typename,
			GDL:         g.gdl,
			Move:        g.move,
			GoalValue:   g.goal,
		})
	}

	d.Create = loader.Create{
		RoleCount:       len(n.roles),
		NumBases:        n.bases,
		NumTransitions:  n.transitions,
		NumComponents:   len(n.gates),
		NumOutputs:      next,
		TopologicalSize: len(n.gates),
	}
	return d
}
