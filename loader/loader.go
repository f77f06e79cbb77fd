package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"ggp/statemachine"
)

var ErrDescription = errors.New("loader: invalid network description")

// Create holds the fixed sizes a machine is allocated with.
type Create struct {
	RoleCount       int `json:"role_count"`
	NumBases        int `json:"num_bases"`
	NumTransitions  int `json:"num_transitions"`
	NumComponents   int `json:"num_components"`
	NumOutputs      int `json:"num_outputs"`
	TopologicalSize int `json:"topological_size"`
}

type Role struct {
	RoleIndex       int    `json:"role_index"`
	Name            string `json:"name"`
	InputStartIndex int    `json:"input_start_index"`
	LegalStartIndex int    `json:"legal_start_index"`
	GoalStartIndex  int    `json:"goal_start_index"`
	NumInputsLegals int    `json:"num_inputs_legals"`
	NumGoals        int    `json:"num_goals"`
}

type Meta struct {
	ComponentID int    `json:"component_id"`
	TypeName    string `json:"typename"`
	GDL         string `json:"gdl_str"`
	Move        string `json:"move"`
	GoalValue   int    `json:"goal_value"`
}

// Description is the compiled network document. Components are 8-tuples:
// id, required_count_false, required_count_true, output_index,
// number_outputs, initial_count, incr, topological_order.
// Outputs are pairs of output_index, component_id (-1 terminates a slice).
type Description struct {
	Create        Create  `json:"create"`
	Roles         []Role  `json:"roles"`
	Components    [][]int `json:"components"`
	Outputs       [][]int `json:"outputs"`
	Metas         []Meta  `json:"metas"`
	ControlFlows  int     `json:"control_flows"`
	TerminalIndex int     `json:"terminal_index"`
	InitialState  []int   `json:"initial_state"`
}

func Parse(data []byte) (*Description, error) {
	var desc Description
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDescription, err)
	}
	return &desc, nil
}

func Load(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read network %s: %w", path, err)
	}
	return Parse(data)
}

func (d *Description) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

// Build applies the description to the build API, finalises the machine,
// installs the initial state and resets to it.
func Build(d *Description, options ...statemachine.Option) (*statemachine.Machine, error) {
	c := d.Create
	sm, err := statemachine.New(c.RoleCount, c.NumBases, c.NumTransitions, c.NumComponents, c.NumOutputs, c.TopologicalSize, options...)
	if err != nil {
		return nil, err
	}

	if len(d.Roles) != c.RoleCount {
		return nil, fmt.Errorf("%w: %d roles described, %d declared", ErrDescription, len(d.Roles), c.RoleCount)
	}
	for _, r := range d.Roles {
		err := sm.SetRole(r.RoleIndex, r.Name, r.InputStartIndex, r.LegalStartIndex, r.GoalStartIndex, r.NumInputsLegals, r.NumGoals)
		if err != nil {
			return nil, fmt.Errorf("role %d: %w", r.RoleIndex, err)
		}
	}

	for i, t := range d.Components {
		if len(t) != 8 {
			return nil, fmt.Errorf("%w: component entry %d has %d fields, expected 8", ErrDescription, i, len(t))
		}
		if err := sm.SetComponent(t[0], t[1], t[2], t[3], t[4], t[5], t[6], t[7]); err != nil {
			return nil, fmt.Errorf("component entry %d: %w", i, err)
		}
	}

	for i, o := range d.Outputs {
		if len(o) != 2 {
			return nil, fmt.Errorf("%w: output entry %d has %d fields, expected 2", ErrDescription, i, len(o))
		}
		if err := sm.SetOutput(o[0], o[1]); err != nil {
			return nil, fmt.Errorf("output entry %d: %w", i, err)
		}
	}

	for _, m := range d.Metas {
		if err := sm.SetMetaInformation(m.ComponentID, m.TypeName, m.GDL, m.Move, m.GoalValue); err != nil {
			return nil, fmt.Errorf("meta for component %d: %w", m.ComponentID, err)
		}
	}

	if err := sm.Finalise(d.ControlFlows, d.TerminalIndex); err != nil {
		return nil, err
	}

	if len(d.InitialState) > c.NumBases {
		return nil, fmt.Errorf("%w: initial state has %d bits, network has %d bases", ErrDescription, len(d.InitialState), c.NumBases)
	}
	bs := sm.NewBaseState()
	for i, v := range d.InitialState {
		bs.Set(i, v != 0)
	}
	sm.SetInitialState(bs)
	sm.Reset()

	return sm, nil
}

// LoadMachine reads, parses and builds the network at path.
func LoadMachine(path string, options ...statemachine.Option) (*statemachine.Machine, error) {
	d, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Build(d, options...)
}
