package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"ggp/statemachine"
)

// ControlDescription is a network description tagged with its control slot.
type ControlDescription struct {
	Description
	Index       int `json:"idx"`
	ControlBase int `json:"control_cid"`
}

// CombinedDescription is the document of a combined machine: one network per
// control base and an optional goal network.
type CombinedDescription struct {
	Goals       *Description         `json:"goal_sm,omitempty"`
	NumControls int                  `json:"num_controls"`
	Controls    []ControlDescription `json:"control_sms"`
}

func ParseCombined(data []byte) (*CombinedDescription, error) {
	var desc CombinedDescription
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDescription, err)
	}
	return &desc, nil
}

func LoadCombined(path string) (*CombinedDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read network %s: %w", path, err)
	}
	return ParseCombined(data)
}

func (d *CombinedDescription) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

// BuildCombined builds the goal network and every control network, then
// assembles them.
func BuildCombined(d *CombinedDescription, options ...statemachine.Option) (*statemachine.Combined, error) {
	if d.NumControls != len(d.Controls) {
		return nil, fmt.Errorf("%w: %d control networks described, %d declared", ErrDescription, len(d.Controls), d.NumControls)
	}

	var goals statemachine.StateMachine
	if d.Goals != nil {
		sm, err := Build(d.Goals, options...)
		if err != nil {
			return nil, fmt.Errorf("goal network: %w", err)
		}
		goals = sm
	}

	controls := make([]statemachine.Control, 0, len(d.Controls))
	for i := range d.Controls {
		cd := &d.Controls[i]
		sm, err := Build(&cd.Description, options...)
		if err != nil {
			return nil, fmt.Errorf("control network %d: %w", cd.Index, err)
		}
		controls = append(controls, statemachine.Control{
			Index:       cd.Index,
			ControlBase: cd.ControlBase,
			SM:          sm,
		})
	}

	return statemachine.NewCombined(goals, controls)
}

// IsCombined reports whether data holds a combined machine document.
func IsCombined(data []byte) bool {
	var probe struct {
		Controls json.RawMessage `json:"control_sms"`
	}
	return json.Unmarshal(data, &probe) == nil && len(probe.Controls) > 0
}
