package statemachine

// Behavior is what a component does when its counter crosses zero.
type Behavior uint8

const (
	None Behavior = iota
	PropagateSame
	PropagateInverted
	TriggerLegal
	TriggerTransition
)

func (b Behavior) String() string {
	switch b {
	case None:
		return "none"
	case PropagateSame:
		return "propagate-same"
	case PropagateInverted:
		return "propagate-inverted"
	case TriggerLegal:
		return "trigger-legal"
	case TriggerTransition:
		return "trigger-transition"
	default:
		return "unknown"
	}
}

// component is one counting threshold gate. It holds iff count == 0.
// count only ever moves by one per edge event and relies on uint16 wraparound.
type component struct {
	count    uint16
	behavior Behavior
	role     int
	fanout   int
}
