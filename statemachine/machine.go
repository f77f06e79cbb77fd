package statemachine

import (
	"fmt"

	"github.com/rs/zerolog"
)

type Option func(m *Machine)

// WithLogger sets the logger used for build and duplication messages.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// Machine evaluates a compiled propositional network incrementally.
// Components are laid out as: bases, inputs (by role), control flow,
// terminal, goals (by role), transitions, legals (by role).
type Machine struct {
	roleCount       int
	numBases        int
	numTransitions  int
	numComponents   int
	numOutputs      int
	topologicalSize int

	initialised  bool
	err          error
	roleSet      []bool
	componentSet []bool

	current    *BaseState
	initial    *BaseState
	transition *BaseState
	lastMove   *JointMove

	terminalIndex    int
	transitionsIndex int

	roles      []RoleInfo
	metas      []MetaInfo
	components []component
	// outputs holds every fan-out slice, each terminated by -1.
	// The extra final slot is a permanent sentinel.
	outputs []int

	stack        []frame
	propagations uint64

	logger zerolog.Logger
}

// New allocates an unbuilt machine. numTransitions must be 0 or numBases.
func New(roleCount, numBases, numTransitions, numComponents, numOutputs, topologicalSize int, options ...Option) (*Machine, error) {
	if numTransitions != 0 && numTransitions != numBases {
		return nil, fmt.Errorf("%w: num_transitions %d must be 0 or num_bases %d", ErrConfig, numTransitions, numBases)
	}
	if roleCount <= 0 {
		return nil, fmt.Errorf("%w: role count %d", ErrConfig, roleCount)
	}
	if numBases < 0 || numComponents < 0 || numOutputs < 0 {
		return nil, fmt.Errorf("%w: negative size (bases=%d components=%d outputs=%d)", ErrConfig, numBases, numComponents, numOutputs)
	}
	if numBases+numTransitions > numComponents {
		return nil, fmt.Errorf("%w: %d bases and %d transitions exceed %d components", ErrConfig, numBases, numTransitions, numComponents)
	}

	m := &Machine{
		roleCount:       roleCount,
		numBases:        numBases,
		numTransitions:  numTransitions,
		numComponents:   numComponents,
		numOutputs:      numOutputs,
		topologicalSize: topologicalSize,
		logger:          zerolog.Nop(),
	}
	for _, option := range options {
		option(m)
	}
	m.allocate()
	m.roleSet = make([]bool, roleCount)
	m.componentSet = make([]bool, numComponents)
	for i := range m.outputs {
		m.outputs[i] = -1
	}
	for i := range m.metas {
		m.metas[i] = newMetaInfo()
	}

	m.logger.Debug().
		Int("roles", roleCount).
		Int("bases", numBases).
		Int("components", numComponents).
		Int("outputs", numOutputs).
		Msg("allocated state machine")
	return m, nil
}

func (m *Machine) allocate() {
	m.components = make([]component, m.numComponents)
	m.outputs = make([]int, m.numOutputs+1)
	m.metas = make([]MetaInfo, m.numComponents)
	m.roles = make([]RoleInfo, m.roleCount)
	m.current = NewBaseState(m.numBases)
	m.initial = NewBaseState(m.numBases)
	m.transition = NewBaseState(m.numBases)
	m.lastMove = NewJointMove(m.roleCount)
}

func (m *Machine) mustBeInitialised() {
	if !m.initialised {
		if m.err != nil {
			panic(fmt.Sprintf("%v: build failed: %v", ErrNotInitialised, m.err))
		}
		panic(ErrNotInitialised.Error())
	}
}

func (m *Machine) mustBeRole(role int) *RoleInfo {
	if role < 0 || role >= m.roleCount {
		panic(fmt.Sprintf("statemachine: role %d out of range [0, %d)", role, m.roleCount))
	}
	return &m.roles[role]
}

// Initialised reports whether Finalise completed.
func (m *Machine) Initialised() bool { return m.initialised }

func (m *Machine) NumBases() int { return m.numBases }

func (m *Machine) NumComponents() int { return m.numComponents }

// Propagations returns the number of gate visits made by propagation so far.
func (m *Machine) Propagations() uint64 { return m.propagations }

// Dupe returns a fully independent copy of an initialised machine.
func (m *Machine) Dupe() StateMachine {
	return m.Clone()
}

// Clone is Dupe with the concrete type.
func (m *Machine) Clone() *Machine {
	m.mustBeInitialised()

	d := &Machine{
		roleCount:        m.roleCount,
		numBases:         m.numBases,
		numTransitions:   m.numTransitions,
		numComponents:    m.numComponents,
		numOutputs:       m.numOutputs,
		topologicalSize:  m.topologicalSize,
		terminalIndex:    m.terminalIndex,
		transitionsIndex: m.transitionsIndex,
		logger:           m.logger,
	}
	d.allocate()

	d.current.Assign(m.current)
	d.initial.Assign(m.initial)
	d.transition.Assign(m.transition)
	d.lastMove.Assign(m.lastMove)

	for i := range m.roles {
		d.roles[i] = m.roles[i].copy()
	}
	copy(d.metas, m.metas)
	copy(d.components, m.components)
	copy(d.outputs, m.outputs)

	d.initialised = true
	d.logger.Debug().Msgf("duped state machine with %d components", d.numComponents)
	return d
}

func (m *Machine) NewBaseState() *BaseState {
	return NewBaseState(m.numBases)
}

// CurrentState returns the cached position. Callers must not mutate it.
func (m *Machine) CurrentState() *BaseState {
	m.mustBeInitialised()
	return m.current
}

func (m *Machine) SetInitialState(bs *BaseState) {
	m.mustBeInitialised()
	m.initial.Assign(bs)
}

func (m *Machine) InitialState() *BaseState {
	m.mustBeInitialised()
	return m.initial
}

func (m *Machine) NewJointMove() *JointMove {
	return NewJointMove(m.roleCount)
}

// LastMove returns the move inputs currently asserted in the network.
func (m *Machine) LastMove() *JointMove {
	return m.lastMove.Copy()
}

func (m *Machine) RoleCount() int { return m.roleCount }

func (m *Machine) RoleInfo(role int) *RoleInfo {
	m.mustBeInitialised()
	return m.mustBeRole(role)
}

// RoleIndex returns the index of the named role, or -1.
func (m *Machine) RoleIndex(name string) int {
	m.mustBeInitialised()
	for i := range m.roles {
		if m.roles[i].Name == name {
			return i
		}
	}
	return -1
}

func (m *Machine) Meta(index int) MetaInfo {
	m.mustBeInitialised()
	if index < 0 || index >= m.numComponents {
		panic(fmt.Sprintf("statemachine: component %d out of range [0, %d)", index, m.numComponents))
	}
	return m.metas[index]
}

func (m *Machine) GDL(index int) string {
	return m.Meta(index).GDL
}

// LegalToMove returns the move text of a role's choice-th legal gate.
func (m *Machine) LegalToMove(role, choice int) string {
	m.mustBeInitialised()
	info := m.mustBeRole(role)
	if !info.HasLegals() || choice < 0 || choice >= info.NumInputsLegals {
		panic(fmt.Sprintf("statemachine: legal %d out of range for role %q", choice, info.Name))
	}
	return m.metas[info.LegalStart+choice].Move
}

// LegalState returns the live legal set of a role. It reflects every propagation so far.
func (m *Machine) LegalState(role int) *LegalState {
	m.mustBeInitialised()
	return m.mustBeRole(role).legals
}

func (m *Machine) IsTerminal() bool {
	m.mustBeInitialised()
	return m.components[m.terminalIndex].count == 0
}

// GoalValue returns the goal value of the first holding goal gate of role,
// or UnknownGoal. Only meaningful once IsTerminal holds.
func (m *Machine) GoalValue(role int) int {
	m.mustBeInitialised()
	info := m.mustBeRole(role)
	for i := 0; i < info.NumGoals; i++ {
		if m.components[info.GoalStart+i].count == 0 {
			return m.metas[info.GoalStart+i].GoalValue
		}
	}
	return UnknownGoal
}

// Reset drives the network to the initial state and retracts any asserted move inputs.
func (m *Machine) Reset() {
	m.mustBeInitialised()
	m.UpdateBases(m.initial)
	for role := range m.roles {
		last := m.lastMove.Get(role)
		if last != NoMove {
			input := m.roles[role].InputStart + last
			m.propagate(m.components[input].fanout, false)
		}
		m.lastMove.Set(role, NoMove)
	}
}
