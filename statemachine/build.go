package statemachine

import "fmt"

func (m *Machine) fail(err error) error {
	if m.err == nil {
		m.err = err
	}
	return err
}

func (m *Machine) buildable() error {
	if m.err != nil {
		return fmt.Errorf("%w: earlier build step failed: %v", ErrConfig, m.err)
	}
	if m.initialised {
		return fmt.Errorf("%w: machine already finalised", ErrConfig)
	}
	return nil
}

// SetRole records one role's index ranges. legalStart is -1 if the role has no legals.
func (m *Machine) SetRole(role int, name string, inputStart, legalStart, goalStart, numInputsLegals, numGoals int) error {
	if err := m.buildable(); err != nil {
		return err
	}
	if role < 0 || role >= m.roleCount {
		return m.fail(fmt.Errorf("%w: role %d not in [0, %d)", ErrRange, role, m.roleCount))
	}
	if numInputsLegals < 0 || numGoals < 0 {
		return m.fail(fmt.Errorf("%w: role %d has negative counts (legals=%d goals=%d)", ErrConfig, role, numInputsLegals, numGoals))
	}
	if m.roleSet[role] {
		return m.fail(fmt.Errorf("%w: role %d set twice", ErrConfig, role))
	}
	m.roles[role] = RoleInfo{
		Name:            name,
		InputStart:      inputStart,
		LegalStart:      legalStart,
		GoalStart:       goalStart,
		NumInputsLegals: numInputsLegals,
		NumGoals:        numGoals,
		legals:          NewLegalState(numInputsLegals),
	}
	m.roleSet[role] = true
	return nil
}

// SetComponent initialises a gate's counter to initialCount - requiredTrue,
// so that it holds exactly when the counter reaches zero.
// requiredFalse and topologicalOrder are accepted for wire compatibility only.
func (m *Machine) SetComponent(id, requiredFalse, requiredTrue, outputIndex, numberOutputs, initialCount, incr, topologicalOrder int) error {
	if err := m.buildable(); err != nil {
		return err
	}
	if id < 0 || id >= m.numComponents {
		return m.fail(fmt.Errorf("%w: component %d not in [0, %d)", ErrRange, id, m.numComponents))
	}
	if numberOutputs < 0 || outputIndex < 0 || outputIndex+numberOutputs > m.numOutputs {
		return m.fail(fmt.Errorf("%w: component %d outputs [%d, %d) exceed table of %d",
			ErrRange, id, outputIndex, outputIndex+numberOutputs, m.numOutputs))
	}

	c := component{
		count:  uint16(initialCount) - uint16(requiredTrue),
		fanout: outputIndex,
	}
	switch {
	case numberOutputs == 0:
		c.behavior = None
	case incr > 0:
		c.behavior = PropagateSame
	default:
		c.behavior = PropagateInverted
	}
	m.components[id] = c
	m.componentSet[id] = true
	return nil
}

// SetOutput fills one fan-out slot. componentID -1 writes the slice terminator.
func (m *Machine) SetOutput(outputIndex, componentID int) error {
	if err := m.buildable(); err != nil {
		return err
	}
	if outputIndex < 0 || outputIndex >= m.numOutputs {
		return m.fail(fmt.Errorf("%w: output %d not in [0, %d)", ErrRange, outputIndex, m.numOutputs))
	}
	if componentID < -1 || componentID >= m.numComponents {
		return m.fail(fmt.Errorf("%w: output %d references component %d", ErrRange, outputIndex, componentID))
	}
	m.outputs[outputIndex] = componentID
	return nil
}

func (m *Machine) SetMetaInformation(id int, componentType, gdl, move string, goalValue int) error {
	if err := m.buildable(); err != nil {
		return err
	}
	if id < 0 || id >= m.numComponents {
		return m.fail(fmt.Errorf("%w: meta for component %d not in [0, %d)", ErrRange, id, m.numComponents))
	}
	m.metas[id] = MetaInfo{
		ComponentID: id,
		Type:        componentType,
		GDL:         gdl,
		Move:        move,
		GoalValue:   goalValue,
	}
	return nil
}

// Finalise validates the component layout, seeds the cached states and legal
// sets from the gate counters, and binds the trigger behaviors. It must be
// the last build call. On error the machine is unusable.
func (m *Machine) Finalise(controlFlows, terminalIndex int) error {
	if err := m.buildable(); err != nil {
		return err
	}
	if err := m.checkLayout(controlFlows, terminalIndex); err != nil {
		return m.fail(err)
	}

	for i := 0; i < m.numBases; i++ {
		m.current.Set(i, m.components[i].count == 0)
	}
	if m.numTransitions > 0 {
		for i := 0; i < m.numBases; i++ {
			m.transition.Set(i, m.components[m.transitionsIndex+i].count == 0)
		}
	}

	for r := range m.roles {
		info := &m.roles[r]
		if !info.HasLegals() {
			continue
		}
		for j := 0; j < info.NumInputsLegals; j++ {
			if m.components[info.LegalStart+j].count == 0 {
				info.legals.Insert(j)
			}
		}
	}

	if err := m.bindTriggers(); err != nil {
		return m.fail(err)
	}

	m.lastMove.Clear()
	m.roleSet = nil
	m.componentSet = nil
	m.initialised = true

	m.logger.Info().
		Int("control_flows", controlFlows).
		Int("terminal_index", terminalIndex).
		Int("components", m.numComponents).
		Msg("state machine finalised")
	return nil
}

func (m *Machine) checkLayout(controlFlows, terminalIndex int) error {
	for r, ok := range m.roleSet {
		if !ok {
			return fmt.Errorf("%w: role %d never set", ErrConfig, r)
		}
	}
	for id, ok := range m.componentSet {
		if !ok {
			return fmt.Errorf("%w: component %d never set", ErrConfig, id)
		}
	}
	if controlFlows < 0 {
		return fmt.Errorf("%w: negative control flow count %d", ErrLayout, controlFlows)
	}

	total := m.numBases
	for r := range m.roles {
		info := &m.roles[r]
		if total != info.InputStart {
			return fmt.Errorf("%w: role %d inputs start at %d, expected %d", ErrLayout, r, info.InputStart, total)
		}
		total += info.NumInputsLegals
	}

	total += controlFlows
	if total != terminalIndex {
		return fmt.Errorf("%w: terminal at %d, expected %d", ErrLayout, terminalIndex, total)
	}
	if terminalIndex >= m.numComponents {
		return fmt.Errorf("%w: terminal %d not in [0, %d)", ErrRange, terminalIndex, m.numComponents)
	}
	m.terminalIndex = terminalIndex
	total++

	for r := range m.roles {
		info := &m.roles[r]
		if !info.HasGoals() {
			continue
		}
		if total != info.GoalStart {
			return fmt.Errorf("%w: role %d goals start at %d, expected %d", ErrLayout, r, info.GoalStart, total)
		}
		total += info.NumGoals
	}

	m.transitionsIndex = total
	total += m.numTransitions

	for r := range m.roles {
		info := &m.roles[r]
		if !info.HasLegals() {
			continue
		}
		if total != info.LegalStart {
			return fmt.Errorf("%w: role %d legals start at %d, expected %d", ErrLayout, r, info.LegalStart, total)
		}
		total += info.NumInputsLegals
	}

	if total != m.numComponents {
		return fmt.Errorf("%w: regions cover %d components, declared %d", ErrLayout, total, m.numComponents)
	}
	return nil
}

func (m *Machine) bindTriggers() error {
	for i := 0; i < m.numTransitions; i++ {
		c := &m.components[m.transitionsIndex+i]
		if c.behavior != None {
			return fmt.Errorf("%w: transition component %d already %s", ErrBehavior, m.transitionsIndex+i, c.behavior)
		}
		c.behavior = TriggerTransition
	}

	for r := range m.roles {
		info := &m.roles[r]
		if !info.HasLegals() {
			continue
		}
		for j := 0; j < info.NumInputsLegals; j++ {
			id := info.LegalStart + j
			c := &m.components[id]
			if c.behavior != None {
				return fmt.Errorf("%w: legal component %d of role %d already %s", ErrBehavior, id, r, c.behavior)
			}
			c.behavior = TriggerLegal
			c.role = r
		}
	}
	return nil
}
