package statemachine

// Goalless plays on a network stripped of goal logic and consults a separate
// goal network only when goal values are requested.
type Goalless struct {
	play  StateMachine
	goals StateMachine
}

func NewGoalless(play, goals StateMachine) *Goalless {
	return &Goalless{play: play, goals: goals}
}

func (g *Goalless) Dupe() StateMachine {
	return &Goalless{play: g.play.Dupe(), goals: g.goals.Dupe()}
}

func (g *Goalless) NewBaseState() *BaseState                 { return g.play.NewBaseState() }
func (g *Goalless) CurrentState() *BaseState                 { return g.play.CurrentState() }
func (g *Goalless) SetInitialState(bs *BaseState)            { g.play.SetInitialState(bs) }
func (g *Goalless) InitialState() *BaseState                 { return g.play.InitialState() }
func (g *Goalless) UpdateBases(bs *BaseState)                { g.play.UpdateBases(bs) }
func (g *Goalless) LegalState(role int) *LegalState          { return g.play.LegalState(role) }
func (g *Goalless) GDL(index int) string                     { return g.play.GDL(index) }
func (g *Goalless) LegalToMove(role, choice int) string      { return g.play.LegalToMove(role, choice) }
func (g *Goalless) NewJointMove() *JointMove                 { return g.play.NewJointMove() }
func (g *Goalless) IsTerminal() bool                         { return g.play.IsTerminal() }
func (g *Goalless) NextState(move *JointMove, bs *BaseState) { g.play.NextState(move, bs) }
func (g *Goalless) Reset()                                   { g.play.Reset() }
func (g *Goalless) RoleCount() int                           { return g.play.RoleCount() }
func (g *Goalless) RoleInfo(role int) *RoleInfo              { return g.play.RoleInfo(role) }

// GoalValue syncs the goal network to the play network's position first.
func (g *Goalless) GoalValue(role int) int {
	g.goals.UpdateBases(g.play.CurrentState())
	return g.goals.GoalValue(role)
}
