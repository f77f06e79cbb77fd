package statemachine

// NoMove marks a role with no move asserted in a JointMove.
const NoMove = -1

// UnknownGoal is returned by GoalValue when none of a role's goal gates hold.
const UnknownGoal = -1

// StateMachine is the surface players, rollouts and game adapters drive.
// Implementations are single-writer: concurrent consumers each take their own Dupe.
type StateMachine interface {
	Dupe() StateMachine

	NewBaseState() *BaseState
	CurrentState() *BaseState
	SetInitialState(bs *BaseState)
	InitialState() *BaseState

	UpdateBases(bs *BaseState)
	LegalState(role int) *LegalState

	GDL(index int) string
	LegalToMove(role, choice int) string

	NewJointMove() *JointMove
	IsTerminal() bool
	NextState(move *JointMove, bs *BaseState)
	GoalValue(role int) int

	Reset()
	RoleCount() int
	RoleInfo(role int) *RoleInfo
}
