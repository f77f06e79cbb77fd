package statemachine

// LegalState is a dense set of move indices with O(1) insert and remove.
// indices[0:count] holds the live moves in no particular order;
// positions[v] is the slot of v within indices while v is live.
type LegalState struct {
	count     int
	indices   []int
	positions []int
}

func NewLegalState(capacity int) *LegalState {
	return &LegalState{
		indices:   make([]int, capacity),
		positions: make([]int, capacity),
	}
}

func (ls *LegalState) Count() int { return ls.count }

func (ls *LegalState) Capacity() int { return len(ls.indices) }

// Legal returns the at-th live move, 0 <= at < Count().
func (ls *LegalState) Legal(at int) int {
	return ls.indices[at]
}

// Contains cross-checks positions against indices, so stale slots are harmless.
func (ls *LegalState) Contains(value int) bool {
	if value < 0 || value >= len(ls.positions) {
		return false
	}
	pos := ls.positions[value]
	return pos < ls.count && ls.indices[pos] == value
}

func (ls *LegalState) Insert(value int) {
	ls.positions[value] = ls.count
	ls.indices[ls.count] = value
	ls.count++
}

// Remove swaps the tail element into the hole left by value.
func (ls *LegalState) Remove(value int) {
	tail := ls.count - 1
	pos := ls.positions[value]
	if pos != tail {
		moved := ls.indices[tail]
		ls.indices[pos] = moved
		ls.positions[moved] = pos
	}
	ls.count--
}

// Legals returns a copy of the live moves.
func (ls *LegalState) Legals() []int {
	out := make([]int, ls.count)
	copy(out, ls.indices[:ls.count])
	return out
}

func (ls *LegalState) Copy() *LegalState {
	c := &LegalState{
		count:     ls.count,
		indices:   make([]int, len(ls.indices)),
		positions: make([]int, len(ls.positions)),
	}
	copy(c.indices, ls.indices)
	copy(c.positions, ls.positions)
	return c
}
