package core

// State is the (rows, active player) pair the agent and the move rules see.
// Values handed out by Board are deep copies; treat them as read-only.
type State struct {
	Rows   [NumPlayers][]int
	Player int
}

// Holes returns the number of holes per row.
func (s State) Holes() int { return len(s.Rows[0]) }

// RowEmpty reports whether every hole on player p's row is zero.
func (s State) RowEmpty(p int) bool {
	for _, beads := range s.Rows[p] {
		if beads != 0 {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	return State{Rows: copyRows(s.Rows), Player: s.Player}
}

// Snapshot is a read-only view of a board for rendering and reporting.
type Snapshot struct {
	Rows   [NumPlayers][]int
	Stores [NumPlayers]int
	Player int
	Winner int
}
