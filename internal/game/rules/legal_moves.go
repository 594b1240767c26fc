package rules

import "github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"

// OpenSide returns the row the active player may start a move from: their own
// row, or the opponent's row when their own is completely empty.
func OpenSide(s core.State) int {
	if s.RowEmpty(s.Player) {
		return core.Other(s.Player)
	}
	return s.Player
}

// LegalActions returns every non-empty hole on the open side, ascending by
// (side, hole). The result is empty only when both rows are empty.
func LegalActions(s core.State) []core.Action {
	side := OpenSide(s)
	actions := make([]core.Action, 0, len(s.Rows[side]))
	for hole, beads := range s.Rows[side] {
		if beads > 0 {
			actions = append(actions, core.Action{Side: side, Hole: hole})
		}
	}
	return actions
}

// IsLegal reports whether a appears in LegalActions(s).
func IsLegal(s core.State, a core.Action) bool {
	if !a.InBounds(s.Holes()) {
		return false
	}
	return a.Side == OpenSide(s) && s.Rows[a.Side][a.Hole] > 0
}

// LegalMoveCalculator builds fixed-size action masks for learners that work
// on a flat action space.
type LegalMoveCalculator struct{}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator() *LegalMoveCalculator {
	return &LegalMoveCalculator{}
}

// GetLegalActionMask returns a flattened boolean mask of length 2*holes.
// - Index = side*holes + hole
// - true = legal move, false = illegal move
func (lmc *LegalMoveCalculator) GetLegalActionMask(s core.State) []bool {
	holes := s.Holes()
	mask := make([]bool, core.NumPlayers*holes)
	for _, a := range LegalActions(s) {
		mask[ActionToIndex(a, holes)] = true
	}
	return mask
}

// ActionToIndex flattens an action into the mask index space.
func ActionToIndex(a core.Action, holes int) int {
	return a.Side*holes + a.Hole
}

// IndexToAction is the inverse of ActionToIndex.
func IndexToAction(idx, holes int) core.Action {
	return core.Action{Side: idx / holes, Hole: idx % holes}
}
