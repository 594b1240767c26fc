package core

import "fmt"

// Action starts a sowing from hole Hole on player Side's row.
type Action struct {
	Side int
	Hole int
}

func (a Action) String() string {
	return fmt.Sprintf("(%d,%d)", a.Side, a.Hole)
}

// Less orders actions ascending by (side, hole).
func (a Action) Less(other Action) bool {
	if a.Side != other.Side {
		return a.Side < other.Side
	}
	return a.Hole < other.Hole
}

// InBounds reports whether the action addresses a hole on a board with the given size.
func (a Action) InBounds(holes int) bool {
	return ValidPlayer(a.Side) && a.Hole >= 0 && a.Hole < holes
}

// Position is a sowing cursor. Hole == holes addresses Side's store.
type Position struct {
	Side int
	Hole int
}

// IsStore reports whether the cursor sits on a store.
func (p Position) IsStore(holes int) bool { return p.Hole == holes }

// Action converts a hole position back into the action that would start there.
func (p Position) Action() Action { return Action{Side: p.Side, Hole: p.Hole} }

// next advances the cursor one step for a move made by mover: along the
// mover's row into the mover's store, then along the opponent's row, whose
// store is skipped, and back to the start of the mover's row.
func next(p Position, mover, holes int) Position {
	switch {
	case p.Side == mover && p.Hole == holes:
		return Position{Side: Other(mover), Hole: 0}
	case p.Side != mover && p.Hole == holes-1:
		return Position{Side: mover, Hole: 0}
	default:
		return Position{Side: p.Side, Hole: p.Hole + 1}
	}
}
