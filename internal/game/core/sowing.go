package core

import "fmt"

// DefaultMaxRelayPasses caps the number of sowing passes in one move when the
// caller does not supply a limit. Every pass either feeds the mover's store or
// moves all of its beads strictly forward, so real chains stay far below it.
const DefaultMaxRelayPasses = 10000

// Pass is one sowing pass inside a move.
type Pass struct {
	Start Action
	Beads int
	End   Position
}

// MoveResult describes everything that happened during one ApplyMove call.
type MoveResult struct {
	Mover        int
	Passes       []Pass
	EndedInStore bool
	Winner       int
}

// Relays returns how many times the move continued from a landing hole.
func (r *MoveResult) Relays() int {
	if len(r.Passes) == 0 {
		return 0
	}
	return len(r.Passes) - 1
}

// BeadsSown returns the number of single-bead deposits across all passes.
func (r *MoveResult) BeadsSown() int {
	n := 0
	for _, p := range r.Passes {
		n += p.Beads
	}
	return n
}

// ApplyMove sows from action a on behalf of the active player, relaying from
// every landing hole that was occupied before the last bead arrived, until the
// chain ends in the mover's store or in a previously empty hole.
//
// When the chain needs more than maxPasses passes the board is rolled back to
// its state before the move and ErrRelayLimit is returned; the result still
// lists the passes that were attempted.
//
// The open-side rule is not checked here. Callers that accept untrusted
// actions must filter them through rules.IsLegal first.
func ApplyMove(b *Board, a Action, maxPasses int) (*MoveResult, error) {
	if b.IsOver() {
		return nil, ErrGameOver
	}
	if !a.InBounds(b.holes) {
		return nil, fmt.Errorf("%w: %s on %d holes", ErrInvalidAction, a, b.holes)
	}
	if b.rows[a.Side][a.Hole] == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyHole, a)
	}
	if maxPasses <= 0 {
		maxPasses = DefaultMaxRelayPasses
	}

	mover := b.player
	result := &MoveResult{Mover: mover, Winner: NoWinner}
	start := a
	saved := b.Clone()

	for {
		if len(result.Passes) == maxPasses {
			b.restore(saved)
			return result, fmt.Errorf("%w: %d passes starting at %s", ErrRelayLimit, maxPasses, a)
		}

		beads := b.rows[start.Side][start.Hole]
		b.rows[start.Side][start.Hole] = 0

		cursor := Position{Side: start.Side, Hole: start.Hole}
		for remaining := beads; remaining > 0; remaining-- {
			cursor = next(cursor, mover, b.holes)
			b.deposit(cursor, mover)
		}
		result.Passes = append(result.Passes, Pass{Start: start, Beads: beads, End: cursor})

		b.checkTerminal()

		if cursor.IsStore(b.holes) {
			result.EndedInStore = true
			break
		}
		// A single bead means the hole was empty before the deposit.
		if b.rows[cursor.Side][cursor.Hole] == 1 {
			break
		}
		start = cursor.Action()
	}

	result.Winner = b.winner
	return result, nil
}

// restore copies the bead layout and winner of saved back into b.
func (b *Board) restore(saved *Board) {
	b.rows = saved.rows
	b.stores = saved.stores
	b.winner = saved.winner
}

// deposit drops one bead at the cursor. Only the mover's store is reachable.
func (b *Board) deposit(p Position, mover int) {
	if p.IsStore(b.holes) {
		b.stores[mover]++
		return
	}
	b.rows[p.Side][p.Hole]++
}
