package core

import "fmt"

const (
	// NumPlayers is fixed: the board has exactly two rows and two stores.
	NumPlayers = 2
	// NoWinner marks a board that has not reached a terminal state.
	NoWinner = -1
)

// Board is the mutable bead layout of one game.
// rows[p][h] is the bead count of hole h on player p's row.
// stores[p] is player p's pile.
// The sum of all holes and both stores always equals total.
type Board struct {
	holes        int
	initialBeads int
	rows         [NumPlayers][]int
	stores       [NumPlayers]int
	player       int
	winner       int
	total        int
}

// NewBoard creates a starting board with every hole set to initialBeads.
func NewBoard(holes, initialBeads int) *Board {
	if holes < 1 || initialBeads < 1 {
		panic(fmt.Sprintf("invalid board dimensions: holes=%d initial_beads=%d", holes, initialBeads))
	}
	b := &Board{
		holes:        holes,
		initialBeads: initialBeads,
		winner:       NoWinner,
		total:        NumPlayers * holes * initialBeads,
	}
	for p := range b.rows {
		b.rows[p] = make([]int, holes)
		for h := range b.rows[p] {
			b.rows[p][h] = initialBeads
		}
	}
	return b
}

// NewBoardFromState builds a board from explicit counts. The conserved total
// is whatever the supplied rows and stores add up to. A board whose beads are
// all in the stores is created already decided.
func NewBoardFromState(rows [NumPlayers][]int, stores [NumPlayers]int, player int) (*Board, error) {
	if len(rows[0]) == 0 || len(rows[0]) != len(rows[1]) {
		return nil, fmt.Errorf("%w: rows must be non-empty and of equal length (got %d and %d)",
			ErrInvalidBoard, len(rows[0]), len(rows[1]))
	}
	if !ValidPlayer(player) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPlayer, player)
	}

	b := &Board{
		holes:  len(rows[0]),
		player: player,
		winner: NoWinner,
	}
	for p := range rows {
		if stores[p] < 0 {
			return nil, fmt.Errorf("%w: negative store for player %d", ErrInvalidBoard, p)
		}
		b.rows[p] = make([]int, b.holes)
		for h, beads := range rows[p] {
			if beads < 0 {
				return nil, fmt.Errorf("%w: negative count at (%d,%d)", ErrInvalidBoard, p, h)
			}
			b.rows[p][h] = beads
			b.total += beads
		}
		b.stores[p] = stores[p]
		b.total += stores[p]
	}
	if b.total == 0 {
		return nil, fmt.Errorf("%w: board holds no beads", ErrInvalidBoard)
	}
	if b.total%(NumPlayers*b.holes) == 0 {
		b.initialBeads = b.total / (NumPlayers * b.holes)
	}
	b.checkTerminal()
	return b, nil
}

// ValidPlayer reports whether p names one of the two players.
func ValidPlayer(p int) bool { return p == 0 || p == 1 }

// Other returns the opponent of player p.
func Other(p int) int { return 1 - p }

func (b *Board) Holes() int        { return b.holes }
func (b *Board) InitialBeads() int { return b.initialBeads }
func (b *Board) Total() int        { return b.total }
func (b *Board) ActivePlayer() int { return b.player }
func (b *Board) Winner() int       { return b.winner }
func (b *Board) IsOver() bool      { return b.winner != NoWinner }
func (b *Board) Stores() [NumPlayers]int {
	return b.stores
}

// Rows returns a deep copy of both rows.
func (b *Board) Rows() [NumPlayers][]int {
	return copyRows(b.rows)
}

// Beads returns the count in hole h of player side's row.
func (b *Board) Beads(side, hole int) int {
	return b.rows[side][hole]
}

// State returns a snapshot of (rows, active player) that does not alias the board.
func (b *Board) State() State {
	return State{Rows: copyRows(b.rows), Player: b.player}
}

// Snapshot returns a read-only copy of everything a renderer needs.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Rows:   copyRows(b.rows),
		Stores: b.stores,
		Player: b.player,
		Winner: b.winner,
	}
}

// SetActivePlayer hands the turn to p. A decided board is read-only.
func (b *Board) SetActivePlayer(p int) error {
	if b.IsOver() {
		return ErrGameOver
	}
	if !ValidPlayer(p) {
		return fmt.Errorf("%w: %d", ErrInvalidPlayer, p)
	}
	b.player = p
	return nil
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	c.rows = copyRows(b.rows)
	return &c
}

// Conserved reports whether the bead invariant currently holds.
func (b *Board) Conserved() bool {
	sum := b.stores[0] + b.stores[1]
	for p := range b.rows {
		for _, beads := range b.rows[p] {
			sum += beads
		}
	}
	return sum == b.total
}

func (b *Board) checkTerminal() {
	if b.stores[0]+b.stores[1] == b.total {
		b.winner = DecideWinner(b.stores)
	}
}

// DecideWinner returns the player with the larger store. Player 0 wins ties.
func DecideWinner(stores [NumPlayers]int) int {
	winner := 0
	for p := 1; p < NumPlayers; p++ {
		if stores[p] > stores[winner] {
			winner = p
		}
	}
	return winner
}

func (b *Board) String() string {
	return fmt.Sprintf("rows=%v stores=%v player=%d winner=%d", b.rows, b.stores, b.player, b.winner)
}

func copyRows(rows [NumPlayers][]int) [NumPlayers][]int {
	var out [NumPlayers][]int
	for p := range rows {
		out[p] = append([]int(nil), rows[p]...)
	}
	return out
}
