package game

import "github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"

// Stats accumulates per-game move statistics.
type Stats struct {
	Moves         int
	MovesByPlayer [core.NumPlayers]int
	Passes        int
	Relays        int
	LongestChain  int
	BeadsSown     int
	StoreLandings [core.NumPlayers]int
}

// Record folds one move into the totals.
func (s *Stats) Record(move *core.MoveResult) {
	s.Moves++
	s.MovesByPlayer[move.Mover]++
	s.Passes += len(move.Passes)
	s.Relays += move.Relays()
	s.BeadsSown += move.BeadsSown()
	if len(move.Passes) > s.LongestChain {
		s.LongestChain = len(move.Passes)
	}
	if move.EndedInStore {
		s.StoreLandings[move.Mover]++
	}
}

// AveragePasses returns passes per move, or 0 before the first move.
func (s Stats) AveragePasses() float64 {
	if s.Moves == 0 {
		return 0
	}
	return float64(s.Passes) / float64(s.Moves)
}
