package rules

import (
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
	"github.com/rs/zerolog"
)

// Outcome summarises a board's terminal status.
type Outcome struct {
	Over   bool
	Winner int
	Stores [core.NumPlayers]int
	Margin int // winner's store minus loser's store; 0 while undecided
}

// WinConditionChecker handles game over detection and winner reporting
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckGameOver reports whether every bead has reached a store and who won.
// Returns (isGameOver, winnerID); winnerID is core.NoWinner while undecided.
func (wc *WinConditionChecker) CheckGameOver(b *core.Board) (bool, int) {
	outcome := wc.Evaluate(b)
	return outcome.Over, outcome.Winner
}

// Evaluate returns the full outcome of b.
func (wc *WinConditionChecker) Evaluate(b *core.Board) Outcome {
	stores := b.Stores()
	outcome := Outcome{Over: b.IsOver(), Winner: b.Winner(), Stores: stores}

	wc.logger.Debug().
		Int("store_0", stores[0]).
		Int("store_1", stores[1]).
		Int("total", b.Total()).
		Msg("Checking game over conditions")

	if !outcome.Over {
		return outcome
	}

	outcome.Margin = stores[outcome.Winner] - stores[core.Other(outcome.Winner)]
	if outcome.Margin == 0 {
		wc.logger.Debug().Int("winner_player_id", outcome.Winner).Msg("Stores tied, player 0 takes the game")
	} else {
		wc.logger.Debug().
			Int("winner_player_id", outcome.Winner).
			Int("margin", outcome.Margin).
			Msg("Winner determined")
	}
	return outcome
}
