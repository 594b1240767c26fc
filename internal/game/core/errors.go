package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAction = errors.New("action out of board bounds")
	ErrEmptyHole     = errors.New("starting hole is empty")
	ErrIllegalAction = errors.New("action not legal in this state")
	ErrGameOver      = errors.New("game is over")
	ErrInvalidPlayer = errors.New("invalid player ID")
	ErrInvalidBoard  = errors.New("invalid board")
	ErrRelayLimit    = errors.New("relay chain exceeded pass limit")
)

// WrapActionError adds the acting player and the action to err.
// It returns nil when err is nil.
func WrapActionError(playerID int, a Action, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("player %d: sow from %s: %w", playerID, a, err)
}
