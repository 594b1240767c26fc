package events

import (
	"time"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted  = "game.started"
	TypeGameEnded    = "game.ended"
	TypeMoveApplied  = "move.applied"
	TypeMoveRejected = "move.rejected"
	TypeTurnChanged  = "turn.changed"
)

// GameStartedEvent is published when a new game begins
type GameStartedEvent struct {
	BaseEvent
	Holes        int
	InitialBeads int
	FirstPlayer  int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, holes, initialBeads, firstPlayer int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:    newBase(TypeGameStarted, gameID),
		Holes:        holes,
		InitialBeads: initialBeads,
		FirstPlayer:  firstPlayer,
	}
}

// GameEndedEvent is published when every bead has reached a store
type GameEndedEvent struct {
	BaseEvent
	Winner    int
	Stores    [core.NumPlayers]int
	Duration  time.Duration
	FinalTurn int
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, winner int, stores [core.NumPlayers]int, duration time.Duration, finalTurn int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Winner:    winner,
		Stores:    stores,
		Duration:  duration,
		FinalTurn: finalTurn,
	}
}

// MoveAppliedEvent is published after a move and its relay chain are resolved
type MoveAppliedEvent struct {
	BaseEvent
	Turn         int
	PlayerID     int
	Action       core.Action
	Passes       int
	BeadsSown    int
	EndedInStore bool
	Stores       [core.NumPlayers]int
}

// NewMoveAppliedEvent creates a new MoveAppliedEvent
func NewMoveAppliedEvent(gameID string, turn int, action core.Action, result *core.MoveResult, stores [core.NumPlayers]int) *MoveAppliedEvent {
	return &MoveAppliedEvent{
		BaseEvent:    newBase(TypeMoveApplied, gameID),
		Turn:         turn,
		PlayerID:     result.Mover,
		Action:       action,
		Passes:       len(result.Passes),
		BeadsSown:    result.BeadsSown(),
		EndedInStore: result.EndedInStore,
		Stores:       stores,
	}
}

// MoveRejectedEvent is published when a driver submits an action that fails validation
type MoveRejectedEvent struct {
	BaseEvent
	Turn     int
	PlayerID int
	Action   core.Action
	Reason   string
}

// NewMoveRejectedEvent creates a new MoveRejectedEvent
func NewMoveRejectedEvent(gameID string, turn, playerID int, action core.Action, reason error) *MoveRejectedEvent {
	return &MoveRejectedEvent{
		BaseEvent: newBase(TypeMoveRejected, gameID),
		Turn:      turn,
		PlayerID:  playerID,
		Action:    action,
		Reason:    reason.Error(),
	}
}

// TurnChangedEvent is published when the turn policy hands the move to the next player
type TurnChangedEvent struct {
	BaseEvent
	Turn       int
	FromPlayer int
	ToPlayer   int
}

// NewTurnChangedEvent creates a new TurnChangedEvent
func NewTurnChangedEvent(gameID string, turn, from, to int) *TurnChangedEvent {
	return &TurnChangedEvent{
		BaseEvent:  newBase(TypeTurnChanged, gameID),
		Turn:       turn,
		FromPlayer: from,
		ToPlayer:   to,
	}
}
