package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/events"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/rules"
	"github.com/rs/zerolog"
)

// RandomFirstPlayer asks NewEngine to draw the opening player from the RNG.
const RandomFirstPlayer = -1

var ErrInvalidGameConfig = errors.New("invalid game config")

// GameConfig holds configuration for creating a new game
type GameConfig struct {
	Holes          int
	InitialBeads   int
	FirstPlayer    int
	MaxRelayPasses int
	TurnPolicy     TurnPolicy
	Rng            *rand.Rand
	Logger         zerolog.Logger
	EventBus       events.Bus
	GameID         string
}

// DefaultGameConfig returns a 6-hole, 4-bead game opened by player 0.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Holes:          6,
		InitialBeads:   4,
		FirstPlayer:    0,
		MaxRelayPasses: core.DefaultMaxRelayPasses,
		TurnPolicy:     TurnPolicyAlwaysSwitch,
		Logger:         zerolog.Nop(),
	}
}

// StepResult reports one applied move. After still has the mover active;
// NextPlayer is who moves next, or the mover again once the game is over.
type StepResult struct {
	Turn       int
	Before     core.State
	Action     core.Action
	After      core.State
	Move       *core.MoveResult
	NextPlayer int
	Done       bool
	Winner     int
}

// Engine drives one game: it validates actions, applies them to the board,
// keeps statistics, publishes events and hands the turn over.
type Engine struct {
	board          *core.Board
	rng            *rand.Rand
	logger         zerolog.Logger
	eventBus       events.Bus
	gameID         string
	turnPolicy     TurnPolicy
	maxRelayPasses int
	winCondition   *rules.WinConditionChecker
	turn           int
	stats          Stats
	startTime      time.Time
}

// NewEngine validates cfg, sets up the starting board and publishes a
// game-started event.
func NewEngine(cfg GameConfig) (*Engine, error) {
	if cfg.Holes < 1 || cfg.InitialBeads < 1 {
		return nil, fmt.Errorf("%w: holes=%d initial_beads=%d", ErrInvalidGameConfig, cfg.Holes, cfg.InitialBeads)
	}
	if cfg.FirstPlayer != RandomFirstPlayer && !core.ValidPlayer(cfg.FirstPlayer) {
		return nil, fmt.Errorf("%w: first player %d", ErrInvalidGameConfig, cfg.FirstPlayer)
	}
	policy := cfg.TurnPolicy
	if policy == "" {
		policy = TurnPolicyAlwaysSwitch
	}
	if !policy.Valid() {
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidGameConfig, ErrUnknownTurnPolicy, policy)
	}
	if cfg.Rng == nil {
		cfg.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.GameID == "" {
		cfg.GameID = uuid.New().String()
	}
	if cfg.MaxRelayPasses <= 0 {
		cfg.MaxRelayPasses = core.DefaultMaxRelayPasses
	}
	if cfg.EventBus == nil {
		cfg.EventBus = events.NewEventBus(cfg.Logger)
	}

	first := cfg.FirstPlayer
	if first == RandomFirstPlayer {
		first = cfg.Rng.Intn(core.NumPlayers)
	}

	logger := cfg.Logger.With().Str("component", "GameEngine").Str("game_id", cfg.GameID).Logger()
	board := core.NewBoard(cfg.Holes, cfg.InitialBeads)
	if err := board.SetActivePlayer(first); err != nil {
		return nil, err
	}

	e := &Engine{
		board:          board,
		rng:            cfg.Rng,
		logger:         logger,
		eventBus:       cfg.EventBus,
		gameID:         cfg.GameID,
		turnPolicy:     policy,
		maxRelayPasses: cfg.MaxRelayPasses,
		winCondition:   rules.NewWinConditionChecker(logger),
		startTime:      time.Now(),
	}

	e.eventBus.Publish(events.NewGameStartedEvent(e.gameID, cfg.Holes, cfg.InitialBeads, first))
	logger.Debug().
		Int("holes", cfg.Holes).
		Int("initial_beads", cfg.InitialBeads).
		Int("first_player", first).
		Str("turn_policy", string(policy)).
		Msg("Engine created")

	return e, nil
}

// Step applies action for the active player.
func (e *Engine) Step(action core.Action) (*StepResult, error) {
	if e.board.IsOver() {
		return nil, core.ErrGameOver
	}

	mover := e.board.ActivePlayer()
	before := e.board.State()
	if err := e.validate(before, action); err != nil {
		e.logger.Warn().Err(err).Int("player_id", mover).Str("action", action.String()).Msg("Rejected action")
		e.eventBus.Publish(events.NewMoveRejectedEvent(e.gameID, e.turn, mover, action, err))
		return nil, core.WrapActionError(mover, action, err)
	}

	// A failed move leaves the board as it was before the move.
	move, err := core.ApplyMove(e.board, action, e.maxRelayPasses)
	if err != nil {
		e.logger.Error().Err(err).Int("player_id", mover).Str("action", action.String()).Msg("Move failed")
		e.eventBus.Publish(events.NewMoveRejectedEvent(e.gameID, e.turn, mover, action, err))
		return nil, core.WrapActionError(mover, action, err)
	}

	e.turn++
	e.stats.Record(move)
	stores := e.board.Stores()
	e.eventBus.Publish(events.NewMoveAppliedEvent(e.gameID, e.turn, action, move, stores))

	result := &StepResult{
		Turn:       e.turn,
		Before:     before,
		Action:     action,
		After:      e.board.State(),
		Move:       move,
		NextPlayer: mover,
		Winner:     core.NoWinner,
	}

	e.logger.Debug().
		Int("turn", e.turn).
		Int("player_id", mover).
		Str("action", action.String()).
		Int("passes", len(move.Passes)).
		Bool("ended_in_store", move.EndedInStore).
		Msg("Move applied")

	if outcome := e.winCondition.Evaluate(e.board); outcome.Over {
		result.Done = true
		result.Winner = outcome.Winner
		e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, outcome.Winner, outcome.Stores, time.Since(e.startTime), e.turn))
		return result, nil
	}

	next := e.turnPolicy.Next(mover, move)
	if next != mover {
		if err := e.board.SetActivePlayer(next); err != nil {
			return nil, err
		}
		e.eventBus.Publish(events.NewTurnChangedEvent(e.gameID, e.turn, mover, next))
	}
	result.NextPlayer = next
	return result, nil
}

func (e *Engine) validate(s core.State, action core.Action) error {
	if !action.InBounds(s.Holes()) {
		return fmt.Errorf("%w: %s on %d holes", core.ErrInvalidAction, action, s.Holes())
	}
	if !rules.IsLegal(s, action) {
		return fmt.Errorf("%w: open side is %d", core.ErrIllegalAction, rules.OpenSide(s))
	}
	return nil
}

// Public accessors
func (e *Engine) State() core.State            { return e.board.State() }
func (e *Engine) Snapshot() core.Snapshot      { return e.board.Snapshot() }
func (e *Engine) LegalActions() []core.Action  { return rules.LegalActions(e.board.State()) }
func (e *Engine) ActivePlayer() int            { return e.board.ActivePlayer() }
func (e *Engine) IsGameOver() bool             { return e.board.IsOver() }
func (e *Engine) Winner() int                  { return e.board.Winner() }
func (e *Engine) Stores() [core.NumPlayers]int { return e.board.Stores() }
func (e *Engine) Turn() int                    { return e.turn }
func (e *Engine) GameID() string               { return e.gameID }
func (e *Engine) Stats() Stats                 { return e.stats }
func (e *Engine) EventBus() events.Bus         { return e.eventBus }
func (e *Engine) Holes() int                   { return e.board.Holes() }
