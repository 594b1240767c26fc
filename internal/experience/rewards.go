package experience

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
)

// RewardScheme selects which transitions a step produces.
type RewardScheme string

const (
	// RewardSchemeReference updates the mover's move with the step reward
	// while the game runs. On the final move it updates that move with the
	// lose reward and then the mover's last recorded move, which is the same
	// move, with the win reward.
	RewardSchemeReference RewardScheme = "reference"
	// RewardSchemeOutcome rewards the final move by the real result and gives
	// the opponent's last move the opposite reward.
	RewardSchemeOutcome RewardScheme = "outcome"
)

var ErrUnknownRewardScheme = errors.New("unknown reward scheme")

// ParseRewardScheme maps a config string to a scheme. Empty selects reference.
func ParseRewardScheme(s string) (RewardScheme, error) {
	switch RewardScheme(s) {
	case "", RewardSchemeReference:
		return RewardSchemeReference, nil
	case RewardSchemeOutcome:
		return RewardSchemeOutcome, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRewardScheme, s)
	}
}

// RewardConfig holds configurable reward values
type RewardConfig struct {
	Win  float64
	Lose float64
	Step float64
}

// DefaultRewardConfig returns the default reward configuration
func DefaultRewardConfig() RewardConfig {
	return RewardConfig{Win: 1, Lose: -1, Step: 0}
}

type recordedMove struct {
	state  core.State
	action core.Action
}

// MoveHistory remembers the most recent move of each player.
type MoveHistory struct {
	last [core.NumPlayers]*recordedMove
}

// Record stores player's move, replacing the previous one.
func (h *MoveHistory) Record(player int, s core.State, a core.Action) {
	h.last[player] = &recordedMove{state: s.Clone(), action: a}
}

// Last returns player's most recent move, or false before their first move.
func (h *MoveHistory) Last(player int) (core.State, core.Action, bool) {
	m := h.last[player]
	if m == nil {
		return core.State{}, core.Action{}, false
	}
	return m.state, m.action, true
}

// Reset forgets both players' moves.
func (h *MoveHistory) Reset() {
	h.last = [core.NumPlayers]*recordedMove{}
}

// RewardAssigner turns engine steps into learning transitions for one game
// at a time.
type RewardAssigner struct {
	scheme  RewardScheme
	rewards RewardConfig
	history MoveHistory
	gameID  string
}

func NewRewardAssigner(scheme RewardScheme, rewards RewardConfig) *RewardAssigner {
	if scheme == "" {
		scheme = RewardSchemeReference
	}
	return &RewardAssigner{scheme: scheme, rewards: rewards}
}

func (r *RewardAssigner) Scheme() RewardScheme { return r.scheme }

// Reset starts a new game.
func (r *RewardAssigner) Reset(gameID string) {
	r.gameID = gameID
	r.history.Reset()
}

// Assign records the step's move and returns the transitions to learn from,
// in the order they must be applied.
func (r *RewardAssigner) Assign(step *game.StepResult) []Transition {
	mover := step.Before.Player
	r.history.Record(mover, step.Before, step.Action)

	if !step.Done {
		state, action, _ := r.history.Last(mover)
		return []Transition{r.transition(step, mover, state, action, r.rewards.Step)}
	}

	switch r.scheme {
	case RewardSchemeOutcome:
		return r.assignOutcome(step, mover)
	default:
		return r.assignReference(step, mover)
	}
}

func (r *RewardAssigner) assignReference(step *game.StepResult, mover int) []Transition {
	lost := r.transition(step, mover, step.Before, step.Action, r.rewards.Lose)
	state, action, _ := r.history.Last(mover)
	won := r.transition(step, mover, state, action, r.rewards.Win)
	return []Transition{lost, won}
}

func (r *RewardAssigner) assignOutcome(step *game.StepResult, mover int) []Transition {
	moverReward, otherReward := r.rewards.Lose, r.rewards.Win
	if step.Winner == mover {
		moverReward, otherReward = r.rewards.Win, r.rewards.Lose
	}

	out := []Transition{r.transition(step, mover, step.Before, step.Action, moverReward)}
	other := core.Other(mover)
	if state, action, ok := r.history.Last(other); ok {
		out = append(out, r.transition(step, other, state, action, otherReward))
	}
	return out
}

func (r *RewardAssigner) transition(step *game.StepResult, player int, state core.State, action core.Action, reward float64) Transition {
	return NewTransition(r.gameID, step.Turn, player, state, action, reward, step.After, step.Done)
}
