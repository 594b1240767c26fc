package agent

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/rules"
	"github.com/rs/zerolog"
)

// Config holds the learning hyper-parameters and injected collaborators.
type Config struct {
	Alpha   float64
	Epsilon float64
	Rng     *rand.Rand
	Logger  zerolog.Logger
}

// DefaultConfig returns alpha 0.5 and epsilon 0.1 with a nop logger.
func DefaultConfig() Config {
	return Config{
		Alpha:   0.5,
		Epsilon: 0.1,
		Logger:  zerolog.Nop(),
	}
}

// Agent is a tabular Q-learner. It is not safe for concurrent use.
type Agent struct {
	table   *ValueTable
	alpha   float64
	epsilon float64
	rng     *rand.Rand
	logger  zerolog.Logger
}

// New validates cfg and creates an agent with an empty value table.
// A nil Rng falls back to a time-seeded source.
func New(cfg Config) (*Agent, error) {
	if cfg.Alpha <= 0 || cfg.Alpha > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidAlpha, cfg.Alpha)
	}
	if err := validateEpsilon(cfg.Epsilon); err != nil {
		return nil, err
	}
	rng := cfg.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Agent{
		table:   NewValueTable(),
		alpha:   cfg.Alpha,
		epsilon: cfg.Epsilon,
		rng:     rng,
		logger:  cfg.Logger.With().Str("component", "q_agent").Logger(),
	}, nil
}

func validateEpsilon(epsilon float64) error {
	if epsilon < 0 || epsilon > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidEpsilon, epsilon)
	}
	return nil
}

func (a *Agent) Table() *ValueTable { return a.table }
func (a *Agent) Alpha() float64     { return a.alpha }
func (a *Agent) Epsilon() float64   { return a.epsilon }

// SetEpsilon changes the exploration rate, e.g. for evaluation or hot reload.
func (a *Agent) SetEpsilon(epsilon float64) error {
	if err := validateEpsilon(epsilon); err != nil {
		return err
	}
	a.epsilon = epsilon
	return nil
}

// Value returns the learned value of taking action in s.
func (a *Agent) Value(s core.State, action core.Action) float64 {
	return a.table.Get(s, action)
}

// BestFutureValue returns the highest value over the legal actions of s,
// or 0 when s has no legal actions.
func (a *Agent) BestFutureValue(s core.State) float64 {
	actions := rules.LegalActions(s)
	if len(actions) == 0 {
		return 0
	}
	best := a.table.Get(s, actions[0])
	for _, action := range actions[1:] {
		if v := a.table.Get(s, action); v > best {
			best = v
		}
	}
	return best
}

// Update moves Q(old, action) towards reward + BestFutureValue(next) by alpha
// and returns the new value.
func (a *Agent) Update(old core.State, action core.Action, next core.State, reward float64) float64 {
	previous := a.table.Get(old, action)
	future := a.BestFutureValue(next)
	updated := previous + a.alpha*(reward+future-previous)
	a.table.Set(old, action, updated)

	a.logger.Debug().
		Str("state", string(CanonicalKey(old))).
		Int("side", action.Side).
		Int("hole", action.Hole).
		Float64("reward", reward).
		Float64("future", future).
		Float64("old_value", previous).
		Float64("new_value", updated).
		Msg("Updated value")

	return updated
}

// GreedyAction returns the highest-valued legal action of s and its value.
// Ties go to the first action in ascending (side, hole) order.
func (a *Agent) GreedyAction(s core.State) (core.Action, float64, error) {
	actions := rules.LegalActions(s)
	if len(actions) == 0 {
		return core.Action{}, 0, ErrNoLegalActions
	}
	best := actions[0]
	bestValue := a.table.Get(s, best)
	for _, action := range actions[1:] {
		if v := a.table.Get(s, action); v > bestValue {
			best, bestValue = action, v
		}
	}
	return best, bestValue, nil
}

// ChooseAction picks an action for s. With explore set, a uniformly random
// legal action is taken with probability epsilon; otherwise the greedy one.
func (a *Agent) ChooseAction(s core.State, explore bool) (core.Action, error) {
	actions := rules.LegalActions(s)
	if len(actions) == 0 {
		return core.Action{}, ErrNoLegalActions
	}
	if explore && a.rng.Float64() < a.epsilon {
		return actions[a.rng.Intn(len(actions))], nil
	}
	action, _, err := a.GreedyAction(s)
	return action, err
}
