package training

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/agent"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/experience"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/events"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/monitoring"
	"github.com/rs/zerolog"
)

var ErrInvalidConfig = errors.New("invalid training config")

// Config controls a self-play run.
type Config struct {
	Episodes       int
	MaxTurns       int
	LogEvery       int
	Holes          int
	InitialBeads   int
	MaxRelayPasses int
	TurnPolicy     game.TurnPolicy
	RewardScheme   experience.RewardScheme
	Rewards        experience.RewardConfig
	BufferCapacity int
	ReplayBatch    int
	Rng            *rand.Rand
	Logger         zerolog.Logger
	EventBus       events.Bus
}

// DefaultConfig mirrors the configuration defaults.
func DefaultConfig() Config {
	return Config{
		Episodes:       10000,
		MaxTurns:       1000,
		LogEvery:       1000,
		Holes:          6,
		InitialBeads:   4,
		MaxRelayPasses: core.DefaultMaxRelayPasses,
		TurnPolicy:     game.TurnPolicyAlwaysSwitch,
		RewardScheme:   experience.RewardSchemeReference,
		Rewards:        experience.DefaultRewardConfig(),
		BufferCapacity: experience.DefaultBufferCapacity,
		Logger:         zerolog.Nop(),
	}
}

// ConfigFromApp builds a training config from the loaded application config.
func ConfigFromApp(c *config.Config, rng *rand.Rand, logger zerolog.Logger) (Config, error) {
	policy, err := game.ParseTurnPolicy(c.Game.TurnPolicy)
	if err != nil {
		return Config{}, err
	}
	scheme, err := experience.ParseRewardScheme(c.Training.RewardScheme)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Episodes:       c.Training.Episodes,
		MaxTurns:       c.Training.MaxTurns,
		LogEvery:       c.Training.LogEvery,
		Holes:          c.Game.Holes,
		InitialBeads:   c.Game.InitialBeads,
		MaxRelayPasses: c.Game.MaxRelayPasses,
		TurnPolicy:     policy,
		RewardScheme:   scheme,
		Rewards: experience.RewardConfig{
			Win:  c.Training.WinReward,
			Lose: c.Training.LoseReward,
			Step: c.Training.StepReward,
		},
		BufferCapacity: c.Training.BufferCapacity,
		ReplayBatch:    c.Training.ReplayBatch,
		Rng:            rng,
		Logger:         logger,
	}, nil
}

// EpisodeResult describes one self-play game.
type EpisodeResult struct {
	GameID    string
	Turns     int
	Winner    int
	Truncated bool
	Updates   int
}

// Summary describes a whole run.
type Summary struct {
	Episodes  int
	Finished  int
	Truncated int
	Wins      [core.NumPlayers]int
	Updates   int
	Replayed  int
	TableSize int
	Duration  time.Duration
}

// Trainer plays the agent against itself and learns from every step.
type Trainer struct {
	agent    *agent.Agent
	cfg      Config
	buffer   *experience.Buffer
	assigner *experience.RewardAssigner
	monitor  *monitoring.ProgressMonitor
	bus      events.Bus
	logger   zerolog.Logger
}

// NewTrainer validates cfg and wires the event bus, progress monitor and
// experience buffer around a.
func NewTrainer(a *agent.Agent, cfg Config) (*Trainer, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil agent", ErrInvalidConfig)
	}
	if cfg.Episodes < 0 {
		return nil, fmt.Errorf("%w: episodes=%d", ErrInvalidConfig, cfg.Episodes)
	}
	if cfg.MaxTurns < 1 {
		return nil, fmt.Errorf("%w: max_turns=%d", ErrInvalidConfig, cfg.MaxTurns)
	}
	if cfg.ReplayBatch < 0 {
		return nil, fmt.Errorf("%w: replay_batch=%d", ErrInvalidConfig, cfg.ReplayBatch)
	}
	if cfg.Holes < 1 || cfg.InitialBeads < 1 {
		return nil, fmt.Errorf("%w: holes=%d initial_beads=%d", ErrInvalidConfig, cfg.Holes, cfg.InitialBeads)
	}
	if cfg.Rng == nil {
		cfg.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	logger := cfg.Logger.With().Str("component", "trainer").Logger()
	bus := cfg.EventBus
	if bus == nil {
		bus = events.NewEventBus(cfg.Logger)
	}
	monitor := monitoring.NewProgressMonitor(cfg.Logger)
	bus.Subscribe(monitor)

	return &Trainer{
		agent:    a,
		cfg:      cfg,
		buffer:   experience.NewBuffer(cfg.BufferCapacity, cfg.Logger),
		assigner: experience.NewRewardAssigner(cfg.RewardScheme, cfg.Rewards),
		monitor:  monitor,
		bus:      bus,
		logger:   logger,
	}, nil
}

func (t *Trainer) Agent() *agent.Agent                  { return t.agent }
func (t *Trainer) Buffer() *experience.Buffer           { return t.buffer }
func (t *Trainer) Monitor() *monitoring.ProgressMonitor { return t.monitor }

// Run plays cfg.Episodes games. It stops early with ctx.Err() when ctx is
// cancelled between episodes; the summary covers the games already played.
// The experience buffer is closed when Run returns, so a Trainer runs once;
// the buffer stays readable.
func (t *Trainer) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	var summary Summary
	defer func() {
		if err := t.buffer.Close(); err != nil {
			t.logger.Warn().Err(err).Msg("Failed to close experience buffer")
		}
	}()

	t.logger.Info().
		Int("episodes", t.cfg.Episodes).
		Str("reward_scheme", string(t.assigner.Scheme())).
		Str("turn_policy", string(t.cfg.TurnPolicy)).
		Msg("Starting self-play training")

	for episode := 0; episode < t.cfg.Episodes; episode++ {
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(start)
			summary.TableSize = t.agent.Table().Len()
			return summary, err
		}

		res, err := t.PlayEpisode(episode)
		if err != nil {
			return summary, fmt.Errorf("episode %d: %w", episode+1, err)
		}
		summary.Episodes++
		summary.Updates += res.Updates
		if res.Truncated {
			summary.Truncated++
		} else {
			summary.Finished++
			summary.Wins[res.Winner]++
		}

		if t.cfg.ReplayBatch > 0 {
			summary.Replayed += t.replay()
		}
		if t.cfg.LogEvery > 0 && (episode+1)%t.cfg.LogEvery == 0 {
			t.monitor.LogProgress(episode + 1)
		}
	}

	summary.Duration = time.Since(start)
	summary.TableSize = t.agent.Table().Len()
	t.logger.Info().
		Int("episodes", summary.Episodes).
		Int("finished", summary.Finished).
		Int("truncated", summary.Truncated).
		Int("updates", summary.Updates).
		Int("table_size", summary.TableSize).
		Dur("duration", summary.Duration).
		Msg("Done training")
	return summary, nil
}

// PlayEpisode plays one game of the agent against itself, player 0 first,
// with exploration on. Games still running after MaxTurns moves are cut off
// without a terminal reward.
func (t *Trainer) PlayEpisode(episode int) (EpisodeResult, error) {
	engine, err := game.NewEngine(game.GameConfig{
		Holes:          t.cfg.Holes,
		InitialBeads:   t.cfg.InitialBeads,
		FirstPlayer:    0,
		MaxRelayPasses: t.cfg.MaxRelayPasses,
		TurnPolicy:     t.cfg.TurnPolicy,
		Rng:            t.cfg.Rng,
		Logger:         t.cfg.Logger,
		EventBus:       t.bus,
	})
	if err != nil {
		return EpisodeResult{}, err
	}
	t.assigner.Reset(engine.GameID())
	t.logger.Debug().Int("episode", episode+1).Str("game_id", engine.GameID()).Msg("Playing training game")

	result := EpisodeResult{GameID: engine.GameID(), Winner: core.NoWinner}
	for !engine.IsGameOver() {
		if engine.Turn() >= t.cfg.MaxTurns {
			result.Truncated = true
			t.logger.Warn().
				Int("episode", episode+1).
				Int("turns", engine.Turn()).
				Msg("Training game hit max turns, truncating")
			break
		}

		action, err := t.agent.ChooseAction(engine.State(), true)
		if err != nil {
			return result, err
		}
		step, err := engine.Step(action)
		if err != nil {
			return result, err
		}

		transitions := t.assigner.Assign(step)
		for _, tr := range transitions {
			t.agent.Update(tr.State, tr.Action, tr.NextState, tr.Reward)
		}
		result.Updates += len(transitions)
		if err := t.buffer.AddBatch(transitions); err != nil {
			return result, err
		}
	}

	result.Turns = engine.Turn()
	if !result.Truncated {
		result.Winner = engine.Winner()
	}
	return result, nil
}

// replay re-applies a uniform sample of buffered transitions.
func (t *Trainer) replay() int {
	batch := t.buffer.Sample(t.cfg.ReplayBatch, t.cfg.Rng)
	for _, tr := range batch {
		t.agent.Update(tr.State, tr.Action, tr.NextState, tr.Reward)
	}
	return len(batch)
}
