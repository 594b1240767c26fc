package play

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
	"github.com/rs/zerolog"
)

// RandomHumanPlayer lets the match draw the human's seat.
const RandomHumanPlayer = -1

// MatchConfig holds the settings of one human-versus-AI game.
type MatchConfig struct {
	Game        game.GameConfig
	HumanPlayer int
	Delay       time.Duration
	RenderStyle game.RenderStyle
	Rng         *rand.Rand
	Logger      zerolog.Logger
}

// MatchResult reports how a match ended.
type MatchResult struct {
	GameID      string
	HumanPlayer int
	Winner      int
	HumanWon    bool
	Turns       int
	Stores      [core.NumPlayers]int
}

// Match runs a game between a human seat and an AI seat and narrates it to out.
type Match struct {
	cfg    MatchConfig
	human  Player
	ai     Player
	out    io.Writer
	logger zerolog.Logger
}

func NewMatch(cfg MatchConfig, human, ai Player, out io.Writer) (*Match, error) {
	if cfg.HumanPlayer != RandomHumanPlayer && !core.ValidPlayer(cfg.HumanPlayer) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHumanPlayer, cfg.HumanPlayer)
	}
	if cfg.Rng == nil {
		cfg.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Game.Rng == nil {
		cfg.Game.Rng = cfg.Rng
	}
	return &Match{
		cfg:    cfg,
		human:  human,
		ai:     ai,
		out:    out,
		logger: cfg.Logger.With().Str("component", "match").Logger(),
	}, nil
}

// Run plays the match to the end. It returns early with an error when a
// player cannot move or ctx is cancelled.
func (m *Match) Run(ctx context.Context) (MatchResult, error) {
	humanPlayer := m.cfg.HumanPlayer
	if humanPlayer == RandomHumanPlayer {
		humanPlayer = m.cfg.Rng.Intn(core.NumPlayers)
	}

	engine, err := game.NewEngine(m.cfg.Game)
	if err != nil {
		return MatchResult{}, err
	}
	result := MatchResult{GameID: engine.GameID(), HumanPlayer: humanPlayer, Winner: core.NoWinner}
	m.logger.Info().Str("game_id", engine.GameID()).Int("human_player", humanPlayer).Msg("Match started")

	for !engine.IsGameOver() {
		fmt.Fprintln(m.out, game.RenderBoard(engine.Snapshot(), m.cfg.RenderStyle))
		if err := m.pause(ctx); err != nil {
			return result, err
		}

		s := engine.State()
		var action core.Action
		if s.Player == humanPlayer {
			fmt.Fprintln(m.out, "Your Turn")
			action, err = m.human.ChooseAction(ctx, s)
			if err != nil {
				return result, err
			}
		} else {
			fmt.Fprintln(m.out, "AI's Turn")
			action, err = m.ai.ChooseAction(ctx, s)
			if err != nil {
				return result, err
			}
			fmt.Fprintf(m.out, "AI chose to start with hole %d on side %d.\n", action.Hole, action.Side)
		}

		if _, err := engine.Step(action); err != nil {
			return result, err
		}
	}

	result.Winner = engine.Winner()
	result.HumanWon = result.Winner == humanPlayer
	result.Turns = engine.Turn()
	result.Stores = engine.Stores()

	fmt.Fprintln(m.out, game.RenderBoard(engine.Snapshot(), m.cfg.RenderStyle))
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "GAME OVER")
	winner := "AI"
	if result.HumanWon {
		winner = "Human"
	}
	fmt.Fprintf(m.out, "Winner is %s\n", winner)

	m.logger.Info().
		Str("game_id", result.GameID).
		Int("winner", result.Winner).
		Bool("human_won", result.HumanWon).
		Int("turns", result.Turns).
		Msg("Match finished")
	return result, nil
}

func (m *Match) pause(ctx context.Context) error {
	if m.cfg.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.cfg.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
