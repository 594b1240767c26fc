package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/events"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/play"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	seed := flag.Int64("seed", 0, "RNG seed (0 picks one from the clock)")
	maxTurns := flag.Int("max-turns", -1, "Stop after this many moves (-1 to use config default)")
	render := flag.String("render", "", "Board style: stars or numeric (empty to use config default)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()
	setupLogging(cfg.Server.LogLevel)

	if *maxTurns < 0 {
		*maxTurns = cfg.Training.MaxTurns
	}
	if *render == "" {
		*render = cfg.Play.RenderStyle
	}
	style, err := game.ParseRenderStyle(*render)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid render style")
	}
	policy, err := game.ParseTurnPolicy(cfg.Game.TurnPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid turn policy")
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	fmt.Printf("Game seed: %d\n", *seed)
	rng := rand.New(rand.NewSource(*seed))

	bus := events.NewEventBus(log.Logger)
	if cfg.Development.LogEvents {
		sub := subscribers.NewLoggerSubscriber("event_logger", log.Logger, zerolog.DebugLevel)
		sub.SetDevMode(true)
		bus.Subscribe(sub)
	}

	g, err := game.NewEngine(game.GameConfig{
		Holes:          cfg.Game.Holes,
		InitialBeads:   cfg.Game.InitialBeads,
		FirstPlayer:    game.RandomFirstPlayer,
		MaxRelayPasses: cfg.Game.MaxRelayPasses,
		TurnPolicy:     policy,
		Rng:            rng,
		Logger:         log.Logger,
		EventBus:       bus,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create game")
	}

	players := [2]play.Player{play.NewRandomPlayer(rng), play.NewRandomPlayer(rng)}
	ctx := context.Background()

	fmt.Printf("Initial board:\n%s\n\n", game.RenderBoard(g.Snapshot(), style))
	for turn := 0; turn < *maxTurns && !g.IsGameOver(); turn++ {
		action, err := players[g.ActivePlayer()].ChooseAction(ctx, g.State())
		if err != nil {
			fmt.Printf("Error on turn %d: %v\n", turn+1, err)
			break
		}
		res, err := g.Step(action)
		if err != nil {
			fmt.Printf("Error on turn %d: %v\n", turn+1, err)
			break
		}
		fmt.Printf("Turn %d: player %d sows %s (%d passes)\n", res.Turn, res.Before.Player, action, len(res.Move.Passes))
		fmt.Printf("%s\n\n", game.RenderBoard(g.Snapshot(), style))
	}

	stats := g.Stats()
	if g.IsGameOver() {
		fmt.Printf("Game Over! Player %d wins with stores %v.\n", g.Winner(), g.Stores())
	} else {
		fmt.Printf("Game reached maximum turns (%d)\n", *maxTurns)
	}
	fmt.Printf("Moves: %d  Relays: %d  Longest chain: %d  Avg passes per move: %.2f\n",
		stats.Moves, stats.Relays, stats.LongestChain, stats.AveragePasses())
}

func setupLogging(level string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
