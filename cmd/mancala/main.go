package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/agent"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/grpc/agentserver"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/play"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/training"
)

const progressInterval = 30 * time.Second

func main() {
	configPath := flag.String("config", "", "Path to config file")
	episodes := flag.Int("episodes", -1, "Self-play training episodes (-1 to use config default)")
	human := flag.Int("human", -2, "Human seat: 0, 1 or -1 for random (-2 to use config default)")
	seed := flag.Int64("seed", 0, "RNG seed (0 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	agentAddr := flag.String("agent-addr", "", "Play against an agent served by grpc_server at host:port instead of training one")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	if *episodes >= 0 {
		cfg.Training.Episodes = *episodes
	}
	if *human != -2 {
		cfg.Play.HumanPlayer = *human
	}
	if *seed != 0 {
		cfg.Training.Seed = *seed
	}
	if *logLevel == "" {
		*logLevel = cfg.Server.LogLevel
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Game text goes to stdout, so logs go to stderr.
	setupLogging(*logLevel, cfg.Server.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Training.Seed == 0 {
		cfg.Training.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(cfg.Training.Seed))
	log.Info().Int64("seed", cfg.Training.Seed).Msg("Seeded random source")

	var ai play.Player
	if *agentAddr != "" {
		conn, err := grpc.NewClient(*agentAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			log.Fatal().Err(err).Str("address", *agentAddr).Msg("Failed to connect to agent server")
		}
		defer conn.Close()
		ai = agentserver.NewRemotePlayer(agentserver.NewClient(conn))
		log.Info().Str("address", *agentAddr).Msg("Playing against remote agent")
	} else {
		a, err := train(ctx, cfg, rng)
		if err != nil {
			log.Fatal().Err(err).Msg("Training failed")
		}
		ai = play.NewAgentPlayer(a)
	}

	policy, err := game.ParseTurnPolicy(cfg.Game.TurnPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid turn policy")
	}
	style, err := game.ParseRenderStyle(cfg.Play.RenderStyle)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid render style")
	}

	match, err := play.NewMatch(play.MatchConfig{
		Game: game.GameConfig{
			Holes:          cfg.Game.Holes,
			InitialBeads:   cfg.Game.InitialBeads,
			FirstPlayer:    0,
			MaxRelayPasses: cfg.Game.MaxRelayPasses,
			TurnPolicy:     policy,
			Rng:            rng,
			Logger:         log.Logger,
		},
		HumanPlayer: cfg.Play.HumanPlayer,
		Delay:       time.Duration(cfg.Play.AIDelayMs) * time.Millisecond,
		RenderStyle: style,
		Rng:         rng,
		Logger:      log.Logger,
	}, play.NewHumanPlayer(os.Stdin, os.Stdout), ai, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up match")
	}

	if _, err := match.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Match aborted")
	}
}

// train runs self-play with periodic progress logging and returns the agent.
func train(ctx context.Context, cfg *config.Config, rng *rand.Rand) (*agent.Agent, error) {
	a, err := agent.New(agent.Config{
		Alpha:   cfg.Agent.Alpha,
		Epsilon: cfg.Agent.Epsilon,
		Rng:     rng,
		Logger:  log.Logger,
	})
	if err != nil {
		return nil, err
	}
	trainCfg, err := training.ConfigFromApp(cfg, rng, log.Logger)
	if err != nil {
		return nil, err
	}
	trainer, err := training.NewTrainer(a, trainCfg)
	if err != nil {
		return nil, err
	}

	trainer.Monitor().Start(progressInterval)
	defer trainer.Monitor().Stop()

	if _, err := trainer.Run(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
