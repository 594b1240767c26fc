package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/agent"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/grpc/agentserver"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/training"
)

const progressInterval = 30 * time.Second

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	port := flag.Int("port", -1, "The server port (-1 to use config default)")
	host := flag.String("host", "", "The server host (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	episodes := flag.Int("episodes", -1, "Self-play episodes before serving (-1 to use config default)")
	enableReflection := flag.Bool("enable-reflection", false, "Enable gRPC reflection for debugging")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	if *port == -1 {
		*port = cfg.Server.GRPCServer.Port
	}
	if *host == "" {
		*host = cfg.Server.GRPCServer.Host
	}
	if *logLevel == "" {
		*logLevel = cfg.Server.LogLevel
	}
	if *episodes >= 0 {
		cfg.Training.Episodes = *episodes
	}
	if !*enableReflection {
		*enableReflection = cfg.Server.GRPCServer.EnableReflection
	}

	setupLogging(*logLevel, cfg.Server.LogFormat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	seed := cfg.Training.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	a, err := agent.New(agent.Config{
		Alpha:   cfg.Agent.Alpha,
		Epsilon: cfg.Agent.Epsilon,
		Rng:     rng,
		Logger:  log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create agent")
	}
	trainCfg, err := training.ConfigFromApp(cfg, rng, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid training configuration")
	}
	trainer, err := training.NewTrainer(a, trainCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create trainer")
	}

	summary, interrupted, err := trainUntilSignal(ctx, trainer, sigCh)
	if err != nil {
		log.Fatal().Err(err).Msg("Training failed")
	}
	if interrupted {
		log.Info().Int("episodes", summary.Episodes).Msg("Training interrupted, exiting without serving")
		return
	}
	log.Info().
		Int64("seed", seed).
		Int("episodes", summary.Episodes).
		Int("table_size", summary.TableSize).
		Msg("Agent ready")

	log.Info().
		Int("port", *port).
		Str("host", *host).
		Int("holes", cfg.Game.Holes).
		Msg("Starting gRPC agent server")

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", *host, *port))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to listen")
	}

	grpcServer := grpc.NewServer(agentserver.ServerOptions(log.Logger)...)

	agentService := agentserver.NewServer(a, cfg.Game.Holes, trainer.Monitor(), log.Logger)
	agentserver.RegisterAgentServiceServer(grpcServer, agentService)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(agentserver.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	if *enableReflection {
		reflection.Register(grpcServer)
		log.Info().Msg("gRPC reflection enabled")
	}

	// Only the exploration rate can change while serving.
	config.WatchConfig(func(next *config.Config, err error) {
		if err != nil {
			log.Warn().Err(err).Msg("Ignoring config reload")
			return
		}
		if err := agentService.SetEpsilon(next.Agent.Epsilon); err != nil {
			log.Warn().Err(err).Msg("Failed to apply reloaded epsilon")
		}
	})

	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		healthServer.SetServingStatus(agentserver.ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

		time.Sleep(time.Duration(cfg.Server.GRPCServer.GracefulShutdownDelay) * time.Second)

		log.Info().Msg("Gracefully stopping gRPC server")
		grpcServer.GracefulStop()
		cancel()
	}()

	log.Info().Str("address", lis.Addr().String()).Msg("gRPC server listening")

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal().Err(err).Msg("Failed to serve")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Server shutdown complete")
}

// trainUntilSignal runs the trainer with progress logging. A signal on sigCh
// cancels training and is reported as interrupted; it is consumed, not
// forwarded to the shutdown handler.
func trainUntilSignal(ctx context.Context, trainer *training.Trainer, sigCh <-chan os.Signal) (training.Summary, bool, error) {
	trainCtx, stopTraining := context.WithCancel(ctx)
	defer stopTraining()

	received := make(chan struct{})
	go func() {
		select {
		case sig := <-sigCh:
			log.Info().Str("signal", sig.String()).Msg("Interrupting training")
			close(received)
			stopTraining()
		case <-trainCtx.Done():
		}
	}()

	trainer.Monitor().Start(progressInterval)
	defer trainer.Monitor().Stop()

	summary, err := trainer.Run(trainCtx)
	select {
	case <-received:
		return summary, true, nil
	default:
	}
	return summary, false, err
}

func setupLogging(level, format string) {
	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}
