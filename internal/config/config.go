package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Agent       AgentConfig       `mapstructure:"agent"`
	Training    TrainingConfig    `mapstructure:"training"`
	Play        PlayConfig        `mapstructure:"play"`
	Server      ServerConfig      `mapstructure:"server"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds board and rule settings
type GameConfig struct {
	Holes          int    `mapstructure:"holes"`
	InitialBeads   int    `mapstructure:"initial_beads"`
	MaxRelayPasses int    `mapstructure:"max_relay_passes"`
	TurnPolicy     string `mapstructure:"turn_policy"`
}

// AgentConfig holds Q-learning hyper-parameters
type AgentConfig struct {
	Alpha   float64 `mapstructure:"alpha"`
	Epsilon float64 `mapstructure:"epsilon"`
}

// TrainingConfig holds self-play settings
type TrainingConfig struct {
	Episodes       int     `mapstructure:"episodes"`
	Seed           int64   `mapstructure:"seed"`
	MaxTurns       int     `mapstructure:"max_turns"`
	LogEvery       int     `mapstructure:"log_every"`
	RewardScheme   string  `mapstructure:"reward_scheme"`
	WinReward      float64 `mapstructure:"win_reward"`
	LoseReward     float64 `mapstructure:"lose_reward"`
	StepReward     float64 `mapstructure:"step_reward"`
	BufferCapacity int     `mapstructure:"buffer_capacity"`
	ReplayBatch    int     `mapstructure:"replay_batch"`
}

// PlayConfig holds interactive match settings
type PlayConfig struct {
	HumanPlayer int    `mapstructure:"human_player"`
	AIDelayMs   int    `mapstructure:"ai_delay_ms"`
	RenderStyle string `mapstructure:"render_style"`
}

// ServerConfig holds logging and gRPC server configuration
type ServerConfig struct {
	LogLevel   string           `mapstructure:"log_level"`
	LogFormat  string           `mapstructure:"log_format"`
	GRPCServer GRPCServerConfig `mapstructure:"grpc_server"`
}

// GRPCServerConfig holds gRPC server configuration
type GRPCServerConfig struct {
	Host                  string `mapstructure:"host"`
	Port                  int    `mapstructure:"port"`
	EnableReflection      bool   `mapstructure:"enable_reflection"`
	GracefulShutdownDelay int    `mapstructure:"graceful_shutdown_delay"`
}

// DevelopmentConfig holds development settings
type DevelopmentConfig struct {
	LogEvents bool `mapstructure:"log_events"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

var (
	turnPolicies  = []string{"always_switch", "store_bonus"}
	rewardSchemes = []string{"reference", "outcome"}
	renderStyles  = []string{"stars", "numeric"}
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.holes", 6)
	v.SetDefault("game.initial_beads", 4)
	v.SetDefault("game.max_relay_passes", 10000)
	v.SetDefault("game.turn_policy", "always_switch")

	// Agent defaults
	v.SetDefault("agent.alpha", 0.5)
	v.SetDefault("agent.epsilon", 0.1)

	// Training defaults
	v.SetDefault("training.episodes", 10000)
	v.SetDefault("training.seed", 0)
	v.SetDefault("training.max_turns", 1000)
	v.SetDefault("training.log_every", 1000)
	v.SetDefault("training.reward_scheme", "reference")
	v.SetDefault("training.win_reward", 1.0)
	v.SetDefault("training.lose_reward", -1.0)
	v.SetDefault("training.step_reward", 0.0)
	v.SetDefault("training.buffer_capacity", 10000)
	v.SetDefault("training.replay_batch", 0)

	// Play defaults
	v.SetDefault("play.human_player", -1)
	v.SetDefault("play.ai_delay_ms", 1000)
	v.SetDefault("play.render_style", "stars")

	// Server defaults
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "console")
	v.SetDefault("server.grpc_server.host", "0.0.0.0")
	v.SetDefault("server.grpc_server.port", 50061)
	v.SetDefault("server.grpc_server.enable_reflection", true)
	v.SetDefault("server.grpc_server.graceful_shutdown_delay", 5)

	// Development defaults
	v.SetDefault("development.log_events", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/mancala-rl")
	}

	v.SetEnvPrefix("MANCALA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing explicit file falls back to defaults; for the search
		// paths only ConfigFileNotFoundError is tolerated.
		var notFound viper.ConfigFileNotFoundError
		if configPath == "" && !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		panic("config not initialized - call config.Init() first")
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml from the working directory
// or ./config over the loaded configuration.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s", env)
	v.SetConfigName(envFile)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}
	return Validate(cfg)
}

// Set overrides key at runtime and refreshes the typed config. A value that
// does not decode or fails validation is rolled back and reported.
func Set(key string, value interface{}) error {
	prev := v.Get(key)
	v.Set(key, value)

	next := &Config{}
	err := v.Unmarshal(next)
	if err == nil {
		err = Validate(next)
	}
	if err != nil {
		v.Set(key, prev)
		return fmt.Errorf("set %s: %w", key, err)
	}
	cfg = next
	return nil
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// GetFloat64 gets a float64 value from config
func GetFloat64(key string) float64 {
	return v.GetFloat64(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange receives
// the reloaded config, or the validation error when the new file is rejected;
// a rejected file leaves the previous config in place.
func WatchConfig(onChange func(*Config, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			notify(onChange, nil, fmt.Errorf("reload %s: %w", e.Name, err))
			return
		}
		if err := Validate(next); err != nil {
			notify(onChange, nil, fmt.Errorf("reload %s: %w", e.Name, err))
			return
		}
		cfg = next
		notify(onChange, next, nil)
	})
	v.WatchConfig()
}

func notify(onChange func(*Config, error), c *Config, err error) {
	if onChange != nil {
		onChange(c, err)
	}
}

// Validate validates the configuration values
func Validate(c *Config) error {
	// Game
	if c.Game.Holes < 1 {
		return fmt.Errorf("game.holes must be at least 1")
	}
	if c.Game.InitialBeads < 1 {
		return fmt.Errorf("game.initial_beads must be at least 1")
	}
	if c.Game.MaxRelayPasses < 1 {
		return fmt.Errorf("game.max_relay_passes must be positive")
	}
	if !oneOf(c.Game.TurnPolicy, turnPolicies) {
		return fmt.Errorf("game.turn_policy must be one of %v, got %q", turnPolicies, c.Game.TurnPolicy)
	}

	// Agent
	if c.Agent.Alpha <= 0 || c.Agent.Alpha > 1 {
		return fmt.Errorf("agent.alpha must be in (0, 1]")
	}
	if c.Agent.Epsilon < 0 || c.Agent.Epsilon > 1 {
		return fmt.Errorf("agent.epsilon must be between 0 and 1")
	}

	// Training
	if c.Training.Episodes < 0 {
		return fmt.Errorf("training.episodes must be non-negative")
	}
	if c.Training.MaxTurns < 1 {
		return fmt.Errorf("training.max_turns must be at least 1")
	}
	if c.Training.LogEvery < 0 {
		return fmt.Errorf("training.log_every must be non-negative")
	}
	if !oneOf(c.Training.RewardScheme, rewardSchemes) {
		return fmt.Errorf("training.reward_scheme must be one of %v, got %q", rewardSchemes, c.Training.RewardScheme)
	}
	if c.Training.BufferCapacity < 1 {
		return fmt.Errorf("training.buffer_capacity must be at least 1")
	}
	if c.Training.ReplayBatch < 0 {
		return fmt.Errorf("training.replay_batch must be non-negative")
	}

	// Play
	if c.Play.HumanPlayer < -1 || c.Play.HumanPlayer > 1 {
		return fmt.Errorf("play.human_player must be -1, 0 or 1")
	}
	if c.Play.AIDelayMs < 0 {
		return fmt.Errorf("play.ai_delay_ms must be non-negative")
	}
	if !oneOf(c.Play.RenderStyle, renderStyles) {
		return fmt.Errorf("play.render_style must be one of %v, got %q", renderStyles, c.Play.RenderStyle)
	}

	// Server
	if c.Server.GRPCServer.Port <= 0 || c.Server.GRPCServer.Port > 65535 {
		return fmt.Errorf("server.grpc_server.port must be between 1 and 65535")
	}
	if c.Server.GRPCServer.GracefulShutdownDelay < 0 {
		return fmt.Errorf("server.grpc_server.graceful_shutdown_delay must be non-negative")
	}

	return nil
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
