package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/cojovi/ReplitRanchDefense/internal/game"
)

// ConfigName is the base name of the optional config file. Any extension
// viper understands (json, toml, yaml) is accepted.
const ConfigName = "ranch"

// EnvPrefix prefixes every environment override, e.g.
// RANCH_TUNING_PLAYER_MAXHEALTH=150.
const EnvPrefix = "RANCH"

var (
	ErrInvalidLogFormat  = errors.New("invalid log format")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrInvalidTuning     = errors.New("invalid tuning")
)

// AudioConfig controls the speaker collaborator.
type AudioConfig struct {
	Enabled bool    `json:"enabled" mapstructure:"enabled"`
	Volume  float64 `json:"volume" mapstructure:"volume"` // linear gain, 0..1
}

// SpectatorConfig controls the websocket snapshot feed.
type SpectatorConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Addr    string `json:"addr" mapstructure:"addr"`
	Path    string `json:"path" mapstructure:"path"`
	Buffer  int    `json:"buffer" mapstructure:"buffer"` // queued snapshots per client
}

// WindowConfig sizes the game window.
type WindowConfig struct {
	Width  int    `json:"width" mapstructure:"width"`
	Height int    `json:"height" mapstructure:"height"`
	Title  string `json:"title" mapstructure:"title"`
}

// Config is the full host configuration.
type Config struct {
	LogLevel   string          `json:"logLevel" mapstructure:"logLevel"`
	LogFormat  string          `json:"logFormat" mapstructure:"logFormat"` // console or json
	Seed       int64           `json:"seed" mapstructure:"seed"`           // 0 picks one from the wall clock
	Difficulty string          `json:"difficulty" mapstructure:"difficulty"`
	Verbose    bool            `json:"verbose" mapstructure:"verbose"`
	Audio      AudioConfig     `json:"audio" mapstructure:"audio"`
	Spectator  SpectatorConfig `json:"spectator" mapstructure:"spectator"`
	Window     WindowConfig    `json:"window" mapstructure:"window"`
	Tuning     game.Tuning     `json:"tuning" mapstructure:"tuning"`
}

// Load registers defaults, reads ranch.{json,toml,yaml} from configDir if
// present, applies RANCH_* environment overrides and decodes the result.
// A missing config file is not an error.
func Load(configDir string) (*Config, error) {
	if err := setDefaults(); err != nil {
		return nil, err
	}

	if configDir == "" {
		configDir = "."
	}
	viper.SetConfigName(ConfigName)
	viper.AddConfigPath(configDir)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := Default()
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:   "info",
		LogFormat:  "console",
		Difficulty: "normal",
		Audio:      AudioConfig{Enabled: true, Volume: 0.5},
		Spectator: SpectatorConfig{
			Enabled: false,
			Addr:    "127.0.0.1:8089",
			Path:    "/ws",
			Buffer:  4,
		},
		Window: WindowConfig{Width: 960, Height: 640, Title: "Ranch Defense"},
		Tuning: game.DefaultTuning(),
	}
}

// setDefaults registers every leaf of Default() so that env overrides reach
// nested tuning keys during Unmarshal.
func setDefaults() error {
	var m map[string]any
	if err := mapstructure.Decode(Default(), &m); err != nil {
		return fmt.Errorf("error building defaults: %w", err)
	}
	setDefaultTree("", m)
	return nil
}

func setDefaultTree(prefix string, m map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			setDefaultTree(key, sub)
			continue
		}
		viper.SetDefault(key, v)
	}
}

// Validate rejects values the hosts cannot run with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}
	if _, ok := game.ParseDifficulty(c.Difficulty); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidDifficulty, c.Difficulty)
	}
	t := c.Tuning
	switch {
	case t.MaxFrameDelta <= 0:
		return fmt.Errorf("%w: maxFrameDelta must be positive", ErrInvalidTuning)
	case t.Player.MaxHealth <= 0:
		return fmt.Errorf("%w: player.maxHealth must be positive", ErrInvalidTuning)
	case t.Projectile.HitRadius <= 0:
		return fmt.Errorf("%w: projectile.hitRadius must be positive", ErrInvalidTuning)
	case t.Spawner.MinDistance > t.Spawner.MaxDistance:
		return fmt.Errorf("%w: spawner.minDistance exceeds maxDistance", ErrInvalidTuning)
	}
	return nil
}

// DifficultyLevel returns the parsed difficulty. Validate has already
// rejected unknown names.
func (c *Config) DifficultyLevel() game.Difficulty {
	d, _ := game.ParseDifficulty(c.Difficulty)
	return d
}
