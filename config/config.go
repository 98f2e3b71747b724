// Package config loads start-up settings: defaults, then an optional YAML
// file, then .env and EPICQUEST_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all start-up settings. Command-line flags override it.
type Config struct {
	Hero        HeroConfig    `yaml:"hero"`
	Seed        int64         `yaml:"seed"`
	BalanceFile string        `yaml:"balance_file"`
	Delays      DelayConfig   `yaml:"delays"`
	Logging     LoggingConfig `yaml:"logging"`
}

// HeroConfig names the hero. Empty means the TUI asks.
type HeroConfig struct {
	Name string `yaml:"name" validate:"max=40"`
}

// DelayConfig holds the TUI's pause between starting and resolving an action.
type DelayConfig struct {
	FightMS   int `yaml:"fight_ms" validate:"gte=0,lte=10000"`
	ExploreMS int `yaml:"explore_ms" validate:"gte=0,lte=10000"`
}

// LoggingConfig controls the rotated log file.
type LoggingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Level      string `yaml:"level" validate:"oneof=DEBUG INFO WARN WARNING ERROR"`
	Format     string `yaml:"format" validate:"oneof=text json"`
	File       string `yaml:"file" validate:"required_if=Enabled true"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=1"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" validate:"gte=0"`
}

// Environment variables read by Load.
const (
	EnvHero      = "EPICQUEST_HERO"
	EnvSeed      = "EPICQUEST_SEED"
	EnvBalance   = "EPICQUEST_BALANCE"
	EnvFightMS   = "EPICQUEST_FIGHT_MS"
	EnvExploreMS = "EPICQUEST_EXPLORE_MS"
	EnvLogLevel  = "EPICQUEST_LOG_LEVEL"
	EnvLogFile   = "EPICQUEST_LOG_FILE"
)

var validate = validator.New()

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Delays: DelayConfig{
			FightMS:   1500,
			ExploreMS: 1000,
		},
		Logging: LoggingConfig{
			Enabled:    false,
			Level:      "INFO",
			Format:     "text",
			File:       "epicquest.log",
			MaxSizeMB:  5,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load builds the configuration. A missing YAML file or .env file is not an
// error; an explicitly named file that fails to parse is. envFiles defaults
// to ".env" in the working directory.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Defaults.
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field; all violations are reported together.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q (%v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config:\n  %s", strings.Join(msgs, "\n  "))
}

// FightDelay is the pause between beginning and resolving a fight.
func (c *Config) FightDelay() time.Duration {
	return time.Duration(c.Delays.FightMS) * time.Millisecond
}

// ExploreDelay is the pause between beginning and resolving an exploration.
func (c *Config) ExploreDelay() time.Duration {
	return time.Duration(c.Delays.ExploreMS) * time.Millisecond
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvHero); ok {
		cfg.Hero.Name = v
	}
	if v, ok := os.LookupEnv(EnvBalance); ok {
		cfg.BalanceFile = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok && v != "" {
		cfg.Logging.File = v
		cfg.Logging.Enabled = true
	}

	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if err := envInt(EnvFightMS, &cfg.Delays.FightMS); err != nil {
		return err
	}
	return envInt(EnvExploreMS, &cfg.Delays.ExploreMS)
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s value: %w", key, err)
	}
	*dst = n
	return nil
}
