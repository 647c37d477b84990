// Package config provides Viper-based configuration loading for the
// adventure game.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// NarratorConfig holds the LLM narration settings. Narration is optional;
// with Enabled false the game runs entirely on deterministic text.
type NarratorConfig struct {
	// Enabled turns LLM narration on. Requires APIKey when true.
	Enabled bool `mapstructure:"enabled"`
	// APIKey is the Anthropic API key. Usually supplied via the
	// DNDGAME_NARRATOR_API_KEY environment variable rather than the file.
	APIKey string `mapstructure:"api_key"`
	// Model is the model identifier to narrate with.
	Model string `mapstructure:"model"`
	// Timeout bounds each narration call; on expiry the fallback text is used.
	Timeout time.Duration `mapstructure:"timeout"`
}

// GameConfig holds gameplay content settings.
type GameConfig struct {
	// ContentDir points at a directory of YAML content tables
	// (races/, weapons/, spells/, enemies/). Empty uses the compiled-in
	// defaults.
	ContentDir string `mapstructure:"content_dir"`
	// BaseHP is the pre-modifier hit point base for new characters.
	BaseHP int `mapstructure:"base_hp"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Narrator NarratorConfig `mapstructure:"narrator"`
	Game     GameConfig     `mapstructure:"game"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateNarrator(c.Narrator); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateNarrator(n NarratorConfig) error {
	if !n.Enabled {
		return nil
	}
	var errs []string
	if n.APIKey == "" {
		errs = append(errs, "narrator.api_key must not be empty when narrator.enabled is true")
	}
	if n.Model == "" {
		errs = append(errs, "narrator.model must not be empty when narrator.enabled is true")
	}
	if n.Timeout <= 0 {
		errs = append(errs, fmt.Sprintf("narrator.timeout must be > 0, got %s", n.Timeout))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	if g.BaseHP < 1 {
		return fmt.Errorf("game.base_hp must be >= 1, got %d", g.BaseHP)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. A missing file is not an
// error; defaults and environment variables apply alone.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with DNDGAME_ prefix
	v.SetEnvPrefix("DNDGAME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("narrator.enabled", false)
	v.SetDefault("narrator.api_key", "")
	v.SetDefault("narrator.model", "claude-sonnet-4-5")
	v.SetDefault("narrator.timeout", "5s")

	v.SetDefault("game.content_dir", "")
	v.SetDefault("game.base_hp", 10)
}
