// Package config resolves runtime settings from defaults, an optional YAML
// file, and ABYSS_ environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "ABYSS_"

// Save backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds every runtime setting.
type Config struct {
	Backend string `yaml:"backend" env:"BACKEND"`
	// SavePath is a directory for the file backend and a database file
	// for sqlite.
	SavePath   string `yaml:"save_path" env:"SAVE_PATH"`
	Slot       string `yaml:"slot" env:"SLOT"`
	ContentDir string `yaml:"content_dir" env:"CONTENT_DIR"` // empty: embedded content
	Seed       int64  `yaml:"seed" env:"SEED"`               // 0: time-based

	PassiveTick      time.Duration `yaml:"passive_tick" env:"PASSIVE_TICK"`
	FastTick         time.Duration `yaml:"fast_tick" env:"FAST_TICK"`
	AutosaveInterval time.Duration `yaml:"autosave_interval" env:"AUTOSAVE_INTERVAL"`
	PresenceInterval time.Duration `yaml:"presence_interval" env:"PRESENCE_INTERVAL"`

	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Backend:          BackendFile,
		SavePath:         "saves",
		Slot:             "main",
		PassiveTick:      10 * time.Second,
		FastTick:         250 * time.Millisecond,
		AutosaveInterval: 5 * time.Second,
		PresenceInterval: 30 * time.Second,
		LogLevel:         "info",
	}
}

// Load resolves the configuration. A missing file at path is not an error;
// an empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the drivers cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Backend != BackendFile && c.Backend != BackendSQLite {
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	if c.SavePath == "" {
		errs = append(errs, errors.New("save_path is required"))
	}
	if c.Slot == "" {
		errs = append(errs, errors.New("slot is required"))
	}
	for name, d := range map[string]time.Duration{
		"passive_tick":      c.PassiveTick,
		"fast_tick":         c.FastTick,
		"autosave_interval": c.AutosaveInterval,
		"presence_interval": c.PresenceInterval,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", name))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
