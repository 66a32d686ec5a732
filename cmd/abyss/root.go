package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nathoo/abysscore/config"
	"github.com/nathoo/abysscore/content"
	"github.com/nathoo/abysscore/engine"
	"github.com/nathoo/abysscore/engine/save"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/loader"
	"github.com/nathoo/abysscore/store"
	"github.com/nathoo/abysscore/store/file"
	"github.com/nathoo/abysscore/store/sqlite"
)

var rootCmd = &cobra.Command{
	Use:   "abyss",
	Short: "Descend into the abyss and try to come back",
	Long: `Abyss is a single-player descent game. Each step down rolls an
encounter; the deeper you go the richer the loot and the harsher the curse
on the way back up.

Running abyss with no subcommand is the same as "abyss play".`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().String("config", "abyss.yaml", "Path to the YAML config file (missing is fine)")
	rootCmd.PersistentFlags().String("content", "", "Directory of Lua content (default: built-in content)")
	rootCmd.PersistentFlags().String("slot", "", "Save slot to use (default: from config)")
	addPlayFlags(rootCmd)
}

// loadConfig resolves the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if dir, _ := cmd.Flags().GetString("content"); dir != "" {
		cfg.ContentDir = dir
	}
	if slot, _ := cmd.Flags().GetString("slot"); slot != "" {
		cfg.Slot = slot
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func loadDefs(cfg config.Config) (*state.Defs, error) {
	if cfg.ContentDir == "" {
		return content.Default()
	}
	return loader.Load(cfg.ContentDir)
}

// openStore opens the configured save backend. The returned close func is
// never nil.
func openStore(cfg config.Config) (store.Store, func() error, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SavePath)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		dir, err := file.Open(cfg.SavePath)
		if err != nil {
			return nil, nil, err
		}
		return dir, func() error { return nil }, nil
	}
}

// resume restores the engine saved in slot, or starts a new game when the
// slot is empty.
func resume(ctx context.Context, defs *state.Defs, st store.Store, slot string, seed int64) (*engine.Engine, bool, error) {
	data, err := st.Load(ctx, slot)
	if errors.Is(err, store.ErrNotFound) {
		return engine.New(defs, newSeed(seed)), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	sd, err := save.Load(defs, data)
	if err != nil {
		return nil, false, fmt.Errorf("slot %s: %w", slot, err)
	}
	return engine.Resume(defs, sd.State, sd.RNGSeed, sd.RNGPosition), true, nil
}

func newSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
