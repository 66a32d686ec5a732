package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/nathoo/abysscore/cli"
	"github.com/nathoo/abysscore/config"
	"github.com/nathoo/abysscore/engine"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/session"
	"github.com/nathoo/abysscore/store"
	"github.com/nathoo/abysscore/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the saved game, or start one if the slot is empty",
	Long: `Resumes the game in the configured save slot. The full-screen UI is
used when stdout is a terminal; --cli or a piped stdout falls back to the
line-oriented interface. --script replays commands from a file.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
	rootCmd.AddCommand(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("cli", false, "Use the plain line interface")
	cmd.Flags().String("script", "", "Replay commands from a file (implies --cli)")
	cmd.Flags().Bool("trace", false, "Print trace output after each command")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	plain, _ := cmd.Flags().GetBool("cli")
	script, _ := cmd.Flags().GetString("script")
	trace, _ := cmd.Flags().GetBool("trace")

	defs, err := loadDefs(cfg)
	if err != nil {
		return fmt.Errorf("loading game: %w", err)
	}
	st, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening saves: %w", err)
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	eng, resumed, err := resume(ctx, defs, st, cfg.Slot, cfg.Seed)
	if err != nil {
		return err
	}

	if script == "" && !plain && isTerminal() {
		return playTUI(eng, st, cfg, resumed)
	}
	return playCLI(ctx, cmd, eng, defs, st, cfg, script, trace)
}

// playTUI logs to a file since the terminal belongs to the UI.
func playTUI(eng *engine.Engine, st store.Store, cfg config.Config, resumed bool) error {
	logFile, err := os.OpenFile("abyss.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger, err := newLogger(logFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.Info("starting", "slot", cfg.Slot, "resumed", resumed, "backend", cfg.Backend)

	return tui.Run(eng, tui.Options{
		Store:            st,
		Slot:             cfg.Slot,
		PassiveTick:      cfg.PassiveTick,
		FastTick:         cfg.FastTick,
		AutosaveInterval: cfg.AutosaveInterval,
		Logger:           logger,
	})
}

func playCLI(ctx context.Context, cmd *cobra.Command, eng *engine.Engine, defs *state.Defs, st store.Store, cfg config.Config, script string, trace bool) error {
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	sess := session.New(eng, st, session.LogPublisher{Logger: logger}, logger, session.Config{
		Slot:             cfg.Slot,
		PassiveTick:      cfg.PassiveTick,
		FastTick:         cfg.FastTick,
		AutosaveInterval: cfg.AutosaveInterval,
		PresenceInterval: cfg.PresenceInterval,
	})
	sessCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- sess.Run(sessCtx) }()

	g := defs.Game
	fmt.Fprintf(cmd.OutOrStdout(), "%s v%s by %s\n\n", g.Title, g.Version, g.Author)
	c := cli.New(sess, defs, st, cfg.Slot)
	c.Out = cmd.OutOrStdout()
	c.Trace = trace
	if script != "" {
		f, err := os.Open(script)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		c.In = f
		c.EchoInput = true
	}

	runErr := c.Run(sessCtx)
	// Stopping the session flushes the final save.
	cancel()
	if err := <-errc; err != nil {
		return fmt.Errorf("final save: %w", err)
	}
	return runErr
}
