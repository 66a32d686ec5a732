package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nathoo/abysscore/engine"
	"github.com/nathoo/abysscore/engine/save"
	"github.com/nathoo/abysscore/store"
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Start a fresh game in the save slot",
	Long: `Writes a new game to the configured slot. An existing save is kept
unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		defs, err := loadDefs(cfg)
		if err != nil {
			return fmt.Errorf("loading game: %w", err)
		}
		st, closeStore, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("opening saves: %w", err)
		}
		defer closeStore()

		ctx := cmd.Context()
		if !force {
			_, err := st.Load(ctx, cfg.Slot)
			if err == nil {
				return fmt.Errorf("slot %s already has a save (use --force to replace it)", cfg.Slot)
			}
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}

		eng := engine.New(defs, newSeed(cfg.Seed))
		if len(args) == 1 {
			eng.Command("name " + args[0])
		}
		data, err := save.Save(defs, eng.State, eng.RNG.Seed(), eng.RNG.Position())
		if err != nil {
			return err
		}
		if err := st.Save(ctx, cfg.Slot, data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "New game saved to %s (seed %d).\n", cfg.Slot, eng.RNG.Seed())
		return nil
	},
}

func init() {
	newCmd.Flags().Bool("force", false, "Replace an existing save")
	rootCmd.AddCommand(newCmd)
}
