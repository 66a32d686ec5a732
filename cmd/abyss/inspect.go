package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nathoo/abysscore/cli"
	"github.com/nathoo/abysscore/engine"
	"github.com/nathoo/abysscore/engine/save"
	"github.com/nathoo/abysscore/store"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [slot...]",
	Short: "Print a summary of saved games",
	Long: `Prints status and inventory for each slot, or every saved slot when
none are named. --yaml dumps the full state instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		asYAML, _ := cmd.Flags().GetBool("yaml")

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
		slots := args
		if len(slots) == 0 {
			if slots, err = st.List(ctx); err != nil {
				return err
			}
		}
		if len(slots) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saves yet.")
			return nil
		}

		out := cmd.OutOrStdout()
		for _, slot := range slots {
			data, err := st.Load(ctx, slot)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no save named %s", slot)
			}
			if err != nil {
				return err
			}
			sd, err := save.Load(defs, data)
			if err != nil {
				return fmt.Errorf("slot %s: %w", slot, err)
			}

			fmt.Fprintf(out, "== %s (saved %s) ==\n", slot, sd.SavedAt.Local().Format(time.DateTime))
			if asYAML {
				b, err := yaml.Marshal(sd.State)
				if err != nil {
					return err
				}
				fmt.Fprint(out, string(b))
				continue
			}
			eng := engine.Resume(defs, sd.State, sd.RNGSeed, sd.RNGPosition)
			fmt.Fprintln(out, strings.Join(eng.Status(), "\n"))
			fmt.Fprintln(out, cli.InventoryTable(defs, sd.State))
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().Bool("yaml", false, "Dump the full state as YAML")
	rootCmd.AddCommand(inspectCmd)
}
