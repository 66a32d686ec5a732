// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the abyss.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/nathoo/abysscore/engine"
	"github.com/nathoo/abysscore/engine/rng"
	"github.com/nathoo/abysscore/engine/save"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/session"
	"github.com/nathoo/abysscore/store"
	"github.com/nathoo/abysscore/types"
	"gopkg.in/yaml.v3"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Session   *session.Session
	Defs      *state.Defs
	Store     store.Store // nil disables /save, /load and /slots
	Slot      string
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given session.
func New(s *session.Session, defs *state.Defs, st store.Store, slot string) *CLI {
	return &CLI{
		Session: s,
		Defs:    defs,
		Store:   st,
		Slot:    slot,
		In:      os.Stdin,
		Out:     os.Stdout,
	}
}

// Run shows the intro, then loops: prompt → input → dispatch → output.
// It returns when input ends, the player quits, or the session stops.
func (c *CLI) Run(ctx context.Context) error {
	if c.Defs.Game.Intro != "" {
		c.printLine(c.Defs.Game.Intro)
		c.printLine("")
	}
	if err := c.command(ctx, "look"); err != nil {
		return err
	}

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			quit, err := c.handleMeta(ctx, input)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		switch strings.ToLower(input) {
		case "inventory", "inv", "i", "pack":
			err := c.inventoryTable(ctx)
			if err != nil {
				return err
			}
			continue
		}
		if err := c.command(ctx, input); err != nil {
			return err
		}
	}
}

func (c *CLI) command(ctx context.Context, input string) error {
	res, err := c.Session.Command(ctx, input)
	if err != nil {
		return err
	}
	c.printResult(res)
	if c.Trace && res.Rejected {
		c.printSystem("trace: rejected")
	}
	return nil
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(ctx context.Context, input string) (bool, error) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	var err error
	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true, nil

	case "/save":
		err = c.cmdSave(ctx, arg)

	case "/load":
		err = c.cmdLoad(ctx, arg)

	case "/slots":
		err = c.cmdSlots(ctx)

	case "/help":
		c.cmdHelp()

	case "/state":
		err = c.cmdState(ctx)

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false, err
}

func (c *CLI) slot(name string) string {
	if name == "" {
		return c.Slot
	}
	return name
}

// cmdSave and cmdLoad report their own failures; only session errors are
// returned.
func (c *CLI) cmdSave(ctx context.Context, name string) error {
	if c.Store == nil {
		c.printSystem("Saving is disabled.")
		return nil
	}
	name = c.slot(name)

	var data []byte
	var encErr error
	if _, err := c.Session.Exec(ctx, func(e *engine.Engine) types.Result {
		data, encErr = save.Save(e.Defs, e.State, e.RNG.Seed(), e.RNG.Position())
		return types.Result{}
	}); err != nil {
		return err
	}
	if encErr != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", encErr))
		return nil
	}
	if err := c.Store.Save(ctx, name, data); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return nil
	}
	c.printSystem(fmt.Sprintf("Game saved to %s.", name))
	return nil
}

func (c *CLI) cmdLoad(ctx context.Context, name string) error {
	if c.Store == nil {
		c.printSystem("Saving is disabled.")
		return nil
	}
	name = c.slot(name)

	data, err := c.Store.Load(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		c.printSystem(fmt.Sprintf("No save named %s.", name))
		return nil
	}
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return nil
	}
	sd, err := save.Load(c.Defs, data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return nil
	}

	if _, err := c.Session.Exec(ctx, func(e *engine.Engine) types.Result {
		e.State = sd.State
		e.RNG = rng.Restore(sd.RNGSeed, sd.RNGPosition)
		return types.Result{}
	}); err != nil {
		return err
	}
	c.printSystem(fmt.Sprintf("Game loaded from %s.", name))

	return c.command(ctx, "look")
}

func (c *CLI) cmdSlots(ctx context.Context) error {
	if c.Store == nil {
		c.printSystem("Saving is disabled.")
		return nil
	}
	slots, err := c.Store.List(ctx)
	if err != nil {
		c.printSystem(fmt.Sprintf("Listing saves failed: %v", err))
		return nil
	}
	if len(slots) == 0 {
		c.printSystem("No saves yet.")
		return nil
	}
	for _, s := range slots {
		c.printLine("  " + s)
	}
	return nil
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [slot]  Save game (default: current slot)",
		"  /load [slot]  Load game (default: current slot)",
		"  /slots        List saved games",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Debug: dump current state",
		"  /trace        Toggle debug trace output",
		"",
		"Type 'help' for game commands. 'again' (g) repeats the last one.",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

// cmdState dumps the full state as YAML.
func (c *CLI) cmdState(ctx context.Context) error {
	var snap types.GameState
	if _, err := c.Session.Exec(ctx, func(e *engine.Engine) types.Result {
		snap = e.Snapshot()
		return types.Result{}
	}); err != nil {
		return err
	}
	out, err := yaml.Marshal(snap)
	if err != nil {
		return err
	}
	c.print(string(out))
	return nil
}

func (c *CLI) inventoryTable(ctx context.Context) error {
	var snap types.GameState
	if _, err := c.Session.Exec(ctx, func(e *engine.Engine) types.Result {
		snap = e.Snapshot()
		return types.Result{}
	}); err != nil {
		return err
	}
	c.printLine(InventoryTable(c.Defs, snap))
	return nil
}

// InventoryTable renders equipment and pack contents as a table.
func InventoryTable(defs *state.Defs, s types.GameState) string {
	var rows [][]string
	for _, slot := range []string{types.SlotWeapon, types.SlotBody, types.SlotCharm} {
		if inst, ok := s.Equipment[slot]; ok && inst.ID != "" {
			rows = append(rows, []string{inst.Name, "equipped (" + slot + ")", "1", "-"})
		}
	}
	for _, st := range s.Inventory {
		it, ok := state.Item(defs, st.ID)
		if !ok {
			rows = append(rows, []string{st.ID, "?", fmt.Sprint(st.Count), "-"})
			continue
		}
		rows = append(rows, []string{it.Name, it.Category, fmt.Sprint(st.Count), fmt.Sprint(it.Price)})
	}
	if len(rows) == 0 {
		return "Your pack is empty."
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderHeader(true).
		BorderRow(false).
		Headers("Item", "Kind", "Qty", "Price").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Inherit(cellStyle)
			}
			return cellStyle
		})
	return t.Render()
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
