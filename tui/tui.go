package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/nathoo/abysscore/cli"
	"github.com/nathoo/abysscore/engine"
	"github.com/nathoo/abysscore/engine/action"
	"github.com/nathoo/abysscore/engine/rng"
	"github.com/nathoo/abysscore/engine/save"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/store"
	"github.com/nathoo/abysscore/types"
)

// Options configures persistence and tick cadence. A zero duration
// disables that tick.
type Options struct {
	Store            store.Store // nil disables saving
	Slot             string
	PassiveTick      time.Duration
	FastTick         time.Duration
	AutosaveInterval time.Duration
	Logger           *slog.Logger
}

// rawLine is kept unstyled so a resize can re-wrap the whole scrollback.
type rawLine struct {
	text string
	kind lineKind
}

// Model is the Bubble Tea model for the abyss. Update is the only writer
// of the engine, so ticks and commands never race.
type Model struct {
	engine *engine.Engine
	defs   *state.Defs
	opts   Options
	logger *slog.Logger

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	dirty    bool // state changed since the last save
	lastCmd  string
}

// gameOutputMsg carries output into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro and ticks)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
	rejected bool     // styles every line as an error
}

type tickKind int

const (
	tickPassive tickKind = iota
	tickFast
	tickAutosave
)

// tickMsg fires on one of the three cadences.
type tickMsg struct{ kind tickKind }

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	if opts.Slot == "" {
		opts.Slot = "main"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		engine:  eng,
		defs:    eng.Defs,
		opts:    opts,
		logger:  logger,
		input:   ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program and saves once more on exit.
func Run(eng *engine.Engine, opts Options) error {
	p := tea.NewProgram(New(eng, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.dirty {
		if err := m.save(m.opts.Slot); err != nil {
			return fmt.Errorf("final save: %w", err)
		}
	}
	return nil
}

// Init produces the intro and first look, then starts the tick cadences.
func (m Model) Init() tea.Cmd {
	g := m.defs.Game
	lines := []string{g.Title}
	if g.Version != "" {
		lines[0] += " v" + g.Version
	}
	if g.Author != "" {
		lines[0] += " by " + g.Author
	}
	lines = append(lines, "")
	if g.Intro != "" {
		lines = append(lines, g.Intro, "")
	}
	lines = append(lines, m.engine.Look()...)

	return tea.Batch(
		textinput.Blink,
		func() tea.Msg { return gameOutputMsg{lines: lines} },
		schedule(tickPassive, m.opts.PassiveTick),
		schedule(tickFast, m.opts.FastTick),
		schedule(tickAutosave, m.opts.AutosaveInterval),
	)
}

func schedule(kind tickKind, every time.Duration) tea.Cmd {
	if every <= 0 {
		return nil
	}
	return tea.Tick(every, func(time.Time) tea.Msg { return tickMsg{kind: kind} })
}

// Update handles messages (key presses, window resize, ticks, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	case tickMsg:
		return m.handleTick(msg)
	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// resize leaves one line each for the status bar and the input.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	vpHeight := max(height-2, 1)

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.viewport.KeyMap = viewportKeyMap()
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.refreshViewport()
}

// handleKey reports handled=false for keys the text input should see.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit, true

	case "enter":
		next, cmd := m.handleEnter()
		return next, cmd, true

	case "up":
		if prev, ok := m.history.Prev(); ok {
			m.input.SetValue(prev)
			m.input.CursorEnd()
		}
		return m, nil, true

	case "down":
		next, ok := m.history.Next()
		m.input.SetValue(next)
		if ok {
			m.input.CursorEnd()
		}
		return m, nil, true

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

// handleTick advances time or autosaves, then schedules the next tick.
func (m Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case tickPassive:
		m = m.step(action.TickPassive{})
		return m, schedule(tickPassive, m.opts.PassiveTick)

	case tickFast:
		m = m.step(action.TickFast{})
		return m, schedule(tickFast, m.opts.FastTick)

	default:
		if m.dirty && m.opts.Store != nil {
			if err := m.save(m.opts.Slot); err != nil {
				m.logger.Warn("autosave failed", "slot", m.opts.Slot, "error", err)
			} else {
				m.dirty = false
			}
		}
		return m, schedule(tickAutosave, m.opts.AutosaveInterval)
	}
}

func (m Model) step(a action.Action) Model {
	res := m.engine.Step(a)
	m.dirty = true
	if len(res.Output) == 0 {
		return m
	}
	return m.appendOutput(gameOutputMsg{lines: res.Output, rejected: res.Rejected})
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Handle "again" / "g".
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(gameOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else if !strings.HasPrefix(input, "/") {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch strings.ToLower(input) {
	case "inventory", "inv", "i", "pack":
		table := cli.InventoryTable(m.defs, m.engine.State)
		m = m.appendOutput(gameOutputMsg{input: input, lines: strings.Split(table, "\n")})
		return m, nil
	}

	// Game command.
	result := m.engine.Command(input)
	m.dirty = true
	output := result.Output
	if m.trace {
		output = append(output, m.formatTrace(result)...)
	}
	m = m.appendOutput(gameOutputMsg{input: input, lines: output, rejected: result.Rejected})
	return m, nil
}

// appendOutput adds one turn to the scrollback and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{text: "> " + msg.input, kind: kindInput})
	}
	for _, line := range msg.lines {
		m.rawLines = append(m.rawLines, rawLine{text: line, kind: msg.kindOf(line)})
	}
	m.rawLines = append(m.rawLines, rawLine{}) // turn separator

	m.refreshViewport()
	return m
}

func (msg gameOutputMsg) kindOf(line string) lineKind {
	switch kind := classifyLine(line); {
	case msg.isSystem:
		return kindSystem
	case msg.rejected && kind != kindTrace:
		return kindError
	default:
		return kind
	}
}

// refreshViewport re-wraps every stored line at the current width.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	width := max(m.width, 10)

	styled := make([]string, len(m.rawLines))
	for i, rl := range m.rawLines {
		if rl.text != "" {
			styled[i] = renderLineKind(wordWrap(rl.text, width), rl.kind)
		}
	}
	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Leading indentation is kept on the first line.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	indent := text[:len(text)-len(strings.TrimLeft(text, " "))]

	var result strings.Builder
	result.WriteString(indent)
	lineLen := len(indent)

	for i, word := range strings.Fields(text) {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen += wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/save":
		return m.cmdSave(arg), false

	case "/load":
		return m.cmdLoad(arg), false

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) slot(name string) string {
	if name == "" {
		return m.opts.Slot
	}
	return name
}

func (m *Model) save(slot string) error {
	if m.opts.Store == nil {
		return errors.New("saving is disabled")
	}
	data, err := save.Save(m.defs, m.engine.State, m.engine.RNG.Seed(), m.engine.RNG.Position())
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.opts.Store.Save(ctx, slot, data)
}

func (m *Model) cmdSave(name string) []string {
	name = m.slot(name)
	if err := m.save(name); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}
	if name == m.opts.Slot {
		m.dirty = false
	}
	return []string{fmt.Sprintf("Game saved to %s.", name)}
}

func (m *Model) cmdLoad(name string) []string {
	if m.opts.Store == nil {
		return []string{"Load failed: saving is disabled"}
	}
	name = m.slot(name)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	data, err := m.opts.Store.Load(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return []string{fmt.Sprintf("Load failed: no save named %s", name)}
	}
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	sd, err := save.Load(m.defs, data)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}
	m.engine.State = sd.State
	m.engine.RNG = rng.Restore(sd.RNGSeed, sd.RNGPosition)
	m.dirty = false

	output := []string{fmt.Sprintf("Game loaded from %s (%dm).", name, sd.State.Player.Depth)}
	return append(output, m.engine.Look()...)
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /save [slot]  Save game (default: current slot)",
		"  /load [slot]  Load game (default: current slot)",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Debug: dump current state",
		"  /trace        Toggle debug trace output",
		"",
		"Game commands:",
		"  descend [m] (d), ascend [m] (u)",
		"  fight, attack (a), flee, tame, wait, leave",
		"  talk <option>, buy/sell/use/equip/unequip <item>",
		"  craft <item>, appraise [relic], upgrade <machine>",
		"  deploy, refuel <scrap|canister>, install, collect",
		"  transform, respawn, name <name>",
		"  status, inventory (i), look, forecast",
		"  again (g)     Repeat your last command",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

// cmdState dumps the full state as YAML.
func (m *Model) cmdState() []string {
	out, err := yaml.Marshal(m.engine.Snapshot())
	if err != nil {
		return []string{fmt.Sprintf("State dump failed: %v", err)}
	}
	return strings.Split(strings.TrimRight(string(out), "\n"), "\n")
}

func (m *Model) formatTrace(result types.Result) []string {
	p := m.engine.State.Player
	return []string{
		fmt.Sprintf("[trace] rejected=%v lines=%d", result.Rejected, len(result.Output)),
		fmt.Sprintf("[trace] depth=%d hp=%d food=%d rng=%d", p.Depth, p.HP, p.Hunger, m.engine.RNG.Position()),
	}
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
