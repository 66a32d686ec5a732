package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusDanger = styleStatusBar.
				Foreground(lipgloss.Color("203"))

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("209"))

	styleGain = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleDialogue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindCombat
	kindGain
	kindDialogue
	kindSystem
	kindError
	kindTrace
	kindInput
)

// classifyLine determines what kind of output line this is. Rejected
// results are styled as errors by the caller.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "You died"),
		strings.HasPrefix(line, "You starved"),
		strings.HasPrefix(line, "You were slain"),
		strings.HasPrefix(line, "You are starving"),
		strings.HasPrefix(line, "The curse grips you"):
		return kindError
	case strings.HasPrefix(line, "Victory"),
		strings.HasPrefix(line, "Level up!"),
		strings.HasPrefix(line, "Looted"),
		strings.HasPrefix(line, "You found"),
		strings.HasPrefix(line, "Bought"),
		strings.HasPrefix(line, "Sold"),
		strings.HasPrefix(line, "Crafted"),
		strings.HasPrefix(line, "Appraisal complete"):
		return kindGain
	case strings.HasPrefix(line, "You deal"),
		strings.HasPrefix(line, "You take"),
		strings.HasSuffix(line, "blocks the way!"),
		strings.Contains(line, "strikes!"),
		strings.HasSuffix(line, "was defeated!"):
		return kindCombat
	case strings.HasSuffix(line, " offers:"), strings.HasPrefix(line, "  "):
		return kindDialogue
	default:
		return kindNarrative
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindCombat:
		return styleCombat.Render(line)
	case kindGain:
		return styleGain.Render(line)
	case kindDialogue:
		return styleDialogue.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	case kindInput:
		return stylePlayerInput.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}
