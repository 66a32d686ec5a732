package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nathoo/abysscore/engine/depth"
)

// renderStatusBar produces a full-width inverted status line showing the
// current layer and depth on the left and vitals on the right. The bar
// turns red while the player is dead, starving or in combat.
func (m Model) renderStatusBar() string {
	s := m.engine.State
	p := s.Player

	left := fmt.Sprintf(" %s | %dm (max %dm)", depth.LayerAt(m.defs, p.Depth), p.Depth, p.MaxDepth)
	if s.Status.InCombat && s.Status.CurrentMonster != nil {
		left += " | vs " + s.Status.CurrentMonster.Name
	} else if s.Status.IsTransformed {
		left += " | transformed"
	}

	right := fmt.Sprintf("HP %d/%d | Food %d/%d | %dg ", p.HP, p.MaxHP, p.Hunger, p.MaxHunger, s.Resources.Gold)
	if s.Status.IsDead {
		right = "DEAD (respawn) | " + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	style := styleStatusBar
	if s.Status.IsDead || s.Status.InCombat || p.Hunger == 0 {
		style = styleStatusDanger
	}
	return style.Width(m.width).Render(bar)
}
