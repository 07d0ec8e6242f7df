package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nathoo/apworld/engine/state"
)

// renderStatusBar produces a full-width inverted status line showing the
// route, reachability under the current inventory and the goal state.
func (m Model) renderStatusBar() string {
	w := m.engine.World
	sel := w.Selection

	left := fmt.Sprintf(" %s | %s -> %s", w.Game, sel.Start, sel.Terminal)

	goal := "open"
	if !state.Beatable(w, m.engine.Inventory) {
		goal = "closed"
	}
	right := fmt.Sprintf("Reach: %d/%d | Goal: %s ", m.reach.Regions.Size(), len(w.Regions), goal)

	items := len(m.engine.Inventory)
	if items > 0 {
		candidate := fmt.Sprintf("Inv: %d | %s", items, right)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
