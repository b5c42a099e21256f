package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing the
// current room, its exits, and the inventory.
func (m Model) renderStatusBar() string {
	room, err := m.engine.State.Current()
	if err != nil {
		return styleStatusBar.Width(m.width).Render("")
	}

	dirs := make([]string, 0, len(room.Exits))
	for _, ex := range room.Exits {
		dirs = append(dirs, string(ex.Direction))
	}
	exitStr := strings.Join(dirs, ",")

	left := fmt.Sprintf(" %s | Exits: %s", room.Name, exitStr)

	inv := m.engine.State.Player.Inventory.Items
	right := " "
	if len(inv) > 0 {
		names := make([]string, 0, len(inv))
		for _, it := range inv {
			names = append(names, it.Name)
		}
		candidate := fmt.Sprintf("Inv: %s ", strings.Join(names, ", "))
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d ", len(inv))
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
