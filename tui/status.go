package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathoo/epicquest/engine"
	"github.com/nathoo/epicquest/engine/state"
)

var titleCaser = cases.Title(language.English)

// displayName derives a human-readable name from a kind identifier.
// "gold_coin" -> "Gold Coin", "skeleton" -> "Skeleton".
func displayName(kind string) string {
	return titleCaser.String(engine.DisplayName(kind))
}

// renderStatusBar produces a full-width inverted status line showing the
// hero's stats, active quest count, inventory, and turn count.
func (m Model) renderStatusBar() string {
	if m.engine == nil {
		return styleStatusBar.Width(m.width).Render(" Name your hero to begin")
	}
	s := m.engine.State
	p := s.Player

	left := fmt.Sprintf(" %s | Lv %d | XP %d/%d | Gold %d", p.Name, p.Level, p.XP, p.XPToNext, p.Gold)
	if m.busy {
		left += " | " + m.busyLabel
	}

	tail := fmt.Sprintf("Quests: %d | T:%d ", len(p.Quests), s.TurnCount)
	right := tail

	// Show inventory items if they fit, otherwise just count.
	held := state.HeldItems(s)
	if len(held) > 0 {
		names := make([]string, 0, len(held))
		total := 0
		for _, kind := range held {
			n := state.ItemCount(s, kind)
			total += n
			names = append(names, fmt.Sprintf("%d %s", n, displayName(kind)))
		}
		candidate := fmt.Sprintf("Inv: %s | %s", strings.Join(names, ", "), tail)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | %s", total, tail)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
