package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/epicquest/types"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleInfo = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleLoot = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	styleXP = lipgloss.NewStyle().
		Foreground(lipgloss.Color("117"))

	styleLevelUp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("213")).
			Bold(true)

	styleQuest = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78")).
			Bold(true)

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
	kindInfo lineKind = iota
	kindCombat
	kindLoot
	kindXP
	kindLevelUp
	kindQuest
	kindSystem
	kindError
	kindTrace
)

// kindForCategory maps an event category to its line style.
func kindForCategory(cat types.Category) lineKind {
	switch cat {
	case types.CategoryCombat:
		return kindCombat
	case types.CategoryLoot:
		return kindLoot
	case types.CategoryXP:
		return kindXP
	case types.CategoryLevelUp:
		return kindLevelUp
	case types.CategoryQuestAccepted, types.CategoryQuestCompleted:
		return kindQuest
	case types.CategoryError:
		return kindError
	default:
		return kindInfo
	}
}

// classifyLine determines the kind of a line that did not come from an event.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	default:
		return kindInfo
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindCombat:
		return styleCombat.Render(line)
	case kindLoot:
		return styleLoot.Render(line)
	case kindXP:
		return styleXP.Render(line)
	case kindLevelUp:
		return styleLevelUp.Render(line)
	case kindQuest:
		return styleQuest.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleInfo.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
