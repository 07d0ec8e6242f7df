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

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	stylePlain = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleHeading = lipgloss.NewStyle().
			Bold(true)

	styleReachable = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78"))

	styleRule = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleWarning = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

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
	kindPlain lineKind = iota
	kindHeading
	kindReachable
	kindRule
	kindWarning
	kindSystem
	kindError
	kindTrace
)

// classifyLine determines what kind of explorer output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "warning: "):
		return kindWarning
	case strings.HasPrefix(line, "No "),
		strings.HasPrefix(line, "Can't "),
		strings.HasPrefix(line, "I don't know"),
		strings.HasPrefix(line, "You don't have"):
		return kindError
	case strings.HasPrefix(line, " * "):
		return kindReachable
	case strings.HasPrefix(line, "  -> "), strings.HasPrefix(line, "  * "):
		return kindRule
	case strings.HasSuffix(line, ":"):
		return kindHeading
	default:
		return kindPlain
	}
}

func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindHeading:
		return styleHeading.Render(line)
	case kindReachable:
		return styleReachable.Render(line)
	case kindRule:
		return styledRule(line)
	case kindWarning:
		return styleWarning.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return stylePlain.Render(line)
	}
}

// styledRule renders "  -> Target [rule]" with the bracketed rule dimmed.
func styledRule(line string) string {
	i := strings.LastIndex(line, " [")
	if i < 0 {
		return stylePlain.Render(line)
	}
	return stylePlain.Render(line[:i]) + styleRule.Render(line[i:])
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
