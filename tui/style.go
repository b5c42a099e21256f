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

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleTemplated = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Bold(true)

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleListing = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindExits
	kindListing
	kindError
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "Exits:"),
		strings.HasPrefix(line, "to the "):
		return kindExits
	case strings.HasPrefix(line, "Here you see:"),
		strings.HasPrefix(line, "You are currently carrying:"),
		strings.HasPrefix(line, "a "):
		return kindListing
	case strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "You don't"),
		strings.HasPrefix(line, "I don't"),
		strings.HasPrefix(line, "I can't"):
		return kindError
	default:
		return kindNarrative
	}
}

// highlightWords renders a narrative line, emphasizing any of the
// engine's templated words that appear in it. Longer words are matched
// first so "brass key" wins over "key".
func highlightWords(line string, words []string) string {
	if len(words) == 0 {
		return styleNarrative.Render(line)
	}

	sorted := make([]string, len(words))
	copy(sorted, words)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if len(sorted[j]) > len(sorted[i]) {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}

	var out strings.Builder
	rest := line
	for rest != "" {
		idx, word := -1, ""
		for _, w := range sorted {
			if w == "" {
				continue
			}
			if i := strings.Index(rest, w); i != -1 && (idx == -1 || i < idx) {
				idx, word = i, w
			}
		}
		if idx == -1 {
			out.WriteString(styleNarrative.Render(rest))
			break
		}
		if idx > 0 {
			out.WriteString(styleNarrative.Render(rest[:idx]))
		}
		out.WriteString(styleTemplated.Render(word))
		rest = rest[idx+len(word):]
	}
	return out.String()
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
