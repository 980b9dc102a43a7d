package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcard/internal/quiz"
	"github.com/abhisek/quizcard/internal/ui/components"
	"github.com/abhisek/quizcard/internal/ui/theme"
)

const titleFull = ` ██████  ██    ██ ██ ███████  ██████  █████  ██████  ██████
██    ██ ██    ██ ██    ███  ██      ██   ██ ██   ██ ██   ██
██    ██ ██    ██ ██   ███   ██      ███████ ██████  ██   ██
██ ▄▄ ██ ██    ██ ██  ███    ██      ██   ██ ██   ██ ██   ██
 ██████   ██████  ██ ███████  ██████ ██   ██ ██   ██ ██████
    ▀▀`

const titleCompact = "Q · U · I · Z · C · A · R · D"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStats shows progress across the catalog, or a loading line.
func renderStats(sum *quiz.Summary, loadErr string, cw int) string {
	var text string
	switch {
	case loadErr != "":
		text = lipgloss.NewStyle().Foreground(theme.Error).Render("⚠ " + loadErr)
	case sum == nil:
		text = theme.Hint.Render("reading saved progress...")
	default:
		text = fmt.Sprintf("%s  %s  %s",
			theme.Body.Render(fmt.Sprintf("%d/%d answered", sum.Answered(), sum.Total)),
			theme.Correct.Render(fmt.Sprintf("✓ %d", sum.Exact)),
			theme.Partial.Render(fmt.Sprintf("◐ %d", sum.Partial)),
		)
		if sum.None > 0 {
			text += "  " + theme.Incorrect.Render(fmt.Sprintf("✗ %d", sum.None))
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(m components.Menu, cw int, compact bool) string {
	if compact {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(m.View())
	}

	selected := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Accent).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(0, 1)

	normal := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	buttons := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		if i == m.Selected {
			buttons = append(buttons, selected.Render("▸ "+item.Label))
		} else {
			buttons = append(buttons, normal.Render(item.Label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

func renderTutorNote(enabled bool, cw int) string {
	text := "Set llm.provider to enable explanations (see quizcard --help)"
	if enabled {
		text = "Press ? on a revealed answer for an explanation"
	}
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// frameContent joins sections and centers them in the frame.
func frameContent(sections []string, width, height int) string {
	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}
