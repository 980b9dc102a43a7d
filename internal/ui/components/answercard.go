package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcard/internal/quiz"
	"github.com/abhisek/quizcard/internal/ui/theme"
)

// cellWidth is the rendered width of one answer card cell.
const cellWidth = 6

// AnswerCard is a grid of question numbers colored by status, with a
// cursor for picking a question to jump to.
type AnswerCard struct {
	Entries []quiz.CardEntry
	Cursor  int
	Columns int
}

// NewAnswerCard builds a card with the cursor on the current question.
func NewAnswerCard(entries []quiz.CardEntry, columns int) AnswerCard {
	if columns < 1 {
		columns = 1
	}
	c := AnswerCard{Entries: entries, Columns: columns}
	for i, e := range entries {
		if e.Current {
			c.Cursor = i
			break
		}
	}
	return c
}

// ColumnsFor returns how many cells fit in width.
func ColumnsFor(width int) int {
	n := width / cellWidth
	if n < 1 {
		return 1
	}
	return n
}

// Update moves the cursor with the arrow keys, clamped to the grid.
func (c AnswerCard) Update(msg tea.Msg) (AnswerCard, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Entries) == 0 {
		return c, nil
	}

	next := c.Cursor
	switch kmsg.String() {
	case "left", "h":
		next--
	case "right", "l":
		next++
	case "up", "k":
		next -= c.Columns
	case "down", "j":
		next += c.Columns
	default:
		return c, nil
	}
	if next >= 0 && next < len(c.Entries) {
		c.Cursor = next
	}
	return c, nil
}

// Selected returns the entry under the cursor.
func (c AnswerCard) Selected() (quiz.CardEntry, bool) {
	if c.Cursor < 0 || c.Cursor >= len(c.Entries) {
		return quiz.CardEntry{}, false
	}
	return c.Entries[c.Cursor], true
}

// StatusStyle returns the style a status is drawn in.
func StatusStyle(s quiz.Status) lipgloss.Style {
	switch s {
	case quiz.StatusExact:
		return theme.Correct
	case quiz.StatusPartial:
		return theme.Partial
	case quiz.StatusNone:
		return theme.Incorrect
	default:
		return theme.Pending
	}
}

// View renders the grid and a legend.
func (c AnswerCard) View() string {
	var b strings.Builder
	for i, e := range c.Entries {
		if i > 0 && i%c.Columns == 0 {
			b.WriteString("\n")
		}

		label := fmt.Sprintf("%d", e.No)
		switch {
		case e.Current:
			label = "(" + label + ")"
		case i == c.Cursor:
			label = "[" + label + "]"
		}
		style := StatusStyle(e.Status).Width(cellWidth).Align(lipgloss.Center)
		if i == c.Cursor {
			style = style.Underline(true)
		}
		b.WriteString(style.Render(label))
	}

	b.WriteString("\n\n")
	legend := []string{
		theme.Correct.Render("■ exact"),
		theme.Partial.Render("■ partial"),
		theme.Incorrect.Render("■ wrong"),
		theme.Pending.Render("■ open"),
	}
	b.WriteString(strings.Join(legend, "  "))
	return b.String()
}
