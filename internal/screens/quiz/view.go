package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcard/internal/catalog"
	"github.com/abhisek/quizcard/internal/ui/components"
	"github.com/abhisek/quizcard/internal/ui/theme"
)

// current returns the question at the controller's position.
func (s *QuizScreen) current() (catalog.Question, bool) {
	if s.sess == nil {
		return catalog.Question{}, false
	}
	return s.sess.Controller.Current()
}

func (s *QuizScreen) renderQuestion(width int) string {
	q, ok := s.current()
	if !ok {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  This catalog has no questions.")
	}

	ctrl := s.sess.Controller
	cw := components.ContentWidth(width)
	var b strings.Builder

	// Header line: number and how many to pick.
	header := theme.Heading.Render(fmt.Sprintf("Question %d", q.No)) +
		"   " + theme.Hint.Render(fmt.Sprintf("Choose %d", q.Choose))
	b.WriteString(header + "\n\n")

	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(q.Question))
	b.WriteString("\n\n")

	sel := ctrl.Selection(q.No)
	revealed := ctrl.Revealed()
	var best []string
	if revealed {
		best = q.Best
	}
	b.WriteString(s.options.View(sel, best, cw))
	b.WriteString("\n")

	last := ctrl.Catalog().Len() - 1
	prev := components.NewButton("←", "Prev", ctrl.Index() > 0)
	next := components.NewButton("→", "Next", ctrl.Index() < last)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, prev.View(), "  ", next.View()))
	b.WriteString("\n")

	if s.jumping {
		b.WriteString("\n" + s.jump.View() + "\n")
	}

	if revealed {
		b.WriteString("\n")
		b.WriteString(theme.Panel.Width(cw).Render(s.renderReveal(q, cw-4)))
		b.WriteString("\n")
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderReveal shows the correct answer, the analysis, the outline entry
// and any tutor explanation.
func (s *QuizScreen) renderReveal(q catalog.Question, width int) string {
	var b strings.Builder

	status := s.sess.Controller.Status(q.No)
	b.WriteString(theme.Heading.Render("Answer ") +
		theme.Correct.Render(strings.Join(q.Best, ", ")) + "   " +
		components.StatusStyle(status).Render(status.String()) + "\n")

	if len(q.Analysis) > 0 {
		b.WriteString("\n")
		for _, key := range q.OptionKeys() {
			text, ok := q.Analysis[key]
			if !ok {
				continue
			}
			line := lipgloss.NewStyle().Width(width).Render(key + ": " + text)
			b.WriteString(theme.Body.Render(line) + "\n")
		}
	}

	if sec, ok := s.sess.Outline.Lookup(q.Field); ok {
		b.WriteString("\n" + theme.Heading.Render(sec.Name) + "\n")
		if len(sec.Knows) > 0 {
			b.WriteString(theme.Hint.Render("Knowledge") + "\n")
			for _, k := range sec.Knows {
				b.WriteString(theme.Body.Render("  • "+k) + "\n")
			}
		}
		if len(sec.Skills) > 0 {
			b.WriteString(theme.Hint.Render("Skills") + "\n")
			for _, k := range sec.Skills {
				b.WriteString(theme.Body.Render("  • "+k) + "\n")
			}
		}
	}

	switch {
	case s.explaining:
		b.WriteString("\n" + theme.Hint.Render("Asking the tutor..."))
	case s.explainErr != "":
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("Tutor: "+s.explainErr))
	case s.explanation != nil:
		b.WriteString("\n" + theme.Heading.Render("Tutor") + "\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(s.explanation.Summary) + "\n")
		for _, n := range s.explanation.Options {
			line := lipgloss.NewStyle().Width(width).Render(n.Key + ": " + n.Note)
			b.WriteString(theme.Hint.Render(line) + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (s *QuizScreen) renderCard(width int) string {
	body := theme.Heading.Render("Answer card") + "\n\n" + s.card.View()
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Card.Render(body))
}
