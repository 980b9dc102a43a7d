package components

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcard/internal/catalog"
	"github.com/abhisek/quizcard/internal/ui/theme"
)

// OptionList renders a question's options as radio buttons (choose one) or
// checkboxes (choose many) and tracks a cursor. Selection is owned by the
// caller and passed in on each render.
type OptionList struct {
	Keys   []string
	Labels map[string]string
	Multi  bool
	Cursor int
}

// NewOptionList builds the list for q with the cursor on the first option.
func NewOptionList(q catalog.Question) OptionList {
	return OptionList{
		Keys:   q.OptionKeys(),
		Labels: q.Options,
		Multi:  q.IsMulti(),
	}
}

// Update moves the cursor on up/down.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Keys)-1 {
			o.Cursor++
		}
	}
	return o, nil
}

// CursorKey returns the option key under the cursor.
func (o OptionList) CursorKey() (string, bool) {
	if o.Cursor < 0 || o.Cursor >= len(o.Keys) {
		return "", false
	}
	return o.Keys[o.Cursor], true
}

// KeyAt returns the option key at 1-based position n.
func (o OptionList) KeyAt(n int) (string, bool) {
	if n < 1 || n > len(o.Keys) {
		return "", false
	}
	return o.Keys[n-1], true
}

// Has reports whether key is one of the options.
func (o OptionList) Has(key string) bool {
	return slices.Contains(o.Keys, key)
}

// View renders the options. When best is non-nil the answer is revealed and
// options are colored by correctness.
func (o OptionList) View(selection, best []string, width int) string {
	var b strings.Builder
	for i, key := range o.Keys {
		picked := slices.Contains(selection, key)

		mark := "( )"
		if o.Multi {
			mark = "[ ]"
		}
		if picked {
			mark = "(•)"
			if o.Multi {
				mark = "[x]"
			}
		}

		prefix := "  "
		if i == o.Cursor {
			prefix = "▸ "
		}

		line := prefix + mark + " " + key + ". " + o.Labels[key]
		line = lipgloss.NewStyle().Width(width).Render(line)

		var style lipgloss.Style
		switch {
		case best != nil && slices.Contains(best, key):
			style = theme.Correct
		case best != nil && picked:
			style = theme.Incorrect
		case best != nil:
			style = theme.Pending
		case picked || i == o.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
