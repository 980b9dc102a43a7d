package quiz

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/quizcard/internal/quiz"
	"github.com/abhisek/quizcard/internal/screen"
	"github.com/abhisek/quizcard/internal/session"
	"github.com/abhisek/quizcard/internal/tutor"
	"github.com/abhisek/quizcard/internal/ui/components"
	"github.com/abhisek/quizcard/internal/ui/layout"
	"github.com/abhisek/quizcard/internal/ui/theme"
)

// defaultCardColumns is the answer card width before the terminal size is known.
const defaultCardColumns = 10

// QuizScreen shows one question at a time and drives the controller.
type QuizScreen struct {
	deps  session.Deps
	tutor *tutor.Service

	sess    *session.Session
	loadErr string
	spinner spinner.Model
	width   int

	options components.OptionList

	showCard bool
	card     components.AnswerCard

	jumping bool
	jump    components.TextInput

	explaining  bool
	explanation *tutor.Explanation
	explainErr  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.BackHandler = (*QuizScreen)(nil)

// New creates a quiz screen. The session is loaded when the screen starts.
// tut may be nil.
func New(deps session.Deps, tut *tutor.Service) *QuizScreen {
	return &QuizScreen{
		deps:    deps,
		tutor:   tut,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.sess != nil {
		return nil
	}
	return tea.Batch(s.spinner.Tick, s.load())
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// HeaderStatus shows the slide direction and how far through the catalog
// the learner is.
func (s *QuizScreen) HeaderStatus() string {
	if s.sess == nil {
		return ""
	}
	c := s.sess.Controller
	slide := "▶"
	if c.Direction() == qz.DirectionPrev {
		slide = "◀"
	}
	sum := c.Summary()
	return fmt.Sprintf("%s %d/%d  ✓ %d", slide, c.Index()+1, sum.Total, sum.Answered())
}

// HandlesBack reports whether esc closes an overlay instead of leaving.
func (s *QuizScreen) HandlesBack() bool {
	return s.showCard || s.jumping
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.sess == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.jumping:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Go"},
			{Key: "Esc", Description: "Cancel"},
		}
	case s.showCard:
		return []layout.KeyHint{
			{Key: "←↑↓→", Description: "Move"},
			{Key: "Enter", Description: "Open"},
			{Key: "Tab", Description: "Close"},
		}
	}

	hints := []layout.KeyHint{
		{Key: "A-Z/1-9", Description: "Pick"},
		{Key: "↑↓ Space", Description: "Toggle"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "Tab", Description: "Card"},
		{Key: "g", Description: "Go to"},
	}
	if s.sess.Controller.Revealed() && s.tutor.Enabled() {
		hints = append(hints, layout.KeyHint{Key: "?", Description: "Explain"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		return s.handleLoaded(msg)

	case explainedMsg:
		return s.handleExplained(msg)

	case spinner.TickMsg:
		if s.sess != nil || s.loadErr != "" {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.card.Columns = s.cardColumns()
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.jumping {
		var cmd tea.Cmd
		s.jump, cmd = s.jump.Update(msg)
		return s, cmd
	}
	return s, nil
}

// cardColumns fits the answer card grid inside its bordered card.
func (s *QuizScreen) cardColumns() int {
	if s.width == 0 {
		return defaultCardColumns
	}
	return components.ColumnsFor(components.ContentWidth(s.width) - 6)
}

// load starts the session off the UI goroutine.
func (s *QuizScreen) load() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		sess, err := session.Start(context.Background(), deps)
		return loadedMsg{Session: sess, Err: err}
	}
}

func (s *QuizScreen) handleLoaded(msg loadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		// Stay on the loading view with the error; there is no retry.
		s.loadErr = msg.Err.Error()
		return s, nil
	}
	s.sess = msg.Session
	s.resetQuestion()
	return s, nil
}

func (s *QuizScreen) handleExplained(msg explainedMsg) (screen.Screen, tea.Cmd) {
	q, ok := s.current()
	if !ok || q.No != msg.No {
		return s, nil
	}
	s.explaining = false
	if msg.Err != nil {
		s.explainErr = msg.Err.Error()
		return s, nil
	}
	s.explanation = msg.Explanation
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.sess == nil {
		return s, nil
	}
	switch {
	case s.jumping:
		return s.handleJumpKey(msg)
	case s.showCard:
		return s.handleCardKey(msg)
	}

	ctx := context.Background()
	ctrl := s.sess.Controller
	key := msg.String()

	switch key {
	case "tab":
		s.showCard = true
		s.card = components.NewAnswerCard(ctrl.Card(), s.cardColumns())
		return s, nil
	case "g":
		s.jumping = true
		s.jump = components.NewTextInput("Go to question", "no.", true, 6)
		return s, s.jump.Init()
	case "left", "p":
		if ctrl.Prev(ctx) {
			s.resetQuestion()
		}
		return s, nil
	case "right", "n":
		if ctrl.Next(ctx) {
			s.resetQuestion()
		}
		return s, nil
	case "up", "down", "k", "j":
		s.options, _ = s.options.Update(msg)
		return s, nil
	case "space":
		if opt, ok := s.options.CursorKey(); ok {
			s.toggle(opt)
		}
		return s, nil
	case "?":
		return s, s.requestExplanation()
	}

	if len(key) == 1 {
		c := key[0]
		switch {
		case c >= '1' && c <= '9':
			if opt, ok := s.options.KeyAt(int(c - '0')); ok {
				s.toggle(opt)
			}
		default:
			if opt := strings.ToUpper(key); s.options.Has(opt) {
				s.toggle(opt)
			}
		}
	}
	return s, nil
}

func (s *QuizScreen) handleCardKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "esc":
		s.showCard = false
	case "enter":
		s.showCard = false
		if e, ok := s.card.Selected(); ok && s.sess.Controller.Jump(context.Background(), e.Index) {
			s.resetQuestion()
		}
	default:
		s.card, _ = s.card.Update(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleJumpKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.jumping = false
		return s, nil
	case "enter":
		no, err := s.jump.NumericValue()
		if err != nil {
			s.jump.SetError("enter a question number")
			return s, nil
		}
		ctrl := s.sess.Controller
		idx, ok := ctrl.Catalog().IndexOf(no)
		if !ok {
			s.jump.SetError(fmt.Sprintf("no question %d", no))
			return s, nil
		}
		s.jumping = false
		if ctrl.Jump(context.Background(), idx) {
			s.resetQuestion()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.jump, cmd = s.jump.Update(msg)
	return s, cmd
}

func (s *QuizScreen) toggle(opt string) {
	s.sess.Controller.Toggle(context.Background(), opt)
	if !s.sess.Controller.Revealed() {
		s.clearExplanation()
	}
}

func (s *QuizScreen) requestExplanation() tea.Cmd {
	q, ok := s.current()
	if !ok || !s.sess.Controller.Revealed() || !s.tutor.Enabled() || s.explaining || s.explanation != nil {
		return nil
	}
	s.explaining = true
	s.explainErr = ""

	tut, outline := s.tutor, s.sess.Outline
	return func() tea.Msg {
		e, err := tut.Explain(context.Background(), q, outline)
		return explainedMsg{No: q.No, Explanation: e, Err: err}
	}
}

// resetQuestion rebuilds per-question state after the position changes.
func (s *QuizScreen) resetQuestion() {
	q, ok := s.current()
	if !ok {
		s.options = components.OptionList{}
	} else {
		s.options = components.NewOptionList(q)
	}
	s.clearExplanation()
}

func (s *QuizScreen) clearExplanation() {
	s.explaining = false
	s.explanation = nil
	s.explainErr = ""
}

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.loadErr != "":
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Could not load questions: %s\n\n  Press Esc to go back.", s.loadErr))
	case s.sess == nil:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  " + s.spinner.View() + " Loading questions...")
	case s.showCard:
		return s.renderCard(width)
	}
	return s.renderQuestion(width)
}
