package home

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcard/internal/quiz"
	"github.com/abhisek/quizcard/internal/router"
	"github.com/abhisek/quizcard/internal/screen"
	"github.com/abhisek/quizcard/internal/screens/placeholder"
	quizscreen "github.com/abhisek/quizcard/internal/screens/quiz"
	"github.com/abhisek/quizcard/internal/screens/summary"
	"github.com/abhisek/quizcard/internal/session"
	"github.com/abhisek/quizcard/internal/tutor"
	"github.com/abhisek/quizcard/internal/ui/components"
)

// summaryMsg carries the progress summary read on Init.
type summaryMsg struct {
	Summary quiz.Summary
	Err     error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps  session.Deps
	tutor *tutor.Service

	menu    components.Menu
	summary *quiz.Summary
	loadErr string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. tut may be nil.
func New(deps session.Deps, tut *tutor.Service) *HomeScreen {
	h := &HomeScreen{deps: deps, tutor: tut}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Resume quiz", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: quizscreen.New(h.deps, h.tutor)}
			}
		}},
		{Label: "Progress summary", Action: func() tea.Cmd {
			return func() tea.Msg {
				if h.summary == nil {
					return router.PushScreenMsg{Screen: placeholder.New("Progress summary", "Progress is still loading.")}
				}
				return router.PushScreenMsg{Screen: summary.New(*h.summary)}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	return h
}

// Init reads saved progress for the stats box. It runs again whenever the
// screen is uncovered, so the numbers follow the last quiz run.
func (h *HomeScreen) Init() tea.Cmd {
	deps := session.Deps{
		CatalogSource: h.deps.CatalogSource,
		OutlineSource: h.deps.OutlineSource,
		Progress:      h.deps.Progress,
		Log:           h.deps.Log,
	}
	return func() tea.Msg {
		s, err := session.Start(context.Background(), deps)
		if err != nil {
			return summaryMsg{Err: err}
		}
		return summaryMsg{Summary: s.Controller.Summary()}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(summaryMsg); ok {
		if m.Err != nil {
			h.loadErr = m.Err.Error()
			h.summary = nil
			return h, nil
		}
		sum := m.Summary
		h.summary = &sum
		h.loadErr = ""
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer
	compact := height+6 < 28 || width < 90
	cw := components.ContentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStats(h.summary, h.loadErr, cw),
		renderMenu(h.menu, cw, compact),
	}
	if !compact {
		sections = append(sections, renderTutorNote(h.tutor.Enabled(), cw))
	}
	return frameContent(sections, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
