package quiz

import (
	"github.com/abhisek/quizcard/internal/session"
	"github.com/abhisek/quizcard/internal/tutor"
)

// loadedMsg is sent when the catalog, outline and saved progress are loaded.
type loadedMsg struct {
	Session *session.Session
	Err     error
}

// explainedMsg carries the tutor's answer for question No.
type explainedMsg struct {
	No          int
	Explanation *tutor.Explanation
	Err         error
}
