package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/abhisek/quizcard/internal/catalog"
	"github.com/abhisek/quizcard/internal/quiz"
	"github.com/abhisek/quizcard/internal/tutor"
)

type questionItem struct {
	Index    int    `json:"index"`
	No       int    `json:"no"`
	Question string `json:"question"`
	Choose   int    `json:"choose"`
	Status   string `json:"status"`
	Revealed bool   `json:"revealed"`
}

type sectionView struct {
	Name   string   `json:"name"`
	Knows  []string `json:"knows"`
	Skills []string `json:"skills"`
}

type questionView struct {
	No        int               `json:"no"`
	Question  string            `json:"question"`
	Options   map[string]string `json:"options"`
	Choose    int               `json:"choose"`
	Selection []string          `json:"selection"`
	Status    string            `json:"status"`
	Revealed  bool              `json:"revealed"`

	// Set once the selection is complete.
	Best     []string          `json:"best,omitempty"`
	Analysis map[string]string `json:"analysis,omitempty"`
	Section  *sectionView      `json:"section,omitempty"`
}

type cardEntry struct {
	Index    int    `json:"index"`
	No       int    `json:"no"`
	Status   string `json:"status"`
	Current  bool   `json:"current"`
	Revealed bool   `json:"revealed"`
}

type summaryView struct {
	Total      int `json:"total"`
	Unanswered int `json:"unanswered"`
	Exact      int `json:"exact"`
	Partial    int `json:"partial"`
	None       int `json:"none"`
	Revealed   int `json:"revealed"`
}

type progressView struct {
	AnsweredQuestions map[string][]string `json:"answeredQuestions"`
	LastIndex         int                 `json:"lastIndex"`
	Direction         string              `json:"direction"`
	Summary           summaryView         `json:"summary"`
	Card              []cardEntry         `json:"card"`
}

type toggleRequest struct {
	Option string `json:"option"`
}

type navigateRequest struct {
	Index *int   `json:"index"`
	Step  string `json:"step"` // next or prev
}

type navigateResponse struct {
	Moved     bool   `json:"moved"`
	Index     int    `json:"index"`
	No        int    `json:"no"`
	Direction string `json:"direction"`
}

func (s *Server) listQuestions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]questionItem, 0, s.ctrl.Catalog().Len())
	for i, q := range s.ctrl.Catalog().Questions() {
		items = append(items, questionItem{
			Index:    i,
			No:       q.No,
			Question: q.Question,
			Choose:   q.Choose,
			Status:   s.ctrl.Status(q.No).String(),
			Revealed: s.ctrl.IsRevealed(q.No),
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getQuestion(w http.ResponseWriter, r *http.Request) {
	q, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.questionView(q))
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request) {
	q, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, ok := q.Options[req.Option]; !ok {
		writeErr(w, http.StatusBadRequest, "unknown option "+strconv.Quote(req.Option))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ctrl.ToggleQuestion(r.Context(), q.No, req.Option); err != nil {
		writeErr(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.questionView(q))
}

func (s *Server) explain(w http.ResponseWriter, r *http.Request) {
	q, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	revealed := s.ctrl.IsRevealed(q.No)
	s.mu.Unlock()
	if !revealed {
		writeErr(w, http.StatusConflict, "answer not revealed")
		return
	}

	e, err := s.opts.Tutor.Explain(r.Context(), q, s.opts.Outline)
	switch {
	case tutor.IsDisabled(err):
		writeErr(w, http.StatusServiceUnavailable, "explanations are not configured")
		return
	case err != nil:
		s.log.Warn("explain question", zap.Int("question", q.No), zap.Error(err))
		writeErr(w, http.StatusBadGateway, "explanation failed")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) getProgress(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.progressView())
}

func (s *Server) resetProgress(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.opts.Progress.Reset(r.Context()); err != nil {
		s.log.Error("reset progress", zap.Error(err))
		writeErr(w, http.StatusInternalServerError, "reset failed")
		return
	}
	s.ctrl = s.newController(quiz.NewLedger())
	writeJSON(w, http.StatusOK, s.progressView())
}

func (s *Server) navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var moved bool
	switch {
	case req.Index != nil:
		moved = s.ctrl.Jump(r.Context(), *req.Index)
	case req.Step == "next":
		moved = s.ctrl.Next(r.Context())
	case req.Step == "prev":
		moved = s.ctrl.Prev(r.Context())
	default:
		writeErr(w, http.StatusBadRequest, `expected "index" or "step"`)
		return
	}

	resp := navigateResponse{
		Moved:     moved,
		Index:     s.ctrl.Index(),
		Direction: s.ctrl.Direction().String(),
	}
	if q, ok := s.ctrl.Current(); ok {
		resp.No = q.No
	}
	writeJSON(w, http.StatusOK, resp)
}

// lookup resolves the {no} URL parameter, writing an error response when it
// does not name a question.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (catalog.Question, bool) {
	no, err := strconv.Atoi(chi.URLParam(r, "no"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "question number must be an integer")
		return catalog.Question{}, false
	}
	q, ok := s.opts.Catalog.Lookup(no)
	if !ok {
		writeErr(w, http.StatusNotFound, quiz.ErrUnknownQuestion.Error()+": "+strconv.Itoa(no))
		return catalog.Question{}, false
	}
	return q, true
}

func (s *Server) questionView(q catalog.Question) questionView {
	sel := s.ctrl.Selection(q.No)
	if sel == nil {
		sel = []string{}
	}
	v := questionView{
		No:        q.No,
		Question:  q.Question,
		Options:   q.Options,
		Choose:    q.Choose,
		Selection: sel,
		Status:    s.ctrl.Status(q.No).String(),
		Revealed:  s.ctrl.IsRevealed(q.No),
	}
	if !v.Revealed {
		return v
	}
	v.Best = q.Best
	v.Analysis = q.Analysis
	if sec, ok := s.opts.Outline.Lookup(q.Field); ok {
		v.Section = &sectionView{Name: sec.Name, Knows: sec.Knows, Skills: sec.Skills}
	}
	return v
}

func (s *Server) progressView() progressView {
	l := s.ctrl.Ledger()
	answered := make(map[string][]string, len(l.Answered))
	for no, sel := range l.Answered {
		answered[strconv.Itoa(no)] = sel
	}

	sum := s.ctrl.Summary()
	card := s.ctrl.Card()
	entries := make([]cardEntry, 0, len(card))
	for _, c := range card {
		entries = append(entries, cardEntry{
			Index:    c.Index,
			No:       c.No,
			Status:   c.Status.String(),
			Current:  c.Current,
			Revealed: c.Revealed,
		})
	}

	return progressView{
		AnsweredQuestions: answered,
		LastIndex:         l.LastIndex,
		Direction:         s.ctrl.Direction().String(),
		Summary: summaryView{
			Total:      sum.Total,
			Unanswered: sum.Unanswered,
			Exact:      sum.Exact,
			Partial:    sum.Partial,
			None:       sum.None,
			Revealed:   sum.Revealed,
		},
		Card: entries,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errResp struct {
	Error string `json:"error"`
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResp{Error: msg})
}
