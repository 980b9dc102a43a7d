// Package server exposes the quiz controller as a local JSON API.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/abhisek/quizcard/internal/catalog"
	"github.com/abhisek/quizcard/internal/progress"
	"github.com/abhisek/quizcard/internal/quiz"
	"github.com/abhisek/quizcard/internal/tutor"
)

// Options configures a Server.
type Options struct {
	Catalog *catalog.Catalog
	Outline *catalog.Outline // may be nil
	// Progress restores and persists the ledger. Required.
	Progress *progress.Adapter
	// Observer receives every applied transition. May be nil.
	Observer func(quiz.Event)
	// Tutor answers explanation requests. May be nil.
	Tutor   *tutor.Service
	Origins []string
	Log     *zap.Logger
}

// Server serializes API requests onto a single quiz controller.
type Server struct {
	opts Options
	log  *zap.Logger

	mu   sync.Mutex
	ctrl *quiz.Controller
}

// New restores progress and builds the controller the API drives.
func New(ctx context.Context, opts Options) *Server {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{opts: opts, log: log}
	res := opts.Progress.Restore(ctx)
	s.ctrl = s.newController(res.Ledger())
	return s
}

func (s *Server) newController(l quiz.Ledger) *quiz.Controller {
	c := quiz.NewController(s.opts.Catalog, l, s.opts.Progress)
	if s.opts.Observer != nil {
		c.SetObserver(s.opts.Observer)
	}
	return c
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.Origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/questions", s.listQuestions)
		r.Route("/questions/{no}", func(r chi.Router) {
			r.Get("/", s.getQuestion)
			r.Post("/toggle", s.toggle)
			r.Get("/explanation", s.explain)
		})
		r.Get("/progress", s.getProgress)
		r.Delete("/progress", s.resetProgress)
		r.Post("/navigate", s.navigate)
	})
	return r
}

// ListenAndServe serves the API on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("api listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
