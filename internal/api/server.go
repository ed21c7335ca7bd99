// Package api exposes the scoring engine over HTTP. It is a thin boundary:
// requests are validated, valid records persisted, and the engine's result
// mapped onto response bodies. The engine itself stays I/O-free.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskrank/taskrank/internal/engine"
	"github.com/taskrank/taskrank/internal/store"
	"github.com/taskrank/taskrank/internal/telemetry"
)

// Server wires the engine, the task store, and telemetry behind HTTP
// handlers.
type Server struct {
	engine       *engine.Engine
	store        *store.Store
	emitter      *telemetry.Emitter
	suggestLimit int

	// now supplies "today" for scoring runs; injectable for tests.
	now func() time.Time
}

// Option customizes a Server.
type Option func(*Server)

// WithTelemetry attaches a telemetry emitter. A nil emitter is a no-op.
func WithTelemetry(e *telemetry.Emitter) Option {
	return func(s *Server) { s.emitter = e }
}

// WithClock overrides the reference-date source.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithSuggestLimit sets how many tasks the suggest endpoint returns.
func WithSuggestLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.suggestLimit = n
		}
	}
}

// NewServer creates a Server around the given engine and store.
func NewServer(eng *engine.Engine, st *store.Store, opts ...Option) *Server {
	s := &Server{
		engine:       eng,
		store:        st,
		suggestLimit: 3,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the gin router with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.handleHealth)
	api := r.Group("/api/tasks")
	{
		api.POST("/analyze", s.handleAnalyze)
		api.GET("/suggest", s.handleSuggest)
	}
	return r
}

// ListenAndServe runs the HTTP server until it fails.
func (s *Server) ListenAndServe(addr string) error {
	slog.Info("taskrank API listening", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
