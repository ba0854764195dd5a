// Package server exposes the insight tool catalog over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/localrank/insight-server/internal/tools"
	"github.com/localrank/insight-server/pkg/localrank"
)

// Invoker runs tool invocations. Satisfied by *tools.Service.
type Invoker interface {
	Definitions() []tools.Definition
	Invoke(ctx context.Context, name string, cred localrank.Credential, args tools.Args) tools.Envelope
}

// Options configures the HTTP surface.
type Options struct {
	Port        int
	TimeoutSecs int
	CORSOrigins []string

	// FallbackAPIKey authenticates requests that carry no credential
	// headers of their own. Empty means header-only auth.
	FallbackAPIKey string
}

// Server is the chi-backed tool server.
type Server struct {
	srv         *http.Server
	router      *chi.Mux
	invoker     Invoker
	metrics     *Metrics
	fallbackKey string
}

// New builds the server. A nil metrics gets a fresh registry, which is
// what tests want; cmd/serve passes the shared one so upstream client
// counters land on the same scrape page.
func New(inv Invoker, m *Metrics, opts Options) *Server {
	if m == nil {
		m = NewMetrics()
	}
	if opts.TimeoutSecs <= 0 {
		opts.TimeoutSecs = 60
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	s := &Server{
		invoker:     inv,
		metrics:     m,
		fallbackKey: opts.FallbackAPIKey,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(time.Duration(opts.TimeoutSecs) * time.Second))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Api-Key"},
		MaxAge:         300,
	}))

	router.Get("/health", s.handleHealth)
	router.Get("/tools", s.handleListTools)
	router.Post("/tools/{name}", s.handleInvoke)
	router.Method(http.MethodGet, "/metrics", m.Handler())

	s.router = router
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}
	return s
}

// Handler returns the routing tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts serving and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": s.invoker.Definitions()})
}

// handleInvoke runs one tool call. The request body is the bare argument
// object; an empty body means no arguments. Tool failures still produce a
// 200 envelope; the only transport-level client fault is a body that does
// not parse.
func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	args := tools.Args{}
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	cred := ResolveCredential(r, s.fallbackKey)

	start := time.Now()
	env := s.invoker.Invoke(r.Context(), name, cred, args)
	s.metrics.ObserveInvocation(name, env.OK, time.Since(start))

	writeJSON(w, http.StatusOK, env)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}
