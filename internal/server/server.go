// Package server exposes the ledger service as a local JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/ledger/internal/ai"
	"github.com/julianstephens/ledger/internal/ledger"
	"github.com/julianstephens/ledger/internal/logger"
)

// Server routes HTTP requests to a ledger.Service
type Server struct {
	svc      *ledger.Service
	enricher ai.Enricher
	metrics  *metrics
	mux      *http.ServeMux
}

// New builds the API. A nil enricher disables the /api/ai routes.
func New(svc *ledger.Service, enricher ai.Enricher) *Server {
	if enricher == nil {
		enricher = ai.Noop{}
	}
	s := &Server{
		svc:      svc,
		enricher: enricher,
		metrics:  newMetrics(),
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/entries", s.handleListEntries)
	s.mux.HandleFunc("GET /api/entries/{date}", s.handleGetEntry)
	s.mux.HandleFunc("PUT /api/entries/{date}", s.handleSaveEntry)
	s.mux.HandleFunc("PUT /api/entries/{date}/quest", s.handleSetQuest)
	s.mux.HandleFunc("GET /api/stats", s.handleStats)
	s.mux.HandleFunc("GET /api/editable/{date}", s.handleEditable)

	s.mux.HandleFunc("GET /api/insights/skills", s.handleSkills)
	s.mux.HandleFunc("GET /api/insights/badges", s.handleBadges)
	s.mux.HandleFunc("GET /api/insights/leaks", s.handleLeaks)
	s.mux.HandleFunc("GET /api/insights/sparkline", s.handleSparkline)
	s.mux.HandleFunc("GET /api/insights/grimoire", s.handleGrimoire)
	s.mux.HandleFunc("GET /api/search", s.handleSearch)

	s.mux.HandleFunc("POST /api/ai/tags", s.handleAITags)
	s.mux.HandleFunc("POST /api/ai/quest", s.handleAIQuest)

	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", s.metrics.handler())
}

// Handler returns the instrumented router
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		s.mux.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		s.metrics.observe(route, r.Method, rec.status, elapsed)
		logger.Debug("HTTP request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", elapsed)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("API listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("API shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
