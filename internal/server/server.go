// Package server is the HTTP boundary: sessions, checklist overlays, rate
// limiting, and the analyze endpoint.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tbruckner/ce-intake/internal/core"
)

// Server wires the session store, the rate limiter, and the analysis
// generator behind a mux router.
type Server struct {
	store     *SessionStore
	limiter   RateLimiter
	generator core.Generator
	model     string
}

// New creates a server. A nil generator is allowed; the analyze endpoint
// then reports a configuration error, matching a missing API key.
func New(store *SessionStore, limiter RateLimiter, generator core.Generator, model string) *Server {
	return &Server{
		store:     store,
		limiter:   limiter,
		generator: generator,
		model:     model,
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/analyze", s.handleAnalyze).Methods(http.MethodPost)
	r.HandleFunc("/api/sessions", s.handleCreateSession).Methods(http.MethodPost)
	r.HandleFunc("/api/sessions/{id}", s.handleGetSession).Methods(http.MethodGet)
	r.HandleFunc("/api/sessions/{id}", s.handleUpdateSession).Methods(http.MethodPut)
	r.HandleFunc("/api/sessions/{id}/checklist", s.handleGetChecklist).Methods(http.MethodGet)
	// The overlay key may contain a slash (regulationId/itemId).
	r.HandleFunc("/api/sessions/{id}/checklist/{key:.+}", s.handleUpdateChecklistItem).Methods(http.MethodPatch)
	r.HandleFunc("/api/sessions/{id}/export", s.handleExport).Methods(http.MethodGet)
	return r
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
