// Package server exposes the extraction pipeline over HTTP: password-gated
// upload and batch extraction, stored-record listing, and spreadsheet
// download.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/tsawler/hsereport/batch"
	"github.com/tsawler/hsereport/config"
	"github.com/tsawler/hsereport/store"
)

// Server wires the HTTP surface to the batch processor and the store.
type Server struct {
	cfg   *config.Config
	store *store.Store
	proc  *batch.Processor
	log   *zap.Logger
	http  *http.Server
}

// New builds a server from loaded configuration and an open store.
func New(cfg *config.Config, st *store.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		cfg:   cfg,
		store: st,
		proc:  batch.NewProcessor(cfg.FieldSet(), cfg.Concurrency, log),
		log:   log,
	}
	s.http = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the chi router with all routes registered.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.requirePassword)
		r.Post("/extract", s.handleExtract)
		r.Get("/records", s.handleRecords)
		r.Get("/export.xlsx", s.handleExportXLSX)
		r.Get("/export.csv", s.handleExportCSV)
	})

	return r
}

// Start runs the HTTP listener until it fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("server listening", zap.String("addr", s.cfg.Server.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the listener gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("server stopping")
	return s.http.Shutdown(ctx)
}

// logRequests logs one line per request with the zap logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}
