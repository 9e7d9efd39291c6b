// Package server exposes the dataset exploration API over HTTP: dataset
// listings, chart building, hierarchy catalogs, and drill-down level data.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/SreeTarak2/datavisuals/internal/chart"
	"github.com/SreeTarak2/datavisuals/internal/server/notifier"
	"github.com/SreeTarak2/datavisuals/internal/store"
)

// Config holds server construction parameters.
type Config struct {
	Store       store.Store
	Builder     *chart.Builder
	Port        int
	DatasetsDir string
	Watch       bool
	Logger      *slog.Logger
}

// Server is the HTTP API server.
type Server struct {
	store       store.Store
	builder     *chart.Builder
	port        int
	datasetsDir string
	watch       bool
	logger      *slog.Logger
	notifier    *notifier.Notifier
}

// New creates a Server. A nil logger discards log output.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		store:       cfg.Store,
		builder:     cfg.Builder,
		port:        cfg.Port,
		datasetsDir: cfg.DatasetsDir,
		watch:       cfg.Watch,
		logger:      logger,
		notifier:    notifier.New(),
	}
}

// Handler builds the chi router with all API routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)
	s.routes(r)
	return r
}

// Serve starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting API server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch {
		eg.Go(func() error {
			return s.watchDatasets(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
