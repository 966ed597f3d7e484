// Package server exposes the projection engine over a small JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rpgo/investment-calculator/internal/config"
	"go.uber.org/zap"
)

// Server wires handlers, middleware and the listener lifecycle.
type Server struct {
	settings *config.Settings
	handlers *Handlers
	limiter  *RateLimiter
	logger   *zap.Logger
	handler  http.Handler
}

func New(settings *config.Settings, handlers *Handlers, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		settings: settings,
		handlers: handlers,
		limiter:  NewRateLimiter(settings.RateLimit.Requests, settings.RateLimit.Window),
		logger:   logger,
	}
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/v1/projection", RateLimitMiddleware(s.limiter, http.HandlerFunc(s.handlers.Projection)))
	mux.Handle("/api/v1/scenarios", RateLimitMiddleware(s.limiter, http.HandlerFunc(s.handlers.Scenarios)))
	mux.HandleFunc("/healthz", s.handlers.Health)
	return LoggingMiddleware(s.logger, mux)
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Close stops background work owned by the server.
func (s *Server) Close() { s.limiter.Stop() }

// Run serves on the configured address until ctx is canceled, then shuts
// down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.settings.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.settings.ListenAddr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.Close()

	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.settings.ReadTimeout,
		WriteTimeout: s.settings.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.settings.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}
	s.logger.Info("server exited")
	return nil
}
