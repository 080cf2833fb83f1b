// Package httpapi exposes the offer pipeline over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/goliatone/go-offergen/pkg/orchestrator"
)

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithTimeouts sets the read and write timeouts.
func WithTimeouts(read, write time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = read
		s.writeTimeout = write
	}
}

// WithMaxBodySize limits request bodies, in bytes.
func WithMaxBodySize(n int) Option {
	return func(s *Server) {
		s.maxBodySize = n
	}
}

// Server serves validation, generation and structural checks.
type Server struct {
	orch         *orchestrator.Orchestrator
	logger       *slog.Logger
	readTimeout  time.Duration
	writeTimeout time.Duration
	maxBodySize  int
}

// New builds a Server around orch. A nil orchestrator uses the defaults.
func New(orch *orchestrator.Orchestrator, options ...Option) *Server {
	s := &Server{orch: orch}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.orch == nil {
		s.orch = orchestrator.New()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.readTimeout <= 0 {
		s.readTimeout = 10 * time.Second
	}
	if s.writeTimeout <= 0 {
		s.writeTimeout = 10 * time.Second
	}
	return s
}

// ListenAndServe listens on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("httpapi: listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles connections from ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "offergen",
		ReadTimeout:        s.readTimeout,
		WriteTimeout:       s.writeTimeout,
		MaxRequestBodySize: s.maxBodySize,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("http server started", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()
	if err := srv.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("httpapi: shutdown: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}
