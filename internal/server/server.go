package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-sod/bnelim/internal/logging"
	"golang.org/x/sync/errgroup"
)

const (
	defaultShutdownTimeout   = 5 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
)

type Option func(*Server)

func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

// New listens on addr and routes /metrics to metricsHandler and /health to
// HandleHealth. Serving starts with Serve.
func New(addr string, metricsHandler http.Handler, opts ...Option) (*Server, error) {
	if metricsHandler == nil {
		return nil, fmt.Errorf("metrics handler is not defined")
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to create listener on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metricsHandler)
	mux.Handle("/health", HandleHealth())

	s := &Server{
		listener:        listener,
		shutdownTimeout: defaultShutdownTimeout,
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Server exposes run metrics while runs execute.
type Server struct {
	listener        net.Listener
	srv             *http.Server
	shutdownTimeout time.Duration
}

func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Serve blocks until ctx is done or the listener fails, then shuts the
// server down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	errGrp, grpCtx := errgroup.WithContext(ctx)
	errGrp.Go(func() error {
		if err := s.srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})
	errGrp.Go(func() error {
		<-grpCtx.Done()
		logger.Debugf("stopping metrics server on %s", s.Addr())
		shutdownCtx, done := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer done()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown: %w", err)
		}
		return nil
	})
	return errGrp.Wait()
}

func HandleHealth() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, `{"status": "ok"}`)
	})
}
