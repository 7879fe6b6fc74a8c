package srvenv

import (
	"context"
	"net/http"

	"github.com/go-sod/bnelim/internal/database"
	"github.com/go-sod/bnelim/internal/elimination"
	"github.com/go-sod/bnelim/internal/export"
	"github.com/go-sod/bnelim/internal/sample"
)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type SrvEnv struct {
	database       *database.DB
	eliminator     elimination.ProvideFn
	generator      sample.ProvideFn
	exporter       export.Exporter
	metricsHandler http.Handler
}

func (s *SrvEnv) ProvideEliminator() elimination.ProvideFn {
	return s.eliminator
}

func (s *SrvEnv) ProvideGenerator() sample.ProvideFn {
	return s.generator
}

func (s *SrvEnv) Exporter() export.Exporter {
	return s.exporter
}

// MetricsHandler is nil unless a metrics address is configured.
func (s *SrvEnv) MetricsHandler() http.Handler {
	return s.metricsHandler
}

func (s *SrvEnv) Database() *database.DB {
	return s.database
}

func WithEliminator(fn elimination.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.eliminator = fn
		return s
	}
}

func WithGenerator(fn sample.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.generator = fn
		return s
	}
}

func WithExporter(e export.Exporter) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.exporter = e
		return s
	}
}

func WithMetricsHandler(h http.Handler) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.metricsHandler = h
		return s
	}
}

func WithDatabase(db *database.DB) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.database = db
		return s
	}
}

func (s *SrvEnv) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}

	if s.database != nil {
		return s.database.Close(ctx)
	}
	return nil
}
