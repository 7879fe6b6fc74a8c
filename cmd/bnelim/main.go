package main

import (
	"context"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-sod/bnelim/internal/buildinfo"
	bnelim "github.com/go-sod/bnelim/internal/config"
	"github.com/go-sod/bnelim/internal/driver"
	"github.com/go-sod/bnelim/internal/logging"
	"github.com/go-sod/bnelim/internal/server"
	"github.com/go-sod/bnelim/internal/setup"
	"github.com/go-sod/bnelim/internal/shutdown"
	"golang.org/x/term"
)

func main() {
	_, _ = fmt.Fprint(os.Stderr, buildinfo.Graffiti)
	_, _ = fmt.Fprintln(os.Stderr, buildinfo.Info)

	ctx, done := shutdown.New()
	logger := logging.FromContext(ctx)
	err := run(ctx)
	done()
	if err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	config := bnelim.Config{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer env.Close(ctx)

	logger.Debugf("configuration: %s", spew.Sdump(config))

	if handler := env.MetricsHandler(); handler != nil {
		srv, err := server.New(config.MetricsAddress(), handler)
		if err != nil {
			return fmt.Errorf("server.New: %w", err)
		}
		srvCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := srv.Serve(srvCtx); err != nil {
				logger.Errorf("metrics server: %v", err)
			}
		}()
		logger.Infof("Serving metrics on %s", srv.Addr())
	}

	runs, err := driver.RunsFor(config.DriverConfig())
	if err != nil {
		return fmt.Errorf("driver.RunsFor: %w", err)
	}

	opts := []driver.Option{
		driver.WithSeed(config.Driver.Seed),
		driver.WithMaxConcurrentRuns(config.Driver.MaxConcurrentRuns),
	}
	if config.Driver.Progress && term.IsTerminal(int(os.Stderr.Fd())) {
		opts = append(opts, driver.WithProgress(os.Stderr))
	}

	d, err := driver.New(env.ProvideGenerator(), env.ProvideEliminator(), env.Exporter(), opts...)
	if err != nil {
		return fmt.Errorf("driver.New: %w", err)
	}

	results, err := d.Execute(ctx, runs)
	logger.Infof("%d of %d runs finished", len(results), len(runs))
	if err != nil {
		return fmt.Errorf("driver.Execute: %w", err)
	}
	return nil
}
