package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-sod/bnelim/internal/elimination"
	"github.com/go-sod/bnelim/internal/export"
	"github.com/go-sod/bnelim/internal/logging"
	"github.com/go-sod/bnelim/internal/metrics"
	"github.com/go-sod/bnelim/internal/sample"
	"github.com/go-sod/bnelim/internal/snapshot/model"
	"github.com/go-sod/bnelim/internal/util"
	"github.com/go-sod/bnelim/pkg/rworker"
	"github.com/google/uuid"
)

type Option func(*Driver)

func WithSeed(seed uint32) Option {
	return func(d *Driver) {
		d.seed = seed
	}
}

func WithMaxConcurrentRuns(n int) Option {
	return func(d *Driver) {
		d.maxConcurrentRuns = n
	}
}

// WithProgress prints the live point count of a run to w. Ignored when runs
// execute concurrently.
func WithProgress(w io.Writer) Option {
	return func(d *Driver) {
		d.progress = w
	}
}

func New(
	provideGeneratorFn sample.ProvideFn,
	provideEliminatorFn elimination.ProvideFn,
	exporter export.Exporter,
	opts ...Option,
) (*Driver, error) {
	if provideGeneratorFn == nil {
		return nil, fmt.Errorf("generator provider is not defined")
	}
	if provideEliminatorFn == nil {
		return nil, fmt.Errorf("eliminator provider is not defined")
	}
	if exporter == nil {
		return nil, fmt.Errorf("exporter is not defined")
	}
	d := &Driver{
		provideGeneratorFn:  provideGeneratorFn,
		provideEliminatorFn: provideEliminatorFn,
		exporter:            exporter,
		maxConcurrentRuns:   1,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.maxConcurrentRuns < 1 {
		d.maxConcurrentRuns = 1
	}
	if d.maxConcurrentRuns > 1 {
		d.progress = nil
	}
	return d, nil
}

// Driver generates, reduces and exports every configured run.
type Driver struct {
	provideGeneratorFn  sample.ProvideFn
	provideEliminatorFn elimination.ProvideFn
	exporter            export.Exporter

	seed              uint32
	maxConcurrentRuns int
	progress          io.Writer
}

// Result summarizes a finished run.
type Result struct {
	RunID   uuid.UUID
	Name    string
	Seed    uint32
	Initial util.Fingerprint
	Final   util.Fingerprint
	Points  int
	Elapsed time.Duration
}

// Execute performs all runs. A failing run does not stop the others, the
// returned error joins every failure. Results of successful runs keep the
// order of runs.
func (d *Driver) Execute(ctx context.Context, runs []Run) ([]Result, error) {
	var (
		done    = make([]bool, len(runs))
		results = make([]Result, len(runs))
	)
	pool := rworker.New(d.maxConcurrentRuns, rworker.WithErrorHandler(func(err error) {
		logging.FromContext(ctx).Errorf("%v", err)
	}))
	for i, run := range runs {
		i, run := i, run
		pool.Go(func() error {
			result, err := d.Do(ctx, run)
			if err != nil {
				return fmt.Errorf("run %s: %w", run.BaseName(), err)
			}
			results[i], done[i] = result, true
			return nil
		})
	}
	errs := pool.Wait()

	finished := results[:0]
	for i := range results {
		if done[i] {
			finished = append(finished, results[i])
		}
	}
	if len(errs) > 0 {
		return finished, fmt.Errorf("%d of %d runs failed: %w", len(errs), len(runs), errors.Join(errs...))
	}
	return finished, nil
}

// Do performs a single run. The configuration is validated before any
// point is generated.
func (d *Driver) Do(ctx context.Context, run Run) (result Result, err error) {
	name := run.BaseName()
	logger := logging.FromContext(ctx).With("run", name)
	ctx = logging.WithLogger(ctx, logger)
	defer func() {
		metrics.RecordRun(ctx, name, err)
	}()

	logger.Infof("%s... %d to %d", name, run.Start, run.Target)
	if err := elimination.Validate(run.Start, run.Target); err != nil {
		return Result{}, err
	}

	seed := d.seed
	if run.Seed != nil {
		seed = *run.Seed
	}
	generator, err := d.provideGeneratorFn(seed)
	if err != nil {
		return Result{}, fmt.Errorf("unable create generator: %w", err)
	}
	eliminator, err := d.provideEliminatorFn(
		elimination.WithObserver(metrics.IterationObserver(ctx, name)),
		elimination.WithObserver(d.progressObserver()),
	)
	if err != nil {
		return Result{}, fmt.Errorf("unable create eliminator: %w", err)
	}

	startedAt := time.Now()
	runID := uuid.New()
	points := generator.Generate(run.Start)
	initial := model.NewSnapshot(runID, name, model.IndexInitial, generator.Seed(), points)
	if err := d.exporter.Export(ctx, initial); err != nil {
		return Result{}, err
	}

	reduced, err := eliminator.Eliminate(ctx, points, run.Target)
	if d.progress != nil {
		_, _ = fmt.Fprintf(d.progress, "\r%d     \n", len(reduced))
	}
	if err != nil {
		return Result{}, err
	}

	final := model.NewSnapshot(runID, name, model.IndexFinal, generator.Seed(), reduced)
	if err := d.exporter.Export(ctx, final); err != nil {
		return Result{}, err
	}

	result = Result{
		RunID:   runID,
		Name:    name,
		Seed:    generator.Seed(),
		Initial: initial.Fingerprint,
		Final:   final.Fingerprint,
		Points:  len(reduced),
		Elapsed: time.Since(startedAt),
	}
	logger.Infof("%s done in %v, seed %d, fingerprint %s", name, result.Elapsed, result.Seed, result.Final)
	return result, nil
}

func (d *Driver) progressObserver() elimination.ObserverFn {
	w := d.progress
	return func(it elimination.Iteration) {
		if w != nil {
			_, _ = fmt.Fprintf(w, "\r%d     ", it.Remaining)
		}
	}
}
