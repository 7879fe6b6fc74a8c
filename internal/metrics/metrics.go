package metrics

import (
	"context"
	"fmt"
	"net/http"

	"contrib.go.opencensus.io/exporter/prometheus"
	"github.com/go-sod/bnelim/internal/elimination"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

const Namespace = "bnelim"

var (
	MRemovals         = stats.Int64("bnelim/removals", "Points removed by elimination", stats.UnitDimensionless)
	MIterationLatency = stats.Float64("bnelim/iteration_latency", "Scoring and removal latency of one iteration", stats.UnitMilliseconds)
	MRuns             = stats.Int64("bnelim/runs", "Finished runs", stats.UnitDimensionless)

	KeyRun    = tag.MustNewKey("run")
	KeyStatus = tag.MustNewKey("status")
)

const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

var Views = []*view.View{
	{
		Name:        "bnelim/removals_total",
		Measure:     MRemovals,
		Description: "Total points removed",
		TagKeys:     []tag.Key{KeyRun},
		Aggregation: view.Sum(),
	},
	{
		Name:        "bnelim/iteration_latency",
		Measure:     MIterationLatency,
		Description: "Distribution of iteration latency",
		TagKeys:     []tag.Key{KeyRun},
		Aggregation: view.Distribution(0.1, 0.5, 1, 5, 10, 25, 50, 100, 250, 500, 1000),
	},
	{
		Name:        "bnelim/runs_total",
		Measure:     MRuns,
		Description: "Total finished runs",
		TagKeys:     []tag.Key{KeyRun, KeyStatus},
		Aggregation: view.Count(),
	},
}

func Register() error {
	if err := view.Register(Views...); err != nil {
		return fmt.Errorf("unable register views: %w", err)
	}
	return nil
}

// NewHandler returns the Prometheus scrape handler of the registered views.
func NewHandler() (http.Handler, error) {
	exporter, err := prometheus.NewExporter(prometheus.Options{Namespace: Namespace})
	if err != nil {
		return nil, fmt.Errorf("unable create prometheus exporter: %w", err)
	}
	return exporter, nil
}

// IterationObserver records every removal of the named run.
func IterationObserver(ctx context.Context, run string) elimination.ObserverFn {
	return func(it elimination.Iteration) {
		_ = stats.RecordWithTags(ctx,
			[]tag.Mutator{tag.Upsert(KeyRun, run)},
			MRemovals.M(1),
			MIterationLatency.M(float64(it.Elapsed)/1e6),
		)
	}
}

func RecordRun(ctx context.Context, run string, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyRun, run), tag.Upsert(KeyStatus, status)},
		MRuns.M(1),
	)
}
