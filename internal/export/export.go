package export

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/go-sod/bnelim/internal/logging"
	"github.com/go-sod/bnelim/internal/snapshot/model"
	"golang.org/x/sync/errgroup"
)

// Exporter hands a snapshot over to every configured sink.
type Exporter interface {
	Export(ctx context.Context, snapshot model.Snapshot) error
}

// Sink writes a snapshot to a single destination.
type Sink interface {
	Name() string
	Write(ctx context.Context, snapshot model.Snapshot) error
}

type Option func(*exporter)

func WithSinks(sinks ...Sink) Option {
	return func(e *exporter) {
		e.sinks = append(e.sinks, sinks...)
	}
}

func New(opts ...Option) *exporter {
	e := &exporter{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type exporter struct {
	sinks []Sink
}

// Export runs all sinks concurrently and returns the first failure.
func (e *exporter) Export(ctx context.Context, snapshot model.Snapshot) error {
	logger := logging.FromContext(ctx)
	errGrp := errgroup.Group{}
	for _, sink := range e.sinks {
		sink := sink
		errGrp.Go(func() error {
			if err := sink.Write(ctx, snapshot); err != nil {
				return fmt.Errorf("%s sink: %w", sink.Name(), err)
			}
			return nil
		})
	}
	if err := errGrp.Wait(); err != nil {
		return fmt.Errorf("unable export snapshot %s.%d: %w", snapshot.Name, snapshot.Index, err)
	}
	logger.Debugf("exported snapshot %s.%d, %d points, fingerprint %s",
		snapshot.Name, snapshot.Index, len(snapshot.Points), snapshot.Fingerprint)
	return nil
}

// FileName returns <dir>/<name>.<index>.<ext>.
func FileName(dir, name string, index int, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s.%d.%s", name, index, ext))
}
