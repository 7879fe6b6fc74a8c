package driver

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-sod/bnelim/internal/elimination"
	"github.com/go-sod/bnelim/internal/sample"
	"github.com/go-sod/bnelim/internal/snapshot/model"
)

type recordingExporter struct {
	mtx       sync.Mutex
	snapshots []model.Snapshot
	err       error
}

func (e *recordingExporter) Export(_ context.Context, snapshot model.Snapshot) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	e.snapshots = append(e.snapshots, snapshot)
	return e.err
}

func (e *recordingExporter) byName(name string) []model.Snapshot {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	var list []model.Snapshot
	for _, s := range e.snapshots {
		if s.Name == name {
			list = append(list, s)
		}
	}
	return list
}

func provideEliminator(opts ...elimination.Option) (*elimination.Eliminator, error) {
	opts = append([]elimination.Option{
		elimination.WithScorer(elimination.NewScorer(elimination.WithWorkers(2))),
	}, opts...)
	return elimination.New(opts...), nil
}

func provideGenerator(seed uint32) (sample.Generator, error) {
	return sample.NewXorShift(seed), nil
}

func seedPtr(seed uint32) *uint32 {
	return &seed
}

func TestDriver_Execute(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name              string
		runs              []Run
		maxConcurrentRuns int
		expectedResults   int
		expectedErr       error
	}{
		{
			name:              "positive_sequential",
			runs:              []Run{{Start: 60, Target: 10}, {Start: 40, Target: 40}, {Name: "custom", Start: 30, Target: 29}},
			maxConcurrentRuns: 1,
			expectedResults:   3,
		},
		{
			name:              "positive_concurrent",
			runs:              []Run{{Start: 60, Target: 10}, {Start: 50, Target: 5, Seed: seedPtr(7)}},
			maxConcurrentRuns: 4,
			expectedResults:   2,
		},
		{
			name:              "negative_invalid_run_does_not_stop_others",
			runs:              []Run{{Start: 10, Target: 20}, {Start: 60, Target: 10}, {Start: 1, Target: 1}},
			maxConcurrentRuns: 1,
			expectedResults:   1,
			expectedErr:       elimination.ErrInvalidConfiguration,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			exporter := &recordingExporter{}
			d, err := New(provideGenerator, provideEliminator, exporter,
				WithSeed(1337), WithMaxConcurrentRuns(test.maxConcurrentRuns))
			if err != nil {
				t.Fatalf("the error should not be returned: %v", err)
			}
			results, err := d.Execute(context.Background(), test.runs)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("got error %v, expected %v", err, test.expectedErr)
			}
			if len(results) != test.expectedResults {
				t.Fatalf("got %d results, expected %d", len(results), test.expectedResults)
			}
			for _, result := range results {
				snapshots := exporter.byName(result.Name)
				if len(snapshots) != 2 {
					t.Fatalf("got %d snapshots of %s, expected 2", len(snapshots), result.Name)
				}
				initial, final := snapshots[0], snapshots[1]
				if !initial.IsInitial() || !final.IsFinal() {
					t.Errorf("snapshots of %s exported out of order: %s", result.Name, spew.Sdump(snapshots))
				}
				if initial.RunID != final.RunID || final.RunID != result.RunID {
					t.Errorf("snapshots of %s do not share the run id", result.Name)
				}
				if !final.Points.IsSubsequenceOf(initial.Points) {
					t.Errorf("final points of %s are not a subsequence of the initial ones", result.Name)
				}
				if len(final.Points) != result.Points {
					t.Errorf("got %d final points, result reports %d", len(final.Points), result.Points)
				}
			}
		})
	}
}

func TestDriver_DoDeterministic(t *testing.T) {
	t.Parallel()
	run := Run{Start: 80, Target: 20}
	var fingerprints []string
	for i := 0; i < 2; i++ {
		d, err := New(provideGenerator, provideEliminator, &recordingExporter{}, WithSeed(42))
		if err != nil {
			t.Fatalf("the error should not be returned: %v", err)
		}
		result, err := d.Do(context.Background(), run)
		if err != nil {
			t.Fatalf("the error should not be returned: %v", err)
		}
		if result.Seed != 42 {
			t.Errorf("got seed %d, expected 42", result.Seed)
		}
		fingerprints = append(fingerprints, result.Final.String())
	}
	if fingerprints[0] != fingerprints[1] {
		t.Errorf("the same seed produced different results: %v", fingerprints)
	}
}

func TestDriver_DoInvalidNoExport(t *testing.T) {
	t.Parallel()
	exporter := &recordingExporter{}
	d, err := New(provideGenerator, provideEliminator, exporter)
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	if _, err := d.Do(context.Background(), Run{Start: 5, Target: 0}); !errors.Is(err, elimination.ErrInvalidConfiguration) {
		t.Errorf("got error %v, expected %v", err, elimination.ErrInvalidConfiguration)
	}
	if len(exporter.snapshots) != 0 {
		t.Errorf("nothing must be exported for an invalid run")
	}
}

func TestDriver_DoExportErr(t *testing.T) {
	t.Parallel()
	expectedErr := errors.New("test error")
	d, err := New(provideGenerator, provideEliminator, &recordingExporter{err: expectedErr})
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	if _, err := d.Do(context.Background(), Run{Start: 5, Target: 2}); !errors.Is(err, expectedErr) {
		t.Errorf("got error %v, expected %v", err, expectedErr)
	}
}

func TestDriver_Progress(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	d, err := New(provideGenerator, provideEliminator, &recordingExporter{}, WithProgress(&buf))
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	if _, err := d.Do(context.Background(), Run{Start: 5, Target: 3}); err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	expected := "\r4     \r3     \r3     \n"
	if buf.String() != expected {
		t.Errorf("got progress %q, expected %q", buf.String(), expected)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	if _, err := New(nil, provideEliminator, &recordingExporter{}); err == nil {
		t.Errorf("the error must be returned without a generator provider")
	}
	if _, err := New(provideGenerator, nil, &recordingExporter{}); err == nil {
		t.Errorf("the error must be returned without an eliminator provider")
	}
	if _, err := New(provideGenerator, provideEliminator, nil); err == nil {
		t.Errorf("the error must be returned without an exporter")
	}
}
