package elimination

import (
	"context"
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-sod/bnelim/internal/geom"
)

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		start       int
		target      int
		expectedErr error
	}{
		{name: "positive", start: 5000, target: 50},
		{name: "positive_noop", start: 10, target: 10},
		{name: "positive_to_one", start: 2, target: 1},
		{name: "err_target_exceeds_start", start: 10, target: 11, expectedErr: ErrInvalidConfiguration},
		{name: "err_zero_target", start: 10, target: 0, expectedErr: ErrInvalidConfiguration},
		{name: "err_negative_target", start: 10, target: -1, expectedErr: ErrInvalidConfiguration},
		{name: "err_single_start", start: 1, target: 1, expectedErr: ErrInvalidConfiguration},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if err := Validate(test.start, test.target); !errors.Is(err, test.expectedErr) {
				t.Errorf("got error %v, expected %v", err, test.expectedErr)
			}
		})
	}
}

func TestEliminator_Eliminate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		points  geom.Set
		target  int
		workers int
	}{
		{name: "noop", points: randomSet(10, 20), target: 20, workers: 1},
		{name: "single_removal", points: randomSet(11, 20), target: 19, workers: 1},
		{name: "to_one", points: randomSet(12, 8), target: 1, workers: 1},
		{name: "sequential", points: randomSet(13, 150), target: 30, workers: 1},
		{name: "parallel", points: randomSet(14, 300), target: 40, workers: 6},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			original := test.points.Copy()
			removals := 0
			e := New(
				WithScorer(NewScorer(WithWorkers(test.workers))),
				WithObserver(func(it Iteration) {
					removals++
					if it.Remaining != len(test.points)-removals {
						t.Errorf("iteration %d reports %d remaining points", removals, it.Remaining)
					}
				}),
			)
			got, err := e.Eliminate(context.Background(), test.points, test.target)
			if err != nil {
				t.Fatalf("the error should not be returned: %v", err)
			}
			if len(got) != test.target {
				t.Errorf("got %d points, expected %d", len(got), test.target)
			}
			if removals != len(test.points)-test.target {
				t.Errorf("got %d removals, expected %d", removals, len(test.points)-test.target)
			}
			if !got.IsSubsequenceOf(original) {
				t.Errorf("result is not a subsequence of the input: %s", spew.Sdump(got))
			}
			if !test.points.Equal(original) {
				t.Errorf("the input set must not be modified")
			}
		})
	}
}

func TestEliminator_EliminateRemovesGlobalMinimum(t *testing.T) {
	t.Parallel()
	points := randomSet(20, 64)
	scores, err := NewScorer(WithWorkers(1)).Score(context.Background(), points)
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	idx, _ := scores.Worst()

	got, err := New().Eliminate(context.Background(), points, len(points)-1)
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	expected := points.Copy().Remove(idx)
	if !got.Equal(expected) {
		t.Errorf("expected point %d %v to be removed, got %s", idx, points[idx], spew.Sdump(got))
	}
}

func TestEliminator_EliminateClosePair(t *testing.T) {
	t.Parallel()
	points := geom.Set{{X: 0.1, Y: 0.1}, {X: 0.9, Y: 0.9}, {X: 0.5, Y: 0.5}, {X: 0.11, Y: 0.11}}
	var removed []Iteration
	got, err := New(WithObserver(func(it Iteration) {
		removed = append(removed, it)
	})).Eliminate(context.Background(), points, 3)
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	expected := geom.Set{{X: 0.9, Y: 0.9}, {X: 0.5, Y: 0.5}, {X: 0.11, Y: 0.11}}
	if !got.Equal(expected) {
		t.Errorf("got %s, expected %s", spew.Sdump(got), spew.Sdump(expected))
	}
	if len(removed) != 1 || removed[0].Index != 0 || !removed[0].Point.Equal(geom.Point{X: 0.1, Y: 0.1}) {
		t.Errorf("unexpected removals %s", spew.Sdump(removed))
	}
}

func TestEliminator_EliminateDeterministic(t *testing.T) {
	t.Parallel()
	points := randomSet(30, 200)
	first, err := New(WithScorer(NewScorer(WithWorkers(1)))).Eliminate(context.Background(), points, 25)
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	second, err := New(WithScorer(NewScorer(WithWorkers(5)))).Eliminate(context.Background(), points, 25)
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("two runs over the same input differ:\n%s\n%s", spew.Sdump(first), spew.Sdump(second))
	}
}

func TestEliminator_EliminateInvalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		points geom.Set
		target int
	}{
		{name: "err_target_exceeds_start", points: randomSet(40, 5), target: 6},
		{name: "err_zero_target", points: randomSet(41, 5), target: 0},
		{name: "err_single_point", points: geom.Set{{X: 0.5, Y: 0.5}}, target: 1},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			calls := 0
			got, err := New(WithObserver(func(Iteration) { calls++ })).Eliminate(context.Background(), test.points, test.target)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("got error %v, expected %v", err, ErrInvalidConfiguration)
			}
			if got != nil || calls != 0 {
				t.Errorf("no work must be done on an invalid configuration")
			}
		})
	}
}

func TestEliminator_EliminateCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	e := New(WithObserver(func(it Iteration) {
		if it.Remaining == 50 {
			cancel()
		}
	}))
	_, err := e.Eliminate(ctx, randomSet(50, 60), 10)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got error %v, expected %v", err, context.Canceled)
	}
}
