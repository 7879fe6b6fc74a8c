package elimination

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sod/bnelim/internal/geom"
	"github.com/go-sod/bnelim/internal/logging"
)

// ErrInvalidConfiguration is returned before any work is done when the
// start and target counts do not describe a valid reduction.
var ErrInvalidConfiguration = fmt.Errorf("invalid elimination configuration")

// Iteration describes a single removal.
type Iteration struct {
	// Index of the removed point in the set it was removed from
	Index int
	Point geom.Point
	// Nearest neighbor distance of the removed point
	Score float64
	// Points left after the removal
	Remaining int
	Elapsed   time.Duration
}

// ObserverFn is called synchronously after every removal.
type ObserverFn func(Iteration)

// ProvideFn builds an eliminator, extra options are applied last.
type ProvideFn func(opts ...Option) (*Eliminator, error)

type Option func(*Eliminator)

func WithScorer(s *Scorer) Option {
	return func(e *Eliminator) {
		e.scorer = s
	}
}

func WithObserver(fn ObserverFn) Option {
	return func(e *Eliminator) {
		e.observers = append(e.observers, fn)
	}
}

func New(opts ...Option) *Eliminator {
	e := &Eliminator{}
	for _, opt := range opts {
		opt(e)
	}
	if e.scorer == nil {
		e.scorer = NewScorer()
	}
	return e
}

// Eliminator greedily removes the point with the lowest isolation score
// until the target count is reached.
type Eliminator struct {
	scorer    *Scorer
	observers []ObserverFn
}

// Validate checks the start and target counts of a reduction.
func Validate(start, target int) error {
	switch {
	case start < 2:
		return fmt.Errorf("%w: start count %d is less than 2", ErrInvalidConfiguration, start)
	case target < 1:
		return fmt.Errorf("%w: target count %d is less than 1", ErrInvalidConfiguration, target)
	case target > start:
		return fmt.Errorf("%w: target count %d exceeds start count %d", ErrInvalidConfiguration, target, start)
	}
	return nil
}

// Eliminate returns the subset of points left after removing exactly
// len(points)-target of them. The input set is not modified.
func (e *Eliminator) Eliminate(ctx context.Context, points geom.Set, target int) (geom.Set, error) {
	logger := logging.FromContext(ctx)
	if err := Validate(len(points), target); err != nil {
		return nil, err
	}

	live := points.Copy()
	for len(live) > target {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("elimination stopped at %d points: %w", len(live), err)
		}
		startedAt := time.Now()
		scores, err := e.scorer.Score(ctx, live)
		if err != nil {
			return nil, fmt.Errorf("unable to score %d points: %w", len(live), err)
		}
		if len(scores) != len(live) {
			return nil, fmt.Errorf("score table has %d entries for %d points", len(scores), len(live))
		}

		idx, score := scores.Worst()
		removed := live[idx]
		live = live.Remove(idx)
		e.notify(Iteration{
			Index:     idx,
			Point:     removed,
			Score:     score,
			Remaining: len(live),
			Elapsed:   time.Since(startedAt),
		})
	}
	logger.Debugf("elimination finished: %d to %d points", len(points), len(live))

	return live, nil
}

func (e *Eliminator) notify(it Iteration) {
	for _, fn := range e.observers {
		fn(it)
	}
}
