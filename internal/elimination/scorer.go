package elimination

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/go-sod/bnelim/internal/geom"
	"golang.org/x/sync/errgroup"
)

// ErrUndefinedScore is returned when a score is requested for a set without
// any possible neighbor.
var ErrUndefinedScore = fmt.Errorf("score is undefined for less than 2 points")

// minPointsPerWorker keeps tiny sets from paying the goroutine overhead.
const minPointsPerWorker = 64

// Scores holds the isolation score of every live point, index aligned with
// the point set it was computed from.
type Scores []float64

// Worst returns the index and value of the lowest score. Ties go to the
// first occurrence.
func (s Scores) Worst() (int, float64) {
	worstIdx, worstScore := 0, math.Inf(1)
	for i := range s {
		if s[i] < worstScore {
			worstIdx = i
			worstScore = s[i]
		}
	}
	return worstIdx, worstScore
}

type ScorerOption func(*Scorer)

func WithWorkers(n int) ScorerOption {
	return func(s *Scorer) {
		s.workers = n
	}
}

func WithDistance(fn geom.DistanceFn) ScorerOption {
	return func(s *Scorer) {
		s.distFunc = fn
	}
}

func NewScorer(opts ...ScorerOption) *Scorer {
	s := &Scorer{workers: runtime.NumCPU(), distFunc: geom.ToroidalDistance}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = runtime.NumCPU()
	}
	return s
}

// Scorer computes, for every point, the distance to its nearest neighbor.
// Every call is a full O(n²) recomputation.
type Scorer struct {
	workers  int
	distFunc geom.DistanceFn
}

func (s *Scorer) Score(ctx context.Context, points geom.Set) (Scores, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrUndefinedScore, len(points))
	}

	scores := make(Scores, len(points))
	workers := s.workers
	if limit := len(points) / minPointsPerWorker; workers > limit {
		workers = limit
	}
	if workers <= 1 {
		s.scoreRange(points, scores, 0, len(points))
		return scores, nil
	}

	chunk := (len(points) + workers - 1) / workers
	errGrp, ctx := errgroup.WithContext(ctx)
	for from := 0; from < len(points); from += chunk {
		from, to := from, from+chunk
		if to > len(points) {
			to = len(points)
		}
		errGrp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.scoreRange(points, scores, from, to)
			return nil
		})
	}
	if err := errGrp.Wait(); err != nil {
		return nil, fmt.Errorf("scoring interrupted: %w", err)
	}

	return scores, nil
}

// scoreRange fills scores[from:to]; workers never share a slot.
func (s *Scorer) scoreRange(points geom.Set, scores Scores, from, to int) {
	for i := from; i < to; i++ {
		scores[i] = s.score(points, i)
	}
}

func (s *Scorer) score(points geom.Set, idx int) float64 {
	ret := math.Inf(1)
	for i := range points {
		if i == idx {
			continue
		}
		if d := s.distFunc(points[idx], points[i]); d < ret {
			ret = d
		}
	}
	return ret
}
