package sample

import (
	"fmt"
	"math/rand"

	"github.com/go-sod/bnelim/internal/geom"
	"github.com/valyala/fastrand"
)

var ErrUnknownSource = fmt.Errorf("unknown random source")

// Generator produces uniform random point sets in [0,1)².
type Generator interface {
	Generate(n int) geom.Set
	// Seed returns the seed actually used, never 0.
	Seed() uint32
}

type ProvideFn func(seed uint32) (Generator, error)

// ProvideFor returns a factory of generators of the given source type.
func ProvideFor(t SourceType) (ProvideFn, error) {
	switch t {
	case SourceTypeXorShift:
		return func(seed uint32) (Generator, error) {
			return NewXorShift(seed), nil
		}, nil
	case SourceTypeMath:
		return func(seed uint32) (Generator, error) {
			return NewMath(seed), nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, t)
	}
}

// ResolveSeed replaces the zero seed with a non-deterministic one.
func ResolveSeed(seed uint32) uint32 {
	for seed == 0 {
		seed = fastrand.Uint32()
	}
	return seed
}

// NewXorShift returns a generator backed by the xorshift32 generator of
// fastrand.
func NewXorShift(seed uint32) *xorShift {
	g := &xorShift{seed: ResolveSeed(seed)}
	g.rng.Seed(g.seed)
	return g
}

type xorShift struct {
	seed uint32
	rng  fastrand.RNG
}

func (g *xorShift) Seed() uint32 {
	return g.seed
}

func (g *xorShift) Generate(n int) geom.Set {
	return generate(n, g.float64)
}

func (g *xorShift) float64() float64 {
	return float64(g.rng.Uint32()) / (1 << 32)
}

// NewMath returns a generator backed by math/rand.
func NewMath(seed uint32) *mathRand {
	g := &mathRand{seed: ResolveSeed(seed)}
	g.rnd = rand.New(rand.NewSource(int64(g.seed)))
	return g
}

type mathRand struct {
	seed uint32
	rnd  *rand.Rand
}

func (g *mathRand) Seed() uint32 {
	return g.seed
}

func (g *mathRand) Generate(n int) geom.Set {
	return generate(n, g.rnd.Float64)
}

// generate draws X then Y for every point.
func generate(n int, float64Fn func() float64) geom.Set {
	if n < 0 {
		n = 0
	}
	points := make(geom.Set, n)
	for i := range points {
		points[i].X = float64Fn()
		points[i].Y = float64Fn()
	}
	return points
}
