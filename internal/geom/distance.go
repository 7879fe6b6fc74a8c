package geom

import (
	"fmt"
	"math"
)

// DistanceFn measures the distance between two points.
type DistanceFn func(a, b Point) float64

type DistanceFuncType string

const (
	DistanceFuncTypeToroidal  DistanceFuncType = "TOROIDAL"
	DistanceFuncTypeEuclidean DistanceFuncType = "EUCLIDEAN"
)

var ErrUnknownDistanceFunc = fmt.Errorf("unknown distance function")

func DistanceFuncFor(d DistanceFuncType) (DistanceFn, error) {
	switch d {
	case DistanceFuncTypeToroidal:
		return ToroidalDistance, nil
	case DistanceFuncTypeEuclidean:
		return EuclideanDistance, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDistanceFunc, d)
	}
}

// ToroidalDistance returns the Euclidean distance between a and b on the
// unit torus, each axis taking the shorter of the direct and the
// wrap-around separation.
func ToroidalDistance(a, b Point) float64 {
	dx := AxisSeparation(a.X, b.X)
	dy := AxisSeparation(a.Y, b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// AxisSeparation folds the separation of two coordinates into [0,0.5].
// The result does not depend on operand order.
func AxisSeparation(a, b float64) float64 {
	d := math.Abs(b - a)
	d -= math.Floor(d)
	if d > 0.5 {
		d = 1 - d
	}
	return d
}

// EuclideanDistance is the plain planar distance, without wraparound.
func EuclideanDistance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}
