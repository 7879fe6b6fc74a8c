package geom

import "fmt"

// Point is a sample on the unit torus. Coordinates are expected in [0,1)
// but nothing enforces it.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Dimensions() int {
	return 2
}

// Dim returns the coordinate on axis idx, 0 for X and 1 for Y.
func (p Point) Dim(idx int) float64 {
	if idx == 0 {
		return p.X
	}
	return p.Y
}

func (p Point) Equal(p1 Point) bool {
	return p.X == p1.X && p.Y == p1.Y
}

func (p Point) String() string {
	return fmt.Sprintf("(%f, %f)", p.X, p.Y)
}

// Set is an ordered point set. It only ever shrinks by removal.
type Set []Point

func (s Set) Len() int {
	return len(s)
}

func (s Set) Copy() Set {
	var s1 = make(Set, len(s))
	copy(s1, s)
	return s1
}

// Remove deletes the point at idx in place, shifting the tail down by one
// and keeping the order of the survivors.
func (s Set) Remove(idx int) Set {
	return append(s[:idx], s[idx+1:]...)
}

func (s Set) Equal(s1 Set) bool {
	if len(s) != len(s1) {
		return false
	}
	for i := range s {
		if !s[i].Equal(s1[i]) {
			return false
		}
	}
	return true
}

// IsSubsequenceOf reports whether s can be obtained from s1 by removing
// points without reordering or altering the rest.
func (s Set) IsSubsequenceOf(s1 Set) bool {
	j := 0
	for i := 0; i < len(s1) && j < len(s); i++ {
		if s1[i].Equal(s[j]) {
			j++
		}
	}
	return j == len(s)
}
