// Package rng provides the injectable randomness source used by the
// simulation. Controllers take a Source rather than reaching for the global
// math/rand state so tests can substitute a deterministic sequence.
package rng

import (
	"math"
	"math/rand"

	"github.com/timberline-game/timberline/internal/game/geo"
)

// Source produces uniform random values.
//
// Invariant: Float64 returns values in [0, 1); Intn(n) returns values in [0, n).
type Source interface {
	Float64() float64
	Intn(n int) int
}

// NewSeeded returns a Source backed by math/rand with the given seed.
// Two sources built from the same seed produce identical sequences.
func NewSeeded(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Range returns a uniform draw in [min, max).
//
// Precondition: min <= max.
func Range(src Source, min, max float64) float64 {
	return min + src.Float64()*(max-min)
}

// UnitHeading returns a uniformly distributed unit vector in the horizontal plane.
//
// Postcondition: the returned vector has length 1.
func UnitHeading(src Source) geo.Vec2 {
	angle := src.Float64() * 2 * math.Pi
	return geo.Vec2{X: math.Cos(angle), Z: math.Sin(angle)}
}

// PointInSquare returns a uniform random point inside the square
// [-half, half] on each horizontal axis.
//
// Precondition: half >= 0.
func PointInSquare(src Source, half float64) geo.Vec2 {
	return geo.Vec2{
		X: Range(src, -half, half),
		Z: Range(src, -half, half),
	}
}
