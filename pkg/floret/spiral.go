// Package floret places and generates the small bump meshes that cover
// a disc floret: positions come from a Vogel (golden-angle) spiral with
// bounded random jitter, and each bump is an independently transformed
// copy of a closed sphere template.
package floret

import (
	"math"
	"math/rand"
)

// GoldenAngle is pi*(3 - sqrt 5) radians, about 137.5 degrees. Its
// irrational ratio to a full turn keeps successive spiral points from
// ever aligning.
var GoldenAngle = math.Pi * (3 - math.Sqrt(5))

// rimFraction keeps the outermost placements at 90% of the disc radius
// so the rim stays unembellished.
const rimFraction = 0.9

// packingFactor is the empirical multiplier in the count formula,
// tuned for visual packing density.
const packingFactor = 2.5

// Placement positions one bump on the disc surface.
type Placement struct {
	X, Y, Z float64
	ScaleXY float64
	ScaleZ  float64
	// Rotation about +Z in radians, applied before translation.
	Rotation float64
}

// Count returns the number of bumps for a disc of the given radius:
// floor(pi * R^2 * density * 2.5), proportional to disc area.
func Count(radius, density float64) int {
	return int(math.Pi * radius * radius * density * packingFactor)
}

// Place computes n placements over a disc of the given radius. Bump
// positions follow Vogel's spiral (angle i*GoldenAngle, radius
// R*0.9*sqrt(i/n)) with independent per-axis jitter drawn uniformly
// from [-0.4*bumpRadius, 0.4*bumpRadius]. Z follows the surface via
// heightAt evaluated at the unjittered spiral radius. The per-index
// draw order (jitterX, jitterY, scaleXY, scaleZ, rotation) is fixed so
// a seeded rng reproduces placements exactly.
func Place(n int, radius, bumpRadius float64, heightAt func(r float64) float64, rng *rand.Rand) []Placement {
	placements := make([]Placement, 0, n)
	jitter := 0.4 * bumpRadius
	for i := 0; i < n; i++ {
		theta := float64(i) * GoldenAngle
		r := radius * rimFraction * math.Sqrt(float64(i)/float64(n))

		x := r*math.Cos(theta) + uniform(rng, -jitter, jitter)
		y := r*math.Sin(theta) + uniform(rng, -jitter, jitter)

		placements = append(placements, Placement{
			X:        x,
			Y:        y,
			Z:        heightAt(r),
			ScaleXY:  uniform(rng, 0.7, 1.3),
			ScaleZ:   uniform(rng, 0.6, 1.4),
			Rotation: uniform(rng, 0, 2*math.Pi),
		})
	}
	return placements
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
