package model

import (
	"math/rand"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stigsb/rumi-leaf/pkg/builder"
	"github.com/stigsb/rumi-leaf/pkg/floret"
	"github.com/stigsb/rumi-leaf/pkg/grid"
	"github.com/stigsb/rumi-leaf/pkg/surface"
)

// bumpRadiusFraction scales the floret bump radius with the disc:
// radius/25 keeps the bump count and size visually proportional across
// disc diameters.
const bumpRadiusFraction = 25.0

// DiscParams sizes the disc floret pipeline.
type DiscParams struct {
	// Diameter of the disc in mm.
	Diameter float64
	// BaseHeight is the disc height at the rim in mm.
	BaseHeight float64
	// Density multiplies the floret count (1.0 is the natural packing).
	Density float64
	// Convexity lifts the disc center: 0 is flat, 1 doubles the center
	// height.
	Convexity float64
	// Resolution is the number of grid cells across the diameter.
	Resolution int
	// Seed drives jitter and per-bump variation; equal seeds reproduce
	// the model exactly.
	Seed int64
}

// DefaultDiscParams returns a 20mm disc at natural density.
func DefaultDiscParams() DiscParams {
	return DiscParams{
		Diameter:   20,
		BaseHeight: 1,
		Density:    1,
		Convexity:  0.5,
		Resolution: 96,
		Seed:       1,
	}
}

func discCount(p DiscParams) int {
	return floret.Count(p.Diameter/2, p.Density)
}

// GenerateDiscFloret builds the complete disc floret: a convex base
// disc from the heightfield builder, plus spiral-placed bump meshes
// concatenated on top. The bumps sit on the base surface; the assembly
// is a superposition, not a boolean union.
func GenerateDiscFloret(p DiscParams, log *zap.SugaredLogger) (*Result, error) {
	log = logOrNop(log)
	if err := FirstError(ValidateDisc(p)); err != nil {
		return nil, errors.Wrap(err, "disc params")
	}

	radius := p.Diameter / 2
	cell := p.Diameter / float64(p.Resolution)
	g := grid.Disc(p.Resolution)

	base, err := builder.Build(g, &surface.Convex{
		Rows: g.Rows(), Cols: g.Cols(),
		CellDX: cell, CellDY: cell,
		Radius: radius, Base: p.BaseHeight, Convexity: p.Convexity,
	}, builder.Options{CellDX: cell, CellDY: cell})
	if err != nil {
		return nil, errors.Wrap(err, "disc base")
	}
	if base.FaceCount() == 0 {
		return nil, errors.New("disc: resolution too coarse, no active quads")
	}
	res := finalize(base, log)

	n := discCount(p)
	bumpRadius := radius / bumpRadiusFraction
	bumpHeight := bumpRadius * 1.5
	log.Infow("placing florets", "count", n, "bumpRadius", bumpRadius)

	rng := rand.New(rand.NewSource(p.Seed))
	heightAt := func(r float64) float64 {
		return surface.ConvexHeight(r, radius, p.BaseHeight, p.Convexity)
	}
	gen := floret.NewGenerator(bumpRadius, bumpHeight)
	for _, placement := range floret.Place(n, radius, bumpRadius, heightAt, rng) {
		base.Append(gen.At(placement))
	}

	logMesh(log, "disc floret mesh", base)
	return res, nil
}

// DiscSurfaceHeight exposes the base profile height at radial distance
// r for a given parameter set, used by placement verification.
func DiscSurfaceHeight(p DiscParams, r float64) float64 {
	return surface.ConvexHeight(r, p.Diameter/2, p.BaseHeight, p.Convexity)
}
