package model

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stigsb/rumi-leaf/pkg/builder"
	"github.com/stigsb/rumi-leaf/pkg/grid"
	"github.com/stigsb/rumi-leaf/pkg/heightmap"
	"github.com/stigsb/rumi-leaf/pkg/surface"
)

// LeafParams sizes the leaf relief pipeline.
type LeafParams struct {
	// ScaleXY is the world width and height of the output in mm.
	ScaleXY float64
	// ScaleZ scales heightmap values to relief height in mm.
	ScaleZ float64
	// BaseThickness is the flat slab below z=0.
	BaseThickness float64
	// Stride is the downsampling factor from image pixels to grid cells.
	Stride int
	// AlphaThreshold marks a pixel as part of the leaf.
	AlphaThreshold float64
}

// DefaultLeafParams returns the tuned defaults: a 100mm leaf with
// 3.5mm relief on a 1mm base, sampled every 3rd pixel.
func DefaultLeafParams() LeafParams {
	return LeafParams{
		ScaleXY:        100,
		ScaleZ:         3.5,
		BaseThickness:  1,
		Stride:         3,
		AlphaThreshold: 0.3,
	}
}

// GenerateLeaf builds a watertight leaf relief from an image-derived
// height map and alpha mask: enhance veins, threshold alpha into an
// occupancy grid, and extrude the heightfield into a closed solid.
func GenerateLeaf(height, alpha *heightmap.Map, p LeafParams, log *zap.SugaredLogger) (*Result, error) {
	log = logOrNop(log)
	if err := FirstError(ValidateLeaf(p)); err != nil {
		return nil, errors.Wrap(err, "leaf params")
	}
	if height.Rows() != alpha.Rows() || height.Cols() != alpha.Cols() {
		return nil, errors.Errorf("leaf: height map %dx%d does not match alpha %dx%d",
			height.Rows(), height.Cols(), alpha.Rows(), alpha.Cols())
	}

	log.Infow("enhancing vein structure", "rows", height.Rows(), "cols", height.Cols())
	enhanced := heightmap.Enhance(height, alpha)

	g := grid.FromAlpha(alpha, p.Stride, p.AlphaThreshold)
	log.Infow("occupancy grid", "rows", g.Rows(), "cols", g.Cols(),
		"occupied", g.OccupiedCount(), "activeQuads", g.ActiveQuadCount())

	m, err := builder.Build(g, &surface.FromMap{Map: enhanced, Stride: p.Stride, ScaleZ: p.ScaleZ}, builder.Options{
		CellDX:        p.ScaleXY / float64(g.Cols()),
		CellDY:        p.ScaleXY / float64(g.Rows()),
		BaseThickness: p.BaseThickness,
	})
	if err != nil {
		return nil, errors.Wrap(err, "leaf")
	}
	if m.FaceCount() == 0 {
		return nil, errors.New("leaf: occupied region produced no active quads; nothing to print")
	}

	res := finalize(m, log)
	logMesh(log, "leaf mesh", m)
	return res, nil
}
