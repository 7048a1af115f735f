package model

import (
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stigsb/rumi-leaf/pkg/builder"
	"github.com/stigsb/rumi-leaf/pkg/grid"
	"github.com/stigsb/rumi-leaf/pkg/mesh"
	"github.com/stigsb/rumi-leaf/pkg/surface"
)

// ridgeMeshCells is the marching-cubes resolution for the ridge rings.
// The rings are thin annuli, so they need a finer sampling than a
// blocky solid would.
const ridgeMeshCells = 128

// ornamentOrbit is the fraction of the radius where ornament centers
// sit, between the bump field of a disc floret and the inner ridge.
const ornamentOrbit = 0.62

// MedallionParams sizes the medallion pipeline. The base thickness at
// the rim is derived as Diameter/20.
type MedallionParams struct {
	// Diameter of the medallion in mm.
	Diameter float64
	// Convexity lifts the center of the base disc.
	Convexity float64
	// Resolution is the number of grid cells across the base diameter.
	Resolution int
	// RidgeRadii are fractions of the radius where raised concentric
	// rings are placed.
	RidgeRadii []float64
	// OrnamentCount is the number of leaf-shaped reliefs arranged
	// radially around the face.
	OrnamentCount int
}

// DefaultMedallionParams returns a 50mm medallion with two rim rings
// and eight leaf ornaments.
func DefaultMedallionParams() MedallionParams {
	return MedallionParams{
		Diameter:      50,
		Convexity:     0.6,
		Resolution:    128,
		RidgeRadii:    []float64{0.80, 0.92},
		OrnamentCount: 8,
	}
}

func (p MedallionParams) baseHeight() float64 {
	return p.Diameter / 20
}

// GenerateMedallion builds the medallion: a convex base disc, raised
// ridge rings rendered from signed distance fields, and leaf-shaped
// ornaments extruded from elliptical grids. Like the disc floret, the
// decorations are superposed on the base rather than unioned.
func GenerateMedallion(p MedallionParams, log *zap.SugaredLogger) (*Result, error) {
	log = logOrNop(log)
	if err := FirstError(ValidateMedallion(p)); err != nil {
		return nil, errors.Wrap(err, "medallion params")
	}

	radius := p.Diameter / 2
	baseHeight := p.baseHeight()
	cell := p.Diameter / float64(p.Resolution)
	g := grid.Disc(p.Resolution)

	base, err := builder.Build(g, &surface.Convex{
		Rows: g.Rows(), Cols: g.Cols(),
		CellDX: cell, CellDY: cell,
		Radius: radius, Base: baseHeight, Convexity: p.Convexity,
	}, builder.Options{CellDX: cell, CellDY: cell})
	if err != nil {
		return nil, errors.Wrap(err, "medallion base")
	}
	if base.FaceCount() == 0 {
		return nil, errors.New("medallion: resolution too coarse, no active quads")
	}
	res := finalize(base, log)

	heightAt := func(r float64) float64 {
		return surface.ConvexHeight(r, radius, baseHeight, p.Convexity)
	}

	for _, fr := range p.RidgeRadii {
		ring, err := ridgeRing(fr*radius, p.Diameter)
		if err != nil {
			return nil, errors.Wrapf(err, "ridge ring at %.2fR", fr)
		}
		// Sink the ring a third of its height into the base so the
		// seam is below the visible surface.
		ridgeHeight := p.Diameter / 30
		ring.Translate(0, 0, heightAt(fr*radius)+ridgeHeight/2-ridgeHeight/3)
		base.Append(ring)
	}

	for k := 0; k < p.OrnamentCount; k++ {
		orn, err := leafOrnament(radius, cell)
		if err != nil {
			return nil, errors.Wrapf(err, "ornament %d", k)
		}
		orbit := ornamentOrbit * radius
		orn.Translate(orbit, 0, heightAt(orbit)-cell/2)
		orn.RotateZ(float64(k) * 2 * math.Pi / float64(p.OrnamentCount))
		base.Append(orn)
	}

	logMesh(log, "medallion mesh", base)
	return res, nil
}

// ridgeRing renders one raised concentric ring as an annular cylinder:
// an outer cylinder minus an inner one, meshed by marching cubes and
// centered at the origin.
func ridgeRing(ringRadius, diameter float64) (*mesh.Mesh, error) {
	width := diameter / 40
	height := diameter / 30

	outer, err := sdf.Cylinder3D(height, ringRadius+width/2, 0)
	if err != nil {
		return nil, err
	}
	// Inner cutter is taller so the subtraction pierces both faces
	// cleanly.
	inner, err := sdf.Cylinder3D(height*2, ringRadius-width/2, 0)
	if err != nil {
		return nil, err
	}
	ring := sdf.Difference3D(outer, inner)

	renderer := render.NewMarchingCubesUniform(ridgeMeshCells)
	tris := render.ToTriangles(ring, renderer)
	if len(tris) == 0 {
		return nil, errors.New("ridge ring rendered no triangles")
	}
	return weldTriangles(tris), nil
}

// leafOrnament extrudes a small elliptical leaf shape, long axis along
// X, centered at the origin with its underside at z=0.
func leafOrnament(radius, cell float64) (*mesh.Mesh, error) {
	length := 0.30 * radius
	width := 0.12 * radius
	relief := radius / 20

	cols := int(math.Ceil(length / cell))
	rows := int(math.Ceil(width / cell))
	if cols < 4 {
		cols = 4
	}
	if rows < 4 {
		rows = 4
	}

	g := grid.Ellipse(rows, cols)
	m, err := builder.Build(g, surface.Constant(relief), builder.Options{
		CellDX: length / float64(cols),
		CellDY: width / float64(rows),
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// weldTriangles turns triangle soup from the marching-cubes renderer
// into an indexed mesh, merging vertices that coincide exactly.
func weldTriangles(tris []*sdf.Triangle3) *mesh.Mesh {
	m := mesh.New(len(tris), len(tris))
	index := make(map[v3.Vec]int, len(tris))
	for _, t := range tris {
		var f mesh.Face
		for j := 0; j < 3; j++ {
			v := t[j]
			idx, ok := index[v]
			if !ok {
				idx = m.AddVertex(mesh.Vec3{X: v.X, Y: v.Y, Z: v.Z})
				index[v] = idx
			}
			f[j] = idx
		}
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			continue // degenerate sliver from the renderer
		}
		m.AddFace(f[0], f[1], f[2])
	}
	return m
}
