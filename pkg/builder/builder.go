// Package builder turns an occupancy grid plus a height sampler into a
// closed triangle mesh: a top surface over the occupied cells, a flat
// bottom at -BaseThickness, and side walls along every transition from
// active to inactive quads. The result is watertight and consistently
// outward-oriented by construction; every directed edge is emitted
// exactly once in each direction.
package builder

import (
	"errors"

	"github.com/stigsb/rumi-leaf/pkg/grid"
	"github.com/stigsb/rumi-leaf/pkg/mesh"
	"github.com/stigsb/rumi-leaf/pkg/surface"
)

// ErrEmptyGrid is returned when the grid has no occupied cells at all.
var ErrEmptyGrid = errors.New("builder: occupancy grid has no occupied cells")

// Options sizes the built mesh.
type Options struct {
	// CellDX and CellDY are the world-space cell dimensions.
	CellDX, CellDY float64
	// BaseThickness is the distance from z=0 down to the flat bottom
	// surface. Zero puts the bottom at z=0.
	BaseThickness float64
}

// Build constructs the mesh. The grid is centered at the origin:
// vertex (i, j) sits at ((j - cols/2)*dx, (i - rows/2)*dy).
//
// Isolated occupied cells (no surrounding active quad) still allocate
// their vertex pair but no face references it; since STL output is
// per-triangle, such vertices never reach the exported file. A grid
// with occupied cells but zero active quads therefore yields a mesh
// with vertices and an empty face list; callers must treat an empty
// face list as degenerate rather than export it.
func Build(g *grid.Grid, s surface.Sampler, opts Options) (*mesh.Mesh, error) {
	if g == nil || g.Rows() == 0 || g.Cols() == 0 {
		return nil, errors.New("builder: nil or zero-sized grid")
	}
	occupied := g.OccupiedCount()
	if occupied == 0 {
		return nil, ErrEmptyGrid
	}

	rows, cols := g.Rows(), g.Cols()
	m := mesh.New(occupied*2, g.ActiveQuadCount()*4)

	// Vertex arena keyed by (i*cols + j)*2 + surface, -1 when absent.
	// Even offsets are top vertices, odd are bottom.
	arena := make([]int32, rows*cols*2)
	for i := range arena {
		arena[i] = -1
	}
	top := func(i, j int) int { return int(arena[(i*cols+j)*2]) }
	bottom := func(i, j int) int { return int(arena[(i*cols+j)*2+1]) }

	for i := 0; i < rows; i++ {
		y := (float64(i) - float64(rows)/2) * opts.CellDY
		for j := 0; j < cols; j++ {
			if !g.Occupied(i, j) {
				continue
			}
			x := (float64(j) - float64(cols)/2) * opts.CellDX
			arena[(i*cols+j)*2] = int32(m.AddVertex(mesh.Vec3{X: x, Y: y, Z: s.At(i, j)}))
			arena[(i*cols+j)*2+1] = int32(m.AddVertex(mesh.Vec3{X: x, Y: y, Z: -opts.BaseThickness}))
		}
	}

	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			if !g.ActiveQuad(i, j) {
				continue
			}

			t00, t01 := top(i, j), top(i, j+1)
			t10, t11 := top(i+1, j), top(i+1, j+1)
			b00, b01 := bottom(i, j), bottom(i, j+1)
			b10, b11 := bottom(i+1, j), bottom(i+1, j+1)

			// Top surface, CCW from +Z, split on the 00-11 diagonal.
			m.AddFace(t00, t01, t11)
			m.AddFace(t00, t11, t10)
			// Bottom surface, reversed winding.
			m.AddFace(b00, b11, b01)
			m.AddFace(b00, b10, b11)

			// Walls wherever the neighboring quad is inactive or off
			// the grid. Each wall is wound so its normal points away
			// from the quad interior.
			if !g.ActiveQuad(i-1, j) { // north, outward -Y
				m.AddFace(b00, t01, t00)
				m.AddFace(b00, b01, t01)
			}
			if !g.ActiveQuad(i+1, j) { // south, outward +Y
				m.AddFace(b10, t10, t11)
				m.AddFace(b10, t11, b11)
			}
			if !g.ActiveQuad(i, j-1) { // west, outward -X
				m.AddFace(b00, t00, t10)
				m.AddFace(b00, t10, b10)
			}
			if !g.ActiveQuad(i, j+1) { // east, outward +X
				m.AddFace(b01, t11, t01)
				m.AddFace(b01, b11, t11)
			}
		}
	}

	return m, nil
}
