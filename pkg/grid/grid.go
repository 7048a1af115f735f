// Package grid provides the 2D occupancy grids that drive mesh
// construction: boolean masks marking which cells of a downsampled
// coordinate space belong to the modeled shape.
package grid

import (
	"github.com/stigsb/rumi-leaf/pkg/heightmap"
)

// Grid is a boolean occupancy mask over a rows x cols index space.
// Queries outside the grid return false, so callers can probe neighbor
// cells without bounds checks of their own.
type Grid struct {
	rows, cols int
	cells      []bool
}

// New returns an all-unoccupied grid of the given size.
func New(rows, cols int) *Grid {
	return &Grid{rows: rows, cols: cols, cells: make([]bool, rows*cols)}
}

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return g.cols }

// Occupied reports whether cell (i, j) is occupied. Out-of-range
// coordinates are unoccupied.
func (g *Grid) Occupied(i, j int) bool {
	if i < 0 || i >= g.rows || j < 0 || j >= g.cols {
		return false
	}
	return g.cells[i*g.cols+j]
}

// Set marks cell (i, j) occupied or not. Out-of-range coordinates are
// ignored.
func (g *Grid) Set(i, j int, occupied bool) {
	if i < 0 || i >= g.rows || j < 0 || j >= g.cols {
		return
	}
	g.cells[i*g.cols+j] = occupied
}

// ActiveQuad reports whether the unit quad with top-left corner (i, j)
// has all four corner cells occupied. Only active quads emit surface
// geometry.
func (g *Grid) ActiveQuad(i, j int) bool {
	return g.Occupied(i, j) && g.Occupied(i, j+1) &&
		g.Occupied(i+1, j) && g.Occupied(i+1, j+1)
}

// OccupiedCount returns the number of occupied cells.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// ActiveQuadCount returns the number of active quads.
func (g *Grid) ActiveQuadCount() int {
	n := 0
	for i := 0; i < g.rows-1; i++ {
		for j := 0; j < g.cols-1; j++ {
			if g.ActiveQuad(i, j) {
				n++
			}
		}
	}
	return n
}

// FromAlpha builds an occupancy grid by stride-sampling an alpha map.
// The output has shape (ceil(H/stride), ceil(W/stride)); cell (i, j)
// samples alpha at (min(i*stride, H-1), min(j*stride, W-1)) and is
// occupied when the sample exceeds threshold. This is a deliberate
// nearest-sample downsampling, not an area average.
func FromAlpha(alpha *heightmap.Map, stride int, threshold float64) *Grid {
	h, w := alpha.Rows(), alpha.Cols()
	rows := (h + stride - 1) / stride
	cols := (w + stride - 1) / stride
	g := New(rows, cols)
	for i := 0; i < rows; i++ {
		si := min(i*stride, h-1)
		for j := 0; j < cols; j++ {
			sj := min(j*stride, w-1)
			if alpha.At(si, sj) > threshold {
				g.cells[i*cols+j] = true
			}
		}
	}
	return g
}

// Disc returns a cells x cells grid whose occupied region is the
// largest disc that fits: a cell is occupied iff its center lies within
// the disc radius.
func Disc(cells int) *Grid {
	return Ellipse(cells, cells)
}

// Ellipse returns a rows x cols grid whose occupied region is the
// axis-aligned ellipse inscribed in the grid.
func Ellipse(rows, cols int) *Grid {
	g := New(rows, cols)
	ry := float64(rows) / 2
	rx := float64(cols) / 2
	for i := 0; i < rows; i++ {
		dy := (float64(i) + 0.5 - ry) / ry
		for j := 0; j < cols; j++ {
			dx := (float64(j) + 0.5 - rx) / rx
			if dx*dx+dy*dy <= 1 {
				g.cells[i*cols+j] = true
			}
		}
	}
	return g
}
