// Package surface maps occupancy-grid cells to top-surface heights.
// The mesh builder is oblivious to where heights come from; the two
// real implementations are a parametric convex disc profile and a
// lookup into a filtered heightmap.
package surface

import (
	"math"

	"github.com/stigsb/rumi-leaf/pkg/heightmap"
)

// Sampler yields the top-surface height for a grid cell.
type Sampler interface {
	At(i, j int) float64
}

// ConvexHeight evaluates the parabolic disc profile at radial distance
// r from the center: base*(1 + convexity*(1 - (r/R)^2)). The profile
// peaks at base*(1+convexity) in the center and falls to base at the
// rim; beyond the rim it is clamped to base.
func ConvexHeight(r, radius, base, convexity float64) float64 {
	if radius <= 0 {
		return base
	}
	t := r / radius
	if t > 1 {
		t = 1
	}
	return base * (1 + convexity*(1-t*t))
}

// Convex samples the parabolic disc profile over a grid centered at the
// origin, with cells of size CellDX x CellDY.
type Convex struct {
	Rows, Cols     int
	CellDX, CellDY float64
	Radius         float64
	Base           float64
	Convexity      float64
}

// At returns the profile height at the world position of cell (i, j),
// using the same origin-centered vertex positions the mesh builder
// assigns, so the sampled height lands exactly on the built surface.
func (c *Convex) At(i, j int) float64 {
	x := (float64(j) - float64(c.Cols)/2) * c.CellDX
	y := (float64(i) - float64(c.Rows)/2) * c.CellDY
	return ConvexHeight(math.Hypot(x, y), c.Radius, c.Base, c.Convexity)
}

// FromMap samples a heightmap at full resolution from downsampled grid
// coordinates, scaled to world units. The stride and clamping mirror
// the occupancy grid construction so grid cell (i, j) reads the same
// source pixel its occupancy test did.
type FromMap struct {
	Map    *heightmap.Map
	Stride int
	ScaleZ float64
}

// At returns the scaled heightmap value for grid cell (i, j).
func (f *FromMap) At(i, j int) float64 {
	si := min(i*f.Stride, f.Map.Rows()-1)
	sj := min(j*f.Stride, f.Map.Cols()-1)
	return f.Map.At(si, sj) * f.ScaleZ
}

// Constant returns the same height everywhere. Used by tests and flat
// slabs.
type Constant float64

// At returns the constant height.
func (c Constant) At(i, j int) float64 { return float64(c) }
