package floret

import (
	"sort"

	"github.com/unixpickle/model3d/model3d"

	"github.com/stigsb/rumi-leaf/pkg/mesh"
)

// templateDelta is the marching cubes cell size for the unit sphere
// template. 0.35 yields a few hundred triangles per bump, comparable to
// a once-subdivided icosphere.
const templateDelta = 0.35

// Generator stamps out bump meshes for a disc of a given scale.
type Generator struct {
	// Radius is the bump base radius, Height its unscaled height.
	Radius, Height float64

	template *mesh.Mesh
}

// NewGenerator builds the shared unit-sphere template once and returns
// a generator for bumps of the given base radius and height.
func NewGenerator(radius, height float64) *Generator {
	return &Generator{
		Radius:   radius,
		Height:   height,
		template: sphereTemplate(),
	}
}

// sphereTemplate meshes a unit sphere with marching cubes. The search
// refinement guarantees a closed, consistently oriented surface.
func sphereTemplate() *mesh.Mesh {
	solid := &model3d.Sphere{Radius: 1}
	m3 := model3d.MarchingCubesSearch(solid, templateDelta, 8)
	return fromModel3D(m3)
}

// fromModel3D converts a model3d triangle mesh into an indexed Mesh,
// welding vertices by exact coordinate so topology checks keep working.
// model3d stores triangles in a map, so Iterate's order varies between
// runs; the triangles are sorted into a canonical order first to keep
// the template byte-stable and seeded generation reproducible.
func fromModel3D(m3 *model3d.Mesh) *mesh.Mesh {
	var tris []*model3d.Triangle
	m3.Iterate(func(t *model3d.Triangle) {
		tris = append(tris, t)
	})
	sort.Slice(tris, func(a, b int) bool {
		return triangleLess(tris[a], tris[b])
	})

	m := mesh.New(0, 0)
	index := make(map[model3d.Coord3D]int)
	lookup := func(c model3d.Coord3D) int {
		if i, ok := index[c]; ok {
			return i
		}
		i := m.AddVertex(mesh.Vec3{X: c.X, Y: c.Y, Z: c.Z})
		index[c] = i
		return i
	}
	for _, t := range tris {
		m.AddFace(lookup(t[0]), lookup(t[1]), lookup(t[2]))
	}
	return m
}

// triangleLess orders triangles lexicographically by their vertex
// coordinates. Marching cubes never emits two triangles with identical
// vertices, so the order is total.
func triangleLess(a, b *model3d.Triangle) bool {
	for i := 0; i < 3; i++ {
		if a[i].X != b[i].X {
			return a[i].X < b[i].X
		}
		if a[i].Y != b[i].Y {
			return a[i].Y < b[i].Y
		}
		if a[i].Z != b[i].Z {
			return a[i].Z < b[i].Z
		}
	}
	return false
}

// At returns a fresh bump mesh for one placement: the template scaled
// anisotropically (XY by Radius*ScaleXY, Z by Height*ScaleZ), rotated
// about +Z, then translated to the placement point. The template is
// never mutated.
func (g *Generator) At(p Placement) *mesh.Mesh {
	b := g.template.Clone()
	b.ScaleXYZ(g.Radius*p.ScaleXY, g.Radius*p.ScaleXY, g.Height*p.ScaleZ)
	b.RotateZ(p.Rotation)
	b.Translate(p.X, p.Y, p.Z)
	return b
}
