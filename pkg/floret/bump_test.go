package floret

import (
	"math"
	"testing"
)

func TestSphereTemplateClosed(t *testing.T) {
	m := sphereTemplate()
	if m.FaceCount() == 0 {
		t.Fatal("template has no faces")
	}
	if !m.IsWatertight() {
		t.Error("template should be watertight")
	}
	if !m.IsOriented() {
		t.Error("template should be consistently oriented")
	}
	if got := m.EulerCharacteristic(); got != 2 {
		t.Errorf("Euler characteristic = %d, want 2", got)
	}
}

func TestSphereTemplateReproducible(t *testing.T) {
	a := sphereTemplate()
	b := sphereTemplate()

	if a.VertexCount() != b.VertexCount() || a.FaceCount() != b.FaceCount() {
		t.Fatalf("template sizes differ: %d/%d verts, %d/%d faces",
			a.VertexCount(), b.VertexCount(), a.FaceCount(), b.FaceCount())
	}
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("vertex %d differs between template builds", i)
		}
	}
	for i := range a.Faces {
		if a.Faces[i] != b.Faces[i] {
			t.Fatalf("face %d differs between template builds", i)
		}
	}
}

func TestGeneratorAt(t *testing.T) {
	gen := NewGenerator(0.4, 0.6)
	p := Placement{X: 3, Y: -2, Z: 1.5, ScaleXY: 1, ScaleZ: 1, Rotation: 0.3}

	b := gen.At(p)
	if !b.IsWatertight() || !b.IsOriented() {
		t.Fatal("bump should stay closed after transform")
	}

	min, max := b.Bounds()
	cx := (min.X + max.X) / 2
	cy := (min.Y + max.Y) / 2
	cz := (min.Z + max.Z) / 2
	if math.Abs(cx-3) > 0.05 || math.Abs(cy+2) > 0.05 || math.Abs(cz-1.5) > 0.05 {
		t.Errorf("bump center = (%v, %v, %v), want near (3, -2, 1.5)", cx, cy, cz)
	}

	// Extent tracks radius in XY and height in Z.
	if got := (max.X - min.X) / 2; math.Abs(got-0.4) > 0.15 {
		t.Errorf("x half-extent = %v, want about 0.4", got)
	}
	if got := (max.Z - min.Z) / 2; math.Abs(got-0.6) > 0.25 {
		t.Errorf("z half-extent = %v, want about 0.6", got)
	}
}

func TestGeneratorScalesPerPlacement(t *testing.T) {
	gen := NewGenerator(1, 1)

	small := gen.At(Placement{ScaleXY: 0.7, ScaleZ: 1})
	large := gen.At(Placement{ScaleXY: 1.3, ScaleZ: 1})

	smin, smax := small.Bounds()
	lmin, lmax := large.Bounds()
	if (smax.X - smin.X) >= (lmax.X - lmin.X) {
		t.Error("larger scaleXY should produce a wider bump")
	}
}

func TestGeneratorTemplateNotMutated(t *testing.T) {
	gen := NewGenerator(0.5, 0.5)
	before := gen.template.VertexCount()
	v0 := gen.template.Vertices[0]

	_ = gen.At(Placement{X: 10, Y: 10, Z: 10, ScaleXY: 1.3, ScaleZ: 1.4, Rotation: 1})

	if gen.template.VertexCount() != before {
		t.Error("template vertex count changed")
	}
	if gen.template.Vertices[0] != v0 {
		t.Error("template vertices were mutated by At")
	}
}
