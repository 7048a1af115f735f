package mesh

import "math"

// Translate moves every vertex by (x, y, z) in place.
func (m *Mesh) Translate(x, y, z float64) {
	for i := range m.Vertices {
		m.Vertices[i].X += x
		m.Vertices[i].Y += y
		m.Vertices[i].Z += z
	}
}

// ScaleXYZ scales every vertex component-wise about the origin in place.
// Negative factors would flip face orientation and are the caller's
// responsibility to avoid.
func (m *Mesh) ScaleXYZ(sx, sy, sz float64) {
	for i := range m.Vertices {
		m.Vertices[i].X *= sx
		m.Vertices[i].Y *= sy
		m.Vertices[i].Z *= sz
	}
}

// RotateZ rotates every vertex about the +Z axis by angle radians,
// counter-clockwise when viewed from +Z, in place.
func (m *Mesh) RotateZ(angle float64) {
	sin, cos := math.Sincos(angle)
	for i := range m.Vertices {
		x, y := m.Vertices[i].X, m.Vertices[i].Y
		m.Vertices[i].X = x*cos - y*sin
		m.Vertices[i].Y = x*sin + y*cos
	}
}
