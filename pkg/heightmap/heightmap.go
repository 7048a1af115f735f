// Package heightmap provides 2D scalar fields and the filtering used to
// turn a leaf photograph into a printable vein relief: Gaussian
// smoothing, Sobel gradient magnitude, and the vein enhancement pass
// combining the two.
package heightmap

// Map is a dense rows x cols float field. Values are typically in
// [0, 1] but the type does not enforce a range.
type Map struct {
	rows, cols int
	data       []float64
}

// New returns a zero-filled map of the given size.
func New(rows, cols int) *Map {
	return &Map{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// Rows returns the number of rows.
func (m *Map) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Map) Cols() int { return m.cols }

// At returns the value at (i, j). Coordinates must be in range.
func (m *Map) At(i, j int) float64 { return m.data[i*m.cols+j] }

// Set stores v at (i, j). Coordinates must be in range.
func (m *Map) Set(i, j int, v float64) { m.data[i*m.cols+j] = v }

// atClamped returns the value at (i, j) with coordinates clamped to the
// map bounds, the edge handling used by the filters.
func (m *Map) atClamped(i, j int) float64 {
	if i < 0 {
		i = 0
	} else if i >= m.rows {
		i = m.rows - 1
	}
	if j < 0 {
		j = 0
	} else if j >= m.cols {
		j = m.cols - 1
	}
	return m.data[i*m.cols+j]
}

// Clone returns a deep copy.
func (m *Map) Clone() *Map {
	c := New(m.rows, m.cols)
	copy(c.data, m.data)
	return c
}

// Max returns the largest value in the map, or 0 for an empty map.
func (m *Map) Max() float64 {
	var max float64
	for i, v := range m.data {
		if i == 0 || v > max {
			max = v
		}
	}
	return max
}

// Mul multiplies the map pointwise by other in place. The maps must
// have identical shapes.
func (m *Map) Mul(other *Map) {
	for i := range m.data {
		m.data[i] *= other.data[i]
	}
}
