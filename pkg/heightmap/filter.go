package heightmap

import "math"

// veinDepth scales how strongly gradient edges are carved out of the
// surface during enhancement. Tuned for print appearance.
const veinDepth = 0.2

// GaussianBlur returns the map convolved with a separable Gaussian
// kernel of the given sigma. The kernel radius is ceil(3*sigma); edges
// are clamp-extended. A sigma <= 0 returns an unfiltered copy.
func GaussianBlur(m *Map, sigma float64) *Map {
	if sigma <= 0 {
		return m.Clone()
	}
	radius := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	// Horizontal pass, then vertical.
	tmp := New(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			var acc float64
			for k, w := range kernel {
				acc += w * m.atClamped(i, j+k-radius)
			}
			tmp.Set(i, j, acc)
		}
	}
	out := New(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			var acc float64
			for k, w := range kernel {
				acc += w * tmp.atClamped(i+k-radius, j)
			}
			out.Set(i, j, acc)
		}
	}
	return out
}

// SobelMagnitude returns sqrt(gx^2 + gy^2) of the standard 3x3 Sobel
// kernels with clamp-extended edges.
func SobelMagnitude(m *Map) *Map {
	out := New(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			gx := -m.atClamped(i-1, j-1) + m.atClamped(i-1, j+1) +
				-2*m.atClamped(i, j-1) + 2*m.atClamped(i, j+1) +
				-m.atClamped(i+1, j-1) + m.atClamped(i+1, j+1)
			gy := -m.atClamped(i-1, j-1) - 2*m.atClamped(i-1, j) - m.atClamped(i-1, j+1) +
				m.atClamped(i+1, j-1) + 2*m.atClamped(i+1, j) + m.atClamped(i+1, j+1)
			out.Set(i, j, math.Hypot(gx, gy))
		}
	}
	return out
}

// Enhance sharpens vein structure in a leaf height map: smooth, carve
// out the (normalized) gradient edges, mask by alpha, smooth again,
// mask again. The result has the same shape as the inputs.
func Enhance(height, alpha *Map) *Map {
	smoothed := GaussianBlur(height, 3.5)
	grad := SobelMagnitude(smoothed)
	if max := grad.Max(); max > 0 {
		for i := range grad.data {
			grad.data[i] /= max
		}
	}

	enhanced := New(height.rows, height.cols)
	for i := range enhanced.data {
		enhanced.data[i] = smoothed.data[i] - grad.data[i]*veinDepth
	}
	enhanced.Mul(alpha)
	enhanced = GaussianBlur(enhanced, 1.5)
	enhanced.Mul(alpha)
	return enhanced
}
