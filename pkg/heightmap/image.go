package heightmap

import (
	"image"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
)

// LoadImage decodes an image file into a height map and an alpha mask,
// both in [0, 1]. Luminance uses the Rec. 601 weights and is inverted
// so that dark veins become low terrain; the height map is pre-masked
// by alpha so fully transparent pixels carry zero height.
func LoadImage(path string) (height, alpha *Map, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load image")
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "decode image %s", path)
	}
	h, a := FromImage(img)
	return h, a, nil
}

// FromImage converts a decoded image into height and alpha maps.
func FromImage(img image.Image) (height, alpha *Map) {
	bounds := img.Bounds()
	rows := bounds.Dy()
	cols := bounds.Dx()
	height = New(rows, cols)
	alpha = New(rows, cols)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			r, g, b, a := img.At(bounds.Min.X+j, bounds.Min.Y+i).RGBA()
			av := float64(a) / 0xffff
			gray := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 0xffff
			// Un-premultiply so color stays meaningful under partial alpha.
			if av > 0 {
				gray /= av
			}
			if gray > 1 {
				gray = 1
			}
			alpha.Set(i, j, av)
			height.Set(i, j, (1-gray)*av)
		}
	}
	return height, alpha
}
