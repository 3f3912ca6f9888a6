package imaging

import (
	"image"
	"image/color"
)

// Mask is a binary stroke mask: true marks a foreground (drawing stroke)
// pixel. Coordinates are 0-based with origin at the top-left corner,
// independent of the source image's bounds offset.
type Mask struct {
	// Width is the mask width in pixels.
	Width int

	// Height is the mask height in pixels.
	Height int

	pixels [][]bool
}

// NewMask creates an all-background mask of the given dimensions.
func NewMask(width, height int) *Mask {
	pixels := make([][]bool, height)
	for y := range pixels {
		pixels[y] = make([]bool, width)
	}
	return &Mask{Width: width, Height: height, pixels: pixels}
}

// At reports whether (x, y) is a foreground pixel. Coordinates outside the
// mask are background, so callers can probe neighbors without bounds checks.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return m.pixels[y][x]
}

// Set marks (x, y) as foreground (true) or background (false).
// Out-of-range coordinates are ignored.
func (m *Mask) Set(x, y int, fg bool) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	m.pixels[y][x] = fg
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.pixels[y][x] {
				n++
			}
		}
	}
	return n
}

// MaskFromGray builds a mask from a grayscale image: pixels with luminance
// strictly above level become foreground. Use an inverted threshold image
// (strokes white) as input.
func MaskFromGray(img *image.Gray, level uint8) *Mask {
	bounds := img.Bounds()
	m := NewMask(bounds.Dx(), bounds.Dy())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if img.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y > level {
				m.pixels[y][x] = true
			}
		}
	}
	return m
}

// ToGray renders the mask as a grayscale image with foreground white (255)
// and background black (0). Used for debug artifacts and morphology.
func (m *Mask) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.pixels[y][x] {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}
