package imaging

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// InkMaskOptions selects which pen colors count as drawing strokes.
type InkMaskOptions struct {
	// HueMin and HueMax bound the hue range (degrees, 0-360) accepted as
	// colored ink. The range may not wrap around 0.
	HueMin float64
	HueMax float64

	// MinSaturation is the minimum saturation (0-1) for a pixel to count
	// as colored ink rather than paper tint.
	MinSaturation float64

	// MaxBlackValue is the maximum HSV value (0-1) below which a pixel
	// counts as black ink regardless of hue.
	MaxBlackValue float64
}

// DefaultInkMaskOptions targets the common whiteboard case: blue marker
// plus black marker on a light background.
func DefaultInkMaskOptions() InkMaskOptions {
	return InkMaskOptions{
		HueMin:        200,
		HueMax:        260,
		MinSaturation: 0.25,
		MaxBlackValue: 0.4,
	}
}

// InkMask segments drawing strokes by pen color in HSV space.
//
// It is an alternative to threshold-based binarization for photos where
// shadows defeat luminance thresholds but the pen color is distinctive:
// a pixel is foreground when it is either dark (black ink) or saturated
// within the configured hue band (colored ink).
func InkMask(img image.Image, opts InkMaskOptions) *Mask {
	bounds := img.Bounds()
	m := NewMask(bounds.Dx(), bounds.Dy())

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c, ok := colorful.MakeColor(img.At(x+bounds.Min.X, y+bounds.Min.Y))
			if !ok {
				// Fully transparent pixel; treat as background.
				continue
			}
			h, s, v := c.Hsv()

			if v <= opts.MaxBlackValue {
				m.Set(x, y, true)
				continue
			}
			if s >= opts.MinSaturation && h >= opts.HueMin && h <= opts.HueMax {
				m.Set(x, y, true)
			}
		}
	}
	return m
}
