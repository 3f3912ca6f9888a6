package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
)

// BinarizeOptions controls the stroke extraction pass.
type BinarizeOptions struct {
	// MedianBlurRadius is the radius of the median filter applied before
	// thresholding. Zero disables the blur.
	MedianBlurRadius float64

	// BlockSize is the side length of the square neighborhood used by the
	// adaptive mean threshold. Must be odd and >= 3.
	BlockSize int

	// C is subtracted from the neighborhood mean; a pixel is a stroke
	// pixel when its luminance is below mean − C.
	C float64

	// MorphRadius is the radius for the open and close cleanup passes.
	// Zero disables morphology.
	MorphRadius float64
}

// DefaultBinarizeOptions returns the thresholding parameters tuned for
// hand-drawn diagrams under uneven lighting.
func DefaultBinarizeOptions() BinarizeOptions {
	return BinarizeOptions{
		MedianBlurRadius: 1.5,
		BlockSize:        25,
		C:                5,
		MorphRadius:      1,
	}
}

// Binarize converts a raw sketch image into a binary stroke mask.
//
// The pass mirrors the usual scanned-whiteboard recipe:
//
//  1. Grayscale conversion
//  2. Median blur to remove salt-and-pepper noise
//  3. Adaptive mean threshold (inverted: dark strokes become foreground),
//     computed with an integral image so the per-pixel mean is O(1)
//  4. Morphological open then close to drop speckles and heal small gaps
//
// Adaptive thresholding handles the uneven illumination typical of phone
// photos of paper, where a single global threshold loses faint strokes.
func Binarize(img image.Image, opts BinarizeOptions) *Mask {
	gray := effect.Grayscale(img)

	var blurred image.Image = gray
	if opts.MedianBlurRadius > 0 {
		blurred = effect.Median(gray, opts.MedianBlurRadius)
	}

	lum := luminancePlane(blurred)
	thresh := adaptiveMeanThreshold(lum, opts.BlockSize, opts.C)

	if opts.MorphRadius > 0 {
		// Open (erode then dilate) removes isolated noise pixels; close
		// (dilate then erode) reconnects strokes broken by thresholding.
		opened := effect.Dilate(effect.Erode(thresh, opts.MorphRadius), opts.MorphRadius)
		closed := effect.Erode(effect.Dilate(opened, opts.MorphRadius), opts.MorphRadius)
		return MaskFromGray(segment.Threshold(closed, 128), 0)
	}

	return MaskFromGray(thresh, 0)
}

// GlobalBinarize applies a single fixed threshold, inverted so dark strokes
// become foreground. It is a fallback for evenly lit, high-contrast input.
func GlobalBinarize(img image.Image, level uint8) *Mask {
	gray := segment.Threshold(img, level)
	bounds := gray.Bounds()
	m := NewMask(bounds.Dx(), bounds.Dy())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			// segment.Threshold marks bright pixels white; strokes are dark.
			if gray.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y == 0 {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

// luminancePlane extracts an 8-bit luminance plane from an image that is
// already gray-valued (all channels equal).
func luminancePlane(img image.Image) [][]uint8 {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	lum := make([][]uint8, height)
	for y := 0; y < height; y++ {
		lum[y] = make([]uint8, width)
		for x := 0; x < width; x++ {
			r, _, _, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			lum[y][x] = uint8(r >> 8)
		}
	}
	return lum
}

// adaptiveMeanThreshold produces an inverted binary image: pixels darker
// than their neighborhood mean minus c become white (stroke).
func adaptiveMeanThreshold(lum [][]uint8, blockSize int, c float64) *image.Gray {
	height := len(lum)
	if height == 0 {
		return image.NewGray(image.Rect(0, 0, 0, 0))
	}
	width := len(lum[0])
	half := blockSize / 2

	// Integral image with a zero row/column prefix.
	integral := make([][]int64, height+1)
	integral[0] = make([]int64, width+1)
	for y := 1; y <= height; y++ {
		integral[y] = make([]int64, width+1)
		var rowSum int64
		for x := 1; x <= width; x++ {
			rowSum += int64(lum[y-1][x-1])
			integral[y][x] = integral[y-1][x] + rowSum
		}
	}

	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		y1 := clamp(y-half, 0, height-1)
		y2 := clamp(y+half, 0, height-1)
		for x := 0; x < width; x++ {
			x1 := clamp(x-half, 0, width-1)
			x2 := clamp(x+half, 0, width-1)

			count := int64((y2 - y1 + 1) * (x2 - x1 + 1))
			sum := integral[y2+1][x2+1] - integral[y1][x2+1] - integral[y2+1][x1] + integral[y1][x1]
			mean := float64(sum) / float64(count)

			if float64(lum[y][x]) < mean-c {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}
