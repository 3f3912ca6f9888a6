package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// SaveDebugImage writes an intermediate pipeline image to disk as PNG.
//
// The format is inferred from the path extension by the encoder, so the
// caller should use a ".png" suffix for lossless output.
func SaveDebugImage(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save debug image %s: %w", path, err)
	}
	return nil
}

// Grayscale returns a grayscale rendition of the image, used for the
// numbered debug artifact written before thresholding.
func Grayscale(img image.Image) *image.NRGBA {
	return imaging.Grayscale(img)
}
