package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates a solid color image for testing
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestEdgeMask_UniformImage(t *testing.T) {
	// Uniform image should have no edges
	img := createInMemoryImage(50, 50, color.RGBA{128, 128, 128, 255})

	mask := EdgeMask(img, 50, 150)

	if mask.Width != 50 || mask.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", mask.Width, mask.Height)
	}
	if n := mask.Count(); n != 0 {
		t.Errorf("uniform image should have no edge pixels, got %d", n)
	}
}

func TestEdgeMask_StrongEdge(t *testing.T) {
	// Create image with strong contrast edge
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x < 50 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}

	mask := EdgeMask(img, 50, 150)

	// The edge should be detected around x=50
	edgeFound := false
	for x := 48; x <= 52; x++ {
		if mask.At(x, 50) {
			edgeFound = true
			break
		}
	}

	if !edgeFound {
		t.Error("strong vertical edge was not detected")
	}
}

func TestEdgeMask_SmallImage(t *testing.T) {
	// Very small image (edge cases for convolution)
	img := createInMemoryImage(5, 5, color.RGBA{128, 128, 128, 255})

	mask := EdgeMask(img, 50, 150)

	if mask.Width != 5 || mask.Height != 5 {
		t.Errorf("dimensions: got %dx%d, want 5x5", mask.Width, mask.Height)
	}
}

func TestGaussianBlur(t *testing.T) {
	// Create a simple test image as float array
	width, height := 10, 10
	img := make([][]float64, height)
	for y := 0; y < height; y++ {
		img[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			img[y][x] = 0.5 // uniform gray
		}
	}

	blurred := gaussianBlur(img, width, height)

	// Uniform image should remain uniform after blur
	for y := 2; y < height-2; y++ {
		for x := 2; x < width-2; x++ {
			if absFloat(blurred[y][x]-0.5) > 0.01 {
				t.Errorf("blurred[%d][%d]: got %.3f, want ~0.5", y, x, blurred[y][x])
			}
		}
	}
}

func TestGaussianBlur_WithSpot(t *testing.T) {
	// Create image with a bright spot
	width, height := 11, 11
	img := make([][]float64, height)
	for y := 0; y < height; y++ {
		img[y] = make([]float64, width)
	}
	img[5][5] = 1.0 // bright spot in center

	blurred := gaussianBlur(img, width, height)

	// The spot should be spread out: center lower than 1.0, neighbors nonzero
	if blurred[5][5] >= 1.0 {
		t.Errorf("center should be reduced by blur, got %.3f", blurred[5][5])
	}
	if blurred[5][6] <= 0 {
		t.Error("neighbor should receive some intensity from blur")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tt := range tests {
		if got := clamp(tt.val, tt.min, tt.max); got != tt.want {
			t.Errorf("clamp(%d, %d, %d): got %d, want %d", tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
