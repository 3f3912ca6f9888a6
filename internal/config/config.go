package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all tunable parameters of the conversion pipeline.
//
// Every field has a documented default chosen for hand-drawn diagrams
// photographed or scanned at typical resolutions. Values can be overridden
// by a YAML file (see Load) and individually by environment variables
// (see ApplyEnv).
type Config struct {
	// NoiseFloorArea is the contour area (in square pixels) at or below
	// which a boundary is discarded as noise before classification.
	NoiseFloorArea float64 `yaml:"noise_floor_area"`

	// ApproxEpsilonRatio scales the polygon-approximation tolerance:
	// points closer than ApproxEpsilonRatio × perimeter to the connecting
	// chord are dropped. This is a tunable constant, not a derived value.
	ApproxEpsilonRatio float64 `yaml:"approx_epsilon_ratio"`

	// SquareAspectMin and SquareAspectMax bound the width/height aspect
	// ratio inside which a 4-vertex shape is classified as a square.
	SquareAspectMin float64 `yaml:"square_aspect_min"`
	SquareAspectMax float64 `yaml:"square_aspect_max"`

	// CircleAreaTolerance is the maximum relative deviation between a
	// polygon's area and its minimum enclosing circle's area for the
	// shape to be classified as a circle.
	CircleAreaTolerance float64 `yaml:"circle_area_tolerance"`

	// MinFontSize and MaxFontSize clamp the font size inferred from a
	// recognized text span's height.
	MinFontSize float64 `yaml:"min_font_size"`
	MaxFontSize float64 `yaml:"max_font_size"`

	// MaskSource selects how the binary stroke mask is produced:
	// "adaptive" (median blur + adaptive mean threshold, the default),
	// "edge" (Canny-style edge detection for thin high-contrast strokes),
	// or "ink" (HSV pen-color segmentation for colored markers).
	MaskSource string `yaml:"mask_source"`

	// MedianBlurRadius is the radius of the median filter applied before
	// thresholding to remove salt-and-pepper noise.
	MedianBlurRadius float64 `yaml:"median_blur_radius"`

	// AdaptiveBlockSize is the side length of the neighborhood used by
	// the adaptive mean threshold. Must be odd.
	AdaptiveBlockSize int `yaml:"adaptive_block_size"`

	// AdaptiveC is subtracted from the neighborhood mean when deciding
	// whether a pixel is a stroke pixel.
	AdaptiveC float64 `yaml:"adaptive_c"`

	// MorphRadius is the radius used for the open/close cleanup passes
	// after thresholding.
	MorphRadius float64 `yaml:"morph_radius"`

	// EdgeThresholdLow and EdgeThresholdHigh are the hysteresis
	// thresholds (0-255) used by the "edge" mask source.
	EdgeThresholdLow  int `yaml:"edge_threshold_low"`
	EdgeThresholdHigh int `yaml:"edge_threshold_high"`

	// InkHueMin and InkHueMax bound the hue range (degrees, 0-360)
	// accepted as colored ink by the "ink" mask source.
	InkHueMin float64 `yaml:"ink_hue_min"`
	InkHueMax float64 `yaml:"ink_hue_max"`

	// InkMinSaturation is the minimum saturation (0-1) for a pixel to
	// count as colored ink rather than paper tint.
	InkMinSaturation float64 `yaml:"ink_min_saturation"`

	// InkMaxBlackValue is the maximum HSV value (0-1) below which a pixel
	// counts as black ink regardless of hue.
	InkMaxBlackValue float64 `yaml:"ink_max_black_value"`

	// OCRLanguage is the Tesseract language code used for recognition.
	OCRLanguage string `yaml:"ocr_language"`

	// Workers is the number of images processed concurrently in batch
	// mode. Zero or negative means one worker per CPU.
	Workers int `yaml:"workers"`

	// DebugImages enables writing intermediate images (grayscale,
	// threshold) alongside the output artifacts.
	DebugImages bool `yaml:"debug_images"`
}

// Mask source names accepted by Config.MaskSource.
const (
	MaskSourceAdaptive = "adaptive"
	MaskSourceEdge     = "edge"
	MaskSourceInk      = "ink"
)

// Default returns the pipeline defaults.
func Default() Config {
	return Config{
		NoiseFloorArea:      5,
		ApproxEpsilonRatio:  0.015,
		SquareAspectMin:     0.95,
		SquareAspectMax:     1.05,
		CircleAreaTolerance: 0.2,
		MinFontSize:         8,
		MaxFontSize:         36,
		MaskSource:          MaskSourceAdaptive,
		MedianBlurRadius:    1.5,
		AdaptiveBlockSize:   25,
		AdaptiveC:           5,
		MorphRadius:         1,
		EdgeThresholdLow:    50,
		EdgeThresholdHigh:   150,
		InkHueMin:           200,
		InkHueMax:           260,
		InkMinSaturation:    0.25,
		InkMaxBlackValue:    0.4,
		OCRLanguage:         "eng",
		Workers:             0,
		DebugImages:         false,
	}
}

// Load reads a YAML config file and merges it over the defaults.
//
// A missing file is not an error: the defaults are returned unchanged so
// the tool runs without any configuration present.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides individual fields from SKETCH2X_* environment
// variables. Unset or malformed variables leave the field unchanged.
func (c *Config) ApplyEnv() {
	if v, ok := lookupFloat("SKETCH2X_NOISE_FLOOR_AREA"); ok {
		c.NoiseFloorArea = v
	}
	if v, ok := lookupFloat("SKETCH2X_APPROX_EPSILON_RATIO"); ok {
		c.ApproxEpsilonRatio = v
	}
	if v, ok := lookupInt("SKETCH2X_WORKERS"); ok {
		c.Workers = v
	}
	if v := os.Getenv("SKETCH2X_MASK_SOURCE"); v != "" {
		c.MaskSource = v
	}
	if v := os.Getenv("SKETCH2X_OCR_LANGUAGE"); v != "" {
		c.OCRLanguage = v
	}
	if v := os.Getenv("SKETCH2X_DEBUG_IMAGES"); v != "" {
		c.DebugImages = v == "1" || v == "true"
	}
}

// Validate reports the first invalid parameter combination found.
func (c Config) Validate() error {
	if c.ApproxEpsilonRatio <= 0 {
		return fmt.Errorf("approx_epsilon_ratio must be positive, got %g", c.ApproxEpsilonRatio)
	}
	if c.SquareAspectMin > c.SquareAspectMax {
		return fmt.Errorf("square aspect window inverted: min %g > max %g", c.SquareAspectMin, c.SquareAspectMax)
	}
	if c.MinFontSize > c.MaxFontSize {
		return fmt.Errorf("font size clamp inverted: min %g > max %g", c.MinFontSize, c.MaxFontSize)
	}
	if c.AdaptiveBlockSize < 3 || c.AdaptiveBlockSize%2 == 0 {
		return fmt.Errorf("adaptive_block_size must be odd and >= 3, got %d", c.AdaptiveBlockSize)
	}
	switch c.MaskSource {
	case MaskSourceAdaptive, MaskSourceEdge, MaskSourceInk:
	default:
		return fmt.Errorf("mask_source must be %q, %q, or %q, got %q",
			MaskSourceAdaptive, MaskSourceEdge, MaskSourceInk, c.MaskSource)
	}
	if c.EdgeThresholdLow > c.EdgeThresholdHigh {
		return fmt.Errorf("edge threshold window inverted: low %d > high %d",
			c.EdgeThresholdLow, c.EdgeThresholdHigh)
	}
	if c.InkHueMin > c.InkHueMax {
		return fmt.Errorf("ink hue band inverted: min %g > max %g", c.InkHueMin, c.InkHueMax)
	}
	return nil
}

func lookupFloat(key string) (float64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func lookupInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
