package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Point represents a 2D pixel coordinate.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// TextSpan is one recognized text region.
//
// Corners holds the quadrilateral bounding region ordered [top-left,
// top-right, bottom-right, bottom-left], starting at the top-left-most
// corner. Downstream consumers rely on Corners[0] being top-left and
// Corners[2] bottom-right.
type TextSpan struct {
	// Corners is the quadrilateral bounding region in image pixel
	// coordinates.
	Corners [4]Point `json:"corners"`

	// Text is the recognized UTF-8 string.
	Text string `json:"text"`

	// Confidence is the recognition confidence in [0, 1]. It is
	// informational only and is not propagated into output documents.
	Confidence float64 `json:"confidence"`
}

// Recognizer produces text spans for an image file.
//
// The pipeline depends on this interface rather than on Tesseract
// directly, so tests and alternative recognizers can substitute their own
// span source.
type Recognizer interface {
	Recognize(imagePath string) ([]TextSpan, error)
}

// TesseractRecognizer recognizes text with the Tesseract engine via
// gosseract. Tesseract and the language data must be installed on the
// system (e.g., apt-get install tesseract-ocr tesseract-ocr-eng).
type TesseractRecognizer struct {
	// Language is the Tesseract language code, e.g. "eng".
	Language string
}

// NewTesseractRecognizer returns a recognizer for the given language code.
func NewTesseractRecognizer(language string) *TesseractRecognizer {
	return &TesseractRecognizer{Language: language}
}

// Recognize performs word-level OCR on an image file.
//
// Each recognized word becomes one TextSpan with an axis-aligned
// quadrilateral (Tesseract reports rectangular word boxes) and its
// confidence normalized to [0, 1]. Empty words are filtered out. Spans are
// returned in Tesseract's reading order, which is stable for identical
// input.
func (r *TesseractRecognizer) Recognize(imagePath string) ([]TextSpan, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(r.Language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("failed to get bounding boxes: %w", err)
	}

	spans := make([]TextSpan, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		spans = append(spans, TextSpan{
			Corners: [4]Point{
				{X: box.Box.Min.X, Y: box.Box.Min.Y}, // top-left
				{X: box.Box.Max.X, Y: box.Box.Min.Y}, // top-right
				{X: box.Box.Max.X, Y: box.Box.Max.Y}, // bottom-right
				{X: box.Box.Min.X, Y: box.Box.Max.Y}, // bottom-left
			},
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
		})
	}

	return spans, nil
}

// Version returns the Tesseract version string, used for startup
// diagnostics.
func Version() (string, error) {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version(), nil
}
