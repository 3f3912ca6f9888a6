package excalidraw

import (
	"github.com/inkshape/sketch-to-excalidraw/internal/detection"
	"github.com/inkshape/sketch-to-excalidraw/internal/ocr"
)

// AssembleOptions holds the assembler's layout parameters.
type AssembleOptions struct {
	// MinFontSize and MaxFontSize clamp the font size inferred from a
	// text span's height (fontSize = height / 2, clamped).
	MinFontSize float64
	MaxFontSize float64
}

// DefaultAssembleOptions returns the assembler defaults.
func DefaultAssembleOptions() AssembleOptions {
	return AssembleOptions{MinFontSize: 8, MaxFontSize: 36}
}

// Assemble fuses classified shapes and recognized text spans into one
// ordered element sequence: all shape-derived elements first, then all
// text-derived elements, each stream in its input order.
//
// Given well-formed inputs no operation here can fail, so Assemble returns
// no error. Malformed spans (bottom corner above top corner) are accepted
// as-is: the negative height clamps to the minimum font size. Input
// validation is the recognizer's responsibility, not the assembler's.
func Assemble(shapes []detection.ShapeDescription, spans []ocr.TextSpan, opts AssembleOptions) []Element {
	elements := make([]Element, 0, len(shapes)+len(spans))

	for _, shape := range shapes {
		elements = append(elements, shapeElements(shape)...)
	}
	for _, span := range spans {
		elements = append(elements, textElement(span, opts))
	}

	return elements
}

// shapeElements maps one shape description to its diagram elements.
func shapeElements(shape detection.ShapeDescription) []Element {
	centerX := shape.X + shape.Width/2
	centerY := shape.Y + shape.Height/2

	switch shape.Kind {
	case detection.KindRectangle, detection.KindSquare:
		return []Element{NewRectangle(centerX, centerY, shape.Width, shape.Height)}

	case detection.KindCircle:
		return []Element{NewEllipse(centerX, centerY, shape.Width, shape.Height)}

	case detection.KindPolygon:
		// The target format has no closed-polyline primitive, so a
		// polygon with N vertices decomposes into N independent line
		// segments, the last one closing the loop.
		lines := make([]Element, 0, len(shape.Vertices))
		for i, start := range shape.Vertices {
			end := shape.Vertices[(i+1)%len(shape.Vertices)]
			lines = append(lines, NewLine(start.X, start.Y, end.X, end.Y))
		}
		return lines

	default:
		// Unidentified shapes are dropped silently by design; they are
		// not an error condition.
		return nil
	}
}

// textElement maps one text span to a text element.
//
// The element is created anchored at the span's center, because element
// sizing in the target format may depend on the creation-time anchor, and
// its position is then overridden to the span's top-left corner. The
// override is the element's final position in all cases.
func textElement(span ocr.TextSpan, opts AssembleOptions) Element {
	topLeft := span.Corners[0]
	bottomRight := span.Corners[2]

	height := bottomRight.Y - topLeft.Y
	fontSize := clampFloat(float64(height)/2, opts.MinFontSize, opts.MaxFontSize)

	centerX := (topLeft.X + bottomRight.X) / 2
	centerY := (topLeft.Y + bottomRight.Y) / 2

	el := NewText(centerX, centerY, span.Text, fontSize)
	el.X = topLeft.X
	el.Y = topLeft.Y
	return el
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
