package excalidraw

// Default styling applied to every shape element. The converter emits
// plain black-on-white drawings; styling is not inferred from the source
// image.
const (
	defaultFillColor   = "#FFFFFF"
	defaultStrokeColor = "#000000"
	defaultTextColor   = "#000000"
	defaultStrokeWidth = 1
)

// Element is one drawable unit of a diagram document.
//
// Concrete types are Rectangle, Ellipse, Line, and Text. The interface is
// sealed: elements are created only by this package's constructors and the
// assembler, appended once to the output sequence, and never mutated after
// creation except for the text anchor override described in Text.
type Element interface {
	// ElementType returns the wire-format type tag ("rectangle",
	// "ellipse", "line", or "text").
	ElementType() string
}

// Rectangle is a rectangle element anchored at its center point.
type Rectangle struct {
	Type        string `json:"type"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Angle       int    `json:"angle"`
	FillColor   string `json:"fillColor"`
	StrokeColor string `json:"strokeColor"`
	StrokeWidth int    `json:"strokeWidth"`
	Text        string `json:"text"`
}

// ElementType implements Element.
func (r *Rectangle) ElementType() string { return r.Type }

// NewRectangle creates a rectangle element anchored at (x, y).
func NewRectangle(x, y, width, height int) *Rectangle {
	return &Rectangle{
		Type:        "rectangle",
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Angle:       0,
		FillColor:   defaultFillColor,
		StrokeColor: defaultStrokeColor,
		StrokeWidth: defaultStrokeWidth,
		Text:        "",
	}
}

// Ellipse is an ellipse element anchored at its center point. It carries
// the same fields as Rectangle with a different type tag.
type Ellipse struct {
	Type        string `json:"type"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Angle       int    `json:"angle"`
	FillColor   string `json:"fillColor"`
	StrokeColor string `json:"strokeColor"`
	StrokeWidth int    `json:"strokeWidth"`
	Text        string `json:"text"`
}

// ElementType implements Element.
func (e *Ellipse) ElementType() string { return e.Type }

// NewEllipse creates an ellipse element anchored at (x, y).
func NewEllipse(x, y, width, height int) *Ellipse {
	return &Ellipse{
		Type:        "ellipse",
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Angle:       0,
		FillColor:   defaultFillColor,
		StrokeColor: defaultStrokeColor,
		StrokeWidth: defaultStrokeWidth,
		Text:        "",
	}
}

// Line is a straight line segment between two endpoints in integer pixel
// coordinates.
type Line struct {
	Type string `json:"type"`
	X1   int    `json:"x1"`
	Y1   int    `json:"y1"`
	X2   int    `json:"x2"`
	Y2   int    `json:"y2"`
}

// ElementType implements Element.
func (l *Line) ElementType() string { return l.Type }

// NewLine creates a line element from (x1, y1) to (x2, y2).
func NewLine(x1, y1, x2, y2 int) *Line {
	return &Line{Type: "line", X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Text is a text element anchored at its top-left corner.
//
// The assembler first creates a text element at the center of its source
// span and then overrides X and Y to the span's top-left corner; those two
// position corrections are the only mutation any element receives.
type Text struct {
	Type     string  `json:"type"`
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Text     string  `json:"text"`
	FontSize float64 `json:"fontSize"`
	Color    string  `json:"color"`
}

// ElementType implements Element.
func (t *Text) ElementType() string { return t.Type }

// NewText creates a text element anchored at (x, y) with the given content
// and font size.
func NewText(x, y int, text string, fontSize float64) *Text {
	return &Text{
		Type:     "text",
		X:        x,
		Y:        y,
		Text:     text,
		FontSize: fontSize,
		Color:    defaultTextColor,
	}
}
