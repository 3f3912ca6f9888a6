package detection

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/inkshape/sketch-to-excalidraw/internal/contour"
)

// ringBoundary builds a densely sampled closed boundary from corner points,
// walking each edge in unit steps the way a traced contour would.
func ringBoundary(corners []contour.Point) contour.Boundary {
	var points []contour.Point
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		dx := b.X - a.X
		dy := b.Y - a.Y
		steps := maxInt(absInt(dx), absInt(dy))
		for s := 0; s < steps; s++ {
			points = append(points, contour.Point{
				X: a.X + dx*s/steps,
				Y: a.Y + dy*s/steps,
			})
		}
	}

	var perimeter float64
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		perimeter += math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
	}

	// Shoelace over the corners; the dense samples lie on the edges.
	var area float64
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		area += float64(a.X)*float64(b.Y) - float64(b.X)*float64(a.Y)
	}

	return contour.Boundary{
		Points:    points,
		Area:      math.Abs(area) / 2,
		Perimeter: perimeter,
	}
}

// circleBoundary builds a densely sampled circular boundary.
func circleBoundary(cx, cy, radius float64, samples int) contour.Boundary {
	var points []contour.Point
	for i := 0; i < samples; i++ {
		angle := 2 * math.Pi * float64(i) / float64(samples)
		p := contour.Point{
			X: int(math.Round(cx + radius*math.Cos(angle))),
			Y: int(math.Round(cy + radius*math.Sin(angle))),
		}
		if len(points) > 0 && p == points[len(points)-1] {
			continue
		}
		points = append(points, p)
	}
	return contour.Boundary{
		Points:    points,
		Area:      math.Pi * radius * radius,
		Perimeter: 2 * math.Pi * radius,
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func TestClassify_Square(t *testing.T) {
	b := ringBoundary([]contour.Point{
		{X: 10, Y: 10}, {X: 60, Y: 10}, {X: 60, Y: 60}, {X: 10, Y: 60},
	})

	desc := Classify(b, DefaultClassifyOptions())

	if desc.Kind != KindSquare {
		t.Fatalf("Kind: got %v, want Square", desc.Kind)
	}
	if desc.X != 10 || desc.Y != 10 || desc.Width != 50 || desc.Height != 50 {
		t.Errorf("bounding box: got (%d,%d,%d,%d), want (10,10,50,50)",
			desc.X, desc.Y, desc.Width, desc.Height)
	}
	if desc.VertexCount != 4 {
		t.Errorf("VertexCount: got %d, want 4", desc.VertexCount)
	}
}

func TestClassify_Rectangle(t *testing.T) {
	b := ringBoundary([]contour.Point{
		{X: 0, Y: 0}, {X: 80, Y: 0}, {X: 80, Y: 40}, {X: 0, Y: 40},
	})

	desc := Classify(b, DefaultClassifyOptions())

	if desc.Kind != KindRectangle {
		t.Fatalf("Kind: got %v, want Rectangle", desc.Kind)
	}
	if desc.Width != 80 || desc.Height != 40 {
		t.Errorf("extents: got %dx%d, want 80x40", desc.Width, desc.Height)
	}
}

func TestClassify_Circle(t *testing.T) {
	b := circleBoundary(50, 50, 30, 240)

	desc := Classify(b, DefaultClassifyOptions())

	if desc.Kind != KindCircle {
		t.Fatalf("Kind: got %v (%d vertices)", desc.Kind, desc.VertexCount)
	}
	if desc.VertexCount <= 4 {
		t.Errorf("a circle should approximate to more than 4 vertices, got %d", desc.VertexCount)
	}
}

func TestClassify_Polygon_LShape(t *testing.T) {
	// An L covers about half its enclosing circle, well past the circle
	// area tolerance.
	b := ringBoundary([]contour.Point{
		{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 20},
		{X: 20, Y: 20}, {X: 20, Y: 40}, {X: 0, Y: 40},
	})

	desc := Classify(b, DefaultClassifyOptions())

	if desc.Kind != KindPolygon {
		t.Fatalf("Kind: got %v, want Polygon", desc.Kind)
	}
	if desc.VertexCount != 6 {
		t.Errorf("VertexCount: got %d, want 6", desc.VertexCount)
	}
}

func TestClassify_Triangle(t *testing.T) {
	b := ringBoundary([]contour.Point{
		{X: 0, Y: 0}, {X: 60, Y: 0}, {X: 30, Y: 50},
	})

	desc := Classify(b, DefaultClassifyOptions())

	// Three vertices fall through to the polygon fallback.
	if desc.Kind != KindPolygon {
		t.Fatalf("Kind: got %v, want Polygon", desc.Kind)
	}
}

func TestClassify_SquashedBoxIsRectangle(t *testing.T) {
	// Just outside the square aspect window.
	b := ringBoundary([]contour.Point{
		{X: 0, Y: 0}, {X: 55, Y: 0}, {X: 55, Y: 50}, {X: 0, Y: 50},
	})

	desc := Classify(b, DefaultClassifyOptions())

	if desc.Kind != KindRectangle {
		t.Fatalf("aspect 1.1 should classify as Rectangle, got %v", desc.Kind)
	}
}

func TestApproxPolygon_SquareRing(t *testing.T) {
	b := ringBoundary([]contour.Point{
		{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}, {X: 0, Y: 50},
	})

	approx := ApproxPolygon(b.Points, 0.015*b.Perimeter)

	if len(approx) != 4 {
		t.Fatalf("approximated vertex count: got %d, want 4", len(approx))
	}
	want := map[contour.Point]bool{
		{X: 0, Y: 0}: true, {X: 50, Y: 0}: true,
		{X: 50, Y: 50}: true, {X: 0, Y: 50}: true,
	}
	for _, p := range approx {
		if !want[p] {
			t.Errorf("unexpected vertex %v", p)
		}
	}
}

func TestApproxPolygon_ShortInputUnchanged(t *testing.T) {
	points := []contour.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}}

	approx := ApproxPolygon(points, 3)

	if len(approx) != 3 {
		t.Fatalf("three points should pass through, got %d", len(approx))
	}
	for i := range points {
		if approx[i] != points[i] {
			t.Errorf("vertex %d changed: got %v, want %v", i, approx[i], points[i])
		}
	}
}

func TestMinEnclosingCircle(t *testing.T) {
	tests := []struct {
		name       string
		points     []contour.Point
		wantCenter r2.Vec
		wantRadius float64
	}{
		{
			name:       "single point",
			points:     []contour.Point{{X: 3, Y: 4}},
			wantCenter: r2.Vec{X: 3, Y: 4},
			wantRadius: 0,
		},
		{
			name:       "two points",
			points:     []contour.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
			wantCenter: r2.Vec{X: 5, Y: 0},
			wantRadius: 5,
		},
		{
			name: "square corners",
			points: []contour.Point{
				{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
			},
			wantCenter: r2.Vec{X: 5, Y: 5},
			wantRadius: math.Sqrt(50),
		},
		{
			name:       "collinear points",
			points:     []contour.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 10, Y: 0}},
			wantCenter: r2.Vec{X: 5, Y: 0},
			wantRadius: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			center, radius := MinEnclosingCircle(tt.points)
			if math.Abs(center.X-tt.wantCenter.X) > 1e-6 || math.Abs(center.Y-tt.wantCenter.Y) > 1e-6 {
				t.Errorf("center: got %v, want %v", center, tt.wantCenter)
			}
			if math.Abs(radius-tt.wantRadius) > 1e-6 {
				t.Errorf("radius: got %f, want %f", radius, tt.wantRadius)
			}
		})
	}
}

func TestMinEnclosingCircle_Empty(t *testing.T) {
	_, radius := MinEnclosingCircle(nil)
	if radius != 0 {
		t.Errorf("empty input: radius should be 0, got %f", radius)
	}
}

func TestMinEnclosingCircle_ContainsAll(t *testing.T) {
	b := circleBoundary(40, 40, 25, 90)

	center, radius := MinEnclosingCircle(b.Points)

	for _, p := range b.Points {
		d := math.Hypot(float64(p.X)-center.X, float64(p.Y)-center.Y)
		if d > radius+1e-6 {
			t.Fatalf("point %v outside circle: dist %f > radius %f", p, d, radius)
		}
	}
	if radius > 26 {
		t.Errorf("radius should stay near 25, got %f", radius)
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnidentified, "Unidentified"},
		{KindRectangle, "Rectangle"},
		{KindSquare, "Square"},
		{KindCircle, "Circle"},
		{KindPolygon, "Polygon"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String(): got %q, want %q", tt.kind, got, tt.want)
		}
	}
}
