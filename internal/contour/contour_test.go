package contour

import (
	"math"
	"reflect"
	"testing"

	"github.com/inkshape/sketch-to-excalidraw/internal/imaging"
)

// fillRect marks a filled rectangle of foreground pixels (inclusive bounds).
func fillRect(m *imaging.Mask, x0, y0, x1, y1 int) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			m.Set(x, y, true)
		}
	}
}

// drawRing marks a 1-pixel rectangle outline (inclusive bounds).
func drawRing(m *imaging.Mask, x0, y0, x1, y1 int) {
	for x := x0; x <= x1; x++ {
		m.Set(x, y0, true)
		m.Set(x, y1, true)
	}
	for y := y0; y <= y1; y++ {
		m.Set(x0, y, true)
		m.Set(x1, y, true)
	}
}

func TestTrace_EmptyMask(t *testing.T) {
	if got := Trace(nil, DefaultTraceOptions()); got != nil {
		t.Errorf("nil mask: got %v, want nil", got)
	}
	if got := Trace(imaging.NewMask(0, 0), DefaultTraceOptions()); got != nil {
		t.Errorf("zero-size mask: got %v, want nil", got)
	}
	if got := Trace(imaging.NewMask(30, 30), DefaultTraceOptions()); got != nil {
		t.Errorf("blank mask: got %v, want nil", got)
	}
}

func TestTrace_FilledRectangle(t *testing.T) {
	m := imaging.NewMask(30, 20)
	fillRect(m, 2, 3, 11, 8) // 10x6 pixels

	boundaries := Trace(m, DefaultTraceOptions())

	if len(boundaries) != 1 {
		t.Fatalf("boundary count: got %d, want 1", len(boundaries))
	}
	b := boundaries[0]

	if b.Hole {
		t.Error("filled rectangle should trace an outer boundary, not a hole")
	}
	if b.Points[0] != (Point{X: 2, Y: 3}) {
		t.Errorf("trace should start at the raster-first pixel, got %v", b.Points[0])
	}

	// The traced polyline runs through pixel centers, so a w x h block
	// encloses (w-1) x (h-1) and has perimeter 2((w-1)+(h-1)).
	if b.Area != 45 {
		t.Errorf("Area: got %f, want 45", b.Area)
	}
	if math.Abs(b.Perimeter-28) > 1e-9 {
		t.Errorf("Perimeter: got %f, want 28", b.Perimeter)
	}
}

func TestTrace_NoiseFloor(t *testing.T) {
	m := imaging.NewMask(40, 40)
	fillRect(m, 2, 2, 3, 3)     // 2x2 speck, enclosed area 1
	fillRect(m, 10, 10, 13, 13) // 4x4 blob, enclosed area 9

	boundaries := Trace(m, DefaultTraceOptions())

	if len(boundaries) != 1 {
		t.Fatalf("boundary count: got %d, want 1 (speck below noise floor)", len(boundaries))
	}
	if boundaries[0].Points[0] != (Point{X: 10, Y: 10}) {
		t.Errorf("surviving boundary should be the 4x4 blob, starts at %v", boundaries[0].Points[0])
	}

	// With the floor disabled the speck comes back.
	all := Trace(m, TraceOptions{MinArea: 0})
	if len(all) != 2 {
		t.Errorf("boundary count without noise floor: got %d, want 2", len(all))
	}
}

func TestTrace_HoleBoundary(t *testing.T) {
	m := imaging.NewMask(30, 30)
	drawRing(m, 5, 5, 15, 15)

	boundaries := Trace(m, DefaultTraceOptions())

	if len(boundaries) != 2 {
		t.Fatalf("boundary count: got %d, want 2 (outline + hole)", len(boundaries))
	}

	outer, hole := boundaries[0], boundaries[1]
	if outer.Hole {
		t.Error("first boundary should be the outer edge")
	}
	if !hole.Hole {
		t.Error("second boundary should be the enclosed hole")
	}

	if outer.Area != 100 {
		t.Errorf("outer Area: got %f, want 100", outer.Area)
	}
	if hole.Area != 64 {
		t.Errorf("hole Area: got %f, want 64", hole.Area)
	}
	if hole.Points[0] != (Point{X: 6, Y: 6}) {
		t.Errorf("hole trace should start at first enclosed pixel, got %v", hole.Points[0])
	}
}

func TestTrace_MultipleShapesRasterOrder(t *testing.T) {
	m := imaging.NewMask(60, 60)
	fillRect(m, 30, 5, 40, 15)  // upper right
	fillRect(m, 5, 20, 15, 30)  // lower left
	fillRect(m, 40, 40, 50, 50) // bottom

	boundaries := Trace(m, DefaultTraceOptions())

	if len(boundaries) != 3 {
		t.Fatalf("boundary count: got %d, want 3", len(boundaries))
	}

	// Discovery follows raster order of each region's first pixel.
	starts := []Point{
		boundaries[0].Points[0],
		boundaries[1].Points[0],
		boundaries[2].Points[0],
	}
	want := []Point{{X: 30, Y: 5}, {X: 5, Y: 20}, {X: 40, Y: 40}}
	if !reflect.DeepEqual(starts, want) {
		t.Errorf("start points: got %v, want %v", starts, want)
	}
}

func TestTrace_Deterministic(t *testing.T) {
	build := func() *imaging.Mask {
		m := imaging.NewMask(50, 50)
		drawRing(m, 3, 3, 20, 20)
		fillRect(m, 30, 30, 45, 40)
		return m
	}

	first := Trace(build(), DefaultTraceOptions())
	second := Trace(build(), DefaultTraceOptions())

	if !reflect.DeepEqual(first, second) {
		t.Error("identical input should produce identical boundaries")
	}
}

func TestTrace_DiagonalConnectivity(t *testing.T) {
	// Two pixels touching only diagonally belong to one 8-connected
	// region and trace as one boundary (then fall below the noise floor,
	// so trace with the floor disabled).
	m := imaging.NewMask(10, 10)
	m.Set(2, 2, true)
	m.Set(3, 3, true)

	boundaries := Trace(m, TraceOptions{MinArea: -1})

	if len(boundaries) != 1 {
		t.Fatalf("diagonal pair should be one region, got %d boundaries", len(boundaries))
	}
}

func TestTrace_TouchesBorder(t *testing.T) {
	// A region on the image border must trace without walking out of
	// bounds.
	m := imaging.NewMask(12, 12)
	fillRect(m, 0, 0, 5, 5)

	boundaries := Trace(m, DefaultTraceOptions())

	if len(boundaries) != 1 {
		t.Fatalf("boundary count: got %d, want 1", len(boundaries))
	}
	if boundaries[0].Area != 25 {
		t.Errorf("Area: got %f, want 25", boundaries[0].Area)
	}
}

func TestPolygonArea(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   float64
	}{
		{"empty", nil, 0},
		{"single point", []Point{{X: 1, Y: 1}}, 0},
		{"segment", []Point{{X: 0, Y: 0}, {X: 5, Y: 0}}, 0},
		{"unit triangle", []Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2}}, 2},
		{"square", []Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}, 16},
		{"counterclockwise square", []Point{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 0}}, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := polygonArea(tt.points); got != tt.want {
				t.Errorf("polygonArea: got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestPolylineLength(t *testing.T) {
	square := []Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 3}, {X: 0, Y: 3}}
	if got := polylineLength(square); math.Abs(got-12) > 1e-9 {
		t.Errorf("square perimeter: got %f, want 12", got)
	}
	if got := polylineLength([]Point{{X: 1, Y: 1}}); got != 0 {
		t.Errorf("single point: got %f, want 0", got)
	}
}
