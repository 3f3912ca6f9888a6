package detection

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/inkshape/sketch-to-excalidraw/internal/contour"
)

// Kind is the classified type of a detected shape.
type Kind int

const (
	// KindUnidentified is the zero value; classification never leaves a
	// closed boundary unidentified in practice, since every vertex count
	// maps to a kind.
	KindUnidentified Kind = iota

	// KindRectangle is a 4-vertex shape whose aspect ratio falls outside
	// the square window.
	KindRectangle

	// KindSquare is a 4-vertex shape with near-1:1 aspect ratio.
	KindSquare

	// KindCircle is a many-vertex shape whose area closely matches its
	// minimum enclosing circle.
	KindCircle

	// KindPolygon is any other closed shape.
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return "Rectangle"
	case KindSquare:
		return "Square"
	case KindCircle:
		return "Circle"
	case KindPolygon:
		return "Polygon"
	default:
		return "Unidentified"
	}
}

// ShapeDescription is the classified, parameterized form of one boundary.
//
// The bounding box is axis-aligned in pixel space with top-left origin.
// Vertices holds the approximated polygon; the assembler only consumes it
// for KindPolygon, but it is retained uniformly for every kind.
// Descriptions are immutable once created.
type ShapeDescription struct {
	// Kind is the classified shape type.
	Kind Kind `json:"kind"`

	// X, Y is the top-left corner of the bounding box.
	X int `json:"x"`
	Y int `json:"y"`

	// Width and Height are the bounding box extents; both are >= 0.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Vertices is the approximated polygon in boundary order.
	Vertices []contour.Point `json:"vertices"`

	// VertexCount is len(Vertices), kept for logging parity with the
	// bounding box fields.
	VertexCount int `json:"vertex_count"`
}

// ClassifyOptions holds the heuristic thresholds for classification.
type ClassifyOptions struct {
	// EpsilonRatio scales the polygon-approximation tolerance: points
	// closer than EpsilonRatio × perimeter to the connecting chord are
	// dropped. A tunable constant, not a derived value.
	EpsilonRatio float64

	// SquareAspectMin and SquareAspectMax bound the width/height aspect
	// ratio classified as a square.
	SquareAspectMin float64
	SquareAspectMax float64

	// CircleAreaTolerance is the maximum relative deviation between the
	// boundary's area and its minimum enclosing circle's area for the
	// shape to count as a circle.
	CircleAreaTolerance float64
}

// DefaultClassifyOptions returns the classification defaults.
//
// The heuristics trade precision for zero training data and constant-time
// evaluation per contour; they are resolution dependent by design.
func DefaultClassifyOptions() ClassifyOptions {
	return ClassifyOptions{
		EpsilonRatio:        0.015,
		SquareAspectMin:     0.95,
		SquareAspectMax:     1.05,
		CircleAreaTolerance: 0.2,
	}
}

// Classify reduces one boundary to an approximated polygon and classifies
// it into a typed shape description.
//
// Classification policy, in order:
//   - Exactly 4 vertices: square when SquareAspectMin <= w/h <=
//     SquareAspectMax, rectangle otherwise. A zero-height box never
//     divides; it is a rectangle (aspect treated as +Inf).
//   - More than 4 vertices: circle when the boundary area deviates from
//     its minimum enclosing circle area by less than CircleAreaTolerance,
//     polygon otherwise.
//   - Fewer than 4 vertices: polygon (degenerate fallback).
func Classify(b contour.Boundary, opts ClassifyOptions) ShapeDescription {
	epsilon := opts.EpsilonRatio * b.Perimeter
	approx := ApproxPolygon(b.Points, epsilon)

	x, y, width, height := boundingBox(approx)

	desc := ShapeDescription{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Vertices:    approx,
		VertexCount: len(approx),
	}

	switch {
	case len(approx) == 4:
		if height == 0 {
			// Degenerate box: aspect is +Inf, never a square.
			desc.Kind = KindRectangle
			break
		}
		aspect := float64(width) / float64(height)
		if aspect >= opts.SquareAspectMin && aspect <= opts.SquareAspectMax {
			desc.Kind = KindSquare
		} else {
			desc.Kind = KindRectangle
		}

	case len(approx) > 4:
		_, radius := MinEnclosingCircle(approx)
		circleArea := math.Pi * radius * radius
		if circleArea == 0 {
			desc.Kind = KindPolygon
			break
		}
		if math.Abs(1-b.Area/circleArea) < opts.CircleAreaTolerance {
			desc.Kind = KindCircle
		} else {
			desc.Kind = KindPolygon
		}

	default:
		desc.Kind = KindPolygon
	}

	return desc
}

// boundingBox returns the axis-aligned bounding box of a point set.
func boundingBox(points []contour.Point) (x, y, width, height int) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX - minX, maxY - minY
}

// ApproxPolygon reduces a closed boundary polyline to a polygon using
// Douglas-Peucker simplification with the given absolute tolerance.
//
// The closed polyline is split at its first point and the point farthest
// from it, each half is simplified independently, and the halves are
// rejoined. Splitting at the farthest pair keeps the two anchors on the
// result, which a closed-curve simplification requires.
func ApproxPolygon(points []contour.Point, epsilon float64) []contour.Point {
	n := len(points)
	if n <= 3 {
		out := make([]contour.Point, n)
		copy(out, points)
		return out
	}

	// Farthest point from points[0].
	far := 1
	var farDist float64
	origin := vec(points[0])
	for i := 1; i < n; i++ {
		if d := r2.Norm(r2.Sub(vec(points[i]), origin)); d > farDist {
			farDist = d
			far = i
		}
	}

	first := simplify(points[:far+1], epsilon)
	second := append(append([]contour.Point{}, points[far:]...), points[0])
	second = simplify(second, epsilon)

	// Drop the duplicated join points: first ends where second starts,
	// and second ends where first starts.
	out := make([]contour.Point, 0, len(first)+len(second)-2)
	out = append(out, first[:len(first)-1]...)
	out = append(out, second[:len(second)-1]...)
	return out
}

// simplify runs Douglas-Peucker on an open polyline, keeping both ends.
func simplify(points []contour.Point, epsilon float64) []contour.Point {
	if len(points) <= 2 {
		out := make([]contour.Point, len(points))
		copy(out, points)
		return out
	}

	a := vec(points[0])
	b := vec(points[len(points)-1])

	var maxDist float64
	maxIdx := 0
	for i := 1; i < len(points)-1; i++ {
		if d := chordDistance(vec(points[i]), a, b); d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= epsilon {
		return []contour.Point{points[0], points[len(points)-1]}
	}

	left := simplify(points[:maxIdx+1], epsilon)
	right := simplify(points[maxIdx:], epsilon)
	return append(left[:len(left)-1], right...)
}

// chordDistance returns the distance from p to the chord a-b, falling back
// to point distance when the chord is degenerate.
func chordDistance(p, a, b r2.Vec) float64 {
	ab := r2.Sub(b, a)
	length := r2.Norm(ab)
	if length == 0 {
		return r2.Norm(r2.Sub(p, a))
	}
	return math.Abs(r2.Cross(ab, r2.Sub(p, a))) / length
}

// MinEnclosingCircle computes the minimum circle containing all points
// using the incremental move-to-front construction. The input order is
// used as-is so results are deterministic.
func MinEnclosingCircle(points []contour.Point) (center r2.Vec, radius float64) {
	if len(points) == 0 {
		return r2.Vec{}, 0
	}

	center = vec(points[0])
	radius = 0

	for i := 1; i < len(points); i++ {
		p := vec(points[i])
		if inCircle(p, center, radius) {
			continue
		}
		center, radius = p, 0
		for j := 0; j < i; j++ {
			q := vec(points[j])
			if inCircle(q, center, radius) {
				continue
			}
			center, radius = circleFrom2(p, q)
			for k := 0; k < j; k++ {
				s := vec(points[k])
				if inCircle(s, center, radius) {
					continue
				}
				center, radius = circleFrom3(p, q, s)
			}
		}
	}
	return center, radius
}

// inCircle uses a small epsilon so points on the circle count as inside.
func inCircle(p, center r2.Vec, radius float64) bool {
	return r2.Norm(r2.Sub(p, center)) <= radius+1e-9
}

func circleFrom2(a, b r2.Vec) (r2.Vec, float64) {
	center := r2.Scale(0.5, r2.Add(a, b))
	return center, r2.Norm(r2.Sub(a, center))
}

// circleFrom3 returns the circumcircle of three points, falling back to
// the widest two-point circle when the points are collinear.
func circleFrom3(a, b, c r2.Vec) (r2.Vec, float64) {
	bx := b.X - a.X
	by := b.Y - a.Y
	cx := c.X - a.X
	cy := c.Y - a.Y

	d := 2 * (bx*cy - by*cx)
	if d == 0 {
		// Collinear: take the widest pair.
		c1, r1 := circleFrom2(a, b)
		c2, r2v := circleFrom2(a, c)
		c3, r3 := circleFrom2(b, c)
		switch {
		case r1 >= r2v && r1 >= r3:
			return c1, r1
		case r2v >= r3:
			return c2, r2v
		default:
			return c3, r3
		}
	}

	ux := (cy*(bx*bx+by*by) - by*(cx*cx+cy*cy)) / d
	uy := (bx*(cx*cx+cy*cy) - cx*(bx*bx+by*by)) / d
	center := r2.Vec{X: a.X + ux, Y: a.Y + uy}
	return center, r2.Norm(r2.Sub(a, center))
}

func vec(p contour.Point) r2.Vec {
	return r2.Vec{X: float64(p.X), Y: float64(p.Y)}
}
