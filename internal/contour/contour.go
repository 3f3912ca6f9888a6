// Package contour extracts closed boundary polylines from a binary stroke mask.
//
// The extractor finds the outer boundary of every connected foreground
// region and the boundary of every hole (an enclosed background region),
// in raster discovery order. Raster order makes two runs on identical
// input produce identical output ordering, which downstream stages and
// tests rely on.
//
// # Coordinate System
//
// All coordinates are 0-based with origin at the top-left corner:
// X increases rightward, Y increases downward. Foreground connectivity is
// 8-connected (diagonals included); background connectivity is 4-connected,
// the usual complementary pairing that keeps boundaries well defined.
package contour

import (
	"math"

	"github.com/inkshape/sketch-to-excalidraw/internal/imaging"
)

// Point represents a 2D pixel coordinate.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Boundary is a closed boundary polyline traced around one connected
// region. The point sequence is ordered; the closing segment from the last
// point back to the first is implicit.
type Boundary struct {
	// Points is the ordered boundary polyline.
	Points []Point

	// Area is the absolute enclosed area in square pixels, computed with
	// the shoelace formula over the traced polyline.
	Area float64

	// Perimeter is the polyline length including the closing segment.
	Perimeter float64

	// Hole is true when the boundary traces an enclosed background
	// region (a hole inside a filled shape) rather than a foreground
	// region's outer edge.
	Hole bool
}

// TraceOptions configures boundary extraction.
type TraceOptions struct {
	// MinArea is the noise floor: boundaries with enclosed area at or
	// below this value are discarded.
	MinArea float64
}

// DefaultTraceOptions returns the extraction defaults.
func DefaultTraceOptions() TraceOptions {
	return TraceOptions{MinArea: 5}
}

// Trace extracts all closed boundaries from the mask.
//
// Outer boundaries and hole boundaries are discovered in a single raster
// scan: a foreground pixel whose component has not been traced starts an
// outer boundary; an enclosed background pixel whose hole has not been
// traced starts a hole boundary. An empty or nil mask yields no
// boundaries, not an error.
func Trace(m *imaging.Mask, opts TraceOptions) []Boundary {
	if m == nil || m.Width == 0 || m.Height == 0 {
		return nil
	}

	outside := floodOutside(m)
	visitedFG := newGrid(m.Width, m.Height)
	visitedBG := newGrid(m.Width, m.Height)

	var boundaries []Boundary
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.At(x, y) && !visitedFG[y][x] {
				region := func(px, py int) bool { return m.At(px, py) }
				points := traceBoundary(Point{X: x, Y: y}, region)
				fillRegion(m.Width, m.Height, x, y, region, visitedFG, true)

				if b, ok := makeBoundary(points, false, opts.MinArea); ok {
					boundaries = append(boundaries, b)
				}
				continue
			}
			if !m.At(x, y) && !outside[y][x] && !visitedBG[y][x] {
				region := func(px, py int) bool {
					return inBounds(m, px, py) && !m.At(px, py) && !outside[py][px]
				}
				points := traceBoundary(Point{X: x, Y: y}, region)
				fillRegion(m.Width, m.Height, x, y, region, visitedBG, false)

				if b, ok := makeBoundary(points, true, opts.MinArea); ok {
					boundaries = append(boundaries, b)
				}
			}
		}
	}
	return boundaries
}

// makeBoundary computes area and perimeter and applies the noise floor.
func makeBoundary(points []Point, hole bool, minArea float64) (Boundary, bool) {
	area := polygonArea(points)
	if area <= minArea {
		return Boundary{}, false
	}
	return Boundary{
		Points:    points,
		Area:      area,
		Perimeter: polylineLength(points),
		Hole:      hole,
	}, true
}

// mooreDirs lists the 8 neighbor offsets in clockwise order starting at
// west, for screen coordinates (Y down).
var mooreDirs = [8]Point{
	{X: -1, Y: 0},  // W
	{X: -1, Y: -1}, // NW
	{X: 0, Y: -1},  // N
	{X: 1, Y: -1},  // NE
	{X: 1, Y: 0},   // E
	{X: 1, Y: 1},   // SE
	{X: 0, Y: 1},   // S
	{X: -1, Y: 1},  // SW
}

// traceBoundary walks the region boundary clockwise using Moore-neighbor
// tracing with Jacob's stopping criterion.
//
// The start pixel must be the region's first pixel in raster order, which
// guarantees its west neighbor is outside the region and is therefore a
// valid initial backtrack position.
func traceBoundary(start Point, region func(x, y int) bool) []Point {
	points := []Point{start}

	backtrack := Point{X: start.X - 1, Y: start.Y}
	current := start
	firstBacktrack := backtrack

	for steps := 0; ; steps++ {
		if steps > 0 && current == start && backtrack == firstBacktrack {
			// Closed the loop entering the start the same way we began.
			points = points[:len(points)-1]
			break
		}
		if steps > 1<<22 {
			// Step cap for pathological masks.
			break
		}

		// Index of the direction pointing from current to backtrack.
		idx := dirIndex(Point{X: backtrack.X - current.X, Y: backtrack.Y - current.Y})

		found := false
		for i := 1; i <= 8; i++ {
			d := mooreDirs[(idx+i)%8]
			next := Point{X: current.X + d.X, Y: current.Y + d.Y}
			if region(next.X, next.Y) {
				prev := mooreDirs[(idx+i-1)%8]
				backtrack = Point{X: current.X + prev.X, Y: current.Y + prev.Y}
				current = next
				points = append(points, next)
				found = true
				break
			}
		}
		if !found {
			// Isolated single pixel: the boundary is the pixel itself.
			break
		}
	}
	return points
}

// dirIndex returns the mooreDirs index of a unit-ish offset.
func dirIndex(d Point) int {
	for i, m := range mooreDirs {
		if m == d {
			return i
		}
	}
	return 0
}

// floodOutside marks every background pixel reachable 4-connected from the
// image border. Remaining background pixels are holes.
func floodOutside(m *imaging.Mask) [][]bool {
	outside := newGrid(m.Width, m.Height)

	var stack []Point
	push := func(x, y int) {
		if x >= 0 && x < m.Width && y >= 0 && y < m.Height && !outside[y][x] && !m.At(x, y) {
			outside[y][x] = true
			stack = append(stack, Point{X: x, Y: y})
		}
	}

	for x := 0; x < m.Width; x++ {
		push(x, 0)
		push(x, m.Height-1)
	}
	for y := 0; y < m.Height; y++ {
		push(0, y)
		push(m.Width-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.X-1, p.Y)
		push(p.X+1, p.Y)
		push(p.X, p.Y-1)
		push(p.X, p.Y+1)
	}
	return outside
}

// fillRegion marks every pixel of the region containing (x, y) as visited.
// Foreground regions use 8-connectivity, background regions 4-connectivity.
func fillRegion(width, height, x, y int, region func(x, y int) bool, visited [][]bool, eightConn bool) {
	stack := []Point{{X: x, Y: y}}
	visited[y][x] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if !eightConn && dx != 0 && dy != 0 {
					continue
				}
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				if visited[ny][nx] || !region(nx, ny) {
					continue
				}
				visited[ny][nx] = true
				stack = append(stack, Point{X: nx, Y: ny})
			}
		}
	}
}

// polygonArea computes the absolute enclosed area with the shoelace formula.
func polygonArea(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}
	var sum float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum += float64(p.X*q.Y - q.X*p.Y)
	}
	return math.Abs(sum) / 2
}

// polylineLength returns the closed polyline length.
func polylineLength(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	var total float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		dx := float64(q.X - p.X)
		dy := float64(q.Y - p.Y)
		total += math.Sqrt(dx*dx + dy*dy)
	}
	return total
}

func inBounds(m *imaging.Mask, x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

func newGrid(width, height int) [][]bool {
	g := make([][]bool, height)
	for y := range g {
		g[y] = make([]bool, width)
	}
	return g
}
