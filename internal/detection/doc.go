// Package detection classifies boundary polylines into geometric primitives.
//
// Given the closed boundaries produced by the contour extractor, this
// package approximates each one to a reduced-vertex polygon and classifies
// it as a rectangle, square, circle, or polygon. Classified descriptions
// accumulate in a Registry in processing order for the diagram assembler.
//
// # Classification
//
// Classification is a pure function of the approximated vertex count and
// the bounding box / enclosing circle geometry:
//
//   - 4 vertices with width/height in [0.95, 1.05] -> Square
//   - 4 vertices otherwise -> Rectangle
//   - >4 vertices with boundary area within 20% of the minimum enclosing
//     circle's area -> Circle
//   - anything else -> Polygon
//
// The thresholds are heuristic and resolution dependent: they trade
// precision for zero training data and constant-time evaluation per
// contour. All thresholds are tunable through ClassifyOptions.
//
// # Coordinate System
//
// All coordinates use the standard image convention: origin (0, 0) at the
// top-left corner, X increasing rightward, Y increasing downward.
//
// # Degenerate Geometry
//
// Zero-height bounding boxes and zero-area enclosing circles are guarded
// with explicit fallback classifications; classification never divides by
// zero and never fails.
package detection
