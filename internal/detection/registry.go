package detection

import "github.com/inkshape/sketch-to-excalidraw/internal/contour"

// Registry accumulates classified shape descriptions in processing order.
//
// It is a pure append-only collection: no deduplication, merging, or
// spatial indexing. Nested boundaries (a hole inside a filled shape) keep
// their own independent descriptions; the pipeline does not reconstruct
// containment hierarchy.
type Registry struct {
	shapes []ShapeDescription
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends one description. Descriptions are never modified afterward.
func (r *Registry) Add(s ShapeDescription) {
	r.shapes = append(r.shapes, s)
}

// Shapes returns the accumulated descriptions in insertion order.
func (r *Registry) Shapes() []ShapeDescription {
	return r.shapes
}

// Len returns the number of accumulated descriptions.
func (r *Registry) Len() int {
	return len(r.shapes)
}

// ClassifyAll classifies every boundary in order and returns the filled
// registry. Boundaries below the extractor's noise floor never reach this
// function, so the registry size is bounded by the retained boundary count.
func ClassifyAll(boundaries []contour.Boundary, opts ClassifyOptions) *Registry {
	reg := NewRegistry()
	for _, b := range boundaries {
		reg.Add(Classify(b, opts))
	}
	return reg
}
