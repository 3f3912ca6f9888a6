// Package excalidraw assembles classified shapes and recognized text into
// an Excalidraw document.
//
// The package has two halves. The assembler fuses two independent input
// streams (shape descriptions from the classifier, text spans from the
// recognizer) into one ordered sequence of drawable elements, computing
// layout fields the inputs do not carry: center anchors for rectangles and
// ellipses, a line-segment decomposition for polygons, and a font size
// inferred from each span's height. The packager wraps the element
// sequence in the versioned envelope and in the Obsidian markdown
// container.
//
// # Element Ordering
//
// Output order is insertion order: all shape-derived elements first, then
// all text-derived elements, each preserving its input stream's order.
// Running the assembler and packager twice on identical input produces a
// byte-identical document.
//
// # Schema
//
// One fixed target schema is used everywhere: the full
// {type, version, source, elements} envelope. The raw JSON artifact and
// the markdown container embed the same envelope form; mixing envelope
// variants would be a correctness bug.
package excalidraw
