// Package imaging turns raw sketch images into binary stroke masks.
//
// This package implements the preprocessing half of the conversion
// pipeline: image loading and caching, grayscale conversion, noise
// removal, thresholding, and morphological cleanup. Its product is the
// Mask type, the binary image (foreground = drawing stroke) every
// downstream stage consumes.
//
// # Mask Sources
//
// Three interchangeable mask sources cover different kinds of input:
//
//   - Binarize: median blur + adaptive mean threshold + open/close.
//     The default; robust to the uneven lighting of phone photos.
//   - EdgeMask: Canny-style edge detection. Suited to thin,
//     high-contrast strokes on clean backgrounds.
//   - InkMask: HSV pen-color segmentation. Suited to colored markers
//     where shadows defeat luminance thresholds.
//
// # Coordinate System
//
// Mask coordinates are 0-based with origin at the top-left corner,
// X increasing rightward and Y increasing downward, independent of the
// source image's bounds offset.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Mask construction functions are
// stateless and can run concurrently on different images; a Mask itself
// is not synchronized and belongs to one pipeline run.
package imaging
