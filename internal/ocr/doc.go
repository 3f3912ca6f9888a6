// Package ocr produces recognized text spans for the diagram assembler.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2) to turn an
// image into a sequence of TextSpan values: a quadrilateral bounding region,
// a recognized UTF-8 string, and a confidence score in [0, 1].
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Other languages use their Tesseract language codes ("deu", "fra",
// "chi_sim", ...) with the corresponding data package installed.
//
// # Corner Convention
//
// Span corners are ordered [top-left, top-right, bottom-right,
// bottom-left]. The assembler reads Corners[0] as the top-left and
// Corners[2] as the bottom-right; recognizer implementations must preserve
// that convention.
//
// # Validation
//
// Spans are not validated: a malformed region (bottom above top) flows
// through unchanged, and the assembler's font-size clamp absorbs it.
// Validation is the recognizer's responsibility, not the consumer's.
//
// # Testing
//
// The pipeline consumes the Recognizer interface, so tests substitute a
// stub span source and the Tesseract-backed tests skip when the engine is
// not installed.
package ocr
