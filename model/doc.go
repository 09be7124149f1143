// Package model defines the shared data types for worksheet reading-order
// reconstruction: page geometry (BBox, Point), detected layout elements and
// their class labels, anchor candidates produced by confidence fusion, and
// the StructuredDocument output type.
//
// All types in this package are plain values with no hidden state. A
// LayoutElement is created once per page from the external detector and OCR
// outputs and is never mutated afterwards; every downstream stage derives new
// structures instead.
package model
