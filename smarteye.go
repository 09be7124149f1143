// Package smarteye reconstructs the logical reading order of question-based
// worksheet pages from layout-detection and OCR output.
//
// Basic usage:
//
//	doc, err := smarteye.Reconstruct(elements, pageWidth, pageHeight)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(doc.GroupCount(), "questions")
//
// With options:
//
//	text, err := smarteye.FromElements(elements, pageWidth, pageHeight).
//	    WithStrategy(layout.StrategyGlobal).
//	    Text()
//
// For advanced use cases, the lower-level layout package is also available.
package smarteye

import (
	"github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/layout"
	"github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/model"
	"github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/serialize"
)

// FromElements starts a fluent reconstruction over one page's detected
// elements. The element slice is treated as an immutable snapshot and is
// never modified.
//
// Example:
//
//	doc, err := smarteye.FromElements(elements, 1200, 1600).Document()
func FromElements(elements []model.LayoutElement, pageWidth, pageHeight float64) *Pipeline {
	return &Pipeline{
		elements:   elements,
		pageWidth:  pageWidth,
		pageHeight: pageHeight,
		config:     layout.DefaultConfig(),
		serializer: serialize.DefaultConfig(),
	}
}

// Reconstruct rebuilds the reading order of one page with default
// configuration. It is shorthand for FromElements(...).Document().
func Reconstruct(elements []model.LayoutElement, pageWidth, pageHeight float64) (*model.StructuredDocument, error) {
	return FromElements(elements, pageWidth, pageHeight).Document()
}

// ReconstructText rebuilds the reading order of one page and renders it as
// escaped plain text. It is shorthand for FromElements(...).Text().
func ReconstructText(elements []model.LayoutElement, pageWidth, pageHeight float64) (string, error) {
	return FromElements(elements, pageWidth, pageHeight).Text()
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	doc := smarteye.Must(smarteye.Reconstruct(elements, 1200, 1600))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
