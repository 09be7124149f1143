package model

// AnchorCandidate is a layout element that was accepted as a question or
// sub-question marker after confidence fusion. It carries the three fused
// trust signals, the resulting fused confidence, and the question number
// parsed from the OCR text when one could be extracted.
type AnchorCandidate struct {
	// Element is the underlying layout element.
	Element LayoutElement

	// DetectorConfidence, OCRConfidence and PatternScore are the three
	// independent signals whose product is FusedConfidence. When the
	// element was never OCR'd, OCRConfidence is recorded as 1.0
	// (detector-only trust).
	DetectorConfidence float64
	OCRConfidence      float64
	PatternScore       float64

	// FusedConfidence = DetectorConfidence * OCRConfidence * PatternScore.
	// Always recomputed from the inputs, never cached stale.
	FusedConfidence float64

	// QuestionNumber is the primary question number parsed from the OCR
	// text ("12" in "12.3"). Zero when HasNumber is false.
	QuestionNumber int

	// SubNumber is the sub-question index ("3" in "12.3"), 0 when absent.
	SubNumber int

	// HasNumber reports whether a question number could be parsed.
	HasNumber bool

	// ColumnIndex is the index of the column the anchor belongs to.
	// Assigned during column detection, -1 before that.
	ColumnIndex int
}

// ColumnRange is one vertical band of the page. Ranges are disjoint, ordered
// left to right, and together cover [0, pageWidth].
type ColumnRange struct {
	Index  int
	XStart float64
	XEnd   float64
}

// Width returns the horizontal extent of the column.
func (c ColumnRange) Width() float64 {
	return c.XEnd - c.XStart
}

// ContainsX reports whether the coordinate falls inside [XStart, XEnd).
func (c ColumnRange) ContainsX(x float64) bool {
	return x >= c.XStart && x < c.XEnd
}

// QuestionGroup is one question: its anchor plus the child elements assigned
// to it, in final reading order.
type QuestionGroup struct {
	Anchor      AnchorCandidate
	Children    []LayoutElement
	ColumnIndex int
}

// ElementCount returns the number of elements in the group, anchor included.
func (g *QuestionGroup) ElementCount() int {
	return 1 + len(g.Children)
}

// StructuredDocument is the final output of reading-order reconstruction:
// the column structure, the question groups in reading order, and any
// elements that could not be attached to an anchor. Every input element
// appears exactly once, either as a group anchor, as a child, or in
// Unassigned; nothing is duplicated or dropped.
type StructuredDocument struct {
	// Columns is the detected column structure, ordered left to right.
	Columns []ColumnRange

	// Groups are the question groups in final reading order.
	Groups []QuestionGroup

	// Unassigned holds elements that could not be matched to any anchor
	// (for example on a page with no recognizable question markers), in
	// original detection order.
	Unassigned []LayoutElement

	// Page dimensions in pixels.
	PageWidth  float64
	PageHeight float64
}

// GroupCount returns the number of question groups.
func (d *StructuredDocument) GroupCount() int {
	if d == nil {
		return 0
	}
	return len(d.Groups)
}

// ColumnCount returns the number of detected columns.
func (d *StructuredDocument) ColumnCount() int {
	if d == nil {
		return 0
	}
	return len(d.Columns)
}

// IsMultiColumn returns true if more than one column was detected.
func (d *StructuredDocument) IsMultiColumn() bool {
	return d.ColumnCount() > 1
}

// ElementCount returns the total number of elements in the document
// (anchors, children and unassigned).
func (d *StructuredDocument) ElementCount() int {
	if d == nil {
		return 0
	}
	n := len(d.Unassigned)
	for i := range d.Groups {
		n += d.Groups[i].ElementCount()
	}
	return n
}

// GroupsInColumn returns the groups belonging to the given column, in their
// document order.
func (d *StructuredDocument) GroupsInColumn(index int) []QuestionGroup {
	if d == nil {
		return nil
	}
	var groups []QuestionGroup
	for _, g := range d.Groups {
		if g.ColumnIndex == index {
			groups = append(groups, g)
		}
	}
	return groups
}

// Elements returns every element in the document in reading order: each
// group's anchor followed by its children, then the unassigned elements in
// original detection order.
func (d *StructuredDocument) Elements() []LayoutElement {
	if d == nil {
		return nil
	}
	elements := make([]LayoutElement, 0, d.ElementCount())
	for _, g := range d.Groups {
		elements = append(elements, g.Anchor.Element)
		elements = append(elements, g.Children...)
	}
	elements = append(elements, d.Unassigned...)
	return elements
}
