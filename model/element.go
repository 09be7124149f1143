package model

// ClassLabel identifies the semantic class assigned to a detected layout
// element by the upstream layout-detection model.
type ClassLabel int

const (
	ClassUnknown ClassLabel = iota
	ClassQuestionNumber
	ClassQuestionText
	ClassList
	ClassChoices
	ClassFigure
	ClassTable
	ClassFlowchart
	ClassPlainText
	ClassTitle
	ClassUnit
	ClassPage
	ClassFormula
)

func (c ClassLabel) String() string {
	switch c {
	case ClassQuestionNumber:
		return "question_number"
	case ClassQuestionText:
		return "question_text"
	case ClassList:
		return "list"
	case ClassChoices:
		return "choices"
	case ClassFigure:
		return "figure"
	case ClassTable:
		return "table"
	case ClassFlowchart:
		return "flowchart"
	case ClassPlainText:
		return "plain_text"
	case ClassTitle:
		return "title"
	case ClassUnit:
		return "unit"
	case ClassPage:
		return "page"
	case ClassFormula:
		return "formula"
	default:
		return "unknown"
	}
}

// ParseClassLabel maps a detector class string to its ClassLabel.
// Unrecognized strings map to ClassUnknown.
func ParseClassLabel(s string) ClassLabel {
	switch s {
	case "question_number":
		return ClassQuestionNumber
	case "question_text":
		return ClassQuestionText
	case "list":
		return ClassList
	case "choices":
		return ClassChoices
	case "figure":
		return ClassFigure
	case "table":
		return ClassTable
	case "flowchart":
		return ClassFlowchart
	case "plain_text":
		return ClassPlainText
	case "title":
		return ClassTitle
	case "unit":
		return ClassUnit
	case "page":
		return ClassPage
	case "formula":
		return ClassFormula
	default:
		return ClassUnknown
	}
}

// IsAnchorClass reports whether elements of this class can mark the start of
// a question or sub-question.
func (c ClassLabel) IsAnchorClass() bool {
	return c == ClassQuestionNumber
}

// IsSeparatorClass reports whether elements of this class can act as
// full-width horizontal separators (section titles, unit banners) that split
// a page into independent row bands.
func (c ClassLabel) IsSeparatorClass() bool {
	return c == ClassTitle || c == ClassUnit || c == ClassPage
}

// IsPlaceholderClass reports whether elements of this class are emitted as
// placeholder tokens during serialization, to be substituted later by the
// external description service.
func (c ClassLabel) IsPlaceholderClass() bool {
	return c == ClassFigure || c == ClassTable || c == ClassFlowchart
}

// LayoutElement is one detected element on a page: a bounding box, the class
// assigned by the layout detector, the detector's confidence, and the OCR
// result for the region when OCR was run on it. Elements are created once per
// page from the detector and OCR outputs and never mutated afterwards; all
// downstream stages produce new derived structures.
type LayoutElement struct {
	// ID is the stable identifier assigned by the detector. IDs are unique
	// within a page and survive into the structured output.
	ID int

	// Class is the detector-assigned semantic class.
	Class ClassLabel

	// BBox is the element's bounding box in page pixel space.
	BBox BBox

	// DetectorConfidence is the layout detector's confidence in [0,1].
	DetectorConfidence float64

	// OCRText is the recognized text for this region. Empty when OCR was
	// not run on the region (HasOCR false) or produced nothing.
	OCRText string

	// OCRConfidence is the OCR engine's confidence in [0,1]. Only
	// meaningful when HasOCR is true.
	OCRConfidence float64

	// HasOCR records whether the OCR collaborator produced a result for
	// this element. Not every element is OCR'd.
	HasOCR bool
}

// WithOCR returns a copy of the element with the given OCR result attached.
func (e LayoutElement) WithOCR(text string, confidence float64) LayoutElement {
	e.OCRText = text
	e.OCRConfidence = confidence
	e.HasOCR = true
	return e
}

// Validate checks the element against the input contract: a well-formed
// bounding box that intersects the page rectangle. A violation is an upstream
// detector bug and is reported as a *GeometryError wrapping ErrInvalidGeometry.
func (e LayoutElement) Validate(pageWidth, pageHeight float64) error {
	if !e.BBox.Valid() {
		return &GeometryError{
			ElementID: e.ID,
			BBox:      e.BBox,
			Reason:    "degenerate bounding box (x1>=x2 or y1>=y2)",
		}
	}
	if _, ok := e.BBox.Clamp(pageWidth, pageHeight); !ok {
		return &GeometryError{
			ElementID: e.ID,
			BBox:      e.BBox,
			Reason:    "bounding box entirely outside the page",
		}
	}
	return nil
}
