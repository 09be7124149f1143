// Package serialize renders a reconstructed document as plain text.
//
// The serializer walks the question groups in their final reading order,
// emits one line per element with class-specific formatting, and appends
// unassigned elements under a marked trailer section. All element text is
// entity-escaped, so the output is safe to embed in HTML or XML documents
// downstream.
package serialize

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/model"
)

// Config controls the text rendering.
type Config struct {
	// ListMarker is prefixed to list and choice elements.
	ListMarker string

	// UnassignedHeader is the line that introduces the trailing section of
	// elements that could not be grouped under any question.
	UnassignedHeader string

	// GroupSpacing inserts a blank line between consecutive question
	// groups.
	GroupSpacing bool
}

// DefaultConfig returns the default rendering configuration.
func DefaultConfig() Config {
	return Config{
		ListMarker:       "- ",
		UnassignedHeader: "=== unassigned ===",
		GroupSpacing:     true,
	}
}

// TextSerializer renders a StructuredDocument as a single string.
type TextSerializer struct {
	config Config
}

// NewTextSerializer creates a serializer with default configuration
func NewTextSerializer() *TextSerializer {
	return NewTextSerializerWithConfig(DefaultConfig())
}

// NewTextSerializerWithConfig creates a serializer with custom configuration
func NewTextSerializerWithConfig(config Config) *TextSerializer {
	return &TextSerializer{config: config}
}

// Serialize walks the document in reading order and renders it as text.
// Group order in the document is already the final reading order (column by
// column for the global strategy, walk order for the local one), so the
// serializer never re-sorts anything. Every element contributes exactly one
// line; figures, tables and flowcharts contribute a placeholder token that a
// downstream description service substitutes by element id.
func (s *TextSerializer) Serialize(doc *model.StructuredDocument) string {
	if doc == nil {
		return ""
	}

	var sb strings.Builder
	for i, g := range doc.Groups {
		if i > 0 && s.config.GroupSpacing {
			sb.WriteString("\n")
		}
		sb.WriteString(s.anchorLine(g.Anchor))
		sb.WriteString("\n")
		for _, child := range g.Children {
			sb.WriteString(s.elementLine(child))
			sb.WriteString("\n")
		}
	}

	if len(doc.Unassigned) > 0 {
		if doc.GroupCount() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(s.config.UnassignedHeader)
		sb.WriteString("\n")
		for _, e := range doc.Unassigned {
			sb.WriteString(s.elementLine(e))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// anchorLine renders a group's anchor. An anchor whose region was never
// OCR'd still has a line: the parsed question number when one exists,
// otherwise the placeholder/text rules of an ordinary element.
func (s *TextSerializer) anchorLine(anchor model.AnchorCandidate) string {
	e := anchor.Element
	if e.HasOCR && strings.TrimSpace(e.OCRText) != "" {
		return escape(e.OCRText)
	}
	if anchor.HasNumber {
		if anchor.SubNumber > 0 {
			return fmt.Sprintf("%d.%d", anchor.QuestionNumber, anchor.SubNumber)
		}
		return fmt.Sprintf("%d.", anchor.QuestionNumber)
	}
	return s.elementLine(e)
}

// elementLine renders one element as one logical line.
func (s *TextSerializer) elementLine(e model.LayoutElement) string {
	if e.Class.IsPlaceholderClass() {
		return placeholderToken(e)
	}

	text := escape(flatten(e.OCRText))
	switch e.Class {
	case model.ClassList, model.ClassChoices:
		return s.config.ListMarker + text
	default:
		return text
	}
}

// placeholderToken builds the substitution token for figure, table and
// flowchart elements, keyed by element id.
func placeholderToken(e model.LayoutElement) string {
	return fmt.Sprintf("[[%s:%d]]", e.Class, e.ID)
}

// flatten collapses intra-element line breaks so each element stays one
// logical line.
func flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func escape(text string) string {
	return html.EscapeString(text)
}
