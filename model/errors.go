package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry indicates a bounding box that violates the input
	// contract (x1>=x2, y1>=y2, or entirely outside the page). The whole
	// page is rejected rather than silently truncated, because malformed
	// geometry indicates an upstream detector bug.
	ErrInvalidGeometry = errors.New("smarteye: invalid element geometry")

	// ErrInvalidPageSize indicates a non-positive page width or height.
	ErrInvalidPageSize = errors.New("smarteye: page dimensions must be positive")

	// ErrDuplicateElementID indicates two input elements sharing an ID,
	// violating the stable-identifier contract.
	ErrDuplicateElementID = errors.New("smarteye: duplicate element id")
)

// GeometryError reports a malformed bounding box on a specific element.
// It wraps ErrInvalidGeometry, so callers can test with errors.Is.
type GeometryError struct {
	ElementID int
	BBox      BBox
	Reason    string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("smarteye: element %d: %s (bbox %.1f,%.1f,%.1f,%.1f)",
		e.ElementID, e.Reason, e.BBox.X1, e.BBox.Y1, e.BBox.X2, e.BBox.Y2)
}

func (e *GeometryError) Unwrap() error {
	return ErrInvalidGeometry
}
