package layout

import (
	"math"
	"sort"

	"github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/model"
)

// AssignConfig holds configuration for spatial anchor/child assignment.
type AssignConfig struct {
	// XWeight scales the horizontal component of the assignment distance.
	// Default: 1.0
	XWeight float64

	// YWeight scales the vertical component. Vertical proximity is
	// weighted higher because questions stack vertically far more often
	// than they spread horizontally within a column.
	// Default: 1.5
	YWeight float64

	// RowBandRatio controls the row-band tolerance used when ordering
	// children inside a group: two children whose vertical centers differ
	// by less than RowBandRatio times the median child height are treated
	// as the same row and ordered left to right.
	// Default: 0.5
	RowBandRatio float64
}

// DefaultAssignConfig returns sensible default configuration
func DefaultAssignConfig() AssignConfig {
	return AssignConfig{
		XWeight:      1.0,
		YWeight:      1.5,
		RowBandRatio: 0.5,
	}
}

// SpatialAssigner attaches every non-anchor element to its nearest anchor
// using a column-constrained, axis-weighted 2D distance. Children first look
// for anchors inside their own column; a child in an anchor-less column falls
// back to the nearest anchor in any column. Only pages with no anchors at all
// leave elements unassigned.
type SpatialAssigner struct {
	config AssignConfig
}

// NewSpatialAssigner creates a new spatial assigner with default configuration
func NewSpatialAssigner() *SpatialAssigner {
	return &SpatialAssigner{
		config: DefaultAssignConfig(),
	}
}

// NewSpatialAssignerWithConfig creates a spatial assigner with custom configuration
func NewSpatialAssignerWithConfig(config AssignConfig) *SpatialAssigner {
	return &SpatialAssigner{
		config: config,
	}
}

// Distance returns the axis-weighted distance between the centers of the two
// boxes: sqrt((dx*XWeight)^2 + (dy*YWeight)^2).
func (a *SpatialAssigner) Distance(child, anchor model.BBox) float64 {
	return child.Center().WeightedDistance(anchor.Center(), a.config.XWeight, a.config.YWeight)
}

// Assign builds one QuestionGroup per anchor and distributes the given
// children among them. Children are appended in their input order; use
// OrderChildren afterwards to put each group's children in reading order.
// When anchors is empty, every child comes back unassigned, in input order.
func (a *SpatialAssigner) Assign(children []model.LayoutElement, anchors []model.AnchorCandidate, columns []model.ColumnRange) ([]model.QuestionGroup, []model.LayoutElement) {
	groups := make([]model.QuestionGroup, len(anchors))
	for i, anchor := range anchors {
		groups[i] = model.QuestionGroup{
			Anchor:      anchor,
			ColumnIndex: anchor.ColumnIndex,
		}
	}

	if len(anchors) == 0 {
		unassigned := make([]model.LayoutElement, len(children))
		copy(unassigned, children)
		return groups, unassigned
	}

	for _, child := range children {
		idx := a.nearestAnchor(child, anchors, columns)
		groups[idx].Children = append(groups[idx].Children, child)
	}
	return groups, nil
}

// nearestAnchor picks the anchor for a child: same-column anchors first,
// falling back to all anchors when the child's column has none.
func (a *SpatialAssigner) nearestAnchor(child model.LayoutElement, anchors []model.AnchorCandidate, columns []model.ColumnRange) int {
	childColumn := ColumnFor(columns, child.BBox)

	best := a.nearestIn(child, anchors, func(c model.AnchorCandidate) bool {
		return c.ColumnIndex == childColumn
	})
	if best >= 0 {
		return best
	}
	return a.nearestIn(child, anchors, func(model.AnchorCandidate) bool { return true })
}

// nearestIn returns the index of the closest eligible anchor, or -1 when no
// anchor is eligible. Distance ties break toward the lower question number,
// then the lower element id, keeping assignment a total order.
func (a *SpatialAssigner) nearestIn(child model.LayoutElement, anchors []model.AnchorCandidate, eligible func(model.AnchorCandidate) bool) int {
	best := -1
	bestDist := math.MaxFloat64

	for i, anchor := range anchors {
		if !eligible(anchor) {
			continue
		}
		dist := a.Distance(child.BBox, anchor.Element.BBox)
		switch {
		case dist < bestDist:
			best, bestDist = i, dist
		case dist == bestDist && best >= 0 && anchorBefore(anchor, anchors[best]):
			best = i
		}
	}
	return best
}

// anchorBefore reports whether a wins an exact distance tie against b:
// the earlier question number first, then the lower element id.
func anchorBefore(a, b model.AnchorCandidate) bool {
	if a.HasNumber && b.HasNumber && a.QuestionNumber != b.QuestionNumber {
		return a.QuestionNumber < b.QuestionNumber
	}
	return a.Element.ID < b.Element.ID
}

// OrderChildren sorts each group's children into reading order: top to
// bottom, and left to right within a row band. The band tolerance adapts to
// the children's median height. After this call the children lists are final.
func (a *SpatialAssigner) OrderChildren(groups []model.QuestionGroup) {
	for i := range groups {
		orderElements(groups[i].Children, a.config.RowBandRatio)
	}
}

// orderElements sorts elements by row band then x1. Elements are first
// sorted by y1, partitioned into bands using the adaptive tolerance, and
// each band is ordered left to right.
func orderElements(elements []model.LayoutElement, rowBandRatio float64) {
	if len(elements) < 2 {
		return
	}

	sort.SliceStable(elements, func(i, j int) bool {
		if elements[i].BBox.Y1 != elements[j].BBox.Y1 {
			return elements[i].BBox.Y1 < elements[j].BBox.Y1
		}
		return elements[i].BBox.X1 < elements[j].BBox.X1
	})

	tolerance := medianHeight(elements) * rowBandRatio

	// Partition into row bands and order each band left to right.
	bandStart := 0
	bandY := elements[0].BBox.CenterY()
	for i := 1; i <= len(elements); i++ {
		if i < len(elements) && math.Abs(elements[i].BBox.CenterY()-bandY) <= tolerance {
			continue
		}
		sortBandByX(elements[bandStart:i])
		if i < len(elements) {
			bandStart = i
			bandY = elements[i].BBox.CenterY()
		}
	}
}

func sortBandByX(band []model.LayoutElement) {
	sort.SliceStable(band, func(i, j int) bool {
		if band[i].BBox.X1 != band[j].BBox.X1 {
			return band[i].BBox.X1 < band[j].BBox.X1
		}
		return band[i].ID < band[j].ID
	})
}

// medianHeight returns the median bounding-box height of the elements.
func medianHeight(elements []model.LayoutElement) float64 {
	if len(elements) == 0 {
		return 0
	}
	heights := make([]float64, len(elements))
	for i, e := range elements {
		heights[i] = e.BBox.Height()
	}
	sort.Float64s(heights)
	mid := len(heights) / 2
	if len(heights)%2 == 0 {
		return (heights[mid-1] + heights[mid]) / 2
	}
	return heights[mid]
}
