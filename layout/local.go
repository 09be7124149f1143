package layout

import (
	"math"

	"github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/model"
)

// LocalStrategy orders question groups by local anchor-to-anchor adjacency
// without assuming any global column regularity. Starting from the
// top-left-most anchor it walks greedily: an unvisited anchor that is
// horizontally adjacent (same row band, to the right) is preferred over one
// that is merely below, and when no horizontal neighbor qualifies the walk
// falls back to the nearest unvisited anchor by the axis-weighted assignment
// metric.
//
// Local ordering fits scans and hand-assembled worksheets, where anchors
// drift and columns wobble too much for global structure to hold.
type LocalStrategy struct {
	config OrderingConfig
}

// NewLocalStrategy creates a local ordering strategy with the given configuration.
func NewLocalStrategy(config OrderingConfig) *LocalStrategy {
	return &LocalStrategy{config: config}
}

// Order returns the groups in local reading order. The input slice is not
// modified.
func (s *LocalStrategy) Order(groups []model.QuestionGroup) ([]model.QuestionGroup, error) {
	if len(groups) <= 1 {
		return append([]model.QuestionGroup(nil), groups...), nil
	}

	rowBand := s.rowBand(groups)

	visited := make([]bool, len(groups))
	ordered := make([]model.QuestionGroup, 0, len(groups))

	current := topLeftMost(groups)
	visited[current] = true
	ordered = append(ordered, groups[current])

	for len(ordered) < len(groups) {
		next := s.horizontalNeighbor(groups, visited, current, rowBand)
		if next < 0 {
			next = s.nearestUnvisited(groups, visited, current)
		}
		visited[next] = true
		ordered = append(ordered, groups[next])
		current = next
	}
	return ordered, nil
}

// rowBand returns the adaptive same-row tolerance for this page: a multiple
// of the mean anchor height.
func (s *LocalStrategy) rowBand(groups []model.QuestionGroup) float64 {
	total := 0.0
	for i := range groups {
		total += groups[i].Anchor.Element.BBox.Height()
	}
	return total / float64(len(groups)) * s.config.RowBandRatio
}

// topLeftMost returns the index of the starting anchor: smallest y1, ties
// broken by smallest x1, then lowest id.
func topLeftMost(groups []model.QuestionGroup) int {
	best := 0
	for i := 1; i < len(groups); i++ {
		a, b := groups[i].Anchor.Element.BBox, groups[best].Anchor.Element.BBox
		switch {
		case a.Y1 < b.Y1:
			best = i
		case a.Y1 == b.Y1 && a.X1 < b.X1:
			best = i
		case a.Y1 == b.Y1 && a.X1 == b.X1 && groups[i].Anchor.Element.ID < groups[best].Anchor.Element.ID:
			best = i
		}
	}
	return best
}

// horizontalNeighbor finds the closest unvisited anchor sitting in the same
// row band to the right of the current anchor, or -1 when none qualifies.
func (s *LocalStrategy) horizontalNeighbor(groups []model.QuestionGroup, visited []bool, current int, rowBand float64) int {
	cur := groups[current].Anchor.Element.BBox

	best := -1
	bestDx := math.MaxFloat64
	for i := range groups {
		if visited[i] {
			continue
		}
		cand := groups[i].Anchor.Element.BBox
		if math.Abs(cand.CenterY()-cur.CenterY()) > rowBand {
			continue
		}
		dx := cand.CenterX() - cur.CenterX()
		if dx <= 0 {
			continue
		}
		if dx < bestDx || (dx == bestDx && best >= 0 && groups[i].Anchor.Element.ID < groups[best].Anchor.Element.ID) {
			best, bestDx = i, dx
		}
	}
	return best
}

// nearestUnvisited finds the unvisited anchor closest to the current one by
// the axis-weighted metric, preferring anchors below on exact ties, then the
// lower element id.
func (s *LocalStrategy) nearestUnvisited(groups []model.QuestionGroup, visited []bool, current int) int {
	cur := groups[current].Anchor.Element.BBox.Center()

	best := -1
	bestDist := math.MaxFloat64
	for i := range groups {
		if visited[i] {
			continue
		}
		dist := cur.WeightedDistance(groups[i].Anchor.Element.BBox.Center(), s.config.Assign.XWeight, s.config.Assign.YWeight)
		if dist < bestDist {
			best, bestDist = i, dist
			continue
		}
		if dist == bestDist && best >= 0 && localTieBefore(groups[i], groups[best], cur.Y) {
			best = i
		}
	}
	return best
}

// localTieBefore resolves an exact distance tie: the anchor below the
// current position wins over the one above, then the lower id.
func localTieBefore(a, b model.QuestionGroup, currentY float64) bool {
	aBelow := a.Anchor.Element.BBox.CenterY() >= currentY
	bBelow := b.Anchor.Element.BBox.CenterY() >= currentY
	if aBelow != bBelow {
		return aBelow
	}
	return a.Anchor.Element.ID < b.Anchor.Element.ID
}
