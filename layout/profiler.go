package layout

import (
	"math"
	"sort"

	"github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/model"
)

// LayoutType classifies the overall shape of a page layout.
type LayoutType int

const (
	// SingleColumn pages have one vertical band of content.
	SingleColumn LayoutType = iota
	// MultiColumnRegular pages have columns whose anchors line up
	// vertically, characteristic of programmatically rendered documents.
	MultiColumnRegular
	// MultiColumnIrregular pages have columns without consistent anchor
	// alignment, characteristic of scans and hand-assembled worksheets.
	MultiColumnIrregular
)

func (t LayoutType) String() string {
	switch t {
	case MultiColumnRegular:
		return "multi-column-regular"
	case MultiColumnIrregular:
		return "multi-column-irregular"
	default:
		return "single-column"
	}
}

// Profile holds the scalar layout-shape metrics computed by the profiler.
type Profile struct {
	// GlobalConsistency in [0,1] measures how tightly anchors in the same
	// provisional column line up vertically. Near 1 means anchors share
	// x positions almost exactly.
	GlobalConsistency float64

	// HorizontalAdjacency in [0,1] is the fraction of anchors whose
	// nearest non-anchor element sits in the same row band, immediately
	// to the anchor's right.
	HorizontalAdjacency float64

	// Type is the coarse layout classification.
	Type LayoutType

	// AnchorCount and ColumnCount are the provisional counts the metrics
	// were derived from.
	AnchorCount int
	ColumnCount int
}

// ProfilerConfig holds configuration for the layout profiler, including the
// thresholds the strategy selector applies to its output.
type ProfilerConfig struct {
	// GlobalConsistencyThreshold: at or above this consistency the
	// global-first ordering strategy is favored.
	// Default: 0.75
	GlobalConsistencyThreshold float64

	// HorizontalAdjacencyThreshold: at or above this adjacency ratio the
	// local-first ordering strategy is favored.
	// Default: 0.6
	HorizontalAdjacencyThreshold float64

	// SpreadScale is the normalized-spread value (per-column x1 standard
	// deviation as a fraction of page width) that maps to zero
	// consistency. Spreads at or beyond this mean anchors do not line up
	// at all.
	// Default: 0.05 (5% of page width)
	SpreadScale float64

	// RowBandRatio sets the adaptive row-band tolerance for horizontal
	// adjacency, as a multiple of the mean anchor height.
	// Default: 0.8
	RowBandRatio float64

	// Assign supplies the axis weights for the nearest-neighbor metric,
	// matching the weights the spatial assigner will use.
	Assign AssignConfig
}

// DefaultProfilerConfig returns sensible default configuration
func DefaultProfilerConfig() ProfilerConfig {
	return ProfilerConfig{
		GlobalConsistencyThreshold:   0.75,
		HorizontalAdjacencyThreshold: 0.6,
		SpreadScale:                  0.05,
		RowBandRatio:                 0.8,
		Assign:                       DefaultAssignConfig(),
	}
}

// LayoutProfiler computes cheap layout-shape metrics used to pick an
// ordering strategy. It is a pre-pass, not a second sort: the whole
// computation is O(n log n) in the element count.
type LayoutProfiler struct {
	config ProfilerConfig
}

// NewLayoutProfiler creates a new layout profiler with default configuration
func NewLayoutProfiler() *LayoutProfiler {
	return &LayoutProfiler{
		config: DefaultProfilerConfig(),
	}
}

// NewLayoutProfilerWithConfig creates a layout profiler with custom configuration
func NewLayoutProfilerWithConfig(config ProfilerConfig) *LayoutProfiler {
	return &LayoutProfiler{
		config: config,
	}
}

// Profile inspects the page's raw elements and computes the layout metrics.
// Anchors are bucketed with a low-cost provisional column split at the page
// midpoint; the full column detector runs later, only for the chosen
// strategy.
func (p *LayoutProfiler) Profile(elements []model.LayoutElement, pageWidth, pageHeight float64) Profile {
	var anchors, others []model.LayoutElement
	for _, e := range elements {
		if e.Class.IsAnchorClass() {
			anchors = append(anchors, e)
		} else {
			others = append(others, e)
		}
	}

	profile := Profile{AnchorCount: len(anchors)}
	if len(anchors) == 0 {
		profile.GlobalConsistency = 0
		profile.Type = SingleColumn
		profile.ColumnCount = 1
		return profile
	}

	left, right := splitAtMidpoint(anchors, pageWidth)
	profile.ColumnCount = 1
	if len(left) > 0 && len(right) > 0 {
		profile.ColumnCount = 2
	}

	profile.GlobalConsistency = p.consistencyScore([][]model.LayoutElement{left, right}, pageWidth)
	profile.HorizontalAdjacency = p.adjacencyRatio(anchors, others)

	switch {
	case profile.ColumnCount == 1:
		profile.Type = SingleColumn
	case profile.GlobalConsistency >= p.config.GlobalConsistencyThreshold:
		profile.Type = MultiColumnRegular
	default:
		profile.Type = MultiColumnIrregular
	}
	return profile
}

// splitAtMidpoint buckets anchors by which half of the page their center
// falls in. This provisional split is deliberately crude; it only feeds the
// consistency metric, not the final column structure.
func splitAtMidpoint(anchors []model.LayoutElement, pageWidth float64) (left, right []model.LayoutElement) {
	mid := pageWidth / 2
	for _, a := range anchors {
		if a.BBox.CenterX() < mid {
			left = append(left, a)
		} else {
			right = append(right, a)
		}
	}
	return left, right
}

// consistencyScore converts the per-bucket normalized spread of anchor x1
// coordinates into a [0,1] score: zero spread scores 1, spreads at or beyond
// SpreadScale * pageWidth score 0.
func (p *LayoutProfiler) consistencyScore(buckets [][]model.LayoutElement, pageWidth float64) float64 {
	if pageWidth <= 0 {
		return 0
	}

	totalSpread := 0.0
	bucketCount := 0
	for _, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		totalSpread += stddevX1(bucket) / pageWidth
		bucketCount++
	}
	if bucketCount == 0 {
		return 0
	}

	avgSpread := totalSpread / float64(bucketCount)
	score := 1 - avgSpread/p.config.SpreadScale
	return clamp01(score)
}

// stddevX1 returns the population standard deviation of the anchors' x1
// coordinates.
func stddevX1(elements []model.LayoutElement) float64 {
	if len(elements) < 2 {
		return 0
	}
	mean := 0.0
	for _, e := range elements {
		mean += e.BBox.X1
	}
	mean /= float64(len(elements))

	variance := 0.0
	for _, e := range elements {
		d := e.BBox.X1 - mean
		variance += d * d
	}
	variance /= float64(len(elements))
	return math.Sqrt(variance)
}

// adjacencyRatio computes the fraction of anchors whose nearest non-anchor
// (by the axis-weighted assignment metric) lies within the same row band and
// to the anchor's right. Candidates are narrowed with a y-sorted window so
// the scan stays O(n log n).
func (p *LayoutProfiler) adjacencyRatio(anchors, others []model.LayoutElement) float64 {
	if len(anchors) == 0 || len(others) == 0 {
		return 0
	}

	rowBand := meanHeight(anchors) * p.config.RowBandRatio

	sorted := make([]model.LayoutElement, len(others))
	copy(sorted, others)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].BBox.CenterY() < sorted[j].BBox.CenterY()
	})
	centerYs := make([]float64, len(sorted))
	for i, e := range sorted {
		centerYs[i] = e.BBox.CenterY()
	}

	adjacent := 0
	for _, anchor := range anchors {
		nearest, ok := nearestInWindow(anchor, sorted, centerYs, rowBand, p.config.Assign)
		if !ok {
			continue
		}
		dy := math.Abs(nearest.BBox.CenterY() - anchor.BBox.CenterY())
		if dy <= rowBand && nearest.BBox.X1 >= anchor.BBox.CenterX() {
			adjacent++
		}
	}
	return float64(adjacent) / float64(len(anchors))
}

// nearestInWindow finds the closest non-anchor to the given anchor,
// searching a window of candidates around the anchor's vertical position
// first and widening to the full set only when the window is empty.
func nearestInWindow(anchor model.LayoutElement, sorted []model.LayoutElement, centerYs []float64, rowBand float64, weights AssignConfig) (model.LayoutElement, bool) {
	if len(sorted) == 0 {
		return model.LayoutElement{}, false
	}

	anchorY := anchor.BBox.CenterY()
	window := 3 * rowBand
	lo := sort.SearchFloat64s(centerYs, anchorY-window)
	hi := sort.SearchFloat64s(centerYs, anchorY+window)
	if lo == hi {
		// Nothing near this anchor vertically; whatever is nearest is
		// certainly not horizontally adjacent, but find it anyway so the
		// caller's predicate stays uniform.
		lo, hi = 0, len(sorted)
	}

	best := -1
	bestDist := math.MaxFloat64
	for i := lo; i < hi; i++ {
		dist := anchor.BBox.Center().WeightedDistance(sorted[i].BBox.Center(), weights.XWeight, weights.YWeight)
		if dist < bestDist || (dist == bestDist && best >= 0 && sorted[i].ID < sorted[best].ID) {
			best, bestDist = i, dist
		}
	}
	return sorted[best], true
}

// meanHeight returns the mean bounding-box height of the elements.
func meanHeight(elements []model.LayoutElement) float64 {
	if len(elements) == 0 {
		return 0
	}
	total := 0.0
	for _, e := range elements {
		total += e.BBox.Height()
	}
	return total / float64(len(elements))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
