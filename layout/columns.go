package layout

import (
	"math"
	"sort"

	"github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/model"
)

// ColumnConfig holds configuration for column detection.
type ColumnConfig struct {
	// GapRatio is the fraction of page width used as the adaptive gap
	// threshold before clamping.
	// Default: 0.10 (10% of page width)
	GapRatio float64

	// MinGap is the lower clamp for the adaptive gap threshold, in pixels.
	// Gaps narrower than this never split columns.
	// Default: 50
	MinGap float64

	// MaxGap is the upper clamp for the adaptive gap threshold, in pixels.
	// Gaps wider than this are treated as page margins rather than column
	// gutters and do not produce boundaries.
	// Default: 800
	MaxGap float64
}

// DefaultColumnConfig returns sensible default configuration
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		GapRatio: 0.10,
		MinGap:   50.0,
		MaxGap:   800.0,
	}
}

// ColumnDetector infers column boundaries from the horizontal distribution of
// anchor positions using adaptive gap detection. Detection is deterministic
// and pure: the same input always produces the same column ranges, and the
// detector holds no state across calls.
type ColumnDetector struct {
	config ColumnConfig
}

// NewColumnDetector creates a new column detector with default configuration
func NewColumnDetector() *ColumnDetector {
	return &ColumnDetector{
		config: DefaultColumnConfig(),
	}
}

// NewColumnDetectorWithConfig creates a column detector with custom configuration
func NewColumnDetectorWithConfig(config ColumnConfig) *ColumnDetector {
	return &ColumnDetector{
		config: config,
	}
}

// AdaptiveGap returns the gap threshold for the given page width:
// GapRatio * pageWidth clamped to [MinGap, MaxGap].
func (d *ColumnDetector) AdaptiveGap(pageWidth float64) float64 {
	gap := pageWidth * d.config.GapRatio
	if gap < d.config.MinGap {
		gap = d.config.MinGap
	}
	if gap > d.config.MaxGap {
		gap = d.config.MaxGap
	}
	return gap
}

// Detect infers column ranges from anchor x1 coordinates. Boundaries are
// placed at the midpoint of every horizontal gap between consecutive distinct
// x positions that falls within [AdaptiveGap, MaxGap], and the resulting
// ranges partition [0, pageWidth].
//
// Zero or one anchor, or anchors with no qualifying gaps, produce a single
// column spanning the full page width, never a false split.
func (d *ColumnDetector) Detect(anchorXs []float64, pageWidth float64) []model.ColumnRange {
	xs := distinctSorted(anchorXs)

	if len(xs) < 2 {
		return singleColumn(pageWidth)
	}

	adaptiveGap := d.AdaptiveGap(pageWidth)

	var boundaries []float64
	for i := 1; i < len(xs); i++ {
		gap := xs[i] - xs[i-1]
		if gap >= adaptiveGap && gap <= d.config.MaxGap {
			boundaries = append(boundaries, (xs[i-1]+xs[i])/2)
		}
	}

	if len(boundaries) == 0 {
		return singleColumn(pageWidth)
	}

	return rangesFromBoundaries(boundaries, pageWidth)
}

// singleColumn returns one range spanning the full page width.
func singleColumn(pageWidth float64) []model.ColumnRange {
	return []model.ColumnRange{
		{Index: 0, XStart: 0, XEnd: pageWidth},
	}
}

// rangesFromBoundaries partitions [0, pageWidth] at the given boundary
// positions. N boundaries produce N+1 ranges.
func rangesFromBoundaries(boundaries []float64, pageWidth float64) []model.ColumnRange {
	ranges := make([]model.ColumnRange, 0, len(boundaries)+1)
	start := 0.0
	for i, b := range boundaries {
		ranges = append(ranges, model.ColumnRange{Index: i, XStart: start, XEnd: b})
		start = b
	}
	ranges = append(ranges, model.ColumnRange{
		Index:  len(boundaries),
		XStart: start,
		XEnd:   pageWidth,
	})
	return ranges
}

// distinctSorted returns the distinct values of xs in ascending order,
// leaving the input untouched.
func distinctSorted(xs []float64) []float64 {
	if len(xs) == 0 {
		return nil
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	distinct := sorted[:1]
	for _, x := range sorted[1:] {
		if x != distinct[len(distinct)-1] {
			distinct = append(distinct, x)
		}
	}
	return distinct
}

// ColumnFor returns the index of the column holding the larger share of the
// box's width. Elements straddling a boundary go to the column containing the
// majority of the box; exact ties go to the leftmost of the tied columns.
// Falls back to the column containing the box center, then to the nearest
// column, so every element maps to exactly one column.
func ColumnFor(columns []model.ColumnRange, bbox model.BBox) int {
	if len(columns) == 0 {
		return 0
	}

	best := -1
	bestOverlap := 0.0
	for _, col := range columns {
		overlap := bbox.HorizontalOverlap(col.XStart, col.XEnd)
		if overlap > bestOverlap {
			bestOverlap = overlap
			best = col.Index
		}
	}
	if best >= 0 {
		return best
	}

	// No overlap at all (box outside every range after clamping edge cases):
	// use the column whose center is nearest the box center.
	center := bbox.CenterX()
	for _, col := range columns {
		if col.ContainsX(center) {
			return col.Index
		}
	}
	nearest := 0
	nearestDist := math.MaxFloat64
	for _, col := range columns {
		colCenter := (col.XStart + col.XEnd) / 2
		if dist := math.Abs(center - colCenter); dist < nearestDist {
			nearestDist = dist
			nearest = col.Index
		}
	}
	return nearest
}
