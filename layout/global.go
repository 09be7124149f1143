package layout

import (
	"math"
	"sort"

	"github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/model"
)

// GlobalStrategy orders question groups using page-wide column and row
// structure. It recursively partitions the page: full-width separator
// elements split a region into row bands top to bottom, and within a band
// the anchors are clustered into columns ordered left to right, each
// column's anchors top to bottom. When gap detection cannot settle the
// column boundaries inside a band, a deterministic 1D k-means clustering of
// the anchor x-centers takes over.
//
// Global ordering fits programmatically rendered worksheets, where anchors
// in the same visual column share x positions almost exactly.
type GlobalStrategy struct {
	config OrderingConfig
}

// NewGlobalStrategy creates a global ordering strategy with the given configuration.
func NewGlobalStrategy(config OrderingConfig) *GlobalStrategy {
	return &GlobalStrategy{config: config}
}

// Order returns the groups in global reading order. Separators are the
// non-anchor elements eligible to split the page into bands. The input
// slice is not modified.
func (s *GlobalStrategy) Order(groups []model.QuestionGroup, separators []model.LayoutElement, pageWidth, pageHeight float64) ([]model.QuestionGroup, error) {
	if len(groups) <= 1 {
		return append([]model.QuestionGroup(nil), groups...), nil
	}

	indices := make([]int, len(groups))
	for i := range indices {
		indices[i] = i
	}

	region := model.NewBBox(0, 0, pageWidth, pageHeight)
	ordered := s.orderRegion(groups, indices, separators, region)

	result := make([]model.QuestionGroup, 0, len(groups))
	for _, idx := range ordered {
		result = append(result, groups[idx])
	}
	return result, nil
}

// orderRegion recursively orders the given group indices within a region.
func (s *GlobalStrategy) orderRegion(groups []model.QuestionGroup, indices []int, separators []model.LayoutElement, region model.BBox) []int {
	if len(indices) <= 1 {
		return indices
	}

	if bands := s.splitByBands(groups, indices, separators, region); bands != nil {
		var ordered []int
		for _, band := range bands {
			ordered = append(ordered, s.orderRegion(groups, band.indices, separators, band.region)...)
		}
		return ordered
	}

	if columns := s.splitByColumns(groups, indices, region); columns != nil {
		var ordered []int
		for _, col := range columns {
			ordered = append(ordered, s.orderRegion(groups, col.indices, separators, col.region)...)
		}
		return ordered
	}

	// Base case: no further splits. Order by position.
	sorted := append([]int(nil), indices...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := groups[sorted[i]].Anchor, groups[sorted[j]].Anchor
		if a.ColumnIndex != b.ColumnIndex {
			return a.ColumnIndex < b.ColumnIndex
		}
		if a.Element.BBox.Y1 != b.Element.BBox.Y1 {
			return a.Element.BBox.Y1 < b.Element.BBox.Y1
		}
		if a.Element.BBox.X1 != b.Element.BBox.X1 {
			return a.Element.BBox.X1 < b.Element.BBox.X1
		}
		return a.Element.ID < b.Element.ID
	})
	return sorted
}

// subRegion pairs a slice of group indices with the region they occupy.
type subRegion struct {
	indices []int
	region  model.BBox
}

// splitByBands splits the region into horizontal bands at qualifying
// separators. Returns nil when no separator qualifies or the split does not
// actually partition the groups.
func (s *GlobalStrategy) splitByBands(groups []model.QuestionGroup, indices []int, separators []model.LayoutElement, region model.BBox) []subRegion {
	var cuts []float64
	for _, sep := range separators {
		centerY := sep.BBox.CenterY()
		if centerY <= region.Y1 || centerY >= region.Y2 {
			continue
		}
		if sep.BBox.HorizontalOverlap(region.X1, region.X2) < s.config.SpanningRatio*region.Width() {
			continue
		}
		cuts = append(cuts, centerY)
	}
	if len(cuts) == 0 {
		return nil
	}
	sort.Float64s(cuts)

	edges := append([]float64{region.Y1}, cuts...)
	edges = append(edges, region.Y2)

	bands := make([]subRegion, len(edges)-1)
	for i := range bands {
		bands[i].region = model.NewBBox(region.X1, edges[i], region.X2, edges[i+1])
	}
	for _, idx := range indices {
		y := groups[idx].Anchor.Element.BBox.CenterY()
		b := sort.SearchFloat64s(cuts, y) // band index: number of cuts above y
		bands[b].indices = append(bands[b].indices, idx)
	}

	// A split that leaves everything in one band makes no progress; the
	// cuts are consumed either way since sub-regions exclude them.
	nonEmpty := 0
	for _, band := range bands {
		if len(band.indices) > 0 {
			nonEmpty++
		}
	}
	var result []subRegion
	for _, band := range bands {
		if len(band.indices) > 0 {
			result = append(result, band)
		}
	}
	if nonEmpty <= 1 {
		// Still recurse once into the single band so the consumed cuts
		// cannot qualify again.
		return result
	}
	return result
}

// splitByColumns clusters the anchors within the region into vertical
// columns. Returns nil when the region resolves to a single column.
func (s *GlobalStrategy) splitByColumns(groups []model.QuestionGroup, indices []int, region model.BBox) []subRegion {
	xs := make([]float64, len(indices))
	centers := make([]float64, len(indices))
	for i, idx := range indices {
		xs[i] = groups[idx].Anchor.Element.BBox.X1
		centers[i] = groups[idx].Anchor.Element.BBox.CenterX()
	}

	detector := NewColumnDetectorWithConfig(s.config.Column)
	adaptiveGap := detector.AdaptiveGap(region.Width())

	boundaries := gapBoundaries(xs, adaptiveGap, s.config.Column.MaxGap)
	if len(boundaries) == 0 {
		// Gap detection is ambiguous here; fall back to 1D clustering of
		// the x-centers when they clearly form two groups.
		boundaries = s.kmeansBoundary(centers, adaptiveGap)
	}
	if len(boundaries) == 0 {
		return nil
	}

	edges := append([]float64{region.X1}, boundaries...)
	edges = append(edges, region.X2)

	cols := make([]subRegion, len(edges)-1)
	for i := range cols {
		cols[i].region = model.NewBBox(edges[i], region.Y1, edges[i+1], region.Y2)
	}
	for _, idx := range indices {
		x := groups[idx].Anchor.Element.BBox.CenterX()
		c := sort.SearchFloat64s(boundaries, x)
		cols[c].indices = append(cols[c].indices, idx)
	}

	nonEmpty := 0
	for _, col := range cols {
		if len(col.indices) > 0 {
			nonEmpty++
		}
	}
	if nonEmpty <= 1 {
		return nil
	}

	var result []subRegion
	for _, col := range cols {
		if len(col.indices) > 0 {
			result = append(result, col)
		}
	}
	return result
}

// gapBoundaries finds column boundaries among sorted distinct x positions
// wherever the gap between neighbors falls within [adaptiveGap, maxGap].
func gapBoundaries(xs []float64, adaptiveGap, maxGap float64) []float64 {
	distinct := distinctSorted(xs)
	if len(distinct) < 2 {
		return nil
	}
	var boundaries []float64
	for i := 1; i < len(distinct); i++ {
		gap := distinct[i] - distinct[i-1]
		if gap >= adaptiveGap && gap <= maxGap {
			boundaries = append(boundaries, (distinct[i-1]+distinct[i])/2)
		}
	}
	return boundaries
}

// kmeansBoundary runs a deterministic two-cluster 1D k-means on the anchor
// x-centers and returns a single boundary between the clusters, provided the
// centroids end up at least adaptiveGap apart. Centroids are seeded at the
// extremes, so the same input always converges to the same clustering.
func (s *GlobalStrategy) kmeansBoundary(centers []float64, adaptiveGap float64) []float64 {
	if len(centers) < 4 {
		return nil
	}

	sorted := make([]float64, len(centers))
	copy(sorted, centers)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if hi-lo < adaptiveGap {
		return nil
	}

	c1, c2 := lo, hi
	for iter := 0; iter < s.config.KMeansIterations; iter++ {
		var sum1, sum2 float64
		var n1, n2 int
		for _, x := range sorted {
			if math.Abs(x-c1) <= math.Abs(x-c2) {
				sum1 += x
				n1++
			} else {
				sum2 += x
				n2++
			}
		}
		if n1 == 0 || n2 == 0 {
			return nil
		}
		next1, next2 := sum1/float64(n1), sum2/float64(n2)
		if next1 == c1 && next2 == c2 {
			break
		}
		c1, c2 = next1, next2
	}

	if c2-c1 < adaptiveGap {
		return nil
	}
	return []float64{(c1 + c2) / 2}
}
