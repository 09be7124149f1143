// Package layout reconstructs the logical reading order of scanned worksheet
// pages from detected layout elements.
//
// The input is a flat set of elements (bounding boxes, class labels,
// detector confidence, and OCR text with its confidence) and the output is
// a structured document: which elements belong to which question, in which
// column, in the top-to-bottom/left-to-right sequence a human would read.
//
// # Pipeline
//
// The [Reconstructor] orchestrates all stages:
//
//	r := layout.NewReconstructor()
//	doc, err := r.Reconstruct(elements, pageWidth, pageHeight)
//
// Internally that runs:
//
//   - [LayoutProfiler] - cheap layout-shape metrics (anchor x-consistency,
//     horizontal adjacency) used to pick an ordering strategy
//   - [AnchorExtractor] - accepts or rejects question markers by fusing
//     detector confidence, OCR confidence and a numbering-pattern score
//   - [ColumnDetector] - adaptive gap detection over anchor x positions
//   - [SpatialAssigner] - attaches every non-anchor element to its nearest
//     anchor with a column-constrained, axis-weighted distance
//   - [GlobalStrategy] / [LocalStrategy] / [HybridStrategy] - order the
//     question groups page-wide, by local adjacency, or by running both and
//     keeping the better result
//
// # Configuration
//
// Every stage is configured through explicit structs with documented
// defaults; there are no hidden tunables:
//
//	config := layout.DefaultConfig()
//	config.Anchor.AcceptThreshold = 0.7
//	config.Strategy = layout.StrategyGlobal // explicit override
//	r := layout.NewReconstructorWithConfig(config)
//
// # Determinism
//
// Reconstruction is a pure function over an immutable input snapshot: the
// same elements always produce byte-identical output, ambiguity is resolved
// by documented tie-breaks rather than errors, and a Reconstructor is safe
// to use concurrently for different pages.
package layout
