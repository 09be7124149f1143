package layout

import (
	"fmt"

	"github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/model"
)

// Config aggregates the configuration of every stage in the reconstruction
// pipeline. All thresholds live here as named fields; there are no hidden
// tunables.
type Config struct {
	// Column configures page-level column detection.
	Column ColumnConfig

	// Anchor configures anchor extraction and confidence fusion.
	Anchor AnchorConfig

	// Assign configures spatial anchor/child assignment.
	Assign AssignConfig

	// Profiler configures the layout profiler and the strategy-selection
	// thresholds.
	Profiler ProfilerConfig

	// Ordering configures the ordering strategies.
	Ordering OrderingConfig

	// Strategy overrides the profiler-driven strategy selection when set
	// to anything other than StrategyAuto.
	Strategy Strategy
}

// DefaultConfig returns a configuration with sensible defaults for all stages.
func DefaultConfig() Config {
	return Config{
		Column:   DefaultColumnConfig(),
		Anchor:   DefaultAnchorConfig(),
		Assign:   DefaultAssignConfig(),
		Profiler: DefaultProfilerConfig(),
		Ordering: DefaultOrderingConfig(),
		Strategy: StrategyAuto,
	}
}

// Reconstructor orchestrates the full reading-order pipeline: profile the
// page, extract anchors, detect columns, assign children, pick an ordering
// strategy and produce the final StructuredDocument.
//
// A Reconstructor holds no cross-call state: Reconstruct is a pure function
// of its input, deterministic for identical inputs, and safe to call
// concurrently for different pages.
type Reconstructor struct {
	config Config

	profiler  *LayoutProfiler
	columns   *ColumnDetector
	anchors   *AnchorExtractor
	assigner  *SpatialAssigner
	globalOrd *GlobalStrategy
	localOrd  *LocalStrategy
	hybridOrd *HybridStrategy
}

// NewReconstructor creates a new reconstructor with default configuration
func NewReconstructor() *Reconstructor {
	return NewReconstructorWithConfig(DefaultConfig())
}

// NewReconstructorWithConfig creates a reconstructor with custom configuration
func NewReconstructorWithConfig(config Config) *Reconstructor {
	return &Reconstructor{
		config:    config,
		profiler:  NewLayoutProfilerWithConfig(config.Profiler),
		columns:   NewColumnDetectorWithConfig(config.Column),
		anchors:   NewAnchorExtractorWithConfig(config.Anchor),
		assigner:  NewSpatialAssignerWithConfig(config.Assign),
		globalOrd: NewGlobalStrategy(config.Ordering),
		localOrd:  NewLocalStrategy(config.Ordering),
		hybridOrd: NewHybridStrategy(config.Ordering),
	}
}

// Reconstruct rebuilds the logical reading order of a page from its detected
// layout elements. Every input element ends up in the result exactly once:
// as a group anchor, as a group child, or in Unassigned.
//
// Geometry and input-contract violations fail the whole page with a typed
// error. Layout ambiguity never fails: a page without recognizable anchors
// yields a document with zero groups and everything unassigned, because a
// partial reading order is strictly preferable to no output.
func (r *Reconstructor) Reconstruct(elements []model.LayoutElement, pageWidth, pageHeight float64) (*model.StructuredDocument, error) {
	if err := validateInput(elements, pageWidth, pageHeight); err != nil {
		return nil, err
	}

	profile := r.profiler.Profile(elements, pageWidth, pageHeight)
	strategy := SelectStrategy(profile, r.config.Strategy, r.config.Profiler)

	// Fuse confidences: accepted anchors on one side, everything else
	// (including rejected anchor-class elements) stays a child candidate.
	candidates, children := r.anchors.ExtractAll(elements)

	// Column structure comes from the accepted anchors' x positions.
	anchorXs := make([]float64, len(candidates))
	for i, c := range candidates {
		anchorXs[i] = c.Element.BBox.X1
	}
	columns := r.columns.Detect(anchorXs, pageWidth)

	for i := range candidates {
		candidates[i].ColumnIndex = ColumnFor(columns, candidates[i].Element.BBox)
	}

	// Duplicate question numbers within a column: the stronger candidate
	// keeps the number, the weaker one is demoted to a child candidate.
	anchors, demoted := ResolveDuplicates(candidates)
	children = append(children, demoted...)

	if len(anchors) == 0 {
		// A page without recognizable question markers is a valid, if
		// degenerate, document.
		unassigned := make([]model.LayoutElement, len(elements))
		copy(unassigned, elements)
		return &model.StructuredDocument{
			Columns:    singleColumn(pageWidth),
			Unassigned: unassigned,
			PageWidth:  pageWidth,
			PageHeight: pageHeight,
		}, nil
	}

	SortAnchorsByPosition(anchors)
	groups, unassigned := r.assigner.Assign(children, anchors, columns)

	separators := separatorElements(children, pageWidth, r.config.Ordering.SpanningRatio)

	ordered, err := r.order(strategy, groups, separators, pageWidth, pageHeight)
	if err != nil {
		return nil, fmt.Errorf("ordering strategy %s: %w", strategy, err)
	}

	r.assigner.OrderChildren(ordered)

	return &model.StructuredDocument{
		Columns:    columns,
		Groups:     ordered,
		Unassigned: unassigned,
		PageWidth:  pageWidth,
		PageHeight: pageHeight,
	}, nil
}

// order dispatches to the chosen strategy.
func (r *Reconstructor) order(strategy Strategy, groups []model.QuestionGroup, separators []model.LayoutElement, pageWidth, pageHeight float64) ([]model.QuestionGroup, error) {
	switch strategy {
	case StrategyGlobal:
		return r.globalOrd.Order(groups, separators, pageWidth, pageHeight)
	case StrategyLocal:
		return r.localOrd.Order(groups)
	default:
		return r.hybridOrd.Order(groups, separators, pageWidth, pageHeight)
	}
}

// validateInput enforces the input contract: positive page dimensions,
// well-formed bounding boxes, unique element ids. Violations indicate an
// upstream detector bug and reject the whole page.
func validateInput(elements []model.LayoutElement, pageWidth, pageHeight float64) error {
	if pageWidth <= 0 || pageHeight <= 0 {
		return fmt.Errorf("%w: %.1fx%.1f", model.ErrInvalidPageSize, pageWidth, pageHeight)
	}

	seen := make(map[int]bool, len(elements))
	for _, e := range elements {
		if err := e.Validate(pageWidth, pageHeight); err != nil {
			return err
		}
		if seen[e.ID] {
			return fmt.Errorf("%w: id %d", model.ErrDuplicateElementID, e.ID)
		}
		seen[e.ID] = true
	}
	return nil
}

// separatorElements picks the non-anchor elements eligible to split the page
// into row bands: separator-class elements spanning at least the spanning
// ratio of the page width.
func separatorElements(children []model.LayoutElement, pageWidth, spanningRatio float64) []model.LayoutElement {
	var separators []model.LayoutElement
	for _, e := range children {
		if e.Class.IsSeparatorClass() && e.BBox.Width() >= spanningRatio*pageWidth {
			separators = append(separators, e)
		}
	}
	return separators
}
