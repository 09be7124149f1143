package layout

import (
	"golang.org/x/sync/errgroup"

	"github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/model"
)

// HybridStrategy runs the global and local orderings independently and keeps
// the higher-quality result. The two sub-strategies are pure computations
// over the same immutable input, so they run as two parallel tasks joined
// before scoring; nothing mutable crosses the boundary.
//
// Quality is the fraction of consecutive same-column anchor pairs that read
// top to bottom, minus a penalty for column-order regressions. When both
// orderings score identically the global result wins: documents are more
// often regular than irregular.
type HybridStrategy struct {
	config OrderingConfig
	global *GlobalStrategy
	local  *LocalStrategy
}

// NewHybridStrategy creates a hybrid ordering strategy with the given configuration.
func NewHybridStrategy(config OrderingConfig) *HybridStrategy {
	return &HybridStrategy{
		config: config,
		global: NewGlobalStrategy(config),
		local:  NewLocalStrategy(config),
	}
}

// Order runs both sub-strategies and returns the higher-scoring ordering.
func (s *HybridStrategy) Order(groups []model.QuestionGroup, separators []model.LayoutElement, pageWidth, pageHeight float64) ([]model.QuestionGroup, error) {
	var globalResult, localResult []model.QuestionGroup

	var g errgroup.Group
	g.Go(func() error {
		var err error
		globalResult, err = s.global.Order(groups, separators, pageWidth, pageHeight)
		return err
	})
	g.Go(func() error {
		var err error
		localResult, err = s.local.Order(groups)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	globalScore := s.Score(globalResult)
	localScore := s.Score(localResult)

	// Identical scores are resolved deterministically toward global; the
	// ambiguity never surfaces to the caller.
	if localScore > globalScore+scoreEpsilon {
		return localResult, nil
	}
	return globalResult, nil
}

const scoreEpsilon = 1e-9

// Score rates an ordering in [0,1]: average within-column vertical
// monotonicity minus CrossingPenalty times the rate of column-order
// regressions (transitions back to a lower column index).
func (s *HybridStrategy) Score(ordered []model.QuestionGroup) float64 {
	if len(ordered) < 2 {
		return 1
	}

	sameColumnPairs := 0
	monotonicPairs := 0
	regressions := 0

	for i := 1; i < len(ordered); i++ {
		prev, cur := &ordered[i-1], &ordered[i]
		if cur.ColumnIndex == prev.ColumnIndex {
			sameColumnPairs++
			if cur.Anchor.Element.BBox.Y1 >= prev.Anchor.Element.BBox.Y1 {
				monotonicPairs++
			}
		} else if cur.ColumnIndex < prev.ColumnIndex {
			regressions++
		}
	}

	monotonicity := 1.0
	if sameColumnPairs > 0 {
		monotonicity = float64(monotonicPairs) / float64(sameColumnPairs)
	}

	transitions := len(ordered) - 1
	penalty := s.config.CrossingPenalty * float64(regressions) / float64(transitions)

	return clamp01(monotonicity - penalty)
}
