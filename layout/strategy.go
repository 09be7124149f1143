package layout

// Strategy identifies an anchor-ordering strategy. StrategyAuto lets the
// profiler-driven selector decide; any other value is an explicit override
// that always wins, which keeps ordering deterministic in tests.
type Strategy int

const (
	StrategyAuto Strategy = iota
	StrategyGlobal
	StrategyLocal
	StrategyHybrid
)

func (s Strategy) String() string {
	switch s {
	case StrategyGlobal:
		return "global"
	case StrategyLocal:
		return "local"
	case StrategyHybrid:
		return "hybrid"
	default:
		return "auto"
	}
}

// OrderingConfig holds configuration shared by the ordering strategies.
type OrderingConfig struct {
	// SpanningRatio is the minimum fraction of a region's width a
	// separator-class element must cover to split the region into
	// horizontal bands.
	// Default: 0.7
	SpanningRatio float64

	// RowBandRatio sets the row-band tolerance for the local strategy's
	// horizontal-neighbor preference, as a multiple of mean anchor height.
	// Default: 0.8
	RowBandRatio float64

	// CrossingPenalty is the per-unit penalty the hybrid quality score
	// applies to column-order regressions.
	// Default: 0.15
	CrossingPenalty float64

	// KMeansIterations bounds the 1D clustering fallback used when gap
	// detection cannot settle column boundaries inside a band.
	// Default: 16
	KMeansIterations int

	// Column configures gap detection inside regions.
	Column ColumnConfig

	// Assign supplies the axis weights for the local strategy's
	// nearest-by-distance fallback.
	Assign AssignConfig
}

// DefaultOrderingConfig returns sensible default configuration
func DefaultOrderingConfig() OrderingConfig {
	return OrderingConfig{
		SpanningRatio:    0.7,
		RowBandRatio:     0.8,
		CrossingPenalty:  0.15,
		KMeansIterations: 16,
		Column:           DefaultColumnConfig(),
		Assign:           DefaultAssignConfig(),
	}
}

// SelectStrategy picks an ordering strategy from the layout profile, or
// honors the override when one is given. The checks run in a fixed order:
// an explicit override first, then global consistency, then horizontal
// adjacency, falling through to hybrid when neither signal is decisive.
func SelectStrategy(profile Profile, override Strategy, config ProfilerConfig) Strategy {
	if override != StrategyAuto {
		return override
	}
	if profile.GlobalConsistency >= config.GlobalConsistencyThreshold {
		return StrategyGlobal
	}
	if profile.HorizontalAdjacency >= config.HorizontalAdjacencyThreshold {
		return StrategyLocal
	}
	return StrategyHybrid
}
