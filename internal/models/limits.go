package models

// Limits bundles every safety bound the engine honors. It is built once
// from config and threaded through each call; there are no process-wide
// mutable defaults.
type Limits struct {
	// MaxDepth caps BFS depth for traversal and aggregation.
	MaxDepth int `json:"max_depth"`
	// MaxNodes caps the visited set during any traversal.
	MaxNodes int `json:"max_nodes"`
	// MaxEdgesPerFetch caps rows returned by one adjacency round trip.
	MaxEdgesPerFetch int `json:"max_edges_per_fetch"`
	// MaxPathDepth caps shortest-path frontier expansion.
	MaxPathDepth int `json:"max_path_depth"`
	// MaxAnalyzerNodes is the strict cap for full-subgraph loads.
	MaxAnalyzerNodes int `json:"max_analyzer_nodes"`
	// SampleDepth is the number of levels the sampler probes.
	SampleDepth int `json:"sample_depth"`
	// HubFactor flags a hub when a sampled out-degree exceeds
	// HubFactor times the sample median.
	HubFactor float64 `json:"hub_factor"`
	// GuardMargin is the multiplier over MaxNodes beyond which the
	// guard recommends abort rather than proceed-with-warning.
	GuardMargin float64 `json:"guard_margin"`
}

// DefaultLimits returns the stock safety bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:         5,
		MaxNodes:         10000,
		MaxEdgesPerFetch: 50000,
		MaxPathDepth:     10,
		MaxAnalyzerNodes: 5000,
		SampleDepth:      5,
		HubFactor:        50,
		GuardMargin:      1.2,
	}
}

// Validate rejects non-positive or nonsensical bounds.
func (l Limits) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"max_depth", l.MaxDepth > 0},
		{"max_nodes", l.MaxNodes > 0},
		{"max_edges_per_fetch", l.MaxEdgesPerFetch > 0},
		{"max_path_depth", l.MaxPathDepth > 0},
		{"max_analyzer_nodes", l.MaxAnalyzerNodes > 0},
		{"sample_depth", l.SampleDepth > 0},
		{"hub_factor", l.HubFactor > 1},
		{"guard_margin", l.GuardMargin >= 1},
	}

	for _, c := range checks {
		if !c.ok {
			return &InvalidParameterError{Param: c.name, Reason: "out of range"}
		}
	}

	return nil
}

// EstimationConfig tunes the damping the estimator applies on top of the
// raw geometric extrapolation.
type EstimationConfig struct {
	// ConvergenceDamping scales the growth rate when the convergence
	// ratio signals path sharing (ratio < ConvergenceThreshold).
	ConvergenceDamping float64 `json:"convergence_damping"`
	// ConvergenceThreshold is the ratio below which damping applies.
	ConvergenceThreshold float64 `json:"convergence_threshold"`
	// TrendDamping scales the growth rate again when the sampled trend
	// is decreasing.
	TrendDamping float64 `json:"trend_damping"`
	// SafetyMargin inflates the final estimate so the guard errs toward
	// caution.
	SafetyMargin float64 `json:"safety_margin"`
}

// DefaultEstimationConfig returns the stock damping coefficients.
func DefaultEstimationConfig() EstimationConfig {
	return EstimationConfig{
		ConvergenceDamping:   0.7,
		ConvergenceThreshold: 0.8,
		TrendDamping:         0.5,
		SafetyMargin:         1.1,
	}
}

// Validate rejects coefficients outside their meaningful ranges.
func (c EstimationConfig) Validate() error {
	if c.ConvergenceDamping <= 0 || c.ConvergenceDamping > 1 {
		return &InvalidParameterError{Param: "convergence_damping", Reason: "must be in (0, 1]"}
	}

	if c.ConvergenceThreshold <= 0 || c.ConvergenceThreshold > 1 {
		return &InvalidParameterError{Param: "convergence_threshold", Reason: "must be in (0, 1]"}
	}

	if c.TrendDamping <= 0 || c.TrendDamping > 1 {
		return &InvalidParameterError{Param: "trend_damping", Reason: "must be in (0, 1]"}
	}

	if c.SafetyMargin < 1 {
		return &InvalidParameterError{Param: "safety_margin", Reason: "must be >= 1"}
	}

	return nil
}
