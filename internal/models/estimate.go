package models

// GrowthTrend classifies how frontier sizes evolved during sampling.
type GrowthTrend string

// Growth trend classifications.
const (
	TrendIncreasing GrowthTrend = "increasing"
	TrendStable     GrowthTrend = "stable"
	TrendDecreasing GrowthTrend = "decreasing"
)

// SampleResult characterizes a short structural probe outward from a
// start node.
type SampleResult struct {
	Root int64 `json:"root"`
	// LevelCounts holds newly discovered node counts per probed level.
	LevelCounts []int `json:"level_counts"`
	// UniqueNodes is the total distinct nodes seen, including the root.
	UniqueNodes int `json:"unique_nodes"`
	// EdgesTraversed is the total edge endpoints followed.
	EdgesTraversed int `json:"edges_traversed"`
	// ConvergenceRatio is unique nodes over edges traversed, in (0, 1].
	// Near 1 means tree-like; low values mean heavy path sharing.
	ConvergenceRatio float64 `json:"convergence_ratio"`
	Trend            GrowthTrend `json:"trend"`
	// HubDetected is set when one sampled out-degree dwarfs the median.
	HubDetected  bool    `json:"hub_detected"`
	MaxOutDegree int     `json:"max_out_degree"`
	MedianDegree float64 `json:"median_degree"`
	// Terminated is set when the frontier emptied before the probe
	// finished; UniqueNodes is then exact, not a sample.
	Terminated bool `json:"terminated"`
	FetchCalls int  `json:"fetch_calls"`
}

// EstimateResult is the estimator's damped extrapolation of a sample.
type EstimateResult struct {
	Sample         SampleResult `json:"sample"`
	TargetDepth    int          `json:"target_depth"`
	EstimatedNodes int64        `json:"estimated_nodes"`
	// Exact is set when the sample terminated and the estimate is a
	// measurement rather than an extrapolation.
	Exact bool `json:"exact"`
	// TableBound is the advisory store-level cap applied, 0 if none.
	TableBound int64 `json:"table_bound"`
}

// GuardDecision is the guard's pre-flight call.
type GuardDecision string

// Guard decisions.
const (
	GuardProceed  GuardDecision = "proceed"
	GuardAbort    GuardDecision = "abort"
	GuardOverride GuardDecision = "override_with_warning"
)

// GuardResult is the verdict returned before an expensive traversal runs.
type GuardResult struct {
	Decision       GuardDecision `json:"decision"`
	EstimatedNodes int64         `json:"estimated_nodes"`
	NodeCap        int           `json:"node_cap"`
	TableBound     int64         `json:"table_bound"`
	HubDetected    bool          `json:"hub_detected"`
	// Suggestions are actionable remediations for an abort: raise the
	// cap, reduce depth, add a stop condition.
	Suggestions []string `json:"suggestions,omitempty"`
}
