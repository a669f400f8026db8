package client

import "time"

// Node is one row from a schema's node table.
type Node struct {
	ID    int64          `json:"id"`
	Attrs map[string]any `json:"attrs"`
}

// Edge is one adjacency row: endpoints, weight, and extra columns.
type Edge struct {
	From   int64          `json:"from"`
	To     int64          `json:"to"`
	Weight float64        `json:"weight"`
	Attrs  map[string]any `json:"attrs,omitempty"`
}

// Predicate is a typed condition over a named column.
type Predicate struct {
	Column string   `json:"column"`
	Op     string   `json:"op"` // equals, not_equals, in, range
	Value  any      `json:"value,omitempty"`
	Values []any    `json:"values,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
}

// TraverseRequest parametrizes a bounded BFS traversal.
type TraverseRequest struct {
	Start          int64      `json:"start"`
	Direction      string     `json:"direction,omitempty"` // outbound, inbound, both
	MaxDepth       int        `json:"max_depth,omitempty"`
	NodeCap        int        `json:"node_cap,omitempty"`
	StopPredicate  *Predicate `json:"stop_predicate,omitempty"`
	EdgePredicate  *Predicate `json:"edge_predicate,omitempty"`
	ValidAt        *time.Time `json:"valid_at,omitempty"`
	Columns        []string   `json:"columns,omitempty"`
	SkipEstimation bool       `json:"skip_estimation,omitempty"`
}

// TraverseResult holds the subgraph discovered by a traversal.
type TraverseResult struct {
	Nodes        []Node            `json:"nodes"`
	Edges        []Edge            `json:"edges"`
	Paths        map[int64][]int64 `json:"paths"`
	DepthReached int               `json:"depth_reached"`
	Termination  string            `json:"termination"`
	StopNodes    []int64           `json:"stop_nodes,omitempty"`
	FetchCalls   int               `json:"fetch_calls"`
}

// NeighborResult holds a node's direct neighborhood.
type NeighborResult struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// AggregateRequest parametrizes a multi-path quantity rollup.
type AggregateRequest struct {
	Start            int64      `json:"start"`
	MultiplierColumn string     `json:"multiplier_column,omitempty"`
	Seed             float64    `json:"seed,omitempty"`
	MaxDepth         int        `json:"max_depth,omitempty"`
	NodeCap          int        `json:"node_cap,omitempty"`
	ValidAt          *time.Time `json:"valid_at,omitempty"`
	SkipEstimation   bool       `json:"skip_estimation,omitempty"`
}

// AggregatedNode pairs a node with its rollup total.
type AggregatedNode struct {
	Node  Node    `json:"node"`
	Total float64 `json:"total"`
	Depth int     `json:"depth"`
}

// AggregateResult holds per-node rollup totals.
type AggregateResult struct {
	Root         int64            `json:"root"`
	Seed         float64          `json:"seed"`
	Nodes        []AggregatedNode `json:"nodes"`
	DepthReached int              `json:"depth_reached"`
	FetchCalls   int              `json:"fetch_calls"`
}

// EstimateRequest parametrizes a pre-flight size estimate.
type EstimateRequest struct {
	Start       int64  `json:"start"`
	Direction   string `json:"direction,omitempty"`
	SampleDepth int    `json:"sample_depth,omitempty"`
	TargetDepth int    `json:"target_depth,omitempty"`
	NodeCap     int    `json:"node_cap,omitempty"`
}

// SampleResult characterizes a short structural probe.
type SampleResult struct {
	Root             int64   `json:"root"`
	LevelCounts      []int   `json:"level_counts"`
	UniqueNodes      int     `json:"unique_nodes"`
	EdgesTraversed   int     `json:"edges_traversed"`
	ConvergenceRatio float64 `json:"convergence_ratio"`
	Trend            string  `json:"trend"`
	HubDetected      bool    `json:"hub_detected"`
	MaxOutDegree     int     `json:"max_out_degree"`
	MedianDegree     float64 `json:"median_degree"`
	Terminated       bool    `json:"terminated"`
	FetchCalls       int     `json:"fetch_calls"`
}

// EstimateResult is the damped extrapolation of a sample.
type EstimateResult struct {
	Sample         SampleResult `json:"sample"`
	TargetDepth    int          `json:"target_depth"`
	EstimatedNodes int64        `json:"estimated_nodes"`
	Exact          bool         `json:"exact"`
	TableBound     int64        `json:"table_bound"`
}

// GuardResult is the pre-flight guard's verdict.
type GuardResult struct {
	Decision       string   `json:"decision"` // proceed, abort, override_with_warning
	EstimatedNodes int64    `json:"estimated_nodes"`
	NodeCap        int      `json:"node_cap"`
	TableBound     int64    `json:"table_bound"`
	HubDetected    bool     `json:"hub_detected"`
	Suggestions    []string `json:"suggestions,omitempty"`
}

// EstimateResponse pairs the estimate with the guard's verdict.
type EstimateResponse struct {
	Estimate *EstimateResult `json:"estimate"`
	Guard    *GuardResult    `json:"guard"`
}

// PathRequest parametrizes a shortest-path search.
type PathRequest struct {
	Start      int64   `json:"start"`
	End        int64   `json:"end"`
	Weighted   bool    `json:"weighted,omitempty"`
	Excluded   []int64 `json:"excluded,omitempty"`
	MaxDepth   int     `json:"max_depth,omitempty"`
	MaxResults int     `json:"max_results,omitempty"`
}

// PathResult is the outcome of a shortest-path search.
type PathResult struct {
	Found       bool    `json:"found"`
	Path        []int64 `json:"path,omitempty"`
	Nodes       []Node  `json:"nodes,omitempty"`
	TotalWeight float64 `json:"total_weight"`
	Hops        int     `json:"hops"`
	Weighted    bool    `json:"weighted"`
}

// PathsResult lists equally optimal paths.
type PathsResult struct {
	Found       bool      `json:"found"`
	Paths       [][]int64 `json:"paths,omitempty"`
	TotalWeight float64   `json:"total_weight"`
	Weighted    bool      `json:"weighted"`
	Truncated   bool      `json:"truncated"`
}

// CentralityRequest parametrizes a centrality ranking.
type CentralityRequest struct {
	Kind    string `json:"kind"` // degree, betweenness, closeness, pagerank
	TopN    int    `json:"top_n,omitempty"`
	NodeCap int    `json:"node_cap,omitempty"`
}

// NodeScore is one ranked centrality entry.
type NodeScore struct {
	ID    int64   `json:"id"`
	Score float64 `json:"score"`
}

// CentralityResult is a ranked top-N centrality listing.
type CentralityResult struct {
	Kind      string      `json:"kind"`
	Scores    []NodeScore `json:"scores"`
	NodeCount int         `json:"node_count"`
	EdgeCount int         `json:"edge_count"`
}

// ComponentsRequest parametrizes connected-component grouping.
type ComponentsRequest struct {
	MinSize int `json:"min_size,omitempty"`
	NodeCap int `json:"node_cap,omitempty"`
}

// Component is one weakly connected component.
type Component struct {
	Members []int64 `json:"members"`
	Size    int     `json:"size"`
}

// ComponentsResult groups the graph into weak components.
type ComponentsResult struct {
	Components []Component `json:"components"`
	Isolated   []int64     `json:"isolated"`
	NodeCount  int         `json:"node_count"`
	EdgeCount  int         `json:"edge_count"`
	Density    float64     `json:"density"`
}

// ResilienceRequest parametrizes a what-if node removal.
type ResilienceRequest struct {
	Remove  int64 `json:"remove"`
	NodeCap int   `json:"node_cap,omitempty"`
}

// NodePair is an unordered node pair, smaller ID first.
type NodePair struct {
	A int64 `json:"a"`
	B int64 `json:"b"`
}

// ResilienceResult reports the simulated impact of removing one node.
type ResilienceResult struct {
	Removed            int64      `json:"removed"`
	ComponentsBefore   int        `json:"components_before"`
	ComponentsAfter    int        `json:"components_after"`
	ComponentDelta     int        `json:"component_delta"`
	DisconnectedPairs  []NodePair `json:"disconnected_pairs"`
	PairsTruncated     bool       `json:"pairs_truncated"`
	NewlyIsolatedNodes []int64    `json:"newly_isolated_nodes"`
}

// SchemaDescriptor names the tables and columns backing a graph schema.
type SchemaDescriptor struct {
	Name             string `json:"name"`
	NodeTable        string `json:"node_table"`
	NodeIDColumn     string `json:"node_id_column"`
	EdgeTable        string `json:"edge_table"`
	FromColumn       string `json:"from_column"`
	ToColumn         string `json:"to_column"`
	WeightColumn     string `json:"weight_column,omitempty"`
	SoftDeleteColumn string `json:"soft_delete_column,omitempty"`
	ValidFromColumn  string `json:"valid_from_column,omitempty"`
	ValidToColumn    string `json:"valid_to_column,omitempty"`
}

// Limits are the server's effective safety bounds.
type Limits struct {
	MaxDepth         int     `json:"max_depth"`
	MaxNodes         int     `json:"max_nodes"`
	MaxEdgesPerFetch int     `json:"max_edges_per_fetch"`
	MaxPathDepth     int     `json:"max_path_depth"`
	MaxAnalyzerNodes int     `json:"max_analyzer_nodes"`
	SampleDepth      int     `json:"sample_depth"`
	HubFactor        float64 `json:"hub_factor"`
	GuardMargin      float64 `json:"guard_margin"`
}

// SchemasResponse lists the registered schemas plus the server's limits.
type SchemasResponse struct {
	Schemas []string `json:"schemas"`
	Limits  Limits   `json:"limits"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	Schemas       int     `json:"schemas"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
