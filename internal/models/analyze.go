package models

// CentralityKind selects a centrality algorithm.
type CentralityKind string

// Centrality algorithms.
const (
	CentralityDegree      CentralityKind = "degree"
	CentralityBetweenness CentralityKind = "betweenness"
	CentralityCloseness   CentralityKind = "closeness"
	CentralityPageRank    CentralityKind = "pagerank"
)

// Valid reports whether k names a supported algorithm.
func (k CentralityKind) Valid() bool {
	switch k {
	case CentralityDegree, CentralityBetweenness, CentralityCloseness, CentralityPageRank:
		return true
	}

	return false
}

// NodeScore is one ranked centrality entry. Ties rank by ascending node
// ID so results are reproducible.
type NodeScore struct {
	ID    int64   `json:"id"`
	Score float64 `json:"score"`
}

// CentralityResult is a ranked top-N centrality listing.
type CentralityResult struct {
	Kind      CentralityKind `json:"kind"`
	Scores    []NodeScore    `json:"scores"`
	NodeCount int            `json:"node_count"`
	EdgeCount int            `json:"edge_count"`
}

// Component is one weakly connected component, members sorted ascending.
type Component struct {
	Members []int64 `json:"members"`
	Size    int     `json:"size"`
}

// ComponentsResult groups the loaded subgraph into weak components.
// Isolated singletons are reported apart from multi-node components.
type ComponentsResult struct {
	Components []Component `json:"components"`
	Isolated   []int64     `json:"isolated"`
	NodeCount  int         `json:"node_count"`
	EdgeCount  int         `json:"edge_count"`
	Density    float64     `json:"density"`
}

// NodePair is an unordered pair reported with the smaller ID first.
type NodePair struct {
	A int64 `json:"a"`
	B int64 `json:"b"`
}

// ResilienceResult reports the simulated impact of removing one node.
// Nothing in the backing store is mutated.
type ResilienceResult struct {
	Removed            int64      `json:"removed"`
	ComponentsBefore   int        `json:"components_before"`
	ComponentsAfter    int        `json:"components_after"`
	ComponentDelta     int        `json:"component_delta"`
	DisconnectedPairs  []NodePair `json:"disconnected_pairs"`
	PairsTruncated     bool       `json:"pairs_truncated"`
	NewlyIsolatedNodes []int64    `json:"newly_isolated_nodes"`
}
