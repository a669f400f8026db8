// Package models defines the core data types shared by the engine, the
// store layer, and the HTTP surface.
package models

// Direction declares which edge endpoints a traversal follows.
type Direction string

// Traversal directions.
const (
	DirectionOutbound Direction = "outbound"
	DirectionInbound  Direction = "inbound"
	DirectionBoth     Direction = "both"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	switch d {
	case DirectionOutbound, DirectionInbound, DirectionBoth:
		return true
	}

	return false
}

// Node is a read-only snapshot of one row from the node table.
// Numeric attributes are normalized to float64 by the materializer.
type Node struct {
	ID    int64          `json:"id"`
	Attrs map[string]any `json:"attrs"`
}

// Edge is one row from the edge table: an ordered endpoint pair plus an
// optional weight and extra columns filtered by the caller's direction.
type Edge struct {
	From   int64          `json:"from"`
	To     int64          `json:"to"`
	Weight float64        `json:"weight"`
	Attrs  map[string]any `json:"attrs,omitempty"`
}

// TerminationReason explains why a traversal stopped expanding.
type TerminationReason string

// Traversal termination reasons.
const (
	TerminationExhausted     TerminationReason = "exhausted"
	TerminationDepthCap      TerminationReason = "depth_cap"
	TerminationNodeCap       TerminationReason = "node_cap"
	TerminationStopCondition TerminationReason = "stop_condition"
)

// TraverseResult holds the subgraph discovered by a bounded BFS traversal.
type TraverseResult struct {
	Nodes        []Node            `json:"nodes"`
	Edges        []Edge            `json:"edges"`
	Paths        map[int64][]int64 `json:"paths"`
	DepthReached int               `json:"depth_reached"`
	Termination  TerminationReason `json:"termination"`
	StopNodes    []int64           `json:"stop_nodes,omitempty"`
	FetchCalls   int               `json:"fetch_calls"`
}

// AggregatedNode pairs a node with its multi-path rollup total.
type AggregatedNode struct {
	Node  Node    `json:"node"`
	Total float64 `json:"total"`
	Depth int     `json:"depth"`
}

// AggregateResult holds per-node rollup totals summed across all paths
// from the root, e.g. a bill-of-materials quantity explosion.
type AggregateResult struct {
	Root         int64            `json:"root"`
	Seed         float64          `json:"seed"`
	Nodes        []AggregatedNode `json:"nodes"`
	DepthReached int              `json:"depth_reached"`
	FetchCalls   int              `json:"fetch_calls"`
}

// PathResult is the outcome of a shortest-path search. Found=false is a
// valid negative result, never an error.
type PathResult struct {
	Found       bool    `json:"found"`
	Path        []int64 `json:"path,omitempty"`
	Nodes       []Node  `json:"nodes,omitempty"`
	TotalWeight float64 `json:"total_weight"`
	Hops        int     `json:"hops"`
	Weighted    bool    `json:"weighted"`
}

// PathsResult lists equally optimal paths between two nodes.
type PathsResult struct {
	Found       bool      `json:"found"`
	Paths       [][]int64 `json:"paths,omitempty"`
	TotalWeight float64   `json:"total_weight"`
	Weighted    bool      `json:"weighted"`
	Truncated   bool      `json:"truncated"`
}

// NeighborResult holds nodes directly connected to a given node plus the
// connecting edges.
type NeighborResult struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}
