package models

import "time"

// TraverseRequest parametrizes a bounded BFS traversal.
type TraverseRequest struct {
	Start          int64      `json:"start"`
	Direction      Direction  `json:"direction"`
	MaxDepth       int        `json:"max_depth,omitempty"`
	NodeCap        int        `json:"node_cap,omitempty"`
	StopPredicate  *Predicate `json:"stop_predicate,omitempty"`
	EdgePredicate  *Predicate `json:"edge_predicate,omitempty"`
	ValidAt        *time.Time `json:"valid_at,omitempty"`
	Columns        []string   `json:"columns,omitempty"`
	SkipEstimation bool       `json:"skip_estimation,omitempty"`
}

// Validate checks traversal parameters, filling direction if absent.
func (r *TraverseRequest) Validate() error {
	if r.Direction == "" {
		r.Direction = DirectionOutbound
	}

	if !r.Direction.Valid() {
		return &InvalidParameterError{Param: "direction", Reason: "must be outbound, inbound, or both"}
	}

	if r.MaxDepth < 0 {
		return &InvalidParameterError{Param: "max_depth", Reason: "must not be negative"}
	}

	if r.NodeCap < 0 {
		return &InvalidParameterError{Param: "node_cap", Reason: "must not be negative"}
	}

	if r.StopPredicate != nil {
		if err := r.StopPredicate.Validate(); err != nil {
			return err
		}
	}

	if r.EdgePredicate != nil {
		if err := r.EdgePredicate.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// AggregateRequest parametrizes a multi-path rollup (BOM explosion).
type AggregateRequest struct {
	Start int64 `json:"start"`
	// MultiplierColumn names the per-edge multiplier, e.g. a quantity.
	// Empty means every edge multiplies by 1.
	MultiplierColumn string     `json:"multiplier_column,omitempty"`
	Seed             float64    `json:"seed,omitempty"`
	MaxDepth         int        `json:"max_depth,omitempty"`
	NodeCap          int        `json:"node_cap,omitempty"`
	ValidAt          *time.Time `json:"valid_at,omitempty"`
	SkipEstimation   bool       `json:"skip_estimation,omitempty"`
}

// Validate checks aggregation parameters, defaulting the seed to 1.
func (r *AggregateRequest) Validate() error {
	if r.MultiplierColumn != "" && !validIdentifier(r.MultiplierColumn) {
		return &InvalidParameterError{Param: "multiplier_column", Reason: "is not a valid identifier"}
	}

	if r.Seed == 0 {
		r.Seed = 1
	}

	if r.Seed < 0 {
		return &InvalidParameterError{Param: "seed", Reason: "must not be negative"}
	}

	if r.MaxDepth < 0 {
		return &InvalidParameterError{Param: "max_depth", Reason: "must not be negative"}
	}

	return nil
}

// EstimateRequest parametrizes a pre-flight size estimate.
type EstimateRequest struct {
	Start       int64             `json:"start"`
	Direction   Direction         `json:"direction,omitempty"`
	SampleDepth int               `json:"sample_depth,omitempty"`
	TargetDepth int               `json:"target_depth,omitempty"`
	NodeCap     int               `json:"node_cap,omitempty"`
	Config      *EstimationConfig `json:"config,omitempty"`
}

// Validate checks estimation parameters.
func (r *EstimateRequest) Validate() error {
	if r.Direction == "" {
		r.Direction = DirectionOutbound
	}

	if !r.Direction.Valid() {
		return &InvalidParameterError{Param: "direction", Reason: "must be outbound, inbound, or both"}
	}

	if r.SampleDepth < 0 || r.TargetDepth < 0 || r.NodeCap < 0 {
		return &InvalidParameterError{Param: "depth", Reason: "must not be negative"}
	}

	if r.Config != nil {
		if err := r.Config.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// PathRequest parametrizes a shortest-path search.
type PathRequest struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
	// Weighted selects Dijkstra over the schema's weight column;
	// unweighted search counts hops.
	Weighted   bool    `json:"weighted,omitempty"`
	Excluded   []int64 `json:"excluded,omitempty"`
	MaxDepth   int     `json:"max_depth,omitempty"`
	MaxResults int     `json:"max_results,omitempty"` // all-shortest-paths only
}

// Validate checks path parameters.
func (r *PathRequest) Validate() error {
	if r.MaxDepth < 0 {
		return &InvalidParameterError{Param: "max_depth", Reason: "must not be negative"}
	}

	if r.MaxResults < 0 {
		return &InvalidParameterError{Param: "max_results", Reason: "must not be negative"}
	}

	for _, ex := range r.Excluded {
		if ex == r.Start {
			return &InvalidParameterError{Param: "excluded", Reason: "must not contain the start node"}
		}

		if ex == r.End {
			return &InvalidParameterError{Param: "excluded", Reason: "must not contain the end node"}
		}
	}

	return nil
}

// CentralityRequest parametrizes a centrality ranking.
type CentralityRequest struct {
	Kind    CentralityKind `json:"kind"`
	TopN    int            `json:"top_n,omitempty"`
	NodeCap int            `json:"node_cap,omitempty"`
}

// Validate checks centrality parameters.
func (r *CentralityRequest) Validate() error {
	if !r.Kind.Valid() {
		return &InvalidParameterError{Param: "kind", Reason: "must be degree, betweenness, closeness, or pagerank"}
	}

	if r.TopN < 0 || r.NodeCap < 0 {
		return &InvalidParameterError{Param: "top_n", Reason: "must not be negative"}
	}

	return nil
}

// ComponentsRequest parametrizes connected-component grouping.
type ComponentsRequest struct {
	MinSize int `json:"min_size,omitempty"`
	NodeCap int `json:"node_cap,omitempty"`
}

// Validate checks component parameters.
func (r *ComponentsRequest) Validate() error {
	if r.MinSize < 0 {
		return &InvalidParameterError{Param: "min_size", Reason: "must not be negative"}
	}

	if r.NodeCap < 0 {
		return &InvalidParameterError{Param: "node_cap", Reason: "must not be negative"}
	}

	return nil
}

// ResilienceRequest parametrizes a what-if node removal.
type ResilienceRequest struct {
	Remove  int64 `json:"remove"`
	NodeCap int   `json:"node_cap,omitempty"`
}

// Validate checks resilience parameters.
func (r *ResilienceRequest) Validate() error {
	if r.NodeCap < 0 {
		return &InvalidParameterError{Param: "node_cap", Reason: "must not be negative"}
	}

	return nil
}
