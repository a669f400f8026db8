package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for entity lookups.
var (
	ErrNodeNotFound   = errors.New("node not found")
	ErrSchemaNotFound = errors.New("schema not found")
)

// ErrNoPath marks an unreachable destination. Shortest-path operations
// return a structured not-found result instead of this error; it exists
// for callers that need a sentinel.
var ErrNoPath = errors.New("no path found")

// InvalidParameterError reports a malformed caller input: an unknown
// column, an inconsistent direction, a bad predicate.
type InvalidParameterError struct {
	Param  string
	Reason string
}

// Error implements the error interface.
func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

// LimitExceededError reports a depth or node cap hit during actual
// execution, after the guard already let the call through.
type LimitExceededError struct {
	Limit string // "depth" or "nodes"
	Count int
	Cap   int
}

// Error implements the error interface.
func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("%s limit exceeded: %d > %d (raise the cap, reduce depth, or add a stop condition)", e.Limit, e.Count, e.Cap)
}

// SubgraphTooLargeError is the guard's pre-flight abort: the estimated
// subgraph exceeds the configured cap by more than the margin.
type SubgraphTooLargeError struct {
	EstimatedNodes int64
	NodeCap        int
	EstimatedEdges int64 // set when the edge load, not the node count, overflowed
	EdgeCap        int
	Suggestions    []string
}

// Error implements the error interface.
func (e *SubgraphTooLargeError) Error() string {
	if e.EdgeCap > 0 {
		return fmt.Sprintf("subgraph too large: edge count exceeds cap %d", e.EdgeCap)
	}

	return fmt.Sprintf("subgraph too large: estimated %d nodes exceeds cap %d", e.EstimatedNodes, e.NodeCap)
}

// IsLimitExceeded reports whether err is a LimitExceededError.
func IsLimitExceeded(err error) bool {
	var le *LimitExceededError

	return errors.As(err, &le)
}

// IsSubgraphTooLarge reports whether err is a SubgraphTooLargeError.
func IsSubgraphTooLarge(err error) bool {
	var se *SubgraphTooLargeError

	return errors.As(err, &se)
}

// IsInvalidParameter reports whether err is an InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var ie *InvalidParameterError

	return errors.As(err, &ie)
}
