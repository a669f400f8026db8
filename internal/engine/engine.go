// Package engine implements bounded graph operations over a relational
// adjacency representation: BFS traversal, multi-path rollups, size
// estimation with a pre-flight guard, shortest paths, and whole-subgraph
// network analysis.
//
// The engine is synchronous and stateless across calls. Every call owns
// its working sets and discards them on return; the only blocking points
// are the fetcher round trips. Batching is the central discipline: one
// adjacency query per depth level (two for bidirectional expansion),
// never one per node.
package engine

import (
	"context"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/relgraphio/relgraph/internal/models"
)

// EdgeFetcher retrieves all edges incident to a frontier in one round
// trip per direction. An empty frontier returns no edges and performs no
// query. Store errors surface unchanged; the engine never retries.
type EdgeFetcher interface {
	FetchEdges(ctx context.Context, schema *models.SchemaDescriptor, frontier []int64, dir models.Direction, opts models.FetchOptions) ([]models.Edge, error)
}

// NodeFetcher resolves a set of node identifiers into attribute rows in
// a single batched query. Numeric columns arrive normalized to float64.
type NodeFetcher interface {
	Materialize(ctx context.Context, schema *models.SchemaDescriptor, ids []int64, columns []string) ([]models.Node, error)
}

// BoundProvider supplies a conservative upper bound on distinct reachable
// nodes from store-level statistics. The bound is advisory and may be
// stale; it only ever caps an estimate downward.
type BoundProvider interface {
	TableBound(ctx context.Context, schema *models.SchemaDescriptor) (int64, error)
}

// GraphLoader loads a whole bounded edge set, for operations that are
// inherently "load everything" (centrality, components, resilience).
type GraphLoader interface {
	ListEdges(ctx context.Context, schema *models.SchemaDescriptor, limit int) ([]models.Edge, error)
	ListNodeIDs(ctx context.Context, schema *models.SchemaDescriptor, limit int) ([]int64, error)
}

// Store bundles the fetch primitives the engine consumes. The pgx store
// satisfies it; tests use in-memory fakes.
type Store interface {
	EdgeFetcher
	NodeFetcher
	BoundProvider
	GraphLoader
}

// Engine executes graph operations against a Store under a fixed set of
// safety limits.
type Engine struct {
	store  Store
	limits models.Limits
	log    *logrus.Logger
}

// New creates an Engine. Limits must already be validated.
func New(store Store, limits models.Limits, log *logrus.Logger) *Engine {
	return &Engine{store: store, limits: limits, log: log}
}

// Limits returns the engine's configured safety bounds.
func (e *Engine) Limits() models.Limits { return e.limits }

// clampDepth applies the configured depth cap, treating zero as "use the
// default".
func (e *Engine) clampDepth(depth, cap int) int {
	if depth <= 0 || depth > cap {
		return cap
	}

	return depth
}

// clampNodes applies the configured node cap, treating zero as "use the
// default".
func (e *Engine) clampNodes(nodeCap int) int {
	if nodeCap <= 0 || nodeCap > e.limits.MaxNodes {
		return e.limits.MaxNodes
	}

	return nodeCap
}

// sortedIDs returns the keys of a visited set in ascending order.
func sortedIDs(set map[int64]bool) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}
