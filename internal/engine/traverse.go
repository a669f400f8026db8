package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/relgraphio/relgraph/internal/models"
)

// Traverse performs a bounded breadth-first exploration from the start
// node, one adjacency fetch per depth level. Unless the caller skips
// estimation, the guard runs first and aborts traversals whose estimated
// size exceeds the node cap by more than the margin.
func (e *Engine) Traverse(ctx context.Context, schema *models.SchemaDescriptor, req models.TraverseRequest) (*models.TraverseResult, error) { //nolint:gocognit,gocyclo,cyclop,funlen // BFS loop with stop handling is inherently multi-step.
	if err := req.Validate(); err != nil {
		return nil, err
	}

	maxDepth := e.clampDepth(req.MaxDepth, e.limits.MaxDepth)
	nodeCap := e.clampNodes(req.NodeCap)

	if !req.SkipEstimation {
		if err := e.preflight(ctx, schema, req.Start, req.Direction, maxDepth, nodeCap); err != nil {
			return nil, err
		}
	}

	if err := e.requireNode(ctx, schema, req.Start); err != nil {
		return nil, err
	}

	opts := models.FetchOptions{Predicate: req.EdgePredicate, ValidAt: req.ValidAt}

	visited := map[int64]bool{req.Start: true}
	paths := map[int64][]int64{req.Start: {req.Start}}
	frontier := []int64{req.Start}
	stopped := map[int64]bool{}

	result := &models.TraverseResult{
		Paths:       paths,
		Termination: models.TerminationExhausted,
	}

	var edges []models.Edge

	// With "both", an edge reached from one endpoint's frontier comes
	// back again from the other endpoint's frontier a level later; track
	// stored orientation so each edge is reported once.
	seenEdges := map[[2]int64]bool{}

	depth := 0

	for depth < maxDepth && len(frontier) > 0 {
		fetched, calls, err := e.fetchFrontier(ctx, schema, frontier, req.Direction, opts)
		if err != nil {
			return nil, fmt.Errorf("expanding depth %d: %w", depth+1, err)
		}

		result.FetchCalls += calls

		var next []int64

		for _, edge := range fetched {
			from, to, ok := orient(edge, visited, req.Direction)
			if !ok {
				continue
			}

			key := [2]int64{edge.From, edge.To}
			if seenEdges[key] {
				continue
			}

			seenEdges[key] = true

			edges = append(edges, edge)

			if visited[to] || stopped[to] {
				continue
			}

			visited[to] = true

			if len(visited) > nodeCap {
				return nil, &models.LimitExceededError{Limit: "nodes", Count: len(visited), Cap: nodeCap}
			}

			trail := make([]int64, 0, len(paths[from])+1)
			trail = append(trail, paths[from]...)
			paths[to] = append(trail, to)
			next = append(next, to)
		}

		if len(next) == 0 {
			frontier = nil

			break
		}

		depth++

		// Evaluate the stop predicate on the newly discovered level;
		// matching nodes become termination points and are not expanded.
		nodes, err := e.store.Materialize(ctx, schema, next, req.Columns)
		if err != nil {
			return nil, fmt.Errorf("materializing depth %d: %w", depth, err)
		}

		result.Nodes = append(result.Nodes, nodes...)

		if req.StopPredicate != nil {
			next = next[:0]

			for _, n := range nodes {
				if evalPredicate(req.StopPredicate, n.Attrs) {
					stopped[n.ID] = true
					result.StopNodes = append(result.StopNodes, n.ID)
				} else {
					next = append(next, n.ID)
				}
			}
		}

		frontier = next
	}

	result.DepthReached = depth
	result.Edges = edges

	switch {
	case len(frontier) > 0 && depth >= maxDepth:
		result.Termination = models.TerminationDepthCap
	case len(result.StopNodes) > 0:
		result.Termination = models.TerminationStopCondition
	}

	// The start node is materialized last so a missing row (e.g. root
	// soft-deleted mid-call) surfaces as an error, not a silent hole.
	root, err := e.store.Materialize(ctx, schema, []int64{req.Start}, req.Columns)
	if err != nil {
		return nil, fmt.Errorf("materializing start node: %w", err)
	}

	result.Nodes = append(root, result.Nodes...)

	e.log.WithFields(logrus.Fields{
		"start":       req.Start,
		"depth":       depth,
		"nodes":       len(result.Nodes),
		"edges":       len(result.Edges),
		"fetch_calls": result.FetchCalls,
		"termination": result.Termination,
	}).Debug("engine.traverse")

	return result, nil
}

// Neighbors returns the immediate neighborhood of a node: all touching
// edges in both directions plus the materialized neighbor rows.
func (e *Engine) Neighbors(ctx context.Context, schema *models.SchemaDescriptor, id int64) (*models.NeighborResult, error) {
	if err := e.requireNode(ctx, schema, id); err != nil {
		return nil, err
	}

	edges, _, err := e.fetchFrontier(ctx, schema, []int64{id}, models.DirectionBoth, models.FetchOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetching neighbor edges: %w", err)
	}

	neighborIDs := map[int64]bool{}

	for _, edge := range edges {
		if edge.From != id {
			neighborIDs[edge.From] = true
		}

		if edge.To != id {
			neighborIDs[edge.To] = true
		}
	}

	nodes := make([]models.Node, 0, len(neighborIDs))

	if len(neighborIDs) > 0 {
		nodes, err = e.store.Materialize(ctx, schema, sortedIDs(neighborIDs), nil)
		if err != nil {
			return nil, fmt.Errorf("materializing neighbors: %w", err)
		}
	}

	return &models.NeighborResult{Nodes: nodes, Edges: edges}, nil
}

// fetchFrontier issues the batched adjacency fetch for one depth level
// and reports how many round trips it cost (one, or two for "both").
func (e *Engine) fetchFrontier(ctx context.Context, schema *models.SchemaDescriptor, frontier []int64, dir models.Direction, opts models.FetchOptions) ([]models.Edge, int, error) {
	if len(frontier) == 0 {
		return nil, 0, nil
	}

	edges, err := e.store.FetchEdges(ctx, schema, frontier, dir, opts)
	if err != nil {
		return nil, 0, err
	}

	if dir == models.DirectionBoth {
		return edges, 2, nil
	}

	return edges, 1, nil
}

// orient resolves which endpoint of an edge was newly reached from the
// visited side, honoring the traversal direction. Returns false when the
// edge does not extend the frontier.
func orient(edge models.Edge, visited map[int64]bool, dir models.Direction) (from, to int64, ok bool) {
	switch dir {
	case models.DirectionOutbound:
		if visited[edge.From] {
			return edge.From, edge.To, true
		}
	case models.DirectionInbound:
		if visited[edge.To] {
			return edge.To, edge.From, true
		}
	case models.DirectionBoth:
		if visited[edge.From] {
			return edge.From, edge.To, true
		}

		if visited[edge.To] {
			return edge.To, edge.From, true
		}
	}

	return 0, 0, false
}

// requireNode verifies the start node exists before any traversal work.
func (e *Engine) requireNode(ctx context.Context, schema *models.SchemaDescriptor, id int64) error {
	nodes, err := e.store.Materialize(ctx, schema, []int64{id}, []string{schema.NodeIDColumn})
	if err != nil {
		return fmt.Errorf("checking node existence: %w", err)
	}

	if len(nodes) == 0 {
		return models.ErrNodeNotFound
	}

	return nil
}
