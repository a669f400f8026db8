package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/relgraphio/relgraph/internal/models"
)

// Aggregate computes, for every reachable node, the sum over all paths
// from the root of the product of per-edge multipliers along the path —
// the bill-of-materials explosion semantics.
//
// BFS discovery alone is wrong here: a node with two parents must
// receive contributions through both, not just the first-discovered
// path. The rollup therefore propagates contribution deltas level by
// level: each level fetches the edges out of every node that gained new
// quantity, multiplies the gained amount through each edge, and sums the
// products into the children. A node reached again through a later path
// re-enters the frontier carrying only the new contribution, so shared
// descendants converge to the full multi-path total.
func (e *Engine) Aggregate(ctx context.Context, schema *models.SchemaDescriptor, req models.AggregateRequest) (*models.AggregateResult, error) { //nolint:gocognit,gocyclo,cyclop,funlen // level-synchronous accumulation is inherently multi-step.
	if err := req.Validate(); err != nil {
		return nil, err
	}

	maxDepth := e.clampDepth(req.MaxDepth, e.limits.MaxDepth)
	nodeCap := e.clampNodes(req.NodeCap)

	if !req.SkipEstimation {
		if err := e.preflight(ctx, schema, req.Start, models.DirectionOutbound, maxDepth, nodeCap); err != nil {
			return nil, err
		}
	}

	if err := e.requireNode(ctx, schema, req.Start); err != nil {
		return nil, err
	}

	opts := models.FetchOptions{ValidAt: req.ValidAt}
	if req.MultiplierColumn != "" {
		opts.Columns = []string{req.MultiplierColumn}
	}

	totals := map[int64]float64{req.Start: req.Seed}
	depthOf := map[int64]int{req.Start: 0}

	// frontier maps node ID to the quantity newly contributed to it in
	// the previous level; only that delta propagates onward.
	frontier := map[int64]float64{req.Start: req.Seed}

	depth := 0
	fetchCalls := 0

	for depth < maxDepth && len(frontier) > 0 {
		ids := make([]int64, 0, len(frontier))
		for id := range frontier {
			ids = append(ids, id)
		}

		edges, calls, err := e.fetchFrontier(ctx, schema, ids, models.DirectionOutbound, opts)
		if err != nil {
			return nil, fmt.Errorf("expanding rollup depth %d: %w", depth+1, err)
		}

		fetchCalls += calls

		contrib := map[int64]float64{}

		for _, edge := range edges {
			delta, ok := frontier[edge.From]
			if !ok {
				continue
			}

			contrib[edge.To] += delta * multiplier(edge, req.MultiplierColumn)
		}

		depth++

		for id, amount := range contrib {
			totals[id] += amount

			if _, seen := depthOf[id]; !seen {
				depthOf[id] = depth

				if len(totals) > nodeCap {
					return nil, &models.LimitExceededError{Limit: "nodes", Count: len(totals), Cap: nodeCap}
				}
			}
		}

		frontier = contrib
	}

	// A frontier still carrying deltas at the depth cap means totals
	// below the cap boundary are incomplete; surface that instead of
	// returning silently wrong numbers.
	if len(frontier) > 0 {
		return nil, &models.LimitExceededError{Limit: "depth", Count: depth + 1, Cap: maxDepth}
	}

	ids := make([]int64, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}

	nodes, err := e.store.Materialize(ctx, schema, ids, nil)
	if err != nil {
		return nil, fmt.Errorf("materializing rollup nodes: %w", err)
	}

	result := &models.AggregateResult{
		Root:         req.Start,
		Seed:         req.Seed,
		Nodes:        make([]models.AggregatedNode, 0, len(nodes)),
		DepthReached: depth,
		FetchCalls:   fetchCalls,
	}

	for _, n := range nodes {
		result.Nodes = append(result.Nodes, models.AggregatedNode{
			Node:  n,
			Total: totals[n.ID],
			Depth: depthOf[n.ID],
		})
	}

	e.log.WithFields(logrus.Fields{
		"start": req.Start,
		"depth": depth,
		"nodes": len(result.Nodes),
	}).Debug("engine.aggregate")

	return result, nil
}

// multiplier reads the per-edge multiplier column, defaulting to 1 when
// the column is absent or the value is not numeric.
func multiplier(edge models.Edge, column string) float64 {
	if column == "" {
		return 1
	}

	v, ok := edge.Attrs[column]
	if !ok {
		return 1
	}

	f, ok := asFloat(v)
	if !ok {
		return 1
	}

	return f
}
