package engine

import (
	"context"
	"fmt"
	"slices"

	"github.com/relgraphio/relgraph/internal/models"
)

// maxReportedPairs caps the disconnected-pair listing in a resilience
// report; the totals remain exact.
const maxReportedPairs = 100

// subgraph is a fully loaded, in-memory view of the schema's graph,
// bounded strictly by the analyzer node cap.
type subgraph struct {
	ids   []int64 // ascending
	index map[int64]int
	out   map[int64][]int64
	in    map[int64][]int64
	und   map[int64][]int64 // deduplicated undirected adjacency
	edges int
}

// loadSubgraph loads every node and edge up to the cap. Unlike
// frontier-based traversal the cap here is strict: a graph that does not
// fit is a loud failure, because partial network analysis is wrong, not
// approximate.
func (e *Engine) loadSubgraph(ctx context.Context, schema *models.SchemaDescriptor, nodeCap int) (*subgraph, error) {
	if nodeCap <= 0 || nodeCap > e.limits.MaxAnalyzerNodes {
		nodeCap = e.limits.MaxAnalyzerNodes
	}

	ids, err := e.store.ListNodeIDs(ctx, schema, nodeCap+1)
	if err != nil {
		return nil, fmt.Errorf("listing subgraph nodes: %w", err)
	}

	if len(ids) > nodeCap {
		return nil, &models.SubgraphTooLargeError{
			EstimatedNodes: int64(len(ids)),
			NodeCap:        nodeCap,
			Suggestions: []string{
				fmt.Sprintf("the graph holds more than %d nodes; raise node_cap or analyze a partition", nodeCap),
			},
		}
	}

	// The edge load is strict for the same reason: analysis over a
	// truncated edge set is silently wrong.
	edgeCap := e.limits.MaxEdgesPerFetch

	edges, err := e.store.ListEdges(ctx, schema, edgeCap+1)
	if err != nil {
		return nil, fmt.Errorf("listing subgraph edges: %w", err)
	}

	if len(edges) > edgeCap {
		return nil, &models.SubgraphTooLargeError{
			EstimatedNodes: int64(len(ids)),
			NodeCap:        nodeCap,
			EstimatedEdges: int64(len(edges)),
			EdgeCap:        edgeCap,
			Suggestions: []string{
				fmt.Sprintf("the graph holds more than %d edges; raise max_edges_per_fetch or analyze a partition", edgeCap),
			},
		}
	}

	g := &subgraph{
		ids:   ids,
		index: make(map[int64]int, len(ids)),
		out:   map[int64][]int64{},
		in:    map[int64][]int64{},
		und:   map[int64][]int64{},
	}

	slices.Sort(g.ids)

	for i, id := range g.ids {
		g.index[id] = i
	}

	undSeen := map[[2]int64]bool{}

	for _, edge := range edges {
		if _, ok := g.index[edge.From]; !ok {
			continue
		}

		if _, ok := g.index[edge.To]; !ok {
			continue
		}

		g.out[edge.From] = append(g.out[edge.From], edge.To)
		g.in[edge.To] = append(g.in[edge.To], edge.From)
		g.edges++

		key := [2]int64{edge.From, edge.To}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}

		if !undSeen[key] && edge.From != edge.To {
			undSeen[key] = true

			g.und[edge.From] = append(g.und[edge.From], edge.To)
			g.und[edge.To] = append(g.und[edge.To], edge.From)
		}
	}

	for _, adj := range g.und {
		slices.Sort(adj)
	}

	return g, nil
}

// components groups node IDs into weakly connected components via BFS
// over the undirected adjacency, skipping any ID in the omit set.
// Components and their members come back sorted ascending.
func (g *subgraph) components(omit int64, omitValid bool) [][]int64 {
	visited := map[int64]bool{}

	var result [][]int64

	for _, id := range g.ids {
		if visited[id] || (omitValid && id == omit) {
			continue
		}

		var member []int64

		queue := []int64{id}
		visited[id] = true

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			member = append(member, current)

			for _, next := range g.und[current] {
				if visited[next] || (omitValid && next == omit) {
					continue
				}

				visited[next] = true
				queue = append(queue, next)
			}
		}

		slices.Sort(member)
		result = append(result, member)
	}

	return result
}

// Components loads the bounded subgraph and reports its weakly connected
// components, with isolated singletons listed separately.
func (e *Engine) Components(ctx context.Context, schema *models.SchemaDescriptor, req models.ComponentsRequest) (*models.ComponentsResult, error) {
	g, err := e.loadSubgraph(ctx, schema, req.NodeCap)
	if err != nil {
		return nil, err
	}

	result := &models.ComponentsResult{
		NodeCount: len(g.ids),
		EdgeCount: g.edges,
		Density:   density(len(g.ids), g.edges),
	}

	minSize := req.MinSize
	if minSize < 2 {
		minSize = 2
	}

	for _, members := range g.components(0, false) {
		if len(members) == 1 {
			result.Isolated = append(result.Isolated, members[0])

			continue
		}

		if len(members) < minSize {
			continue
		}

		result.Components = append(result.Components, models.Component{
			Members: members,
			Size:    len(members),
		})
	}

	// Largest first; equal sizes order by smallest member for
	// reproducibility.
	slices.SortFunc(result.Components, func(a, b models.Component) int {
		if a.Size != b.Size {
			return b.Size - a.Size
		}

		return int(a.Members[0] - b.Members[0])
	})

	slices.Sort(result.Isolated)

	return result, nil
}

// Resilience simulates removing one node and reports the connectivity
// impact: pairs that lose their connection, the component-count delta,
// and nodes left without any neighbor. The store is never mutated.
func (e *Engine) Resilience(ctx context.Context, schema *models.SchemaDescriptor, req models.ResilienceRequest) (*models.ResilienceResult, error) { //nolint:gocognit // before/after comparison is inherently multi-step.
	g, err := e.loadSubgraph(ctx, schema, req.NodeCap)
	if err != nil {
		return nil, err
	}

	if _, ok := g.index[req.Remove]; !ok {
		return nil, models.ErrNodeNotFound
	}

	before := g.components(0, false)
	after := g.components(req.Remove, true)

	result := &models.ResilienceResult{
		Removed:          req.Remove,
		ComponentsBefore: len(before),
		ComponentsAfter:  len(after),
		ComponentDelta:   len(after) - len(before),
	}

	// Only the component that contained the removed node can split;
	// pairs in every other component are untouched.
	var affected []int64

	for _, members := range before {
		if slices.Contains(members, req.Remove) {
			affected = members

			break
		}
	}

	afterComponent := map[int64]int{}

	for i, members := range after {
		for _, id := range members {
			afterComponent[id] = i
		}
	}

	for i, a := range affected {
		if a == req.Remove {
			continue
		}

		for _, b := range affected[i+1:] {
			if b == req.Remove {
				continue
			}

			if afterComponent[a] == afterComponent[b] {
				continue
			}

			if len(result.DisconnectedPairs) >= maxReportedPairs {
				result.PairsTruncated = true

				break
			}

			result.DisconnectedPairs = append(result.DisconnectedPairs, models.NodePair{A: a, B: b})
		}

		if result.PairsTruncated {
			break
		}
	}

	// Nodes whose only neighbor was the removed node.
	for _, id := range g.ids {
		if id == req.Remove || len(g.und[id]) == 0 {
			continue
		}

		remaining := 0

		for _, n := range g.und[id] {
			if n != req.Remove {
				remaining++
			}
		}

		if remaining == 0 {
			result.NewlyIsolatedNodes = append(result.NewlyIsolatedNodes, id)
		}
	}

	slices.Sort(result.NewlyIsolatedNodes)

	return result, nil
}

// density is edge count over the directed maximum n*(n-1).
func density(nodes, edges int) float64 {
	if nodes < 2 {
		return 0
	}

	return float64(edges) / float64(nodes*(nodes-1))
}
