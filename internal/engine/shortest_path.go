package engine

import (
	"container/heap"
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/relgraphio/relgraph/internal/models"
)

// localGraph is the bounded adjacency structure a path search loads
// incrementally. Edges touching an excluded node are never admitted, so
// the search routes around them.
type localGraph struct {
	adj      map[int64][]halfEdge
	excluded map[int64]bool
}

type halfEdge struct {
	to     int64
	weight float64
}

func newLocalGraph(excluded []int64) *localGraph {
	g := &localGraph{
		adj:      map[int64][]halfEdge{},
		excluded: make(map[int64]bool, len(excluded)),
	}

	for _, id := range excluded {
		g.excluded[id] = true
	}

	return g
}

func (g *localGraph) add(edge models.Edge, weighted bool) {
	if g.excluded[edge.From] || g.excluded[edge.To] {
		return
	}

	w := 1.0
	if weighted {
		w = edge.Weight
		if w < 0 {
			w = 0
		}
	}

	// Undirected view: path search may route along either endpoint.
	g.adj[edge.From] = append(g.adj[edge.From], halfEdge{to: edge.To, weight: w})
	g.adj[edge.To] = append(g.adj[edge.To], halfEdge{to: edge.From, weight: w})
}

// ShortestPath finds a minimal path between two nodes, loading the
// surrounding subgraph one frontier at a time and running Dijkstra (or
// plain BFS distance when unweighted) over the loaded portion. An
// unreachable destination is a structured negative result, not an error.
func (e *Engine) ShortestPath(ctx context.Context, schema *models.SchemaDescriptor, req models.PathRequest) (*models.PathResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Weighted && schema.WeightColumn == "" {
		return nil, &models.InvalidParameterError{Param: "weighted", Reason: "schema declares no weight column"}
	}

	if req.Start == req.End {
		nodes, err := e.store.Materialize(ctx, schema, []int64{req.Start}, nil)
		if err != nil {
			return nil, fmt.Errorf("materializing path node: %w", err)
		}

		if len(nodes) == 0 {
			return nil, models.ErrNodeNotFound
		}

		return &models.PathResult{Found: true, Path: []int64{req.Start}, Nodes: nodes, Weighted: req.Weighted}, nil
	}

	graph, err := e.loadPathNeighborhood(ctx, schema, req)
	if err != nil {
		return nil, err
	}

	dist, prev := dijkstra(graph, req.Start)

	d, reached := dist[req.End]
	if !reached || math.IsInf(d, 1) {
		return &models.PathResult{Found: false, Weighted: req.Weighted}, nil
	}

	trail := reconstruct(prev, req.Start, req.End)
	if trail == nil {
		return &models.PathResult{Found: false, Weighted: req.Weighted}, nil
	}

	nodes, err := e.store.Materialize(ctx, schema, trail, nil)
	if err != nil {
		return nil, fmt.Errorf("materializing path nodes: %w", err)
	}

	return &models.PathResult{
		Found:       true,
		Path:        trail,
		Nodes:       orderNodes(nodes, trail),
		TotalWeight: d,
		Hops:        len(trail) - 1,
		Weighted:    req.Weighted,
	}, nil
}

// AllShortestPaths enumerates every equally optimal path between two
// nodes, bounded by max_results, in deterministic order.
//
// Restriction: zero-weight edges (including negative weights, which are
// clamped to zero) never appear in enumerated paths. The predecessor
// relation must stay acyclic, and a zero-cost edge makes both endpoints
// predecessors of each other. ShortestPath still crosses such edges; only
// the exhaustive enumeration excludes them.
func (e *Engine) AllShortestPaths(ctx context.Context, schema *models.SchemaDescriptor, req models.PathRequest) (*models.PathsResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Weighted && schema.WeightColumn == "" {
		return nil, &models.InvalidParameterError{Param: "weighted", Reason: "schema declares no weight column"}
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = 100
	}

	if req.Start == req.End {
		return &models.PathsResult{Found: true, Paths: [][]int64{{req.Start}}, Weighted: req.Weighted}, nil
	}

	graph, err := e.loadPathNeighborhood(ctx, schema, req)
	if err != nil {
		return nil, err
	}

	dist, _ := dijkstra(graph, req.Start)

	endDist, reached := dist[req.End]
	if !reached || math.IsInf(endDist, 1) {
		return &models.PathsResult{Found: false, Weighted: req.Weighted}, nil
	}

	// Predecessors on the shortest-path DAG: u precedes v when the edge
	// u-v lies on some minimal path. Zero-weight edges are skipped so
	// the predecessor relation stays acyclic.
	preds := map[int64][]int64{}

	for u, halves := range graph.adj {
		for _, h := range halves {
			if h.weight > 0 && equalWeight(dist[u]+h.weight, dist[h.to]) {
				preds[h.to] = append(preds[h.to], u)
			}
		}
	}

	for _, p := range preds {
		slices.Sort(p)
	}

	result := &models.PathsResult{
		Found:       true,
		TotalWeight: endDist,
		Weighted:    req.Weighted,
	}

	var walk func(node int64, suffix []int64) bool

	walk = func(node int64, suffix []int64) bool {
		suffix = append([]int64{node}, suffix...)

		if node == req.Start {
			if len(result.Paths) >= maxResults {
				result.Truncated = true

				return false
			}

			result.Paths = append(result.Paths, suffix)

			return true
		}

		prevSeen := map[int64]bool{}

		for _, p := range preds[node] {
			if prevSeen[p] {
				continue
			}

			prevSeen[p] = true

			if !walk(p, suffix) {
				return false
			}
		}

		return true
	}

	walk(req.End, nil)

	return result, nil
}

// loadPathNeighborhood expands frontiers from the start node until the
// target is discovered (plus one settling level so Dijkstra can see
// cheaper late edges), or until depth and node caps run out.
func (e *Engine) loadPathNeighborhood(ctx context.Context, schema *models.SchemaDescriptor, req models.PathRequest) (*localGraph, error) { //nolint:gocognit // frontier loop with settling level is inherently multi-step.
	if err := e.requireNode(ctx, schema, req.Start); err != nil {
		return nil, err
	}

	maxDepth := e.clampDepth(req.MaxDepth, e.limits.MaxPathDepth)

	graph := newLocalGraph(req.Excluded)
	opts := models.FetchOptions{Exclude: req.Excluded}

	visited := map[int64]bool{req.Start: true}
	frontier := []int64{req.Start}
	settling := -1

	for level := 0; level < maxDepth && len(frontier) > 0; level++ {
		if settling >= 0 && level > settling {
			break
		}

		edges, _, err := e.fetchFrontier(ctx, schema, frontier, models.DirectionBoth, opts)
		if err != nil {
			return nil, fmt.Errorf("loading path neighborhood at depth %d: %w", level+1, err)
		}

		var next []int64

		for _, edge := range edges {
			graph.add(edge, req.Weighted)

			for _, end := range []int64{edge.From, edge.To} {
				if visited[end] || graph.excluded[end] {
					continue
				}

				visited[end] = true
				next = append(next, end)

				if end == req.End && settling < 0 {
					// Weighted search needs one more level: a cheaper
					// path may run through edges just past the target.
					settling = level + 1
					if !req.Weighted {
						settling = level
					}
				}
			}
		}

		if len(visited) > e.limits.MaxNodes {
			return nil, &models.LimitExceededError{Limit: "nodes", Count: len(visited), Cap: e.limits.MaxNodes}
		}

		frontier = next
	}

	return graph, nil
}

// pqItem is a priority-queue entry. Ties order by node ID so traversal
// order, and therefore tie-broken paths, are deterministic.
type pqItem struct {
	id   int64
	dist float64
}

type pq []pqItem

func (q pq) Len() int { return len(q) }

func (q pq) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}

	return q[i].id < q[j].id
}

func (q pq) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *pq) Push(x any) { *q = append(*q, x.(pqItem)) }

func (q *pq) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]

	return item
}

// dijkstra computes minimal distances from the source over the loaded
// graph. Unweighted graphs degenerate to BFS since every edge costs 1.
func dijkstra(g *localGraph, source int64) (map[int64]float64, map[int64]int64) {
	dist := map[int64]float64{}
	prev := map[int64]int64{}

	for id := range g.adj {
		dist[id] = math.Inf(1)
	}

	dist[source] = 0

	q := &pq{{id: source, dist: 0}}
	heap.Init(q)

	done := map[int64]bool{}

	for q.Len() > 0 {
		item := heap.Pop(q).(pqItem)
		if done[item.id] {
			continue
		}

		done[item.id] = true

		for _, h := range g.adj[item.id] {
			alt := item.dist + h.weight

			current, ok := dist[h.to]
			if !ok {
				current = math.Inf(1)
			}

			if alt < current || (equalWeight(alt, current) && !done[h.to] && betterPrev(prev, h.to, item.id)) {
				dist[h.to] = alt
				prev[h.to] = item.id
				heap.Push(q, pqItem{id: h.to, dist: alt})
			}
		}
	}

	return dist, prev
}

// betterPrev prefers the smaller predecessor ID on equal-cost ties.
func betterPrev(prev map[int64]int64, node, candidate int64) bool {
	existing, ok := prev[node]
	if !ok {
		return true
	}

	return candidate < existing
}

// equalWeight compares path costs with a small epsilon; float summation
// order must not split equal-cost paths.
func equalWeight(a, b float64) bool {
	const eps = 1e-9

	return math.Abs(a-b) <= eps*(1+math.Abs(a)+math.Abs(b))
}

// reconstruct walks the predecessor map back from end to start.
func reconstruct(prev map[int64]int64, start, end int64) []int64 {
	trail := []int64{end}

	for current := end; current != start; {
		p, ok := prev[current]
		if !ok {
			return nil
		}

		trail = append(trail, p)
		current = p
	}

	slices.Reverse(trail)

	return trail
}

// orderNodes returns nodes sorted into trail order.
func orderNodes(nodes []models.Node, trail []int64) []models.Node {
	byID := make(map[int64]models.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	ordered := make([]models.Node, 0, len(trail))

	for _, id := range trail {
		if n, ok := byID[id]; ok {
			ordered = append(ordered, n)
		}
	}

	return ordered
}
