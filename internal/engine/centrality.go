package engine

import (
	"context"
	"math"
	"slices"

	"github.com/relgraphio/relgraph/internal/models"
)

// PageRank iteration parameters.
const (
	pageRankDamping    = 0.85
	pageRankIterations = 50
	pageRankEpsilon    = 1e-9
)

// Centrality loads the bounded subgraph and ranks its nodes by the
// requested centrality measure. Ties always break by ascending node ID
// so rankings are reproducible across runs.
func (e *Engine) Centrality(ctx context.Context, schema *models.SchemaDescriptor, req models.CentralityRequest) (*models.CentralityResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	g, err := e.loadSubgraph(ctx, schema, req.NodeCap)
	if err != nil {
		return nil, err
	}

	var scores map[int64]float64

	switch req.Kind {
	case models.CentralityDegree:
		scores = degreeCentrality(g)
	case models.CentralityBetweenness:
		scores = betweennessCentrality(g)
	case models.CentralityCloseness:
		scores = closenessCentrality(g)
	case models.CentralityPageRank:
		scores = pageRank(g)
	}

	topN := req.TopN
	if topN <= 0 || topN > len(g.ids) {
		topN = len(g.ids)
	}

	ranked := make([]models.NodeScore, 0, len(scores))
	for id, score := range scores {
		ranked = append(ranked, models.NodeScore{ID: id, Score: score})
	}

	slices.SortFunc(ranked, func(a, b models.NodeScore) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}

		return 0
	})

	return &models.CentralityResult{
		Kind:      req.Kind,
		Scores:    ranked[:topN],
		NodeCount: len(g.ids),
		EdgeCount: g.edges,
	}, nil
}

// degreeCentrality is total (in+out) degree normalized by n-1.
func degreeCentrality(g *subgraph) map[int64]float64 {
	scores := make(map[int64]float64, len(g.ids))

	norm := float64(len(g.ids) - 1)
	if norm < 1 {
		norm = 1
	}

	for _, id := range g.ids {
		scores[id] = float64(len(g.out[id])+len(g.in[id])) / norm
	}

	return scores
}

// betweennessCentrality implements Brandes' algorithm over the
// undirected view, normalized to [0, 1] by (n-1)(n-2)/2.
func betweennessCentrality(g *subgraph) map[int64]float64 {
	scores := make(map[int64]float64, len(g.ids))
	for _, id := range g.ids {
		scores[id] = 0
	}

	n := len(g.ids)
	if n < 3 {
		return scores
	}

	for _, source := range g.ids {
		stack, sigma, preds := brandesBFS(g, source)
		brandesAccumulate(source, stack, sigma, preds, scores)
	}

	// Undirected: each pair dependency was counted from both endpoints.
	norm := float64(n-1) * float64(n-2)

	for id := range scores {
		scores[id] /= norm
	}

	return scores
}

// brandesBFS is the forward phase: BFS from the source recording the
// visit stack, shortest-path counts, and predecessor lists.
func brandesBFS(g *subgraph, source int64) ([]int64, map[int64]float64, map[int64][]int64) {
	stack := make([]int64, 0, len(g.ids))
	sigma := map[int64]float64{source: 1}
	dist := map[int64]int{source: 0}
	preds := map[int64][]int64{}

	queue := []int64{source}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		stack = append(stack, v)

		for _, w := range g.und[v] {
			if _, seen := dist[w]; !seen {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}

			if dist[w] == dist[v]+1 {
				sigma[w] += sigma[v]
				preds[w] = append(preds[w], v)
			}
		}
	}

	return stack, sigma, preds
}

// brandesAccumulate back-propagates pair dependencies along the visit
// stack into the centrality scores.
func brandesAccumulate(source int64, stack []int64, sigma map[int64]float64, preds map[int64][]int64, scores map[int64]float64) {
	delta := map[int64]float64{}

	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]

		for _, v := range preds[w] {
			delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
		}

		if w != source {
			scores[w] += delta[w]
		}
	}
}

// closenessCentrality is (reachable count) / (sum of distances),
// computed per node by BFS over the undirected view. Unreachable nodes
// contribute nothing, which keeps disconnected graphs meaningful
// (Wasserman-Faust style normalization by reachable fraction).
func closenessCentrality(g *subgraph) map[int64]float64 {
	scores := make(map[int64]float64, len(g.ids))

	n := len(g.ids)

	for _, source := range g.ids {
		dist := map[int64]int{source: 0}
		queue := []int64{source}
		sum := 0

		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			sum += dist[v]

			for _, w := range g.und[v] {
				if _, seen := dist[w]; !seen {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
			}
		}

		reachable := len(dist) - 1
		if reachable == 0 || sum == 0 {
			scores[source] = 0

			continue
		}

		scores[source] = (float64(reachable) / float64(n-1)) * (float64(reachable) / float64(sum))
	}

	return scores
}

// pageRank runs power iteration over the directed adjacency with uniform
// teleport, stopping early once the L1 delta falls under epsilon.
func pageRank(g *subgraph) map[int64]float64 {
	n := len(g.ids)
	if n == 0 {
		return map[int64]float64{}
	}

	rank := make(map[int64]float64, n)
	for _, id := range g.ids {
		rank[id] = 1 / float64(n)
	}

	base := (1 - pageRankDamping) / float64(n)

	for iter := 0; iter < pageRankIterations; iter++ {
		next := make(map[int64]float64, n)
		dangling := 0.0

		for _, id := range g.ids {
			next[id] = base
		}

		for _, id := range g.ids {
			out := g.out[id]
			if len(out) == 0 {
				dangling += rank[id]

				continue
			}

			share := pageRankDamping * rank[id] / float64(len(out))
			for _, to := range out {
				next[to] += share
			}
		}

		// Dangling mass redistributes uniformly.
		danglingShare := pageRankDamping * dangling / float64(n)
		for _, id := range g.ids {
			next[id] += danglingShare
		}

		delta := 0.0
		for _, id := range g.ids {
			delta += math.Abs(next[id] - rank[id])
		}

		rank = next

		if delta < pageRankEpsilon {
			break
		}
	}

	return rank
}
