package engine

import (
	"context"
	"fmt"
	"slices"

	"github.com/relgraphio/relgraph/internal/models"
)

// Sample probes a few levels outward from the start node and
// characterizes the subgraph's growth: per-level new-node counts, the
// convergence ratio, the growth trend, and hub presence. The probe costs
// one adjacency fetch per level (two for "both") and nothing else.
func (e *Engine) Sample(ctx context.Context, schema *models.SchemaDescriptor, start int64, dir models.Direction, sampleDepth int) (*models.SampleResult, error) { //nolint:gocognit,gocyclo,cyclop,funlen // level loop with degree bookkeeping is inherently multi-step.
	if !dir.Valid() {
		return nil, &models.InvalidParameterError{Param: "direction", Reason: "must be outbound, inbound, or both"}
	}

	depth := e.clampDepth(sampleDepth, e.limits.SampleDepth)

	visited := map[int64]bool{start: true}
	frontier := []int64{start}
	outDegree := map[int64]int{}
	seenEdges := map[[2]int64]bool{}

	result := &models.SampleResult{Root: start}

	for level := 0; level < depth && len(frontier) > 0; level++ {
		edges, calls, err := e.fetchFrontier(ctx, schema, frontier, dir, models.FetchOptions{})
		if err != nil {
			return nil, fmt.Errorf("sampling level %d: %w", level+1, err)
		}

		result.FetchCalls += calls

		var next []int64

		newThisLevel := 0

		for _, edge := range edges {
			from, to, ok := orient(edge, visited, dir)
			if !ok {
				continue
			}

			// A bidirectional probe refetches an edge from its far
			// endpoint's frontier; count each stored edge once.
			key := [2]int64{edge.From, edge.To}
			if seenEdges[key] {
				continue
			}

			seenEdges[key] = true

			outDegree[from]++
			result.EdgesTraversed++

			if visited[to] {
				continue
			}

			visited[to] = true
			next = append(next, to)
			newThisLevel++
		}

		result.LevelCounts = append(result.LevelCounts, newThisLevel)
		frontier = next
	}

	if len(frontier) == 0 {
		result.Terminated = true
	}

	result.UniqueNodes = len(visited)
	result.ConvergenceRatio = convergenceRatio(result.UniqueNodes, result.EdgesTraversed)
	result.Trend = classifyTrend(result.LevelCounts)
	result.MaxOutDegree, result.MedianDegree = degreeProfile(outDegree)

	if result.MedianDegree > 0 && float64(result.MaxOutDegree) > e.limits.HubFactor*result.MedianDegree {
		result.HubDetected = true
	}

	return result, nil
}

// convergenceRatio is unique nodes over edge endpoints traversed,
// clamped to (0, 1]. A probe that followed no edges is trivially a tree.
func convergenceRatio(uniqueNodes, edgesTraversed int) float64 {
	if edgesTraversed == 0 {
		return 1
	}

	ratio := float64(uniqueNodes) / float64(edgesTraversed)
	if ratio > 1 {
		return 1
	}

	return ratio
}

// classifyTrend compares the most recent level-over-level growth rate to
// the earliest one. Bands of ±10% count as stable.
func classifyTrend(levels []int) models.GrowthTrend {
	rates := growthRates(levels)
	if len(rates) < 2 {
		return models.TrendStable
	}

	early := rates[0]
	recent := rates[len(rates)-1]

	switch {
	case recent > early*1.1:
		return models.TrendIncreasing
	case recent < early*0.9:
		return models.TrendDecreasing
	}

	return models.TrendStable
}

// growthRates converts per-level counts into level-over-level ratios,
// skipping levels that would divide by zero.
func growthRates(levels []int) []float64 {
	var rates []float64

	for i := 1; i < len(levels); i++ {
		if levels[i-1] == 0 {
			continue
		}

		rates = append(rates, float64(levels[i])/float64(levels[i-1]))
	}

	return rates
}

// degreeProfile returns the maximum and median out-degree over all nodes
// that were expanded during the sample.
func degreeProfile(outDegree map[int64]int) (maxDeg int, median float64) {
	if len(outDegree) == 0 {
		return 0, 0
	}

	degrees := make([]int, 0, len(outDegree))
	for _, d := range outDegree {
		degrees = append(degrees, d)

		if d > maxDeg {
			maxDeg = d
		}
	}

	slices.Sort(degrees)

	mid := len(degrees) / 2
	if len(degrees)%2 == 1 {
		return maxDeg, float64(degrees[mid])
	}

	return maxDeg, float64(degrees[mid-1]+degrees[mid]) / 2
}
