package engine

import (
	"context"
	"slices"
	"testing"

	"github.com/relgraphio/relgraph/internal/models"
)

func TestSample_TerminatedProbeMeasuresExactly(t *testing.T) {
	fs := newFakeStore().
		addEdge(1, 2, 1, nil).
		addEdge(1, 3, 1, nil).
		addEdge(2, 4, 1, nil)

	eng := newTestEngine(fs)

	res, err := eng.Sample(context.Background(), testSchema(), 1, models.DirectionOutbound, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.Terminated {
		t.Fatal("expected the probe to drain the frontier")
	}

	if res.UniqueNodes != 4 {
		t.Fatalf("expected 4 unique nodes, got %d", res.UniqueNodes)
	}

	if !slices.Equal(res.LevelCounts, []int{2, 1, 0}) {
		t.Fatalf("expected level counts [2 1 0], got %v", res.LevelCounts)
	}
}

func TestSample_BidirectionalCountsEachEdgeOnce(t *testing.T) {
	// Chain 1-2-3 probed bidirectionally: refetching an edge from its
	// far endpoint must not inflate the traversed-edge count, which
	// would deflate the convergence ratio.
	fs := newFakeStore().
		addEdge(1, 2, 1, nil).
		addEdge(2, 3, 1, nil)

	eng := newTestEngine(fs)

	res, err := eng.Sample(context.Background(), testSchema(), 1, models.DirectionBoth, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.EdgesTraversed != 2 {
		t.Fatalf("expected 2 traversed edges, got %d", res.EdgesTraversed)
	}

	if res.ConvergenceRatio != 1 {
		t.Fatalf("a tree probe must converge at 1, got %v", res.ConvergenceRatio)
	}
}

func TestSample_DepthBoundsProbeCost(t *testing.T) {
	fs := newFakeStore().
		addEdge(1, 2, 1, nil).
		addEdge(2, 3, 1, nil).
		addEdge(3, 4, 1, nil).
		addEdge(4, 5, 1, nil)

	eng := newTestEngine(fs)

	res, err := eng.Sample(context.Background(), testSchema(), 1, models.DirectionOutbound, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Terminated {
		t.Fatal("a truncated probe must not claim termination")
	}

	if fs.fetchCalls != 2 {
		t.Fatalf("expected exactly 2 probe fetches, got %d", fs.fetchCalls)
	}

	if res.UniqueNodes != 3 {
		t.Fatalf("expected 3 nodes within 2 levels, got %d", res.UniqueNodes)
	}
}

func TestSample_HubDetection(t *testing.T) {
	fs := newFakeStore()
	for id := int64(2); id <= 200; id++ {
		fs.addEdge(1, id, 1, nil)
	}

	for id := int64(2); id <= 200; id++ {
		fs.addEdge(id, id+1000, 1, nil)
	}

	eng := newTestEngine(fs)

	res, err := eng.Sample(context.Background(), testSchema(), 1, models.DirectionOutbound, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.HubDetected {
		t.Fatalf("expected hub detection with max degree %d over median %v", res.MaxOutDegree, res.MedianDegree)
	}

	if res.MaxOutDegree != 199 {
		t.Fatalf("expected max out-degree 199, got %d", res.MaxOutDegree)
	}
}

func TestSample_InvalidDirection(t *testing.T) {
	eng := newTestEngine(newFakeStore().addNode(1, nil))

	_, err := eng.Sample(context.Background(), testSchema(), 1, "diagonal", 0)
	if !models.IsInvalidParameter(err) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestConvergenceRatio(t *testing.T) {
	cases := []struct {
		nodes, edges int
		want         float64
	}{
		{5, 0, 1},    // no edges followed: trivially tree-like
		{5, 4, 1},    // ratio above 1 clamps
		{5, 10, 0.5}, // heavy path sharing
	}

	for _, c := range cases {
		if got := convergenceRatio(c.nodes, c.edges); got != c.want {
			t.Errorf("convergenceRatio(%d, %d) = %v, want %v", c.nodes, c.edges, got, c.want)
		}
	}
}

func TestClassifyTrend(t *testing.T) {
	cases := []struct {
		name   string
		levels []int
		want   models.GrowthTrend
	}{
		{"too short", []int{3, 6}, models.TrendStable},
		{"increasing", []int{2, 4, 16}, models.TrendIncreasing},
		{"decreasing", []int{16, 8, 2}, models.TrendDecreasing},
		{"flat", []int{4, 8, 16}, models.TrendStable},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := classifyTrend(c.levels); got != c.want {
				t.Fatalf("classifyTrend(%v) = %q, want %q", c.levels, got, c.want)
			}
		})
	}
}

func TestDegreeProfile(t *testing.T) {
	deg := map[int64]int{1: 10, 2: 1, 3: 2, 4: 3}

	maxDeg, median := degreeProfile(deg)
	if maxDeg != 10 {
		t.Fatalf("expected max 10, got %d", maxDeg)
	}

	// Even count: mean of the two middle values.
	if median != 2.5 {
		t.Fatalf("expected median 2.5, got %v", median)
	}
}

func TestDegreeProfile_Empty(t *testing.T) {
	maxDeg, median := degreeProfile(map[int64]int{})
	if maxDeg != 0 || median != 0 {
		t.Fatalf("expected zeros, got %d / %v", maxDeg, median)
	}
}
