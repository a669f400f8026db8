package engine

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/relgraphio/relgraph/internal/models"
)

func TestShortestPath_UnweightedCountsHops(t *testing.T) {
	fs := newFakeStore().
		addEdge(1, 2, 1, nil).
		addEdge(2, 4, 1, nil).
		addEdge(1, 3, 1, nil).
		addEdge(3, 5, 1, nil).
		addEdge(5, 4, 1, nil)

	eng := newTestEngine(fs)

	res, err := eng.ShortestPath(context.Background(), testSchema(), models.PathRequest{Start: 1, End: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.Found {
		t.Fatal("expected a path")
	}

	if !slices.Equal(res.Path, []int64{1, 2, 4}) {
		t.Fatalf("expected path [1 2 4], got %v", res.Path)
	}

	if res.Hops != 2 {
		t.Fatalf("expected 2 hops, got %d", res.Hops)
	}

	// Materialized nodes come back in trail order.
	ids := make([]int64, 0, len(res.Nodes))
	for _, n := range res.Nodes {
		ids = append(ids, n.ID)
	}

	if !slices.Equal(ids, res.Path) {
		t.Fatalf("expected nodes ordered as %v, got %v", res.Path, ids)
	}
}

func TestShortestPath_WeightedPrefersCheaperDetour(t *testing.T) {
	fs := newFakeStore().
		addEdge(1, 4, 10, nil).
		addEdge(1, 2, 1, nil).
		addEdge(2, 3, 1, nil).
		addEdge(3, 4, 1, nil)

	eng := newTestEngine(fs)

	res, err := eng.ShortestPath(context.Background(), testSchema(), models.PathRequest{
		Start:    1,
		End:      4,
		Weighted: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !slices.Equal(res.Path, []int64{1, 2, 3, 4}) {
		t.Fatalf("expected the cheap 3-hop detour, got %v", res.Path)
	}

	if math.Abs(res.TotalWeight-3) > 1e-9 {
		t.Fatalf("expected total weight 3, got %v", res.TotalWeight)
	}
}

func TestShortestPath_TraversesEdgesAgainstTheirDirection(t *testing.T) {
	// Path search treats edges as undirected connections.
	fs := newFakeStore().
		addEdge(2, 1, 1, nil).
		addEdge(2, 3, 1, nil)

	eng := newTestEngine(fs)

	res, err := eng.ShortestPath(context.Background(), testSchema(), models.PathRequest{Start: 1, End: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !slices.Equal(res.Path, []int64{1, 2, 3}) {
		t.Fatalf("expected path [1 2 3], got %v", res.Path)
	}
}

func TestShortestPath_ExclusionForcesDetour(t *testing.T) {
	fs := newFakeStore().
		addEdge(1, 2, 1, nil).
		addEdge(2, 4, 1, nil).
		addEdge(1, 3, 1, nil).
		addEdge(3, 5, 1, nil).
		addEdge(5, 4, 1, nil)

	eng := newTestEngine(fs)

	res, err := eng.ShortestPath(context.Background(), testSchema(), models.PathRequest{
		Start:    1,
		End:      4,
		Excluded: []int64{2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !slices.Equal(res.Path, []int64{1, 3, 5, 4}) {
		t.Fatalf("expected the detour around node 2, got %v", res.Path)
	}
}

func TestShortestPath_ExclusionSeversOnlyRoute(t *testing.T) {
	fs := newFakeStore().
		addEdge(1, 2, 1, nil).
		addEdge(2, 3, 1, nil)

	eng := newTestEngine(fs)

	res, err := eng.ShortestPath(context.Background(), testSchema(), models.PathRequest{
		Start:    1,
		End:      3,
		Excluded: []int64{2},
	})
	if err != nil {
		t.Fatalf("unreachable is a result, not an error: %v", err)
	}

	if res.Found {
		t.Fatal("expected no path with the cut vertex excluded")
	}
}

func TestShortestPath_DisconnectedReturnsNotFound(t *testing.T) {
	fs := newFakeStore().
		addEdge(1, 2, 1, nil).
		addEdge(3, 4, 1, nil)

	eng := newTestEngine(fs)

	res, err := eng.ShortestPath(context.Background(), testSchema(), models.PathRequest{Start: 1, End: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Found {
		t.Fatal("expected Found=false across components")
	}
}

func TestShortestPath_StartEqualsEnd(t *testing.T) {
	fs := newFakeStore().addNode(7, nil)
	eng := newTestEngine(fs)

	res, err := eng.ShortestPath(context.Background(), testSchema(), models.PathRequest{Start: 7, End: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.Found || !slices.Equal(res.Path, []int64{7}) {
		t.Fatalf("expected the trivial single-node path, got %+v", res)
	}
}

func TestShortestPath_WeightedRequiresWeightColumn(t *testing.T) {
	schema := testSchema()
	schema.WeightColumn = ""

	eng := newTestEngine(newFakeStore().addEdge(1, 2, 1, nil))

	_, err := eng.ShortestPath(context.Background(), schema, models.PathRequest{Start: 1, End: 2, Weighted: true})
	if !models.IsInvalidParameter(err) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestShortestPath_ExcludedEndpointRejected(t *testing.T) {
	eng := newTestEngine(newFakeStore().addEdge(1, 2, 1, nil))

	_, err := eng.ShortestPath(context.Background(), testSchema(), models.PathRequest{
		Start:    1,
		End:      2,
		Excluded: []int64{2},
	})
	if !models.IsInvalidParameter(err) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestShortestPath_UnknownStart(t *testing.T) {
	eng := newTestEngine(newFakeStore().addEdge(1, 2, 1, nil))

	_, err := eng.ShortestPath(context.Background(), testSchema(), models.PathRequest{Start: 99, End: 2})
	if !errors.Is(err, models.ErrNodeNotFound) {
		t.Fatalf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestAllShortestPaths_EnumeratesTies(t *testing.T) {
	fs := newFakeStore().
		addEdge(1, 2, 1, nil).
		addEdge(1, 3, 1, nil).
		addEdge(2, 4, 1, nil).
		addEdge(3, 4, 1, nil)

	eng := newTestEngine(fs)

	res, err := eng.AllShortestPaths(context.Background(), testSchema(), models.PathRequest{Start: 1, End: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.Found {
		t.Fatal("expected paths")
	}

	if len(res.Paths) != 2 {
		t.Fatalf("expected both equally short paths, got %v", res.Paths)
	}

	// Deterministic order: the path through the smaller intermediate
	// node comes first.
	if !slices.Equal(res.Paths[0], []int64{1, 2, 4}) || !slices.Equal(res.Paths[1], []int64{1, 3, 4}) {
		t.Fatalf("expected [[1 2 4] [1 3 4]], got %v", res.Paths)
	}

	if res.Truncated {
		t.Fatal("two paths under the default cap must not truncate")
	}
}

func TestAllShortestPaths_OmitsZeroWeightRoutes(t *testing.T) {
	// Two routes of total weight 1: direct, and through a zero-weight
	// edge. Enumeration keeps the predecessor DAG acyclic by skipping
	// zero-weight edges, so only the direct route is listed.
	fs := newFakeStore().
		addEdge(1, 2, 0, nil).
		addEdge(2, 3, 1, nil).
		addEdge(1, 3, 1, nil)

	eng := newTestEngine(fs)

	res, err := eng.AllShortestPaths(context.Background(), testSchema(), models.PathRequest{Start: 1, End: 3, Weighted: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.Found || len(res.Paths) != 1 || !slices.Equal(res.Paths[0], []int64{1, 3}) {
		t.Fatalf("expected only the direct route [[1 3]], got found=%v paths=%v", res.Found, res.Paths)
	}
}

func TestShortestPath_CrossesZeroWeightEdges(t *testing.T) {
	// The single-path search has no DAG restriction; a free route is a
	// valid shortest path.
	fs := newFakeStore().
		addEdge(1, 2, 0, nil).
		addEdge(2, 3, 0, nil)

	eng := newTestEngine(fs)

	res, err := eng.ShortestPath(context.Background(), testSchema(), models.PathRequest{Start: 1, End: 3, Weighted: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.Found || !slices.Equal(res.Path, []int64{1, 2, 3}) {
		t.Fatalf("expected path [1 2 3], got found=%v path=%v", res.Found, res.Path)
	}

	if res.TotalWeight != 0 {
		t.Fatalf("expected zero total weight, got %v", res.TotalWeight)
	}
}

func TestAllShortestPaths_ExcludesLongerRoutes(t *testing.T) {
	fs := newFakeStore().
		addEdge(1, 2, 1, nil).
		addEdge(2, 4, 1, nil).
		addEdge(1, 3, 1, nil).
		addEdge(3, 5, 1, nil).
		addEdge(5, 4, 1, nil)

	eng := newTestEngine(fs)

	res, err := eng.AllShortestPaths(context.Background(), testSchema(), models.PathRequest{Start: 1, End: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Paths) != 1 {
		t.Fatalf("only the minimal path belongs in the result, got %v", res.Paths)
	}
}

func TestAllShortestPaths_MaxResultsTruncates(t *testing.T) {
	fs := newFakeStore().
		addEdge(1, 2, 1, nil).
		addEdge(1, 3, 1, nil).
		addEdge(2, 4, 1, nil).
		addEdge(3, 4, 1, nil)

	eng := newTestEngine(fs)

	res, err := eng.AllShortestPaths(context.Background(), testSchema(), models.PathRequest{
		Start:      1,
		End:        4,
		MaxResults: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Paths) != 1 || !res.Truncated {
		t.Fatalf("expected 1 path with truncation flagged, got %d paths truncated=%v", len(res.Paths), res.Truncated)
	}
}

func TestAllShortestPaths_NotFound(t *testing.T) {
	fs := newFakeStore().
		addEdge(1, 2, 1, nil).
		addEdge(3, 4, 1, nil)

	eng := newTestEngine(fs)

	res, err := eng.AllShortestPaths(context.Background(), testSchema(), models.PathRequest{Start: 1, End: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Found {
		t.Fatal("expected Found=false across components")
	}
}

func TestReconstruct_MissingPredecessor(t *testing.T) {
	trail := reconstruct(map[int64]int64{3: 2}, 1, 3)
	if trail != nil {
		t.Fatalf("a broken predecessor chain must yield nil, got %v", trail)
	}
}
