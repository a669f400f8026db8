package engine

import (
	"context"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/relgraphio/relgraph/internal/models"
)

// fakeStore serves a fixed in-memory graph through the Store interface
// and counts adjacency round trips so tests can assert batching.
type fakeStore struct {
	nodes map[int64]map[string]any
	edges []models.Edge

	bound    int64
	boundErr error
	fetchErr error

	fetchCalls       int
	materializeCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{nodes: map[int64]map[string]any{}}
}

func (f *fakeStore) addNode(id int64, attrs map[string]any) *fakeStore {
	if attrs == nil {
		attrs = map[string]any{}
	}

	f.nodes[id] = attrs

	return f
}

func (f *fakeStore) addEdge(from, to int64, weight float64, attrs map[string]any) *fakeStore {
	if _, ok := f.nodes[from]; !ok {
		f.addNode(from, nil)
	}

	if _, ok := f.nodes[to]; !ok {
		f.addNode(to, nil)
	}

	f.edges = append(f.edges, models.Edge{From: from, To: to, Weight: weight, Attrs: attrs})

	return f
}

func (f *fakeStore) FetchEdges(_ context.Context, _ *models.SchemaDescriptor, frontier []int64, dir models.Direction, _ models.FetchOptions) ([]models.Edge, error) {
	f.fetchCalls++

	if f.fetchErr != nil {
		return nil, f.fetchErr
	}

	in := make(map[int64]bool, len(frontier))
	for _, id := range frontier {
		in[id] = true
	}

	var out []models.Edge

	for _, e := range f.edges {
		switch dir {
		case models.DirectionOutbound:
			if in[e.From] {
				out = append(out, e)
			}
		case models.DirectionInbound:
			if in[e.To] {
				out = append(out, e)
			}
		case models.DirectionBoth:
			if in[e.From] || in[e.To] {
				out = append(out, e)
			}
		}
	}

	return out, nil
}

func (f *fakeStore) Materialize(_ context.Context, _ *models.SchemaDescriptor, ids []int64, _ []string) ([]models.Node, error) {
	f.materializeCalls++

	nodes := make([]models.Node, 0, len(ids))

	for _, id := range ids {
		attrs, ok := f.nodes[id]
		if !ok {
			continue
		}

		nodes = append(nodes, models.Node{ID: id, Attrs: attrs})
	}

	return nodes, nil
}

func (f *fakeStore) TableBound(_ context.Context, _ *models.SchemaDescriptor) (int64, error) {
	if f.boundErr != nil {
		return 0, f.boundErr
	}

	return f.bound, nil
}

func (f *fakeStore) ListEdges(_ context.Context, _ *models.SchemaDescriptor, limit int) ([]models.Edge, error) {
	edges := slices.Clone(f.edges)
	if limit > 0 && len(edges) > limit {
		edges = edges[:limit]
	}

	return edges, nil
}

func (f *fakeStore) ListNodeIDs(_ context.Context, _ *models.SchemaDescriptor, limit int) ([]int64, error) {
	ids := make([]int64, 0, len(f.nodes))
	for id := range f.nodes {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	return ids, nil
}

func testSchema() *models.SchemaDescriptor {
	return &models.SchemaDescriptor{
		Name:         "test",
		NodeTable:    "graph_nodes",
		NodeIDColumn: "id",
		EdgeTable:    "graph_edges",
		FromColumn:   "from_id",
		ToColumn:     "to_id",
		WeightColumn: "weight",
	}
}

func newTestEngine(store Store) *Engine {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return New(store, models.DefaultLimits(), log)
}

func newTestEngineLimits(store Store, limits models.Limits) *Engine {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return New(store, limits, log)
}

func requireLimitExceeded(t *testing.T, err error, limit string) {
	t.Helper()

	var le *models.LimitExceededError
	if !errors.As(err, &le) {
		t.Fatalf("expected LimitExceededError, got %v", err)
	}

	if le.Limit != limit {
		t.Fatalf("expected %q limit, got %q", limit, le.Limit)
	}
}
