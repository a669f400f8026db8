package service

import (
	"context"
	"sync"

	"github.com/relgraphio/relgraph/internal/models"
)

// mockGrapher records calls and returns configured responses.
type mockGrapher struct {
	mu    sync.Mutex
	calls []string

	traverse         func(ctx context.Context, schema *models.SchemaDescriptor, req models.TraverseRequest) (*models.TraverseResult, error)
	neighbors        func(ctx context.Context, schema *models.SchemaDescriptor, id int64) (*models.NeighborResult, error)
	aggregate        func(ctx context.Context, schema *models.SchemaDescriptor, req models.AggregateRequest) (*models.AggregateResult, error)
	estimate         func(ctx context.Context, schema *models.SchemaDescriptor, req models.EstimateRequest) (*models.EstimateResult, *models.GuardResult, error)
	shortestPath     func(ctx context.Context, schema *models.SchemaDescriptor, req models.PathRequest) (*models.PathResult, error)
	allShortestPaths func(ctx context.Context, schema *models.SchemaDescriptor, req models.PathRequest) (*models.PathsResult, error)
	centrality       func(ctx context.Context, schema *models.SchemaDescriptor, req models.CentralityRequest) (*models.CentralityResult, error)
	components       func(ctx context.Context, schema *models.SchemaDescriptor, req models.ComponentsRequest) (*models.ComponentsResult, error)
	resilience       func(ctx context.Context, schema *models.SchemaDescriptor, req models.ResilienceRequest) (*models.ResilienceResult, error)
	limits           func() models.Limits
}

func (m *mockGrapher) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockGrapher) Traverse(ctx context.Context, schema *models.SchemaDescriptor, req models.TraverseRequest) (*models.TraverseResult, error) {
	m.record("Traverse")
	return m.traverse(ctx, schema, req)
}

func (m *mockGrapher) Neighbors(ctx context.Context, schema *models.SchemaDescriptor, id int64) (*models.NeighborResult, error) {
	m.record("Neighbors")
	return m.neighbors(ctx, schema, id)
}

func (m *mockGrapher) Aggregate(ctx context.Context, schema *models.SchemaDescriptor, req models.AggregateRequest) (*models.AggregateResult, error) {
	m.record("Aggregate")
	return m.aggregate(ctx, schema, req)
}

func (m *mockGrapher) Estimate(ctx context.Context, schema *models.SchemaDescriptor, req models.EstimateRequest) (*models.EstimateResult, *models.GuardResult, error) {
	m.record("Estimate")
	return m.estimate(ctx, schema, req)
}

func (m *mockGrapher) ShortestPath(ctx context.Context, schema *models.SchemaDescriptor, req models.PathRequest) (*models.PathResult, error) {
	m.record("ShortestPath")
	return m.shortestPath(ctx, schema, req)
}

func (m *mockGrapher) AllShortestPaths(ctx context.Context, schema *models.SchemaDescriptor, req models.PathRequest) (*models.PathsResult, error) {
	m.record("AllShortestPaths")
	return m.allShortestPaths(ctx, schema, req)
}

func (m *mockGrapher) Centrality(ctx context.Context, schema *models.SchemaDescriptor, req models.CentralityRequest) (*models.CentralityResult, error) {
	m.record("Centrality")
	return m.centrality(ctx, schema, req)
}

func (m *mockGrapher) Components(ctx context.Context, schema *models.SchemaDescriptor, req models.ComponentsRequest) (*models.ComponentsResult, error) {
	m.record("Components")
	return m.components(ctx, schema, req)
}

func (m *mockGrapher) Resilience(ctx context.Context, schema *models.SchemaDescriptor, req models.ResilienceRequest) (*models.ResilienceResult, error) {
	m.record("Resilience")
	return m.resilience(ctx, schema, req)
}

func (m *mockGrapher) Limits() models.Limits {
	if m.limits != nil {
		return m.limits()
	}
	return models.DefaultLimits()
}

// mockResolver serves a fixed set of schemas.
type mockResolver struct {
	schemas map[string]models.SchemaDescriptor
}

func (m *mockResolver) Get(name string) (models.SchemaDescriptor, error) {
	desc, ok := m.schemas[name]
	if !ok {
		return models.SchemaDescriptor{}, models.ErrSchemaNotFound
	}
	return desc, nil
}

func (m *mockResolver) Names() []string {
	names := make([]string, 0, len(m.schemas))
	for name := range m.schemas {
		names = append(names, name)
	}
	return names
}
