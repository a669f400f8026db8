package api_test

import (
	"context"

	"github.com/relgraphio/relgraph/internal/models"
)

// mockGraphService returns configured responses for GraphHandler tests.
type mockGraphService struct {
	traverseFn  func(ctx context.Context, schema string, req models.TraverseRequest) (*models.TraverseResult, error)
	neighborsFn func(ctx context.Context, schema string, id int64) (*models.NeighborResult, error)
	aggregateFn func(ctx context.Context, schema string, req models.AggregateRequest) (*models.AggregateResult, error)
	estimateFn  func(ctx context.Context, schema string, req models.EstimateRequest) (*models.EstimateResult, *models.GuardResult, error)
}

func (m *mockGraphService) Traverse(ctx context.Context, schema string, req models.TraverseRequest) (*models.TraverseResult, error) {
	return m.traverseFn(ctx, schema, req)
}

func (m *mockGraphService) Neighbors(ctx context.Context, schema string, id int64) (*models.NeighborResult, error) {
	return m.neighborsFn(ctx, schema, id)
}

func (m *mockGraphService) Aggregate(ctx context.Context, schema string, req models.AggregateRequest) (*models.AggregateResult, error) {
	return m.aggregateFn(ctx, schema, req)
}

func (m *mockGraphService) Estimate(ctx context.Context, schema string, req models.EstimateRequest) (*models.EstimateResult, *models.GuardResult, error) {
	return m.estimateFn(ctx, schema, req)
}

// mockPathService returns configured responses for PathHandler tests.
type mockPathService struct {
	pathFn  func(ctx context.Context, schema string, req models.PathRequest) (*models.PathResult, error)
	pathsFn func(ctx context.Context, schema string, req models.PathRequest) (*models.PathsResult, error)
}

func (m *mockPathService) ShortestPath(ctx context.Context, schema string, req models.PathRequest) (*models.PathResult, error) {
	return m.pathFn(ctx, schema, req)
}

func (m *mockPathService) AllShortestPaths(ctx context.Context, schema string, req models.PathRequest) (*models.PathsResult, error) {
	return m.pathsFn(ctx, schema, req)
}

// mockAnalyzeService returns configured responses for AnalyzeHandler tests.
type mockAnalyzeService struct {
	centralityFn func(ctx context.Context, schema string, req models.CentralityRequest) (*models.CentralityResult, error)
	componentsFn func(ctx context.Context, schema string, req models.ComponentsRequest) (*models.ComponentsResult, error)
	resilienceFn func(ctx context.Context, schema string, req models.ResilienceRequest) (*models.ResilienceResult, error)
}

func (m *mockAnalyzeService) Centrality(ctx context.Context, schema string, req models.CentralityRequest) (*models.CentralityResult, error) {
	return m.centralityFn(ctx, schema, req)
}

func (m *mockAnalyzeService) Components(ctx context.Context, schema string, req models.ComponentsRequest) (*models.ComponentsResult, error) {
	return m.componentsFn(ctx, schema, req)
}

func (m *mockAnalyzeService) Resilience(ctx context.Context, schema string, req models.ResilienceRequest) (*models.ResilienceResult, error) {
	return m.resilienceFn(ctx, schema, req)
}

// mockSchemaService serves a fixed registry for SchemaHandler tests.
type mockSchemaService struct {
	schemas map[string]models.SchemaDescriptor
}

func (m *mockSchemaService) Schemas() []string {
	names := make([]string, 0, len(m.schemas))
	for name := range m.schemas {
		names = append(names, name)
	}

	return names
}

func (m *mockSchemaService) Schema(name string) (models.SchemaDescriptor, error) {
	desc, ok := m.schemas[name]
	if !ok {
		return models.SchemaDescriptor{}, models.ErrSchemaNotFound
	}

	return desc, nil
}

func (m *mockSchemaService) Limits() models.Limits {
	return models.DefaultLimits()
}
