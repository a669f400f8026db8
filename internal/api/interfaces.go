package api

import (
	"context"

	"github.com/relgraphio/relgraph/internal/models"
)

// GraphService defines traversal and aggregation operations used by GraphHandler.
type GraphService interface {
	Traverse(ctx context.Context, schema string, req models.TraverseRequest) (*models.TraverseResult, error)
	Neighbors(ctx context.Context, schema string, id int64) (*models.NeighborResult, error)
	Aggregate(ctx context.Context, schema string, req models.AggregateRequest) (*models.AggregateResult, error)
	Estimate(ctx context.Context, schema string, req models.EstimateRequest) (*models.EstimateResult, *models.GuardResult, error)
}

// PathService defines shortest-path operations used by PathHandler.
type PathService interface {
	ShortestPath(ctx context.Context, schema string, req models.PathRequest) (*models.PathResult, error)
	AllShortestPaths(ctx context.Context, schema string, req models.PathRequest) (*models.PathsResult, error)
}

// AnalyzeService defines network analysis operations used by AnalyzeHandler.
type AnalyzeService interface {
	Centrality(ctx context.Context, schema string, req models.CentralityRequest) (*models.CentralityResult, error)
	Components(ctx context.Context, schema string, req models.ComponentsRequest) (*models.ComponentsResult, error)
	Resilience(ctx context.Context, schema string, req models.ResilienceRequest) (*models.ResilienceResult, error)
}

// SchemaService exposes the registered graph schemas used by SchemaHandler.
type SchemaService interface {
	Schemas() []string
	Schema(name string) (models.SchemaDescriptor, error)
	Limits() models.Limits
}
