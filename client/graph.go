package client

import (
	"context"
	"fmt"
	"net/url"
)

// GraphService handles traversal, estimation, path, and analysis operations.
type GraphService struct {
	c *Client
}

func schemaPath(schema, op string) string {
	return "/api/v1/graph/" + url.PathEscape(schema) + "/" + op
}

// Traverse performs a bounded BFS traversal from a start node.
func (s *GraphService) Traverse(ctx context.Context, schema string, req TraverseRequest) (*TraverseResult, error) {
	var resp TraverseResult
	if err := s.c.post(ctx, schemaPath(schema, "traverse"), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Neighbors returns nodes and edges directly connected to a node.
func (s *GraphService) Neighbors(ctx context.Context, schema string, id int64) (*NeighborResult, error) {
	var resp NeighborResult
	path := schemaPath(schema, fmt.Sprintf("neighbors/%d", id))
	if err := s.c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Aggregate rolls up multiplied quantities along every path from the root.
func (s *GraphService) Aggregate(ctx context.Context, schema string, req AggregateRequest) (*AggregateResult, error) {
	var resp AggregateResult
	if err := s.c.post(ctx, schemaPath(schema, "aggregate"), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Estimate samples the neighborhood and returns a size estimate plus the
// guard's verdict, without running the full traversal.
func (s *GraphService) Estimate(ctx context.Context, schema string, req EstimateRequest) (*EstimateResponse, error) {
	var resp EstimateResponse
	if err := s.c.post(ctx, schemaPath(schema, "estimate"), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Path finds one lowest-cost path between two nodes.
func (s *GraphService) Path(ctx context.Context, schema string, req PathRequest) (*PathResult, error) {
	var resp PathResult
	if err := s.c.post(ctx, schemaPath(schema, "path"), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Paths enumerates every tied lowest-cost path between two nodes.
func (s *GraphService) Paths(ctx context.Context, schema string, req PathRequest) (*PathsResult, error) {
	var resp PathsResult
	if err := s.c.post(ctx, schemaPath(schema, "paths"), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Centrality scores nodes by the requested centrality measure.
func (s *GraphService) Centrality(ctx context.Context, schema string, req CentralityRequest) (*CentralityResult, error) {
	var resp CentralityResult
	if err := s.c.post(ctx, schemaPath(schema, "centrality"), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Components finds weakly connected components.
func (s *GraphService) Components(ctx context.Context, schema string, req ComponentsRequest) (*ComponentsResult, error) {
	var resp ComponentsResult
	if err := s.c.post(ctx, schemaPath(schema, "components"), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Resilience simulates removing a node and reports connectivity damage.
func (s *GraphService) Resilience(ctx context.Context, schema string, req ResilienceRequest) (*ResilienceResult, error) {
	var resp ResilienceResult
	if err := s.c.post(ctx, schemaPath(schema, "resilience"), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
