// Package service provides business logic between API handlers and the
// traversal engine: schema resolution, logging, and metrics.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/relgraphio/relgraph/internal/metrics"
	"github.com/relgraphio/relgraph/internal/models"
)

// Grapher is the engine interface GraphService depends on.
type Grapher interface {
	Traverse(ctx context.Context, schema *models.SchemaDescriptor, req models.TraverseRequest) (*models.TraverseResult, error)
	Neighbors(ctx context.Context, schema *models.SchemaDescriptor, id int64) (*models.NeighborResult, error)
	Aggregate(ctx context.Context, schema *models.SchemaDescriptor, req models.AggregateRequest) (*models.AggregateResult, error)
	Estimate(ctx context.Context, schema *models.SchemaDescriptor, req models.EstimateRequest) (*models.EstimateResult, *models.GuardResult, error)
	ShortestPath(ctx context.Context, schema *models.SchemaDescriptor, req models.PathRequest) (*models.PathResult, error)
	AllShortestPaths(ctx context.Context, schema *models.SchemaDescriptor, req models.PathRequest) (*models.PathsResult, error)
	Centrality(ctx context.Context, schema *models.SchemaDescriptor, req models.CentralityRequest) (*models.CentralityResult, error)
	Components(ctx context.Context, schema *models.SchemaDescriptor, req models.ComponentsRequest) (*models.ComponentsResult, error)
	Resilience(ctx context.Context, schema *models.SchemaDescriptor, req models.ResilienceRequest) (*models.ResilienceResult, error)
	Limits() models.Limits
}

// SchemaResolver maps schema names to table descriptors.
type SchemaResolver interface {
	Get(name string) (models.SchemaDescriptor, error)
	Names() []string
}

// GraphService wraps the engine with schema lookup, structured logging,
// and Prometheus instrumentation.
type GraphService struct {
	engine  Grapher
	schemas SchemaResolver
	log     *logrus.Logger
}

// NewGraphService creates a GraphService.
func NewGraphService(engine Grapher, schemas SchemaResolver, log *logrus.Logger) *GraphService {
	return &GraphService{engine: engine, schemas: schemas, log: log}
}

// Schemas returns the names of all registered graph schemas.
func (s *GraphService) Schemas() []string {
	return s.schemas.Names()
}

// Schema returns the descriptor for a registered schema.
func (s *GraphService) Schema(name string) (models.SchemaDescriptor, error) {
	return s.schemas.Get(name)
}

// Limits exposes the engine's effective safety limits.
func (s *GraphService) Limits() models.Limits {
	return s.engine.Limits()
}

// Traverse runs a bounded breadth-first traversal.
func (s *GraphService) Traverse(ctx context.Context, schemaName string, req models.TraverseRequest) (*models.TraverseResult, error) {
	schema, err := s.schemas.Get(schemaName)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	res, err := s.engine.Traverse(ctx, &schema, req)
	if err != nil {
		s.observeFailure("traverse", err)

		return nil, err
	}

	metrics.FetchRoundTrips.WithLabelValues("traverse").Observe(float64(res.FetchCalls))
	metrics.TraversalNodes.WithLabelValues("traverse").Observe(float64(len(res.Nodes)))

	s.log.WithFields(logrus.Fields{
		"schema":      schemaName,
		"start":       req.Start,
		"direction":   req.Direction,
		"depth":       res.DepthReached,
		"nodes":       len(res.Nodes),
		"fetch_calls": res.FetchCalls,
		"termination": res.Termination,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("traversal completed")

	return res, nil
}

// Neighbors returns the direct neighborhood of a node.
func (s *GraphService) Neighbors(ctx context.Context, schemaName string, id int64) (*models.NeighborResult, error) {
	schema, err := s.schemas.Get(schemaName)
	if err != nil {
		return nil, err
	}

	res, err := s.engine.Neighbors(ctx, &schema, id)
	if err != nil {
		s.observeFailure("neighbors", err)

		return nil, err
	}

	return res, nil
}

// Aggregate rolls up multiplied quantities along every path from the root.
func (s *GraphService) Aggregate(ctx context.Context, schemaName string, req models.AggregateRequest) (*models.AggregateResult, error) {
	schema, err := s.schemas.Get(schemaName)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	res, err := s.engine.Aggregate(ctx, &schema, req)
	if err != nil {
		s.observeFailure("aggregate", err)

		return nil, err
	}

	metrics.FetchRoundTrips.WithLabelValues("aggregate").Observe(float64(res.FetchCalls))
	metrics.TraversalNodes.WithLabelValues("aggregate").Observe(float64(len(res.Nodes)))

	s.log.WithFields(logrus.Fields{
		"schema":      schemaName,
		"start":       req.Start,
		"nodes":       len(res.Nodes),
		"fetch_calls": res.FetchCalls,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("aggregation completed")

	return res, nil
}

// Estimate samples the neighborhood and extrapolates full traversal size.
func (s *GraphService) Estimate(ctx context.Context, schemaName string, req models.EstimateRequest) (*models.EstimateResult, *models.GuardResult, error) {
	schema, err := s.schemas.Get(schemaName)
	if err != nil {
		return nil, nil, err
	}

	est, guard, err := s.engine.Estimate(ctx, &schema, req)
	if err != nil {
		s.observeFailure("estimate", err)

		return nil, nil, err
	}

	if guard != nil {
		metrics.GuardDecisions.WithLabelValues(string(guard.Decision)).Inc()
	}

	return est, guard, nil
}

// ShortestPath finds one lowest-cost path between two nodes.
func (s *GraphService) ShortestPath(ctx context.Context, schemaName string, req models.PathRequest) (*models.PathResult, error) {
	schema, err := s.schemas.Get(schemaName)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	res, err := s.engine.ShortestPath(ctx, &schema, req)
	if err != nil {
		s.observeFailure("path", err)

		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"schema":      schemaName,
		"from":        req.Start,
		"to":          req.End,
		"found":       res.Found,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("shortest path computed")

	return res, nil
}

// AllShortestPaths enumerates every tied lowest-cost path between two nodes.
func (s *GraphService) AllShortestPaths(ctx context.Context, schemaName string, req models.PathRequest) (*models.PathsResult, error) {
	schema, err := s.schemas.Get(schemaName)
	if err != nil {
		return nil, err
	}

	res, err := s.engine.AllShortestPaths(ctx, &schema, req)
	if err != nil {
		s.observeFailure("paths", err)

		return nil, err
	}

	return res, nil
}

// Centrality scores nodes by the requested centrality measure.
func (s *GraphService) Centrality(ctx context.Context, schemaName string, req models.CentralityRequest) (*models.CentralityResult, error) {
	schema, err := s.schemas.Get(schemaName)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	res, err := s.engine.Centrality(ctx, &schema, req)
	if err != nil {
		s.observeFailure("centrality", err)

		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"schema":      schemaName,
		"kind":        req.Kind,
		"nodes":       res.NodeCount,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("centrality computed")

	return res, nil
}

// Components finds connected components in the graph.
func (s *GraphService) Components(ctx context.Context, schemaName string, req models.ComponentsRequest) (*models.ComponentsResult, error) {
	schema, err := s.schemas.Get(schemaName)
	if err != nil {
		return nil, err
	}

	res, err := s.engine.Components(ctx, &schema, req)
	if err != nil {
		s.observeFailure("components", err)

		return nil, err
	}

	return res, nil
}

// Resilience simulates node removal and reports connectivity damage.
func (s *GraphService) Resilience(ctx context.Context, schemaName string, req models.ResilienceRequest) (*models.ResilienceResult, error) {
	schema, err := s.schemas.Get(schemaName)
	if err != nil {
		return nil, err
	}

	res, err := s.engine.Resilience(ctx, &schema, req)
	if err != nil {
		s.observeFailure("resilience", err)

		return nil, err
	}

	return res, nil
}

// observeFailure counts limit-related aborts per operation; other errors
// are surfaced by the HTTP error middleware.
func (s *GraphService) observeFailure(op string, err error) {
	switch {
	case models.IsLimitExceeded(err):
		var lim *models.LimitExceededError
		if errors.As(err, &lim) {
			metrics.LimitAborts.WithLabelValues(lim.Limit).Inc()
		}
	case models.IsSubgraphTooLarge(err):
		metrics.LimitAborts.WithLabelValues("subgraph").Inc()
		metrics.GuardDecisions.WithLabelValues(string(models.GuardAbort)).Inc()
	}

	s.log.WithError(err).WithField("operation", op).Debug("graph operation failed")
}
