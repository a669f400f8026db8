package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/relgraphio/relgraph/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testResolver() *mockResolver {
	return &mockResolver{schemas: map[string]models.SchemaDescriptor{
		"default": {
			Name:         "default",
			NodeTable:    "graph_nodes",
			NodeIDColumn: "id",
			EdgeTable:    "graph_edges",
			FromColumn:   "from_id",
			ToColumn:     "to_id",
		},
	}}
}

func TestTraverse_ResolvesSchema(t *testing.T) {
	var gotSchema string

	eng := &mockGrapher{
		traverse: func(_ context.Context, schema *models.SchemaDescriptor, _ models.TraverseRequest) (*models.TraverseResult, error) {
			gotSchema = schema.NodeTable
			return &models.TraverseResult{Termination: models.TerminationExhausted}, nil
		},
	}

	svc := NewGraphService(eng, testResolver(), testLogger())

	res, err := svc.Traverse(context.Background(), "default", models.TraverseRequest{Start: 1, Direction: models.DirectionOutbound})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotSchema != "graph_nodes" {
		t.Errorf("expected resolved schema graph_nodes, got %q", gotSchema)
	}

	if res.Termination != models.TerminationExhausted {
		t.Errorf("unexpected termination: %s", res.Termination)
	}
}

func TestTraverse_UnknownSchema(t *testing.T) {
	eng := &mockGrapher{
		traverse: func(_ context.Context, _ *models.SchemaDescriptor, _ models.TraverseRequest) (*models.TraverseResult, error) {
			t.Fatal("engine must not be called for unknown schema")
			return nil, nil
		},
	}

	svc := NewGraphService(eng, testResolver(), testLogger())

	_, err := svc.Traverse(context.Background(), "missing", models.TraverseRequest{Start: 1, Direction: models.DirectionOutbound})
	if !errors.Is(err, models.ErrSchemaNotFound) {
		t.Fatalf("expected ErrSchemaNotFound, got %v", err)
	}

	if len(eng.calls) != 0 {
		t.Errorf("expected no engine calls, got %v", eng.calls)
	}
}

func TestTraverse_PassesThroughLimitError(t *testing.T) {
	want := &models.LimitExceededError{Limit: "nodes", Count: 11000, Cap: 10000}

	eng := &mockGrapher{
		traverse: func(_ context.Context, _ *models.SchemaDescriptor, _ models.TraverseRequest) (*models.TraverseResult, error) {
			return nil, want
		},
	}

	svc := NewGraphService(eng, testResolver(), testLogger())

	_, err := svc.Traverse(context.Background(), "default", models.TraverseRequest{Start: 1, Direction: models.DirectionOutbound})
	if !models.IsLimitExceeded(err) {
		t.Fatalf("expected limit exceeded error, got %v", err)
	}
}

func TestEstimate_ReturnsGuardResult(t *testing.T) {
	eng := &mockGrapher{
		estimate: func(_ context.Context, _ *models.SchemaDescriptor, _ models.EstimateRequest) (*models.EstimateResult, *models.GuardResult, error) {
			return &models.EstimateResult{EstimatedNodes: 420},
				&models.GuardResult{Decision: models.GuardProceed}, nil
		},
	}

	svc := NewGraphService(eng, testResolver(), testLogger())

	est, guard, err := svc.Estimate(context.Background(), "default", models.EstimateRequest{Start: 1, Direction: models.DirectionOutbound})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if est.EstimatedNodes != 420 {
		t.Errorf("expected estimate 420, got %d", est.EstimatedNodes)
	}

	if guard.Decision != models.GuardProceed {
		t.Errorf("expected proceed decision, got %s", guard.Decision)
	}
}

func TestShortestPath_NoPathIsNotAnError(t *testing.T) {
	eng := &mockGrapher{
		shortestPath: func(_ context.Context, _ *models.SchemaDescriptor, _ models.PathRequest) (*models.PathResult, error) {
			return &models.PathResult{Found: false}, nil
		},
	}

	svc := NewGraphService(eng, testResolver(), testLogger())

	res, err := svc.ShortestPath(context.Background(), "default", models.PathRequest{Start: 1, End: 99})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Found {
		t.Error("expected Found=false for unreachable destination")
	}
}

func TestSchemas_ListsRegisteredNames(t *testing.T) {
	svc := NewGraphService(&mockGrapher{}, testResolver(), testLogger())

	names := svc.Schemas()
	if len(names) != 1 || names[0] != "default" {
		t.Errorf("expected [default], got %v", names)
	}
}
