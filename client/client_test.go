package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestServer creates a test server that routes to the given handler map.
// Keys are "METHOD /path", values are handler funcs.
func newTestServer(t *testing.T, routes map[string]http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, handler := range routes {
		// Go 1.21's ServeMux has no "METHOD /path" pattern support; split
		// the pattern and enforce the method in a wrapper instead.
		method, path, ok := strings.Cut(pattern, " ")
		if !ok {
			t.Fatalf("invalid route pattern %q", pattern)
		}
		h := handler
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != method {
				http.NotFound(w, r)
				return
			}
			h(w, r)
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := New(srv.URL)
	return srv, c
}

func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func TestHealth(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/health": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, HealthResponse{Status: "ok", Version: "0.3.0", Schemas: 1})
		},
	})
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("got status %q, want ok", resp.Status)
	}
	if resp.Schemas != 1 {
		t.Errorf("got schemas %d, want 1", resp.Schemas)
	}
}

func TestSchemas(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/schemas": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, SchemasResponse{
				Schemas: []string{"default", "parts"},
				Limits:  Limits{MaxDepth: 5, MaxNodes: 10000},
			})
		},
	})
	resp, err := c.Schemas(context.Background())
	if err != nil {
		t.Fatalf("Schemas() error: %v", err)
	}
	if len(resp.Schemas) != 2 {
		t.Errorf("got %d schemas, want 2", len(resp.Schemas))
	}
	if resp.Limits.MaxDepth != 5 {
		t.Errorf("got max depth %d, want 5", resp.Limits.MaxDepth)
	}
}

func TestTraverse(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/graph/parts/traverse": func(w http.ResponseWriter, r *http.Request) {
			var req TraverseRequest
			json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
			if req.Start != 1 || req.MaxDepth != 2 {
				t.Errorf("unexpected request: %+v", req)
			}
			jsonResponse(w, 200, TraverseResult{
				Nodes:        []Node{{ID: 1}, {ID: 2}, {ID: 3}},
				DepthReached: 2,
				Termination:  "exhausted",
				FetchCalls:   2,
			})
		},
	})
	resp, err := c.Graph.Traverse(context.Background(), "parts", TraverseRequest{Start: 1, MaxDepth: 2})
	if err != nil {
		t.Fatalf("Traverse() error: %v", err)
	}
	if len(resp.Nodes) != 3 || resp.FetchCalls != 2 {
		t.Errorf("unexpected result: %+v", resp)
	}
}

func TestEstimate_GuardVerdict(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/graph/parts/estimate": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, EstimateResponse{
				Estimate: &EstimateResult{EstimatedNodes: 8400, TargetDepth: 5},
				Guard:    &GuardResult{Decision: "proceed", EstimatedNodes: 8400, NodeCap: 10000},
			})
		},
	})
	resp, err := c.Graph.Estimate(context.Background(), "parts", EstimateRequest{Start: 1})
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}
	if resp.Guard.Decision != "proceed" {
		t.Errorf("got decision %q, want proceed", resp.Guard.Decision)
	}
}

func TestPath_NotFound(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/graph/parts/path": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, PathResult{Found: false})
		},
	})
	resp, err := c.Graph.Path(context.Background(), "parts", PathRequest{Start: 1, End: 9})
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	if resp.Found {
		t.Error("expected found=false")
	}
}

func TestAPIError_TooLarge(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/graph/parts/traverse": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 422, map[string]any{
				"code":            "subgraph_too_large",
				"message":         "subgraph too large: estimated 50000 nodes exceeds cap 10000",
				"estimated_nodes": 50000,
				"node_cap":        10000,
				"suggestions":     []string{"reduce max_depth"},
			})
		},
	})
	_, err := c.Graph.Traverse(context.Background(), "parts", TraverseRequest{Start: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsTooLarge(err) {
		t.Errorf("expected IsTooLarge, got %v", err)
	}
	apiErr := err.(*APIError)
	if apiErr.EstimatedNodes != 50000 || len(apiErr.Suggestions) != 1 {
		t.Errorf("unexpected error payload: %+v", apiErr)
	}
}

func TestAPIError_NonJSONBody(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/health": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(500)
			w.Write([]byte("boom")) //nolint:errcheck
		},
	})
	_, err := c.Health(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.Code != "unknown" || apiErr.Message != "boom" {
		t.Errorf("unexpected error: %v", err)
	}
}
