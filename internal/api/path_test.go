package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/relgraphio/relgraph/internal/api"
	"github.com/relgraphio/relgraph/internal/models"
)

func TestPath_Found(t *testing.T) {
	t.Parallel()

	svc := &mockPathService{
		pathFn: func(_ context.Context, _ string, req models.PathRequest) (*models.PathResult, error) {
			return &models.PathResult{
				Found:       true,
				Path:        []int64{req.Start, 5, req.End},
				TotalWeight: 3,
				Hops:        2,
				Weighted:    req.Weighted,
			}, nil
		},
	}

	r := newTestRouter()
	h := api.NewPathHandler(svc, testLogger())
	r.POST("/graph/:schema/path", h.Path)

	w := doRequest(r, http.MethodPost, "/graph/parts/path", `{"start":1,"end":9,"weighted":true}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res models.PathResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if !res.Found || len(res.Path) != 3 {
		t.Errorf("unexpected path result: %+v", res)
	}
}

func TestPath_NotFoundIsOK(t *testing.T) {
	t.Parallel()

	svc := &mockPathService{
		pathFn: func(_ context.Context, _ string, _ models.PathRequest) (*models.PathResult, error) {
			return &models.PathResult{Found: false}, nil
		},
	}

	r := newTestRouter()
	h := api.NewPathHandler(svc, testLogger())
	r.POST("/graph/:schema/path", h.Path)

	w := doRequest(r, http.MethodPost, "/graph/parts/path", `{"start":1,"end":9}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for unreachable destination, got %d: %s", w.Code, w.Body.String())
	}

	var res models.PathResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if res.Found {
		t.Error("expected found=false")
	}
}

func TestPath_ExcludedEndpointRejected(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewPathHandler(&mockPathService{}, testLogger())
	r.POST("/graph/:schema/path", h.Path)

	w := doRequest(r, http.MethodPost, "/graph/parts/path", `{"start":1,"end":9,"excluded":[1]}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPaths_Truncated(t *testing.T) {
	t.Parallel()

	svc := &mockPathService{
		pathsFn: func(_ context.Context, _ string, _ models.PathRequest) (*models.PathsResult, error) {
			return &models.PathsResult{
				Found:       true,
				Paths:       [][]int64{{1, 2, 9}, {1, 3, 9}},
				TotalWeight: 2,
				Truncated:   true,
			}, nil
		},
	}

	r := newTestRouter()
	h := api.NewPathHandler(svc, testLogger())
	r.POST("/graph/:schema/paths", h.Paths)

	w := doRequest(r, http.MethodPost, "/graph/parts/paths", `{"start":1,"end":9,"max_results":2}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res models.PathsResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(res.Paths) != 2 || !res.Truncated {
		t.Errorf("unexpected paths result: %+v", res)
	}
}
