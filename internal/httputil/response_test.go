package httputil_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/relgraphio/relgraph/internal/httputil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError_EnvelopeWithRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "rid-123")

	httputil.RespondError(c, http.StatusBadRequest, "validation_error", "bad start node")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp httputil.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}

	if resp.Code != "validation_error" || resp.Message != "bad start node" || resp.RequestID != "rid-123" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestRespondError_OmitsMissingRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	httputil.RespondError(c, http.StatusNotFound, "not_found", "schema not found")

	var raw map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}

	if _, present := raw["request_id"]; present {
		t.Fatalf("request_id must be omitted when unset, got %v", raw)
	}
}
