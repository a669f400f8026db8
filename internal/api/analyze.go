package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/relgraphio/relgraph/internal/models"
)

// AnalyzeHandler serves whole-graph analysis endpoints.
type AnalyzeHandler struct {
	svc AnalyzeService
	log *logrus.Logger
}

// NewAnalyzeHandler creates an AnalyzeHandler with the given service and logger.
func NewAnalyzeHandler(svc AnalyzeService, log *logrus.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc, log: log}
}

// Centrality handles POST /api/v1/graph/:schema/centrality.
func (h *AnalyzeHandler) Centrality(c *gin.Context) {
	var req models.CentralityRequest
	if !bindRequest(c, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	result, err := h.svc.Centrality(c.Request.Context(), c.Param("schema"), req)
	if err != nil {
		respondEngineError(c, h.log, err, "computing centrality")

		return
	}

	c.JSON(http.StatusOK, result)
}

// Components handles POST /api/v1/graph/:schema/components.
func (h *AnalyzeHandler) Components(c *gin.Context) {
	var req models.ComponentsRequest
	if !bindRequest(c, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	result, err := h.svc.Components(c.Request.Context(), c.Param("schema"), req)
	if err != nil {
		respondEngineError(c, h.log, err, "finding components")

		return
	}

	c.JSON(http.StatusOK, result)
}

// Resilience handles POST /api/v1/graph/:schema/resilience.
func (h *AnalyzeHandler) Resilience(c *gin.Context) {
	var req models.ResilienceRequest
	if !bindRequest(c, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	result, err := h.svc.Resilience(c.Request.Context(), c.Param("schema"), req)
	if err != nil {
		respondEngineError(c, h.log, err, "simulating node removal")

		return
	}

	c.JSON(http.StatusOK, result)
}
