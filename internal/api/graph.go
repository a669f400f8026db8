package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/relgraphio/relgraph/internal/models"
)

// GraphHandler serves traversal, aggregation, and estimation endpoints.
type GraphHandler struct {
	svc GraphService
	log *logrus.Logger
}

// NewGraphHandler creates a GraphHandler with the given service and logger.
func NewGraphHandler(svc GraphService, log *logrus.Logger) *GraphHandler {
	return &GraphHandler{svc: svc, log: log}
}

// Traverse handles POST /api/v1/graph/:schema/traverse.
func (h *GraphHandler) Traverse(c *gin.Context) {
	var req models.TraverseRequest
	if !bindRequest(c, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	result, err := h.svc.Traverse(c.Request.Context(), c.Param("schema"), req)
	if err != nil {
		respondEngineError(c, h.log, err, "traversing graph")

		return
	}

	c.JSON(http.StatusOK, result)
}

// Neighbors handles GET /api/v1/graph/:schema/neighbors/:id.
func (h *GraphHandler) Neighbors(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "id must be an integer")

		return
	}

	result, err := h.svc.Neighbors(c.Request.Context(), c.Param("schema"), id)
	if err != nil {
		respondEngineError(c, h.log, err, "getting neighbors")

		return
	}

	c.JSON(http.StatusOK, result)
}

// Aggregate handles POST /api/v1/graph/:schema/aggregate.
func (h *GraphHandler) Aggregate(c *gin.Context) {
	var req models.AggregateRequest
	if !bindRequest(c, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	result, err := h.svc.Aggregate(c.Request.Context(), c.Param("schema"), req)
	if err != nil {
		respondEngineError(c, h.log, err, "aggregating quantities")

		return
	}

	c.JSON(http.StatusOK, result)
}

// estimateResponse pairs the size estimate with the guard's verdict.
type estimateResponse struct {
	Estimate *models.EstimateResult `json:"estimate"`
	Guard    *models.GuardResult    `json:"guard"`
}

// Estimate handles POST /api/v1/graph/:schema/estimate.
func (h *GraphHandler) Estimate(c *gin.Context) {
	var req models.EstimateRequest
	if !bindRequest(c, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	est, guard, err := h.svc.Estimate(c.Request.Context(), c.Param("schema"), req)
	if err != nil {
		respondEngineError(c, h.log, err, "estimating subgraph size")

		return
	}

	c.JSON(http.StatusOK, estimateResponse{Estimate: est, Guard: guard})
}
