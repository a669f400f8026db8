package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/relgraphio/relgraph/internal/httputil"
	"github.com/relgraphio/relgraph/internal/metrics"
	"github.com/relgraphio/relgraph/internal/models"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeNotFound        = "not_found"
	ErrCodeInternalError   = "internal_error"
	ErrCodeRateLimited     = "rate_limited"
	ErrCodeValidationError = "validation_error"
	ErrCodeLimitExceeded   = "limit_exceeded"
	ErrCodeTooLarge        = "subgraph_too_large"
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// respondEngineError maps engine and store errors onto HTTP responses.
// Limit hits are 422 (the request was well formed, the graph is too big);
// guard aborts additionally carry suggestions.
func respondEngineError(c *gin.Context, log *logrus.Logger, err error, op string) {
	var invalid *models.InvalidParameterError
	if errors.As(err, &invalid) {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, invalid.Error())

		return
	}

	if errors.Is(err, models.ErrSchemaNotFound) {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "schema not found")

		return
	}

	if errors.Is(err, models.ErrNodeNotFound) {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "node not found")

		return
	}

	var tooLarge *models.SubgraphTooLargeError
	if errors.As(err, &tooLarge) {
		metrics.ErrorsTotal.WithLabelValues(ErrCodeTooLarge).Inc()
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"code":            ErrCodeTooLarge,
			"message":         tooLarge.Error(),
			"estimated_nodes": tooLarge.EstimatedNodes,
			"node_cap":        tooLarge.NodeCap,
			"suggestions":     tooLarge.Suggestions,
		})

		return
	}

	if models.IsLimitExceeded(err) {
		respondError(c, http.StatusUnprocessableEntity, ErrCodeLimitExceeded, err.Error())

		return
	}

	log.WithError(err).Error(op)
	respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
}
