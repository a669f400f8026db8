package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/relgraphio/relgraph/internal/models"
)

// PathHandler serves shortest-path endpoints.
type PathHandler struct {
	svc PathService
	log *logrus.Logger
}

// NewPathHandler creates a PathHandler with the given service and logger.
func NewPathHandler(svc PathService, log *logrus.Logger) *PathHandler {
	return &PathHandler{svc: svc, log: log}
}

// Path handles POST /api/v1/graph/:schema/path.
func (h *PathHandler) Path(c *gin.Context) {
	var req models.PathRequest
	if !bindRequest(c, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	result, err := h.svc.ShortestPath(c.Request.Context(), c.Param("schema"), req)
	if err != nil {
		respondEngineError(c, h.log, err, "finding shortest path")

		return
	}

	c.JSON(http.StatusOK, result)
}

// Paths handles POST /api/v1/graph/:schema/paths.
func (h *PathHandler) Paths(c *gin.Context) {
	var req models.PathRequest
	if !bindRequest(c, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	result, err := h.svc.AllShortestPaths(c.Request.Context(), c.Param("schema"), req)
	if err != nil {
		respondEngineError(c, h.log, err, "enumerating shortest paths")

		return
	}

	c.JSON(http.StatusOK, result)
}
