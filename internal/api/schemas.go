package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/relgraphio/relgraph/internal/models"
)

// SchemaHandler serves schema registry endpoints.
type SchemaHandler struct {
	svc SchemaService
	log *logrus.Logger
}

// NewSchemaHandler creates a SchemaHandler with the given service and logger.
func NewSchemaHandler(svc SchemaService, log *logrus.Logger) *SchemaHandler {
	return &SchemaHandler{svc: svc, log: log}
}

// schemasResponse lists registered schemas plus the effective limits that
// apply to every operation against them.
type schemasResponse struct {
	Schemas []string      `json:"schemas"`
	Limits  models.Limits `json:"limits"`
}

// List handles GET /api/v1/schemas.
func (h *SchemaHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, schemasResponse{
		Schemas: h.svc.Schemas(),
		Limits:  h.svc.Limits(),
	})
}

// Get handles GET /api/v1/schemas/:schema.
func (h *SchemaHandler) Get(c *gin.Context) {
	desc, err := h.svc.Schema(c.Param("schema"))
	if err != nil {
		respondEngineError(c, h.log, err, "getting schema")

		return
	}

	c.JSON(http.StatusOK, desc)
}
