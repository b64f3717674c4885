package handler

import (
	"github.com/gin-gonic/gin"

	"vocalis/internal/schema"
)

// SchemaHandler exposes the document-type catalog.
type SchemaHandler struct {
	registry *schema.Registry
}

// NewSchemaHandler creates a new SchemaHandler.
func NewSchemaHandler(registry *schema.Registry) *SchemaHandler {
	return &SchemaHandler{registry: registry}
}

// List handles GET /api/v1/document-types
// @Summary List supported document types
// @Description Each schema lists its fields with label, importance tier and format hint
// @Tags document-types
// @Produce json
// @Success 200 {object} Response{data=[]domain.DocumentSchema} "Document types"
// @Security BearerAuth
// @Router /document-types [get]
func (h *SchemaHandler) List(c *gin.Context) {
	RespondOK(c, h.registry.All())
}
