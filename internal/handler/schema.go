package handler

import (
	"net/http"

	"github.com/insightdeck/insightdeck/internal/models"
	"github.com/insightdeck/insightdeck/internal/schema"
)

// SchemaHandler exposes the static schema context so the UI can render
// table pickers and code labels.
type SchemaHandler struct {
	schema *schema.Context
}

func NewSchemaHandler(sc *schema.Context) *SchemaHandler {
	return &SchemaHandler{schema: sc}
}

// Schema handles GET /api/v1/schema.
func (h *SchemaHandler) Schema(w http.ResponseWriter, r *http.Request) {
	models.WriteJSON(w, http.StatusOK, h.schema)
}
