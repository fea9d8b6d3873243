package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/newsnotes/internal/service"
)

// ExportHandler handles the article export endpoint
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// StreamArticles handles GET /export/articles?format=...
// Streams every article in the import format directly to the response
func (h *ExportHandler) StreamArticles(c *gin.Context) {
	format := c.DefaultQuery("format", "ndjson")
	if format != "ndjson" && format != "json" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: ndjson, json"})
		return
	}

	h.log.Info().Str("format", format).Msg("Starting streaming export")

	if err := h.services.Export.StreamArticles(c.Request.Context(), c.Writer, format); err != nil {
		// Can't return error JSON after streaming has started
		h.log.Error().Err(err).Str("format", format).Msg("Export failed")
		return
	}
}
