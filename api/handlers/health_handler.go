package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/mediabatch/internal/domain"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	transcoder domain.Transcoder
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(transcoder domain.Transcoder) *HealthHandler {
	return &HealthHandler{transcoder: transcoder}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status              string `json:"status"`
	Version             string `json:"version"`
	TranscoderAvailable bool   `json:"transcoder_available"`
	TranscoderVersion   string `json:"transcoder_version,omitempty"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:  "ok",
		Version: domain.Version,
	}

	if version, err := h.transcoder.Version(c.Request.Context()); err == nil {
		response.TranscoderAvailable = true
		response.TranscoderVersion = version
	}

	c.JSON(http.StatusOK, response)
}
