package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/mediabatch/internal/domain"
)

// Processor runs one batch submission
type Processor interface {
	ProcessBatch(ctx context.Context, links string, format domain.Format) *domain.BatchResult
}

// BatchHandler handles batch submission requests
type BatchHandler struct {
	processor Processor
	logger    *zap.Logger
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(processor Processor, logger *zap.Logger) *BatchHandler {
	return &BatchHandler{
		processor: processor,
		logger:    logger,
	}
}

// ProcessRequest represents a batch submission. Links is a single
// semicolon-delimited string; format defaults to audio when missing
// or unrecognized.
type ProcessRequest struct {
	Links  string `json:"links"`
	Format string `json:"format"`
}

// Process handles POST /process
func (h *BatchHandler) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	format := domain.ParseFormat(req.Format)

	result := h.processor.ProcessBatch(c.Request.Context(), req.Links, format)

	h.logger.Info("Batch processed",
		zap.String("batch_id", result.BatchID),
		zap.Int("total", result.Total),
		zap.Int("succeeded", result.Succeeded),
		zap.String("format", string(result.FormatRequested)))

	c.JSON(http.StatusOK, result)
}
