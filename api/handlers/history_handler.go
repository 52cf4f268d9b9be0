package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/mediabatch/internal/domain"
)

// HistoryHandler exposes batch history and statistics
type HistoryHandler struct {
	repo         domain.BatchRepository
	historyLimit int
	logger       *zap.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(repo domain.BatchRepository, historyLimit int, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		repo:         repo,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// ListBatches handles GET /api/v1/batches
func (h *HistoryHandler) ListBatches(c *gin.Context) {
	limit := h.historyLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= h.historyLimit {
			limit = n
		}
	}

	batches, err := h.repo.FindRecentBatches(limit)
	if err != nil {
		h.logger.Error("Failed to list batches", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, batches)
}

// GetBatch handles GET /api/v1/batches/:id
func (h *HistoryHandler) GetBatch(c *gin.Context) {
	batch, err := h.repo.FindBatchByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
		return
	}

	c.JSON(http.StatusOK, batch)
}

// GetStats handles GET /api/v1/stats
func (h *HistoryHandler) GetStats(c *gin.Context) {
	stats, err := h.repo.GetStats()
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
