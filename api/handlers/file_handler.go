package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/mediabatch/internal/domain"
)

// FileHandler streams produced files back to the caller. Only names
// present in the produced-file manifest are served; everything else,
// including traversal attempts, is a 404.
type FileHandler struct {
	repo    domain.BatchRepository
	baseDir string
	logger  *zap.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(repo domain.BatchRepository, baseDir string, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		repo:    repo,
		baseDir: baseDir,
		logger:  logger,
	}
}

// Download handles GET /download/:name
func (h *FileHandler) Download(c *gin.Context) {
	name := c.Param("name")
	if !validName(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	file, err := h.repo.FindFileByName(name)
	if err != nil {
		h.logger.Error("Manifest lookup failed", zap.String("name", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if file == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	fullPath := filepath.Join(h.baseDir, file.Path)
	if !pathWithin(h.baseDir, fullPath) {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	if _, err := os.Stat(fullPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	c.FileAttachment(fullPath, name)
}

// validName rejects empty names, path separators and traversal
// sequences before any lookup happens
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	return true
}

// pathWithin reports whether path stays inside dir after cleaning
func pathWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
