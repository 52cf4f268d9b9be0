package api

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/mediabatch/api/handlers"
	"github.com/yourusername/mediabatch/api/middleware"
	"github.com/yourusername/mediabatch/internal/domain"
	"github.com/yourusername/mediabatch/web"
)

// SetupRouter sets up the HTTP router
func SetupRouter(
	processor handlers.Processor,
	repo domain.BatchRepository,
	transcoder domain.Transcoder,
	limiter *middleware.RateLimiter,
	config *domain.Config,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	// Embedded landing page
	router.SetHTMLTemplate(template.Must(template.ParseFS(web.GetTemplatesFS(), "*.html")))
	router.StaticFS("/static", http.FS(web.GetStaticFS()))

	router.GET("/", limiter.Default(), func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", nil)
	})

	// Batch submission. Submission enforces the shared and the
	// submission-specific budgets in one step so a rejection never
	// charges either.
	batchHandler := handlers.NewBatchHandler(processor, log)
	router.POST("/process", limiter.Submission(), batchHandler.Process)

	// Produced file fetch
	fileHandler := handlers.NewFileHandler(repo, config.Download.BaseDir, log)
	router.GET("/download/:name", limiter.Default(), fileHandler.Download)

	// Health endpoint
	healthHandler := handlers.NewHealthHandler(transcoder)
	router.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		historyHandler := handlers.NewHistoryHandler(repo, config.Download.HistoryLimit, log)
		v1.GET("/batches", historyHandler.ListBatches)
		v1.GET("/batches/:id", historyHandler.GetBatch)
		v1.GET("/stats", historyHandler.GetStats)
	}

	return router
}
