package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/mediabatch/api"
	"github.com/yourusername/mediabatch/api/middleware"
	"github.com/yourusername/mediabatch/internal/app"
	"github.com/yourusername/mediabatch/internal/domain"
	"github.com/yourusername/mediabatch/internal/infrastructure"
	"github.com/yourusername/mediabatch/pkg/logger"
)

var configPath = flag.String("config", "", "Path to config file")

func main() {
	flag.Parse()

	config, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting media batch server",
		zap.String("version", domain.Version),
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port),
		zap.String("download_dir", config.Download.BaseDir))

	// The download folder lives for the whole process; files in it are
	// never purged by the server
	if err := os.MkdirAll(config.Download.BaseDir, 0755); err != nil {
		log.Fatal("Failed to create download folder", zap.Error(err))
	}
	if err := os.MkdirAll(filepath.Dir(config.Download.DatabasePath), 0755); err != nil {
		log.Fatal("Failed to create database directory", zap.Error(err))
	}

	repo, err := infrastructure.NewSQLiteBatchRepository(config.Download.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	transcoder := infrastructure.NewFFmpegTranscoder(&config.Transcoder)
	extractor := infrastructure.NewYTDLPExtractor(&config.Extractor, &config.Transcoder, log)

	processor := app.NewBatchProcessor(extractor, transcoder, repo, config.Download.BaseDir, log)

	limiter := middleware.NewRateLimiter(config.RateLimit)
	defer limiter.Stop()

	router := api.SetupRouter(processor, repo, transcoder, limiter, config, log)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
