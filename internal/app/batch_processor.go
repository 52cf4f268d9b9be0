package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/mediabatch/internal/domain"
)

// UntitledPlaceholder is reported when the extractor returns no title
const UntitledPlaceholder = "Untitled"

// BatchProcessor turns one delimited submission into an ordered
// sequence of per-item results. Items are processed sequentially; a
// failed item never aborts the rest of the batch.
type BatchProcessor struct {
	extractor  domain.Extractor
	transcoder domain.Transcoder
	repo       domain.BatchRepository
	baseDir    string
	logger     *zap.Logger
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(
	extractor domain.Extractor,
	transcoder domain.Transcoder,
	repo domain.BatchRepository,
	baseDir string,
	logger *zap.Logger,
) *BatchProcessor {
	return &BatchProcessor{
		extractor:  extractor,
		transcoder: transcoder,
		repo:       repo,
		baseDir:    baseDir,
		logger:     logger,
	}
}

// SplitLinks splits a semicolon-delimited submission into an ordered
// list of URLs. Segments are trimmed and empty segments dropped.
func SplitLinks(links string) []string {
	segments := strings.Split(links, ";")
	urls := make([]string, 0, len(segments))
	for _, segment := range segments {
		if url := strings.TrimSpace(segment); url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}

// ProcessBatch processes every URL in the submission in input order.
// The transcoder is probed once per call; probe failure only selects
// the no-transcode configuration and is never surfaced as an error.
func (p *BatchProcessor) ProcessBatch(ctx context.Context, links string, format domain.Format) *domain.BatchResult {
	urls := SplitLinks(links)
	transcoderAvailable := p.transcoder.Available(ctx)

	batch := domain.NewBatch(format)
	result := &domain.BatchResult{
		BatchID:             batch.ID,
		Total:               len(urls),
		FormatRequested:     format,
		TranscoderAvailable: transcoderAvailable,
		Results:             make([]domain.ItemResult, 0, len(urls)),
	}

	// Each batch writes into its own subdirectory so identically named
	// outputs from concurrent batches cannot overwrite one another.
	outputDir := filepath.Join(p.baseDir, batch.ID)
	if len(urls) > 0 {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			p.logger.Error("Failed to create batch directory",
				zap.String("batch_id", batch.ID),
				zap.Error(err))
		}
	}

	for _, url := range urls {
		item := p.processItem(ctx, url, format, transcoderAvailable, outputDir)
		if item.Success {
			result.Succeeded++
		}
		result.Results = append(result.Results, item)
	}

	p.recordBatch(batch, result)
	return result
}

// processItem runs one extraction and converts the outcome to data.
// All extraction errors are captured in the item's message.
func (p *BatchProcessor) processItem(
	ctx context.Context,
	url string,
	format domain.Format,
	transcoderAvailable bool,
	outputDir string,
) domain.ItemResult {
	opts := domain.ExtractOptions{
		Format:         format,
		TranscodeAudio: format == domain.FormatAudio && transcoderAvailable,
		OutputDir:      outputDir,
	}

	extracted, err := p.extractor.Extract(ctx, url, opts)
	if err != nil {
		p.logger.Warn("Extraction failed",
			zap.String("url", url),
			zap.Error(err))
		return domain.ItemResult{
			Success: false,
			URL:     url,
			Format:  format.Label(),
			Message: fmt.Sprintf("error: %v", err),
		}
	}

	// The extractor predicts the filename before post-processing runs,
	// so the transcoded output carries a different extension.
	fileName := filepath.Base(extracted.Filename)
	if opts.TranscodeAudio {
		fileName = NormalizeAudioExt(fileName, p.transcoder.OutputExt())
	}

	title := extracted.Title
	if title == "" {
		title = UntitledPlaceholder
	}

	p.logger.Info("Item downloaded",
		zap.String("url", url),
		zap.String("file", fileName),
		zap.String("format", string(format)))

	return domain.ItemResult{
		Success: true,
		Title:   title,
		URL:     url,
		Format:  format.Label(),
		File:    fileName,
		Message: fmt.Sprintf("downloaded as %s", format.Label()),
	}
}

// recordBatch persists the batch, its items and the manifest entries
// for produced files. Persistence failures are logged, not surfaced:
// the client still receives the full result.
func (p *BatchProcessor) recordBatch(batch *domain.Batch, result *domain.BatchResult) {
	if p.repo == nil {
		return
	}

	batch.Total = result.Total
	batch.Succeeded = result.Succeeded
	batch.TranscoderAvailable = result.TranscoderAvailable
	for i, item := range result.Results {
		batch.Items = append(batch.Items, domain.BatchItem{
			BatchID:  batch.ID,
			Position: i,
			URL:      item.URL,
			Success:  item.Success,
			Title:    item.Title,
			File:     item.File,
			Message:  item.Message,
		})
	}

	if err := p.repo.CreateBatch(batch); err != nil {
		p.logger.Warn("Failed to record batch",
			zap.String("batch_id", batch.ID),
			zap.Error(err))
	}

	for _, item := range result.Results {
		if !item.Success {
			continue
		}
		file := &domain.ProducedFile{
			Name:    item.File,
			Path:    filepath.Join(batch.ID, item.File),
			BatchID: batch.ID,
		}
		if err := p.repo.RecordFile(file); err != nil {
			p.logger.Warn("Failed to record produced file",
				zap.String("file", item.File),
				zap.Error(err))
		}
	}
}
