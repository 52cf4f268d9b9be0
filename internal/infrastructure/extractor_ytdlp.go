package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/mediabatch/internal/domain"
)

// YTDLPExtractor implements domain.Extractor by shelling out to yt-dlp
type YTDLPExtractor struct {
	config     *domain.ExtractorConfig
	transcoder *domain.TranscoderConfig
	logger     *zap.Logger
}

// NewYTDLPExtractor creates a new yt-dlp backed extractor
func NewYTDLPExtractor(config *domain.ExtractorConfig, transcoder *domain.TranscoderConfig, logger *zap.Logger) *YTDLPExtractor {
	return &YTDLPExtractor{
		config:     config,
		transcoder: transcoder,
		logger:     logger,
	}
}

// extractorInfo is the subset of yt-dlp's info JSON we consume.
// Filename is yt-dlp's prediction made before post-processors run.
type extractorInfo struct {
	Title    string `json:"title"`
	Filename string `json:"_filename"`
	AltName  string `json:"filename"`
	Ext      string `json:"ext"`
}

// Extract downloads one URL with the configuration variant selected by
// opts and returns the reported title and predicted filename.
func (e *YTDLPExtractor) Extract(ctx context.Context, url string, opts domain.ExtractOptions) (*domain.ExtractResult, error) {
	args := e.buildArgs(url, opts)

	// Note: exec.Command passes args directly to the process, the
	// escaping is for log readability only
	e.logger.Debug("Invoking extractor",
		zap.String("cmd", ShellEscapeCommand(e.config.Binary, args...)))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.config.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed: %v: %s", e.config.Binary, err, lastLine(stderr.String()))
	}

	info, err := parseInfoJSON(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to parse extractor output: %w", err)
	}

	return &domain.ExtractResult{
		Title:    info.Title,
		Filename: info.filename(),
	}, nil
}

// buildArgs assembles the yt-dlp invocation for one item. Every
// variant carries the anti-blocking header set, bounded retries and a
// filesystem-safe output template.
func (e *YTDLPExtractor) buildArgs(url string, opts domain.ExtractOptions) []string {
	args := []string{
		"--print-json",
		"--quiet",
		"--no-warnings",
		"--no-playlist",
		"--restrict-filenames",
		"--socket-timeout", strconv.Itoa(int(e.config.SocketTimeout.Seconds())),
		"--retries", strconv.Itoa(e.config.Retries),
		"--fragment-retries", strconv.Itoa(e.config.FragmentRetries),
		"--skip-unavailable-fragments",
		"--user-agent", e.config.UserAgent,
		"--add-header", "Accept:" + e.config.Accept,
		"--add-header", "Accept-Language:" + e.config.AcceptLanguage,
		"-o", "%(title)s.%(ext)s",
		"-P", opts.OutputDir,
	}

	switch {
	case opts.Format == domain.FormatVideo:
		args = append(args, "-f", fmt.Sprintf("best[height<=%d]", e.config.MaxVideoHeight))
	case opts.TranscodeAudio:
		args = append(args,
			"-f", "bestaudio/best",
			"--extract-audio",
			"--audio-format", e.transcoder.AudioFormat,
			"--audio-quality", e.transcoder.AudioQuality,
		)
	default:
		// Audio without a transcoder keeps the native container
		args = append(args, "-f", "bestaudio/best")
	}

	return append(args, url)
}

// parseInfoJSON decodes the last JSON document printed by yt-dlp
func parseInfoJSON(output []byte) (*extractorInfo, error) {
	lines := bytes.Split(bytes.TrimSpace(output), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		line := bytes.TrimSpace(lines[i])
		if len(line) == 0 || line[0] != '{' {
			continue
		}
		var info extractorInfo
		if err := json.Unmarshal(line, &info); err != nil {
			return nil, err
		}
		return &info, nil
	}
	return nil, fmt.Errorf("no info JSON in extractor output")
}

func (i *extractorInfo) filename() string {
	if i.Filename != "" {
		return i.Filename
	}
	return i.AltName
}

// lastLine returns the last non-empty line of process output, which
// for yt-dlp carries the actual error description
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return "no output"
}
