package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/yourusername/mediabatch/internal/domain"
)

// FFmpegTranscoder implements domain.Transcoder by probing the ffmpeg
// binary. The extractor drives the actual transcoding as a
// post-processing step; this type only answers "is it there".
type FFmpegTranscoder struct {
	config *domain.TranscoderConfig
}

// NewFFmpegTranscoder creates a new ffmpeg transcoder probe
func NewFFmpegTranscoder(config *domain.TranscoderConfig) *FFmpegTranscoder {
	return &FFmpegTranscoder{config: config}
}

// Available reports whether ffmpeg can be invoked. Any invocation
// error or non-zero exit means unavailable; nothing propagates.
func (t *FFmpegTranscoder) Available(ctx context.Context) bool {
	_, err := t.Version(ctx)
	return err == nil
}

// Version runs the version probe and returns the first output line
func (t *FFmpegTranscoder) Version(ctx context.Context) (string, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, t.config.Binary, "-version")
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s version probe failed: %w", t.config.Binary, err)
	}

	line, _, _ := strings.Cut(stdout.String(), "\n")
	return strings.TrimSpace(line), nil
}

// OutputExt returns the extension of transcoded audio files
func (t *FFmpegTranscoder) OutputExt() string {
	return "." + t.config.AudioFormat
}
