package domain

import "context"

// ExtractOptions selects the configuration variant for one extraction
type ExtractOptions struct {
	Format         Format
	TranscodeAudio bool   // audio format and a transcoder is available
	OutputDir      string // directory the extractor writes into
}

// ExtractResult is the metadata reported by the extractor for a
// completed download. Filename is the extractor's own prediction and,
// when audio transcoding is enabled, still carries the intermediate
// container extension.
type ExtractResult struct {
	Title    string
	Filename string
}

// Extractor resolves a source URL into a media file on disk.
// Implementations wrap an external extraction tool.
type Extractor interface {
	Extract(ctx context.Context, url string, opts ExtractOptions) (*ExtractResult, error)
}

// Transcoder describes the optional external audio transcoder.
// Availability is probed per batch and never treated as an error.
type Transcoder interface {
	// Available reports whether the transcoder can be invoked
	Available(ctx context.Context) bool

	// Version returns the transcoder's version string
	Version(ctx context.Context) (string, error)

	// OutputExt returns the extension of transcoded files, with dot
	OutputExt() string
}
