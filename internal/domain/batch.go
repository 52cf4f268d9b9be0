package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Format represents the requested output format for a batch
type Format string

const (
	FormatAudio Format = "mp3" // best audio, transcoded to mp3 when possible
	FormatVideo Format = "mp4" // best video capped at 720p
)

// ParseFormat maps a wire value to a Format. Unknown or empty values
// default to audio, matching the submission form's default selection.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mp4", "video":
		return FormatVideo
	default:
		return FormatAudio
	}
}

// Label returns the uppercased format label used in item results
func (f Format) Label() string {
	return strings.ToUpper(string(f))
}

// ItemResult is the outcome of one URL within a batch. Exactly one of
// the success fields (Title, File) or the failure Message carries
// information, governed by Success.
type ItemResult struct {
	Success bool   `json:"success"`
	Title   string `json:"title,omitempty"`
	URL     string `json:"url"`
	Format  string `json:"format"`
	File    string `json:"file,omitempty"`
	Message string `json:"message"`
}

// BatchResult aggregates the outcomes of one batch submission.
// Results preserve input order.
type BatchResult struct {
	BatchID             string       `json:"batch_id"`
	Total               int          `json:"total"`
	Succeeded           int          `json:"succeeded"`
	FormatRequested     Format       `json:"format_requested"`
	TranscoderAvailable bool         `json:"transcoder_available"`
	Results             []ItemResult `json:"results"`
}

// Batch is the persisted record of a batch submission
type Batch struct {
	ID                  string      `json:"id" gorm:"primaryKey"`
	Format              Format      `json:"format" gorm:"not null"`
	Total               int         `json:"total"`
	Succeeded           int         `json:"succeeded"`
	TranscoderAvailable bool        `json:"transcoder_available"`
	Items               []BatchItem `json:"items" gorm:"foreignKey:BatchID"`
	CreatedAt           time.Time   `json:"created_at" gorm:"autoCreateTime;index"`
}

// BatchItem is the persisted record of one URL within a batch
type BatchItem struct {
	ID       uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	BatchID  string `json:"-" gorm:"index;not null"`
	Position int    `json:"position"`
	URL      string `json:"url" gorm:"not null"`
	Success  bool   `json:"success"`
	Title    string `json:"title,omitempty"`
	File     string `json:"file,omitempty"`
	Message  string `json:"message"`
}

// ProducedFile maps a public download name to the path of a file this
// process wrote, relative to the download folder. The download endpoint
// serves only names present in this manifest.
type ProducedFile struct {
	Name      string    `json:"name" gorm:"primaryKey"`
	Path      string    `json:"path" gorm:"not null"`
	BatchID   string    `json:"batch_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// NewBatch creates a batch record with a fresh identifier
func NewBatch(format Format) *Batch {
	return &Batch{
		ID:        uuid.New().String(),
		Format:    format,
		CreatedAt: time.Now(),
	}
}

// BatchStats summarizes processing history
type BatchStats struct {
	Batches        int64 `json:"batches"`
	Items          int64 `json:"items"`
	ItemsSucceeded int64 `json:"items_succeeded"`
	FilesProduced  int64 `json:"files_produced"`
}
