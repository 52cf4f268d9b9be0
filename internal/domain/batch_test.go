package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"mp3", FormatAudio},
		{"mp4", FormatVideo},
		{"video", FormatVideo},
		{"MP4", FormatVideo},
		{" mp4 ", FormatVideo},
		{"", FormatAudio},
		{"flac", FormatAudio},
		{"anything-else", FormatAudio},
	}

	for _, tt := range tests {
		t.Run("input="+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFormat(tt.input))
		})
	}
}

func TestFormatLabel(t *testing.T) {
	assert.Equal(t, "MP3", FormatAudio.Label())
	assert.Equal(t, "MP4", FormatVideo.Label())
}

func TestNewBatch(t *testing.T) {
	a := NewBatch(FormatAudio)
	b := NewBatch(FormatAudio)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, FormatAudio, a.Format)
	assert.False(t, a.CreatedAt.IsZero())
}
