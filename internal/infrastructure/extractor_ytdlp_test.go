package infrastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/mediabatch/internal/domain"
)

func testExtractor() *YTDLPExtractor {
	config := domain.DefaultConfig()
	config.Extractor.SocketTimeout = 30 * time.Second
	return NewYTDLPExtractor(&config.Extractor, &config.Transcoder, zap.NewNop())
}

func argsContain(t *testing.T, args []string, flag, value string) {
	t.Helper()
	for i, a := range args {
		if a == flag {
			require.Less(t, i+1, len(args), "flag %s has no value", flag)
			assert.Equal(t, value, args[i+1])
			return
		}
	}
	t.Fatalf("flag %s not found in %v", flag, args)
}

func TestBuildArgs_CommonResilience(t *testing.T) {
	e := testExtractor()
	args := e.buildArgs("https://a", domain.ExtractOptions{
		Format:    domain.FormatAudio,
		OutputDir: "/tmp/batch",
	})

	// progress noise stays off, the info JSON still prints
	assert.Contains(t, args, "--print-json")
	assert.Contains(t, args, "--quiet")
	assert.Contains(t, args, "--no-warnings")
	assert.Contains(t, args, "--restrict-filenames")
	assert.Contains(t, args, "--skip-unavailable-fragments")
	argsContain(t, args, "--socket-timeout", "30")
	argsContain(t, args, "--retries", "10")
	argsContain(t, args, "--fragment-retries", "10")
	argsContain(t, args, "-o", "%(title)s.%(ext)s")
	argsContain(t, args, "-P", "/tmp/batch")

	// browser-like identification header set
	argsContain(t, args, "--user-agent", e.config.UserAgent)
	assert.Contains(t, args, "--add-header")
	assert.Contains(t, args, "Accept:"+e.config.Accept)
	assert.Contains(t, args, "Accept-Language:"+e.config.AcceptLanguage)

	// URL always goes last
	assert.Equal(t, "https://a", args[len(args)-1])
}

func TestBuildArgs_AudioWithTranscoder(t *testing.T) {
	e := testExtractor()
	args := e.buildArgs("https://a", domain.ExtractOptions{
		Format:         domain.FormatAudio,
		TranscodeAudio: true,
		OutputDir:      "/tmp/batch",
	})

	argsContain(t, args, "-f", "bestaudio/best")
	assert.Contains(t, args, "--extract-audio")
	argsContain(t, args, "--audio-format", "mp3")
	argsContain(t, args, "--audio-quality", "192K")
}

func TestBuildArgs_AudioWithoutTranscoder(t *testing.T) {
	e := testExtractor()
	args := e.buildArgs("https://a", domain.ExtractOptions{
		Format:    domain.FormatAudio,
		OutputDir: "/tmp/batch",
	})

	argsContain(t, args, "-f", "bestaudio/best")
	assert.NotContains(t, args, "--extract-audio")
	assert.NotContains(t, args, "--audio-format")
}

func TestBuildArgs_VideoCappedAt720(t *testing.T) {
	e := testExtractor()
	args := e.buildArgs("https://a", domain.ExtractOptions{
		Format:    domain.FormatVideo,
		OutputDir: "/tmp/batch",
	})

	argsContain(t, args, "-f", "best[height<=720]")
	assert.NotContains(t, args, "--extract-audio")
}

func TestParseInfoJSON(t *testing.T) {
	output := []byte(`[download] Destination: /tmp/b/Song.webm
{"title":"Song","_filename":"/tmp/b/Song.webm","ext":"webm"}
`)
	info, err := parseInfoJSON(output)
	require.NoError(t, err)
	assert.Equal(t, "Song", info.Title)
	assert.Equal(t, "/tmp/b/Song.webm", info.filename())
}

func TestParseInfoJSON_FallbackFilenameField(t *testing.T) {
	info, err := parseInfoJSON([]byte(`{"title":"Song","filename":"/tmp/b/Song.m4a"}`))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/b/Song.m4a", info.filename())
}

func TestParseInfoJSON_NoJSON(t *testing.T) {
	_, err := parseInfoJSON([]byte("ERROR: unsupported URL"))
	require.Error(t, err)
}

func TestLastLine(t *testing.T) {
	assert.Equal(t, "ERROR: blocked", lastLine("WARNING: x\nERROR: blocked\n\n"))
	assert.Equal(t, "no output", lastLine("   \n  "))
}
