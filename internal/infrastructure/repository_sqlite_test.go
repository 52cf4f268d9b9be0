package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mediabatch/internal/domain"
)

func newTestRepo(t *testing.T) *SQLiteBatchRepository {
	t.Helper()
	repo, err := NewSQLiteBatchRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestCreateAndFindBatch(t *testing.T) {
	repo := newTestRepo(t)

	batch := domain.NewBatch(domain.FormatAudio)
	batch.Total = 2
	batch.Succeeded = 1
	batch.TranscoderAvailable = true
	batch.Items = []domain.BatchItem{
		{BatchID: batch.ID, Position: 1, URL: "https://b", Success: false, Message: "error: nope"},
		{BatchID: batch.ID, Position: 0, URL: "https://a", Success: true, Title: "A", File: "a.mp3"},
	}

	require.NoError(t, repo.CreateBatch(batch))

	found, err := repo.FindBatchByID(batch.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.Total)
	assert.Equal(t, 1, found.Succeeded)
	assert.True(t, found.TranscoderAvailable)

	// items come back ordered by position regardless of insert order
	require.Len(t, found.Items, 2)
	assert.Equal(t, "https://a", found.Items[0].URL)
	assert.Equal(t, "https://b", found.Items[1].URL)
}

func TestFindBatchByID_Missing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindBatchByID("nope")
	require.Error(t, err)
}

func TestFindRecentBatches(t *testing.T) {
	repo := newTestRepo(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.CreateBatch(domain.NewBatch(domain.FormatVideo)))
	}

	batches, err := repo.FindRecentBatches(3)
	require.NoError(t, err)
	assert.Len(t, batches, 3)
}

func TestRecordFile_UpsertKeepsNewest(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.RecordFile(&domain.ProducedFile{
		Name:    "song.mp3",
		Path:    "batch-1/song.mp3",
		BatchID: "batch-1",
	}))
	require.NoError(t, repo.RecordFile(&domain.ProducedFile{
		Name:    "song.mp3",
		Path:    "batch-2/song.mp3",
		BatchID: "batch-2",
	}))

	file, err := repo.FindFileByName("song.mp3")
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, "batch-2/song.mp3", file.Path)
	assert.Equal(t, "batch-2", file.BatchID)
}

func TestFindFileByName_NeverProduced(t *testing.T) {
	repo := newTestRepo(t)

	file, err := repo.FindFileByName("ghost.mp3")
	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestGetStats(t *testing.T) {
	repo := newTestRepo(t)

	batch := domain.NewBatch(domain.FormatAudio)
	batch.Items = []domain.BatchItem{
		{BatchID: batch.ID, Position: 0, URL: "https://a", Success: true, File: "a.mp3"},
		{BatchID: batch.ID, Position: 1, URL: "https://b", Success: false},
	}
	require.NoError(t, repo.CreateBatch(batch))
	require.NoError(t, repo.RecordFile(&domain.ProducedFile{Name: "a.mp3", Path: batch.ID + "/a.mp3", BatchID: batch.ID}))

	stats, err := repo.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Batches)
	assert.Equal(t, int64(2), stats.Items)
	assert.Equal(t, int64(1), stats.ItemsSucceeded)
	assert.Equal(t, int64(1), stats.FilesProduced)
}
