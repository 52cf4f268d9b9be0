package domain

// BatchRepository defines persistence for batch history and the
// produced-file manifest
type BatchRepository interface {
	// CreateBatch stores a batch together with its items
	CreateBatch(batch *Batch) error

	// FindBatchByID finds a batch with its items
	FindBatchByID(id string) (*Batch, error)

	// FindRecentBatches returns up to limit batches, newest first
	FindRecentBatches(limit int) ([]*Batch, error)

	// RecordFile upserts a produced-file manifest entry. A name
	// produced again by a later batch points to the newest file.
	RecordFile(file *ProducedFile) error

	// FindFileByName looks up a manifest entry by public name
	FindFileByName(name string) (*ProducedFile, error)

	// GetStats returns processing statistics
	GetStats() (*BatchStats, error)

	// Close releases the underlying store
	Close() error
}
