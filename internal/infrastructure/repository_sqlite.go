package infrastructure

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/yourusername/mediabatch/internal/domain"
)

// SQLiteBatchRepository implements domain.BatchRepository using SQLite
type SQLiteBatchRepository struct {
	db *gorm.DB
}

// NewSQLiteBatchRepository creates a new SQLite repository
func NewSQLiteBatchRepository(dbPath string) (*SQLiteBatchRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Batch{}, &domain.BatchItem{}, &domain.ProducedFile{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteBatchRepository{db: db}, nil
}

// CreateBatch stores a batch together with its items
func (r *SQLiteBatchRepository) CreateBatch(batch *domain.Batch) error {
	return r.db.Create(batch).Error
}

// FindBatchByID finds a batch with its items, ordered by position
func (r *SQLiteBatchRepository) FindBatchByID(id string) (*domain.Batch, error) {
	var batch domain.Batch
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&batch, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// FindRecentBatches returns up to limit batches, newest first
func (r *SQLiteBatchRepository) FindRecentBatches(limit int) ([]*domain.Batch, error) {
	var batches []*domain.Batch
	err := r.db.Order("created_at DESC").Limit(limit).Find(&batches).Error
	return batches, err
}

// RecordFile upserts a produced-file manifest entry. When two batches
// produce the same public name the manifest points to the newest file.
func (r *SQLiteBatchRepository) RecordFile(file *domain.ProducedFile) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"path", "batch_id", "created_at"}),
	}).Create(file).Error
}

// FindFileByName looks up a manifest entry by its public name.
// Returns nil without error when the name was never produced.
func (r *SQLiteBatchRepository) FindFileByName(name string) (*domain.ProducedFile, error) {
	var file domain.ProducedFile
	err := r.db.First(&file, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// GetStats returns processing statistics
func (r *SQLiteBatchRepository) GetStats() (*domain.BatchStats, error) {
	stats := &domain.BatchStats{}

	if err := r.db.Model(&domain.Batch{}).Count(&stats.Batches).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&domain.BatchItem{}).Count(&stats.Items).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&domain.BatchItem{}).Where("success = ?", true).Count(&stats.ItemsSucceeded).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&domain.ProducedFile{}).Count(&stats.FilesProduced).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// Close closes the underlying database connection
func (r *SQLiteBatchRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
