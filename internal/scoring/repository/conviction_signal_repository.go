package repository

import (
	"context"

	"insider-conviction/internal/entity"

	"gorm.io/gorm"
)

const createBatchSize = 100

// ConvictionSignalRepository stores and reads scored results.
type ConvictionSignalRepository interface {
	CreateBatch(ctx context.Context, signals []entity.ConvictionSignal) error
	GetLatest(ctx context.Context, category string, limit int) ([]entity.ConvictionSignal, error)
	GetLatestByTicker(ctx context.Context, ticker string, limit int) ([]entity.ConvictionSignal, error)
}

type convictionSignalRepository struct {
	db *gorm.DB
}

func NewConvictionSignalRepository(db *gorm.DB) ConvictionSignalRepository {
	return &convictionSignalRepository{db: db}
}

func (r *convictionSignalRepository) CreateBatch(ctx context.Context, signals []entity.ConvictionSignal) error {
	if len(signals) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(signals, createBatchSize).Error
}

// GetLatest returns results from the most recent scoring cycle, strongest first.
func (r *convictionSignalRepository) GetLatest(ctx context.Context, category string, limit int) ([]entity.ConvictionSignal, error) {
	latest := r.db.WithContext(ctx).Model(&entity.ConvictionSignal{}).Select("MAX(scored_at)")

	query := r.db.WithContext(ctx).Where("scored_at = (?)", latest)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var signals []entity.ConvictionSignal
	err := query.Order("adjusted_score DESC, ticker ASC").Find(&signals).Error
	return signals, err
}

func (r *convictionSignalRepository) GetLatestByTicker(ctx context.Context, ticker string, limit int) ([]entity.ConvictionSignal, error) {
	query := r.db.WithContext(ctx).Where("ticker = ?", ticker).Order("scored_at DESC, adjusted_score DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var signals []entity.ConvictionSignal
	err := query.Find(&signals).Error
	return signals, err
}
