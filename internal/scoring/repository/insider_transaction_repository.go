package repository

import (
	"context"
	"time"

	"insider-conviction/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InsiderTransactionRepository reads filed insider trades.
type InsiderTransactionRepository interface {
	GetPurchasesSince(ctx context.Context, since time.Time) ([]entity.InsiderTransaction, error)
	GetActiveTickers(ctx context.Context, since time.Time) ([]string, error)
	CountSales(ctx context.Context, ticker string, since time.Time) (int64, error)
	// CreateBatch inserts filed trades, skipping lines already stored, and returns the number inserted.
	CreateBatch(ctx context.Context, txns []entity.InsiderTransaction) (int64, error)
}

type insiderTransactionRepository struct {
	db *gorm.DB
}

func NewInsiderTransactionRepository(db *gorm.DB) InsiderTransactionRepository {
	return &insiderTransactionRepository{db: db}
}

func (r *insiderTransactionRepository) GetPurchasesSince(ctx context.Context, since time.Time) ([]entity.InsiderTransaction, error) {
	var txns []entity.InsiderTransaction
	err := r.db.WithContext(ctx).
		Where("transaction_code = ? AND transaction_date >= ?", entity.TransactionCodePurchase, since).
		Order("transaction_date DESC, id ASC").
		Find(&txns).Error
	return txns, err
}

func (r *insiderTransactionRepository) GetActiveTickers(ctx context.Context, since time.Time) ([]string, error) {
	var tickers []string
	err := r.db.WithContext(ctx).
		Model(&entity.InsiderTransaction{}).
		Where("transaction_code = ? AND transaction_date >= ?", entity.TransactionCodePurchase, since).
		Distinct().
		Order("ticker").
		Pluck("ticker", &tickers).Error
	return tickers, err
}

func (r *insiderTransactionRepository) CountSales(ctx context.Context, ticker string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.InsiderTransaction{}).
		Where("ticker = ? AND transaction_code = ? AND transaction_date >= ?", ticker, entity.TransactionCodeSale, since).
		Count(&count).Error
	return count, err
}

func (r *insiderTransactionRepository) CreateBatch(ctx context.Context, txns []entity.InsiderTransaction) (int64, error) {
	if len(txns) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&txns, 100)
	return result.RowsAffected, result.Error
}
