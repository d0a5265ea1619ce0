package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ConvictionSignal is a persisted conviction result for one grouped purchase.
type ConvictionSignal struct {
	ID                   int64           `json:"id" gorm:"primaryKey"`
	Ticker               string          `json:"ticker" gorm:"index"`
	InsiderName          string          `json:"insider_name"`
	InsiderCount         int             `json:"insider_count"`
	TransactionDate      time.Time       `json:"transaction_date" gorm:"type:date"`
	PricePerShare        decimal.Decimal `json:"price_per_share" gorm:"type:numeric(18,4)"`
	TotalShares          int64           `json:"total_shares"`
	TotalValue           decimal.Decimal `json:"total_value" gorm:"type:numeric(20,2)"`
	BaseScore            float64         `json:"base_score"`
	ConfidenceMultiplier float64         `json:"confidence_multiplier"`
	AdjustedScore        float64         `json:"adjusted_score"`
	Category             string          `json:"category" gorm:"index"`
	Action               string          `json:"action"`
	TimingCategory       string          `json:"timing_category"`
	TimingMultiplier     float64         `json:"timing_multiplier"`
	PriceChangePct       float64         `json:"price_change_pct"`
	Indeterminate        bool            `json:"indeterminate"`
	Breakdown            datatypes.JSON  `json:"breakdown" gorm:"type:jsonb"`
	ScoredAt             time.Time       `json:"scored_at" gorm:"index"`
	CreatedAt            time.Time       `json:"created_at"`
}

func (ConvictionSignal) TableName() string {
	return "conviction_signals"
}
