package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InsiderRole is the insider's relationship to the issuer.
type InsiderRole string

const (
	InsiderRoleOfficer  InsiderRole = "officer"
	InsiderRoleDirector InsiderRole = "director"
	InsiderRoleOther    InsiderRole = "other"
)

// TransactionCode is the Form 4 transaction code.
type TransactionCode string

const (
	TransactionCodePurchase TransactionCode = "P"
	TransactionCodeSale     TransactionCode = "S"
)

// InsiderTransaction is a single reported insider trade as filed.
type InsiderTransaction struct {
	ID              int64           `json:"id" gorm:"primaryKey"`
	Ticker          string          `json:"ticker" gorm:"index:idx_insider_tx_ticker_date"`
	InsiderName     string          `json:"insider_name"`
	InsiderRole     InsiderRole     `json:"insider_role"`
	TransactionCode TransactionCode `json:"transaction_code"`
	TransactionDate time.Time       `json:"transaction_date" gorm:"type:date;index:idx_insider_tx_ticker_date"`
	FilingDate      time.Time       `json:"filing_date" gorm:"type:date"`
	Shares          int64           `json:"shares"`
	PricePerShare   decimal.Decimal `json:"price_per_share" gorm:"type:numeric(18,4)"`
	TotalValue      decimal.Decimal `json:"total_value" gorm:"type:numeric(20,2)"`
	AccessionNumber string          `json:"accession_number"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (InsiderTransaction) TableName() string {
	return "insider_transactions"
}

// IsPurchase reports whether the trade is an open-market purchase.
func (t InsiderTransaction) IsPurchase() bool {
	return t.TransactionCode == TransactionCodePurchase
}
