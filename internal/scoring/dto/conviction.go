package dto

import (
	"time"

	"insider-conviction/internal/conviction"

	"github.com/shopspring/decimal"
)

// ConvictionResponse is a stored conviction result.
type ConvictionResponse struct {
	ID                   int64           `json:"id"`
	Ticker               string          `json:"ticker"`
	Insider              string          `json:"insider"`
	InsiderCount         int             `json:"insider_count"`
	TransactionDate      string          `json:"transaction_date"`
	PricePerShare        decimal.Decimal `json:"price_per_share"`
	TotalShares          int64           `json:"total_shares"`
	TotalValue           decimal.Decimal `json:"total_value"`
	BaseScore            float64         `json:"base_score"`
	ConfidenceMultiplier float64         `json:"confidence_multiplier"`
	AdjustedScore        float64         `json:"adjusted_score"`
	Category             string          `json:"category"`
	RecommendedAction    string          `json:"recommended_action"`
	TimingCategory       string          `json:"timing_category"`
	TimingMultiplier     float64         `json:"timing_multiplier"`
	PriceChangePct       float64         `json:"price_change_pct"`
	Indeterminate        bool            `json:"indeterminate"`
	ScoredAt             time.Time       `json:"scored_at"`
}

// TransactionRequest is one insider purchase posted for ad hoc scoring.
type TransactionRequest struct {
	Ticker          string          `json:"ticker"`
	InsiderName     string          `json:"insider_name"`
	InsiderRole     string          `json:"insider_role"`
	TransactionCode string          `json:"transaction_code" example:"P"`
	TransactionDate string          `json:"transaction_date" example:"2024-06-03"`
	FilingDate      string          `json:"filing_date" example:"2024-06-04"`
	Shares          int64           `json:"shares"`
	PricePerShare   decimal.Decimal `json:"price_per_share"`
	TotalValue      decimal.Decimal `json:"total_value"`
}

// ScoreRequest is the body of POST /convictions/score.
type ScoreRequest struct {
	Transactions []TransactionRequest `json:"transactions"`
}

// Rejection describes one transaction that failed validation.
type Rejection struct {
	Index  int    `json:"index"`
	Ticker string `json:"ticker"`
	Reason string `json:"reason"`
}

// ScoreResponse is the result of an ad hoc scoring run.
type ScoreResponse struct {
	Results  []conviction.Breakdown `json:"results"`
	Rejected []Rejection            `json:"rejected,omitempty"`
}

// CycleReport summarizes one scoring cycle.
type CycleReport struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Purchases int           `json:"purchases"`
	Scored    int           `json:"scored"`
	Rejected  int           `json:"rejected"`
	Persisted int           `json:"persisted"`
	Published int           `json:"published"`
	Alerted   int           `json:"alerted"`
}

// SignalStatsResponse is the body of GET /signals/stats.
type SignalStatsResponse struct {
	Entries  int                        `json:"entries"`
	Fresh    int                        `json:"fresh"`
	Stale    int                        `json:"stale"`
	BySource map[string]SourceStatsItem `json:"by_source"`
}

type SourceStatsItem struct {
	Fresh int `json:"fresh"`
	Stale int `json:"stale"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status       string `json:"status"`
	CacheEntries int    `json:"cache_entries"`
}
