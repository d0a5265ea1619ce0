package conviction

import (
	"time"

	"insider-conviction/pkg/utils"

	"github.com/shopspring/decimal"
)

// TimingCategory describes how much of the move may already have happened.
type TimingCategory string

const (
	TimingEarly   TimingCategory = "EARLY"
	TimingOptimal TimingCategory = "OPTIMAL"
	TimingLate    TimingCategory = "LATE"
	TimingStale   TimingCategory = "STALE"
	TimingUnknown TimingCategory = "UNKNOWN"
)

const neutralTimingMultiplier = 0.5

var hundred = decimal.NewFromInt(100)

// EntryTiming is the timing annotation for a grouped purchase.
type EntryTiming struct {
	Category       TimingCategory `json:"category"`
	Multiplier     float64        `json:"multiplier"`
	PriceChangePct float64        `json:"price_change_pct"`
	DaysSince      int            `json:"days_since"`
}

type timingBand struct {
	maxDays    int
	category   TimingCategory
	multiplier float64
}

var timingBands = []timingBand{
	{7, TimingEarly, 1.0},
	{30, TimingOptimal, 0.9},
	{90, TimingLate, 0.7},
}

// AnalyzeEntryTiming buckets the days elapsed since the purchase and computes the percent
// price change from the purchase price. Without a usable current price it returns the
// neutral UNKNOWN annotation.
func AnalyzeEntryTiming(g GroupedTransaction, currentPrice float64, priceAvailable bool, now time.Time) EntryTiming {
	txPrice := g.Price()
	if !priceAvailable || currentPrice <= 0 || !txPrice.IsPositive() {
		return EntryTiming{Category: TimingUnknown, Multiplier: neutralTimingMultiplier}
	}

	days := utils.DaysBetween(g.TransactionDate(), now)
	if days < 0 {
		days = 0
	}

	timing := EntryTiming{
		Category:       TimingStale,
		Multiplier:     0.4,
		PriceChangePct: PriceChangePct(txPrice, decimal.NewFromFloat(currentPrice)),
		DaysSince:      days,
	}
	for _, band := range timingBands {
		if days <= band.maxDays {
			timing.Category = band.category
			timing.Multiplier = band.multiplier
			break
		}
	}
	return timing
}

// PriceChangePct returns (current - from) / from * 100, rounded to four places.
func PriceChangePct(from, current decimal.Decimal) float64 {
	if !from.IsPositive() {
		return 0
	}
	return current.Sub(from).Div(from).Mul(hundred).Round(4).InexactFloat64()
}
