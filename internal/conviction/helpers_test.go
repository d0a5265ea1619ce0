package conviction

import (
	"time"

	"insider-conviction/internal/entity"
	"insider-conviction/internal/signal"

	"github.com/shopspring/decimal"
)

var testNow = time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func purchase(ticker, insider string, date time.Time, shares int64, price string) entity.InsiderTransaction {
	return entity.InsiderTransaction{
		Ticker:          ticker,
		InsiderName:     insider,
		InsiderRole:     entity.InsiderRoleOfficer,
		TransactionCode: entity.TransactionCodePurchase,
		TransactionDate: date,
		FilingDate:      date,
		Shares:          shares,
		PricePerShare:   decimal.RequireFromString(price),
	}
}

type stubPrices map[string]float64

func (s stubPrices) CurrentPrice(ticker string) (float64, bool) {
	p, ok := s[ticker]
	return p, ok
}

func seededCache(now time.Time) *signal.Cache {
	return signal.NewCache(signal.WithClock(func() time.Time { return now }))
}
