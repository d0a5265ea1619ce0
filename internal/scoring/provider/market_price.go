package provider

import (
	"context"
	"fmt"
	"time"

	"insider-conviction/internal/scoring/repository"
	"insider-conviction/internal/signal"
)

type marketPriceProvider struct {
	feed
	yahoo repository.YahooFinanceRepository
}

// NewMarketPriceProvider reports the last traded price from the daily chart.
func NewMarketPriceProvider(yahoo repository.YahooFinanceRepository, ttl time.Duration) signal.Provider {
	return &marketPriceProvider{feed: feed{source: signal.SourceMarketPrice, ttl: ttl}, yahoo: yahoo}
}

func (p *marketPriceProvider) Fetch(ctx context.Context, ticker string) (signal.Payload, error) {
	quote, err := p.yahoo.GetQuote(ctx, ticker, "1d", "5d")
	if err != nil {
		return nil, err
	}
	if quote.Price <= 0 {
		return nil, fmt.Errorf("%w: no traded price for %s", signal.ErrUnavailable, ticker)
	}

	asOf := time.Now().UTC()
	if quote.MarketTime > 0 {
		asOf = time.Unix(quote.MarketTime, 0).UTC()
	}
	return signal.Price{Last: quote.Price, Currency: quote.Currency, AsOf: asOf}, nil
}
