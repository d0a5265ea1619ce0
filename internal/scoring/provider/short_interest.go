package provider

import (
	"context"
	"time"

	"insider-conviction/internal/scoring/repository"
	"insider-conviction/internal/signal"
)

type shortInterestProvider struct {
	feed
	yahoo repository.YahooFinanceRepository
}

func NewShortInterestProvider(yahoo repository.YahooFinanceRepository, ttl time.Duration) signal.Provider {
	return &shortInterestProvider{feed: feed{source: signal.SourceShortInterest, ttl: ttl}, yahoo: yahoo}
}

func (p *shortInterestProvider) Fetch(ctx context.Context, ticker string) (signal.Payload, error) {
	data, err := p.yahoo.GetShortInterest(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return signal.ShortInterest{PercentOfFloat: data.PercentOfFloat, DaysToCover: data.DaysToCover}, nil
}
