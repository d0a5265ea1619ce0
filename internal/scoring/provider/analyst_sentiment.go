package provider

import (
	"context"
	"time"

	"insider-conviction/internal/scoring/repository"
	"insider-conviction/internal/signal"
)

type analystSentimentProvider struct {
	feed
	finnhub repository.FinnhubRepository
}

// NewAnalystSentimentProvider reports the most recent recommendation-trend period.
func NewAnalystSentimentProvider(finnhub repository.FinnhubRepository, ttl time.Duration) signal.Provider {
	return &analystSentimentProvider{feed: feed{source: signal.SourceAnalystSentiment, ttl: ttl}, finnhub: finnhub}
}

func (p *analystSentimentProvider) Fetch(ctx context.Context, ticker string) (signal.Payload, error) {
	trends, err := p.finnhub.GetRecommendationTrends(ctx, ticker)
	if err != nil {
		return nil, err
	}
	latest := trends[0]
	return signal.AnalystSentiment{
		StrongBuy:  latest.StrongBuy,
		Buy:        latest.Buy,
		Hold:       latest.Hold,
		Sell:       latest.Sell,
		StrongSell: latest.StrongSell,
		Period:     latest.Period,
	}, nil
}
