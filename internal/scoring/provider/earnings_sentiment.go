package provider

import (
	"context"
	"time"

	"insider-conviction/internal/scoring/repository"
	"insider-conviction/internal/signal"
)

type earningsSentimentProvider struct {
	feed
	news     repository.NewsFeedRepository
	analyzer repository.EarningsAnalyzerRepository
}

// NewEarningsSentimentProvider pulls earnings coverage from the news feed and
// has the model rate its tone.
func NewEarningsSentimentProvider(news repository.NewsFeedRepository, analyzer repository.EarningsAnalyzerRepository, ttl time.Duration) signal.Provider {
	return &earningsSentimentProvider{
		feed:     feed{source: signal.SourceEarningsSentiment, ttl: ttl},
		news:     news,
		analyzer: analyzer,
	}
}

func (p *earningsSentimentProvider) Fetch(ctx context.Context, ticker string) (signal.Payload, error) {
	articles, err := p.news.GetArticles(ctx, ticker, ticker+" earnings")
	if err != nil {
		return nil, err
	}
	result, err := p.analyzer.RateEarningsSentiment(ctx, ticker, articles)
	if err != nil {
		return nil, err
	}
	return signal.EarningsSentiment{
		Sentiment:  result.Sentiment,
		Confidence: result.Confidence,
		Summary:    result.Summary,
	}, nil
}
