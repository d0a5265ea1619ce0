package provider

import (
	"context"
	"fmt"
	"time"

	"insider-conviction/internal/scoring/repository"
	"insider-conviction/internal/signal"
)

type newsSentimentProvider struct {
	feed
	news repository.NewsFeedRepository
}

// NewNewsSentimentProvider scores recent headlines with the keyword lexicon.
func NewNewsSentimentProvider(news repository.NewsFeedRepository, ttl time.Duration) signal.Provider {
	return &newsSentimentProvider{feed: feed{source: signal.SourceNewsSentiment, ttl: ttl}, news: news}
}

func (p *newsSentimentProvider) Fetch(ctx context.Context, ticker string) (signal.Payload, error) {
	articles, err := p.news.GetArticles(ctx, ticker, ticker)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("%w: no recent news for %s", signal.ErrUnavailable, ticker)
	}
	return signal.NewsSentiment{Sentiment: LexiconSentiment(articles), Articles: len(articles)}, nil
}
