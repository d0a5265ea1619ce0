package provider

import (
	"context"
	"time"

	"insider-conviction/internal/scoring/repository"
	"insider-conviction/internal/signal"
)

type optionsFlowProvider struct {
	feed
	polygon repository.PolygonRepository
}

func NewOptionsFlowProvider(polygon repository.PolygonRepository, ttl time.Duration) signal.Provider {
	return &optionsFlowProvider{feed: feed{source: signal.SourceOptionsFlow, ttl: ttl}, polygon: polygon}
}

func (p *optionsFlowProvider) Fetch(ctx context.Context, ticker string) (signal.Payload, error) {
	flow, err := p.polygon.GetOptionsFlow(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return *flow, nil
}
