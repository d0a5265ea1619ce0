package signal

import (
	"context"
	"time"
)

// Provider fetches one feed for a ticker. Implementations return an error
// wrapping ErrUnavailable when the vendor has nothing usable.
type Provider interface {
	Source() Source
	TTL() time.Duration
	Fetch(ctx context.Context, ticker string) (Payload, error)
}

// PriceLookup answers "current price of ticker now" from the cache.
type PriceLookup struct {
	reader   Reader
	useStale bool
}

// NewPriceLookup returns a lookup backed by the market price feed.
func NewPriceLookup(reader Reader, useStale bool) *PriceLookup {
	return &PriceLookup{reader: reader, useStale: useStale}
}

// CurrentPrice returns the cached last price, or false if none is usable.
func (p *PriceLookup) CurrentPrice(ticker string) (float64, bool) {
	snap, ok := p.reader.Get(ticker, SourceMarketPrice)
	if !ok || (snap.Stale && !p.useStale) {
		return 0, false
	}
	price, ok := snap.Payload.(Price)
	if !ok || price.Last <= 0 {
		return 0, false
	}
	return price.Last, true
}
