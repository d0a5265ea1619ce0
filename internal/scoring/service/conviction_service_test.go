package service

import (
	"context"
	"testing"
	"time"

	"insider-conviction/internal/conviction"
	"insider-conviction/internal/entity"
	"insider-conviction/internal/signal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedSignal(t *testing.T, ticker string, r conviction.Result) entity.ConvictionSignal {
	t.Helper()
	sig, err := toConvictionSignal(r)
	require.NoError(t, err)
	sig.ID = 7
	sig.Ticker = ticker
	return sig
}

func TestConvictionService_GetLatest(t *testing.T) {
	repo := &stubConvictionRepo{latest: []entity.ConvictionSignal{{ID: 1, Ticker: "ACME", Category: "BUY", TransactionDate: day(-1)}}}
	svc := NewConvictionService(repo, signal.NewCache())

	resp, err := svc.GetLatest(context.Background(), "buy", 0)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "2024-06-09", resp[0].TransactionDate)
	assert.Equal(t, "BUY", repo.category)
	assert.Equal(t, defaultListLimit, repo.limit)

	_, err = svc.GetLatest(context.Background(), "", 10000)
	require.NoError(t, err)
	assert.Equal(t, maxListLimit, repo.limit)

	_, err = svc.GetLatest(context.Background(), "MOONSHOT", 10)
	assert.ErrorIs(t, err, ErrUnknownBand)

	_, err = svc.GetLatest(context.Background(), "indeterminate", 10)
	assert.NoError(t, err)
}

func TestConvictionService_GetByTicker(t *testing.T) {
	repo := &stubConvictionRepo{}
	svc := NewConvictionService(repo, signal.NewCache())

	_, err := svc.GetByTicker(context.Background(), " acme ", 5)
	assert.ErrorIs(t, err, ErrConvictionNotFound)
	assert.Equal(t, "ACME", repo.ticker)
	assert.Equal(t, 5, repo.limit)
}

func TestConvictionService_Explain(t *testing.T) {
	result := conviction.Result{
		Ticker:               "ACME",
		Insider:              "Alice",
		TransactionDate:      day(-1),
		BaseScore:            0.625,
		ConfidenceMultiplier: 1,
		AdjustedScore:        0.625,
		Category:             conviction.BandWatch,
		RecommendedAction:    conviction.BandWatch.Action(),
		TimingCategory:       conviction.TimingUnknown,
		Components: []conviction.ComponentScore{
			{Name: conviction.CategoryFilingSpeed, Value: 1, Weight: 0.25, Available: true},
			{Name: conviction.CategoryAccumulation, Value: 0, Weight: 0.15, Available: true},
			{Name: conviction.CategoryShortInterest, Weight: 0.20},
		},
	}
	repo := &stubConvictionRepo{latest: []entity.ConvictionSignal{storedSignal(t, "ACME", result)}}
	svc := NewConvictionService(repo, signal.NewCache())

	breakdown, err := svc.Explain(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, conviction.Explain(result), *breakdown)
	assert.Equal(t, 1, repo.limit)
}

func TestConvictionService_SignalStats(t *testing.T) {
	now := testNow
	cache := signal.NewCache(signal.WithClock(func() time.Time { return now }))
	require.NoError(t, cache.Put("ACME", signal.SourceMarketPrice, signal.Price{Last: 1}, time.Minute))
	require.NoError(t, cache.Put("BETA", signal.SourceMarketPrice, signal.Price{Last: 1}, time.Hour))
	now = now.Add(10 * time.Minute)

	stats := NewConvictionService(&stubConvictionRepo{}, cache).SignalStats()
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 1, stats.Fresh)
	assert.Equal(t, 1, stats.Stale)
	assert.Equal(t, 1, stats.BySource["market_price"].Fresh)
}
