package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"insider-conviction/internal/conviction"
	"insider-conviction/internal/entity"
	"insider-conviction/internal/scoring/config"
	"insider-conviction/internal/scoring/dto"
	"insider-conviction/internal/signal"
	"insider-conviction/pkg/common"
	"insider-conviction/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoringFixture struct {
	svc          *scoringService
	transactions *stubTransactionRepo
	convictions  *stubConvictionRepo
	publisher    *stubPublisher
	notifier     *stubNotifier
}

func newScoringFixture(t *testing.T, purchases []entity.InsiderTransaction) scoringFixture {
	t.Helper()
	cfg := config.Default()
	cfg.Redis.StreamMaxLen = 1000

	cache := signal.NewCache()
	engine, err := conviction.NewEngine(conviction.DefaultConfig(), cache, signal.NewPriceLookup(cache, true),
		logger.NewNop(), conviction.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)

	f := scoringFixture{
		transactions: &stubTransactionRepo{purchases: purchases},
		convictions:  &stubConvictionRepo{},
		publisher:    &stubPublisher{},
		notifier:     &stubNotifier{},
	}
	f.svc = NewScoringService(&cfg, engine, f.transactions, f.convictions, f.publisher, f.notifier, logger.NewNop()).(*scoringService)
	f.svc.now = func() time.Time { return testNow }
	return f
}

func TestScoringService_RunCycle(t *testing.T) {
	bad := purchase("BAD", "Nobody", day(-1), -5, "1.00")
	f := newScoringFixture(t, []entity.InsiderTransaction{
		purchase("ACME", "Alice", day(-2), 1000, "10.00"),
		purchase("ACME", "Bob", day(-2), 2000, "10.00"),
		purchase("ACME", "Carol", day(-2), 3000, "10.00"),
		bad,
		purchase("BETA", "Dan", day(-3), 100, "5.00"),
	})

	report, err := f.svc.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, day(-90), f.transactions.since)
	assert.Equal(t, 5, report.Purchases)
	assert.Equal(t, 4, report.Scored)
	assert.Equal(t, 1, report.Rejected)
	assert.Equal(t, 4, report.Persisted)
	assert.Equal(t, 4, report.Published)
	assert.Equal(t, 3, report.Alerted)

	require.Len(t, f.convictions.stored, 4)
	byTicker := map[string][]string{}
	for _, s := range f.convictions.stored {
		byTicker[s.Ticker] = append(byTicker[s.Ticker], s.Category)
		assert.NotEmpty(t, s.Breakdown)
	}
	assert.Equal(t, []string{"STRONG_BUY", "STRONG_BUY", "STRONG_BUY"}, byTicker["ACME"])
	assert.Equal(t, []string{"WATCH"}, byTicker["BETA"])

	require.Len(t, f.publisher.args, 4)
	for _, a := range f.publisher.args {
		assert.Equal(t, common.RedisStreamConvictionResults, a.Stream)
		assert.Equal(t, int64(1000), a.MaxLen)
		var event dto.ConvictionResponse
		require.NoError(t, json.Unmarshal(a.Values.(map[string]interface{})[common.RedisStreamPayloadField].([]byte), &event))
		assert.NotZero(t, event.ID)
	}

	require.Len(t, f.notifier.messages, 1)
	assert.Contains(t, f.notifier.messages[0], "*ACME*")
	assert.NotContains(t, f.notifier.messages[0], "*BETA*")
}

func TestScoringService_RunCycle_SkipsStaleAlerts(t *testing.T) {
	f := newScoringFixture(t, []entity.InsiderTransaction{
		purchase("OLD", "Alice", day(-120), 1000, "10.00"),
		purchase("OLD", "Bob", day(-120), 1000, "10.00"),
		purchase("OLD", "Carol", day(-120), 1000, "10.00"),
	})
	cache := signal.NewCache()
	require.NoError(t, cache.Put("OLD", signal.SourceMarketPrice, signal.Price{Last: 10}, time.Hour))
	engine, err := conviction.NewEngine(conviction.DefaultConfig(), cache, signal.NewPriceLookup(cache, true),
		logger.NewNop(), conviction.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	f.svc.engine = engine

	report, err := f.svc.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Scored)
	assert.Equal(t, 0, report.Alerted)
	assert.Empty(t, f.notifier.messages)
	assert.Equal(t, string(conviction.TimingStale), f.convictions.stored[0].TimingCategory)
}

func TestScoringService_RunCycle_Empty(t *testing.T) {
	f := newScoringFixture(t, nil)

	report, err := f.svc.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Scored)
	assert.Empty(t, f.publisher.args)
	assert.Empty(t, f.notifier.messages)
}

func TestScoringService_RunCycle_Failures(t *testing.T) {
	t.Run("load", func(t *testing.T) {
		f := newScoringFixture(t, nil)
		f.transactions.err = errBoom

		_, err := f.svc.RunCycle(context.Background())
		assert.ErrorIs(t, err, errBoom)
		require.Len(t, f.notifier.messages, 1)
		assert.Contains(t, f.notifier.messages[0], "load_purchases")
	})

	t.Run("persist", func(t *testing.T) {
		f := newScoringFixture(t, []entity.InsiderTransaction{purchase("ACME", "Alice", day(-1), 10, "1.00")})
		f.convictions.err = errBoom

		_, err := f.svc.RunCycle(context.Background())
		assert.ErrorIs(t, err, errBoom)
		assert.Empty(t, f.publisher.args)
	})

	t.Run("publish keeps going", func(t *testing.T) {
		f := newScoringFixture(t, []entity.InsiderTransaction{purchase("ACME", "Alice", day(-1), 10, "1.00")})
		f.publisher.err = errBoom

		report, err := f.svc.RunCycle(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, report.Persisted)
		assert.Zero(t, report.Published)
	})
}

func TestScoringService_Score_Malformed(t *testing.T) {
	f := newScoringFixture(t, nil)

	results, err := f.svc.Score(context.Background(), []entity.InsiderTransaction{
		purchase("ACME", "Alice", day(-1), 10, "1.00"),
		purchase("", "Bob", day(-1), 10, "1.00"),
	})

	require.Len(t, results, 1)
	assert.ErrorIs(t, err, conviction.ErrMalformedTransaction)
	assert.ErrorIs(t, err, conviction.ErrMissingTicker)

	var malformed *conviction.MalformedBatchError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 1, malformed.Rejections[0].Index)
}

func TestToTransactions(t *testing.T) {
	txns := ToTransactions([]dto.TransactionRequest{
		{Ticker: "acme", InsiderName: "Alice", TransactionDate: "2024-06-03", FilingDate: "2024-06-04", Shares: 10},
		{Ticker: "ACME", TransactionCode: "S", TransactionDate: "June 3"},
	})

	require.Len(t, txns, 2)
	assert.Equal(t, entity.TransactionCodePurchase, txns[0].TransactionCode)
	assert.Equal(t, day(-7), txns[0].TransactionDate)
	assert.Equal(t, day(-6), txns[0].FilingDate)
	assert.Equal(t, entity.TransactionCodeSale, txns[1].TransactionCode)
	assert.True(t, txns[1].TransactionDate.IsZero())
}
