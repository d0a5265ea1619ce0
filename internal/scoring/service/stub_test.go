package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"insider-conviction/internal/entity"
	"insider-conviction/internal/signal"

	"github.com/redis/go-redis/v9"
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
		InsiderRole:     entity.InsiderRoleDirector,
		TransactionCode: entity.TransactionCodePurchase,
		TransactionDate: date,
		FilingDate:      date,
		Shares:          shares,
		PricePerShare:   decimal.RequireFromString(price),
	}
}

type stubTransactionRepo struct {
	purchases []entity.InsiderTransaction
	tickers   []string
	err       error
	since     time.Time

	created   []entity.InsiderTransaction
	createErr error
}

func (s *stubTransactionRepo) GetPurchasesSince(ctx context.Context, since time.Time) ([]entity.InsiderTransaction, error) {
	s.since = since
	return s.purchases, s.err
}

func (s *stubTransactionRepo) GetActiveTickers(ctx context.Context, since time.Time) ([]string, error) {
	s.since = since
	return s.tickers, s.err
}

func (s *stubTransactionRepo) CountSales(ctx context.Context, ticker string, since time.Time) (int64, error) {
	return 0, nil
}

func (s *stubTransactionRepo) CreateBatch(ctx context.Context, txns []entity.InsiderTransaction) (int64, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	s.created = append(s.created, txns...)
	return int64(len(txns)), nil
}

type stubConvictionRepo struct {
	stored []entity.ConvictionSignal
	latest []entity.ConvictionSignal
	err    error

	category string
	ticker   string
	limit    int
}

func (s *stubConvictionRepo) CreateBatch(ctx context.Context, signals []entity.ConvictionSignal) error {
	if s.err != nil {
		return s.err
	}
	for i := range signals {
		signals[i].ID = int64(len(s.stored) + 1)
		s.stored = append(s.stored, signals[i])
	}
	return nil
}

func (s *stubConvictionRepo) GetLatest(ctx context.Context, category string, limit int) ([]entity.ConvictionSignal, error) {
	s.category, s.limit = category, limit
	return s.latest, s.err
}

func (s *stubConvictionRepo) GetLatestByTicker(ctx context.Context, ticker string, limit int) ([]entity.ConvictionSignal, error) {
	s.ticker, s.limit = ticker, limit
	return s.latest, s.err
}

type stubPublisher struct {
	mu   sync.Mutex
	args []*redis.XAddArgs
	err  error
}

func (s *stubPublisher) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	cmd := redis.NewStringCmd(ctx)
	if s.err != nil {
		cmd.SetErr(s.err)
		return cmd
	}
	s.args = append(s.args, a)
	cmd.SetVal("0-1")
	return cmd
}

type stubNotifier struct {
	messages []string
	err      error
}

func (s *stubNotifier) SendMessage(text string) error {
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, text)
	return nil
}

type stubProvider struct {
	source  signal.Source
	payload signal.Payload
	errFor  map[string]error
	calls   atomic.Int32
}

func (p *stubProvider) Source() signal.Source { return p.source }

func (p *stubProvider) TTL() time.Duration { return time.Hour }

func (p *stubProvider) Fetch(ctx context.Context, ticker string) (signal.Payload, error) {
	p.calls.Add(1)
	if err, ok := p.errFor[ticker]; ok {
		return nil, err
	}
	return p.payload, nil
}

var errBoom = errors.New("boom")
