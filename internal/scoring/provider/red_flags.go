package provider

import (
	"context"
	"fmt"
	"time"

	"insider-conviction/internal/scoring/repository"
	"insider-conviction/internal/signal"
	"insider-conviction/pkg/logger"
)

const (
	insiderSalesLookbackDays = 30
	earningsLookbackDays     = 120
	earningsLookaheadDays    = 90
)

type redFlagsProvider struct {
	feed
	transactions repository.InsiderTransactionRepository
	finnhub      repository.FinnhubRepository
	yahoo        repository.YahooFinanceRepository
	prices       *signal.PriceLookup
	log          *logger.Logger
	now          func() time.Time
}

// NewRedFlagsProvider collects recent insider selling, the last price and the
// earnings calendar around now. finnhub and yahoo may be nil. Missing earnings
// data degrades to an empty calendar; it does not make the whole detector unavailable.
func NewRedFlagsProvider(
	transactions repository.InsiderTransactionRepository,
	finnhub repository.FinnhubRepository,
	yahoo repository.YahooFinanceRepository,
	prices *signal.PriceLookup,
	log *logger.Logger,
	ttl time.Duration,
) signal.Provider {
	return &redFlagsProvider{
		feed:         feed{source: signal.SourceRedFlags, ttl: ttl},
		transactions: transactions,
		finnhub:      finnhub,
		yahoo:        yahoo,
		prices:       prices,
		log:          log,
		now:          time.Now,
	}
}

func (p *redFlagsProvider) Fetch(ctx context.Context, ticker string) (signal.Payload, error) {
	now := p.now().UTC()

	sales, err := p.transactions.CountSales(ctx, ticker, now.AddDate(0, 0, -insiderSalesLookbackDays))
	if err != nil {
		return nil, fmt.Errorf("failed to count insider sales: %w", err)
	}

	flags := signal.RedFlags{InsiderSales: int(sales)}

	if price, ok := p.prices.CurrentPrice(ticker); ok {
		flags.LastPrice = price
	} else if p.yahoo != nil {
		if quote, err := p.yahoo.GetQuote(ctx, ticker, "1d", "5d"); err == nil {
			flags.LastPrice = quote.Price
		} else {
			p.log.Debug("Red flag detector has no price", logger.StringField("ticker", ticker), logger.ErrorField(err))
		}
	}

	if p.finnhub == nil {
		return flags, nil
	}
	dates, err := p.finnhub.GetEarningsDates(ctx, ticker,
		now.AddDate(0, 0, -earningsLookbackDays), now.AddDate(0, 0, earningsLookaheadDays))
	if err != nil {
		p.log.Debug("Red flag detector has no earnings calendar", logger.StringField("ticker", ticker), logger.ErrorField(err))
	} else {
		flags.EarningsDates = dates
	}

	return flags, nil
}
