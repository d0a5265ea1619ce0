package provider

import (
	"context"
	"fmt"
	"math"
	"time"

	"insider-conviction/internal/scoring/repository"
	"insider-conviction/internal/signal"
)

const (
	rsiPeriod  = 14
	neutralRSI = 50.0
	minBars    = 3
)

type intradayMomentumProvider struct {
	feed
	yahoo repository.YahooFinanceRepository
}

// NewIntradayMomentumProvider derives RSI and the session change from 5-minute bars.
func NewIntradayMomentumProvider(yahoo repository.YahooFinanceRepository, ttl time.Duration) signal.Provider {
	return &intradayMomentumProvider{feed: feed{source: signal.SourceIntradayMomentum, ttl: ttl}, yahoo: yahoo}
}

func (p *intradayMomentumProvider) Fetch(ctx context.Context, ticker string) (signal.Payload, error) {
	quote, err := p.yahoo.GetQuote(ctx, ticker, "5m", "1d")
	if err != nil {
		return nil, err
	}
	if len(quote.Closes) < minBars {
		return nil, fmt.Errorf("%w: only %d intraday bars for %s", signal.ErrUnavailable, len(quote.Closes), ticker)
	}

	last := quote.Closes[len(quote.Closes)-1]
	reference := quote.PreviousClose
	if reference <= 0 {
		reference = quote.Closes[0]
	}

	change := 0.0
	if reference > 0 {
		change = math.Round((last-reference)/reference*100*10000) / 10000
	}
	return signal.IntradayMomentum{RSI: RSI(quote.Closes, rsiPeriod), ChangePct: change}, nil
}

// RSI is Wilder's relative strength index over closes, in [0,100]. It is
// 50 when there are not enough closes for one period.
func RSI(closes []float64, period int) float64 {
	if period <= 0 || len(closes) <= period {
		return neutralRSI
	}

	var up, down float64
	for i := 1; i <= period; i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			up += d
		} else {
			down -= d
		}
	}
	up /= float64(period)
	down /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if d > 0 {
			gain = d
		} else {
			loss = -d
		}
		up = (up*float64(period-1) + gain) / float64(period)
		down = (down*float64(period-1) + loss) / float64(period)
	}

	switch {
	case down == 0 && up == 0:
		return neutralRSI
	case down == 0:
		return 100
	}
	rsi := 100 - 100/(1+up/down)
	return math.Max(0, math.Min(100, rsi))
}
