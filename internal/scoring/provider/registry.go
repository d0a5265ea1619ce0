package provider

import (
	"insider-conviction/internal/scoring/config"
	"insider-conviction/internal/scoring/repository"
	"insider-conviction/internal/signal"
	"insider-conviction/pkg/logger"
)

// Dependencies are the repositories the providers are built from. A nil
// repository disables the providers that need it.
type Dependencies struct {
	Yahoo        repository.YahooFinanceRepository
	Finnhub      repository.FinnhubRepository
	Polygon      repository.PolygonRepository
	News         repository.NewsFeedRepository
	Earnings     repository.EarningsAnalyzerRepository
	Transactions repository.InsiderTransactionRepository
	Prices       *signal.PriceLookup
}

// Build returns the enabled providers in canonical source order.
func Build(signals config.Signals, deps Dependencies, log *logger.Logger) []signal.Provider {
	var providers []signal.Provider
	for _, src := range signal.Sources {
		feed := signals.Feed(src)
		if !feed.Enabled {
			log.Info("Signal feed disabled", logger.StringField("source", string(src)))
			continue
		}

		p := newProvider(src, feed, deps, log)
		if p == nil {
			log.Warn("Signal feed has no backing repository", logger.StringField("source", string(src)))
			continue
		}
		providers = append(providers, p)
	}
	return providers
}

func newProvider(src signal.Source, feed config.SignalFeed, deps Dependencies, log *logger.Logger) signal.Provider {
	switch src {
	case signal.SourceMarketPrice:
		if deps.Yahoo != nil {
			return NewMarketPriceProvider(deps.Yahoo, feed.TTL)
		}
	case signal.SourceShortInterest:
		if deps.Yahoo != nil {
			return NewShortInterestProvider(deps.Yahoo, feed.TTL)
		}
	case signal.SourceIntradayMomentum:
		if deps.Yahoo != nil {
			return NewIntradayMomentumProvider(deps.Yahoo, feed.TTL)
		}
	case signal.SourceAnalystSentiment:
		if deps.Finnhub != nil {
			return NewAnalystSentimentProvider(deps.Finnhub, feed.TTL)
		}
	case signal.SourceOptionsFlow:
		if deps.Polygon != nil {
			return NewOptionsFlowProvider(deps.Polygon, feed.TTL)
		}
	case signal.SourceNewsSentiment:
		if deps.News != nil {
			return NewNewsSentimentProvider(deps.News, feed.TTL)
		}
	case signal.SourceEarningsSentiment:
		if deps.News != nil && deps.Earnings != nil {
			return NewEarningsSentimentProvider(deps.News, deps.Earnings, feed.TTL)
		}
	case signal.SourceRedFlags:
		if deps.Transactions != nil && deps.Prices != nil {
			return NewRedFlagsProvider(deps.Transactions, deps.Finnhub, deps.Yahoo, deps.Prices, log, feed.TTL)
		}
	}
	return nil
}
