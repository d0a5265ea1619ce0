package signal

import "fmt"

// Source identifies the provider feed a snapshot came from.
type Source string

const (
	SourceMarketPrice       Source = "market_price"
	SourceShortInterest     Source = "short_interest"
	SourceEarningsSentiment Source = "earnings_sentiment"
	SourceNewsSentiment     Source = "news_sentiment"
	SourceOptionsFlow       Source = "options_flow"
	SourceAnalystSentiment  Source = "analyst_sentiment"
	SourceIntradayMomentum  Source = "intraday_momentum"
	SourceRedFlags          Source = "red_flags"
)

// Sources lists every known feed in a stable order.
var Sources = []Source{
	SourceMarketPrice,
	SourceShortInterest,
	SourceEarningsSentiment,
	SourceNewsSentiment,
	SourceOptionsFlow,
	SourceAnalystSentiment,
	SourceIntradayMomentum,
	SourceRedFlags,
}

// ParseSource validates a source name coming from configuration.
func ParseSource(s string) (Source, error) {
	for _, src := range Sources {
		if string(src) == s {
			return src, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSource, s)
}
