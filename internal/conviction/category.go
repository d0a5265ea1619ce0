package conviction

import (
	"fmt"

	"insider-conviction/internal/signal"
)

// Category names one of the nine scored components.
type Category string

const (
	CategoryFilingSpeed       Category = "filing_speed"
	CategoryShortInterest     Category = "short_interest"
	CategoryAccumulation      Category = "accumulation"
	CategoryRedFlags          Category = "red_flags"
	CategoryEarningsSentiment Category = "earnings_sentiment"
	CategoryNewsSentiment     Category = "news_sentiment"
	CategoryOptionsFlow       Category = "options_flow"
	CategoryAnalystSentiment  Category = "analyst_sentiment"
	CategoryIntradayMomentum  Category = "intraday_momentum"
)

// Categories is the canonical component order used in results and breakdowns.
var Categories = []Category{
	CategoryFilingSpeed,
	CategoryShortInterest,
	CategoryAccumulation,
	CategoryRedFlags,
	CategoryEarningsSentiment,
	CategoryNewsSentiment,
	CategoryOptionsFlow,
	CategoryAnalystSentiment,
	CategoryIntradayMomentum,
}

// categorySources maps provider-backed categories to their feed.
// Filing speed and accumulation come from the transactions themselves.
var categorySources = map[Category]signal.Source{
	CategoryShortInterest:     signal.SourceShortInterest,
	CategoryRedFlags:          signal.SourceRedFlags,
	CategoryEarningsSentiment: signal.SourceEarningsSentiment,
	CategoryNewsSentiment:     signal.SourceNewsSentiment,
	CategoryOptionsFlow:       signal.SourceOptionsFlow,
	CategoryAnalystSentiment:  signal.SourceAnalystSentiment,
	CategoryIntradayMomentum:  signal.SourceIntradayMomentum,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory validates a category name coming from configuration.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}
