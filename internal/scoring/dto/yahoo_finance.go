package dto

// YahooChartResponse is the subset of the v8 chart response we read.
type YahooChartResponse struct {
	Chart struct {
		Result []YahooChartResult `json:"result"`
		Error  *YahooError        `json:"error"`
	} `json:"chart"`
}

type YahooChartResult struct {
	Meta struct {
		Currency           string  `json:"currency"`
		Symbol             string  `json:"symbol"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
		RegularMarketTime  int64   `json:"regularMarketTime"`
		ChartPreviousClose float64 `json:"chartPreviousClose"`
	} `json:"meta"`
	Timestamp []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

// YahooQuoteSummaryResponse is the subset of the v10 quoteSummary response we read.
type YahooQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			DefaultKeyStatistics struct {
				ShortPercentOfFloat YahooRawValue `json:"shortPercentOfFloat"`
				ShortRatio          YahooRawValue `json:"shortRatio"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *YahooError `json:"error"`
	} `json:"quoteSummary"`
}

type YahooRawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

type YahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// StockQuote is the normalized chart data used by the price and momentum providers.
type StockQuote struct {
	Symbol        string
	Currency      string
	Price         float64
	PreviousClose float64
	MarketTime    int64
	Closes        []float64
}

// ShortInterestData is the normalized short interest for a ticker.
type ShortInterestData struct {
	PercentOfFloat float64
	DaysToCover    float64
}
