package signal

import "time"

// Payload is the provider-specific value of a snapshot. The set of
// implementations is closed; consumers switch on the concrete type.
type Payload interface {
	Source() Source
	isPayload()
}

// Price is the latest traded price.
type Price struct {
	Last     float64   `json:"last"`
	Currency string    `json:"currency"`
	AsOf     time.Time `json:"as_of"`
}

// ShortInterest is the reported short position relative to float.
type ShortInterest struct {
	PercentOfFloat float64 `json:"percent_of_float"`
	DaysToCover    float64 `json:"days_to_cover"`
}

// EarningsSentiment is the model-rated tone of recent earnings coverage, in [-1,1].
type EarningsSentiment struct {
	Sentiment  float64 `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Summary    string  `json:"summary"`
}

// NewsSentiment is the aggregate tone of recent headlines, in [-1,1].
type NewsSentiment struct {
	Sentiment float64 `json:"sentiment"`
	Articles  int     `json:"articles"`
}

// OptionsFlow is the aggregate call and put activity across listed contracts.
type OptionsFlow struct {
	CallVolume       float64 `json:"call_volume"`
	PutVolume        float64 `json:"put_volume"`
	CallOpenInterest float64 `json:"call_open_interest"`
	PutOpenInterest  float64 `json:"put_open_interest"`
}

// AnalystSentiment is the latest recommendation-trend period.
type AnalystSentiment struct {
	StrongBuy  int    `json:"strong_buy"`
	Buy        int    `json:"buy"`
	Hold       int    `json:"hold"`
	Sell       int    `json:"sell"`
	StrongSell int    `json:"strong_sell"`
	Period     string `json:"period"`
}

// IntradayMomentum is derived from the current session's bars.
type IntradayMomentum struct {
	RSI       float64 `json:"rsi"`
	ChangePct float64 `json:"change_pct"`
}

// RedFlags carries the raw facts the scorer turns into penalties relative
// to a specific transaction.
type RedFlags struct {
	InsiderSales  int         `json:"insider_sales"`
	LastPrice     float64     `json:"last_price"`
	EarningsDates []time.Time `json:"earnings_dates"`
}

func (Price) Source() Source             { return SourceMarketPrice }
func (ShortInterest) Source() Source     { return SourceShortInterest }
func (EarningsSentiment) Source() Source { return SourceEarningsSentiment }
func (NewsSentiment) Source() Source     { return SourceNewsSentiment }
func (OptionsFlow) Source() Source       { return SourceOptionsFlow }
func (AnalystSentiment) Source() Source  { return SourceAnalystSentiment }
func (IntradayMomentum) Source() Source  { return SourceIntradayMomentum }
func (RedFlags) Source() Source          { return SourceRedFlags }

func (Price) isPayload()             {}
func (ShortInterest) isPayload()     {}
func (EarningsSentiment) isPayload() {}
func (NewsSentiment) isPayload()     {}
func (OptionsFlow) isPayload()       {}
func (AnalystSentiment) isPayload()  {}
func (IntradayMomentum) isPayload()  {}
func (RedFlags) isPayload()          {}
