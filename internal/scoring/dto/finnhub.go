package dto

// FinnhubRecommendation is one period of /stock/recommendation.
type FinnhubRecommendation struct {
	Symbol     string `json:"symbol"`
	Period     string `json:"period"`
	StrongBuy  int    `json:"strongBuy"`
	Buy        int    `json:"buy"`
	Hold       int    `json:"hold"`
	Sell       int    `json:"sell"`
	StrongSell int    `json:"strongSell"`
}

// FinnhubEarningsCalendar is the /calendar/earnings response.
type FinnhubEarningsCalendar struct {
	EarningsCalendar []FinnhubEarningsEvent `json:"earningsCalendar"`
}

type FinnhubEarningsEvent struct {
	Symbol          string   `json:"symbol"`
	Date            string   `json:"date"`
	Hour            string   `json:"hour"`
	Quarter         int      `json:"quarter"`
	Year            int      `json:"year"`
	EpsEstimate     *float64 `json:"epsEstimate"`
	EpsActual       *float64 `json:"epsActual"`
	RevenueEstimate *float64 `json:"revenueEstimate"`
	RevenueActual   *float64 `json:"revenueActual"`
}
