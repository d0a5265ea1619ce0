package dto

// PolygonOptionsSnapshot is one page of /v3/snapshot/options/{underlying}.
type PolygonOptionsSnapshot struct {
	Status  string                  `json:"status"`
	Results []PolygonOptionContract `json:"results"`
	NextURL string                  `json:"next_url"`
}

type PolygonOptionContract struct {
	Details struct {
		ContractType string  `json:"contract_type"`
		StrikePrice  float64 `json:"strike_price"`
		Expiration   string  `json:"expiration_date"`
	} `json:"details"`
	Day struct {
		Volume float64 `json:"volume"`
	} `json:"day"`
	OpenInterest float64 `json:"open_interest"`
}
