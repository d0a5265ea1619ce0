package conviction

import "time"

// Result is the conviction output for one grouped purchase in one scoring pass.
type Result struct {
	Ticker               string             `json:"ticker"`
	Insider              string             `json:"insider"`
	TransactionDate      time.Time          `json:"transaction_date"`
	Transaction          GroupedTransaction `json:"transaction"`
	BaseScore            float64            `json:"base_score"`
	ConfidenceMultiplier float64            `json:"confidence_multiplier"`
	CoordinatedInsiders  int                `json:"coordinated_insiders"`
	AdjustedScore        float64            `json:"adjusted_score"`
	TimingCategory       TimingCategory     `json:"timing_category"`
	TimingMultiplier     float64            `json:"timing_multiplier"`
	PriceChangePct       float64            `json:"price_change_pct"`
	DaysSinceTransaction int                `json:"days_since_transaction"`
	Category             Band               `json:"category"`
	RecommendedAction    string             `json:"recommended_action"`
	Components           []ComponentScore   `json:"components"`
	Indeterminate        bool               `json:"indeterminate"`
	ScoredAt             time.Time          `json:"scored_at"`
}

// Component returns the named component, if present.
func (r Result) Component(cat Category) (ComponentScore, bool) {
	for _, c := range r.Components {
		if c.Name == cat {
			return c, true
		}
	}
	return ComponentScore{}, false
}
