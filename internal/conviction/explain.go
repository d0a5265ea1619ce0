package conviction

import "time"

// ExplainedComponent is one row of a breakdown.
type ExplainedComponent struct {
	Name            Category `json:"name"`
	Value           float64  `json:"value"`
	Weight          float64  `json:"weight"`
	EffectiveWeight float64  `json:"effective_weight"`
	Contribution    float64  `json:"contribution"`
	Available       bool     `json:"available"`
	Stale           bool     `json:"stale"`
	Detail          string   `json:"detail,omitempty"`
}

// Breakdown is the presentation view of a Result.
type Breakdown struct {
	Ticker               string               `json:"ticker"`
	Insider              string               `json:"insider"`
	TransactionDate      time.Time            `json:"transaction_date"`
	BaseScore            float64              `json:"base_score"`
	ConfidenceMultiplier float64              `json:"confidence_multiplier"`
	AdjustedScore        float64              `json:"adjusted_score"`
	Category             Band                 `json:"category"`
	RecommendedAction    string               `json:"recommended_action"`
	TimingCategory       TimingCategory       `json:"timing_category"`
	TimingMultiplier     float64              `json:"timing_multiplier"`
	PriceChangePct       float64              `json:"price_change_pct"`
	AvailableWeight      float64              `json:"available_weight"`
	Components           []ExplainedComponent `json:"components"`
}

// Explain lays out every component with its configured weight and its weight after
// re-normalization over the available subset.
func Explain(r Result) Breakdown {
	available := AvailableWeight(r.Components)
	rows := make([]ExplainedComponent, 0, len(r.Components))
	for _, c := range r.Components {
		row := ExplainedComponent{
			Name:      c.Name,
			Value:     c.Value,
			Weight:    c.Weight,
			Available: c.Available,
			Stale:     c.Stale,
			Detail:    c.Detail,
		}
		if c.Available && available > 0 {
			row.EffectiveWeight = c.Weight / available
			row.Contribution = row.EffectiveWeight * c.Value
		}
		rows = append(rows, row)
	}

	return Breakdown{
		Ticker:               r.Ticker,
		Insider:              r.Insider,
		TransactionDate:      r.TransactionDate,
		BaseScore:            r.BaseScore,
		ConfidenceMultiplier: r.ConfidenceMultiplier,
		AdjustedScore:        r.AdjustedScore,
		Category:             r.Category,
		RecommendedAction:    r.RecommendedAction,
		TimingCategory:       r.TimingCategory,
		TimingMultiplier:     r.TimingMultiplier,
		PriceChangePct:       r.PriceChangePct,
		AvailableWeight:      available,
		Components:           rows,
	}
}
