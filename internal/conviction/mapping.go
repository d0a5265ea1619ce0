package conviction

// ShortInterestTier maps a minimum percent of float to a sub-score.
type ShortInterestTier struct {
	MinPercent float64 `mapstructure:"min_percent" json:"min_percent"`
	Score      float64 `mapstructure:"score" json:"score"`
}

// Mapping holds the raw-signal to sub-score constants.
type Mapping struct {
	// Filing speed, by days between trade and filing.
	FilingSameDay        float64 `mapstructure:"filing_same_day"`
	FilingNextDay        float64 `mapstructure:"filing_next_day"`
	FilingWithinDeadline float64 `mapstructure:"filing_within_deadline"`
	FilingLate           float64 `mapstructure:"filing_late"`
	FilingDeadlineDays   int     `mapstructure:"filing_deadline_days"`

	// Short interest tiers, checked highest first; below every tier scores ShortInterestFloor.
	ShortInterestTiers []ShortInterestTier `mapstructure:"short_interest_tiers"`
	ShortInterestFloor float64             `mapstructure:"short_interest_floor"`

	// Accumulation by distinct insiders in the coordination window.
	AccumulationSingle  float64 `mapstructure:"accumulation_single"`
	AccumulationPair    float64 `mapstructure:"accumulation_pair"`
	AccumulationCluster float64 `mapstructure:"accumulation_cluster"`

	// Red-flag penalties multiply from a clean 1.0 and are floored at RedFlagFloor.
	InsiderSellingPenalty float64 `mapstructure:"insider_selling_penalty"`
	PriceCollapsePenalty  float64 `mapstructure:"price_collapse_penalty"`
	PriceCollapsePct      float64 `mapstructure:"price_collapse_pct"`
	EarningsBlackoutDays  int     `mapstructure:"earnings_blackout_days"`
	EarningsPenalty       float64 `mapstructure:"earnings_penalty"`
	SmallPurchaseValue    float64 `mapstructure:"small_purchase_value"`
	SmallPurchasePenalty  float64 `mapstructure:"small_purchase_penalty"`
	RedFlagFloor          float64 `mapstructure:"red_flag_floor"`
}

// DefaultMapping returns the production constants.
func DefaultMapping() Mapping {
	return Mapping{
		FilingSameDay:        1.0,
		FilingNextDay:        1.2 / 1.4,
		FilingWithinDeadline: 1.0 / 1.4,
		FilingLate:           0.7 / 1.4,
		FilingDeadlineDays:   2,

		ShortInterestTiers: []ShortInterestTier{
			{MinPercent: 20, Score: 1.0},
			{MinPercent: 10, Score: 0.7},
			{MinPercent: 5, Score: 0.4},
		},
		ShortInterestFloor: 0.2,

		AccumulationSingle:  0.0,
		AccumulationPair:    0.6,
		AccumulationCluster: 1.0,

		InsiderSellingPenalty: 0.5,
		PriceCollapsePenalty:  0.8,
		PriceCollapsePct:      20,
		EarningsBlackoutDays:  14,
		EarningsPenalty:       0.3,
		SmallPurchaseValue:    50000,
		SmallPurchasePenalty:  0.85,
		RedFlagFloor:          0.5,
	}
}

func (m Mapping) filingSpeed(delayDays int) float64 {
	switch {
	case delayDays <= 0:
		return m.FilingSameDay
	case delayDays == 1:
		return m.FilingNextDay
	case delayDays <= m.FilingDeadlineDays:
		return m.FilingWithinDeadline
	default:
		return m.FilingLate
	}
}

func (m Mapping) shortInterest(percentOfFloat float64) float64 {
	for _, tier := range m.ShortInterestTiers {
		if percentOfFloat >= tier.MinPercent {
			return tier.Score
		}
	}
	return m.ShortInterestFloor
}

func (m Mapping) accumulation(insiders int) float64 {
	switch {
	case insiders >= 3:
		return m.AccumulationCluster
	case insiders == 2:
		return m.AccumulationPair
	default:
		return m.AccumulationSingle
	}
}

// sentiment maps [-1,1] onto [0,1].
func sentiment(s float64) float64 {
	return (clamp(s, -1, 1) + 1) / 2
}
