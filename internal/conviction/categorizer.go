package conviction

// Band is the action tier of an adjusted score.
type Band string

const (
	BandSkip       Band = "SKIP"
	BandWeak       Band = "WEAK"
	BandWatch      Band = "WATCH"
	BandAccumulate Band = "ACCUMULATE"
	BandBuy        Band = "BUY"
	BandStrongBuy  Band = "STRONG_BUY"

	// BandIndeterminate marks a result with no available components. It is not a tier.
	BandIndeterminate Band = "INDETERMINATE"
)

// Bands lists the tiers from lowest to highest.
var Bands = []Band{BandSkip, BandWeak, BandWatch, BandAccumulate, BandBuy, BandStrongBuy}

var bandActions = map[Band]string{
	BandSkip:          "do not trade",
	BandWeak:          "low-confidence, usually pass",
	BandWatch:         "monitor only",
	BandAccumulate:    "build position gradually",
	BandBuy:           "take a position",
	BandStrongBuy:     "act immediately, maximum size",
	BandIndeterminate: "insufficient signal data",
}

// Action returns the recommended action for b.
func (b Band) Action() string {
	return bandActions[b]
}

// Rank orders bands; higher is stronger. Unknown bands rank below SKIP.
func (b Band) Rank() int {
	for i, known := range Bands {
		if b == known {
			return i
		}
	}
	return -1
}

type bandFloor struct {
	min       float64
	inclusive bool
	band      Band
}

// 0.50 itself is SKIP; every other threshold belongs to the tier it opens.
var bandFloors = []bandFloor{
	{0.85, true, BandStrongBuy},
	{0.75, true, BandBuy},
	{0.65, true, BandAccumulate},
	{0.60, true, BandWatch},
	{0.50, false, BandWeak},
}

// Categorize maps an adjusted score to its band and recommended action.
func Categorize(score float64) (Band, string) {
	for _, f := range bandFloors {
		if score > f.min || (f.inclusive && score == f.min) {
			return f.band, f.band.Action()
		}
	}
	return BandSkip, BandSkip.Action()
}
