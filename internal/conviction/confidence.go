package conviction

import (
	"time"

	"insider-conviction/pkg/utils"
)

const DefaultCoordinationWindowDays = 14

// ConfidenceMultiplier counts distinct insiders whose purchases fall within windowDays of the
// most recent purchase in groups and maps the count to 1.0, 1.25 (two) or 1.4 (three or more).
func ConfidenceMultiplier(groups []GroupedTransaction, windowDays int) float64 {
	var latest time.Time
	for _, g := range groups {
		if g.TransactionDate().After(latest) {
			latest = g.TransactionDate()
		}
	}
	return multiplierForInsiders(CoordinatedInsiders(groups, latest, windowDays))
}

// CoordinatedInsiders counts distinct insiders with a purchase within windowDays of anchor, either side.
func CoordinatedInsiders(groups []GroupedTransaction, anchor time.Time, windowDays int) int {
	seen := make(map[string]struct{})
	for _, g := range groups {
		days := utils.DaysBetween(anchor, g.TransactionDate())
		if days < 0 {
			days = -days
		}
		if days > windowDays {
			continue
		}
		for _, name := range g.Insiders {
			seen[normalizeName(name)] = struct{}{}
		}
	}
	return len(seen)
}

func multiplierForInsiders(n int) float64 {
	switch {
	case n >= 3:
		return 1.4
	case n == 2:
		return 1.25
	default:
		return 1.0
	}
}
