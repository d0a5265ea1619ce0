package conviction

import "math"

// ComponentScore is one category's normalized sub-score.
type ComponentScore struct {
	Name      Category `json:"name"`
	Value     float64  `json:"value"`
	Weight    float64  `json:"weight"`
	Available bool     `json:"available"`
	Stale     bool     `json:"stale"`
	Detail    string   `json:"detail,omitempty"`
}

// Fuse returns the weighted mean of the available components, re-normalized over their weights.
// It returns ErrIndeterminate when nothing is available.
func Fuse(components []ComponentScore) (float64, error) {
	var weighted, total float64
	for _, c := range components {
		if !c.Available || c.Weight <= 0 {
			continue
		}
		weighted += c.Weight * clamp01(c.Value)
		total += c.Weight
	}
	if total == 0 {
		return 0, ErrIndeterminate
	}
	return clamp01(weighted / total), nil
}

// AvailableWeight sums the weights of available components.
func AvailableWeight(components []ComponentScore) float64 {
	var total float64
	for _, c := range components {
		if c.Available {
			total += c.Weight
		}
	}
	return total
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
