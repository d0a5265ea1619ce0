package conviction

import (
	"fmt"
	"math"
)

const weightSumTolerance = 1e-9

// Weights assigns each category its share of the base score.
type Weights map[Category]float64

// DefaultWeights returns the production weight set.
func DefaultWeights() Weights {
	return Weights{
		CategoryFilingSpeed:       0.25,
		CategoryShortInterest:     0.20,
		CategoryAccumulation:      0.15,
		CategoryRedFlags:          0.10,
		CategoryEarningsSentiment: 0.08,
		CategoryNewsSentiment:     0.08,
		CategoryOptionsFlow:       0.05,
		CategoryAnalystSentiment:  0.05,
		CategoryIntradayMomentum:  0.04,
	}
}

// ParseWeights converts a configuration map into Weights. An empty map yields the defaults.
func ParseWeights(raw map[string]float64) (Weights, error) {
	if len(raw) == 0 {
		return DefaultWeights(), nil
	}
	w := make(Weights, len(raw))
	for name, v := range raw {
		cat, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		w[cat] = v
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// Validate checks that every category has a weight in (0,1] and that they sum to 1.0.
func (w Weights) Validate() error {
	for cat := range w {
		if !cat.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
		}
	}

	var sum float64
	for _, cat := range Categories {
		v, ok := w[cat]
		if !ok {
			return fmt.Errorf("%w: missing weight for %s", ErrInvalidWeights, cat)
		}
		if v <= 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s weight %v outside (0,1]", ErrInvalidWeights, cat, v)
		}
		sum += v
	}

	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: weights sum to %v, want 1.0", ErrInvalidWeights, sum)
	}
	return nil
}
