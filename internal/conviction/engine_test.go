package conviction

import (
	"errors"
	"testing"
	"time"

	"insider-conviction/internal/entity"
	"insider-conviction/internal/signal"
	"insider-conviction/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, cache *signal.Cache, prices PriceLookup) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), cache, prices, logger.NewNop(), WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	return e
}

func TestNewEngine_ConfigurationErrors(t *testing.T) {
	cache := seededCache(testNow)

	cfg := DefaultConfig()
	cfg.Weights[CategoryRedFlags] = 0.5
	_, err := NewEngine(cfg, cache, stubPrices{}, nil)
	assert.ErrorIs(t, err, ErrInvalidWeights)

	cfg = DefaultConfig()
	cfg.Weights["sunspots"] = 0.1
	_, err = NewEngine(cfg, cache, stubPrices{}, nil)
	assert.ErrorIs(t, err, ErrUnknownCategory)

	cfg = DefaultConfig()
	cfg.CoordinationWindowDays = 0
	_, err = NewEngine(cfg, cache, stubPrices{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewEngine(DefaultConfig(), nil, stubPrices{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEngine_ScoreBatch_DegradedToTransactionSignals(t *testing.T) {
	e := newTestEngine(t, seededCache(testNow), stubPrices{})

	results, err := e.ScoreBatch([]entity.InsiderTransaction{purchase("X", "A", day(-2), 100, "10")})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.InDelta(t, 0.25/0.40, r.BaseScore, 1e-9)
	assert.Equal(t, 1.0, r.ConfidenceMultiplier)
	assert.InDelta(t, 0.625, r.AdjustedScore, 1e-9)
	assert.Equal(t, BandWatch, r.Category)
	assert.Equal(t, "monitor only", r.RecommendedAction)
	assert.Equal(t, TimingUnknown, r.TimingCategory)
	assert.Equal(t, 0.5, r.TimingMultiplier)
	assert.False(t, r.Indeterminate)
	assert.Equal(t, testNow, r.ScoredAt)
}

func TestEngine_ScoreBatch_AccumulationAloneIsNotIndeterminate(t *testing.T) {
	e := newTestEngine(t, seededCache(testNow), stubPrices{})

	tx := purchase("X", "A", day(-2), 100, "10")
	tx.FilingDate = time.Time{}
	results, err := e.ScoreBatch([]entity.InsiderTransaction{tx})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.False(t, r.Indeterminate)
	var available []Category
	for _, c := range r.Components {
		if c.Available {
			available = append(available, c.Name)
			assert.InDelta(t, c.Value, r.BaseScore, 1e-9)
		}
	}
	assert.Equal(t, []Category{CategoryAccumulation}, available)
}

func TestEngine_ScoreBatch_CoordinatedBuying(t *testing.T) {
	e := newTestEngine(t, seededCache(testNow), stubPrices{"X": 11})

	results, err := e.ScoreBatch([]entity.InsiderTransaction{
		purchase("X", "A", day(-3), 100, "10"),
		purchase("X", "B", day(-5), 100, "10"),
		purchase("Y", "C", day(-5), 100, "10"),
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, r := range results {
		if r.Ticker != "X" {
			assert.Equal(t, 1.0, r.ConfidenceMultiplier)
			continue
		}
		assert.Equal(t, 2, r.CoordinatedInsiders)
		assert.Equal(t, 1.25, r.ConfidenceMultiplier)
		assert.InDelta(t, (0.25+0.15*0.6)/0.40, r.BaseScore, 1e-9)
		assert.Equal(t, 1.0, r.AdjustedScore, "adjusted score is capped")
		assert.Equal(t, BandStrongBuy, r.Category)
		assert.Equal(t, TimingEarly, r.TimingCategory)
		assert.InDelta(t, 10.0, r.PriceChangePct, 1e-9)
	}
}

func TestEngine_ScoreBatch_ReportsMalformed(t *testing.T) {
	e := newTestEngine(t, seededCache(testNow), stubPrices{})
	bad := purchase("X", "A", day(-2), -1, "10")

	results, err := e.ScoreBatch([]entity.InsiderTransaction{bad, purchase("X", "A", day(-2), 100, "10")})
	require.Len(t, results, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedTransaction)
	assert.ErrorIs(t, err, ErrNegativeShares)

	var batchErr *MalformedBatchError
	require.True(t, errors.As(err, &batchErr))
	assert.Equal(t, 1, batchErr.Rejected())
	assert.Equal(t, 2, batchErr.Total)
}

func TestEngine_ScoreBatch_Idempotent(t *testing.T) {
	cache := seededCache(testNow)
	putAll(t, cache, "X", time.Hour,
		signal.ShortInterest{PercentOfFloat: 8},
		signal.NewsSentiment{Sentiment: 0.3, Articles: 4},
	)
	e := newTestEngine(t, cache, stubPrices{"X": 9})
	batch := []entity.InsiderTransaction{
		purchase("X", "A", day(-12), 5000, "10"),
		purchase("X", "A", day(-12), 5000, "10"),
		purchase("X", "B", day(-40), 100, "12"),
	}

	first, err := e.ScoreBatch(batch)
	require.NoError(t, err)
	second, err := e.ScoreBatch(batch)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExplain_RoundTrip(t *testing.T) {
	cache := seededCache(testNow)
	putAll(t, cache, "X", time.Hour,
		signal.ShortInterest{PercentOfFloat: 22},
		signal.AnalystSentiment{Buy: 3, Hold: 1},
	)
	e := newTestEngine(t, cache, stubPrices{"X": 10})

	results, err := e.ScoreBatch([]entity.InsiderTransaction{purchase("X", "A", day(-1), 100, "10")})
	require.NoError(t, err)
	b := Explain(results[0])

	require.Len(t, b.Components, len(Categories))
	var weights, effective, contribution float64
	for i, c := range b.Components {
		assert.Equal(t, Categories[i], c.Name)
		weights += c.Weight
		effective += c.EffectiveWeight
		contribution += c.Contribution
	}
	assert.InDelta(t, 1.0, weights, 1e-9)
	assert.InDelta(t, 1.0, effective, 1e-9)
	assert.InDelta(t, 0.25+0.20+0.15+0.05, b.AvailableWeight, 1e-9)
	assert.InDelta(t, b.BaseScore, contribution, 1e-9)
}

func TestAdjustedScore_EndToEndCategory(t *testing.T) {
	adjusted := AdjustedScore(0.56, 1.25)
	assert.InDelta(t, 0.70, adjusted, 1e-9)

	band, action := Categorize(adjusted)
	assert.Equal(t, BandAccumulate, band)
	assert.Equal(t, "build position gradually", action)

	assert.Equal(t, 1.0, AdjustedScore(0.9, 1.4))
}
