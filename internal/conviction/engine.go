package conviction

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"insider-conviction/internal/entity"
	"insider-conviction/internal/signal"
	"insider-conviction/pkg/logger"
)

// PriceLookup returns the current price of a ticker.
type PriceLookup interface {
	CurrentPrice(ticker string) (float64, bool)
}

// Config configures an Engine.
type Config struct {
	Weights                Weights
	Mapping                Mapping
	CoordinationWindowDays int
	UseStaleSignals        bool
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Weights:                DefaultWeights(),
		Mapping:                DefaultMapping(),
		CoordinationWindowDays: DefaultCoordinationWindowDays,
		UseStaleSignals:        true,
	}
}

// Engine scores batches of insider purchases against the shared signal cache.
type Engine struct {
	cfg    Config
	scorer *Scorer
	prices PriceLookup
	log    *logger.Logger
	now    func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock overrides the time source used for entry timing.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine validates cfg and builds an engine. Configuration errors are returned here
// and nowhere else.
func NewEngine(cfg Config, signals signal.Reader, prices PriceLookup, log *logger.Logger, opts ...EngineOption) (*Engine, error) {
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	if cfg.CoordinationWindowDays <= 0 {
		return nil, fmt.Errorf("%w: coordination window must be positive, got %d", ErrInvalidConfig, cfg.CoordinationWindowDays)
	}
	if signals == nil || prices == nil {
		return nil, fmt.Errorf("%w: signal reader and price lookup are required", ErrInvalidConfig)
	}
	if log == nil {
		log = logger.NewNop()
	}

	tiers := append([]ShortInterestTier(nil), cfg.Mapping.ShortInterestTiers...)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinPercent > tiers[j].MinPercent })
	cfg.Mapping.ShortInterestTiers = tiers

	e := &Engine{
		cfg:    cfg,
		scorer: NewScorer(cfg.Weights, cfg.Mapping, signals, cfg.UseStaleSignals, cfg.CoordinationWindowDays),
		prices: prices,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Weights returns the validated weight set.
func (e *Engine) Weights() Weights {
	return e.cfg.Weights
}

// ScoreBatch groups the transactions and scores every group. Rejected records are reported
// through a *MalformedBatchError returned alongside the results for the valid ones.
func (e *Engine) ScoreBatch(txns []entity.InsiderTransaction) ([]Result, error) {
	groups, rejected := Group(txns)
	peers := ByTicker(groups)
	now := e.now()

	results := make([]Result, 0, len(groups))
	for _, g := range groups {
		results = append(results, e.score(g, peers[g.Ticker()], now))
	}

	e.log.Info("Scored insider batch",
		logger.IntField("transactions", len(txns)),
		logger.IntField("groups", len(groups)),
		logger.IntField("rejected", len(rejected)))

	if len(rejected) > 0 {
		return results, &MalformedBatchError{Total: len(txns), Rejections: rejected}
	}
	return results, nil
}

func (e *Engine) score(g GroupedTransaction, peers []GroupedTransaction, now time.Time) Result {
	components := e.scorer.Score(g, peers)
	for _, c := range components {
		if !c.Available {
			e.log.Debug("Component unavailable",
				logger.StringField("ticker", g.Ticker()),
				logger.StringField("component", string(c.Name)),
				logger.StringField("detail", c.Detail))
		}
	}

	insiders := CoordinatedInsiders(peers, g.TransactionDate(), e.cfg.CoordinationWindowDays)
	price, ok := e.prices.CurrentPrice(g.Ticker())
	timing := AnalyzeEntryTiming(g, price, ok, now)

	r := Result{
		Ticker:               g.Ticker(),
		Insider:              g.Insider(),
		TransactionDate:      g.TransactionDate(),
		Transaction:          g,
		ConfidenceMultiplier: multiplierForInsiders(insiders),
		CoordinatedInsiders:  insiders,
		TimingCategory:       timing.Category,
		TimingMultiplier:     timing.Multiplier,
		PriceChangePct:       timing.PriceChangePct,
		DaysSinceTransaction: timing.DaysSince,
		Components:           components,
		ScoredAt:             now,
	}

	base, err := Fuse(components)
	if errors.Is(err, ErrIndeterminate) {
		r.Indeterminate = true
		r.Category = BandIndeterminate
		r.RecommendedAction = BandIndeterminate.Action()
		return r
	}

	r.BaseScore = base
	r.AdjustedScore = AdjustedScore(base, r.ConfidenceMultiplier)
	r.Category, r.RecommendedAction = Categorize(r.AdjustedScore)
	return r
}

// AdjustedScore applies the confidence multiplier and caps the result at 1.0.
// Entry timing is reported next to the score and never multiplied in.
func AdjustedScore(base, confidence float64) float64 {
	return math.Min(base*confidence, 1.0)
}
