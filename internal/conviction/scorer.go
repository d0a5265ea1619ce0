package conviction

import (
	"fmt"
	"strings"

	"insider-conviction/internal/signal"
	"insider-conviction/pkg/utils"

	"github.com/shopspring/decimal"
)

// Scorer turns a grouped purchase and the cached feeds into the nine component scores.
type Scorer struct {
	weights    Weights
	mapping    Mapping
	signals    signal.Reader
	useStale   bool
	windowDays int
}

// NewScorer builds a scorer. Weights are assumed validated.
func NewScorer(weights Weights, mapping Mapping, signals signal.Reader, useStale bool, windowDays int) *Scorer {
	return &Scorer{
		weights:    weights,
		mapping:    mapping,
		signals:    signals,
		useStale:   useStale,
		windowDays: windowDays,
	}
}

// Score returns one ComponentScore per category in canonical order. peers are the grouped
// purchases for the same ticker, including g.
func (s *Scorer) Score(g GroupedTransaction, peers []GroupedTransaction) []ComponentScore {
	components := make([]ComponentScore, 0, len(Categories))
	for _, cat := range Categories {
		c := ComponentScore{Name: cat, Weight: s.weights[cat]}
		switch cat {
		case CategoryFilingSpeed:
			c.Value, c.Detail, c.Available = s.filingSpeed(g)
		case CategoryAccumulation:
			n := CoordinatedInsiders(peers, g.TransactionDate(), s.windowDays)
			c.Value, c.Available = s.mapping.accumulation(n), true
			c.Detail = fmt.Sprintf("%d insider(s) within %d days", n, s.windowDays)
		default:
			snap, ok := s.lookup(g.Ticker(), categorySources[cat])
			if !ok {
				c.Detail = "source unavailable"
				break
			}
			c.Stale = snap.Stale
			c.Value, c.Detail, c.Available = s.fromPayload(g, snap.Payload)
		}
		c.Value = clamp01(c.Value)
		components = append(components, c)
	}
	return components
}

func (s *Scorer) lookup(ticker string, src signal.Source) (signal.Snapshot, bool) {
	snap, ok := s.signals.Get(ticker, src)
	if !ok || snap.Payload == nil {
		return signal.Snapshot{}, false
	}
	if snap.Stale && !s.useStale {
		return signal.Snapshot{}, false
	}
	return snap, true
}

func (s *Scorer) filingSpeed(g GroupedTransaction) (float64, string, bool) {
	filed := g.Representative.FilingDate
	if filed.IsZero() {
		return 0, "filing date unknown", false
	}
	delay := utils.DaysBetween(g.TransactionDate(), filed)
	return s.mapping.filingSpeed(delay), fmt.Sprintf("filed after %d day(s)", delay), true
}

func (s *Scorer) fromPayload(g GroupedTransaction, payload signal.Payload) (float64, string, bool) {
	switch p := payload.(type) {
	case signal.ShortInterest:
		return s.mapping.shortInterest(p.PercentOfFloat), fmt.Sprintf("%.1f%% of float short", p.PercentOfFloat), true
	case signal.EarningsSentiment:
		return sentiment(p.Sentiment), fmt.Sprintf("earnings tone %+.2f", p.Sentiment), true
	case signal.NewsSentiment:
		if p.Articles == 0 {
			return 0, "no recent articles", false
		}
		return sentiment(p.Sentiment), fmt.Sprintf("news tone %+.2f over %d articles", p.Sentiment, p.Articles), true
	case signal.OptionsFlow:
		return optionsFlow(p)
	case signal.AnalystSentiment:
		return analystSentiment(p)
	case signal.IntradayMomentum:
		return clamp(p.RSI, 0, 100) / 100, fmt.Sprintf("RSI %.1f", p.RSI), true
	case signal.RedFlags:
		return s.redFlags(g, p)
	case signal.Price:
		return 0, "price is not a component", false
	default:
		return 0, fmt.Sprintf("unexpected payload %T", payload), false
	}
}

func optionsFlow(p signal.OptionsFlow) (float64, string, bool) {
	if p.CallVolume+p.PutVolume+p.CallOpenInterest+p.PutOpenInterest == 0 {
		return 0, "no options activity", false
	}
	volRatio := callPutRatio(p.CallVolume, p.PutVolume)
	oiRatio := callPutRatio(p.CallOpenInterest, p.PutOpenInterest)
	flow := clamp(((volRatio-1)/2+(oiRatio-1)/2)/2, -1, 1)
	return (flow + 1) / 2, fmt.Sprintf("call/put volume %.2f, open interest %.2f", volRatio, oiRatio), true
}

// callPutRatio caps at 3 so a missing put side reads as maximally bullish.
func callPutRatio(calls, puts float64) float64 {
	switch {
	case puts > 0:
		return clamp(calls/puts, 0, 3)
	case calls > 0:
		return 3
	default:
		return 1
	}
}

func analystSentiment(p signal.AnalystSentiment) (float64, string, bool) {
	total := p.StrongBuy + p.Buy + p.Hold + p.Sell + p.StrongSell
	if total == 0 {
		return 0, "no analyst coverage", false
	}
	raw := (float64(p.StrongBuy) + 0.5*float64(p.Buy) - 0.5*float64(p.Sell) - float64(p.StrongSell)) / float64(total)
	return sentiment(raw), fmt.Sprintf("%d analysts, consensus %+.2f", total, raw), true
}

func (s *Scorer) redFlags(g GroupedTransaction, p signal.RedFlags) (float64, string, bool) {
	m := s.mapping
	penalty := 1.0
	var flags []string

	if p.InsiderSales > 0 {
		penalty *= m.InsiderSellingPenalty
		flags = append(flags, fmt.Sprintf("%d insider sale(s)", p.InsiderSales))
	}

	if p.LastPrice > 0 {
		change := PriceChangePct(g.Price(), decimal.NewFromFloat(p.LastPrice))
		if change <= -m.PriceCollapsePct {
			penalty *= m.PriceCollapsePenalty
			flags = append(flags, fmt.Sprintf("price down %.1f%% since purchase", -change))
		}
	}

	for _, earnings := range p.EarningsDates {
		days := utils.DaysBetween(g.TransactionDate(), earnings)
		if days >= 0 && days <= m.EarningsBlackoutDays {
			penalty *= m.EarningsPenalty
			flags = append(flags, fmt.Sprintf("earnings %d day(s) after purchase", days))
			break
		}
	}

	if m.SmallPurchaseValue > 0 && g.GroupedValue.LessThan(decimal.NewFromFloat(m.SmallPurchaseValue)) {
		penalty *= m.SmallPurchasePenalty
		flags = append(flags, "small purchase")
	}

	if penalty < m.RedFlagFloor {
		penalty = m.RedFlagFloor
	}
	if len(flags) == 0 {
		return penalty, "no red flags", true
	}
	return penalty, strings.Join(flags, ", "), true
}
