package conviction

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"insider-conviction/internal/entity"
	"insider-conviction/pkg/utils"

	"github.com/shopspring/decimal"
)

// GroupedTransaction is one economic purchase event, possibly reported by several filings.
type GroupedTransaction struct {
	// Representative is the first filing seen for the group.
	Representative entity.InsiderTransaction `json:"representative"`
	DuplicateCount int                       `json:"duplicate_count"`
	GroupedShares  int64                     `json:"grouped_shares"`
	GroupedValue   decimal.Decimal           `json:"grouped_value"`
	Insiders       []string                  `json:"insiders"`
}

func (g GroupedTransaction) Ticker() string {
	return g.Representative.Ticker
}

func (g GroupedTransaction) Insider() string {
	return g.Representative.InsiderName
}

func (g GroupedTransaction) TransactionDate() time.Time {
	return g.Representative.TransactionDate
}

func (g GroupedTransaction) Price() decimal.Decimal {
	return g.Representative.PricePerShare
}

// AsTransaction maps the group back to a single transaction carrying the grouped totals.
func (g GroupedTransaction) AsTransaction() entity.InsiderTransaction {
	t := g.Representative
	t.Shares = g.GroupedShares
	t.TotalValue = g.GroupedValue
	return t
}

type groupKey struct {
	ticker  string
	insider string
	date    string
	price   string
}

func keyOf(t entity.InsiderTransaction) groupKey {
	return groupKey{
		ticker:  t.Ticker,
		insider: normalizeName(t.InsiderName),
		date:    t.TransactionDate.Format(time.DateOnly),
		price:   t.PricePerShare.Round(2).StringFixed(2),
	}
}

func normalizeName(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// normalize trims identity fields and strips the time of day from dates.
func normalize(t entity.InsiderTransaction) entity.InsiderTransaction {
	t.Ticker = strings.ToUpper(strings.TrimSpace(t.Ticker))
	t.InsiderName = strings.TrimSpace(t.InsiderName)
	if !t.TransactionDate.IsZero() {
		t.TransactionDate = utils.DateOnly(t.TransactionDate)
	}
	if !t.FilingDate.IsZero() {
		t.FilingDate = utils.DateOnly(t.FilingDate)
	}
	return t
}

// Validate checks a single transaction. The returned error wraps the specific reason.
func Validate(t entity.InsiderTransaction) error {
	t = normalize(t)
	switch {
	case t.Ticker == "":
		return ErrMissingTicker
	case t.InsiderName == "":
		return ErrMissingInsider
	case t.TransactionCode != "" && t.TransactionCode != entity.TransactionCodePurchase:
		return fmt.Errorf("%w: code %q", ErrNotPurchase, t.TransactionCode)
	case t.TransactionDate.IsZero():
		return ErrMissingTransactionDate
	case t.Shares < 0:
		return fmt.Errorf("%w: %d", ErrNegativeShares, t.Shares)
	case !t.PricePerShare.IsPositive():
		return fmt.Errorf("%w: %s", ErrNonPositivePrice, t.PricePerShare)
	case t.TotalValue.IsNegative():
		return fmt.Errorf("%w: %s", ErrNegativeValue, t.TotalValue)
	case !t.FilingDate.IsZero() && t.FilingDate.Before(t.TransactionDate):
		return fmt.Errorf("%w: filed %s, traded %s", ErrFilingBeforeTransaction,
			t.FilingDate.Format(time.DateOnly), t.TransactionDate.Format(time.DateOnly))
	}
	return nil
}

// transactionValue is always shares × price. A reported total is only checked for sign.
func transactionValue(t entity.InsiderTransaction) decimal.Decimal {
	return t.PricePerShare.Mul(decimal.NewFromInt(t.Shares))
}

// Group validates the batch and merges records sharing (ticker, insider, date, price to the cent).
// Share count is not part of the key. Output is ordered by transaction date descending, then
// ticker, insider and price, so it is deterministic for a given input.
func Group(txns []entity.InsiderTransaction) ([]GroupedTransaction, []Rejection) {
	var rejected []Rejection
	index := make(map[groupKey]int)
	groups := make([]GroupedTransaction, 0, len(txns))
	insiderSets := make([]map[string]string, 0, len(txns))

	for i, raw := range txns {
		if err := Validate(raw); err != nil {
			rejected = append(rejected, Rejection{
				Index:  i,
				Ticker: strings.ToUpper(strings.TrimSpace(raw.Ticker)),
				Reason: err,
			})
			continue
		}

		t := normalize(raw)
		k := keyOf(t)
		pos, ok := index[k]
		if !ok {
			pos = len(groups)
			index[k] = pos
			groups = append(groups, GroupedTransaction{Representative: t, GroupedValue: decimal.Zero})
			insiderSets = append(insiderSets, make(map[string]string))
		}

		g := &groups[pos]
		g.DuplicateCount++
		g.GroupedShares += t.Shares
		g.GroupedValue = g.GroupedValue.Add(transactionValue(t))
		if _, seen := insiderSets[pos][k.insider]; !seen {
			insiderSets[pos][k.insider] = t.InsiderName
		}
	}

	for i := range groups {
		names := make([]string, 0, len(insiderSets[i]))
		for _, name := range insiderSets[i] {
			names = append(names, name)
		}
		sort.Strings(names)
		groups[i].Insiders = names
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Representative, groups[j].Representative
		if !a.TransactionDate.Equal(b.TransactionDate) {
			return a.TransactionDate.After(b.TransactionDate)
		}
		if a.Ticker != b.Ticker {
			return a.Ticker < b.Ticker
		}
		if a.InsiderName != b.InsiderName {
			return a.InsiderName < b.InsiderName
		}
		return a.PricePerShare.LessThan(b.PricePerShare)
	})

	return groups, rejected
}

// ByTicker buckets groups by ticker, preserving order within each bucket.
func ByTicker(groups []GroupedTransaction) map[string][]GroupedTransaction {
	out := make(map[string][]GroupedTransaction)
	for _, g := range groups {
		out[g.Ticker()] = append(out[g.Ticker()], g)
	}
	return out
}
