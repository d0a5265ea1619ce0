package service

import (
	"encoding/json"
	"fmt"
	"time"

	"insider-conviction/internal/conviction"
	"insider-conviction/internal/entity"
	"insider-conviction/internal/scoring/dto"

	"gorm.io/datatypes"
)

func toConvictionSignal(r conviction.Result) (entity.ConvictionSignal, error) {
	breakdown, err := json.Marshal(conviction.Explain(r))
	if err != nil {
		return entity.ConvictionSignal{}, fmt.Errorf("failed to marshal breakdown: %w", err)
	}
	insiders := len(r.Transaction.Insiders)
	if insiders == 0 {
		insiders = 1
	}
	return entity.ConvictionSignal{
		Ticker:               r.Ticker,
		InsiderName:          r.Insider,
		InsiderCount:         insiders,
		TransactionDate:      r.TransactionDate,
		PricePerShare:        r.Transaction.Price(),
		TotalShares:          r.Transaction.GroupedShares,
		TotalValue:           r.Transaction.GroupedValue,
		BaseScore:            r.BaseScore,
		ConfidenceMultiplier: r.ConfidenceMultiplier,
		AdjustedScore:        r.AdjustedScore,
		Category:             string(r.Category),
		Action:               r.RecommendedAction,
		TimingCategory:       string(r.TimingCategory),
		TimingMultiplier:     r.TimingMultiplier,
		PriceChangePct:       r.PriceChangePct,
		Indeterminate:        r.Indeterminate,
		Breakdown:            datatypes.JSON(breakdown),
		ScoredAt:             r.ScoredAt,
	}, nil
}

func toConvictionResponse(s entity.ConvictionSignal) dto.ConvictionResponse {
	return dto.ConvictionResponse{
		ID:                   s.ID,
		Ticker:               s.Ticker,
		Insider:              s.InsiderName,
		InsiderCount:         s.InsiderCount,
		TransactionDate:      s.TransactionDate.Format(time.DateOnly),
		PricePerShare:        s.PricePerShare,
		TotalShares:          s.TotalShares,
		TotalValue:           s.TotalValue,
		BaseScore:            s.BaseScore,
		ConfidenceMultiplier: s.ConfidenceMultiplier,
		AdjustedScore:        s.AdjustedScore,
		Category:             s.Category,
		RecommendedAction:    s.Action,
		TimingCategory:       s.TimingCategory,
		TimingMultiplier:     s.TimingMultiplier,
		PriceChangePct:       s.PriceChangePct,
		Indeterminate:        s.Indeterminate,
		ScoredAt:             s.ScoredAt,
	}
}

// ToTransactions converts posted requests into transactions. Dates that do not
// parse are left zero so validation rejects them with the usual reason.
func ToTransactions(reqs []dto.TransactionRequest) []entity.InsiderTransaction {
	txns := make([]entity.InsiderTransaction, 0, len(reqs))
	for _, req := range reqs {
		code := entity.TransactionCode(req.TransactionCode)
		if code == "" {
			code = entity.TransactionCodePurchase
		}
		txn := entity.InsiderTransaction{
			Ticker:          req.Ticker,
			InsiderName:     req.InsiderName,
			InsiderRole:     entity.InsiderRole(req.InsiderRole),
			TransactionCode: code,
			Shares:          req.Shares,
			PricePerShare:   req.PricePerShare,
			TotalValue:      req.TotalValue,
		}
		if d, err := time.Parse(time.DateOnly, req.TransactionDate); err == nil {
			txn.TransactionDate = d
		}
		if d, err := time.Parse(time.DateOnly, req.FilingDate); err == nil {
			txn.FilingDate = d
		}
		txns = append(txns, txn)
	}
	return txns
}
