package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"insider-conviction/internal/conviction"
	"insider-conviction/internal/scoring/dto"
	"insider-conviction/internal/scoring/repository"
	"insider-conviction/internal/signal"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

var (
	// ErrConvictionNotFound is returned when no stored result matches.
	ErrConvictionNotFound = errors.New("conviction result not found")
	// ErrUnknownBand is returned for a category filter that is not a conviction band.
	ErrUnknownBand = errors.New("unknown conviction category")
)

// ConvictionService reads stored results and cache statistics.
type ConvictionService interface {
	GetLatest(ctx context.Context, category string, limit int) ([]dto.ConvictionResponse, error)
	GetByTicker(ctx context.Context, ticker string, limit int) ([]dto.ConvictionResponse, error)
	Explain(ctx context.Context, ticker string) (*conviction.Breakdown, error)
	SignalStats() dto.SignalStatsResponse
}

type convictionService struct {
	convictionRepo repository.ConvictionSignalRepository
	cache          *signal.Cache
}

func NewConvictionService(convictionRepo repository.ConvictionSignalRepository, cache *signal.Cache) ConvictionService {
	return &convictionService{convictionRepo: convictionRepo, cache: cache}
}

// GetLatest returns the most recent cycle's results, optionally for one category.
func (s *convictionService) GetLatest(ctx context.Context, category string, limit int) ([]dto.ConvictionResponse, error) {
	if category != "" {
		category = strings.ToUpper(category)
		if b := conviction.Band(category); b.Rank() < 0 && b != conviction.BandIndeterminate {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBand, category)
		}
	}
	signals, err := s.convictionRepo.GetLatest(ctx, category, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to get latest convictions: %w", err)
	}

	responses := make([]dto.ConvictionResponse, 0, len(signals))
	for _, sig := range signals {
		responses = append(responses, toConvictionResponse(sig))
	}
	return responses, nil
}

func (s *convictionService) GetByTicker(ctx context.Context, ticker string, limit int) ([]dto.ConvictionResponse, error) {
	signals, err := s.convictionRepo.GetLatestByTicker(ctx, normalizeTicker(ticker), clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to get convictions for ticker: %w", err)
	}
	if len(signals) == 0 {
		return nil, ErrConvictionNotFound
	}

	responses := make([]dto.ConvictionResponse, 0, len(signals))
	for _, sig := range signals {
		responses = append(responses, toConvictionResponse(sig))
	}
	return responses, nil
}

// Explain returns the stored breakdown of the latest result for ticker.
func (s *convictionService) Explain(ctx context.Context, ticker string) (*conviction.Breakdown, error) {
	signals, err := s.convictionRepo.GetLatestByTicker(ctx, normalizeTicker(ticker), 1)
	if err != nil {
		return nil, fmt.Errorf("failed to get convictions for ticker: %w", err)
	}
	if len(signals) == 0 {
		return nil, ErrConvictionNotFound
	}

	var breakdown conviction.Breakdown
	if err := json.Unmarshal(signals[0].Breakdown, &breakdown); err != nil {
		return nil, fmt.Errorf("failed to decode stored breakdown: %w", err)
	}
	return &breakdown, nil
}

func (s *convictionService) SignalStats() dto.SignalStatsResponse {
	stats := s.cache.Stats()
	resp := dto.SignalStatsResponse{
		Entries:  stats.Entries,
		Fresh:    stats.Fresh,
		Stale:    stats.Stale,
		BySource: make(map[string]dto.SourceStatsItem, len(stats.BySource)),
	}
	for src, st := range stats.BySource {
		resp.BySource[string(src)] = dto.SourceStatsItem{Fresh: st.Fresh, Stale: st.Stale}
	}
	return resp
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	}
	return limit
}

func normalizeTicker(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}
