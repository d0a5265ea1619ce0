package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"insider-conviction/internal/scoring/config"
	"insider-conviction/internal/scoring/dto"
	"insider-conviction/internal/signal"
	"insider-conviction/pkg/logger"
)

// FinnhubRepository reads analyst recommendations and the earnings calendar.
type FinnhubRepository interface {
	GetRecommendationTrends(ctx context.Context, ticker string) ([]dto.FinnhubRecommendation, error)
	GetEarningsDates(ctx context.Context, ticker string, from, to time.Time) ([]time.Time, error)
}

type finnhubRepository struct {
	baseURL string
	apiKey  string
	client  *vendorClient
}

func NewFinnhubRepository(cfg config.Finnhub, log *logger.Logger) FinnhubRepository {
	return &finnhubRepository{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  newVendorClient("finnhub", cfg.MaxRequestPerMinute, log),
	}
}

func (r *finnhubRepository) headers() map[string]string {
	return map[string]string{"X-Finnhub-Token": r.apiKey}
}

// GetRecommendationTrends returns periods newest first.
func (r *finnhubRepository) GetRecommendationTrends(ctx context.Context, ticker string) ([]dto.FinnhubRecommendation, error) {
	endpoint := fmt.Sprintf("%s/stock/recommendation?symbol=%s", r.baseURL, url.QueryEscape(ticker))
	body, err := r.client.get(ctx, endpoint, r.headers())
	if err != nil {
		return nil, err
	}

	var trends []dto.FinnhubRecommendation
	if err := json.Unmarshal(body, &trends); err != nil {
		return nil, fmt.Errorf("failed to decode finnhub recommendations: %w", err)
	}
	if len(trends) == 0 {
		return nil, fmt.Errorf("%w: no analyst coverage for %s", signal.ErrUnavailable, ticker)
	}
	sort.SliceStable(trends, func(i, j int) bool { return trends[i].Period > trends[j].Period })
	return trends, nil
}

// GetEarningsDates returns the reported and scheduled earnings dates in [from, to], ascending.
func (r *finnhubRepository) GetEarningsDates(ctx context.Context, ticker string, from, to time.Time) ([]time.Time, error) {
	endpoint := fmt.Sprintf("%s/calendar/earnings?symbol=%s&from=%s&to=%s", r.baseURL,
		url.QueryEscape(ticker), from.Format(time.DateOnly), to.Format(time.DateOnly))
	body, err := r.client.get(ctx, endpoint, r.headers())
	if err != nil {
		return nil, err
	}

	var calendar dto.FinnhubEarningsCalendar
	if err := json.Unmarshal(body, &calendar); err != nil {
		return nil, fmt.Errorf("failed to decode finnhub earnings calendar: %w", err)
	}

	dates := make([]time.Time, 0, len(calendar.EarningsCalendar))
	for _, ev := range calendar.EarningsCalendar {
		d, err := time.Parse(time.DateOnly, ev.Date)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}
