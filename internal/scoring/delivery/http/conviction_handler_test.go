package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"insider-conviction/internal/conviction"
	"insider-conviction/internal/entity"
	"insider-conviction/internal/scoring/dto"
	"insider-conviction/internal/scoring/service"
	"insider-conviction/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConvictionService struct {
	latest    []dto.ConvictionResponse
	breakdown *conviction.Breakdown
	stats     dto.SignalStatsResponse
	err       error

	category string
	ticker   string
	limit    int
}

func (s *stubConvictionService) GetLatest(ctx context.Context, category string, limit int) ([]dto.ConvictionResponse, error) {
	s.category, s.limit = category, limit
	return s.latest, s.err
}

func (s *stubConvictionService) GetByTicker(ctx context.Context, ticker string, limit int) ([]dto.ConvictionResponse, error) {
	s.ticker, s.limit = ticker, limit
	return s.latest, s.err
}

func (s *stubConvictionService) Explain(ctx context.Context, ticker string) (*conviction.Breakdown, error) {
	s.ticker = ticker
	return s.breakdown, s.err
}

func (s *stubConvictionService) SignalStats() dto.SignalStatsResponse {
	return s.stats
}

type stubScoringService struct {
	results []conviction.Result
	err     error
	txns    []entity.InsiderTransaction
}

func (s *stubScoringService) RunCycle(ctx context.Context) (*dto.CycleReport, error) {
	return &dto.CycleReport{}, nil
}

func (s *stubScoringService) Score(ctx context.Context, txns []entity.InsiderTransaction) ([]conviction.Result, error) {
	s.txns = txns
	return s.results, s.err
}

func newTestServer(conv *stubConvictionService, scoring *stubScoringService) *echo.Echo {
	e := echo.New()
	api := e.Group("/api/v1")
	NewConvictionHandler(conv, scoring, logger.NewNop()).RegisterRoutes(api.Group("/convictions"))
	signals := NewSignalHandler(conv)
	signals.RegisterRoutes(api.Group("/signals"))
	signals.RegisterHealth(e)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestConvictionHandler_GetLatest(t *testing.T) {
	conv := &stubConvictionService{latest: []dto.ConvictionResponse{{ID: 1, Ticker: "ACME", Category: "BUY"}}}
	e := newTestServer(conv, &stubScoringService{})

	rec := do(e, http.MethodGet, "/api/v1/convictions?category=BUY&limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []dto.ConvictionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, conv.latest, got)
	assert.Equal(t, "BUY", conv.category)
	assert.Equal(t, 5, conv.limit)
}

func TestConvictionHandler_GetLatestErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{"bad limit", "/api/v1/convictions?limit=abc", nil, http.StatusBadRequest},
		{"negative limit", "/api/v1/convictions?limit=-1", nil, http.StatusBadRequest},
		{"unknown band", "/api/v1/convictions?category=MOON", fmt.Errorf("%w: MOON", service.ErrUnknownBand), http.StatusBadRequest},
		{"db failure", "/api/v1/convictions", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer(&stubConvictionService{err: tt.err}, &stubScoringService{})
			rec := do(e, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestConvictionHandler_GetByTicker(t *testing.T) {
	conv := &stubConvictionService{latest: []dto.ConvictionResponse{{ID: 2, Ticker: "ACME"}}}
	e := newTestServer(conv, &stubScoringService{})

	rec := do(e, http.MethodGet, "/api/v1/convictions/acme", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acme", conv.ticker)

	conv.err = service.ErrConvictionNotFound
	rec = do(e, http.MethodGet, "/api/v1/convictions/ZZZ", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConvictionHandler_Explain(t *testing.T) {
	breakdown := &conviction.Breakdown{Ticker: "ACME", AdjustedScore: 0.7, Category: conviction.BandAccumulate}
	conv := &stubConvictionService{breakdown: breakdown}
	e := newTestServer(conv, &stubScoringService{})

	rec := do(e, http.MethodGet, "/api/v1/convictions/ACME/explain", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got conviction.Breakdown
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, *breakdown, got)

	conv.err = service.ErrConvictionNotFound
	rec = do(e, http.MethodGet, "/api/v1/convictions/ACME/explain", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConvictionHandler_Score(t *testing.T) {
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	scoring := &stubScoringService{
		results: []conviction.Result{{Ticker: "ACME", TransactionDate: date, AdjustedScore: 0.8, Category: conviction.BandBuy}},
		err:     &conviction.MalformedBatchError{Total: 2, Rejections: []conviction.Rejection{
			{Index: 1, Ticker: "", Reason: conviction.ErrMissingTicker},
		}},
	}
	e := newTestServer(&stubConvictionService{}, scoring)

	body := `{"transactions":[
		{"ticker":"ACME","insider_name":"Alice","transaction_date":"2024-06-03","shares":100,"price_per_share":"10.5"},
		{"ticker":"","insider_name":"Bob","transaction_date":"2024-06-03","shares":100,"price_per_share":"10.5"}]}`
	rec := do(e, http.MethodPost, "/api/v1/convictions/score", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.ScoreResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Results, 1)
	assert.Equal(t, "ACME", got.Results[0].Ticker)
	assert.Equal(t, []dto.Rejection{{Index: 1, Ticker: "", Reason: conviction.ErrMissingTicker.Error()}}, got.Rejected)

	require.Len(t, scoring.txns, 2)
	assert.Equal(t, "10.5", scoring.txns[0].PricePerShare.String())
	assert.Equal(t, date, scoring.txns[0].TransactionDate)
}

func TestConvictionHandler_ScoreBadRequests(t *testing.T) {
	e := newTestServer(&stubConvictionService{}, &stubScoringService{})

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/api/v1/convictions/score", `{"transactions":`).Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/api/v1/convictions/score", `{"transactions":[]}`).Code)

	e = newTestServer(&stubConvictionService{}, &stubScoringService{err: errors.New("boom")})
	assert.Equal(t, http.StatusInternalServerError,
		do(e, http.MethodPost, "/api/v1/convictions/score", `{"transactions":[{"ticker":"A"}]}`).Code)
}

func TestSignalHandler(t *testing.T) {
	conv := &stubConvictionService{stats: dto.SignalStatsResponse{
		Entries:  3,
		Fresh:    2,
		Stale:    1,
		BySource: map[string]dto.SourceStatsItem{"market_price": {Fresh: 2, Stale: 1}},
	}}
	e := newTestServer(conv, &stubScoringService{})

	rec := do(e, http.MethodGet, "/api/v1/signals/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats dto.SignalStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, conv.stats, stats)

	rec = do(e, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","cache_entries":3}`, rec.Body.String())
}
