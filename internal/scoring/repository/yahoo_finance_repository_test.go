package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"insider-conviction/internal/scoring/config"
	"insider-conviction/internal/signal"
	"insider-conviction/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYahooFinanceRepository_GetQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		assert.Equal(t, "5m", r.URL.Query().Get("interval"))
		assert.Equal(t, "1d", r.URL.Query().Get("range"))
		_, _ = w.Write([]byte(`{"chart":{"result":[{"meta":{"currency":"USD","symbol":"AAPL","regularMarketPrice":191.2,"chartPreviousClose":189.0},
			"timestamp":[1,2,3],"indicators":{"quote":[{"close":[190.1,null,191.2]}]}}],"error":null}}`))
	}))
	defer srv.Close()

	repo := NewYahooFinanceRepository(config.YahooFinance{BaseURL: srv.URL, MaxRequestPerMinute: 6000}, logger.NewNop())
	quote, err := repo.GetQuote(context.Background(), "AAPL", "5m", "1d")

	require.NoError(t, err)
	assert.Equal(t, 191.2, quote.Price)
	assert.Equal(t, 189.0, quote.PreviousClose)
	assert.Equal(t, "USD", quote.Currency)
	assert.Equal(t, []float64{190.1, 191.2}, quote.Closes)
}

func TestYahooFinanceRepository_GetQuoteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `oops`},
		{"vendor error", http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`},
		{"empty result", http.StatusOK, `{"chart":{"result":[]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			repo := NewYahooFinanceRepository(config.YahooFinance{BaseURL: srv.URL, MaxRequestPerMinute: 6000}, logger.NewNop())
			_, err := repo.GetQuote(context.Background(), "ZZZZ", "1d", "5d")
			assert.ErrorIs(t, err, signal.ErrUnavailable)
		})
	}
}

func TestYahooFinanceRepository_GetShortInterest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v10/finance/quoteSummary/GME", r.URL.Path)
		assert.Equal(t, "defaultKeyStatistics", r.URL.Query().Get("modules"))
		_, _ = w.Write([]byte(`{"quoteSummary":{"result":[{"defaultKeyStatistics":{
			"shortPercentOfFloat":{"raw":0.2125,"fmt":"21.25%"},"shortRatio":{"raw":3.4,"fmt":"3.4"}}}],"error":null}}`))
	}))
	defer srv.Close()

	repo := NewYahooFinanceRepository(config.YahooFinance{BaseURL: srv.URL, MaxRequestPerMinute: 6000}, logger.NewNop())
	data, err := repo.GetShortInterest(context.Background(), "GME")

	require.NoError(t, err)
	assert.InDelta(t, 21.25, data.PercentOfFloat, 1e-9)
	assert.Equal(t, 3.4, data.DaysToCover)
}

func TestYahooFinanceRepository_ShortInterestNotReported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"quoteSummary":{"result":[{"defaultKeyStatistics":{"shortPercentOfFloat":{}}}]}}`))
	}))
	defer srv.Close()

	repo := NewYahooFinanceRepository(config.YahooFinance{BaseURL: srv.URL, MaxRequestPerMinute: 6000}, logger.NewNop())
	_, err := repo.GetShortInterest(context.Background(), "GME")
	assert.ErrorIs(t, err, signal.ErrUnavailable)
}
