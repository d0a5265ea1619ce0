package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"insider-conviction/internal/scoring/config"
	"insider-conviction/internal/signal"
	"insider-conviction/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFinnhubServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, FinnhubRepository) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Finnhub-Token"))
		handler(w, r)
	}))
	repo := NewFinnhubRepository(config.Finnhub{BaseURL: srv.URL, APIKey: "secret", MaxRequestPerMinute: 6000}, logger.NewNop())
	return srv, repo
}

func TestFinnhubRepository_GetRecommendationTrends(t *testing.T) {
	srv, repo := newFinnhubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock/recommendation", r.URL.Path)
		assert.Equal(t, "MSFT", r.URL.Query().Get("symbol"))
		_, _ = w.Write([]byte(`[
			{"symbol":"MSFT","period":"2024-05-01","strongBuy":10,"buy":20,"hold":5,"sell":0,"strongSell":0},
			{"symbol":"MSFT","period":"2024-06-01","strongBuy":12,"buy":21,"hold":4,"sell":1,"strongSell":0}]`))
	})
	defer srv.Close()

	trends, err := repo.GetRecommendationTrends(context.Background(), "MSFT")
	require.NoError(t, err)
	require.Len(t, trends, 2)
	assert.Equal(t, "2024-06-01", trends[0].Period)
	assert.Equal(t, 12, trends[0].StrongBuy)
}

func TestFinnhubRepository_NoCoverage(t *testing.T) {
	srv, repo := newFinnhubServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	defer srv.Close()

	_, err := repo.GetRecommendationTrends(context.Background(), "TINY")
	assert.ErrorIs(t, err, signal.ErrUnavailable)
}

func TestFinnhubRepository_GetEarningsDates(t *testing.T) {
	srv, repo := newFinnhubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendar/earnings", r.URL.Path)
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2024-09-01", r.URL.Query().Get("to"))
		_, _ = w.Write([]byte(`{"earningsCalendar":[
			{"symbol":"MSFT","date":"2024-07-25","quarter":4,"year":2024},
			{"symbol":"MSFT","date":"bad"},
			{"symbol":"MSFT","date":"2024-04-25","quarter":3,"year":2024}]}`))
	})
	defer srv.Close()

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	dates, err := repo.GetEarningsDates(context.Background(), "MSFT", from, from.AddDate(0, 6, 0))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		time.Date(2024, 4, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 25, 0, 0, 0, 0, time.UTC),
	}, dates)
}
