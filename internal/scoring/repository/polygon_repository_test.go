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

func TestPolygonRepository_GetOptionsFlow_FollowsPages(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		if r.URL.Query().Get("cursor") == "" {
			_, _ = w.Write([]byte(`{"status":"OK","next_url":"` + srv.URL + `/v3/snapshot/options/AMD?cursor=2","results":[
				{"details":{"contract_type":"call"},"day":{"volume":100},"open_interest":1000},
				{"details":{"contract_type":"put"},"day":{"volume":40},"open_interest":500}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"OK","results":[
			{"details":{"contract_type":"call"},"day":{"volume":20},"open_interest":200},
			{"details":{"contract_type":"other"},"day":{"volume":999},"open_interest":999}]}`))
	}))
	defer srv.Close()

	repo := NewPolygonRepository(config.Polygon{BaseURL: srv.URL, APIKey: "key", MaxRequestPerMinute: 6000}, logger.NewNop())
	flow, err := repo.GetOptionsFlow(context.Background(), "AMD")

	require.NoError(t, err)
	assert.Equal(t, signal.OptionsFlow{CallVolume: 120, PutVolume: 40, CallOpenInterest: 1200, PutOpenInterest: 500}, *flow)
}

func TestPolygonRepository_NoContracts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","results":[]}`))
	}))
	defer srv.Close()

	repo := NewPolygonRepository(config.Polygon{BaseURL: srv.URL, MaxRequestPerMinute: 6000}, logger.NewNop())
	_, err := repo.GetOptionsFlow(context.Background(), "AMD")
	assert.ErrorIs(t, err, signal.ErrUnavailable)
}
