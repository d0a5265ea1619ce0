package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"insider-conviction/internal/scoring/config"
	"insider-conviction/internal/scoring/dto"
	"insider-conviction/internal/signal"
	"insider-conviction/pkg/logger"
)

const maxOptionSnapshotPages = 5

// PolygonRepository reads the options chain snapshot for an underlying.
type PolygonRepository interface {
	GetOptionsFlow(ctx context.Context, ticker string) (*signal.OptionsFlow, error)
}

type polygonRepository struct {
	baseURL string
	apiKey  string
	client  *vendorClient
}

func NewPolygonRepository(cfg config.Polygon, log *logger.Logger) PolygonRepository {
	return &polygonRepository{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  newVendorClient("polygon", cfg.MaxRequestPerMinute, log),
	}
}

// GetOptionsFlow sums day volume and open interest by contract type across the chain.
func (r *polygonRepository) GetOptionsFlow(ctx context.Context, ticker string) (*signal.OptionsFlow, error) {
	next := fmt.Sprintf("%s/v3/snapshot/options/%s?limit=250", r.baseURL, url.PathEscape(ticker))
	headers := map[string]string{"Authorization": "Bearer " + r.apiKey}

	flow := &signal.OptionsFlow{}
	contracts := 0
	for page := 0; next != "" && page < maxOptionSnapshotPages; page++ {
		body, err := r.client.get(ctx, next, headers)
		if err != nil {
			return nil, err
		}

		var snapshot dto.PolygonOptionsSnapshot
		if err := json.Unmarshal(body, &snapshot); err != nil {
			return nil, fmt.Errorf("failed to decode polygon snapshot: %w", err)
		}
		for _, c := range snapshot.Results {
			switch strings.ToLower(c.Details.ContractType) {
			case "call":
				flow.CallVolume += c.Day.Volume
				flow.CallOpenInterest += c.OpenInterest
			case "put":
				flow.PutVolume += c.Day.Volume
				flow.PutOpenInterest += c.OpenInterest
			default:
				continue
			}
			contracts++
		}
		next = snapshot.NextURL
	}

	if contracts == 0 {
		return nil, fmt.Errorf("%w: no listed options for %s", signal.ErrUnavailable, ticker)
	}
	return flow, nil
}
