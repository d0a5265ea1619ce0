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

// YahooFinanceRepository reads quotes and key statistics from Yahoo Finance.
type YahooFinanceRepository interface {
	GetQuote(ctx context.Context, ticker string, interval string, rangeParam string) (*dto.StockQuote, error)
	GetShortInterest(ctx context.Context, ticker string) (*dto.ShortInterestData, error)
}

type yahooFinanceRepository struct {
	baseURL string
	client  *vendorClient
}

func NewYahooFinanceRepository(cfg config.YahooFinance, log *logger.Logger) YahooFinanceRepository {
	return &yahooFinanceRepository{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  newVendorClient("yahoo_finance", cfg.MaxRequestPerMinute, log),
	}
}

func (r *yahooFinanceRepository) GetQuote(ctx context.Context, ticker string, interval string, rangeParam string) (*dto.StockQuote, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		r.baseURL, url.PathEscape(ticker), url.QueryEscape(interval), url.QueryEscape(rangeParam))
	body, err := r.client.get(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp dto.YahooChartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode yahoo chart: %w", err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("%w: yahoo chart: %s", signal.ErrUnavailable, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: yahoo chart returned no result for %s", signal.ErrUnavailable, ticker)
	}

	result := resp.Chart.Result[0]
	quote := &dto.StockQuote{
		Symbol:        result.Meta.Symbol,
		Currency:      result.Meta.Currency,
		Price:         result.Meta.RegularMarketPrice,
		PreviousClose: result.Meta.ChartPreviousClose,
		MarketTime:    result.Meta.RegularMarketTime,
	}
	if len(result.Indicators.Quote) > 0 {
		for _, c := range result.Indicators.Quote[0].Close {
			if c != nil {
				quote.Closes = append(quote.Closes, *c)
			}
		}
	}
	return quote, nil
}

func (r *yahooFinanceRepository) GetShortInterest(ctx context.Context, ticker string) (*dto.ShortInterestData, error) {
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=defaultKeyStatistics", r.baseURL, url.PathEscape(ticker))
	body, err := r.client.get(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp dto.YahooQuoteSummaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode yahoo quote summary: %w", err)
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("%w: yahoo quote summary: %s", signal.ErrUnavailable, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: no key statistics for %s", signal.ErrUnavailable, ticker)
	}

	stats := resp.QuoteSummary.Result[0].DefaultKeyStatistics
	if stats.ShortPercentOfFloat.Raw == nil {
		return nil, fmt.Errorf("%w: short interest not reported for %s", signal.ErrUnavailable, ticker)
	}
	data := &dto.ShortInterestData{PercentOfFloat: *stats.ShortPercentOfFloat.Raw * 100}
	if stats.ShortRatio.Raw != nil {
		data.DaysToCover = *stats.ShortRatio.Raw
	}
	return data, nil
}
