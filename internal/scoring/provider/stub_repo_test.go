package provider

import (
	"context"
	"time"

	"insider-conviction/internal/entity"
	"insider-conviction/internal/scoring/dto"
	"insider-conviction/internal/signal"
)

type stubYahoo struct {
	quotes map[string]*dto.StockQuote
	short  *dto.ShortInterestData
	err    error
	calls  []string
}

func (s *stubYahoo) GetQuote(ctx context.Context, ticker, interval, rangeParam string) (*dto.StockQuote, error) {
	s.calls = append(s.calls, interval+"/"+rangeParam)
	if s.err != nil {
		return nil, s.err
	}
	return s.quotes[interval], nil
}

func (s *stubYahoo) GetShortInterest(ctx context.Context, ticker string) (*dto.ShortInterestData, error) {
	return s.short, s.err
}

type stubFinnhub struct {
	trends   []dto.FinnhubRecommendation
	dates    []time.Time
	err      error
	datesErr error
}

func (s *stubFinnhub) GetRecommendationTrends(ctx context.Context, ticker string) ([]dto.FinnhubRecommendation, error) {
	return s.trends, s.err
}

func (s *stubFinnhub) GetEarningsDates(ctx context.Context, ticker string, from, to time.Time) ([]time.Time, error) {
	return s.dates, s.datesErr
}

type stubPolygon struct {
	flow *signal.OptionsFlow
	err  error
}

func (s *stubPolygon) GetOptionsFlow(ctx context.Context, ticker string) (*signal.OptionsFlow, error) {
	return s.flow, s.err
}

type stubNews struct {
	articles []dto.NewsArticle
	err      error
	queries  []string
}

func (s *stubNews) GetArticles(ctx context.Context, ticker, query string) ([]dto.NewsArticle, error) {
	s.queries = append(s.queries, query)
	return s.articles, s.err
}

type stubAnalyzer struct {
	result *dto.EarningsSentimentResult
	err    error
}

func (s *stubAnalyzer) RateEarningsSentiment(ctx context.Context, ticker string, articles []dto.NewsArticle) (*dto.EarningsSentimentResult, error) {
	if len(articles) == 0 {
		return nil, signal.ErrUnavailable
	}
	return s.result, s.err
}

type stubTransactions struct {
	sales int64
	err   error
}

func (s *stubTransactions) GetPurchasesSince(ctx context.Context, since time.Time) ([]entity.InsiderTransaction, error) {
	return nil, nil
}

func (s *stubTransactions) GetActiveTickers(ctx context.Context, since time.Time) ([]string, error) {
	return nil, nil
}

func (s *stubTransactions) CountSales(ctx context.Context, ticker string, since time.Time) (int64, error) {
	return s.sales, s.err
}

func (s *stubTransactions) CreateBatch(ctx context.Context, txns []entity.InsiderTransaction) (int64, error) {
	return int64(len(txns)), nil
}
