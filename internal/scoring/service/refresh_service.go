package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"insider-conviction/internal/scoring/config"
	"insider-conviction/internal/scoring/repository"
	"insider-conviction/internal/signal"
	"insider-conviction/pkg/logger"
	"insider-conviction/pkg/utils"

	"go.uber.org/zap"
)

// RefreshService keeps the signal cache filled for every ticker with recent purchases.
type RefreshService interface {
	Start(ctx context.Context)
	Stop()
	RefreshOnce(ctx context.Context)
}

type refreshService struct {
	cfg             *config.Config
	providers       []signal.Provider
	cache           *signal.Cache
	transactionRepo repository.InsiderTransactionRepository
	logger          *logger.Logger
	now             func() time.Time
	stopChan        chan struct{}
	cancel          context.CancelFunc
	wg              sync.WaitGroup
}

// NewRefreshService creates a refresh service over the given providers.
func NewRefreshService(
	cfg *config.Config,
	providers []signal.Provider,
	cache *signal.Cache,
	transactionRepo repository.InsiderTransactionRepository,
	log *logger.Logger,
) RefreshService {
	return &refreshService{
		cfg:             cfg,
		providers:       providers,
		cache:           cache,
		transactionRepo: transactionRepo,
		logger:          log,
		now:             time.Now,
		stopChan:        make(chan struct{}),
	}
}

// Start returns immediately. The first fill and one ticker loop per provider
// run in the background until Stop or ctx cancellation.
func (s *refreshService) Start(ctx context.Context) {
	s.logger.Info("Signal refresh started", logger.IntField("providers", len(s.providers)))
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	utils.GoSafe(func() {
		defer s.wg.Done()
		started := s.now()
		s.RefreshOnce(ctx)
		s.logger.Info("Initial signal fill finished", logger.Field("took", s.now().Sub(started)))
	})

	for _, p := range s.providers {
		feed := s.cfg.Signals.Feed(p.Source())
		s.registerTickerHandler(ctx, p, feed.RefreshInterval, feed.Timeout)
	}
}

func (s *refreshService) registerTickerHandler(ctx context.Context, p signal.Provider, interval time.Duration, timeout time.Duration) {
	name := string(p.Source())
	s.logger.Info("Registering refresh handler",
		logger.Field("source", name),
		logger.Field("interval", interval),
		logger.Field("timeout", timeout))
	s.wg.Add(1)
	utils.GoSafe(func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				s.refreshProvider(ctxTimeout, p)
				cancel()
			case <-ctx.Done():
				s.logger.Info("Refresh handler stopping due to context cancellation", logger.Field("source", name))
				return
			case <-s.stopChan:
				s.logger.Info("Refresh handler stopping", logger.Field("source", name))
				return
			}
		}
	})
}

// Stop ends every refresh loop, cancels in-flight fetches and waits for them.
func (s *refreshService) Stop() {
	close(s.stopChan)
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.logger.Info("Signal refresh stopped")
}

// RefreshOnce runs every provider for the active tickers, in provider order, so
// prices are cached before the feeds that read them.
func (s *refreshService) RefreshOnce(ctx context.Context) {
	tickers, err := s.activeTickers(ctx)
	if err != nil {
		s.logger.Error("Failed to load active tickers", logger.ErrorField(err))
		return
	}
	for _, p := range s.providers {
		timeout := s.cfg.Signals.Feed(p.Source()).Timeout
		ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
		s.refreshTickers(ctxTimeout, p, tickers)
		cancel()
	}
}

func (s *refreshService) refreshProvider(ctx context.Context, p signal.Provider) {
	tickers, err := s.activeTickers(ctx)
	if err != nil {
		s.logger.Error("Failed to load active tickers", logger.ErrorField(err), logger.StringField("source", string(p.Source())))
		return
	}
	s.refreshTickers(ctx, p, tickers)
}

func (s *refreshService) activeTickers(ctx context.Context) ([]string, error) {
	since := utils.DateOnly(s.now()).AddDate(0, 0, -s.cfg.Scoring.LookbackDays)
	return s.transactionRepo.GetActiveTickers(ctx, since)
}

// refreshTickers fetches p for each ticker. A failed fetch leaves the previous
// snapshot in place to age into stale.
func (s *refreshService) refreshTickers(ctx context.Context, p signal.Provider, tickers []string) {
	source := string(p.Source())
	updated, unavailable, failed := 0, 0, 0

	for _, ticker := range tickers {
		if ctx.Err() != nil {
			s.logger.Warn("Refresh cut short", logger.StringField("source", source), logger.ErrorField(ctx.Err()))
			break
		}

		payload, err := p.Fetch(ctx, ticker)
		if err != nil {
			fields := []zap.Field{logger.StringField("source", source), logger.StringField("ticker", ticker), logger.ErrorField(err)}
			if errors.Is(err, signal.ErrUnavailable) {
				unavailable++
				s.logger.Debug("Signal unavailable", fields...)
			} else {
				failed++
				s.logger.Warn("Failed to fetch signal", fields...)
			}
			continue
		}

		if err := s.cache.Put(ticker, p.Source(), payload, p.TTL()); err != nil {
			failed++
			s.logger.Error("Failed to cache signal", logger.StringField("source", source), logger.StringField("ticker", ticker), logger.ErrorField(err))
			continue
		}
		updated++
	}

	s.logger.Info("Signal refresh completed",
		logger.StringField("source", source),
		logger.IntField("tickers", len(tickers)),
		logger.IntField("updated", updated),
		logger.IntField("unavailable", unavailable),
		logger.IntField("failed", failed))
}
