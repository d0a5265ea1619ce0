package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"insider-conviction/internal/conviction"
	"insider-conviction/internal/entity"
	"insider-conviction/internal/scoring/config"
	"insider-conviction/internal/scoring/dto"
	"insider-conviction/internal/scoring/repository"
	"insider-conviction/pkg/common"
	"insider-conviction/pkg/logger"
	"insider-conviction/pkg/telegram"
	"insider-conviction/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// StreamPublisher is the part of the Redis client used to publish results.
type StreamPublisher interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// ScoringService runs scoring cycles over stored purchases and scores ad hoc batches.
type ScoringService interface {
	RunCycle(ctx context.Context) (*dto.CycleReport, error)
	Score(ctx context.Context, txns []entity.InsiderTransaction) ([]conviction.Result, error)
}

type scoringService struct {
	cfg             *config.Config
	engine          *conviction.Engine
	transactionRepo repository.InsiderTransactionRepository
	convictionRepo  repository.ConvictionSignalRepository
	publisher       StreamPublisher
	notifier        telegram.Notifier
	alertCategories map[conviction.Band]bool
	logger          *logger.Logger
	now             func() time.Time
}

// NewScoringService creates a scoring service. publisher and notifier may be nil to
// skip publishing and alerting.
func NewScoringService(
	cfg *config.Config,
	engine *conviction.Engine,
	transactionRepo repository.InsiderTransactionRepository,
	convictionRepo repository.ConvictionSignalRepository,
	publisher StreamPublisher,
	notifier telegram.Notifier,
	log *logger.Logger,
) ScoringService {
	alertCategories := make(map[conviction.Band]bool, len(cfg.Scoring.AlertCategories))
	for _, c := range cfg.Scoring.AlertCategories {
		alertCategories[conviction.Band(c)] = true
	}
	return &scoringService{
		cfg:             cfg,
		engine:          engine,
		transactionRepo: transactionRepo,
		convictionRepo:  convictionRepo,
		publisher:       publisher,
		notifier:        notifier,
		alertCategories: alertCategories,
		logger:          log,
		now:             time.Now,
	}
}

// RunCycle scores every purchase in the lookback window, stores the results,
// publishes them and alerts on the configured categories.
func (s *scoringService) RunCycle(ctx context.Context) (*dto.CycleReport, error) {
	report := &dto.CycleReport{StartedAt: s.now()}
	defer func() { report.Duration = time.Since(report.StartedAt) }()

	since := utils.DateOnly(report.StartedAt).AddDate(0, 0, -s.cfg.Scoring.LookbackDays)
	purchases, err := s.transactionRepo.GetPurchasesSince(ctx, since)
	if err != nil {
		s.logger.Error("Failed to load insider purchases", logger.ErrorField(err))
		s.notifyError("load_purchases", err)
		return report, fmt.Errorf("failed to load insider purchases: %w", err)
	}
	report.Purchases = len(purchases)

	results, err := s.Score(ctx, purchases)
	var malformed *conviction.MalformedBatchError
	if errors.As(err, &malformed) {
		report.Rejected = malformed.Rejected()
	} else if err != nil {
		return report, err
	}
	report.Scored = len(results)
	if len(results) == 0 {
		s.logger.Info("No insider purchases to score", logger.Field("since", since))
		return report, nil
	}

	signals, err := s.persist(ctx, results)
	if err != nil {
		s.notifyError("persist_results", err)
		return report, err
	}
	report.Persisted = len(signals)

	report.Published = s.publish(ctx, signals)
	report.Alerted = s.alert(results)

	s.logger.Info("Scoring cycle completed",
		logger.IntField("purchases", report.Purchases),
		logger.IntField("scored", report.Scored),
		logger.IntField("rejected", report.Rejected),
		logger.IntField("published", report.Published),
		logger.IntField("alerted", report.Alerted))
	return report, nil
}

// Score runs the engine over txns. Malformed records are logged and returned as a
// *conviction.MalformedBatchError next to the results for the valid ones.
func (s *scoringService) Score(ctx context.Context, txns []entity.InsiderTransaction) ([]conviction.Result, error) {
	results, err := s.engine.ScoreBatch(txns)
	var malformed *conviction.MalformedBatchError
	if errors.As(err, &malformed) {
		for _, r := range malformed.Rejections {
			s.logger.WarnContext(ctx, "Rejected malformed transaction",
				logger.IntField("index", r.Index),
				logger.StringField("ticker", r.Ticker),
				logger.ErrorField(r.Reason))
		}
		s.logger.WarnContext(ctx, "Malformed transactions rejected",
			logger.IntField("rejected", malformed.Rejected()),
			logger.IntField("total", malformed.Total))
	}
	return results, err
}

func (s *scoringService) persist(ctx context.Context, results []conviction.Result) ([]entity.ConvictionSignal, error) {
	signals := make([]entity.ConvictionSignal, 0, len(results))
	for _, r := range results {
		sig, err := toConvictionSignal(r)
		if err != nil {
			return nil, err
		}
		signals = append(signals, sig)
	}
	if err := s.convictionRepo.CreateBatch(ctx, signals); err != nil {
		s.logger.Error("Failed to store conviction results", logger.ErrorField(err), logger.IntField("count", len(signals)))
		return nil, fmt.Errorf("failed to store conviction results: %w", err)
	}
	return signals, nil
}

func (s *scoringService) publish(ctx context.Context, signals []entity.ConvictionSignal) int {
	if s.publisher == nil {
		return 0
	}
	published := 0
	for _, sig := range signals {
		payload, err := json.Marshal(toConvictionResponse(sig))
		if err != nil {
			s.logger.Error("Failed to marshal conviction event", logger.ErrorField(err), logger.StringField("ticker", sig.Ticker))
			continue
		}
		if err := s.publisher.XAdd(ctx, &redis.XAddArgs{
			Stream: common.RedisStreamConvictionResults,
			Values: map[string]interface{}{common.RedisStreamPayloadField: payload},
			MaxLen: s.cfg.Redis.StreamMaxLen,
		}).Err(); err != nil {
			s.logger.Error("Failed to publish conviction event", logger.ErrorField(err), logger.StringField("ticker", sig.Ticker))
			continue
		}
		published++
	}
	return published
}

func (s *scoringService) alert(results []conviction.Result) int {
	if s.notifier == nil {
		return 0
	}
	var alerts []conviction.Result
	for _, r := range results {
		if s.alertCategories[r.Category] && r.TimingCategory != conviction.TimingStale {
			alerts = append(alerts, r)
		}
	}
	if len(alerts) == 0 {
		return 0
	}

	for _, msg := range telegram.FormatConvictionAlerts(alerts) {
		if err := s.notifier.SendMessage(msg); err != nil {
			s.logger.Error("Failed to send conviction alert", logger.ErrorField(err))
			return 0
		}
	}
	return len(alerts)
}

func (s *scoringService) notifyError(errType string, err error) {
	if s.notifier == nil {
		return
	}
	msg := telegram.FormatErrorAlertMessage(s.now(), errType, err.Error(), "scoring cycle")
	if sendErr := s.notifier.SendMessage(msg); sendErr != nil {
		s.logger.Error("Failed to send error alert", logger.ErrorField(sendErr))
	}
}
