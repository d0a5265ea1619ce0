package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
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

// StreamConsumer is the part of the Redis client used to consume the filings stream.
type StreamConsumer interface {
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAutoClaim(ctx context.Context, a *redis.XAutoClaimArgs) *redis.XAutoClaimCmd
	XPendingExt(ctx context.Context, a *redis.XPendingExtArgs) *redis.XPendingExtCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
	XDel(ctx context.Context, stream string, ids ...string) *redis.IntCmd
}

// IngestionService stores filed insider trades read from the filings stream.
type IngestionService interface {
	// ProcessFilings reads new stream entries and ingests them.
	ProcessFilings(ctx context.Context)
	// ProcessRetries reclaims entries left pending longer than the configured idle time.
	ProcessRetries(ctx context.Context)
	Ingest(ctx context.Context, msg dto.FilingMessage) (*dto.IngestReport, error)
}

type ingestionService struct {
	cfg             *config.Config
	stream          StreamConsumer
	transactionRepo repository.InsiderTransactionRepository
	notifier        telegram.Notifier
	log             *logger.Logger
}

// NewIngestionService creates an ingestion service. notifier may be nil.
func NewIngestionService(
	cfg *config.Config,
	stream StreamConsumer,
	transactionRepo repository.InsiderTransactionRepository,
	notifier telegram.Notifier,
	log *logger.Logger,
) IngestionService {
	return &ingestionService{
		cfg:             cfg,
		stream:          stream,
		transactionRepo: transactionRepo,
		notifier:        notifier,
		log:             log,
	}
}

func (s *ingestionService) ProcessFilings(ctx context.Context) {
	streams, err := s.stream.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamInsiderFilings, ">"},
		Count:    s.cfg.Ingestion.BatchSize,
		Block:    s.cfg.Ingestion.Block,
	}).Result()
	if err != nil {
		// Cancellation, deadline and an empty block are the normal idle outcomes.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.Nil) {
			return
		}
		s.log.Error("Failed to read from stream", logger.ErrorField(err), logger.StringField("stream", common.RedisStreamInsiderFilings))
		return
	}

	for _, stream := range streams {
		for _, message := range stream.Messages {
			s.handle(ctx, message)
		}
	}
}

func (s *ingestionService) ProcessRetries(ctx context.Context) {
	msgs, _, err := s.stream.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   common.RedisStreamInsiderFilings,
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer + "-retry",
		MinIdle:  s.cfg.Ingestion.MaxIdle,
		Start:    "0",
		Count:    s.cfg.Ingestion.BatchSize,
	}).Result()
	if err != nil {
		s.log.Error("Failed to claim pending filings", logger.ErrorField(err))
		return
	}
	if len(msgs) == 0 {
		s.log.Debug("Retry no pending messages found", logger.StringField("stream", common.RedisStreamInsiderFilings))
		return
	}

	s.log.Info("Found pending filings", logger.IntField("count", len(msgs)))
	for _, msg := range msgs {
		pendingInfo, err := s.stream.XPendingExt(ctx, &redis.XPendingExtArgs{
			Stream: common.RedisStreamInsiderFilings,
			Group:  common.RedisStreamGroup,
			Start:  msg.ID,
			End:    msg.ID,
			Count:  1,
		}).Result()
		if err != nil {
			s.log.Error("Failed to get pending info", logger.ErrorField(err), logger.StringField("message_id", msg.ID))
			continue
		}
		if len(pendingInfo) == 0 {
			s.log.Warn("pending msg not found, but exist on xautoclaim", logger.StringField("message_id", msg.ID))
			continue
		}

		if pendingInfo[0].RetryCount >= int64(s.cfg.Ingestion.MaxRetry) {
			s.log.Error("pending msg retry count exceeded",
				logger.StringField("message_id", msg.ID),
				logger.IntField("retry_count", int(pendingInfo[0].RetryCount)),
				logger.IntField("max_retry", s.cfg.Ingestion.MaxRetry))
			s.notifyError(msg.ID, fmt.Sprintf("filing dropped after %d delivery attempts", pendingInfo[0].RetryCount))
			s.ackNDel(ctx, msg.ID)
			continue
		}

		s.handle(ctx, msg)
	}
}

// handle ingests one stream entry. Entries that can never succeed are acknowledged and
// dropped; storage failures leave the entry pending for the retry loop.
func (s *ingestionService) handle(ctx context.Context, message redis.XMessage) {
	raw, ok := message.Values[common.RedisStreamPayloadField].(string)
	if !ok {
		s.log.Error("field 'payload' not found or not a string in stream message", logger.StringField("message_id", message.ID))
		s.ackNDel(ctx, message.ID)
		return
	}

	var msg dto.FilingMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		s.log.Error("Failed to unmarshal filing", logger.ErrorField(err), logger.StringField("message_id", message.ID))
		s.ackNDel(ctx, message.ID)
		return
	}

	report, err := s.Ingest(ctx, msg)
	if err != nil {
		s.log.Error("Failed to ingest filing", logger.ErrorField(err),
			logger.StringField("message_id", message.ID),
			logger.StringField("accession_number", msg.AccessionNumber))
		return
	}

	s.ackNDel(ctx, message.ID)
	s.log.Debug("Filing ingested",
		logger.StringField("message_id", message.ID),
		logger.StringField("accession_number", msg.AccessionNumber),
		logger.IntField("inserted", report.Inserted),
		logger.IntField("skipped", report.Skipped),
		logger.IntField("rejected", report.Rejected))
}

// Ingest validates every line of a filing and stores purchases and sales. Sales are kept
// for the insider selling red flag. Lines already stored are counted as skipped.
func (s *ingestionService) Ingest(ctx context.Context, msg dto.FilingMessage) (*dto.IngestReport, error) {
	report := &dto.IngestReport{Lines: len(msg.Transactions)}

	txns := ToTransactions(msg.Transactions)
	valid := make([]entity.InsiderTransaction, 0, len(txns))
	for i, t := range txns {
		t.Ticker = strings.ToUpper(strings.TrimSpace(t.Ticker))
		t.InsiderName = strings.TrimSpace(t.InsiderName)
		t.AccessionNumber = msg.AccessionNumber
		if t.InsiderRole == "" {
			t.InsiderRole = entity.InsiderRoleOther
		}
		if !t.TransactionDate.IsZero() {
			t.TransactionDate = utils.DateOnly(t.TransactionDate)
		}
		if !t.FilingDate.IsZero() {
			t.FilingDate = utils.DateOnly(t.FilingDate)
		}

		if err := validateFiled(t); err != nil {
			report.Rejected++
			s.log.Debug("Filing line rejected", logger.ErrorField(err),
				logger.StringField("accession_number", msg.AccessionNumber),
				logger.IntField("line", i),
				logger.StringField("ticker", t.Ticker))
			continue
		}
		valid = append(valid, t)
	}

	inserted, err := s.transactionRepo.CreateBatch(ctx, valid)
	if err != nil {
		return nil, fmt.Errorf("failed to store insider transactions: %w", err)
	}
	report.Inserted = int(inserted)
	report.Skipped = len(valid) - report.Inserted
	return report, nil
}

// validateFiled applies the purchase checks to sales as well.
func validateFiled(t entity.InsiderTransaction) error {
	if t.TransactionCode == entity.TransactionCodeSale {
		t.TransactionCode = entity.TransactionCodePurchase
	}
	return conviction.Validate(t)
}

func (s *ingestionService) ackNDel(ctx context.Context, messageID string) {
	if err := s.stream.XAck(ctx, common.RedisStreamInsiderFilings, common.RedisStreamGroup, messageID).Err(); err != nil {
		s.log.Error("Failed to acknowledge filing", logger.ErrorField(err), logger.StringField("message_id", messageID))
		return
	}
	if err := s.stream.XDel(ctx, common.RedisStreamInsiderFilings, messageID).Err(); err != nil {
		s.log.Error("Failed to delete filing", logger.ErrorField(err), logger.StringField("message_id", messageID))
	}
}

func (s *ingestionService) notifyError(messageID string, errMsg string) {
	if s.notifier == nil {
		return
	}
	msg := telegram.FormatErrorAlertMessage(time.Now(), "ingest_filing", errMsg, messageID)
	if err := s.notifier.SendMessage(msg); err != nil {
		s.log.Error("Failed to send telegram error alert", logger.ErrorField(err))
	}
}
