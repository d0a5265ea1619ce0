package consumer

import (
	"context"
	"sync"
	"time"

	"insider-conviction/internal/scoring/config"
	"insider-conviction/internal/scoring/service"
	"insider-conviction/pkg/common"
	"insider-conviction/pkg/logger"
	"insider-conviction/pkg/utils"
)

// RedisConsumer drives filing ingestion from the Redis stream.
type RedisConsumer struct {
	cfg              *config.Config
	ingestionService service.IngestionService
	logger           *logger.Logger
	stopChan         chan struct{}
	stopOnce         sync.Once
	wg               sync.WaitGroup
}

// NewRedisConsumer creates a new RedisConsumer.
func NewRedisConsumer(cfg *config.Config, ingestionService service.IngestionService, log *logger.Logger) *RedisConsumer {
	return &RedisConsumer{
		cfg:              cfg,
		ingestionService: ingestionService,
		logger:           log,
		stopChan:         make(chan struct{}),
	}
}

// Start begins the read loop and the pending-entry retry loop.
func (c *RedisConsumer) Start(ctx context.Context) {
	c.logger.Info("Filing consumer started", logger.StringField("group", common.RedisStreamGroup))
	c.RegisterStreamHandler(ctx, c.ingestionService.ProcessFilings, common.RedisStreamInsiderFilings, c.cfg.Ingestion.Timeout)

	// Entries left pending by a failed store are reclaimed here.
	c.RegisterTickerHandler(ctx, c.ingestionService.ProcessRetries, c.cfg.Ingestion.RetryInterval, c.cfg.Ingestion.Timeout, common.RedisStreamInsiderFilings+"-retry")
}

func (c *RedisConsumer) RegisterStreamHandler(ctx context.Context, fn func(ctx context.Context), streamName string, timeout time.Duration) {
	c.logger.Info("Registering stream handler", logger.StringField("stream", streamName), logger.Field("timeout", timeout))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Stream handler stopping due to context cancellation", logger.StringField("stream", streamName))
				return
			case <-c.stopChan:
				c.logger.Info("Stream handler stopping", logger.StringField("stream", streamName))
				return
			default:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			}
		}
	})
}

func (c *RedisConsumer) RegisterTickerHandler(ctx context.Context, fn func(ctx context.Context), interval time.Duration, timeout time.Duration, name string) {
	c.logger.Info("Registering ticker handler",
		logger.Field("name", name),
		logger.Field("interval", interval),
		logger.Field("timeout", timeout))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			case <-ctx.Done():
				c.logger.Info("Ticker handler stopping due to context cancellation", logger.Field("name", name))
				return
			case <-c.stopChan:
				c.logger.Info("Ticker handler stopping", logger.Field("name", name))
				return
			}
		}
	})
}

// Stop gracefully shuts down the consumer.
func (c *RedisConsumer) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
	c.wg.Wait()
	c.logger.Info("Filing consumer stopped")
}
