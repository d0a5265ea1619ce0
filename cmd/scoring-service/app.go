package main

import (
	"context"
	"fmt"
	"strings"

	"insider-conviction/internal/conviction"
	"insider-conviction/internal/scoring/config"
	"insider-conviction/internal/scoring/provider"
	"insider-conviction/internal/scoring/repository"
	"insider-conviction/internal/scoring/service"
	"insider-conviction/internal/signal"
	"insider-conviction/pkg/common"
	"insider-conviction/pkg/logger"
	"insider-conviction/pkg/postgres"
	"insider-conviction/pkg/redis"
	"insider-conviction/pkg/telegram"

	"google.golang.org/genai"
)

// app holds everything both commands need.
type app struct {
	cfg               *config.Config
	logger            *logger.Logger
	db                *postgres.DB
	redisClient       *redis.Client
	refreshService    service.RefreshService
	scoringService    service.ScoringService
	convictionService service.ConvictionService
	ingestionService  service.IngestionService
}

func newApp(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) (_ *app, err error) {
	a := &app{cfg: cfg, logger: appLogger}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	// Initialize database
	db, err := postgres.NewDB(postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a.db = db

	// Initialize Redis
	redisClient, err := redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	a.redisClient = redisClient

	// Initialize repositories
	transactionRepo := repository.NewInsiderTransactionRepository(db.DB)
	convictionRepo := repository.NewConvictionSignalRepository(db.DB)

	cache := signal.NewCache()
	prices := signal.NewPriceLookup(cache, cfg.Scoring.UseStaleSignals)

	deps := provider.Dependencies{
		Yahoo:        repository.NewYahooFinanceRepository(cfg.YahooFinance, appLogger),
		News:         repository.NewNewsFeedRepository(cfg.News, appLogger),
		Transactions: transactionRepo,
		Prices:       prices,
	}
	if cfg.Finnhub.APIKey != "" {
		deps.Finnhub = repository.NewFinnhubRepository(cfg.Finnhub, appLogger)
	}
	if cfg.Polygon.APIKey != "" {
		deps.Polygon = repository.NewPolygonRepository(cfg.Polygon, appLogger)
	}
	if cfg.Gemini.APIKey != "" {
		genAiClient, genErr := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if genErr != nil {
			return nil, fmt.Errorf("failed to initialize Gemini AI client: %w", genErr)
		}
		deps.Earnings = repository.NewGeminiRepository(cfg.Gemini, appLogger, genAiClient)
	}
	providers := provider.Build(cfg.Signals, deps, appLogger)

	// Initialize engine
	engineCfg, err := cfg.Engine()
	if err != nil {
		return nil, err
	}
	engine, err := conviction.NewEngine(engineCfg, cache, prices, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize conviction engine: %w", err)
	}

	var notifier telegram.Notifier
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(telegram.Config{
			BotToken:          cfg.Telegram.BotToken,
			ChatID:            cfg.Telegram.ChatID,
			MessagesPerSecond: cfg.Telegram.MessagesPerSecond,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telegram notifier: %w", err)
		}
	}

	// Create the consumer group if it doesn't exist
	// MKSTREAM creates the stream if it doesn't exist
	if cfg.Ingestion.Enabled {
		if groupErr := redisClient.XGroupCreateMkStream(ctx, common.RedisStreamInsiderFilings, common.RedisStreamGroup, "0").Err(); groupErr != nil {
			if !strings.HasPrefix(groupErr.Error(), "BUSYGROUP") {
				return nil, fmt.Errorf("failed to create consumer group: %w", groupErr)
			}
		}
	}

	a.refreshService = service.NewRefreshService(cfg, providers, cache, transactionRepo, appLogger)
	a.scoringService = service.NewScoringService(cfg, engine, transactionRepo, convictionRepo, redisClient.Client, notifier, appLogger)
	a.convictionService = service.NewConvictionService(convictionRepo, cache)
	a.ingestionService = service.NewIngestionService(cfg, redisClient.Client, transactionRepo, notifier, appLogger)
	return a, nil
}

// close releases whatever newApp managed to open.
func (a *app) close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("Failed to close redis", logger.ErrorField(err))
		}
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
