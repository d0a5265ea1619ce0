package config

import (
	"fmt"
	"time"

	"insider-conviction/internal/conviction"
	"insider-conviction/internal/signal"
	"insider-conviction/pkg/config"
)

// Scoring holds the conviction engine and scoring cycle settings.
type Scoring struct {
	Weights                map[string]float64 `mapstructure:"weights"`
	CoordinationWindowDays int                `mapstructure:"coordination_window_days"`
	LookbackDays           int                `mapstructure:"lookback_days"`
	UseStaleSignals        bool               `mapstructure:"use_stale_signals"`
	Schedule               string             `mapstructure:"schedule"`
	Timezone               string             `mapstructure:"timezone"`
	CycleTimeout           time.Duration      `mapstructure:"cycle_timeout"`
	AlertCategories        []string           `mapstructure:"alert_categories"`
	Mapping                conviction.Mapping `mapstructure:"mapping"`
}

// SignalFeed holds refresh settings for one provider.
type SignalFeed struct {
	Enabled         bool          `mapstructure:"enabled"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	TTL             time.Duration `mapstructure:"ttl"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// Signals holds per-source refresh settings, keyed by source name.
type Signals map[string]SignalFeed

// Feed returns the settings for src, falling back to an enabled hourly feed.
func (s Signals) Feed(src signal.Source) SignalFeed {
	feed, ok := s[string(src)]
	if !ok {
		return SignalFeed{Enabled: true, RefreshInterval: time.Hour, TTL: 2 * time.Hour, Timeout: time.Minute}
	}
	if feed.RefreshInterval <= 0 {
		feed.RefreshInterval = time.Hour
	}
	if feed.TTL <= 0 {
		feed.TTL = 2 * feed.RefreshInterval
	}
	if feed.Timeout <= 0 {
		feed.Timeout = time.Minute
	}
	return feed
}

// YahooFinance holds the configuration for the Yahoo Finance API.
type YahooFinance struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Finnhub holds the configuration for the Finnhub API.
type Finnhub struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Polygon holds the configuration for the Polygon options snapshot API.
type Polygon struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// News holds the configuration for the RSS news sentiment feed.
type News struct {
	FeedURL             string `mapstructure:"feed_url"`
	MaxArticles         int    `mapstructure:"max_articles"`
	MaxArticleAgeDays   int    `mapstructure:"max_article_age_days"`
	ReadFullArticle     bool   `mapstructure:"read_full_article"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Ingestion holds the filing stream consumer settings.
type Ingestion struct {
	Enabled       bool          `mapstructure:"enabled"`
	BatchSize     int64         `mapstructure:"batch_size"`
	Block         time.Duration `mapstructure:"block"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
	MaxIdle       time.Duration `mapstructure:"max_idle"`
	MaxRetry      int           `mapstructure:"max_retry"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled           bool    `mapstructure:"enabled"`
	BotToken          string  `mapstructure:"bot_token"`
	ChatID            int64   `mapstructure:"chat_id"`
	MessagesPerSecond float64 `mapstructure:"messages_per_second"`
}

// Config holds the full configuration for the scoring service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	API          config.API      `mapstructure:"api"`
	Scoring      Scoring         `mapstructure:"scoring"`
	Signals      Signals         `mapstructure:"signals"`
	YahooFinance YahooFinance    `mapstructure:"yahoo_finance"`
	Finnhub      Finnhub         `mapstructure:"finnhub"`
	Polygon      Polygon         `mapstructure:"polygon"`
	News         News            `mapstructure:"news"`
	Gemini       Gemini          `mapstructure:"gemini"`
	Ingestion    Ingestion       `mapstructure:"ingestion"`
	Telegram     Telegram        `mapstructure:"telegram"`
}

// Default returns a configuration with every optional value filled in.
func Default() Config {
	return Config{
		Logger: config.Logger{Level: "info", Encoding: "json"},
		API:    config.API{Port: 8080},
		Scoring: Scoring{
			CoordinationWindowDays: conviction.DefaultCoordinationWindowDays,
			LookbackDays:           90,
			UseStaleSignals:        true,
			Schedule:               "0 */30 * * * *",
			Timezone:               "America/New_York",
			CycleTimeout:           5 * time.Minute,
			AlertCategories:        []string{string(conviction.BandStrongBuy), string(conviction.BandBuy)},
			Mapping:                conviction.DefaultMapping(),
		},
		YahooFinance: YahooFinance{BaseURL: "https://query1.finance.yahoo.com", MaxRequestPerMinute: 60},
		Finnhub:      Finnhub{BaseURL: "https://finnhub.io/api/v1", MaxRequestPerMinute: 60},
		Polygon:      Polygon{BaseURL: "https://api.polygon.io", MaxRequestPerMinute: 5},
		News: News{
			FeedURL:             "https://news.google.com/rss/search?q=%s+stock&hl=en-US&gl=US&ceid=US:en",
			MaxArticles:         20,
			MaxArticleAgeDays:   7,
			MaxRequestPerMinute: 30,
		},
		Gemini: Gemini{Model: "gemini-2.0-flash", MaxRequestPerMinute: 10},
		Ingestion: Ingestion{
			Enabled:       true,
			BatchSize:     10,
			Block:         2 * time.Second,
			Timeout:       30 * time.Second,
			RetryInterval: time.Minute,
			MaxIdle:       5 * time.Minute,
			MaxRetry:      3,
		},
	}
}

// Engine converts the scoring section into the engine configuration.
func (c *Config) Engine() (conviction.Config, error) {
	weights, err := conviction.ParseWeights(c.Scoring.Weights)
	if err != nil {
		return conviction.Config{}, fmt.Errorf("failed to parse scoring weights: %w", err)
	}
	return conviction.Config{
		Weights:                weights,
		Mapping:                c.Scoring.Mapping,
		CoordinationWindowDays: c.Scoring.CoordinationWindowDays,
		UseStaleSignals:        c.Scoring.UseStaleSignals,
	}, nil
}

// Validate rejects unknown source names in the signals section.
func (c *Config) Validate() error {
	for name := range c.Signals {
		if _, err := signal.ParseSource(name); err != nil {
			return err
		}
	}
	for _, name := range c.Scoring.AlertCategories {
		if conviction.Band(name).Rank() < 0 {
			return fmt.Errorf("%w: alert category %q", conviction.ErrInvalidConfig, name)
		}
	}
	return nil
}

// Load loads the scoring service configuration from the given path on top of Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
