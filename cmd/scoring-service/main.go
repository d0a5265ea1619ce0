package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"insider-conviction/internal/scoring/config"
	"insider-conviction/internal/scoring/delivery/consumer"
	delivery "insider-conviction/internal/scoring/delivery/http"
	"insider-conviction/internal/scoring/delivery/job"
	_ "insider-conviction/internal/scoring/docs"
	"insider-conviction/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the scoring service",
	Run:   runServe,
}

var scoreOnceCmd = &cobra.Command{
	Use:   "score-once",
	Short: "Refreshes every signal feed, runs one scoring cycle and exits",
	Run:   runScoreOnce,
}

func loadConfig() (*config.Config, *logger.Logger) {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return cfg, appLogger
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appLogger := loadConfig()
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Scoring Service", logger.Field("name", cfg.App.Name))

	a, err := newApp(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize scoring service", logger.ErrorField(err))
	}
	defer a.close()

	// Start signal refresh and the scoring schedule
	a.refreshService.Start(ctx)
	defer a.refreshService.Stop()

	scoringJob, err := job.NewScoringJob(cfg.Scoring.Schedule, cfg.Scoring.Timezone, cfg.Scoring.CycleTimeout, a.scoringService, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize scoring job", logger.ErrorField(err))
	}
	scoringJob.Start(ctx)
	defer scoringJob.Stop()

	if cfg.Ingestion.Enabled {
		filingConsumer := consumer.NewRedisConsumer(cfg, a.ingestionService, appLogger)
		filingConsumer.Start(ctx)
		defer filingConsumer.Stop()
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	convictionHandler := delivery.NewConvictionHandler(a.convictionService, a.scoringService, appLogger)
	apiV1 := e.Group("/api/v1")
	convictionHandler.RegisterRoutes(apiV1.Group("/convictions"))

	filingHandler := delivery.NewFilingHandler(a.ingestionService, appLogger)
	filingHandler.RegisterRoutes(apiV1.Group("/filings"))

	signalHandler := delivery.NewSignalHandler(a.convictionService)
	signalHandler.RegisterRoutes(apiV1.Group("/signals"))
	signalHandler.RegisterHealth(e)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := cfg.API.Address()
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func runScoreOnce(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appLogger := loadConfig()
	defer func() { _ = appLogger.Sync() }()

	a, err := newApp(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize scoring service", logger.ErrorField(err))
	}
	defer a.close()

	if cfg.Scoring.CycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Scoring.CycleTimeout)
		defer cancel()
	}

	a.refreshService.RefreshOnce(ctx)
	report, err := a.scoringService.RunCycle(ctx)
	if err != nil {
		appLogger.Error("Scoring cycle failed", logger.ErrorField(err))
		return
	}

	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))
}

// @title Insider Conviction API
// @version 1.0
// @description Scores insider purchases against market signals and exposes the latest conviction results.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "scoring-service"}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-scoring.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd, scoreOnceCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing scoring-service CLI: %s\n", err)
		os.Exit(1)
	}
}
