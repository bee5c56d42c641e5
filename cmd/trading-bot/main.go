package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kosuri18/stock-screener/internal/analysis/options"
	"github.com/kosuri18/stock-screener/internal/analysis/technical"
	"github.com/kosuri18/stock-screener/internal/backtest"
	"github.com/kosuri18/stock-screener/internal/bot"
	"github.com/kosuri18/stock-screener/internal/collector"
	"github.com/kosuri18/stock-screener/internal/config"
	"github.com/kosuri18/stock-screener/internal/monitoring"
	"github.com/kosuri18/stock-screener/internal/notifications"
	"github.com/kosuri18/stock-screener/internal/pipeline"
	"github.com/kosuri18/stock-screener/internal/risk"
	sig "github.com/kosuri18/stock-screener/internal/signal"
	"github.com/kosuri18/stock-screener/pkg/types"
)

func main() {
	envFile := flag.String("env", ".env", "Environment file path (default: .env)")
	flag.Parse()

	if _, err := os.Stat(*envFile); err == nil {
		if err := godotenv.Load(*envFile); err != nil {
			log.Printf("Failed to load %s: %v", *envFile, err)
		}
	}

	cfg := config.Load()

	// Setup logging
	if cfg.LogLevel == "debug" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
	log.Printf("Starting stock screener in %s mode", cfg.Environment)

	// Initialize components
	healthChecker := monitoring.NewHealthChecker()
	notifier := buildNotifier(cfg)

	provider := collector.New(cfg.Collector.HistoryDays, cfg.Collector.MaxRetries, cfg.Collector.NewsLimit)
	riskManager := risk.NewPortfolioManager(cfg.Risk.MaxPositionPct, cfg.Risk.MaxPortfolioRisk, cfg.Risk.StopLossPct)

	pipe := pipeline.New(
		provider,
		technical.NewAnalyzer(),
		options.NewAnalyzer(),
		backtest.NewEngineWithCapital(cfg.Backtest.Strategy, cfg.Backtest.InitialCapital),
		riskManager,
	)
	pipe.SetStrategy(sig.StrategyByName(cfg.Strategy.Name))

	portfolio := &types.Portfolio{
		Value:       cfg.Portfolio.Value,
		Cash:        cfg.Portfolio.Cash,
		BuyingPower: cfg.Portfolio.Cash,
	}

	screener := bot.New(cfg, pipe, provider, portfolio, notifier, healthChecker)

	// Setup HTTP servers
	go setupMonitoringServers(cfg, healthChecker)

	// Start the bot
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Strategy.TestMode {
		if err := screener.Start(ctx); err != nil {
			log.Fatalf("Screener error: %v", err)
		}
		return
	}

	go func() {
		if err := screener.Start(ctx); err != nil {
			log.Printf("Screener error: %v", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := screener.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Screener stopped successfully")
}

func buildNotifier(cfg *config.Config) notifications.Notifier {
	if cfg.Notifications.TelegramToken != "" && cfg.Notifications.TelegramChatID != "" {
		return notifications.NewTelegramNotifier(cfg.Notifications.TelegramToken, cfg.Notifications.TelegramChatID)
	}
	return notifications.NewLogNotifier()
}

func setupMonitoringServers(cfg *config.Config, healthChecker *monitoring.HealthChecker) {
	// Create separate mux for health server
	healthMux := http.NewServeMux()
	healthMux.Handle("/health", healthChecker)

	// Start health server
	go func() {
		log.Printf("Starting health server on port %d", cfg.Monitoring.HealthPort)
		if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.Monitoring.HealthPort), healthMux); err != nil {
			log.Printf("Health server error: %v", err)
		}
	}()

	// Start Prometheus metrics server
	go func() {
		log.Printf("Starting Prometheus server on port %d", cfg.Monitoring.PrometheusPort)
		if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort), monitoring.NewMetricsHandler()); err != nil {
			log.Printf("Prometheus server error: %v", err)
		}
	}()
}
