package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Environment string
	LogLevel    string

	Universe struct {
		Tickers   []string
		Benchmark string
	}

	Strategy struct {
		Name         string
		ScanInterval time.Duration
		TestMode     bool
	}

	Portfolio struct {
		Value float64
		Cash  float64
	}

	Risk struct {
		MaxPositionPct      float64
		MaxPortfolioRisk    float64
		StopLossPct         float64
		MaxMarketVolatility float64
	}

	Collector struct {
		HistoryDays int
		MaxRetries  int
		NewsLimit   int
	}

	Backtest struct {
		Strategy       string
		InitialCapital float64
	}

	Output struct {
		Directory string
	}

	Monitoring struct {
		PrometheusPort int
		HealthPort     int
	}

	Notifications struct {
		TelegramToken  string
		TelegramChatID string
	}
}

func Load() *Config {
	cfg := &Config{
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "debug"),
	}

	cfg.Universe.Tickers = getEnvList("TICKERS", []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA"})
	cfg.Universe.Benchmark = getEnv("BENCHMARK", "SPY")

	cfg.Strategy.Name = getEnv("STRATEGY", "fusion")
	cfg.Strategy.ScanInterval = getEnvDuration("SCAN_INTERVAL", 5*time.Minute)
	cfg.Strategy.TestMode = getEnvBool("TEST_MODE", true)

	cfg.Portfolio.Value = getEnvFloat("PORTFOLIO_VALUE", 100000)
	cfg.Portfolio.Cash = getEnvFloat("PORTFOLIO_CASH", 100000)

	cfg.Risk.MaxPositionPct = getEnvFloat("MAX_POSITION_PCT", 0.10)
	cfg.Risk.MaxPortfolioRisk = getEnvFloat("MAX_PORTFOLIO_RISK", 0.02)
	cfg.Risk.StopLossPct = getEnvFloat("STOP_LOSS_PCT", 0.05)
	cfg.Risk.MaxMarketVolatility = getEnvFloat("MAX_MARKET_VOLATILITY", 0.40)

	cfg.Collector.HistoryDays = getEnvInt("HISTORY_DAYS", 365)
	cfg.Collector.MaxRetries = getEnvInt("COLLECTOR_MAX_RETRIES", 3)
	cfg.Collector.NewsLimit = getEnvInt("NEWS_LIMIT", 10)

	cfg.Backtest.Strategy = getEnv("BACKTEST_STRATEGY", "momentum")
	cfg.Backtest.InitialCapital = getEnvFloat("BACKTEST_CAPITAL", 100000)

	cfg.Output.Directory = getEnv("OUTPUT_DIR", "results")

	cfg.Monitoring.PrometheusPort = getEnvInt("PROMETHEUS_PORT", 8080)
	cfg.Monitoring.HealthPort = getEnvInt("HEALTH_PORT", 8081)

	cfg.Notifications.TelegramToken = getEnv("TELEGRAM_TOKEN", "")
	cfg.Notifications.TelegramChatID = getEnv("TELEGRAM_CHAT_ID", "")

	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.ToUpper(strings.TrimSpace(p)); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
