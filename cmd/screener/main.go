package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/kosuri18/stock-screener/internal/analysis/options"
	"github.com/kosuri18/stock-screener/internal/analysis/technical"
	"github.com/kosuri18/stock-screener/internal/backtest"
	"github.com/kosuri18/stock-screener/internal/collector"
	"github.com/kosuri18/stock-screener/internal/config"
	"github.com/kosuri18/stock-screener/internal/pipeline"
	"github.com/kosuri18/stock-screener/internal/reporting"
	"github.com/kosuri18/stock-screener/internal/risk"
	"github.com/kosuri18/stock-screener/internal/signal"
	"github.com/kosuri18/stock-screener/pkg/types"
)

func main() {
	var (
		tickerList = flag.String("tickers", "", "Comma-separated tickers (overrides TICKERS env)")
		suggest    = flag.Bool("suggest", false, "Use the simplified RSI/MACD suggestion rule")
		save       = flag.Bool("save", false, "Write JSON and xlsx report files")
		outputDir  = flag.String("output", "", "Report output directory (default: results/<date>)")
		envFile    = flag.String("env", ".env", "Environment file path (default: .env)")
	)
	flag.Parse()

	if _, err := os.Stat(*envFile); err == nil {
		if err := godotenv.Load(*envFile); err != nil {
			log.Printf("Failed to load %s: %v", *envFile, err)
		}
	}

	cfg := config.Load()

	tickers := cfg.Universe.Tickers
	if *tickerList != "" {
		tickers = splitTickers(*tickerList)
	}
	if len(tickers) == 0 {
		log.Fatal("No tickers to scan")
	}

	provider := collector.New(cfg.Collector.HistoryDays, cfg.Collector.MaxRetries, cfg.Collector.NewsLimit)
	riskManager := risk.NewPortfolioManager(cfg.Risk.MaxPositionPct, cfg.Risk.MaxPortfolioRisk, cfg.Risk.StopLossPct)

	pipe := pipeline.New(
		provider,
		technical.NewAnalyzer(),
		options.NewAnalyzer(),
		backtest.NewEngineWithCapital(cfg.Backtest.Strategy, cfg.Backtest.InitialCapital),
		riskManager,
	)
	pipe.SetStrategy(signal.StrategyByName(cfg.Strategy.Name))

	portfolio := &types.Portfolio{
		Value:       cfg.Portfolio.Value,
		Cash:        cfg.Portfolio.Cash,
		BuyingPower: cfg.Portfolio.Cash,
	}

	signals := make([]signal.TradeSignal, 0, len(tickers))
	for _, ticker := range tickers {
		var sig signal.TradeSignal
		if *suggest {
			md, err := provider.Collect(ticker)
			if err != nil {
				log.Printf("Collection failed for %s: %v", ticker, err)
				sig = signal.Hold(ticker, "suggestion failed: "+err.Error())
			} else {
				sig = pipe.Suggest(md)
			}
		} else {
			sig = pipe.Process(ticker, portfolio)
		}
		signals = append(signals, sig)
	}

	report := reporting.NewReport(signals)
	reporting.NewConsoleReporter().OutputReport(report)

	if !*save {
		return
	}

	dir := *outputDir
	if dir == "" {
		dir = reporting.DefaultOutputDir(report.GeneratedAt)
	}
	path, err := reporting.SaveReport(report, dir)
	if err != nil {
		log.Fatalf("Failed to save report: %v", err)
	}
	log.Printf("Report written to %s", path)
}

func splitTickers(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.ToUpper(strings.TrimSpace(p)); t != "" {
			out = append(out, t)
		}
	}
	return out
}
