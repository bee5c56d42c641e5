package bot

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/kosuri18/stock-screener/internal/config"
	"github.com/kosuri18/stock-screener/internal/market"
	"github.com/kosuri18/stock-screener/internal/monitoring"
	"github.com/kosuri18/stock-screener/internal/notifications"
	"github.com/kosuri18/stock-screener/internal/pipeline"
	"github.com/kosuri18/stock-screener/internal/reporting"
	"github.com/kosuri18/stock-screener/internal/signal"
	"github.com/kosuri18/stock-screener/pkg/types"
)

// Bot scans the configured ticker universe on an interval and reports the
// resulting signals. It never places orders; signals go to the console,
// report files and the notifier.
type Bot struct {
	config        *config.Config
	pipeline      *pipeline.Pipeline
	provider      pipeline.DataProvider
	marketReader  *market.Analyzer
	portfolio     *types.Portfolio
	notifier      notifications.Notifier
	healthChecker *monitoring.HealthChecker
	console       *reporting.ConsoleReporter
	stopChan      chan struct{}
}

// New creates a bot over an assembled pipeline. The provider is also used
// directly to read benchmark conditions before each scan.
func New(cfg *config.Config, p *pipeline.Pipeline, provider pipeline.DataProvider, portfolio *types.Portfolio, notifier notifications.Notifier, health *monitoring.HealthChecker) *Bot {
	return &Bot{
		config:        cfg,
		pipeline:      p,
		provider:      provider,
		marketReader:  market.NewAnalyzer(),
		portfolio:     portfolio,
		notifier:      notifier,
		healthChecker: health,
		console:       reporting.NewConsoleReporter(),
		stopChan:      make(chan struct{}),
	}
}

// Start runs an immediate scan and then launches the scan loop.
func (b *Bot) Start(ctx context.Context) error {
	log.Printf("Starting screener over %d tickers (interval %s)", len(b.config.Universe.Tickers), b.config.Strategy.ScanInterval)

	if b.config.Notifications.TelegramToken != "" {
		if err := b.notifier.SendAlert("info", "Screener started"); err != nil {
			log.Printf("Failed to send startup notification: %v", err)
		}
	} else {
		log.Println("Telegram notifications disabled (no token configured)")
	}

	b.runScan(ctx)

	if b.config.Strategy.TestMode {
		log.Println("Test mode - completing single scan")
		return nil
	}

	go b.scanLoop(ctx)
	return nil
}

// scanLoop runs the main scan cycle until the context or stop channel fires.
func (b *Bot) scanLoop(ctx context.Context) {
	ticker := time.NewTicker(b.config.Strategy.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Scan loop stopped")
			return
		case <-b.stopChan:
			log.Println("Scan loop stopped")
			return
		case <-ticker.C:
			b.runScan(ctx)
		}
	}
}

// runScan processes every ticker in the universe and reports the scan. When
// the benchmark shows stressed conditions the scan still runs, but every
// actionable signal is downgraded to hold.
func (b *Bot) runScan(ctx context.Context) {
	riskOff := b.marketRiskOff()

	signals := make([]signal.TradeSignal, 0, len(b.config.Universe.Tickers))
	for _, ticker := range b.config.Universe.Tickers {
		select {
		case <-ctx.Done():
			return
		default:
		}

		sig := b.pipeline.Process(ticker, b.portfolio)
		if riskOff && sig.Action != signal.ActionHold {
			monitoring.RecordRejection("market_volatility")
			sig.Action = signal.ActionHold
			sig.Quantity = 0
			sig.StopLoss = 0
			sig.Reasons = append(sig.Reasons, "High market volatility")
		}
		signals = append(signals, sig)
		b.healthChecker.RecordScan(ticker)

		if sig.Action != signal.ActionHold {
			if err := b.notifier.SendSignal(sig); err != nil {
				log.Printf("Failed to send signal notification for %s: %v", ticker, err)
				b.healthChecker.AddError(err.Error())
			}
		}
	}

	report := reporting.NewReport(signals)
	b.console.OutputReport(report)

	dir := filepath.Join(b.config.Output.Directory, report.GeneratedAt.Format("2006-01-02"))
	path, err := reporting.SaveReport(report, dir)
	if err != nil {
		log.Printf("Failed to save scan report: %v", err)
		b.healthChecker.AddError(err.Error())
		return
	}
	log.Printf("Scan report written to %s", path)
}

// marketRiskOff reads benchmark conditions and reports whether annualized
// volatility is above the configured ceiling. Any failure reads as risk-on;
// the per-ticker risk manager still applies.
func (b *Bot) marketRiskOff() bool {
	md, err := b.provider.Collect(b.config.Universe.Benchmark)
	if err != nil {
		log.Printf("Benchmark %s unavailable: %v", b.config.Universe.Benchmark, err)
		return false
	}

	cond, err := b.marketReader.Analyze(md.Bars)
	if err != nil {
		log.Printf("Benchmark %s analysis failed: %v", b.config.Universe.Benchmark, err)
		return false
	}

	log.Printf("Market conditions (%s): trend %s/%s/%s, annualized vol %.1f%%, max drawdown %.1f%%",
		b.config.Universe.Benchmark,
		cond.Trend.ShortTerm, cond.Trend.MediumTerm, cond.Trend.LongTerm,
		cond.Volatility.Annualized*100, cond.Volatility.MaxDrawdown*100)

	if cond.Volatility.Annualized > b.config.Risk.MaxMarketVolatility {
		log.Printf("Market volatility %.1f%% above %.1f%% ceiling, downgrading signals to hold",
			cond.Volatility.Annualized*100, b.config.Risk.MaxMarketVolatility*100)
		if err := b.notifier.SendAlert("warning", "High market volatility, signals downgraded to hold"); err != nil {
			log.Printf("Failed to send volatility alert: %v", err)
		}
		return true
	}
	return false
}

// Shutdown stops the scan loop.
func (b *Bot) Shutdown(ctx context.Context) error {
	log.Println("Shutting down screener...")

	close(b.stopChan)

	if err := b.notifier.SendAlert("info", "Screener stopped"); err != nil {
		log.Printf("Failed to send shutdown notification: %v", err)
	}

	log.Println("Screener shutdown complete")
	return nil
}
