package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Signal metrics
	signalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screener_signals_total",
			Help: "Total number of trade signals generated",
		},
		[]string{"ticker", "action"},
	)

	signalConfidence = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "screener_signal_confidence",
			Help: "Latest fusion confidence per ticker",
		},
		[]string{"ticker"},
	)

	// Risk metrics
	tradesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screener_trades_rejected_total",
			Help: "Trades rejected by risk validation or sizing",
		},
		[]string{"reason"},
	)

	// Market data metrics
	tickerPrice = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "screener_ticker_price",
			Help: "Latest close price per ticker",
		},
		[]string{"ticker"},
	)

	// Error metrics
	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screener_errors_total",
			Help: "Total number of errors",
		},
		[]string{"type"},
	)
)

func init() {
	// Register metrics
	prometheus.MustRegister(signalsTotal)
	prometheus.MustRegister(signalConfidence)
	prometheus.MustRegister(tradesRejected)
	prometheus.MustRegister(tickerPrice)
	prometheus.MustRegister(errorsTotal)
}

// MetricsHandler handles Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordSignal records a generated signal and its confidence
func RecordSignal(ticker, action string, confidence float64) {
	signalsTotal.WithLabelValues(ticker, action).Inc()
	signalConfidence.WithLabelValues(ticker).Set(confidence)
}

// RecordRejection records a risk rejection
func RecordRejection(reason string) {
	tradesRejected.WithLabelValues(reason).Inc()
}

// UpdatePrice updates the latest close price metric
func UpdatePrice(ticker string, price float64) {
	tickerPrice.WithLabelValues(ticker).Set(price)
}

// RecordError records an error metric
func RecordError(errorType string) {
	errorsTotal.WithLabelValues(errorType).Inc()
}
