// Package observability provides Prometheus metrics for the settlement
// engine.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the launchpad.
type Metrics struct {
	// Settlement metrics
	TradesTotal       *prometheus.CounterVec
	TradeVolumeSol    *prometheus.CounterVec
	TradeRejections   *prometheus.CounterVec
	SettlementLatency *prometheus.HistogramVec

	// Lifecycle metrics
	TokensLaunched   prometheus.Counter
	GraduationsTotal prometheus.Counter

	// Curve metrics
	ActiveCurves prometheus.Gauge
}

// NewMetrics creates a Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "curve_launchpad"
	}

	return &Metrics{
		TradesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "settlement",
			Name:      "trades_total",
			Help:      "Total number of settled trades",
		}, []string{"side"}),
		TradeVolumeSol: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "settlement",
			Name:      "trade_volume_lamports_total",
			Help:      "Cumulative gross SOL volume in lamports",
		}, []string{"side"}),
		TradeRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "settlement",
			Name:      "trade_rejections_total",
			Help:      "Rejected trades by reason",
		}, []string{"side", "reason"}),
		SettlementLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "settlement",
			Name:      "latency_seconds",
			Help:      "Settlement operation latency",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 10, 8),
		}, []string{"operation"}),
		TokensLaunched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "tokens_launched_total",
			Help:      "Total number of tokens launched",
		}),
		GraduationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "graduations_total",
			Help:      "Total number of curves graduated",
		}),
		ActiveCurves: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "active_curves",
			Help:      "Number of curves still trading",
		}),
	}
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
