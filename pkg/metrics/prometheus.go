package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	cyclesCompleted *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	lastPrice       *prometheus.GaugeVec
	stageLatency    *prometheus.HistogramVec
	newsItems       *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		cyclesCompleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "revcycle_cycles_completed_total",
				Help: "Total number of completed revenue cycles routed to a backend",
			},
			[]string{"backend", "market"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "revcycle_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "revcycle_last_price",
				Help: "Last computed optimal price for a market",
			},
			[]string{"market"},
		),
		stageLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "revcycle_stage_duration_seconds",
				Help:    "Duration of cycle stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		newsItems: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "revcycle_news_items_total",
				Help: "Total number of news items collected from the live feed",
			},
			[]string{"market"},
		),
	}
}

// RecordCycleCompleted records a cycle result routed to a backend.
func (r *Recorder) RecordCycleCompleted(backend, market string) {
	r.cyclesCompleted.WithLabelValues(backend, market).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last computed price for a market.
func (r *Recorder) RecordLastPrice(market string, price float64) {
	r.lastPrice.WithLabelValues(market).Set(price)
}

// RecordStageLatency records stage latency in seconds.
func (r *Recorder) RecordStageLatency(stage string, seconds float64) {
	r.stageLatency.WithLabelValues(stage).Observe(seconds)
}

// RecordNewsItem records a collected news item.
func (r *Recorder) RecordNewsItem(market string) {
	r.newsItems.WithLabelValues(market).Inc()
}
