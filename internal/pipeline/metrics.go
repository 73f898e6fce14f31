package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"billscan/internal/domain"
	"billscan/internal/pdftext"
)

// Outcomes recorded by the runs counter.
const (
	OutcomeSuccess          = "success"
	OutcomeCompletionFailed = "completion_failed"
	OutcomePersistFailed    = "persist_failed"
)

// Metrics holds the pipeline's Prometheus collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	pages    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "billscan",
			Name:      "pipeline_runs_total",
			Help:      "Bill extraction runs by category and outcome.",
		}, []string{"category", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "billscan",
			Name:      "pipeline_duration_seconds",
			Help:      "Wall-clock duration of bill extraction runs.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
		}, []string{"category"}),
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "billscan",
			Name:      "pdf_pages_total",
			Help:      "PDF pages read, by extraction method (text, ocr, none).",
		}, []string{"method"}),
	}
	reg.MustRegister(m.runs, m.duration, m.pages)
	return m
}

func (m *Metrics) observeRun(category domain.BillCategory, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(string(category), outcome).Inc()
	m.duration.WithLabelValues(string(category)).Observe(d.Seconds())
}

func (m *Metrics) observePages(pages []pdftext.PageText) {
	if m == nil {
		return
	}
	for _, p := range pages {
		m.pages.WithLabelValues(string(p.Method)).Inc()
	}
}

// Runs exposes the runs counter.
func (m *Metrics) Runs() *prometheus.CounterVec { return m.runs }

// Pages exposes the pages counter.
func (m *Metrics) Pages() *prometheus.CounterVec { return m.pages }
