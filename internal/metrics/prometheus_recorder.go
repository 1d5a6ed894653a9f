package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	publishDuration prom.Histogram
	stageDuration   *prom.HistogramVec
	localeOutcome   *prom.CounterVec
	filesCopied     prom.Counter
	recordsWritten  prom.Counter
	locales         prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.publishDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docpub",
			Name:      "publish_duration_seconds",
			Help:      "Total publication run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docpub",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual publish stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.localeOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docpub",
			Name:      "locale_outcomes_total",
			Help:      "Per-locale publication outcomes",
		}, []string{"locale", "result"})
		pr.filesCopied = prom.NewCounter(prom.CounterOpts{
			Namespace: "docpub",
			Name:      "files_copied_total",
			Help:      "Files replicated into destination trees",
		})
		pr.recordsWritten = prom.NewCounter(prom.CounterOpts{
			Namespace: "docpub",
			Name:      "navigation_records_total",
			Help:      "Navigation records written",
		})
		pr.locales = prom.NewGauge(prom.GaugeOpts{
			Namespace: "docpub",
			Name:      "configured_locales",
			Help:      "Locales configured for the current run",
		})
		reg.MustRegister(pr.publishDuration, pr.stageDuration, pr.localeOutcome, pr.filesCopied, pr.recordsWritten, pr.locales)
	})
	return pr
}

func (p *PrometheusRecorder) ObservePublishDuration(d time.Duration) {
	if p == nil || p.publishDuration == nil {
		return
	}
	p.publishDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncLocaleOutcome(locale string, result ResultLabel) {
	if p == nil || p.localeOutcome == nil {
		return
	}
	p.localeOutcome.WithLabelValues(locale, string(result)).Inc()
}

func (p *PrometheusRecorder) AddFilesCopied(n int) {
	if p == nil || p.filesCopied == nil {
		return
	}
	p.filesCopied.Add(float64(n))
}

func (p *PrometheusRecorder) AddRecordsWritten(n int) {
	if p == nil || p.recordsWritten == nil {
		return
	}
	p.recordsWritten.Add(float64(n))
}

func (p *PrometheusRecorder) SetLocales(n int) {
	if p == nil || p.locales == nil {
		return
	}
	p.locales.Set(float64(n))
}
