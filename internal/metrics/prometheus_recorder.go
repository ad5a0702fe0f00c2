package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitecfg"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	generations      *prom.CounterVec
	duration         prom.Histogram
	validationIssues prom.Gauge
	missingPages     prom.Gauge
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		generations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Configuration generations by outcome",
		}, []string{"outcome"}),
		duration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Time to load, validate and write the site configuration",
			Buckets:   prom.DefBuckets,
		}),
		validationIssues: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "validation_issues",
			Help:      "Validation issues found by the last generation",
		}),
		missingPages: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "lint_missing_pages",
			Help:      "Referenced pages missing from the docs directory at the last generation",
		}),
	}
	reg.MustRegister(pr.generations, pr.duration, pr.validationIssues, pr.missingPages)
	return pr
}

func (p *PrometheusRecorder) ObserveGenerationDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.duration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncGeneration(outcome Outcome) {
	if p == nil {
		return
	}
	p.generations.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetValidationIssues(n int) {
	if p == nil {
		return
	}
	p.validationIssues.Set(float64(n))
}

func (p *PrometheusRecorder) SetLintMissingPages(n int) {
	if p == nil {
		return
	}
	p.missingPages.Set(float64(n))
}
