package core

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetricsRecorder publishes stage durations and result counters
// to a Prometheus registry.
type PrometheusMetricsRecorder struct {
	durations *prometheus.HistogramVec
	results   *prometheus.CounterVec
}

var _ MetricsRecorder = (*PrometheusMetricsRecorder)(nil)

// NewPrometheusMetricsRecorder registers the pipeline collectors with reg
// and returns the recorder. Registering twice on the same registry fails.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer) (*PrometheusMetricsRecorder, error) {
	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lifepanel",
		Subsystem: "pipeline",
		Name:      "stage_duration_seconds",
		Help:      "Wall-clock duration of each pipeline stage.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})
	results := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lifepanel",
		Subsystem: "pipeline",
		Name:      "stage_results_total",
		Help:      "Pipeline stage outcomes by status.",
	}, []string{"stage", "status"})
	if err := reg.Register(durations); err != nil {
		return nil, err
	}
	if err := reg.Register(results); err != nil {
		return nil, err
	}
	return &PrometheusMetricsRecorder{durations: durations, results: results}, nil
}

// Observe records one stage outcome.
func (r *PrometheusMetricsRecorder) Observe(_ context.Context, stage string, success bool, duration time.Duration) {
	if stage == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.durations.WithLabelValues(stage).Observe(duration.Seconds())
	r.results.WithLabelValues(stage, status).Inc()
}
