package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	jobsTotal            *prometheus.CounterVec
	jobDuration          *prometheus.HistogramVec
	jobsInFlight         prometheus.Gauge
	queueLag             *prometheus.HistogramVec
	classificationsTotal *prometheus.CounterVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	jobsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "autou",
			Subsystem: "pipeline",
			Name:      "jobs_total",
			Help:      "Total pipeline jobs by outcome.",
		},
		[]string{"service", "status"},
	)
	jobDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "autou",
			Subsystem: "pipeline",
			Name:      "job_duration_seconds",
			Help:      "Pipeline job duration in seconds by outcome.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	jobsInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "autou",
			Subsystem: "pipeline",
			Name:      "jobs_in_flight",
			Help:      "Number of pipeline jobs currently running.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "autou",
			Subsystem: "pipeline",
			Name:      "queue_lag_seconds",
			Help:      "Delay between job enqueue and processing start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)
	classificationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "autou",
			Subsystem: "pipeline",
			Name:      "classifications_total",
			Help:      "Total completed classifications by resolved category.",
		},
		[]string{"service", "category"},
	)

	registry.MustRegister(jobsTotal, jobDuration, jobsInFlight, queueLag, classificationsTotal)

	return &WorkerMetrics{
		registry:             registry,
		jobsTotal:            jobsTotal,
		jobDuration:          jobDuration,
		jobsInFlight:         jobsInFlight,
		queueLag:             queueLag,
		classificationsTotal: classificationsTotal,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartJob() {
	m.jobsInFlight.Inc()
}

func (m *WorkerMetrics) FinishJob(service string, duration time.Duration, err error) {
	m.jobsInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.jobsTotal.WithLabelValues(service, status).Inc()
	m.jobDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}

func (m *WorkerMetrics) RecordClassification(service, category string) {
	if category == "" {
		category = "unknown"
	}
	m.classificationsTotal.WithLabelValues(service, category).Inc()
}
