package metrics

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	answerResolutions *prometheus.CounterVec
	remoteDuration    *prometheus.HistogramVec
	httpRequests      *prometheus.CounterVec
}

func New(namespace string) *Metrics {
	ns := FmtFixer(namespace)
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		answerResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "answer_resolutions_total",
			Help:      "Chat answers by remote outcome and the path that produced the text.",
		}, []string{"outcome", "path"}),
		remoteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "remote_ai_duration_seconds",
			Help:      "Latency of calls to the remote chat completion service.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		}, []string{"provider"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_requests_total",
			Help:      "Handled HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
	}
	registry.MustRegister(m.answerResolutions, m.remoteDuration, m.httpRequests)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.InstrumentMetricHandler(m.registry, promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) AnswerResolved(outcome, path string) {
	m.answerResolutions.WithLabelValues(outcome, path).Inc()
}

func (m *Metrics) RemoteTimer(provider string) *prometheus.Timer {
	return prometheus.NewTimer(m.remoteDuration.WithLabelValues(provider))
}

func (m *Metrics) RequestObserved(method, route string, status int) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func FmtFixer(in string) string {
	return strings.NewReplacer(".", "_", "-", "_").Replace(in)
}
