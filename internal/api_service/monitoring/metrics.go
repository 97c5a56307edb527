// Package monitoring exposes provider and cache activity as Prometheus metrics.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"time"
)

type Metrics struct {
	providerRequests *prometheus.CounterVec
	providerDuration prometheus.Histogram
	cacheLookups     *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fx_provider_requests_total",
			Help: "Requests sent to the rate provider by result.",
		}, []string{"result"}),
		providerDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fx_provider_request_duration_seconds",
			Help:    "Latency of rate provider requests.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fx_cache_lookups_total",
			Help: "Rate table cache lookups by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.providerRequests, m.providerDuration, m.cacheLookups)

	return m
}

func (m *Metrics) ObserveProviderRequest(result string, elapsed time.Duration) {
	m.providerRequests.WithLabelValues(result).Inc()
	m.providerDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveCacheLookup(result string) {
	m.cacheLookups.WithLabelValues(result).Inc()
}
