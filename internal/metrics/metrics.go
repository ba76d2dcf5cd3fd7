package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// UpstreamMetrics records calls made to the Shopify Admin API
type UpstreamMetrics interface {
	ObserveCall(operation, outcome string, duration time.Duration)
}

// RegistrationMetrics records registration pipeline outcomes
type RegistrationMetrics interface {
	IncRegistration(result string)
	IncWarrantyEntry(result string)
	IncLookup(result string)
}

// Metrics implements both interfaces on one registry
type Metrics struct {
	upstreamCalls    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	registrations    *prometheus.CounterVec
	warrantyEntries  *prometheus.CounterVec
	lookups          *prometheus.CounterVec
}

// New registers the collectors on registry
func New(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		upstreamCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopify_graphql_calls_total",
				Help: "The total number of Shopify GraphQL Admin API calls",
			},
			[]string{"operation", "outcome"},
		),
		upstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shopify_graphql_call_duration_seconds",
				Help:    "Shopify GraphQL Admin API call latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		registrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clubdvigi_registrations_total",
				Help: "The total number of registrations by result",
			},
			[]string{"result"},
		),
		warrantyEntries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clubdvigi_warranty_entries_total",
				Help: "Warranty entries by admission result",
			},
			[]string{"result"},
		),
		lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clubdvigi_lookups_total",
				Help: "Customer lookups by result",
			},
			[]string{"result"},
		),
	}
}

// ObserveCall counts an upstream call and records its latency
func (m *Metrics) ObserveCall(operation, outcome string, duration time.Duration) {
	m.upstreamCalls.WithLabelValues(operation, outcome).Inc()
	m.upstreamDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// IncRegistration counts a finished registration
func (m *Metrics) IncRegistration(result string) {
	m.registrations.WithLabelValues(result).Inc()
}

// IncWarrantyEntry counts a warranty admission decision
func (m *Metrics) IncWarrantyEntry(result string) {
	m.warrantyEntries.WithLabelValues(result).Inc()
}

// IncLookup counts a finished lookup
func (m *Metrics) IncLookup(result string) {
	m.lookups.WithLabelValues(result).Inc()
}

// Noop discards everything
type Noop struct{}

func (Noop) ObserveCall(string, string, time.Duration) {}
func (Noop) IncRegistration(string)                    {}
func (Noop) IncWarrantyEntry(string)                   {}
func (Noop) IncLookup(string)                          {}
