// Package metrics provides Prometheus instrumentation for content negotiation.
package metrics

import (
	"braces.dev/errtrace"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ghettovoice/conneg/internal/errorutil"
)

// DefaultNamespace is used when New is called with an empty namespace.
const DefaultNamespace = "conneg"

// Negotiation kinds, one per Accept-* header.
const (
	KindMediaType = "media_type"
	KindCharset   = "charset"
	KindEncoding  = "encoding"
	KindLanguage  = "language"
)

// Negotiation outcomes.
const (
	OutcomeSelected      = "selected"
	OutcomeNotAcceptable = "not_acceptable"
)

// Metrics holds the negotiation counters and histograms.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Negotiations counts finished negotiations by kind and outcome.
	Negotiations *prometheus.CounterVec
	// HeaderEntries observes the number of parsed preference entries by kind.
	HeaderEntries *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("nil registerer"))
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	m := &Metrics{
		Negotiations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "negotiations_total",
				Help:      "Total number of content negotiations",
			},
			[]string{"kind", "outcome"},
		),
		HeaderEntries: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "header_entries",
				Help:      "Number of preference entries in parsed Accept-* headers",
				Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
			},
			[]string{"kind"},
		),
	}
	cs := []prometheus.Collector{m.Negotiations, m.HeaderEntries}
	for i, c := range cs {
		if err := reg.Register(c); err != nil {
			for _, rc := range cs[:i] {
				reg.Unregister(rc)
			}
			return nil, errtrace.Wrap(err)
		}
	}
	return m, nil
}

// ObserveNegotiation records a negotiation result of the given kind.
func (m *Metrics) ObserveNegotiation(kind string, selected bool) {
	if m == nil {
		return
	}
	outcome := OutcomeSelected
	if !selected {
		outcome = OutcomeNotAcceptable
	}
	m.Negotiations.WithLabelValues(kind, outcome).Inc()
}

// ObserveHeader records the number of entries parsed from a header of the given kind.
func (m *Metrics) ObserveHeader(kind string, entries int) {
	if m == nil {
		return
	}
	m.HeaderEntries.WithLabelValues(kind).Observe(float64(entries))
}
