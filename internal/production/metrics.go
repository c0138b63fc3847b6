package production

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for model activity, labelled by
// class name.
type Metrics struct {
	Constructed *prometheus.CounterVec
	Changes     *prometheus.CounterVec
	ChangedKeys *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg skips registration, which suits tests.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Constructed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "micromodel",
				Subsystem: "model",
				Name:      "constructed_total",
				Help:      "Total number of model instances constructed",
			},
			[]string{"class"},
		),
		Changes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "micromodel",
				Subsystem: "model",
				Name:      "changes_total",
				Help:      "Total number of change events emitted",
			},
			[]string{"class"},
		),
		ChangedKeys: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "micromodel",
				Subsystem: "model",
				Name:      "changed_attributes",
				Help:      "Number of attributes changed per effective set",
				Buckets:   []float64{1, 2, 4, 8, 16, 32},
			},
			[]string{"class"},
		),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Constructed, m.Changes, m.ChangedKeys} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveConstruct records one constructed instance of class.
func (m *Metrics) ObserveConstruct(class string) {
	m.Constructed.WithLabelValues(class).Inc()
}

// ObserveChange records one change event that touched n attributes.
func (m *Metrics) ObserveChange(class string, n int) {
	m.Changes.WithLabelValues(class).Inc()
	m.ChangedKeys.WithLabelValues(class).Observe(float64(n))
}
