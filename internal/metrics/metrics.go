// Package metrics exposes panel evaluations as Prometheus metrics.
//
// This package is internal to emojistatus. Each board owns one
// [Collector] registered on its own registry, so a board can be rebuilt
// (e.g. on configuration reload) without duplicate registration.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "emojistatus"

// Collector holds the board's Prometheus metrics.
type Collector struct {
	// Evaluations counts field evaluations by resulting level.
	Evaluations *prometheus.CounterVec

	// FieldLevel is the level rank of each field (4 = excellent, 0 = critical).
	FieldLevel *prometheus.GaugeVec

	// FieldValue is the latest sample of each field.
	FieldValue *prometheus.GaugeVec

	// RefreshErrors counts failed source reads.
	RefreshErrors *prometheus.CounterVec

	// RefreshDuration observes load + evaluate time per panel.
	RefreshDuration *prometheus.HistogramVec
}

// New creates a [Collector] and registers it with reg.
//
// Registering twice on the same registerer panics, as with promauto.
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		Evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "evaluations_total",
				Help:      "Total number of field evaluations, by resulting level",
			},
			[]string{"panel", "level"},
		),
		FieldLevel: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "field_level",
				Help:      "Current level rank of a field (4 excellent ... 0 critical)",
			},
			[]string{"panel", "field"},
		),
		FieldValue: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "field_value",
				Help:      "Latest sample of a field",
			},
			[]string{"panel", "field"},
		),
		RefreshErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "refresh_errors_total",
				Help:      "Total number of failed panel refreshes",
			},
			[]string{"panel"},
		),
		RefreshDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "refresh_duration_seconds",
				Help:      "Time spent loading and evaluating a panel",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"panel"},
		),
	}
}

// ObserveRefresh records one refresh of panel. A non-nil err counts as a
// failed refresh.
func (c *Collector) ObserveRefresh(panel string, d time.Duration, err error) {
	c.RefreshDuration.WithLabelValues(panel).Observe(d.Seconds())
	if err != nil {
		c.RefreshErrors.WithLabelValues(panel).Inc()
	}
}

// ObserveField records the evaluation of one field. The value gauge is only
// set when the field has a value.
func (c *Collector) ObserveField(panel, field, level string, rank int, value float64, hasValue bool) {
	c.Evaluations.WithLabelValues(panel, level).Inc()
	c.FieldLevel.WithLabelValues(panel, field).Set(float64(rank))
	if hasValue {
		c.FieldValue.WithLabelValues(panel, field).Set(value)
	}
}

// ForgetFields drops the level and value gauges of every field of panel,
// so a panel that cannot be read exports no stale readings.
func (c *Collector) ForgetFields(panel string) {
	c.FieldLevel.DeletePartialMatch(prometheus.Labels{"panel": panel})
	c.FieldValue.DeletePartialMatch(prometheus.Labels{"panel": panel})
}

// Unregister removes the collector's metrics from reg.
func (c *Collector) Unregister(reg prometheus.Registerer) {
	reg.Unregister(c.Evaluations)
	reg.Unregister(c.FieldLevel)
	reg.Unregister(c.FieldValue)
	reg.Unregister(c.RefreshErrors)
	reg.Unregister(c.RefreshDuration)
}
