package obs

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// TransformMetrics groups the collectors describing cart transform runs.
type TransformMetrics struct {
	// Runs counts transform invocations by the surface that triggered them.
	Runs *prometheus.CounterVec
	// Lines counts scanned cart lines by outcome (adjusted, skipped, malformed).
	Lines *prometheus.CounterVec
	// Discount records the emitted percentage decreases.
	Discount prometheus.Histogram
}

// NewTransformMetrics registers and returns the transform collectors. Collectors that are
// already registered on reg are reused so repeated construction is safe.
func NewTransformMetrics(namespace string, reg prometheus.Registerer) *TransformMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &TransformMetrics{
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_transform_runs_total",
			Help:      "Count of cart transform runs by invoking surface.",
		}, []string{"surface"}),
		Lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_transform_lines_total",
			Help:      "Count of scanned cart lines by outcome.",
		}, []string{"outcome"}),
		Discount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cart_transform_discount_percent",
			Help:      "Distribution of emitted percentage decreases.",
			Buckets:   []float64{0, 5, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),
	}
	mustRegisterCollector(reg, m.Runs, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.Runs = v
		}
	})
	mustRegisterCollector(reg, m.Lines, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.Lines = v
		}
	})
	mustRegisterCollector(reg, m.Discount, func(existing prometheus.Collector) {
		if v, ok := existing.(prometheus.Histogram); ok {
			m.Discount = v
		}
	})
	return m
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}

// BreakerMetrics describes circuit breakers guarding remote dependencies.
type BreakerMetrics struct {
	State       *prometheus.GaugeVec
	Transitions *prometheus.CounterVec
	Opened      *prometheus.CounterVec
}

// NewBreakerMetrics registers and returns the breaker collectors.
func NewBreakerMetrics(namespace string, reg prometheus.Registerer) *BreakerMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &BreakerMetrics{
		State: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "breaker_state",
			Help:      "Current breaker state: 0=closed,1=open,2=half-open.",
		}, []string{"target"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "breaker_transition_total",
			Help:      "Count of breaker state transitions.",
		}, []string{"target", "from", "to"}),
		Opened: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "breaker_open_total",
			Help:      "Number of times a breaker opened.",
		}, []string{"target"}),
	}
	mustRegisterCollector(reg, m.State, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.GaugeVec); ok {
			m.State = v
		}
	})
	mustRegisterCollector(reg, m.Transitions, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.Transitions = v
		}
	})
	mustRegisterCollector(reg, m.Opened, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.Opened = v
		}
	})
	return m
}
