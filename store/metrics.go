package store

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// storeMetrics holds Prometheus metrics for the memory store.
type storeMetrics struct {
	triples   prometheus.Gauge
	asserted  prometheus.Counter
	retracted prometheus.Counter
}

// newStoreMetrics creates and registers store metrics.
func newStoreMetrics(reg prometheus.Registerer) *storeMetrics {
	// nil registerer = no metrics
	if reg == nil {
		return nil
	}

	return &storeMetrics{
		triples: register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sosagraph",
			Subsystem: "store",
			Name:      "triples",
			Help:      "Current number of triples in the store",
		})),
		asserted: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sosagraph",
			Subsystem: "store",
			Name:      "asserted_total",
			Help:      "Total triples added to the store",
		})),
		retracted: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sosagraph",
			Subsystem: "store",
			Name:      "retracted_total",
			Help:      "Total triples removed from the store",
		})),
	}
}

// register registers c, reusing an identical collector that is already registered.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
	}
	return c
}

func (m *storeMetrics) recordAssert(added, total int) {
	if m == nil {
		return
	}
	m.asserted.Add(float64(added))
	m.triples.Set(float64(total))
}

func (m *storeMetrics) recordRetract(removed, total int) {
	if m == nil {
		return
	}
	m.retracted.Add(float64(removed))
	m.triples.Set(float64(total))
}

func (m *storeMetrics) recordReset() {
	if m == nil {
		return
	}
	m.triples.Set(0)
}
