// Package metrics provides Prometheus instrumentation for the storefront.
//
// Nothing is served over HTTP. The CLI renders the registry as text:
//
//	logimart metrics
//
// which calls Dump after the command's own work is done.
package metrics

import (
	"io"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// ─────────────────────────────────────────────
// Built-in store and cart metrics
// ─────────────────────────────────────────────

var (
	// StoreOperations counts store calls by driver, operation and result.
	StoreOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logimart",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of store operations.",
		},
		[]string{"driver", "op", "result"}, // result: "ok" | "miss" | "error"
	)

	// StoreDuration tracks store latency per driver and operation.
	StoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "logimart",
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Duration of store operations in seconds.",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .5, 1},
		},
		[]string{"driver", "op"},
	)

	// CartDispatches counts reducer actions applied through the cart provider.
	CartDispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logimart",
			Subsystem: "cart",
			Name:      "dispatches_total",
			Help:      "Total cart actions dispatched.",
		},
		[]string{"action"},
	)

	// OrdersPlaced counts successful checkouts by payment method.
	OrdersPlaced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logimart",
			Subsystem: "orders",
			Name:      "placed_total",
			Help:      "Total orders placed.",
		},
		[]string{"payment_method"},
	)
)

// ─────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────

// DefaultRegistry is the Prometheus registry used by the storefront.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(
		StoreOperations,
		StoreDuration,
		CartDispatches,
		OrdersPlaced,
	)
}

// Register lets you add your own prometheus.Collector to the registry.
func Register(c prometheus.Collector) error {
	return DefaultRegistry.Register(c)
}

// MustRegister panics if registration fails.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

// ─────────────────────────────────────────────
// Exposition
// ─────────────────────────────────────────────

// Dump writes the metric families of g whose name starts with prefix in
// the Prometheus text format. A nil g means DefaultRegistry.
func Dump(w io.Writer, g prometheus.Gatherer, prefix string) error {
	if g == nil {
		g = DefaultRegistry
	}
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range withPrefix(families, prefix) {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func withPrefix(families []*dto.MetricFamily, prefix string) []*dto.MetricFamily {
	if prefix == "" {
		return families
	}
	out := families[:0]
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), prefix) {
			out = append(out, mf)
		}
	}
	return out
}

// ─────────────────────────────────────────────
// Helpers for app code
// ─────────────────────────────────────────────

// ObserveStore records one store call:
//
//	defer func(start time.Time) { metrics.ObserveStore("redis", "get", result, start) }(time.Now())
func ObserveStore(driver, op, result string, start time.Time) {
	StoreOperations.WithLabelValues(driver, op, result).Inc()
	StoreDuration.WithLabelValues(driver, op).Observe(time.Since(start).Seconds())
}
