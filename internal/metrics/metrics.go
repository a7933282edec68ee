// Package metrics holds Prometheus instruments shared across the service.
// All collectors are registered with the global registry, so importing this
// package in cmd/web is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SubmissionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "formgate_submissions_total",
			Help: "Cumulative number of submissions persisted.",
		})

	ValidationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "formgate_validation_failures_total",
			Help: "Cumulative number of submissions rejected by validation.",
		})

	StoreErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "formgate_store_errors_total",
			Help: "Cumulative number of backing-store operation failures.",
		})
)

func init() {
	prometheus.MustRegister(
		SubmissionsTotal,
		ValidationFailuresTotal,
		StoreErrorsTotal,
	)
}
