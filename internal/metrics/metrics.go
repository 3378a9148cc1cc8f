// Package metrics exposes Prometheus instrumentation for the booking core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SearchesTotal   prometheus.Counter
	EmptySearches   prometheus.Counter
	BookingsCreated prometheus.Counter
	BookingsDeleted prometheus.Counter
	PaymentFailures prometheus.Counter
	TicketsIssued   prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}
	return &Metrics{
		SearchesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "flight_searches_total",
			Help:        "Number of flight searches executed.",
			ConstLabels: labels,
		}),
		EmptySearches: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "flight_searches_empty_total",
			Help:        "Number of flight searches that matched no offers.",
			ConstLabels: labels,
		}),
		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Number of bookings created.",
			ConstLabels: labels,
		}),
		BookingsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_deleted_total",
			Help:        "Number of bookings deleted.",
			ConstLabels: labels,
		}),
		PaymentFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "payment_failures_total",
			Help:        "Number of rejected payment submissions.",
			ConstLabels: labels,
		}),
		TicketsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "tickets_issued_total",
			Help:        "Number of e-tickets generated.",
			ConstLabels: labels,
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by method and path.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}
