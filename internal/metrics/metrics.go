// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CatalogLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adnow_catalog_loads_total",
			Help: "Total number of catalog load attempts by result",
		},
		[]string{"result"},
	)

	FilterPasses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adnow_filter_passes_total",
			Help: "Total number of filter-sort recomputations by binder",
		},
		[]string{"binder"},
	)

	PersistenceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adnow_persistence_errors_total",
			Help: "Total number of absorbed persistence failures by operation",
		},
		[]string{"op"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adnow_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)
)

// Result labels.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)
