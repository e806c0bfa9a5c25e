package product

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	productsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_products_created_total",
		Help: "Products successfully created on the marketplace.",
	})

	upstreamFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_upstream_failures_total",
		Help: "Marketplace calls that failed or returned an incomplete result.",
	})
)
