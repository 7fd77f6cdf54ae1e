// Package metrics holds the prometheus collectors exported on /metrics
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/chemalert/chemalert/internal/catalog"
)

const namespace = "chemalert"

// Registry carries every collector of the process
type Registry struct {
	reg *prometheus.Registry

	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	SearchQueries prometheus.Counter
	SearchEmpty   prometheus.Counter

	CatalogProducts   *prometheus.GaugeVec
	CatalogChemicals  prometheus.Gauge
	CatalogBrands     prometheus.Gauge
	ProcessCPUPercent prometheus.Gauge
	ProcessMemoryMB   prometheus.Gauge
	SystemCPUPercent  prometheus.Gauge
	SystemMemoryMB    prometheus.Gauge
}

// NewRegistry builds a fresh registry with Go and process collectors attached
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		SearchQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "search", Name: "queries_total",
			Help: "Search queries served.",
		}),
		SearchEmpty: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "search", Name: "no_results_total",
			Help: "Search queries that matched nothing.",
		}),
		CatalogProducts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "catalog", Name: "products",
			Help: "Catalog products by category and risk level.",
		}, []string{"category", "risk"}),
		CatalogChemicals: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "catalog", Name: "distinct_chemicals",
			Help: "Distinct chemical names listed across the catalog.",
		}),
		CatalogBrands: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "catalog", Name: "distinct_brands",
			Help: "Distinct brands across the catalog.",
		}),
		ProcessCPUPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "process", Name: "cpu_percent",
			Help: "Process CPU usage sampled by the monitor job.",
		}),
		ProcessMemoryMB: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "process", Name: "rss_megabytes",
			Help: "Process resident memory sampled by the monitor job.",
		}),
		SystemCPUPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "system", Name: "cpu_percent",
			Help: "Host CPU usage sampled by the monitor job.",
		}),
		SystemMemoryMB: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "system", Name: "memory_used_megabytes",
			Help: "Host memory in use sampled by the monitor job.",
		}),
	}
	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.HTTPRequests, r.HTTPDuration, r.SearchQueries, r.SearchEmpty,
		r.CatalogProducts, r.CatalogChemicals, r.CatalogBrands,
		r.ProcessCPUPercent, r.ProcessMemoryMB, r.SystemCPUPercent, r.SystemMemoryMB,
	)
	return r
}

// Gatherer exposes the registry to the HTTP handler and tests
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// ObserveCatalog publishes the catalog gauges. The catalog never changes, so
// this runs once after loading.
func (r *Registry) ObserveCatalog(c *catalog.Catalog) {
	all := c.ListAll()
	counts := make(map[[2]string]int)
	for _, p := range all {
		counts[[2]string{string(p.Category), string(p.RiskLevel)}]++
	}
	for k, n := range counts {
		r.CatalogProducts.WithLabelValues(k[0], k[1]).Set(float64(n))
	}
	r.CatalogChemicals.Set(float64(len(catalog.DistinctChemicals(all))))
	r.CatalogBrands.Set(float64(len(catalog.DistinctBrands(all))))
}
