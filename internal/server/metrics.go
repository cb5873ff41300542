// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus metrics on a private registry. It
// doubles as the cache.Observer for the loader's caches.
type Metrics struct {
	registry *prometheus.Registry

	CacheHits       *prometheus.CounterVec
	CacheMisses     *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with the given namespace.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Response cache lookups answered from memory, by cache",
		}, []string{"cache"}),
		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Response cache lookups that went upstream, by cache",
		}, []string{"cache"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route and status code",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "code"}),
	}
}

// Hit implements cache.Observer.
func (m *Metrics) Hit(name string) {
	m.CacheHits.WithLabelValues(name).Inc()
}

// Miss implements cache.Observer.
func (m *Metrics) Miss(name string) {
	m.CacheMisses.WithLabelValues(name).Inc()
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route string, code int, d time.Duration) {
	m.RequestDuration.WithLabelValues(route, strconv.Itoa(code)).Observe(d.Seconds())
}

// WatchCacheSizes exports the entry count of every cache, read at scrape
// time from sizes.
func (m *Metrics) WatchCacheSizes(namespace string, sizes func() map[string]int) {
	m.registry.MustRegister(&cacheSizeCollector{
		sizes: sizes,
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "cache_entries"),
			"Entries held by each response cache",
			[]string{"cache"}, nil,
		),
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type cacheSizeCollector struct {
	sizes func() map[string]int
	desc  *prometheus.Desc
}

func (c *cacheSizeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *cacheSizeCollector) Collect(ch chan<- prometheus.Metric) {
	for name, n := range c.sizes() {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(n), name)
	}
}
