// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricsNamespace   = "redmig"
	apiNamespace       = "api"
	migrationNamespace = "migration"

	defaultPrometheusTimeoutSeconds = 60
)

// Provider is the metrics surface the migration engine reports into.
type Provider interface {
	ObserveAPIRequestDuration(system, method, handler, statusCode string, elapsed float64)
	IncreaseCacheHits(system, method, handler string)
	IncreaseCacheMisses(system, method, handler string)

	IncreaseIssuesMigrated()
	IncreaseIssuesSkipped()
	IncreaseCommentsPosted()
	IncreaseReconcileRetries()
	IncreaseReferencesRewritten()
	IncreaseReferencesUnresolved()
}

type PrometheusProvider struct {
	Registry *prometheus.Registry

	apiRequests *prometheus.HistogramVec
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec

	issuesMigrated       prometheus.Counter
	issuesSkipped        prometheus.Counter
	commentsPosted       prometheus.Counter
	reconcileRetries     prometheus.Counter
	referencesRewritten  prometheus.Counter
	referencesUnresolved prometheus.Counter
}

func NewPrometheusProvider() *PrometheusProvider {
	provider := &PrometheusProvider{}
	provider.Registry = prometheus.NewRegistry()
	options := prometheus.ProcessCollectorOpts{
		Namespace: metricsNamespace,
	}
	provider.Registry.MustRegister(prometheus.NewProcessCollector(options))
	provider.Registry.MustRegister(prometheus.NewGoCollector())

	provider.apiRequests = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: apiNamespace,
			Name:      "requests",
			Help:      "Duration of the performed tracker API requests.",
		},
		[]string{"system", "method", "handler", "status_code"},
	)
	provider.Registry.MustRegister(provider.apiRequests)

	provider.cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: apiNamespace,
			Name:      "cache_hits",
			Help:      "Number of cache hits for requested method and handler.",
		},
		[]string{"system", "method", "handler"},
	)
	provider.Registry.MustRegister(provider.cacheHits)

	provider.cacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: apiNamespace,
			Name:      "cache_miss",
			Help:      "Number of cache misses for requested method and handler.",
		},
		[]string{"system", "method", "handler"},
	)
	provider.Registry.MustRegister(provider.cacheMisses)

	provider.issuesMigrated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: migrationNamespace,
		Name:      "issues_migrated",
		Help:      "Number of issues created on the target tracker.",
	})
	provider.Registry.MustRegister(provider.issuesMigrated)

	provider.issuesSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: migrationNamespace,
		Name:      "issues_skipped",
		Help:      "Number of source issues skipped (private or already migrated).",
	})
	provider.Registry.MustRegister(provider.issuesSkipped)

	provider.commentsPosted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: migrationNamespace,
		Name:      "comments_posted",
		Help:      "Number of journal entries posted as comments.",
	})
	provider.Registry.MustRegister(provider.commentsPosted)

	provider.reconcileRetries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: migrationNamespace,
		Name:      "reconcile_retries",
		Help:      "Number of label reconciliation retries.",
	})
	provider.Registry.MustRegister(provider.reconcileRetries)

	provider.referencesRewritten = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: migrationNamespace,
		Name:      "references_rewritten",
		Help:      "Number of deferred cross-references rewritten in phase two.",
	})
	provider.Registry.MustRegister(provider.referencesRewritten)

	provider.referencesUnresolved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: migrationNamespace,
		Name:      "references_unresolved",
		Help:      "Number of cross-reference tokens that could not be resolved.",
	})
	provider.Registry.MustRegister(provider.referencesUnresolved)

	return provider
}

func (p *PrometheusProvider) ObserveAPIRequestDuration(system, method, handler, statusCode string, elapsed float64) {
	p.apiRequests.With(
		prometheus.Labels{"system": system, "method": method, "handler": handler, "status_code": statusCode},
	).Observe(elapsed)
}

func (p *PrometheusProvider) IncreaseCacheHits(system, method, handler string) {
	p.cacheHits.WithLabelValues(system, method, handler).Add(1)
}

func (p *PrometheusProvider) IncreaseCacheMisses(system, method, handler string) {
	p.cacheMisses.WithLabelValues(system, method, handler).Add(1)
}

func (p *PrometheusProvider) IncreaseIssuesMigrated() {
	p.issuesMigrated.Add(1)
}

func (p *PrometheusProvider) IncreaseIssuesSkipped() {
	p.issuesSkipped.Add(1)
}

func (p *PrometheusProvider) IncreaseCommentsPosted() {
	p.commentsPosted.Add(1)
}

func (p *PrometheusProvider) IncreaseReconcileRetries() {
	p.reconcileRetries.Add(1)
}

func (p *PrometheusProvider) IncreaseReferencesRewritten() {
	p.referencesRewritten.Add(1)
}

func (p *PrometheusProvider) IncreaseReferencesUnresolved() {
	p.referencesUnresolved.Add(1)
}

func (p *PrometheusProvider) Handler() Handler {
	handler := promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{
		Timeout:           time.Duration(defaultPrometheusTimeoutSeconds) * time.Second,
		EnableOpenMetrics: true,
	})
	return Handler{
		Path:        "/metrics",
		Description: "Prometheus Metrics",
		Handler:     handler,
	}
}
