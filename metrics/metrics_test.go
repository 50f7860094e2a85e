// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	prometheusModels "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	provider := NewPrometheusProvider()

	t.Run("Should store metrics for API request durations", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		labels := prometheus.Labels{"system": "gitea", "handler": "handler", "method": "POST", "status_code": "201"}
		data, err := provider.apiRequests.GetMetricWith(labels)
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Histogram).Write(m))
		require.Equal(t, uint64(0), m.Histogram.GetSampleCount())
		require.Equal(t, 0.0, m.Histogram.GetSampleSum())
		provider.ObserveAPIRequestDuration("gitea", "POST", "handler", "201", 1)
		data, err = provider.apiRequests.GetMetricWith(labels)
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Histogram).Write(m))
		require.Equal(t, uint64(1), m.Histogram.GetSampleCount())
		require.InDelta(t, 1, m.Histogram.GetSampleSum(), 0.001)
	})

	t.Run("Should store metrics for cache hits and misses", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		data, err := provider.cacheHits.GetMetricWithLabelValues("redmine", "GET", "test")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(0), m.Counter.GetValue())
		provider.IncreaseCacheHits("redmine", "GET", "test")
		data, err = provider.cacheHits.GetMetricWithLabelValues("redmine", "GET", "test")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(1), m.Counter.GetValue())

		provider.IncreaseCacheMisses("redmine", "GET", "test")
		data, err = provider.cacheMisses.GetMetricWithLabelValues("redmine", "GET", "test")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(1), m.Counter.GetValue())
	})

	t.Run("Should count migration progress", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		provider.IncreaseIssuesMigrated()
		provider.IncreaseIssuesMigrated()
		require.NoError(t, provider.issuesMigrated.Write(m))
		require.Equal(t, float64(2), m.Counter.GetValue())

		provider.IncreaseIssuesSkipped()
		require.NoError(t, provider.issuesSkipped.Write(m))
		require.Equal(t, float64(1), m.Counter.GetValue())

		provider.IncreaseCommentsPosted()
		require.NoError(t, provider.commentsPosted.Write(m))
		require.Equal(t, float64(1), m.Counter.GetValue())
	})

	t.Run("Should count reconciliation and reference outcomes", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		provider.IncreaseReconcileRetries()
		require.NoError(t, provider.reconcileRetries.Write(m))
		require.Equal(t, float64(1), m.Counter.GetValue())

		provider.IncreaseReferencesRewritten()
		require.NoError(t, provider.referencesRewritten.Write(m))
		require.Equal(t, float64(1), m.Counter.GetValue())

		provider.IncreaseReferencesUnresolved()
		require.NoError(t, provider.referencesUnresolved.Write(m))
		require.Equal(t, float64(1), m.Counter.GetValue())
	})
}
