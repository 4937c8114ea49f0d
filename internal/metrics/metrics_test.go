// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package metrics

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/tomtom215/nosubvod/internal/apperr"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/vod/{vodId}/master.m3u8", "200"))

	RecordAPIRequest("GET", "/api/vod/{vodId}/master.m3u8", "200", 25*time.Millisecond)
	RecordAPIRequest("GET", "/api/vod/{vodId}/master.m3u8", "200", 30*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/vod/{vodId}/master.m3u8", "200"))
	if after-before != 2 {
		t.Errorf("api_requests_total delta = %v, want 2", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	start := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests) - start; got != 2 {
		t.Errorf("active requests delta = %v, want 2", got)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != start {
		t.Errorf("active requests = %v, want %v", got, start)
	}
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "none"},
		{"validation", apperr.Validation("Invalid VOD identifier"), "validation"},
		{"not found", apperr.NotFound("Video not found"), "not_found"},
		{"upstream", apperr.Upstream("Upstream HTTP 502"), "upstream"},
		{"wrapped upstream", fmt.Errorf("relay: %w", apperr.Upstream("Upstream HTTP 503")), "upstream"},
		{"plain", errors.New("boom"), "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorType(tt.err); got != tt.want {
				t.Errorf("ErrorType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecordManifest(t *testing.T) {
	okBefore := testutil.ToFloat64(ManifestsGenerated.WithLabelValues("variant"))
	errBefore := testutil.ToFloat64(ManifestErrors.WithLabelValues("variant", "upstream"))

	RecordManifest("variant", nil)
	RecordManifest("variant", apperr.Upstream("Upstream HTTP 500"))

	if got := testutil.ToFloat64(ManifestsGenerated.WithLabelValues("variant")) - okBefore; got != 1 {
		t.Errorf("manifests_generated delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ManifestErrors.WithLabelValues("variant", "upstream")) - errBefore; got != 1 {
		t.Errorf("manifest_errors delta = %v, want 1", got)
	}
}

func TestRecordUpstreamAndStore(t *testing.T) {
	errBefore := testutil.ToFloat64(UpstreamErrors.WithLabelValues("gql", "upstream"))

	RecordUpstream("gql", 120*time.Millisecond, nil)
	RecordUpstream("gql", 3*time.Second, apperr.Upstream("Twitch API HTTP 500"))
	RecordStoreOperation("put", "history", time.Millisecond, nil)
	RecordStoreOperation("get", "subs", time.Millisecond, errors.New("closed"))

	if got := testutil.ToFloat64(UpstreamErrors.WithLabelValues("gql", "upstream")) - errBefore; got != 1 {
		t.Errorf("upstream_errors delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(StoreErrors.WithLabelValues("get", "subs")); got < 1 {
		t.Errorf("store_errors = %v, want >= 1", got)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			RecordAPIRequest("GET", "/api/live", "200", time.Millisecond)
			CacheHits.WithLabelValues("catalog").Inc()
			if i%2 == 0 {
				RecordUpstream("cdn", time.Millisecond, nil)
			}
		}(i)
	}
	wg.Wait()
}

// findFamily returns the gathered family with the given name, or nil.
func findFamily(families []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}

func TestMetricGathering(t *testing.T) {
	CacheHits.WithLabelValues("variant_proxy").Inc()
	ProxyRegistrations.Inc()

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	hits := findFamily(families, "cache_hits_total")
	if hits == nil {
		t.Fatal("cache_hits_total not gathered")
	}
	if hits.GetType() != dto.MetricType_COUNTER {
		t.Errorf("cache_hits_total type = %v, want COUNTER", hits.GetType())
	}
	found := false
	for _, m := range hits.GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == "cache_type" && lp.GetValue() == "variant_proxy" {
				found = true
			}
		}
	}
	if !found {
		t.Error("cache_hits_total has no variant_proxy series")
	}

	if findFamily(families, "variant_proxy_registrations_total") == nil {
		t.Error("variant_proxy_registrations_total not gathered")
	}

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		UpstreamRequestDuration,
		UpstreamErrors,
		CacheHits,
		CacheMisses,
		CacheSize,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerConsecutiveFailures,
		CircuitBreakerTransitions,
		ProxyRegistrations,
		ProxyRejections,
		ManifestsGenerated,
		ManifestErrors,
		VODQualitiesProbed,
		RecommendDuration,
		RecommendCandidates,
		RecommendSourceErrors,
		StoreOperationDuration,
		StoreErrors,
		StoreGCRuns,
		AppInfo,
		AppUptime,
	}

	for _, c := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		c.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("Metric has no descriptors")
		}
	}
}

func BenchmarkRecordAPIRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordAPIRequest("GET", "/api/live", "200", 25*time.Millisecond)
	}
}

func BenchmarkTrackActiveRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		TrackActiveRequest(true)
		TrackActiveRequest(false)
	}
}
