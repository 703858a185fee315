package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusCounters(t *testing.T) {
	prom := NewPrometheus()
	prom.Metrics.Estimates.Inc()
	prom.Metrics.Estimates.Inc()
	prom.Metrics.Rejected.Inc()
	prom.Metrics.RequestsFailed.Inc()

	assertCounter(t, prom.estimates, 2)
	assertCounter(t, prom.rejected, 1)
	assertCounter(t, prom.requestsFailed, 1)
}

func TestPrometheusHandlerExposesNamespace(t *testing.T) {
	prom := NewPrometheus()
	prom.Metrics.Estimates.Inc()

	rec := httptest.NewRecorder()
	prom.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "lp_rebalance_calc_estimates_total 1") {
		t.Fatalf("expected estimates counter in exposition, got:\n%s", body)
	}
}

func TestNoopCounters(t *testing.T) {
	m := NewNoop()
	m.Estimates.Inc()
	m.Rejected.Inc()
	m.RequestsFailed.Inc()
}

func assertCounter(t *testing.T, counter prometheus.Counter, expected float64) {
	t.Helper()
	if got := testutil.ToFloat64(counter); got != expected {
		t.Fatalf("expected %v, got %v", expected, got)
	}
}
