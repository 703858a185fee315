package app

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"lp-rebalance-calc/internal/config"
	"lp-rebalance-calc/internal/estimate"

	"go.uber.org/zap"
)

func testConfig(metricsEnabled bool) *config.Config {
	cfg := config.Default()
	cfg.Metrics.Enabled = &metricsEnabled
	cfg.Server.ShutdownTimeout = time.Second
	return cfg
}

func startApp(t *testing.T, cfg *config.Config) (string, context.CancelFunc, <-chan error) {
	t.Helper()
	application, err := New(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Serve(ctx, ln) }()
	return "http://" + ln.Addr().String(), cancel, done
}

func TestNewRequiresConfig(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestEstimatorUsesConfiguredFloor(t *testing.T) {
	cfg := testConfig(false)
	application, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	_, err = application.Estimator().Estimate(estimate.Request{TotalValueUSD: 50, MinPrice: 1, MaxPrice: 2})
	if !errors.Is(err, estimate.ErrBelowMinimumValue) {
		t.Fatalf("expected floor rejection, got %v", err)
	}
}

func TestServeAndShutdown(t *testing.T) {
	baseURL, cancel, done := startApp(t, testConfig(true))

	body := `{"total_value_usd":1000,"min_price":0.0394,"max_price":0.0438}`
	resp, err := http.Post(baseURL+"/v1/estimate", "application/json", strings.NewReader(body))
	if err != nil {
		cancel()
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		cancel()
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp, err = http.Get(baseURL + "/metrics")
	if err != nil {
		cancel()
		t.Fatalf("get metrics: %v", err)
	}
	exposition, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(exposition), "lp_rebalance_calc_estimates_total 1") {
		cancel()
		t.Fatalf("expected estimate counted, got:\n%s", exposition)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("server did not stop")
	}
}

func TestMetricsDisabledNotMounted(t *testing.T) {
	baseURL, cancel, done := startApp(t, testConfig(false))
	defer func() {
		cancel()
		<-done
	}()

	resp, err := http.Get(baseURL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 with metrics disabled, got %d", resp.StatusCode)
	}
}
