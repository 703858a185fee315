package app

import (
	"context"
	"errors"
	"net"
	"net/http"

	"lp-rebalance-calc/internal/api"
	"lp-rebalance-calc/internal/config"
	"lp-rebalance-calc/internal/estimate"
	"lp-rebalance-calc/internal/metrics"

	"go.uber.org/zap"
)

type App struct {
	cfg       *config.Config
	log       *zap.Logger
	metrics   *metrics.Metrics
	estimator *estimate.Estimator
	server    *http.Server
}

func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	m := metrics.NewNoop()
	var metricsHandler http.Handler
	if cfg.Metrics.EnabledValue() {
		prom := metrics.NewPrometheus()
		m = prom.Metrics
		metricsHandler = prom.Handler()
	}
	est := estimate.New(cfg.Calculator.MinTotalValue(), m, log)
	apiServer := api.New(est, m, log, cfg.Metrics.Path, metricsHandler)
	return &App{
		cfg:       cfg,
		log:       log,
		metrics:   m,
		estimator: est,
		server: &http.Server{
			Addr:         cfg.Server.Address,
			Handler:      apiServer.Handler(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}, nil
}

func (a *App) Estimator() *estimate.Estimator {
	return a.estimator
}

// Run listens on the configured address and serves until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Server.Address)
	if err != nil {
		return err
	}
	return a.Serve(ctx, ln)
}

func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	a.log.Info("api listening",
		zap.String("address", ln.Addr().String()),
		zap.Bool("metrics", a.cfg.Metrics.EnabledValue()),
	)
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.log.Warn("api shutdown failed", zap.Error(err))
		return err
	}
	a.log.Info("api stopped")
	return ctx.Err()
}
