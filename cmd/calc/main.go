package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"lp-rebalance-calc/internal/config"
	"lp-rebalance-calc/internal/estimate"
	"lp-rebalance-calc/internal/logging"
	"lp-rebalance-calc/internal/report"
	"lp-rebalance-calc/internal/rest"

	"go.uber.org/zap"
)

const defaultEnvFile = ".env"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "optional config file")
	total := fs.Float64("total", 0, "total LP value in USD")
	minPrice := fs.Float64("min", 0, "minimum price of the range")
	maxPrice := fs.Float64("max", 0, "maximum price of the range")
	remote := fs.String("remote", "", "estimate via a running API at this base URL")
	showAssumptions := fs.Bool("assumptions", false, "print the calculator assumptions and exit")
	format := fs.String("format", report.FormatText, "output format: text or table")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := config.LoadEnv(defaultEnvFile); err != nil {
		fmt.Fprintf(stderr, "failed to load .env: %v\n", err)
	}
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "config: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	logCfg := cfg.Log
	logCfg.Format = "console"
	log := logging.New(logCfg)
	defer func() { _ = log.Sync() }()

	baseURL := *remote
	if baseURL == "" {
		baseURL = cfg.Client.BaseURL
	}

	if *showAssumptions {
		items := estimate.Assumptions()
		if baseURL != "" {
			out, err := rest.New(baseURL, cfg.Client.Timeout, log).Assumptions(context.Background())
			if err != nil {
				fmt.Fprintf(stderr, "assumptions: %v\n", err)
				return 1
			}
			items = out.Assumptions
		}
		if err := report.Assumptions(stdout, items); err != nil {
			return 1
		}
		return 0
	}

	req := estimate.Request{
		TotalValueUSD: cfg.Calculator.DefaultTotalValueUSD,
		MinPrice:      cfg.Calculator.DefaultMinPrice,
		MaxPrice:      cfg.Calculator.DefaultMaxPrice,
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "total":
			req.TotalValueUSD = *total
		case "min":
			req.MinPrice = *minPrice
		case "max":
			req.MaxPrice = *maxPrice
		}
	})

	var (
		res estimate.Result
		err error
	)
	if baseURL != "" {
		res, err = rest.New(baseURL, cfg.Client.Timeout, log).Estimate(context.Background(), req)
	} else {
		res, err = estimate.New(cfg.Calculator.MinTotalValue(), nil, log).Estimate(req)
	}
	if err != nil {
		if !isValidation(err) {
			log.Error("estimate failed", zap.String("remote", baseURL), zap.Error(err))
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if err := report.Render(stdout, *format, res); err != nil {
		fmt.Fprintf(stderr, "render: %v\n", err)
		return 1
	}
	return 0
}

func isValidation(err error) bool {
	for _, target := range []error{
		estimate.ErrInvalidRange,
		estimate.ErrNegativePrice,
		estimate.ErrNonFinite,
		estimate.ErrBelowMinimumValue,
		rest.ErrRejected,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
