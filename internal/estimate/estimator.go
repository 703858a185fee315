package estimate

import (
	"errors"
	"fmt"
	"math"

	"lp-rebalance-calc/internal/calc"
	"lp-rebalance-calc/internal/metrics"

	"go.uber.org/zap"
)

var (
	ErrInvalidRange      = errors.New("maximum price must be greater than minimum price")
	ErrNegativePrice     = errors.New("prices must be >= 0")
	ErrNonFinite         = errors.New("inputs must be finite numbers")
	ErrBelowMinimumValue = errors.New("total LP value is below the allowed minimum")
)

type Request struct {
	TotalValueUSD float64 `json:"total_value_usd" msgpack:"total_value_usd"`
	MinPrice      float64 `json:"min_price" msgpack:"min_price"`
	MaxPrice      float64 `json:"max_price" msgpack:"max_price"`
}

type Result struct {
	Request
	CurrentPrice float64            `json:"current_price" msgpack:"current_price"`
	RangePercent float64            `json:"range_percent" msgpack:"range_percent"`
	Breakdown    calc.CostBreakdown `json:"breakdown" msgpack:"breakdown"`
}

func (r Result) RangeLabel() string {
	return fmt.Sprintf("%.2f%%", r.RangePercent)
}

func (r Result) CostLabel() string {
	return fmt.Sprintf("$%.2f", r.Breakdown.TotalUSD)
}

type Estimator struct {
	minTotalValueUSD float64
	metrics          *metrics.Metrics
	log              *zap.Logger
}

func New(minTotalValueUSD float64, m *metrics.Metrics, log *zap.Logger) *Estimator {
	if m == nil {
		m = metrics.NewNoop()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Estimator{minTotalValueUSD: minTotalValueUSD, metrics: m, log: log}
}

// Validate applies the caller-side preconditions; the calc functions assume them.
func (e *Estimator) Validate(req Request) error {
	for _, v := range []float64{req.TotalValueUSD, req.MinPrice, req.MaxPrice} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFinite
		}
	}
	if req.MaxPrice <= req.MinPrice {
		return ErrInvalidRange
	}
	if req.MinPrice < 0 {
		return fmt.Errorf("min price %g: %w", req.MinPrice, ErrNegativePrice)
	}
	floor := math.Max(e.minTotalValueUSD, 0)
	if req.TotalValueUSD < floor {
		return fmt.Errorf("total value %.2f below %.2f: %w", req.TotalValueUSD, floor, ErrBelowMinimumValue)
	}
	return nil
}

func (e *Estimator) Estimate(req Request) (Result, error) {
	if err := e.Validate(req); err != nil {
		e.metrics.Rejected.Inc()
		e.log.Warn("estimate rejected",
			zap.Float64("total_value_usd", req.TotalValueUSD),
			zap.Float64("min_price", req.MinPrice),
			zap.Float64("max_price", req.MaxPrice),
			zap.Error(err),
		)
		return Result{}, err
	}
	rangePct := calc.RangeEachSide(req.MinPrice, req.MaxPrice)
	res := Result{
		Request:      req,
		CurrentPrice: calc.CurrentPrice(req.MinPrice, req.MaxPrice),
		RangePercent: rangePct,
		Breakdown:    calc.RebalancingBreakdown(req.TotalValueUSD, rangePct),
	}
	e.metrics.Estimates.Inc()
	e.log.Debug("estimate computed",
		zap.Float64("range_percent", res.RangePercent),
		zap.Float64("impermanent_loss", res.Breakdown.ImpermanentLoss),
		zap.Float64("total_cost_usd", res.Breakdown.TotalUSD),
	)
	return res, nil
}
