package calc

import (
	"math"
	"testing"
)

func TestRebalancingCostZeroRange(t *testing.T) {
	v := 1000.0
	want := v/2*0.0030 + 1.50
	if got := RebalancingCost(v, 0); math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

func TestRebalancingCostScenario(t *testing.T) {
	b := RebalancingBreakdown(1000, RangeEachSide(0.0394, 0.0438))
	if math.Abs(b.PriceRatio-1.052885) > 1e-6 {
		t.Fatalf("expected k ~1.052885, got %f", b.PriceRatio)
	}
	if math.Abs(b.ImpermanentLoss-0.000331873) > 1e-8 {
		t.Fatalf("expected il ~0.000332, got %f", b.ImpermanentLoss)
	}
	if math.Abs(b.ILCostUSD-0.331873) > 1e-5 {
		t.Fatalf("expected il cost ~0.332, got %f", b.ILCostUSD)
	}
	if b.SwapValueUSD != 500 {
		t.Fatalf("expected swap value 500, got %f", b.SwapValueUSD)
	}
	if math.Abs(b.SwapFeeUSD-1.5) > 1e-12 {
		t.Fatalf("expected swap fee 1.5, got %f", b.SwapFeeUSD)
	}
	if b.GasFeeUSD != GasFeeUSD {
		t.Fatalf("expected gas fee %f, got %f", GasFeeUSD, b.GasFeeUSD)
	}
	if math.Abs(b.TotalUSD-3.331873) > 1e-5 {
		t.Fatalf("expected total ~3.33, got %f", b.TotalUSD)
	}
}

func TestRebalancingCostMatchesBreakdown(t *testing.T) {
	if got, want := RebalancingCost(2500, 7.5), RebalancingBreakdown(2500, 7.5).TotalUSD; got != want {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

func TestRebalancingCostMonotonicInRange(t *testing.T) {
	prev := RebalancingCost(1000, 0)
	for _, r := range []float64{0.5, 1, 5, 10, 25, 50, 100, 400} {
		got := RebalancingCost(1000, r)
		if got <= prev {
			t.Fatalf("expected cost to grow at range %f: %f <= %f", r, got, prev)
		}
		prev = got
	}
}

func TestRebalancingCostMonotonicInValue(t *testing.T) {
	prev := RebalancingCost(0, 5)
	for _, v := range []float64{1, 100, 1000, 1e6} {
		got := RebalancingCost(v, 5)
		if got <= prev {
			t.Fatalf("expected cost to grow at value %f: %f <= %f", v, got, prev)
		}
		prev = got
	}
}

func TestRebalancingCostScalesLinearly(t *testing.T) {
	for _, r := range []float64{0, 2, 5.288, 30} {
		single := RebalancingCost(1000, r) - GasFeeUSD
		double := RebalancingCost(2000, r) - GasFeeUSD
		if math.Abs(double-2*single) > 1e-9 {
			t.Fatalf("expected linear scaling at range %f: %f vs %f", r, double, 2*single)
		}
	}
}

func TestRebalancingCostZeroValueIsGasOnly(t *testing.T) {
	if got := RebalancingCost(0, 12); got != GasFeeUSD {
		t.Fatalf("expected gas only, got %f", got)
	}
}

func TestRebalancingCostNarrowRangeApproachesFees(t *testing.T) {
	v := 1000.0
	got := RebalancingCost(v, RangeEachSide(1, 1.000001))
	floor := v/2*SwapFeeTier + GasFeeUSD
	if got < floor || got-floor > 1e-6 {
		t.Fatalf("expected cost near %f, got %f", floor, got)
	}
}

func TestImpermanentLoss(t *testing.T) {
	if got := ImpermanentLoss(1); got != 0 {
		t.Fatalf("expected zero loss at k=1, got %f", got)
	}
	// Doubling the price costs ~5.72% versus holding.
	if got := ImpermanentLoss(2); math.Abs(got-0.0571909584) > 1e-9 {
		t.Fatalf("expected ~0.0572 at k=2, got %f", got)
	}
	if got := ImpermanentLoss(0.5); math.Abs(got-0.0571909584) > 1e-9 {
		t.Fatalf("expected loss at k=0.5 to mirror k=2, got %f", got)
	}
}

func TestRebalancingCostNonNegative(t *testing.T) {
	for _, r := range []float64{-50, -10, 0, 10, 50} {
		if got := RebalancingCost(500, r); got < 0 {
			t.Fatalf("expected non-negative cost at range %f, got %f", r, got)
		}
	}
}
