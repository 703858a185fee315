package calc

import "math"

const (
	// GasFeeUSD is the flat transaction cost of one rebalance (Arbitrum).
	GasFeeUSD = 1.50
	// SwapFeeTier is the pool fee charged on the rebalancing swap (30 bps).
	SwapFeeTier = 0.0030
)

// swapShare is the fraction of position value swapped when restoring 50/50 from 0/100.
const swapShare = 0.5

type CostBreakdown struct {
	PriceRatio      float64 `json:"price_ratio" msgpack:"price_ratio"`
	ImpermanentLoss float64 `json:"impermanent_loss" msgpack:"impermanent_loss"`
	ILCostUSD       float64 `json:"il_cost_usd" msgpack:"il_cost_usd"`
	SwapValueUSD    float64 `json:"swap_value_usd" msgpack:"swap_value_usd"`
	SwapFeeUSD      float64 `json:"swap_fee_usd" msgpack:"swap_fee_usd"`
	GasFeeUSD       float64 `json:"gas_fee_usd" msgpack:"gas_fee_usd"`
	TotalUSD        float64 `json:"total_usd" msgpack:"total_usd"`
}

// ImpermanentLoss is the constant-product pool loss, as a fraction of pooled
// value, for a price move by factor k. k must be > 0.
func ImpermanentLoss(k float64) float64 {
	return math.Abs(2*math.Sqrt(k)/(1+k) - 1)
}

func RebalancingBreakdown(totalValueUSD, rangePercent float64) CostBreakdown {
	k := 1 + rangePercent/100
	il := ImpermanentLoss(k)
	ilCost := totalValueUSD * il
	swapValue := totalValueUSD * swapShare
	swapFee := swapValue * SwapFeeTier
	return CostBreakdown{
		PriceRatio:      k,
		ImpermanentLoss: il,
		ILCostUSD:       ilCost,
		SwapValueUSD:    swapValue,
		SwapFeeUSD:      swapFee,
		GasFeeUSD:       GasFeeUSD,
		TotalUSD:        ilCost + swapFee + GasFeeUSD,
	}
}

// RebalancingCost is the total USD cost of one rebalancing cycle: realized
// impermanent loss, the swap fee, and gas.
func RebalancingCost(totalValueUSD, rangePercent float64) float64 {
	return RebalancingBreakdown(totalValueUSD, rangePercent).TotalUSD
}
