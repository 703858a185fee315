package estimate

var assumptions = []string{
	"Chain: fees and gas costs are typical for Arbitrum.",
	"Liquidity position: liquidity is added with a 50/50 token split (equal value of both assets).",
	"Rebalancing trigger: liquidity is removed when the position reaches a 0/100 token split.",
	"Current price: assumed to be the arithmetic average of the minimum and maximum prices.",
}

// Assumptions lists the conditions under which an estimate is meaningful.
func Assumptions() []string {
	out := make([]string, len(assumptions))
	copy(out, assumptions)
	return out
}

// BreakEvenNote accompanies any displayed cost.
const BreakEvenNote = "You must earn at least this amount in fees to cover the cost of one rebalancing."
