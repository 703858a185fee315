package calc

// CurrentPrice is the assumed spot price of a range: the arithmetic mean of its bounds.
func CurrentPrice(minPrice, maxPrice float64) float64 {
	return (minPrice + maxPrice) / 2
}

// RangeEachSide returns the half-width of [minPrice, maxPrice] as a percentage
// of CurrentPrice. Callers must ensure maxPrice > minPrice; no validation is done here.
func RangeEachSide(minPrice, maxPrice float64) float64 {
	current := CurrentPrice(minPrice, maxPrice)
	rangeSize := maxPrice - current
	return rangeSize / current * 100
}
