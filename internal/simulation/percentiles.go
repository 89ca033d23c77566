package simulation

import (
	"sort"

	"github.com/shopspring/decimal"
)

// sortValues sorts a slice of decimals ascending in place.
func sortValues(values []decimal.Decimal) {
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
}

// percentileOfSorted linearly interpolates the given percentile (0..1) over
// an ascending-sorted slice: rank index = p * (n-1), interpolated between the
// surrounding elements.
func percentileOfSorted(sorted []decimal.Decimal, percentile float64) decimal.Decimal {
	if len(sorted) == 0 {
		return decimal.Zero
	}

	index := percentile * float64(len(sorted)-1)
	lowerIdx := int(index)
	if index == float64(lowerIdx) {
		return sorted[lowerIdx]
	}

	lower := sorted[lowerIdx]
	upper := sorted[lowerIdx+1]
	fraction := decimal.NewFromFloat(index - float64(lowerIdx))

	return lower.Add(upper.Sub(lower).Mul(fraction))
}
