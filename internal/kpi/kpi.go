// Package kpi holds the farm dashboard ratios. Every ratio reports ok=false
// instead of dividing by a zero or negative denominator.
package kpi

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// divide returns num/den rounded to four places, or false when den <= 0.
func divide(num, den decimal.Decimal) (decimal.Decimal, bool) {
	if !den.IsPositive() {
		return decimal.Zero, false
	}
	return num.DivRound(den, 4), true
}

// FeedConversionRatio is feed consumed per unit of live-weight gain.
func FeedConversionRatio(feedKg, weightGainKg decimal.Decimal) (decimal.Decimal, bool) {
	return divide(feedKg, weightGainKg)
}

// EggProductionPercent is eggs laid per hen-day, as a percentage.
// Hen-days is the flock size summed over the days in the window.
func EggProductionPercent(eggs, henDays decimal.Decimal) (decimal.Decimal, bool) {
	return divide(eggs.Mul(hundred), henDays)
}

// MilkYieldPerCow is litres per milking cow over the same window.
func MilkYieldPerCow(litres decimal.Decimal, cows int) (decimal.Decimal, bool) {
	return divide(litres, decimal.NewFromInt(int64(cows)))
}

// FixedAsset is a piece of farm equipment or a building. Accumulated
// depreciation is entered by the operator, not derived from a schedule.
type FixedAsset struct {
	Name                    string          `json:"name"`
	PurchaseCost            decimal.Decimal `json:"purchase_cost"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation"`
}

// NetBookValue is purchase cost less accumulated depreciation.
func (a FixedAsset) NetBookValue() decimal.Decimal {
	return a.PurchaseCost.Sub(a.AccumulatedDepreciation)
}
