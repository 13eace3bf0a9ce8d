package services

import "github.com/shopspring/decimal"

// PriceInput holds the attributes a product's sale price is derived from.
type PriceInput struct {
	Weight        decimal.Decimal // grams
	GoldPrice     decimal.Decimal // currency per gram at creation
	MakingFee     decimal.Decimal // flat surcharge
	ProfitPercent decimal.Decimal
}

// CalculateFinalPrice returns (weight*goldPrice + makingFee) * (1 + profitPercent/100)
// at full precision. Rounding is left to display code.
func CalculateFinalPrice(in PriceInput) (decimal.Decimal, error) {
	if !in.Weight.IsPositive() {
		return decimal.Zero, validationError("weight must be greater than 0")
	}
	if !in.GoldPrice.IsPositive() {
		return decimal.Zero, validationError("gold price must be greater than 0")
	}
	if in.MakingFee.IsNegative() {
		return decimal.Zero, validationError("making fee cannot be negative")
	}
	if in.ProfitPercent.IsNegative() {
		return decimal.Zero, validationError("profit percent cannot be negative")
	}

	goldCost := in.Weight.Mul(in.GoldPrice)
	costWithFee := goldCost.Add(in.MakingFee)
	// Shift(-2) is an exact division by 100.
	markup := decimal.NewFromInt(1).Add(in.ProfitPercent.Shift(-2))

	return costWithFee.Mul(markup), nil
}

// FormatPrice renders a stored price with two decimals.
func FormatPrice(price decimal.Decimal) string {
	return price.StringFixed(2)
}
