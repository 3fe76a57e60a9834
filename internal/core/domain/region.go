package domain

import "github.com/shopspring/decimal"

// Regional pricing tables. Charges are computed as
// base * multiplier, then discounted, then taxed at the region's rate.
// Unknown regions fall back to multiplier 1.0 and a zero tax rate.
var (
	regionMultipliers = map[string]decimal.Decimal{
		"Europe West 1": decimal.NewFromInt(1),
		"US East 1":     decimal.NewFromInt(1),
		"Asia South 1":  decimal.RequireFromString("0.85"),
		"LatAm 1":       decimal.RequireFromString("0.95"),
	}

	regionTaxRates = map[string]decimal.Decimal{
		"Europe West 1": decimal.RequireFromString("0.20"), // VAT
		"US East 1":     decimal.Zero,                      // sales tax not modeled
		"Asia South 1":  decimal.RequireFromString("0.18"),
		"LatAm 1":       decimal.RequireFromString("0.16"),
	}
)

// RegionMultiplier returns the price multiplier for a region.
func RegionMultiplier(region string) decimal.Decimal {
	if m, ok := regionMultipliers[region]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

// RegionTaxRate returns the tax rate applied to charges in a region.
func RegionTaxRate(region string) decimal.Decimal {
	if r, ok := regionTaxRates[region]; ok {
		return r
	}
	return decimal.Zero
}

// KnownRegion reports whether the region has an explicit pricing table entry.
func KnownRegion(region string) bool {
	_, ok := regionMultipliers[region]
	return ok
}
