package engine

import (
	"math"

	"github.com/shopspring/decimal"

	"planta-backend/internal/constants"
)

// LookupFormula finds a product's formula by exact, case-sensitive name
// match. A miss means "no scaling available", not an error.
func LookupFormula(productName string) (constants.FormulaEntry, bool) {
	for _, entry := range constants.FormulaCatalog {
		if entry.Product == productName {
			return entry, true
		}
	}
	return constants.FormulaEntry{}, false
}

// ScaleFormula multiplies every per-unit amount of the product's formula by
// quantity, rounded half-up to three decimals (the resolution of the plant's
// scales). Unknown products and non-positive or non-finite quantities yield
// an empty map, never partial results.
func ScaleFormula(productName string, quantity float64) map[string]decimal.Decimal {
	scaled := map[string]decimal.Decimal{}

	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity <= 0 {
		return scaled
	}

	entry, ok := LookupFormula(productName)
	if !ok {
		return scaled
	}

	qty := decimal.NewFromFloat(quantity)
	for _, ing := range entry.Ingredients {
		scaled[ing.Name] = decimal.NewFromFloat(ing.PerUnit).Mul(qty).Round(3)
	}

	return scaled
}
