// Package estimate holds the carbon capture estimate and the metrics derived from it.
//
// The derivation lives only here so the server is the single place the
// multipliers are applied; clients display what the server returns.
package estimate

import (
	"math"

	"github.com/ecoindus/site-backend-go/internal/models"
)

// Calculate computes the canonical estimate for the given input.
//
// carbon_saved is waste*WasteFactor + energy*EnergyFactor rounded to two
// decimals. Trees and revenue are derived from the rounded value, so the
// invariants hold on exactly what is returned.
func Calculate(input models.CalculationInput) (models.CalculationResult, error) {
	if err := validate(input.WasteAmount); err != nil {
		return models.CalculationResult{}, err
	}
	if err := validate(input.EnergyUsage); err != nil {
		return models.CalculationResult{}, err
	}

	carbon := roundTo(input.WasteAmount*WasteFactor+input.EnergyUsage*EnergyFactor, 2)

	trees, revenue := Derive(carbon)
	return models.CalculationResult{
		WasteAmount:      input.WasteAmount,
		EnergyUsage:      input.EnergyUsage,
		CarbonSaved:      carbon,
		TreesEquivalent:  trees,
		RevenuePotential: revenue,
	}, nil
}

// Derive returns the tree equivalent and revenue potential for a carbon figure.
func Derive(carbonSaved float64) (trees int64, revenue float64) {
	return int64(math.Round(carbonSaved * TreesPerTonne)), math.Round(carbonSaved * RevenuePerTonne)
}

// InRange reports whether v is a value the waste input control can produce.
func InRange(v float64) bool {
	if v < MinWasteAmount || v > MaxWasteAmount {
		return false
	}
	steps := (v - MinWasteAmount) / WasteStep
	return math.Abs(steps-math.Round(steps)) < 1e-9
}

func validate(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrNonFiniteInput
	}
	if v < 0 {
		return ErrNegativeInput
	}
	if v > MaxInputQuantity {
		return ErrInputTooLarge
	}
	return nil
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
