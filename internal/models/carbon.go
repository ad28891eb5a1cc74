package models

// CalculationInput is what the calculator sends on every input change.
type CalculationInput struct {
	WasteAmount float64 `json:"waste_amount"` // tonnes/month
	EnergyUsage float64 `json:"energy_usage"` // MWh/month, optional
}

// CalculationResult is the canonical estimate response.
// TreesEquivalent and RevenuePotential are always derived from CarbonSaved.
type CalculationResult struct {
	WasteAmount      float64 `json:"waste_amount"`
	EnergyUsage      float64 `json:"energy_usage"`
	CarbonSaved      float64 `json:"carbon_saved"`      // t CO2/month
	TreesEquivalent  int64   `json:"trees_equivalent"`  // trees
	RevenuePotential float64 `json:"revenue_potential"` // currency/month
}
