package estimate

// Emission factors used by the canonical estimate.
const (
	// WasteFactor is tonnes of CO2 avoided per tonne of processed waste.
	WasteFactor = 0.45
	// EnergyFactor is tonnes of CO2 avoided per MWh of recovered energy.
	EnergyFactor = 0.3
)

// Derived metric multipliers. These are fixed and not configurable.
const (
	TreesPerTonne   = 0.45
	RevenuePerTonne = 150.0
)

// Bounds of the waste input control. The estimate itself does not enforce them.
const (
	MinWasteAmount = 10.0
	MaxWasteAmount = 1000.0
	WasteStep      = 10.0

	DefaultWasteAmount = 100.0
)

// MaxInputQuantity caps waste and energy quantities accepted by Calculate.
// Every derived figure stays exactly representable below it.
const MaxInputQuantity = 1e12
