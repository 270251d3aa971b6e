package domain

// DefaultSimulationDays is one year of daily samples.
const DefaultSimulationDays = 365

// HarvesterConfig describes the collection surface. Treated as an immutable
// value once constructed.
type HarvesterConfig struct {
	RoofArea          float64 `json:"roof_area"`          // m²
	RunoffCoefficient float64 `json:"runoff_coefficient"` // fraction in [0,1]
}

// Validate checks the configuration invariants: a strictly positive roof
// area and a runoff coefficient within [0,1].
func (c HarvesterConfig) Validate() error {
	if c.RoofArea <= 0 {
		return &InvalidParameterError{Field: "roof_area", Value: c.RoofArea, Reason: "must be positive"}
	}
	if c.RunoffCoefficient < 0 || c.RunoffCoefficient > 1 {
		return &InvalidParameterError{Field: "runoff_coefficient", Value: c.RunoffCoefficient, Reason: "must be between 0 and 1"}
	}
	return nil
}

// RainfallSeries is an ordered sequence of daily rainfall amounts in mm.
// Every element is ≥ 0. Produced once per simulation run and never mutated.
type RainfallSeries []float64

// HarvestedSeries is an ordered sequence of daily harvested volumes in
// liters, index-aligned with the rainfall series it was derived from.
type HarvestedSeries []float64

// Total returns the cumulative rainfall over the series in mm.
func (s RainfallSeries) Total() float64 { return sum(s) }

// Total returns the cumulative harvested volume over the series in liters.
func (s HarvestedSeries) Total() float64 { return sum(s) }

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// SizingResult holds the outcome of the storage sizing pass.
type SizingResult struct {
	// RecommendedCapacity is the minimum tank size in liters, equal to the
	// peak storage balance observed during the simulated year.
	RecommendedCapacity float64 `json:"recommended_capacity"`
	// TotalOverflow is the cumulative harvested water in liters that could
	// not be retained because storage was at capacity.
	TotalOverflow float64 `json:"total_overflow"`
}
