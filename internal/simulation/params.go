package simulation

import (
	"github.com/couchcryptid/rainharvest/internal/domain"
)

// Params carries one simulation request. The five numeric parameters mirror
// the interactive calculator; Days and Seed are optional (zero Days means
// the engine default, nil Seed means a fresh random seed).
type Params struct {
	RoofArea          float64 `json:"roof_area"`          // m²
	RunoffCoefficient float64 `json:"runoff_coefficient"` // [0,1]
	DailyConsumption  float64 `json:"daily_consumption"`  // liters
	MeanRainfall      float64 `json:"mean_rainfall"`      // mm
	StdDev            float64 `json:"std_dev"`            // mm
	Days              int     `json:"days,omitempty"`
	Seed              *uint64 `json:"seed,omitempty"`
}

// Validate checks every parameter, returning a *domain.InvalidParameterError
// naming the first offending field.
func (p Params) Validate() error {
	cfg := domain.HarvesterConfig{RoofArea: p.RoofArea, RunoffCoefficient: p.RunoffCoefficient}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if p.DailyConsumption < 0 {
		return &domain.InvalidParameterError{Field: "daily_consumption", Value: p.DailyConsumption, Reason: "must not be negative"}
	}
	if p.MeanRainfall < 0 {
		return &domain.InvalidParameterError{Field: "mean_rainfall", Value: p.MeanRainfall, Reason: "must not be negative"}
	}
	if p.StdDev < 0 {
		return &domain.InvalidParameterError{Field: "std_dev", Value: p.StdDev, Reason: "must not be negative"}
	}
	if p.Days <= 0 {
		return &domain.InvalidParameterError{Field: "days", Value: float64(p.Days), Reason: "must be positive"}
	}
	return nil
}

// harvesterConfig converts the request parameters into the immutable
// collection-surface value consumed by the domain functions.
func (p Params) harvesterConfig() domain.HarvesterConfig {
	return domain.HarvesterConfig{RoofArea: p.RoofArea, RunoffCoefficient: p.RunoffCoefficient}
}
