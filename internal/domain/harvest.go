package domain

// ConvertHarvest maps a rainfall series to the volume reaching storage each
// day: liters = mm × m² × runoff coefficient. Pure and stateless; the output
// is index-aligned with the input.
func ConvertHarvest(rainfall RainfallSeries, cfg HarvesterConfig) HarvestedSeries {
	harvested := make(HarvestedSeries, 0, len(rainfall))
	for _, daily := range rainfall {
		harvested = append(harvested, daily*cfg.RoofArea*cfg.RunoffCoefficient)
	}
	return harvested
}

// EstimateCollection is the one-shot estimate used by the /estimate
// endpoint: collected = roof_area × rainfall / 1000. It is a deliberate
// simplification that ignores the runoff coefficient and must stay a
// separate operation from [ConvertHarvest]; unifying the two would change
// externally observable results.
func EstimateCollection(roofArea, rainfall float64) float64 {
	return roofArea * rainfall / 1000
}
