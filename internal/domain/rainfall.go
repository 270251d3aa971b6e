package domain

import (
	"math/rand/v2"
)

// GenerateRainfall draws days independent samples from a normal distribution
// with the given mean and standard deviation, clamping negative draws to
// zero. The caller supplies the random source so that a fixed seed
// reproduces the exact series.
func GenerateRainfall(rng *rand.Rand, days int, mean, stdDev float64) RainfallSeries {
	series := make(RainfallSeries, 0, days)
	for range days {
		rain := mean + stdDev*rng.NormFloat64()
		if rain < 0 {
			rain = 0
		}
		series = append(series, rain)
	}
	return series
}
