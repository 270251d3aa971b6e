package domain

// SizeStorage runs the supply/demand balance over a harvested series and
// derives the minimum tank capacity plus cumulative overflow. Single forward
// pass, O(n) time, O(1) extra space.
//
// Per day, in order: add the day's harvest, subtract consumption, clamp a
// negative balance to zero (unmet demand is not tracked), raise the capacity
// ceiling if the balance exceeds it, then count any balance still above the
// ceiling as overflow and cap the balance. Because the ceiling is raised
// before the overflow check, a day that sets a new peak never overflows; a
// year of steady surplus therefore reports the final balance as capacity and
// zero overflow. Known quirk; callers depend on these exact numbers.
func SizeStorage(harvested HarvestedSeries, dailyConsumption float64) SizingResult {
	var currentStorage, maxStorageNeeded, overflow float64

	for _, dailyHarvest := range harvested {
		currentStorage += dailyHarvest
		currentStorage -= dailyConsumption

		if currentStorage < 0 {
			currentStorage = 0
		} else if currentStorage > maxStorageNeeded {
			maxStorageNeeded = currentStorage
		}

		if currentStorage > maxStorageNeeded {
			overflow += currentStorage - maxStorageNeeded
			currentStorage = maxStorageNeeded
		}
	}

	return SizingResult{
		RecommendedCapacity: maxStorageNeeded,
		TotalOverflow:       overflow,
	}
}

// Efficiency reports the share of harvested water actually retained, in
// percent: (harvested − overflow) / harvested × 100. Returns
// [ErrUndefinedMetric] when nothing was harvested.
func Efficiency(totalHarvested, totalOverflow float64) (float64, error) {
	if totalHarvested == 0 {
		return 0, ErrUndefinedMetric
	}
	return (totalHarvested - totalOverflow) / totalHarvested * 100, nil
}
