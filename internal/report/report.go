// Package report aggregates rainfall and harvest series into period
// summaries for display. It is presentation support, not part of the sizing
// engine; both front ends feed it the series produced by one run.
package report

import (
	"fmt"

	"github.com/couchcryptid/rainharvest/internal/domain"
)

// View selects the aggregation period.
type View string

const (
	ViewWeekly  View = "weekly"
	ViewMonthly View = "monthly"
)

// daysPerMonth is the fixed period length used for monthly buckets.
const daysPerMonth = 30

// ParseView validates a view name.
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewWeekly, ViewMonthly:
		return View(s), nil
	default:
		return "", fmt.Errorf("unknown view %q (expected weekly or monthly)", s)
	}
}

// Row is one display line: a period label with its rainfall and harvest sums.
type Row struct {
	Label     string
	Rainfall  float64 // mm
	Harvested float64 // liters
}

// Table is a fully aggregated view ready for rendering.
type Table struct {
	Title          string
	Rows           []Row
	TotalRainfall  float64
	TotalHarvested float64
}

// Build aggregates the two series for the requested view.
func Build(view View, rainfall domain.RainfallSeries, harvested domain.HarvestedSeries) Table {
	if view == ViewWeekly {
		return Weekly(rainfall, harvested)
	}
	return Monthly(rainfall, harvested)
}

// Weekly shows per-day rows for the first week of the simulation, with
// totals over those days only.
func Weekly(rainfall domain.RainfallSeries, harvested domain.HarvestedSeries) Table {
	days := min(len(rainfall), 7)

	t := Table{Title: "Weekly Data (First Week)"}
	for i := range days {
		t.Rows = append(t.Rows, Row{
			Label:     fmt.Sprintf("%d", i+1),
			Rainfall:  rainfall[i],
			Harvested: harvested[i],
		})
		t.TotalRainfall += rainfall[i]
		t.TotalHarvested += harvested[i]
	}
	return t
}

// Monthly sums the series into 30-day periods. Only full periods get a row;
// the total row covers the entire series including any remainder days, so
// with a 365-day horizon the totals exceed the sum of the 12 rows by the
// last five days.
func Monthly(rainfall domain.RainfallSeries, harvested domain.HarvestedSeries) Table {
	months := len(rainfall) / daysPerMonth

	t := Table{Title: "Monthly Data"}
	for m := range months {
		start := m * daysPerMonth
		end := start + daysPerMonth

		var periodRainfall, periodHarvested float64
		for i := start; i < end; i++ {
			periodRainfall += rainfall[i]
			periodHarvested += harvested[i]
		}
		t.Rows = append(t.Rows, Row{
			Label:     fmt.Sprintf("%d", m+1),
			Rainfall:  periodRainfall,
			Harvested: periodHarvested,
		})
	}

	t.TotalRainfall = rainfall.Total()
	t.TotalHarvested = harvested.Total()
	return t
}
