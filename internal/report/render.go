package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
)

const tableWidth = 60

// Render formats a table as fixed-width text. The first column is the
// period label, then rainfall in mm and harvested water in liters.
func Render(t Table) string {
	var b strings.Builder
	rule := strings.Repeat("-", tableWidth)

	label := "Day"
	if t.Title == "Monthly Data" {
		label = "Month"
	}

	fmt.Fprintf(&b, "\n%s\n", titleStyle.Render(t.Title))
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, headerStyle.Render(fmt.Sprintf("%-8s | %-20s | %-20s", label, "Rainfall (mm)", "Harvested Water (L)")))
	fmt.Fprintln(&b, rule)

	for _, row := range t.Rows {
		fmt.Fprintf(&b, "%-8s | %18.1f | %18.1f\n", row.Label, row.Rainfall, row.Harvested)
	}

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "%-8s | %18.1f | %18.1f\n", "Total", t.TotalRainfall, t.TotalHarvested)
	fmt.Fprintln(&b, rule)

	return b.String()
}
