package insights

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cafephin/dashboard-backend/internal/reports"
)

// RuleSummary builds a deterministic narrative from the day's reports. It is
// the answer when no model is configured and the safety net when the model
// call fails, so it must never error.
func RuleSummary(daily *reports.DailySalesResponse, hourly *reports.HourlySalesResponse) string {
	if daily == nil {
		return "No sales data is available."
	}
	day := daily.Date
	if parsed, err := time.Parse("2006-01-02", daily.Date); err == nil {
		day = fmt.Sprintf("%s %s", parsed.Weekday(), daily.Date)
	}
	if daily.GrandCount == 0 {
		return fmt.Sprintf("%s: no completed sales were recorded across %d locations.", day, daily.LocationsCount)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s across %d locations over %d payments.",
		day, daily.GrandTotalFormatted, daily.LocationsCount, daily.GrandCount)

	if top, ok := topLocation(daily.Locations); ok {
		fmt.Fprintf(&b, " %s led with %s.", top.LocationName, top.TotalFormatted)
	}
	if hour, ok := busiestHour(hourly); ok {
		fmt.Fprintf(&b, " The busiest hour was %02d:00.", hour)
	}
	if line, ok := comparisonLine(hourly); ok {
		b.WriteString(" ")
		b.WriteString(line)
	}
	return b.String()
}

func topLocation(totals []reports.LocationTotal) (reports.LocationTotal, bool) {
	var best reports.LocationTotal
	found := false
	for _, total := range totals {
		if !found || total.Total.GreaterThan(best.Total) {
			best = total
			found = true
		}
	}
	if !found || !best.Total.IsPositive() {
		return reports.LocationTotal{}, false
	}
	return best, true
}

func busiestHour(hourly *reports.HourlySalesResponse) (int, bool) {
	if hourly == nil {
		return 0, false
	}
	best := -1
	bestTotal := decimal.Zero
	for hour := 0; hour < 24; hour++ {
		cell, ok := hourly.Hourly[strconv.Itoa(hour)]
		if !ok {
			continue
		}
		if cell.TotalAllLocations.GreaterThan(bestTotal) {
			bestTotal = cell.TotalAllLocations
			best = hour
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

func comparisonLine(hourly *reports.HourlySalesResponse) (string, bool) {
	if hourly == nil || hourly.Comparison == nil || hourly.Comparison.ChangePercent == nil {
		return "", false
	}
	change := *hourly.Comparison.ChangePercent
	switch {
	case change.IsPositive():
		return fmt.Sprintf("Sales were up %s%% versus the same day last week.", change.String()), true
	case change.IsNegative():
		return fmt.Sprintf("Sales were down %s%% versus the same day last week.", change.Abs().String()), true
	default:
		return "Sales were flat versus the same day last week.", true
	}
}
