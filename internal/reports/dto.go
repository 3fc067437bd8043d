package reports

import (
	"github.com/shopspring/decimal"
)

// RangeRef is the local calendar span of a report, inclusive on both ends.
type RangeRef struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// LocationTotal is one location's slice of a sales or refund aggregate.
type LocationTotal struct {
	LocationID     string          `json:"locationId"`
	LocationName   string          `json:"locationName"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"totalFormatted"`
	Count          int64           `json:"count"`
}

// DailySalesResponse is the /api/sales (and /api/refunds) daily shape.
type DailySalesResponse struct {
	Date                string          `json:"date"`
	Timezone            string          `json:"timezone"`
	GrandTotal          decimal.Decimal `json:"grandTotal"`
	GrandTotalFormatted string          `json:"grandTotalFormatted"`
	GrandCount          int64           `json:"grandCount"`
	LocationsCount      int             `json:"locationsCount"`
	Locations           []LocationTotal `json:"locations"`
}

// PeriodSalesResponse covers the weekly/monthly/yearly sales and refund
// variants.
type PeriodSalesResponse struct {
	Range               RangeRef        `json:"range"`
	Type                string          `json:"type"`
	Timezone            string          `json:"timezone"`
	GrandTotal          decimal.Decimal `json:"grandTotal"`
	GrandTotalFormatted string          `json:"grandTotalFormatted"`
	GrandCount          int64           `json:"grandCount"`
	LocationsCount      int             `json:"locationsCount"`
	Locations           []LocationTotal `json:"locations"`
}

// HourCell is one hour-of-day bucket across all locations plus the
// per-location breakdown the heatmap drills into.
type HourCell struct {
	TotalAllLocations decimal.Decimal            `json:"totalAllLocations"`
	CountAllLocations int64                      `json:"countAllLocations"`
	TotalsByLocation  map[string]decimal.Decimal `json:"totalsByLocation"`
	CountByLocation   map[string]int64           `json:"countByLocation"`
}

// HourlyComparison pairs the prior period's hourly aggregate with the
// current one for percentage-change display.
type HourlyComparison struct {
	Range         RangeRef            `json:"range"`
	Hourly        map[string]HourCell `json:"hourly"`
	GrandTotal    decimal.Decimal     `json:"grandTotal"`
	GrandCount    int64               `json:"grandCount"`
	ChangePercent *decimal.Decimal    `json:"changePercent"`
}

// HourlySalesResponse is the /api/sales/hourly shape. Hourly always holds
// all 24 hour keys; zero-activity hours report explicit zeros.
type HourlySalesResponse struct {
	Range               RangeRef            `json:"range"`
	Type                string              `json:"type"`
	Timezone            string              `json:"timezone"`
	Hourly              map[string]HourCell `json:"hourly"`
	MaxHourAllLocations decimal.Decimal     `json:"maxHourAllLocations"`
	GrandTotal          decimal.Decimal     `json:"grandTotal"`
	GrandTotalFormatted string              `json:"grandTotalFormatted"`
	GrandCount          int64               `json:"grandCount"`
	Comparison          *HourlyComparison   `json:"comparison"`
}

// ItemTotal is one merged catalog item's revenue row.
type ItemTotal struct {
	ItemName       string          `json:"itemName"`
	Quantity       decimal.Decimal `json:"quantity"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"totalFormatted"`
}

// ItemLocationTotal is one location's item breakdown.
type ItemLocationTotal struct {
	LocationID     string          `json:"locationId"`
	LocationName   string          `json:"locationName"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"totalFormatted"`
	Items          []ItemTotal     `json:"items"`
}

// ItemsResponse is the /api/items shape across all period kinds.
type ItemsResponse struct {
	Range               RangeRef            `json:"range"`
	Type                string              `json:"type"`
	Timezone            string              `json:"timezone"`
	GrandTotal          decimal.Decimal     `json:"grandTotal"`
	GrandTotalFormatted string              `json:"grandTotalFormatted"`
	OverallItems        []ItemTotal         `json:"overallItems"`
	Locations           []ItemLocationTotal `json:"locations"`
}

// ShiftLocationTotal is one location's labor summary.
type ShiftLocationTotal struct {
	LocationID   string          `json:"locationId"`
	LocationName string          `json:"locationName"`
	Shifts       int64           `json:"shifts"`
	Hours        decimal.Decimal `json:"hours"`
}

// ShiftsResponse is the /api/shifts shape. HourlyCoverage maps each local
// hour to the number of staff on the clock; all 24 keys are always present.
type ShiftsResponse struct {
	Date            string               `json:"date"`
	Timezone        string               `json:"timezone"`
	TotalShifts     int64                `json:"totalShifts"`
	TotalHours      decimal.Decimal      `json:"totalHours"`
	WorkersCount    int                  `json:"workersCount"`
	Locations       []ShiftLocationTotal `json:"locations"`
	HourlyCoverage  map[string]int64     `json:"hourlyCoverage"`
	MaxHourCoverage int64                `json:"maxHourCoverage"`
}
