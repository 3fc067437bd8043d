package reports

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/cafephin/dashboard-backend/pkg/square"
)

var oneHundred = decimal.NewFromInt(100)

// HourlySales reports completed payment totals bucketed by local hour of
// day. With comparePrev set, the same aggregate for the previous period is
// attached; a failed comparison degrades to a null comparison rather than
// failing the report.
func (s *Service) HourlySales(ctx context.Context, kind PeriodKind, value string, comparePrev bool) (*HourlySalesResponse, error) {
	rng, err := ResolvePeriod(kind, value, s.tz)
	if err != nil {
		return nil, err
	}
	locs, err := s.activeLocations(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.collectPayments(ctx, locs, rng)
	if err != nil {
		return nil, err
	}
	cells, grandMinor, grandCount, maxMinor := s.hourlyCells(locs, records)

	resp := &HourlySalesResponse{
		Range:               rangeRef(rng, s.tz),
		Type:                periodTypeName(kind),
		Timezone:            rng.Timezone,
		Hourly:              cells,
		MaxHourAllLocations: MajorUnits(maxMinor),
		GrandTotal:          MajorUnits(grandMinor),
		GrandTotalFormatted: FormatUSD(grandMinor),
		GrandCount:          grandCount,
	}
	if comparePrev {
		resp.Comparison = s.hourlyComparison(ctx, kind, value, locs, grandMinor)
	}
	return resp, nil
}

// hourlyCells buckets records into the full 24-hour grid. Hours with no
// activity carry explicit zeros, for every location.
func (s *Service) hourlyCells(locs []square.Location, records []moneyRecord) (map[string]HourCell, int64, int64, int64) {
	all := NewAccumulator[int](HourKeys())
	byHour := make(map[int]*Accumulator[string], 24)
	for _, hour := range HourKeys() {
		byHour[hour] = NewAccumulator[string](locationIDs(locs))
	}
	for _, rec := range records {
		hour := rec.createdAt.In(s.tz).Hour()
		all.Add(hour, rec.amountMinor)
		byHour[hour].Add(rec.locationID, rec.amountMinor)
	}

	cells := make(map[string]HourCell, 24)
	for _, bucket := range all.Buckets() {
		perLocation := byHour[bucket.Key].Buckets()
		totals := make(map[string]decimal.Decimal, len(perLocation))
		counts := make(map[string]int64, len(perLocation))
		for _, lb := range perLocation {
			totals[lb.Key] = MajorUnits(lb.TotalMinor)
			counts[lb.Key] = lb.Count
		}
		cells[strconv.Itoa(bucket.Key)] = HourCell{
			TotalAllLocations: MajorUnits(bucket.TotalMinor),
			CountAllLocations: bucket.Count,
			TotalsByLocation:  totals,
			CountByLocation:   counts,
		}
	}
	return cells, all.GrandTotalMinor(), all.GrandCount(), all.MaxBucketMinor()
}

// hourlyComparison aggregates the previous period. Comparison is decorative
// next to the primary report, so upstream failures here are logged and
// swallowed.
func (s *Service) hourlyComparison(ctx context.Context, kind PeriodKind, value string, locs []square.Location, currentMinor int64) *HourlyComparison {
	prevRng, err := PreviousPeriod(kind, value, s.tz)
	if err != nil {
		s.logger.Warn(s.logger.WithField(ctx, "error", err.Error()), "comparison period unresolvable, omitting comparison")
		return nil
	}
	records, err := s.collectPayments(ctx, locs, prevRng)
	if err != nil {
		s.logger.Warn(s.logger.WithField(ctx, "error", err.Error()), "comparison fetch failed, omitting comparison")
		return nil
	}
	cells, prevMinor, prevCount, _ := s.hourlyCells(locs, records)

	var change *decimal.Decimal
	if prevMinor != 0 {
		pct := MajorUnits(currentMinor).
			Sub(MajorUnits(prevMinor)).
			Div(MajorUnits(prevMinor)).
			Mul(oneHundred).
			Round(2)
		change = &pct
	}
	return &HourlyComparison{
		Range:         rangeRef(prevRng, s.tz),
		Hourly:        cells,
		GrandTotal:    MajorUnits(prevMinor),
		GrandCount:    prevCount,
		ChangePercent: change,
	}
}
