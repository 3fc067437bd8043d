package reports

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// The labor search filters on shift start time, so an overnight shift that
// began the previous evening would otherwise be invisible to the day it
// spills into.
const shiftLookback = 24 * time.Hour

var sixtyMinutes = decimal.NewFromInt(60)

// Shifts reports labor coverage for one local calendar day: totals per
// location, distinct workers, and how many staff were on the clock during
// each local hour. Open shifts count as running through the end of the day.
func (s *Service) Shifts(ctx context.Context, date string) (*ShiftsResponse, error) {
	rng, err := ResolvePeriod(PeriodDay, date, s.tz)
	if err != nil {
		return nil, err
	}
	locs, err := s.activeLocations(ctx)
	if err != nil {
		return nil, err
	}
	shifts, err := s.upstream.SearchShifts(ctx, locationIDs(locs), rng.BeginUTC.Add(-shiftLookback), rng.EndUTC)
	if err != nil {
		return nil, err
	}

	type locationAgg struct {
		shifts  int64
		minutes int64
	}
	perLocation := make(map[string]*locationAgg, len(locs))
	for _, loc := range locs {
		perLocation[loc.ID] = &locationAgg{}
	}

	coverage := make(map[string]int64, 24)
	for _, hour := range HourKeys() {
		coverage[strconv.Itoa(hour)] = 0
	}

	workers := make(map[string]struct{})
	var totalShifts, totalMinutes, maxCoverage int64

	for _, shift := range shifts {
		start := shift.StartAt
		end := rng.EndUTC
		if shift.EndAt != nil {
			end = *shift.EndAt
		}
		// Clamp to the report day; shifts entirely outside it came from
		// the lookback window and are dropped.
		if start.Before(rng.BeginUTC) {
			start = rng.BeginUTC
		}
		if end.After(rng.EndUTC) {
			end = rng.EndUTC
		}
		if !end.After(start) {
			continue
		}

		totalShifts++
		minutes := int64(end.Sub(start) / time.Minute)
		totalMinutes += minutes
		if agg, ok := perLocation[shift.LocationID]; ok {
			agg.shifts++
			agg.minutes += minutes
		}
		if worker := shift.Worker(); worker != "" {
			workers[worker] = struct{}{}
		}

		// Count the shift once for every local hour it touches. The walk
		// advances by absolute time to the next local hour boundary, so the
		// fall-back transition's repeated hour is counted for both
		// occurrences and the spring-forward gap is skipped naturally.
		for t := start; t.Before(end); {
			local := t.In(s.tz)
			key := strconv.Itoa(local.Hour())
			coverage[key]++
			if coverage[key] > maxCoverage {
				maxCoverage = coverage[key]
			}
			intoHour := time.Duration(local.Minute())*time.Minute +
				time.Duration(local.Second())*time.Second +
				time.Duration(local.Nanosecond())
			t = t.Add(time.Hour - intoHour)
		}
	}

	locations := make([]ShiftLocationTotal, 0, len(locs))
	for _, loc := range locs {
		agg := perLocation[loc.ID]
		locations = append(locations, ShiftLocationTotal{
			LocationID:   loc.ID,
			LocationName: loc.Name,
			Shifts:       agg.shifts,
			Hours:        minutesToHours(agg.minutes),
		})
	}

	return &ShiftsResponse{
		Date:            rng.StartDate(s.tz),
		Timezone:        rng.Timezone,
		TotalShifts:     totalShifts,
		TotalHours:      minutesToHours(totalMinutes),
		WorkersCount:    len(workers),
		Locations:       locations,
		HourlyCoverage:  coverage,
		MaxHourCoverage: maxCoverage,
	}, nil
}

func minutesToHours(minutes int64) decimal.Decimal {
	return decimal.NewFromInt(minutes).Div(sixtyMinutes).Round(2)
}
