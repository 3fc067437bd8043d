package reports

import (
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/cafephin/dashboard-backend/pkg/errors"
)

// PeriodKind is the calendar granularity a dashboard report covers.
type PeriodKind string

const (
	PeriodDay   PeriodKind = "day"
	PeriodWeek  PeriodKind = "week"
	PeriodMonth PeriodKind = "month"
	PeriodYear  PeriodKind = "year"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
	yearLayout  = "2006"
)

// TimeRange is a half-open UTC window [BeginUTC, EndUTC) resolved from a
// calendar period in the store timezone. Derived once, never mutated.
type TimeRange struct {
	BeginUTC time.Time
	EndUTC   time.Time
	Label    string
	Timezone string
}

// StartDate returns the first local calendar date of the range.
func (r TimeRange) StartDate(loc *time.Location) string {
	return r.BeginUTC.In(loc).Format(dayLayout)
}

// EndDate returns the last local calendar date of the range (inclusive).
func (r TimeRange) EndDate(loc *time.Location) string {
	return r.EndUTC.In(loc).Add(-time.Second).Format(dayLayout)
}

// ResolvePeriod turns a period token into a UTC query window. Boundaries are
// computed from calendar components in the store timezone, so DST-transition
// days resolve to 23 or 25 real hours. Weeks start on Monday (ISO 8601).
func ResolvePeriod(kind PeriodKind, value string, loc *time.Location) (TimeRange, error) {
	if loc == nil {
		return TimeRange{}, pkgerrors.New(pkgerrors.CodeConfiguration, "store timezone not loaded")
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return TimeRange{}, missingPeriodErr(kind)
	}

	switch kind {
	case PeriodDay:
		day, err := time.ParseInLocation(dayLayout, value, loc)
		if err != nil {
			return TimeRange{}, invalidPeriodErr(kind, value, dayLayout)
		}
		begin := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
		end := time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, loc)
		return newRange(begin, end, value, loc), nil

	case PeriodWeek:
		day, err := time.ParseInLocation(dayLayout, value, loc)
		if err != nil {
			return TimeRange{}, invalidPeriodErr(kind, value, dayLayout)
		}
		offset := (int(day.Weekday()) + 6) % 7 // days since Monday
		begin := time.Date(day.Year(), day.Month(), day.Day()-offset, 0, 0, 0, 0, loc)
		end := time.Date(day.Year(), day.Month(), day.Day()-offset+7, 0, 0, 0, 0, loc)
		label := fmt.Sprintf("%s to %s", begin.Format(dayLayout), end.AddDate(0, 0, -1).Format(dayLayout))
		return newRange(begin, end, label, loc), nil

	case PeriodMonth:
		month, err := time.ParseInLocation(monthLayout, value, loc)
		if err != nil {
			return TimeRange{}, invalidPeriodErr(kind, value, monthLayout)
		}
		begin := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, loc)
		end := time.Date(month.Year(), month.Month()+1, 1, 0, 0, 0, 0, loc)
		return newRange(begin, end, value, loc), nil

	case PeriodYear:
		year, err := time.ParseInLocation(yearLayout, value, loc)
		if err != nil {
			return TimeRange{}, invalidPeriodErr(kind, value, yearLayout)
		}
		begin := time.Date(year.Year(), 1, 1, 0, 0, 0, 0, loc)
		end := time.Date(year.Year()+1, 1, 1, 0, 0, 0, 0, loc)
		return newRange(begin, end, value, loc), nil

	default:
		return TimeRange{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown period kind").
			WithDetails(map[string]any{"kind": string(kind)})
	}
}

// PreviousPeriod resolves the comparison window for a period. Day and week
// shift back seven days so a day always compares against the same weekday;
// month and year re-anchor to the previous calendar month/year rather than a
// fixed day count.
func PreviousPeriod(kind PeriodKind, value string, loc *time.Location) (TimeRange, error) {
	if loc == nil {
		return TimeRange{}, pkgerrors.New(pkgerrors.CodeConfiguration, "store timezone not loaded")
	}
	value = strings.TrimSpace(value)

	switch kind {
	case PeriodDay, PeriodWeek:
		day, err := time.ParseInLocation(dayLayout, value, loc)
		if err != nil {
			return TimeRange{}, invalidPeriodErr(kind, value, dayLayout)
		}
		return ResolvePeriod(kind, day.AddDate(0, 0, -7).Format(dayLayout), loc)

	case PeriodMonth:
		month, err := time.ParseInLocation(monthLayout, value, loc)
		if err != nil {
			return TimeRange{}, invalidPeriodErr(kind, value, monthLayout)
		}
		prev := time.Date(month.Year(), month.Month()-1, 1, 0, 0, 0, 0, loc)
		return ResolvePeriod(kind, prev.Format(monthLayout), loc)

	case PeriodYear:
		year, err := time.ParseInLocation(yearLayout, value, loc)
		if err != nil {
			return TimeRange{}, invalidPeriodErr(kind, value, yearLayout)
		}
		return ResolvePeriod(kind, fmt.Sprintf("%04d", year.Year()-1), loc)

	default:
		return TimeRange{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown period kind").
			WithDetails(map[string]any{"kind": string(kind)})
	}
}

func newRange(begin, end time.Time, label string, loc *time.Location) TimeRange {
	return TimeRange{
		BeginUTC: begin.UTC(),
		EndUTC:   end.UTC(),
		Label:    label,
		Timezone: loc.String(),
	}
}

func missingPeriodErr(kind PeriodKind) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("missing %s parameter", paramName(kind)))
}

func invalidPeriodErr(kind PeriodKind, value, layout string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid %s parameter", paramName(kind))).
		WithDetails(map[string]any{"value": value, "expected": layout})
}

func paramName(kind PeriodKind) string {
	switch kind {
	case PeriodDay:
		return "date"
	case PeriodWeek:
		return "week"
	case PeriodMonth:
		return "month"
	case PeriodYear:
		return "year"
	default:
		return "period"
	}
}
