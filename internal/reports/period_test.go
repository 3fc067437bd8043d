package reports

import (
	"testing"
	"time"

	pkgerrors "github.com/cafephin/dashboard-backend/pkg/errors"
)

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return loc
}

func TestResolvePeriodDayLengths(t *testing.T) {
	eastern := mustLoadLocation(t, "America/New_York")

	tests := []struct {
		name  string
		value string
		hours time.Duration
	}{
		{name: "ordinary day", value: "2025-06-10", hours: 24 * time.Hour},
		{name: "spring forward", value: "2025-03-09", hours: 23 * time.Hour},
		{name: "fall back", value: "2025-11-02", hours: 25 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := ResolvePeriod(PeriodDay, tt.value, eastern)
			if err != nil {
				t.Fatalf("ResolvePeriod: %v", err)
			}
			if got := rng.EndUTC.Sub(rng.BeginUTC); got != tt.hours {
				t.Errorf("day length = %v, want %v", got, tt.hours)
			}
			if rng.StartDate(eastern) != tt.value {
				t.Errorf("StartDate = %s, want %s", rng.StartDate(eastern), tt.value)
			}
		})
	}
}

func TestResolvePeriodWeekStartsMonday(t *testing.T) {
	chicago := mustLoadLocation(t, "America/Chicago")

	// 2025-03-12 is a Wednesday; its week runs Mon 03-10 through Sun 03-16.
	rng, err := ResolvePeriod(PeriodWeek, "2025-03-12", chicago)
	if err != nil {
		t.Fatalf("ResolvePeriod: %v", err)
	}
	if got := rng.StartDate(chicago); got != "2025-03-10" {
		t.Errorf("week start = %s, want 2025-03-10", got)
	}
	if got := rng.EndDate(chicago); got != "2025-03-16" {
		t.Errorf("week end = %s, want 2025-03-16", got)
	}
	if begin := rng.BeginUTC.In(chicago); begin.Weekday() != time.Monday {
		t.Errorf("week begins on %s, want Monday", begin.Weekday())
	}

	// A Monday resolves to itself.
	rng, err = ResolvePeriod(PeriodWeek, "2025-03-10", chicago)
	if err != nil {
		t.Fatalf("ResolvePeriod: %v", err)
	}
	if got := rng.StartDate(chicago); got != "2025-03-10" {
		t.Errorf("monday week start = %s, want 2025-03-10", got)
	}
}

func TestResolvePeriodMonthLengths(t *testing.T) {
	chicago := mustLoadLocation(t, "America/Chicago")

	tests := []struct {
		value string
		days  int
	}{
		{value: "2025-02", days: 28},
		{value: "2024-02", days: 29},
		{value: "2025-01", days: 31},
		{value: "2025-04", days: 30},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			rng, err := ResolvePeriod(PeriodMonth, tt.value, chicago)
			if err != nil {
				t.Fatalf("ResolvePeriod: %v", err)
			}
			begin := rng.BeginUTC.In(chicago)
			end := rng.EndUTC.In(chicago)
			days := 0
			for d := begin; d.Before(end); d = d.AddDate(0, 0, 1) {
				days++
			}
			if days != tt.days {
				t.Errorf("month days = %d, want %d", days, tt.days)
			}
		})
	}
}

func TestResolvePeriodValidation(t *testing.T) {
	chicago := mustLoadLocation(t, "America/Chicago")

	tests := []struct {
		name  string
		kind  PeriodKind
		value string
	}{
		{name: "empty date", kind: PeriodDay, value: ""},
		{name: "garbage date", kind: PeriodDay, value: "yesterday"},
		{name: "wrong layout month", kind: PeriodMonth, value: "2025-02-01"},
		{name: "wrong layout year", kind: PeriodYear, value: "25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolvePeriod(tt.kind, tt.value, chicago)
			if err == nil {
				t.Fatal("expected an error")
			}
			appErr := pkgerrors.As(err)
			if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
				t.Errorf("error = %v, want code %s", err, pkgerrors.CodeValidation)
			}
		})
	}

	if _, err := ResolvePeriod(PeriodDay, "2025-06-10", nil); err == nil {
		t.Error("expected an error for nil timezone")
	}
}

func TestPreviousPeriod(t *testing.T) {
	chicago := mustLoadLocation(t, "America/Chicago")

	tests := []struct {
		name      string
		kind      PeriodKind
		value     string
		wantStart string
		wantEnd   string
	}{
		{name: "day compares same weekday", kind: PeriodDay, value: "2025-06-10", wantStart: "2025-06-03", wantEnd: "2025-06-03"},
		{name: "week shifts back seven days", kind: PeriodWeek, value: "2025-03-12", wantStart: "2025-03-03", wantEnd: "2025-03-09"},
		{name: "month re-anchors", kind: PeriodMonth, value: "2025-03", wantStart: "2025-02-01", wantEnd: "2025-02-28"},
		{name: "month crosses year boundary", kind: PeriodMonth, value: "2025-01", wantStart: "2024-12-01", wantEnd: "2024-12-31"},
		{name: "year re-anchors", kind: PeriodYear, value: "2025", wantStart: "2024-01-01", wantEnd: "2024-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := PreviousPeriod(tt.kind, tt.value, chicago)
			if err != nil {
				t.Fatalf("PreviousPeriod: %v", err)
			}
			if got := rng.StartDate(chicago); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := rng.EndDate(chicago); got != tt.wantEnd {
				t.Errorf("end = %s, want %s", got, tt.wantEnd)
			}
		})
	}
}
