package controllers

import (
	"net/http"
	"strings"

	"github.com/cafephin/dashboard-backend/internal/reports"
)

func periodParamName(kind reports.PeriodKind) string {
	switch kind {
	case reports.PeriodWeek:
		return "week"
	case reports.PeriodMonth:
		return "month"
	case reports.PeriodYear:
		return "year"
	default:
		return "date"
	}
}

// periodValue reads the period token for kind. An absent parameter passes
// through empty so the period resolver reports it as a validation error.
func periodValue(r *http.Request, kind reports.PeriodKind) string {
	return strings.TrimSpace(r.URL.Query().Get(periodParamName(kind)))
}

// hourlyPeriod picks the hourly report's granularity from whichever period
// parameter is present, narrowest first. No parameter resolves as a
// missing date.
func hourlyPeriod(r *http.Request) (reports.PeriodKind, string) {
	query := r.URL.Query()
	for _, kind := range []reports.PeriodKind{reports.PeriodDay, reports.PeriodWeek, reports.PeriodMonth, reports.PeriodYear} {
		if raw := strings.TrimSpace(query.Get(periodParamName(kind))); raw != "" {
			return kind, raw
		}
	}
	return reports.PeriodDay, ""
}

func boolParam(r *http.Request, name string) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(name))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
