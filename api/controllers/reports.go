package controllers

import (
	"context"
	"net/http"

	"github.com/cafephin/dashboard-backend/api/responses"
	"github.com/cafephin/dashboard-backend/internal/insights"
	"github.com/cafephin/dashboard-backend/internal/reports"
	"github.com/cafephin/dashboard-backend/pkg/logger"
)

// ReportsService is the reporting surface the handlers call.
type ReportsService interface {
	DailySales(ctx context.Context, date string) (*reports.DailySalesResponse, error)
	PeriodSales(ctx context.Context, kind reports.PeriodKind, value string) (*reports.PeriodSalesResponse, error)
	HourlySales(ctx context.Context, kind reports.PeriodKind, value string, comparePrev bool) (*reports.HourlySalesResponse, error)
	Items(ctx context.Context, kind reports.PeriodKind, value string) (*reports.ItemsResponse, error)
	DailyRefunds(ctx context.Context, date string) (*reports.DailySalesResponse, error)
	PeriodRefunds(ctx context.Context, kind reports.PeriodKind, value string) (*reports.PeriodSalesResponse, error)
	Shifts(ctx context.Context, date string) (*reports.ShiftsResponse, error)
}

// InsightsService is the narrative surface.
type InsightsService interface {
	Daily(ctx context.Context, date string) (*insights.Insight, error)
}

func Sales(svc ReportsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		result, err := svc.DailySales(ctx, periodValue(r, reports.PeriodDay))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func SalesPeriod(svc ReportsService, logg *logger.Logger, kind reports.PeriodKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		result, err := svc.PeriodSales(ctx, kind, periodValue(r, kind))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func SalesHourly(svc ReportsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, value := hourlyPeriod(r)
		result, err := svc.HourlySales(ctx, kind, value, boolParam(r, "comparePrev"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func Items(svc ReportsService, logg *logger.Logger, kind reports.PeriodKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		result, err := svc.Items(ctx, kind, periodValue(r, kind))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func Refunds(svc ReportsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		result, err := svc.DailyRefunds(ctx, periodValue(r, reports.PeriodDay))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func RefundsPeriod(svc ReportsService, logg *logger.Logger, kind reports.PeriodKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		result, err := svc.PeriodRefunds(ctx, kind, periodValue(r, kind))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func Shifts(svc ReportsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		result, err := svc.Shifts(ctx, periodValue(r, reports.PeriodDay))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func Insights(svc InsightsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		result, err := svc.Daily(ctx, periodValue(r, reports.PeriodDay))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
