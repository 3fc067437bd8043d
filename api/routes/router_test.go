package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cafephin/dashboard-backend/internal/insights"
	"github.com/cafephin/dashboard-backend/internal/reports"
	"github.com/cafephin/dashboard-backend/pkg/config"
)

type stubReports struct{}

func (stubReports) DailySales(_ context.Context, date string) (*reports.DailySalesResponse, error) {
	return &reports.DailySalesResponse{Date: date}, nil
}

func (stubReports) PeriodSales(_ context.Context, kind reports.PeriodKind, _ string) (*reports.PeriodSalesResponse, error) {
	return &reports.PeriodSalesResponse{Type: string(kind)}, nil
}

func (stubReports) HourlySales(_ context.Context, kind reports.PeriodKind, _ string, _ bool) (*reports.HourlySalesResponse, error) {
	return &reports.HourlySalesResponse{Type: string(kind)}, nil
}

func (stubReports) Items(_ context.Context, kind reports.PeriodKind, _ string) (*reports.ItemsResponse, error) {
	return &reports.ItemsResponse{Type: string(kind)}, nil
}

func (stubReports) DailyRefunds(_ context.Context, date string) (*reports.DailySalesResponse, error) {
	return &reports.DailySalesResponse{Date: date}, nil
}

func (stubReports) PeriodRefunds(_ context.Context, kind reports.PeriodKind, _ string) (*reports.PeriodSalesResponse, error) {
	return &reports.PeriodSalesResponse{Type: string(kind)}, nil
}

func (stubReports) Shifts(_ context.Context, date string) (*reports.ShiftsResponse, error) {
	return &reports.ShiftsResponse{Date: date}, nil
}

type stubInsights struct{}

func (stubInsights) Daily(_ context.Context, date string) (*insights.Insight, error) {
	return &insights.Insight{Date: date, Summary: "fine", Source: insights.SourceRules}, nil
}

func testRouter(t *testing.T, passcode string) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.Dashboard.Passcode = passcode
	return NewRouter(cfg, nil, nil, prometheus.NewRegistry(), stubReports{}, stubInsights{})
}

func TestRouterServesEveryReportRoute(t *testing.T) {
	router := testRouter(t, "")
	paths := []string{
		"/api/sales?date=2025-06-10",
		"/api/sales/weekly?week=2025-03-12",
		"/api/sales/monthly?month=2025-02",
		"/api/sales/yearly?year=2025",
		"/api/sales/hourly?date=2025-06-10&comparePrev=true",
		"/api/items/daily?date=2025-06-10",
		"/api/items/weekly?week=2025-03-12",
		"/api/items/monthly?month=2025-02",
		"/api/items/yearly?year=2025",
		"/api/refunds?date=2025-06-10",
		"/api/refunds/weekly?week=2025-03-12",
		"/api/refunds/monthly?month=2025-02",
		"/api/refunds/yearly?year=2025",
		"/api/shifts?date=2025-06-10",
		"/api/insights?date=2025-06-10",
	}
	for _, path := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestRouterHealthAndMetrics(t *testing.T) {
	router := testRouter(t, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("live = %d", rec.Code)
	}
	if got := rec.Header().Get("X-Phin-Env"); got != "test" {
		t.Errorf("env header = %q", got)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "live" {
		t.Errorf("body = %v", body)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("ready = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("metrics = %d", rec.Code)
	}
}

func TestRouterPasscodeGatesAPIOnly(t *testing.T) {
	router := testRouter(t, "secret")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sales?date=2025-06-10", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated sales = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sales?date=2025-06-10", nil)
	req.Header.Set("X-Dashboard-Passcode", "secret")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated sales = %d, want 200", rec.Code)
	}

	// Probes stay open for the orchestrator.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("live behind passcode = %d, want 200", rec.Code)
	}
}
