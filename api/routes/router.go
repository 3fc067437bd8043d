package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cafephin/dashboard-backend/api/controllers"
	"github.com/cafephin/dashboard-backend/api/middleware"
	"github.com/cafephin/dashboard-backend/internal/reports"
	"github.com/cafephin/dashboard-backend/pkg/config"
	"github.com/cafephin/dashboard-backend/pkg/logger"
	"github.com/cafephin/dashboard-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisPinger redis.Pinger,
	registry *prometheus.Registry,
	reportsService controllers.ReportsService,
	insightsService controllers.InsightsService,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.Dashboard.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisPinger))
	})

	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Passcode(cfg.Dashboard.Passcode, logg))

		r.Get("/sales", controllers.Sales(reportsService, logg))
		r.Get("/sales/weekly", controllers.SalesPeriod(reportsService, logg, reports.PeriodWeek))
		r.Get("/sales/monthly", controllers.SalesPeriod(reportsService, logg, reports.PeriodMonth))
		r.Get("/sales/yearly", controllers.SalesPeriod(reportsService, logg, reports.PeriodYear))
		r.Get("/sales/hourly", controllers.SalesHourly(reportsService, logg))

		r.Get("/items/daily", controllers.Items(reportsService, logg, reports.PeriodDay))
		r.Get("/items/weekly", controllers.Items(reportsService, logg, reports.PeriodWeek))
		r.Get("/items/monthly", controllers.Items(reportsService, logg, reports.PeriodMonth))
		r.Get("/items/yearly", controllers.Items(reportsService, logg, reports.PeriodYear))

		r.Get("/refunds", controllers.Refunds(reportsService, logg))
		r.Get("/refunds/weekly", controllers.RefundsPeriod(reportsService, logg, reports.PeriodWeek))
		r.Get("/refunds/monthly", controllers.RefundsPeriod(reportsService, logg, reports.PeriodMonth))
		r.Get("/refunds/yearly", controllers.RefundsPeriod(reportsService, logg, reports.PeriodYear))

		r.Get("/shifts", controllers.Shifts(reportsService, logg))
		r.Get("/insights", controllers.Insights(insightsService, logg))
	})

	return r
}
