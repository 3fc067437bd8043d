package controllers

import (
	"net/http"

	"github.com/cafephin/dashboard-backend/api/responses"
	"github.com/cafephin/dashboard-backend/pkg/config"
	"github.com/cafephin/dashboard-backend/pkg/logger"
	"github.com/cafephin/dashboard-backend/pkg/redis"
)

const envHeader = "X-Phin-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports per-dependency readiness. The Square API is not
// probed; a dead upstream surfaces on report requests, not on the probe.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisPinger redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		checks := map[string]string{}
		ready := true

		if redisPinger != nil {
			if err := redisPinger.Ping(r.Context()); err != nil {
				checks["redis"] = err.Error()
				ready = false
				if logg != nil {
					logg.Warn(r.Context(), "readiness check failed: redis")
				}
			} else {
				checks["redis"] = "ok"
			}
		}

		status := "ready"
		httpStatus := http.StatusOK
		if !ready {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, httpStatus, map[string]any{
			"status": status,
			"checks": checks,
		})
	}
}
