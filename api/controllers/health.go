package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrJigi/mechhive-assignment-app/api/responses"
	"github.com/MrJigi/mechhive-assignment-app/pkg/config"
	"github.com/MrJigi/mechhive-assignment-app/pkg/logger"
	"github.com/MrJigi/mechhive-assignment-app/pkg/redis"
)

const envHeader = "X-Shopfront-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports per-dependency state. The service stays ready even
// when the upstream is down because listings degrade to the offline
// fallback catalog; the checks exist for operators, not for routing.
func HealthReady(cfg *config.Config, logg *logger.Logger, svc interface{ UpstreamReady() bool }, redisClient redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		checks := map[string]string{}

		if svc != nil && svc.UpstreamReady() {
			checks["upstream"] = "configured"
		} else {
			checks["upstream"] = "fallback"
		}

		if redisClient != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := redisClient.Ping(ctx); err != nil {
				checks["redis"] = "error"
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "redis ping failed")
				}
			} else {
				checks["redis"] = "ok"
			}
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
