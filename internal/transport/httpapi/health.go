package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Pinger is anything whose reachability /healthz reports.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus is the /healthz response body.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

const healthCheckTimeout = 2 * time.Second

// health reports "ok", "degraded" when only the cache is down (reads still
// work from the store), or "unavailable" with 503 when the store is down.
type health struct {
	store  Pinger
	cache  Pinger
	logger *slog.Logger
}

func (h health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := HealthStatus{Status: "ok", Checks: map[string]string{"store": "ok", "cache": "ok"}}
	code := http.StatusOK

	if err := h.store.Ping(ctx); err != nil {
		h.logger.ErrorContext(ctx, "store health check failed", "error", err)
		status.Checks["store"] = "unavailable"
		status.Status = "unavailable"
		code = http.StatusServiceUnavailable
	}
	if h.cache == nil {
		status.Checks["cache"] = "disabled"
	} else if err := h.cache.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "cache health check failed", "error", err)
		status.Checks["cache"] = "unavailable"
		if code == http.StatusOK {
			status.Status = "degraded"
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(status)
}
