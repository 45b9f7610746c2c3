package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/medfinder/medfinder/internal/database"
)

// HealthHandler answers liveness and readiness probes.
type HealthHandler struct {
	db    *database.PostgresDB
	redis *database.RedisDB
}

func NewHealthHandler(db *database.PostgresDB, redis *database.RedisDB) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health reports overall status including dependency checks.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{
		"postgres": "ok",
		"redis":    "ok",
	}
	status := http.StatusOK

	if err := h.db.Health(ctx); err != nil {
		checks["postgres"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := h.redis.Health(ctx); err != nil {
		checks["redis"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	resp := HealthResponse{Status: "ok", Checks: checks}
	if status != http.StatusOK {
		resp.Status = "degraded"
	}
	writeJSON(w, status, resp)
}

// Ready reports whether the service can serve traffic.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.Health(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "not ready"})
		return
	}
	if err := h.redis.Health(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "not ready"})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "ready"})
}

// Live reports process liveness only; it never touches dependencies.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "alive"})
}
