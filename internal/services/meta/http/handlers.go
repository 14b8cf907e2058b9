// Package http provides the unauthenticated identity and health endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"playerpulse/internal/core/version"
	"playerpulse/internal/modkit/httpkit"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// SchedulerStatus reports whether the job scheduler is running
type SchedulerStatus interface {
	Running() bool
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	DB          Pinger
	Scheduler   SchedulerStatus
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes at the router root
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/", h.identity)
	httpkit.Get(r, "/health", h.health)
}

// IdentityResponse names the service and its build
type IdentityResponse struct {
	Service string `json:"service" example:"playerpulse-api"`
	Version string `json:"version" example:"dev"`
	Started string `json:"started" example:"2026-08-25T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// HealthResponse reports dependency status
type HealthResponse struct {
	DB        string `json:"db"        example:"connected"`
	Scheduler string `json:"scheduler" example:"running"`
}

// @Summary Service identity and version
// @Tags Meta
// @Produce json
// @Success 200 {object} IdentityResponse "ok"
// @Router / [get]
func (h *handlers) identity(_ *http.Request) (any, error) {
	return IdentityResponse{
		Service: h.deps.ServiceName,
		Version: version.Info().Version,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt).Seconds()),
	}, nil
}

// @Summary Health of the database and scheduler
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	out := HealthResponse{DB: "disconnected", Scheduler: "stopped"}

	if h.deps.DB != nil {
		ctx, cancel := stdctx.WithTimeout(stdctx.Background(), 2*time.Second)
		defer cancel()
		if err := h.deps.DB.Ping(ctx); err == nil {
			out.DB = "connected"
		}
	}
	if h.deps.Scheduler != nil && h.deps.Scheduler.Running() {
		out.Scheduler = "running"
	}
	return out, nil
}
