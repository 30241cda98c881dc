package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/dealerhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Pinger reports whether the upstream API answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Upstream Pinger
	Log      *zap.Logger
}

// NewHandler constructs a health Handler with the upstream client and logger.
func NewHandler(up Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		Upstream: up,
		Log:      logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Upstream string `json:"upstream"`
	Message  string `json:"message,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "upstream":"reachable" }
//
// When the upstream does not answer: 503 and
//
//	{ "status":"error", "upstream":"unreachable", "message":"Upstream API unavailable" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	if err := h.Upstream.Ping(ctx); err != nil {
		h.Log.Error("health-check: upstream ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:   "error",
			Upstream: "unreachable",
			Message:  "Upstream API unavailable",
		})
		return
	}

	_ = json.NewEncoder(w).Encode(healthResponse{Status: "ok", Upstream: "reachable"})
}
