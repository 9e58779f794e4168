package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Pinger reports whether the remote API answers. *api.Client implements it.
type Pinger interface {
	Ping(ctx context.Context) (int, error)
}

// HealthHandler reports service status
type HealthHandler struct {
	api     Pinger
	service string
}

// NewHealthHandler creates a new health handler. api may be nil, in which
// case the remote API is not checked.
func NewHealthHandler(service string, api Pinger) *HealthHandler {
	return &HealthHandler{api: api, service: service}
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	API     string `json:"api,omitempty"`
}

// Health answers 200 while the API is reachable and 503 otherwise
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Service: h.service}
	status := http.StatusOK

	if h.api != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		code, err := h.api.Ping(ctx)
		switch {
		case err != nil:
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("API health check failed")
			resp.Status, resp.API = "degraded", "unreachable"
			status = http.StatusServiceUnavailable
		case code >= http.StatusInternalServerError:
			resp.Status, resp.API = "degraded", http.StatusText(code)
			status = http.StatusServiceUnavailable
		default:
			resp.API = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write health response")
	}
}
