// Package handlers contains HTTP request handlers
package handlers

import (
	"net/http"
	"time"
)

type HealthHandler struct {
	startTime time.Time
	network   NetworkProvider
}

func NewHealthHandler(network NetworkProvider) *HealthHandler {
	return &HealthHandler{startTime: time.Now(), network: network}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	info := h.network.Info()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   "1.0.0",
		"uptime":    time.Since(h.startTime).String(),
		"network": map[string]any{
			"name":    info.Name,
			"version": info.Version,
		},
	})
}
