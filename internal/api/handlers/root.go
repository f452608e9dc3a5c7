package handlers

import (
	"net/http"
)

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "navnet",
		"description": "Station and stop lookup with fare based route finding",
		"version":     "1.0.0",
		"endpoints": map[string]string{
			"GET /api":                        "API information",
			"GET /health":                     "Health check",
			"GET /network":                    "Network identity, strategy and size",
			"GET /network/stations?lat=&lng=": "Stations servicing a coordinate",
			"GET /network/stops?lat=&lng=":    "Stops servicing a coordinate",
			"GET /routes/{station}/{stop}":    "Cheapest route between a station and a stop",
			"GET /routes/preferred?from=&to=": "Route between the preferred nodes of two coordinates",
			"GET /routes/available?from=&to=": "Every route between two coordinates (format=gtfsrt for protobuf)",
		},
	})
}

func (h *RootHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":   "Route not found",
		"message": "Check the /api endpoint for available routes",
	})
}
