package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/randytsao24/navnet/internal/location"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

// errorBody is the JSON shape of every error response
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, status int, title, message string) {
	writeJSON(w, status, errorBody{Error: title, Message: message})
}

// ErrorJSON renders an error response body for writers that take a string,
// such as http.TimeoutHandler.
func ErrorJSON(title, message string) string {
	b, err := json.Marshal(errorBody{Error: title, Message: message})
	if err != nil {
		return `{"error":"Internal Server Error"}`
	}
	return string(b)
}

// parsePointQuery reads a "lat,lng" query parameter
func parsePointQuery(r *http.Request, name string) (location.Point, error) {
	return location.ParsePoint(r.URL.Query().Get(name))
}

// parseLatLng reads separate lat and lng query parameters
func parseLatLng(r *http.Request) (location.Point, error) {
	q := r.URL.Query()
	return location.ParsePoint(q.Get("lat") + "," + q.Get("lng"))
}

func parseIntParam(r *http.Request, name string, defaultVal, min, max int) int {
	str := r.URL.Query().Get(name)
	if str == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return defaultVal
	}

	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
