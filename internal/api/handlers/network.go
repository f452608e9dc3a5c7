package handlers

import (
	"net/http"
	"slices"

	"github.com/randytsao24/navnet/internal/location"
)

const (
	defaultRadius = 1600 // ~1 mile in meters
	maxRadius     = 8000 // ~5 miles
	minRadius     = 50
)

type NetworkHandler struct {
	network          NetworkProvider
	stationPositions []location.Placed
	stopPositions    []location.Placed
}

func NewNetworkHandler(network NetworkProvider, stationPositions, stopPositions []location.Placed) *NetworkHandler {
	return &NetworkHandler{
		network:          network,
		stationPositions: stationPositions,
		stopPositions:    stopPositions,
	}
}

// GetInfo describes the served network
func (h *NetworkHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	g := h.network.Graph()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"network":  h.network.Info(),
		"strategy": h.network.Strategy().String(),
		"coverage": map[string]any{
			"stations":        g.StationCount(),
			"stops":           g.StopCount(),
			"placed_stations": len(h.stationPositions),
			"placed_stops":    len(h.stopPositions),
		},
	})
}

// GetStations lists the stations servicing a coordinate
func (h *NetworkHandler) GetStations(w http.ResponseWriter, r *http.Request) {
	at, err := parseLatLng(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid coordinates", err.Error())
		return
	}

	available := slices.Collect(h.network.AvailableStations(at))
	var preferred any
	if s, ok := h.network.PreferredStation(at); ok {
		preferred = s.ID
	}

	radius := parseIntParam(r, "radius", defaultRadius, minRadius, maxRadius)
	nearby := location.Nearby(at, h.stationPositions, float64(radius))

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"location":      at,
		"stations":      available,
		"preferred":     preferred,
		"nearby":        nearby,
		"radius_meters": radius,
		"metadata": map[string]any{
			"stations_found": len(available),
		},
	})
}

// GetStops lists the stops servicing a coordinate
func (h *NetworkHandler) GetStops(w http.ResponseWriter, r *http.Request) {
	at, err := parseLatLng(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid coordinates", err.Error())
		return
	}

	available := slices.Collect(h.network.AvailableStops(at))
	var preferred any
	if s, ok := h.network.PreferredStop(at); ok {
		preferred = s.ID
	}

	radius := parseIntParam(r, "radius", defaultRadius, minRadius, maxRadius)
	nearby := location.Nearby(at, h.stopPositions, float64(radius))

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"location":      at,
		"stops":         available,
		"preferred":     preferred,
		"nearby":        nearby,
		"radius_meters": radius,
		"metadata": map[string]any{
			"stops_found": len(available),
		},
	})
}
