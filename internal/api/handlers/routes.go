package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/randytsao24/navnet/internal/feed"
	"github.com/randytsao24/navnet/internal/location"
	"github.com/randytsao24/navnet/internal/models"
	"github.com/randytsao24/navnet/internal/network"
)

type RouteHandler struct {
	network NetworkProvider
}

func NewRouteHandler(network NetworkProvider) *RouteHandler {
	return &RouteHandler{network: network}
}

// GetRoute returns the cheapest route between a station and a stop
func (h *RouteHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	stationID := r.PathValue("station")
	stopID := r.PathValue("stop")

	g := h.network.Graph()
	station, ok := g.Station(stationID)
	if !ok {
		WriteError(w, http.StatusNotFound, "Station not found", "Station "+stationID+" is not part of the network")
		return
	}
	stop, ok := g.Stop(stopID)
	if !ok {
		WriteError(w, http.StatusNotFound, "Stop not found", "Stop "+stopID+" is not part of the network")
		return
	}

	route, found, err := h.network.FindRoute(r.Context(), station, stop)
	if err != nil {
		h.failed(w, r, err)
		return
	}
	h.writeRoute(w, route, found)
}

// GetPreferredRoute routes between the preferred station at from and the
// preferred stop at to
func (h *RouteHandler) GetPreferredRoute(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseEndpoints(w, r)
	if !ok {
		return
	}

	route, found, err := h.network.FindPreferredRoute(r.Context(), from, to)
	if err != nil {
		h.failed(w, r, err)
		return
	}
	h.writeRoute(w, route, found)
}

// GetAvailableRoutes lists every route between the stations at from and the
// stops at to, as JSON or as a GTFS-realtime feed
func (h *RouteHandler) GetAvailableRoutes(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseEndpoints(w, r)
	if !ok {
		return
	}

	routes, err := h.network.FindAvailableRoutes(r.Context(), from, to)
	if err != nil {
		h.failed(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "gtfsrt" {
		data, err := feed.Marshal(h.network.Info(), routes, time.Now())
		if err != nil {
			h.failed(w, r, err)
			return
		}
		w.Header().Set("Content-Type", feed.ContentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	cheapest := -1
	for i, route := range routes {
		if cheapest < 0 || route.Info.Fare < routes[cheapest].Info.Fare {
			cheapest = i
		}
	}
	var best any
	if cheapest >= 0 {
		best = routes[cheapest]
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"from":     from,
		"to":       to,
		"routes":   routes,
		"cheapest": best,
		"metadata": map[string]any{
			"routes_found": len(routes),
		},
	})
}

func (h *RouteHandler) writeRoute(w http.ResponseWriter, route models.Route, found bool) {
	if !found {
		WriteError(w, http.StatusNotFound, "No route", "No route connects the requested nodes")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"route":   route,
		"hops":    route.Hops(),
	})
}

func (h *RouteHandler) failed(w http.ResponseWriter, r *http.Request, err error) {
	var unreachable *network.UnreachableError
	switch {
	case errors.As(err, &unreachable):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      "Coordinate not serviced",
			"message":    err.Error(),
			"stage":      unreachable.Kind.String(),
			"coordinate": unreachable.Coordinate,
			"network":    unreachable.Network,
		})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		WriteError(w, http.StatusServiceUnavailable, "Route search cancelled", err.Error())
	default:
		slog.Error("route search failed", "path", r.URL.Path, "error", err)
		WriteError(w, http.StatusInternalServerError, "Route search failed", err.Error())
	}
}

func parseEndpoints(w http.ResponseWriter, r *http.Request) (from, to location.Point, ok bool) {
	from, err := parsePointQuery(r, "from")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid from coordinate", err.Error())
		return from, to, false
	}
	to, err = parsePointQuery(r, "to")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid to coordinate", err.Error())
		return from, to, false
	}
	return from, to, true
}
