// Package network maps coordinates onto the stations and stops of a network
// and answers coordinate level route queries.
package network

import (
	"maps"

	"github.com/randytsao24/navnet/internal/area"
	"github.com/randytsao24/navnet/internal/models"
)

// Coverage holds the service area of every covered station and stop.
// A node without an entry covers nothing.
type Coverage[C any] struct {
	stations map[string]area.Area[C]
	stops    map[string]area.Area[C]
}

// NewCoverage copies the given station and stop areas, keyed by node id
func NewCoverage[C any](stations, stops map[string]area.Area[C]) *Coverage[C] {
	cov := &Coverage[C]{
		stations: make(map[string]area.Area[C], len(stations)),
		stops:    make(map[string]area.Area[C], len(stops)),
	}
	maps.Copy(cov.stations, stations)
	maps.Copy(cov.stops, stops)
	return cov
}

// ContainsStation reports whether station covers c
func (cov *Coverage[C]) ContainsStation(station models.Station, c C) bool {
	return contains(cov.stations, station.ID, c)
}

// ContainsStop reports whether stop covers c
func (cov *Coverage[C]) ContainsStop(stop models.Stop, c C) bool {
	return contains(cov.stops, stop.ID, c)
}

// Contains dispatches on the node kind
func (cov *Coverage[C]) Contains(node models.Node, c C) bool {
	switch node.Kind() {
	case models.KindStation:
		return contains(cov.stations, node.NodeID(), c)
	case models.KindStop:
		return contains(cov.stops, node.NodeID(), c)
	default:
		return false
	}
}

// StationArea returns the area registered for a station id
func (cov *Coverage[C]) StationArea(id string) (area.Area[C], bool) {
	a, ok := cov.stations[id]
	return a, ok
}

// StopArea returns the area registered for a stop id
func (cov *Coverage[C]) StopArea(id string) (area.Area[C], bool) {
	a, ok := cov.stops[id]
	return a, ok
}

func contains[C any](areas map[string]area.Area[C], id string, c C) bool {
	a, ok := areas[id]
	if !ok || a == nil {
		return false
	}
	return a.Contains(c)
}
