// Package models defines the network data model shared across packages
package models

import (
	"errors"
	"time"
)

// ErrIntegrity marks graph data that references something outside the graph
// or otherwise breaks the graph invariants.
var ErrIntegrity = errors.New("network integrity fault")

// NodeKind distinguishes stations from stops
type NodeKind int

const (
	KindStation NodeKind = iota
	KindStop
)

func (k NodeKind) String() string {
	switch k {
	case KindStation:
		return "station"
	case KindStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Node is implemented by Station and Stop
type Node interface {
	NodeID() string
	Kind() NodeKind
}

// SameNode reports whether a and b are the same network node
func SameNode(a, b Node) bool {
	return a.Kind() == b.Kind() && a.NodeID() == b.NodeID()
}

// RouteOption is a single priced, directed edge
type RouteOption struct {
	ID          string  `json:"id"`
	Destination string  `json:"destination"`
	Fare        float64 `json:"fare"`
}

// Station has outgoing edges to other stations (connections) and to stops
// (destinations)
type Station struct {
	ID           string        `json:"id"`
	Connections  []RouteOption `json:"connections,omitempty"`
	Destinations []RouteOption `json:"destinations,omitempty"`
}

func (s Station) NodeID() string { return s.ID }
func (s Station) Kind() NodeKind { return KindStation }

// Stop is a leaf of the network
type Stop struct {
	ID string `json:"id"`
}

func (s Stop) NodeID() string { return s.ID }
func (s Stop) Kind() NodeKind { return KindStop }

// NetworkInfo identifies a network build
type NetworkInfo struct {
	Name      string    `json:"name"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// RouteInfo is the metadata of a computed route
type RouteInfo struct {
	CreatedAt time.Time `json:"created_at"`
	Fare      float64   `json:"fare"`
}

// Route is a path from a station through intermediate stations to a stop.
// Connections is in travel order and is empty for a direct route.
type Route struct {
	Station     string    `json:"station"`
	Stop        string    `json:"stop"`
	Connections []string  `json:"connections"`
	Info        RouteInfo `json:"route_info"`
}

// NewRoute stamps a route with the given creation time and total fare
func NewRoute(station, stop string, connections []string, createdAt time.Time, fare float64) Route {
	if connections == nil {
		connections = []string{}
	}
	return Route{
		Station:     station,
		Stop:        stop,
		Connections: connections,
		Info:        RouteInfo{CreatedAt: createdAt, Fare: fare},
	}
}

// Hops returns the number of intermediate stations
func (r Route) Hops() int {
	return len(r.Connections)
}
