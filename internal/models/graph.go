package models

import (
	"encoding/json"
	"fmt"
)

// Graph is an immutable set of stations and stops. Iteration order is the
// order the nodes were declared in.
type Graph struct {
	stations  []Station
	stops     []Stop
	stationAt map[string]int
	stopAt    map[string]int
}

// NewGraph validates the nodes and builds a graph. Every route option must
// point at a node of the right kind inside the graph, ids must be unique
// per kind and fares must be non-negative.
func NewGraph(stations []Station, stops []Stop) (*Graph, error) {
	g := &Graph{
		stations:  make([]Station, 0, len(stations)),
		stops:     make([]Stop, 0, len(stops)),
		stationAt: make(map[string]int, len(stations)),
		stopAt:    make(map[string]int, len(stops)),
	}

	for _, stop := range stops {
		if stop.ID == "" {
			return nil, fmt.Errorf("%w: stop with empty id", ErrIntegrity)
		}
		if _, dup := g.stopAt[stop.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate stop %q", ErrIntegrity, stop.ID)
		}
		g.stopAt[stop.ID] = len(g.stops)
		g.stops = append(g.stops, stop)
	}

	for _, station := range stations {
		if station.ID == "" {
			return nil, fmt.Errorf("%w: station with empty id", ErrIntegrity)
		}
		if _, dup := g.stationAt[station.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate station %q", ErrIntegrity, station.ID)
		}
		g.stationAt[station.ID] = len(g.stations)
		g.stations = append(g.stations, cloneStation(station))
	}

	// Second pass: connections may point forward to stations declared later.
	for _, station := range g.stations {
		for _, opt := range station.Connections {
			if err := checkFare(station.ID, opt); err != nil {
				return nil, err
			}
			if _, ok := g.stationAt[opt.Destination]; !ok {
				return nil, fmt.Errorf("%w: station %q connects to %q which is not a station of the network",
					ErrIntegrity, station.ID, opt.Destination)
			}
		}
		for _, opt := range station.Destinations {
			if err := checkFare(station.ID, opt); err != nil {
				return nil, err
			}
			if _, ok := g.stopAt[opt.Destination]; !ok {
				return nil, fmt.Errorf("%w: station %q serves %q which is not a stop of the network",
					ErrIntegrity, station.ID, opt.Destination)
			}
		}
	}

	return g, nil
}

func checkFare(station string, opt RouteOption) error {
	if opt.Fare < 0 {
		return fmt.Errorf("%w: route option %q from %q to %q has negative fare %v",
			ErrIntegrity, opt.ID, station, opt.Destination, opt.Fare)
	}
	return nil
}

func cloneStation(s Station) Station {
	return Station{
		ID:           s.ID,
		Connections:  append([]RouteOption(nil), s.Connections...),
		Destinations: append([]RouteOption(nil), s.Destinations...),
	}
}

// Stations returns the stations in declaration order. The slice is a copy;
// the route option slices are shared and must not be modified.
func (g *Graph) Stations() []Station {
	return append([]Station(nil), g.stations...)
}

// Stops returns the stops in declaration order
func (g *Graph) Stops() []Stop {
	return append([]Stop(nil), g.stops...)
}

// Station returns a station by id
func (g *Graph) Station(id string) (Station, bool) {
	i, ok := g.stationAt[id]
	if !ok {
		return Station{}, false
	}
	return g.stations[i], true
}

// Stop returns a stop by id
func (g *Graph) Stop(id string) (Stop, bool) {
	i, ok := g.stopAt[id]
	if !ok {
		return Stop{}, false
	}
	return g.stops[i], true
}

// StationCount returns the number of stations
func (g *Graph) StationCount() int { return len(g.stations) }

// StopCount returns the number of stops
func (g *Graph) StopCount() int { return len(g.stops) }

type graphJSON struct {
	Stations []Station `json:"stations"`
	Stops    []Stop    `json:"stops"`
}

// MarshalJSON implements the json.Marshaler interface for Graph
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(graphJSON{Stations: g.stations, Stops: g.stops})
}

// UnmarshalJSON implements the json.Unmarshaler interface for Graph.
// The decoded nodes go through the same validation as NewGraph.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var raw graphJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	built, err := NewGraph(raw.Stations, raw.Stops)
	if err != nil {
		return err
	}
	*g = *built
	return nil
}
