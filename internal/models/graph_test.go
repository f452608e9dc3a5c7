package models

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestNewGraph(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stations []Station
		stops    []Stop
		wantErr  bool
	}{
		{
			name: "valid graph with forward connection",
			stations: []Station{
				{ID: "A", Connections: []RouteOption{{ID: "a-b", Destination: "B", Fare: 1}}},
				{ID: "B", Destinations: []RouteOption{{ID: "b-t", Destination: "T", Fare: 2}}},
			},
			stops: []Stop{{ID: "T"}},
		},
		{
			name:  "empty graph",
			stops: nil,
		},
		{
			name:     "duplicate station",
			stations: []Station{{ID: "A"}, {ID: "A"}},
			wantErr:  true,
		},
		{
			name:    "duplicate stop",
			stops:   []Stop{{ID: "T"}, {ID: "T"}},
			wantErr: true,
		},
		{
			name:     "empty station id",
			stations: []Station{{ID: ""}},
			wantErr:  true,
		},
		{
			name:     "connection outside the graph",
			stations: []Station{{ID: "A", Connections: []RouteOption{{Destination: "Z", Fare: 1}}}},
			wantErr:  true,
		},
		{
			name:     "connection to a stop",
			stations: []Station{{ID: "A", Connections: []RouteOption{{Destination: "T", Fare: 1}}}},
			stops:    []Stop{{ID: "T"}},
			wantErr:  true,
		},
		{
			name:     "destination outside the graph",
			stations: []Station{{ID: "A", Destinations: []RouteOption{{Destination: "T", Fare: 1}}}},
			wantErr:  true,
		},
		{
			name:     "negative fare",
			stations: []Station{{ID: "A", Destinations: []RouteOption{{Destination: "T", Fare: -1}}}},
			stops:    []Stop{{ID: "T"}},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGraph(tt.stations, tt.stops)
			if tt.wantErr {
				if !errors.Is(err, ErrIntegrity) {
					t.Fatalf("NewGraph() error = %v, want ErrIntegrity", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewGraph() error = %v", err)
			}
			if g.StationCount() != len(tt.stations) || g.StopCount() != len(tt.stops) {
				t.Fatalf("counts = %d/%d, want %d/%d", g.StationCount(), g.StopCount(), len(tt.stations), len(tt.stops))
			}
		})
	}
}

func TestGraphPreservesOrderAndLookup(t *testing.T) {
	t.Parallel()

	g, err := NewGraph(
		[]Station{{ID: "S3"}, {ID: "S1"}, {ID: "S2"}},
		[]Stop{{ID: "T2"}, {ID: "T1"}},
	)
	if err != nil {
		t.Fatalf("NewGraph() error = %v", err)
	}

	var ids []string
	for _, s := range g.Stations() {
		ids = append(ids, s.ID)
	}
	if want := []string{"S3", "S1", "S2"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("Stations() order = %v, want %v", ids, want)
	}

	if _, ok := g.Station("S1"); !ok {
		t.Fatal("Station(S1) not found")
	}
	if _, ok := g.Stop("S1"); ok {
		t.Fatal("Stop(S1) found a station id")
	}
}

func TestGraphJSON(t *testing.T) {
	t.Parallel()

	g, err := NewGraph(
		[]Station{
			{ID: "A", Connections: []RouteOption{{ID: "a-b", Destination: "B", Fare: 1.5}}},
			{ID: "B", Destinations: []RouteOption{{ID: "b-t", Destination: "T", Fare: 2}}},
		},
		[]Stop{{ID: "T"}},
	)
	if err != nil {
		t.Fatalf("NewGraph() error = %v", err)
	}

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Graph
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(decoded.Stations(), g.Stations()) || !reflect.DeepEqual(decoded.Stops(), g.Stops()) {
		t.Fatalf("decoded graph = %+v, want %+v", decoded.Stations(), g.Stations())
	}

	bad := []byte(`{"stations":[{"id":"A","destinations":[{"destination":"nowhere","fare":1}]}],"stops":[]}`)
	if err := json.Unmarshal(bad, &decoded); !errors.Is(err, ErrIntegrity) {
		t.Fatalf("Unmarshal(dangling) error = %v, want ErrIntegrity", err)
	}
}

func TestRouteJSONFieldNames(t *testing.T) {
	t.Parallel()

	r := NewRoute("A", "T", nil, time.Unix(100, 0).UTC(), 3)
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, field := range []string{"station", "stop", "connections", "route_info"} {
		if _, ok := m[field]; !ok {
			t.Errorf("missing field %q in %s", field, data)
		}
	}
	if conns, ok := m["connections"].([]any); !ok || len(conns) != 0 {
		t.Errorf("connections = %v, want empty array", m["connections"])
	}
}

func TestSameNode(t *testing.T) {
	t.Parallel()

	if !SameNode(Station{ID: "X"}, Station{ID: "X", Connections: []RouteOption{{Destination: "Y"}}}) {
		t.Error("stations with the same id should be the same node")
	}
	if SameNode(Station{ID: "X"}, Stop{ID: "X"}) {
		t.Error("a station and a stop sharing an id are different nodes")
	}
}
