package netfile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/randytsao24/navnet/internal/location"
	"github.com/randytsao24/navnet/internal/models"
	"github.com/randytsao24/navnet/internal/network"
	"github.com/randytsao24/navnet/internal/routing"
)

var (
	timesSquare = location.Point{Lat: 40.7580, Lng: -73.9855}
	moma        = location.Point{Lat: 40.7614, Lng: -73.9776}
	flatiron    = location.Point{Lat: 40.7411, Lng: -73.9897}
	chelsea     = location.Point{Lat: 40.7424, Lng: -74.0061}
	brooklyn    = location.Point{Lat: 40.6782, Lng: -73.9442}
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openMidtown(t *testing.T) (*network.Network[location.Point], Placement) {
	t.Helper()
	def, err := Load("testdata/midtown.yml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	n, placement, err := def.Open(quietLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = n.Close() })
	return n, placement
}

func TestLoadMidtown(t *testing.T) {
	t.Parallel()

	n, placement := openMidtown(t)

	info := n.Info()
	if info.Name != "midtown" || info.Version != 3 || info.CreatedAt.Year() != 2024 {
		t.Errorf("unexpected info %+v", info)
	}
	if got := n.Graph().StationCount(); got != 4 {
		t.Errorf("expected 4 stations, got %d", got)
	}
	if got := n.Graph().StopCount(); got != 4 {
		t.Errorf("expected 4 stops, got %d", got)
	}
	if want := "cached(minimumFare(direct, dijkstra), 30s)"; n.Strategy().String() != want {
		t.Errorf("expected strategy %s, got %s", want, n.Strategy())
	}
	if len(placement.Stations) != 4 || len(placement.Stops) != 3 {
		t.Errorf("unexpected placement %+v", placement)
	}
}

func TestMidtownCoverage(t *testing.T) {
	t.Parallel()

	n, _ := openMidtown(t)

	tests := []struct {
		name     string
		at       location.Point
		stations []string
		stops    []string
	}{
		{name: "times square", at: timesSquare, stations: []string{"times-sq"}},
		{name: "moma", at: moma, stations: []string{"times-sq"}, stops: []string{"moma"}},
		{name: "flatiron", at: flatiron, stations: []string{"union-sq"}, stops: []string{"flatiron"}},
		{name: "chelsea market", at: chelsea, stops: []string{"chelsea-market"}},
		{name: "brooklyn", at: brooklyn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stations, stops []string
			for s := range n.AvailableStations(tt.at) {
				stations = append(stations, s.ID)
			}
			for s := range n.AvailableStops(tt.at) {
				stops = append(stops, s.ID)
			}
			if !reflect.DeepEqual(stations, tt.stations) {
				t.Errorf("stations = %v, want %v", stations, tt.stations)
			}
			if !reflect.DeepEqual(stops, tt.stops) {
				t.Errorf("stops = %v, want %v", stops, tt.stops)
			}
		})
	}
}

func TestMidtownRoutes(t *testing.T) {
	t.Parallel()

	n, _ := openMidtown(t)
	ctx := context.Background()

	route, ok, err := n.FindPreferredRoute(ctx, timesSquare, moma)
	if err != nil || !ok {
		t.Fatalf("expected a route, got ok=%v err=%v", ok, err)
	}
	if route.Info.Fare != 2.25 || !slices.Equal(route.Connections, []string{"grand-central"}) {
		t.Errorf("expected 2.25 via grand-central, got %v via %v", route.Info.Fare, route.Connections)
	}

	route, ok, err = n.FindPreferredRoute(ctx, timesSquare, flatiron)
	if err != nil || !ok {
		t.Fatalf("expected a route, got ok=%v err=%v", ok, err)
	}
	if route.Info.Fare != 3.5 || !slices.Equal(route.Connections, []string{"grand-central", "union-sq"}) {
		t.Errorf("expected 3.5 via grand-central and union-sq, got %v via %v", route.Info.Fare, route.Connections)
	}

	if _, _, err := n.FindPreferredRoute(ctx, brooklyn, moma); !errors.Is(err, network.ErrUnreachable) {
		t.Errorf("expected unreachable start, got %v", err)
	}
}

func TestParseJSON(t *testing.T) {
	t.Parallel()

	doc := `{
		"name": "tiny",
		"selection": "findAny",
		"strategy": {"type": "competing", "workers": 2, "children": [{"type": "direct"}, {"type": "dijkstra"}]},
		"stations": [
			{"id": "A", "area": {"type": "global"}, "destinations": [{"id": "a-t", "destination": "T", "fare": 1}]}
		],
		"stops": [
			{"id": "T", "area": {"type": "union", "areas": [{"type": "empty"}, {"type": "global"}]}}
		]
	}`

	def, err := Parse([]byte(doc), JSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	n, _, err := def.Open(quietLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer n.Close()

	if n.Finder().Selection() != network.FindAny {
		t.Errorf("expected findAny, got %v", n.Finder().Selection())
	}
	routes, err := n.FindAvailableRoutes(context.Background(), brooklyn, moma)
	if err != nil {
		t.Fatalf("FindAvailableRoutes: %v", err)
	}
	if len(routes) != 1 || routes[0].Info.Fare != 1 {
		t.Errorf("unexpected routes %+v", routes)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "missing name", doc: "strategy: {type: direct}\n"},
		{name: "missing strategy", doc: "name: x\n"},
		{name: "unknown strategy", doc: "name: x\nstrategy: {type: fastest}\n"},
		{name: "unknown selection", doc: "name: x\nselection: findBest\nstrategy: {type: direct}\n"},
		{name: "unknown field", doc: "name: x\ncolor: red\nstrategy: {type: direct}\n"},
		{name: "station without id", doc: "name: x\nstrategy: {type: direct}\nstations: [{area: {type: global}}]\n"},
		{name: "unknown area", doc: "name: x\nstrategy: {type: direct}\nstops: [{id: T, area: {type: circle}}]\n"},
		{name: "latitude out of range", doc: "name: x\nstrategy: {type: direct}\nstops: [{id: T, position: {lat: 91, lng: 0}}]\n"},
		{name: "NaN position", doc: "name: x\nstrategy: {type: direct}\nstops: [{id: T, position: {lat: .nan, lng: 0}}]\n"},
		{name: "NaN radius center", doc: "name: x\nstrategy: {type: direct}\nstops: [{id: T, area: {type: radius, center: {lat: 0, lng: .nan}, meters: 10}}]\n"},
		{name: "negative capacity", doc: "name: x\nstrategy: {type: cached, ttl: 1s, capacity: -1, children: [{type: direct}]}\n"},
		{name: "not yaml", doc: "name: [x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc), YAML); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestOpenErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name:    "dangling connection",
			doc:     "name: x\nstrategy: {type: direct}\nstations: [{id: A, connections: [{destination: Z, fare: 1}]}]\n",
			wantErr: models.ErrIntegrity,
		},
		{
			name:    "negative fare",
			doc:     "name: x\nstrategy: {type: direct}\nstations: [{id: A, destinations: [{destination: T, fare: -1}]}]\nstops: [{id: T}]\n",
			wantErr: models.ErrIntegrity,
		},
		{
			name:    "combinator without children",
			doc:     "name: x\nstrategy: {type: quickSelect}\n",
			wantErr: routing.ErrNoChildren,
		},
		{name: "cached without ttl", doc: "name: x\nstrategy: {type: cached, children: [{type: direct}]}\n"},
		{name: "cached with two children", doc: "name: x\nstrategy: {type: cached, ttl: 1s, children: [{type: direct}, {type: dijkstra}]}\n"},
		{name: "outside with two areas", doc: "name: x\nstrategy: {type: direct}\nstops: [{id: T, area: {type: outside, areas: [{type: global}, {type: empty}]}}]\n"},
		{name: "radius without center", doc: "name: x\nstrategy: {type: direct}\nstops: [{id: T, area: {type: radius, meters: 5}}]\n"},
		{name: "inverted bound", doc: "name: x\nstrategy: {type: direct}\nstops: [{id: T, area: {type: bound, min: {lat: 2, lng: 2}, max: {lat: 1, lng: 1}}}]\n"},
		{name: "polygon with two vertices", doc: "name: x\nstrategy: {type: direct}\nstops: [{id: T, area: {type: polygon, vertices: [{lat: 1, lng: 1}, {lat: 2, lng: 2}]}}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := Parse([]byte(tt.doc), YAML)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			_, _, err = def.Open(quietLogger())
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "net.json")
	if err := os.WriteFile(path, []byte(`{"name": "j", "strategy": {"type": "direct"}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	def, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if def.Name != "j" {
		t.Errorf("expected name j, got %q", def.Name)
	}

	if _, err := Load(filepath.Join(dir, "missing.yml")); err == nil || !strings.Contains(err.Error(), "reading network file") {
		t.Errorf("expected a read error, got %v", err)
	}
	if FormatOf("a/b.JSON") != JSON || FormatOf("net.yaml") != YAML {
		t.Error("unexpected format detection")
	}
}
