package netfile

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/randytsao24/navnet/internal/area"
	"github.com/randytsao24/navnet/internal/location"
	"github.com/randytsao24/navnet/internal/models"
	"github.com/randytsao24/navnet/internal/network"
	"github.com/randytsao24/navnet/internal/routing"
)

// Placement lists the declared positions of stations and stops, for
// distance ranking
type Placement struct {
	Stations []location.Placed
	Stops    []location.Placed
}

// Open builds a ready network from the definition. Positions are returned
// separately because routing never looks at them.
func (d *Definition) Open(logger *slog.Logger, opts ...network.Option) (*network.Network[location.Point], Placement, error) {
	g, err := d.Graph()
	if err != nil {
		return nil, Placement{}, err
	}
	cov, err := d.Coverage()
	if err != nil {
		return nil, Placement{}, err
	}
	selection, err := network.ParseSelection(d.Selection)
	if err != nil {
		return nil, Placement{}, err
	}
	factory, err := d.Strategy.Factory()
	if err != nil {
		return nil, Placement{}, fmt.Errorf("strategy: %w", err)
	}

	n, err := network.New(d.Info(), g, cov, selection, factory, logger, opts...)
	if err != nil {
		return nil, Placement{}, err
	}
	return n, d.Placement(), nil
}

// Info returns the network identity, stamped now when the file has no
// creation time
func (d *Definition) Info() models.NetworkInfo {
	created := d.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return models.NetworkInfo{Name: d.Name, Version: d.Version, CreatedAt: created}
}

// Graph validates node references and builds the graph
func (d *Definition) Graph() (*models.Graph, error) {
	stations := make([]models.Station, len(d.Stations))
	for i, s := range d.Stations {
		stations[i] = models.Station{ID: s.ID, Connections: s.Connections, Destinations: s.Destinations}
	}
	stops := make([]models.Stop, len(d.Stops))
	for i, s := range d.Stops {
		stops[i] = models.Stop{ID: s.ID}
	}
	return models.NewGraph(stations, stops)
}

// Coverage builds the service areas. Nodes without an area cover nothing.
func (d *Definition) Coverage() (*network.Coverage[location.Point], error) {
	stations := make(map[string]area.Area[location.Point])
	for _, s := range d.Stations {
		if s.Area == nil {
			continue
		}
		a, err := s.Area.Build()
		if err != nil {
			return nil, fmt.Errorf("station %q area: %w", s.ID, err)
		}
		stations[s.ID] = a
	}
	stops := make(map[string]area.Area[location.Point])
	for _, s := range d.Stops {
		if s.Area == nil {
			continue
		}
		a, err := s.Area.Build()
		if err != nil {
			return nil, fmt.Errorf("stop %q area: %w", s.ID, err)
		}
		stops[s.ID] = a
	}
	return network.NewCoverage(stations, stops), nil
}

// Placement collects the declared node positions
func (d *Definition) Placement() Placement {
	var p Placement
	for _, s := range d.Stations {
		if s.Position != nil {
			p.Stations = append(p.Stations, location.Placed{ID: s.ID, Position: *s.Position})
		}
	}
	for _, s := range d.Stops {
		if s.Position != nil {
			p.Stops = append(p.Stops, location.Placed{ID: s.ID, Position: *s.Position})
		}
	}
	return p
}

// Build turns the definition into a service area
func (a AreaSpec) Build() (area.Area[location.Point], error) {
	switch a.Type {
	case "global":
		return area.Global[location.Point](), nil
	case "empty":
		return area.Empty[location.Point](), nil
	case "outside":
		if len(a.Areas) != 1 {
			return nil, fmt.Errorf("outside takes exactly one area, got %d", len(a.Areas))
		}
		inner, err := a.Areas[0].Build()
		if err != nil {
			return nil, err
		}
		return area.Outside(inner), nil
	case "intersection", "union":
		members := make([]area.Area[location.Point], 0, len(a.Areas))
		for _, m := range a.Areas {
			built, err := m.Build()
			if err != nil {
				return nil, err
			}
			members = append(members, built)
		}
		if a.Type == "union" {
			return area.Union(members...), nil
		}
		return area.Intersection(members...), nil
	case "radius":
		if a.Center == nil {
			return nil, fmt.Errorf("radius needs a center")
		}
		if err := a.Center.Validate(); err != nil {
			return nil, err
		}
		return location.Radius(*a.Center, a.Meters), nil
	case "bound":
		if a.Min == nil || a.Max == nil {
			return nil, fmt.Errorf("bound needs min and max corners")
		}
		if a.Min.Lat > a.Max.Lat || a.Min.Lng > a.Max.Lng {
			return nil, fmt.Errorf("bound min %s is not below max %s", a.Min, a.Max)
		}
		return location.Bound(*a.Min, *a.Max), nil
	case "polygon":
		return location.Polygon(a.Vertices)
	default:
		return nil, fmt.Errorf("unknown area type %q", a.Type)
	}
}

// Factory turns the definition into a route strategy
func (s StrategySpec) Factory() (routing.Factory, error) {
	children := make([]routing.Factory, 0, len(s.Children))
	for _, c := range s.Children {
		f, err := c.Factory()
		if err != nil {
			return nil, err
		}
		children = append(children, f)
	}

	switch s.Type {
	case routing.StrategyDirect:
		return routing.Direct(), nil
	case routing.StrategyDijkstra:
		return routing.Dijkstra(), nil
	case routing.StrategyCached:
		if len(children) != 1 {
			return nil, fmt.Errorf("cached wraps exactly one strategy, got %d", len(children))
		}
		ttl, err := time.ParseDuration(s.TTL)
		if err != nil {
			return nil, fmt.Errorf("cached ttl: %w", err)
		}
		return routing.Cached(children[0], ttl, routing.WithCapacity(s.Capacity)), nil
	case routing.StrategyFirstOption:
		return routing.FirstOption(children...), nil
	case routing.StrategyMinimumFare:
		return routing.MinimumFare(children...), nil
	case routing.StrategyQuickSelect:
		return routing.QuickSelect(children...), nil
	case routing.StrategyCompeting:
		var exec routing.Executor
		if s.Workers > 0 {
			exec = routing.NewPool(s.Workers)
		}
		return routing.Competing(exec, children...), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", s.Type)
	}
}
