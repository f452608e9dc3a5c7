package routing

import (
	"context"
	"fmt"
	"time"

	"github.com/randytsao24/navnet/internal/models"
)

// directFinder answers single-hop queries from a station -> stop -> options
// index. Parallel edges are kept and resolved at query time.
type directFinder struct {
	options map[string]map[string][]models.RouteOption
}

func newDirectFinder(g *models.Graph) *directFinder {
	stations := g.Stations()
	options := make(map[string]map[string][]models.RouteOption, len(stations))
	for _, station := range stations {
		byStop := make(map[string][]models.RouteOption, len(station.Destinations))
		for _, opt := range station.Destinations {
			byStop[opt.Destination] = append(byStop[opt.Destination], opt)
		}
		options[station.ID] = byStop
	}
	return &directFinder{options: options}
}

func (f *directFinder) FindRoute(ctx context.Context, station models.Station, stop models.Stop) (models.Route, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.Route{}, false, err
	}

	byStop, ok := f.options[station.ID]
	if !ok {
		return models.Route{}, false, fmt.Errorf("direct: %w: %q", ErrUnknownStation, station.ID)
	}

	opts := byStop[stop.ID]
	if len(opts) == 0 {
		return models.Route{}, false, nil
	}

	cheapest := opts[0]
	for _, opt := range opts[1:] {
		if opt.Fare < cheapest.Fare {
			cheapest = opt
		}
	}
	return models.NewRoute(station.ID, stop.ID, nil, time.Now(), cheapest.Fare), true, nil
}

func (f *directFinder) String() string { return StrategyDirect }
