package network

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/randytsao24/navnet/internal/models"
	"github.com/randytsao24/navnet/internal/routing"
)

// DefaultWorkers bounds the route queries FindAvailableRoutes runs at once
const DefaultWorkers = 8

// Network answers coordinate level queries over one graph
type Network[C any] struct {
	info     models.NetworkInfo
	graph    *models.Graph
	coverage *Coverage[C]
	nodes    *Finder[C]
	factory  routing.Factory
	routes   routing.Finder
	workers  int
	logger   *slog.Logger
}

// Option configures a Network
type Option func(*options)

type options struct {
	workers int
}

// WithWorkers bounds the concurrent route queries of FindAvailableRoutes
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// New builds the node finder and the route finder for graph
func New[C any](info models.NetworkInfo, g *models.Graph, cov *Coverage[C], selection Selection, factory routing.Factory, logger *slog.Logger, opts ...Option) (*Network[C], error) {
	if g == nil || cov == nil || factory == nil {
		return nil, errors.New("network: graph, coverage and route strategy are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	o := options{workers: DefaultWorkers}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}

	routes, err := factory.Create(g, logger)
	if err != nil {
		return nil, fmt.Errorf("network %s: build route finder %s: %w", info.Name, factory, err)
	}

	return &Network[C]{
		info:     info,
		graph:    g,
		coverage: cov,
		nodes:    NewFinder(g, cov, selection),
		factory:  factory,
		routes:   routes,
		workers:  o.workers,
		logger:   logger,
	}, nil
}

func (n *Network[C]) Info() models.NetworkInfo  { return n.info }
func (n *Network[C]) Graph() *models.Graph      { return n.graph }
func (n *Network[C]) Coverage() *Coverage[C]    { return n.coverage }
func (n *Network[C]) Finder() *Finder[C]        { return n.nodes }
func (n *Network[C]) Strategy() routing.Factory { return n.factory }

// Close releases the route finder's resources
func (n *Network[C]) Close() error { return routing.Close(n.routes) }

func (n *Network[C]) AvailableStations(c C) iter.Seq[models.Station] {
	return n.nodes.AvailableStations(c)
}

func (n *Network[C]) AvailableStops(c C) iter.Seq[models.Stop] {
	return n.nodes.AvailableStops(c)
}

func (n *Network[C]) PreferredStation(c C) (models.Station, bool) {
	return n.nodes.PreferredStation(c)
}

func (n *Network[C]) PreferredStop(c C) (models.Stop, bool) {
	return n.nodes.PreferredStop(c)
}

// FindRoute finds the cheapest route from station to stop
func (n *Network[C]) FindRoute(ctx context.Context, station models.Station, stop models.Stop) (models.Route, bool, error) {
	return n.routes.FindRoute(ctx, station, stop)
}

// FindPreferredRoute routes from the preferred station at start to the
// preferred stop at dest. A coordinate without a preferred node yields an
// *UnreachableError.
func (n *Network[C]) FindPreferredRoute(ctx context.Context, start, dest C) (models.Route, bool, error) {
	station, ok := n.nodes.PreferredStation(start)
	if !ok {
		return models.Route{}, false, n.unreachable(start, models.KindStation)
	}
	stop, ok := n.nodes.PreferredStop(dest)
	if !ok {
		return models.Route{}, false, n.unreachable(dest, models.KindStop)
	}
	return n.routes.FindRoute(ctx, station, stop)
}

// FindAvailableRoutes queries every (station, stop) pair available from start
// to dest and returns the routes found, ordered by station and then stop in
// graph order. The first failing query cancels the rest.
func (n *Network[C]) FindAvailableRoutes(ctx context.Context, start, dest C) ([]models.Route, error) {
	stations := slices.Collect(n.nodes.AvailableStations(start))
	if len(stations) == 0 {
		return nil, n.unreachable(start, models.KindStation)
	}
	stops := slices.Collect(n.nodes.AvailableStops(dest))
	if len(stops) == 0 {
		return nil, n.unreachable(dest, models.KindStop)
	}

	type slot struct {
		route models.Route
		ok    bool
	}
	slots := make([]slot, len(stations)*len(stops))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(n.workers)
	for i, station := range stations {
		for j, stop := range stops {
			g.Go(func() error {
				route, ok, err := n.routes.FindRoute(ctx, station, stop)
				if err != nil {
					return fmt.Errorf("route %s -> %s: %w", station.ID, stop.ID, err)
				}
				slots[i*len(stops)+j] = slot{route: route, ok: ok}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	routes := make([]models.Route, 0, len(slots))
	for _, s := range slots {
		if s.ok {
			routes = append(routes, s.route)
		}
	}
	n.logger.Debug("available routes",
		"network", n.info.Name,
		"stations", len(stations),
		"stops", len(stops),
		"routes", len(routes),
	)
	return routes, nil
}

func (n *Network[C]) unreachable(c C, kind models.NodeKind) error {
	return &UnreachableError{Coordinate: c, Kind: kind, Network: n.info}
}
