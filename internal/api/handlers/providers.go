package handlers

import (
	"context"
	"iter"

	"github.com/randytsao24/navnet/internal/location"
	"github.com/randytsao24/navnet/internal/models"
	"github.com/randytsao24/navnet/internal/routing"
)

// NetworkProvider abstracts the served network for testability.
// *network.Network[location.Point] implements it.
type NetworkProvider interface {
	Info() models.NetworkInfo
	Graph() *models.Graph
	Strategy() routing.Factory

	AvailableStations(at location.Point) iter.Seq[models.Station]
	AvailableStops(at location.Point) iter.Seq[models.Stop]
	PreferredStation(at location.Point) (models.Station, bool)
	PreferredStop(at location.Point) (models.Stop, bool)

	FindRoute(ctx context.Context, station models.Station, stop models.Stop) (models.Route, bool, error)
	FindPreferredRoute(ctx context.Context, start, dest location.Point) (models.Route, bool, error)
	FindAvailableRoutes(ctx context.Context, start, dest location.Point) ([]models.Route, error)
}
