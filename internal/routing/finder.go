// Package routing finds minimum fare routes from a station to a stop.
//
// A Finder is built from a Factory once per graph and is then safe for
// concurrent use. Base strategies (Direct, Dijkstra) search the graph;
// Cached memoizes another strategy; FirstOption, MinimumFare, QuickSelect
// and Competing combine several strategies under different policies.
//
// Every FindRoute returns one of three outcomes: a route and true, no route
// (false, nil error) when the stop cannot be reached, or an error when the
// query refers to data the finder was never built with or ctx was cancelled.
package routing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/randytsao24/navnet/internal/models"
)

var (
	// ErrUnknownStation is returned when a station is absent from the index
	// a finder was built with.
	ErrUnknownStation = errors.New("station not registered in route index")

	// ErrFinderPanic wraps a panic recovered from a combinator child.
	ErrFinderPanic = errors.New("route finder panicked")

	// ErrNoChildren is returned when a combinator is built without children.
	ErrNoChildren = errors.New("combinator requires at least one route finder")
)

// Finder finds the cheapest route from station to stop
type Finder interface {
	FindRoute(ctx context.Context, station models.Station, stop models.Stop) (models.Route, bool, error)
}

// Close releases resources held by f and, for combinators, by its children.
// Finders that hold no resources are left alone.
func Close(f Finder) error {
	if c, ok := f.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func closeAll(finders []Finder) error {
	var errs []error
	for _, f := range finders {
		if err := Close(f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// safeFind runs a child finder, turning a panic into an error so that one
// misbehaving child cannot take down a combinator.
func safeFind(ctx context.Context, f Finder, station models.Station, stop models.Stop) (route models.Route, ok bool, err error) {
	defer func() {
		if v := recover(); v != nil {
			route, ok = models.Route{}, false
			err = fmt.Errorf("%w: %v", ErrFinderPanic, v)
		}
	}()
	return f.FindRoute(ctx, station, stop)
}

func logChildFailure(logger *slog.Logger, combinator string, child Finder, station models.Station, stop models.Stop, err error) {
	logger.Warn("route finder failed",
		"combinator", combinator,
		"finder", fmt.Sprint(child),
		"station", station.ID,
		"stop", stop.ID,
		"error", err,
	)
}
