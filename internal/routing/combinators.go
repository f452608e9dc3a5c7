package routing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/randytsao24/navnet/internal/models"
)

// firstOption tries children in order and stops at the first route.
type firstOption struct {
	children []Finder
	logger   *slog.Logger
}

func (f *firstOption) FindRoute(ctx context.Context, station models.Station, stop models.Stop) (models.Route, bool, error) {
	for _, child := range f.children {
		route, ok, err := safeFind(ctx, child, station, stop)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return models.Route{}, false, ctxErr
			}
			logChildFailure(f.logger, StrategyFirstOption, child, station, stop, err)
			continue
		}
		if ok {
			return route, true, nil
		}
	}
	return models.Route{}, false, nil
}

func (f *firstOption) Close() error   { return closeAll(f.children) }
func (f *firstOption) String() string { return describe(StrategyFirstOption, f.children) }

// minimumFare evaluates every child concurrently and keeps the cheapest route.
type minimumFare struct {
	children []Finder
	logger   *slog.Logger
}

type childResult struct {
	route models.Route
	ok    bool
	err   error
}

func (f *minimumFare) FindRoute(ctx context.Context, station models.Station, stop models.Stop) (models.Route, bool, error) {
	results := make([]childResult, len(f.children))

	var g errgroup.Group
	for i, child := range f.children {
		g.Go(func() error {
			route, ok, err := safeFind(ctx, child, station, stop)
			results[i] = childResult{route: route, ok: ok, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return models.Route{}, false, err
	}

	var best models.Route
	found := false
	for i, res := range results {
		if res.err != nil {
			logChildFailure(f.logger, StrategyMinimumFare, f.children[i], station, stop, res.err)
			continue
		}
		if res.ok && (!found || res.route.Info.Fare < best.Info.Fare) {
			best, found = res.route, true
		}
	}
	return best, found, nil
}

func (f *minimumFare) Close() error   { return closeAll(f.children) }
func (f *minimumFare) String() string { return describe(StrategyMinimumFare, f.children) }

// quickSelect evaluates every child concurrently and returns the first route
// produced, cancelling the children still running.
type quickSelect struct {
	children []Finder
	logger   *slog.Logger
}

func (f *quickSelect) FindRoute(parent context.Context, station models.Station, stop models.Stop) (models.Route, bool, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	winner := make(chan models.Route, 1)
	var g errgroup.Group
	for _, child := range f.children {
		g.Go(func() error {
			route, ok, err := safeFind(ctx, child, station, stop)
			switch {
			case err != nil:
				if ctx.Err() == nil {
					logChildFailure(f.logger, StrategyQuickSelect, child, station, stop, err)
				}
			case ok:
				select {
				case winner <- route:
					cancel()
				default:
				}
			}
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case route := <-winner:
		return route, true, nil
	case <-done:
		select {
		case route := <-winner:
			return route, true, nil
		default:
		}
		if err := parent.Err(); err != nil {
			return models.Route{}, false, err
		}
		return models.Route{}, false, nil
	case <-parent.Done():
		return models.Route{}, false, parent.Err()
	}
}

func (f *quickSelect) Close() error   { return closeAll(f.children) }
func (f *quickSelect) String() string { return describe(StrategyQuickSelect, f.children) }

func describe[T any](name string, children []T) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = fmt.Sprint(c)
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}
