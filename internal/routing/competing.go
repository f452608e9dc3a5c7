package routing

import (
	"context"
	"errors"
	"log/slog"

	"github.com/randytsao24/navnet/internal/models"
)

// competing races its children on an Executor. Outcomes are consumed in
// completion order; the first route wins and everything still pending is
// cancelled. A failed child counts as "no answer" and the race goes on.
type competing struct {
	exec     Executor
	children []Finder
	logger   *slog.Logger
}

type outcome struct {
	child Finder
	route models.Route
	ok    bool
	err   error
}

func (f *competing) FindRoute(parent context.Context, station models.Station, stop models.Stop) (models.Route, bool, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Buffered to len(children) so a task never blocks after the race is decided.
	outcomes := make(chan outcome, len(f.children))
	for _, child := range f.children {
		f.exec.Submit(func() {
			if err := ctx.Err(); err != nil {
				outcomes <- outcome{child: child, err: err}
				return
			}
			route, ok, err := safeFind(ctx, child, station, stop)
			outcomes <- outcome{child: child, route: route, ok: ok, err: err}
		})
	}

	for range len(f.children) {
		select {
		case o := <-outcomes:
			if o.err != nil {
				if !errors.Is(o.err, context.Canceled) {
					logChildFailure(f.logger, StrategyCompeting, o.child, station, stop, o.err)
				}
				continue
			}
			if o.ok {
				return o.route, true, nil
			}
		case <-parent.Done():
			return models.Route{}, false, parent.Err()
		}
	}
	return models.Route{}, false, nil
}

func (f *competing) Close() error   { return closeAll(f.children) }
func (f *competing) String() string { return describe(StrategyCompeting, f.children) }
