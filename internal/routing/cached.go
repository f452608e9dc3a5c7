package routing

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/randytsao24/navnet/internal/cache"
	"github.com/randytsao24/navnet/internal/models"
)

type routeKey struct {
	station string
	stop    string
}

func (k routeKey) String() string { return k.station + "\x1f" + k.stop }

// cachedFinder memoizes routes from its delegate. A stored route is served
// while its age is within ttl; absent results are never stored, and a zero
// ttl stores nothing.
type cachedFinder struct {
	delegate Finder
	ttl      time.Duration
	store    cache.Store[routeKey, models.Route]
	inflight singleflight.Group
	now      func() time.Time
	logger   *slog.Logger

	mu      sync.Mutex
	flights map[string]*flight
}

// flight is the context of one shared delegate call. It is cancelled once
// every caller waiting on it has gone.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// newCachedFinder builds the decorator. A positive capacity bounds the
// store with LRU eviction; otherwise stale entries are swept every ttl.
func newCachedFinder(delegate Finder, ttl time.Duration, capacity int, now func() time.Time, logger *slog.Logger) *cachedFinder {
	f := &cachedFinder{
		delegate: delegate,
		ttl:      ttl,
		now:      now,
		logger:   logger,
		flights:  make(map[string]*flight),
	}
	stale := func(r models.Route) bool { return !f.fresh(r) }
	if capacity > 0 {
		f.store = cache.NewLRU[routeKey](capacity, stale)
	} else {
		f.store = cache.New[routeKey](ttl, stale)
	}
	return f
}

func (f *cachedFinder) fresh(r models.Route) bool {
	return f.now().Sub(r.Info.CreatedAt) <= f.ttl
}

func (f *cachedFinder) FindRoute(ctx context.Context, station models.Station, stop models.Stop) (models.Route, bool, error) {
	key := routeKey{station: station.ID, stop: stop.ID}
	if route, ok := f.store.Get(key); ok && f.fresh(route) {
		f.logger.Debug("route cache hit", "station", station.ID, "stop", stop.ID)
		return route, true, nil
	}
	f.logger.Debug("route cache miss", "station", station.ID, "stop", stop.ID)

	// Concurrent misses on the same key share one delegate call. The call
	// keeps running while any caller still waits on it.
	id := key.String()
	fl := f.join(ctx, id)
	defer f.leave(id, fl)

	ch := f.inflight.DoChan(id, func() (any, error) {
		route, found, err := f.delegate.FindRoute(fl.ctx, station, stop)
		if err != nil || !found {
			return nil, err
		}
		if f.ttl > 0 {
			f.store.Set(key, route)
		}
		return route, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return models.Route{}, false, res.Err
		}
		route, found := res.Val.(models.Route)
		return route, found, nil
	case <-ctx.Done():
		return models.Route{}, false, ctx.Err()
	}
}

func (f *cachedFinder) join(ctx context.Context, id string) *flight {
	f.mu.Lock()
	defer f.mu.Unlock()

	fl, ok := f.flights[id]
	if !ok {
		// A call still registered under id belongs to a flight that every
		// waiter left; it is cancelled, so start over.
		f.inflight.Forget(id)
		callCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		fl = &flight{ctx: callCtx, cancel: cancel}
		f.flights[id] = fl
	}
	fl.waiters++
	return fl
}

func (f *cachedFinder) leave(id string, fl *flight) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fl.waiters--
	if fl.waiters == 0 {
		fl.cancel()
		delete(f.flights, id)
	}
}

func (f *cachedFinder) Close() error {
	f.store.Close()
	return Close(f.delegate)
}

func (f *cachedFinder) String() string {
	return fmt.Sprintf("%s(%v, %v)", StrategyCached, f.delegate, f.ttl)
}
