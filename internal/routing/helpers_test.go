package routing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/randytsao24/navnet/internal/models"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// chainGraph is A -> B -> C -> T with every leg costing 1, plus a direct
// A -> T leg costing 5 and an unserved stop U.
func chainGraph(t *testing.T) *models.Graph {
	t.Helper()
	g, err := models.NewGraph(
		[]models.Station{
			{
				ID:           "A",
				Connections:  []models.RouteOption{{ID: "a-b", Destination: "B", Fare: 1}},
				Destinations: []models.RouteOption{{ID: "a-t", Destination: "T", Fare: 5}},
			},
			{ID: "B", Connections: []models.RouteOption{{ID: "b-c", Destination: "C", Fare: 1}}},
			{ID: "C", Destinations: []models.RouteOption{{ID: "c-t", Destination: "T", Fare: 1}}},
		},
		[]models.Stop{{ID: "T"}, {ID: "U"}},
	)
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	return g
}

var (
	stationA = models.Station{ID: "A"}
	stopT    = models.Stop{ID: "T"}
)

// stubFinder answers with a fixed outcome and counts its calls
type stubFinder struct {
	name  string
	route models.Route
	ok    bool
	err   error
	delay time.Duration
	panic bool
	calls atomic.Int32
}

func (s *stubFinder) FindRoute(ctx context.Context, station models.Station, stop models.Stop) (models.Route, bool, error) {
	s.calls.Add(1)
	if s.panic {
		panic("boom")
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return models.Route{}, false, ctx.Err()
		}
	}
	return s.route, s.ok, s.err
}

func (s *stubFinder) String() string { return s.name }

func found(name string, fare float64) *stubFinder {
	return &stubFinder{
		name:  name,
		route: models.NewRoute("A", "T", nil, time.Now(), fare),
		ok:    true,
	}
}

func failing(name string) *stubFinder {
	return &stubFinder{name: name, err: errors.New(name + " failed")}
}
