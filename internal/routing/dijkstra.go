package routing

import (
	"container/heap"
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/randytsao24/navnet/internal/models"
)

type lastLeg struct {
	station string
	fare    float64
}

// dijkstraFinder relaxes station-to-station connections from the origin and
// then adds the cheapest last leg into the stop.
type dijkstraFinder struct {
	connections map[string][]models.RouteOption // station -> outgoing station edges
	lastLegs    map[string][]lastLeg            // stop -> cheapest fare from each serving station
}

func newDijkstraFinder(g *models.Graph) *dijkstraFinder {
	stations := g.Stations()
	f := &dijkstraFinder{
		connections: make(map[string][]models.RouteOption, len(stations)),
		lastLegs:    make(map[string][]lastLeg),
	}

	for _, station := range stations {
		f.connections[station.ID] = station.Connections

		// Parallel edges collapse to the cheapest fare per (station, stop).
		cheapest := make(map[string]float64, len(station.Destinations))
		var order []string
		for _, opt := range station.Destinations {
			known, seen := cheapest[opt.Destination]
			if !seen {
				order = append(order, opt.Destination)
			}
			if !seen || opt.Fare < known {
				cheapest[opt.Destination] = opt.Fare
			}
		}
		for _, stop := range order {
			f.lastLegs[stop] = append(f.lastLegs[stop], lastLeg{station: station.ID, fare: cheapest[stop]})
		}
	}
	return f
}

func (f *dijkstraFinder) FindRoute(ctx context.Context, station models.Station, stop models.Stop) (models.Route, bool, error) {
	if _, ok := f.connections[station.ID]; !ok {
		return models.Route{}, false, fmt.Errorf("dijkstra: %w: %q", ErrUnknownStation, station.ID)
	}

	legs := f.lastLegs[stop.ID]
	if len(legs) == 0 {
		// No station serves the stop.
		return models.Route{}, false, nil
	}

	fares, parents, err := f.relax(ctx, station.ID)
	if err != nil {
		return models.Route{}, false, err
	}

	best, bestFare := "", math.Inf(1)
	for _, leg := range legs {
		base, reached := fares[leg.station]
		if !reached {
			continue
		}
		if total := base + leg.fare; total < bestFare {
			best, bestFare = leg.station, total
		}
	}
	if best == "" {
		return models.Route{}, false, nil
	}

	// Walk back from the last-leg station to the origin, then flip into
	// travel order.
	var connections []string
	for id := best; id != station.ID; id = parents[id] {
		connections = append(connections, id)
	}
	slices.Reverse(connections)

	return models.NewRoute(station.ID, stop.ID, connections, time.Now(), bestFare), true, nil
}

// relax computes the cheapest fare from origin to every reachable station and
// the predecessor of each on its cheapest path.
func (f *dijkstraFinder) relax(ctx context.Context, origin string) (map[string]float64, map[string]string, error) {
	fares := map[string]float64{origin: 0}
	parents := make(map[string]string)
	settled := make(map[string]bool)

	queue := &fareQueue{{station: origin, fare: 0}}
	for queue.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		current := heap.Pop(queue).(queuedStation)
		if settled[current.station] {
			continue
		}
		settled[current.station] = true

		for _, conn := range f.connections[current.station] {
			if settled[conn.Destination] {
				continue
			}
			fare := current.fare + conn.Fare
			if known, seen := fares[conn.Destination]; !seen || fare < known {
				fares[conn.Destination] = fare
				parents[conn.Destination] = current.station
				heap.Push(queue, queuedStation{station: conn.Destination, fare: fare})
			}
		}
	}
	return fares, parents, nil
}

func (f *dijkstraFinder) String() string { return StrategyDijkstra }

type queuedStation struct {
	station string
	fare    float64
}

type fareQueue []queuedStation

func (q fareQueue) Len() int           { return len(q) }
func (q fareQueue) Less(i, j int) bool { return q[i].fare < q[j].fare }
func (q fareQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *fareQueue) Push(x any) {
	*q = append(*q, x.(queuedStation))
}

func (q *fareQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
