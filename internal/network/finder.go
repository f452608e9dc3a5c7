package network

import (
	"fmt"
	"iter"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/randytsao24/navnet/internal/models"
)

// Selection decides which available node is preferred for a coordinate
type Selection int

const (
	// FindFirst prefers the first available node in graph order
	FindFirst Selection = iota
	// FindAny prefers whichever available node is found first by a
	// concurrent scan. The answer may differ between calls.
	FindAny
)

func (s Selection) String() string {
	switch s {
	case FindFirst:
		return "findFirst"
	case FindAny:
		return "findAny"
	default:
		return fmt.Sprintf("Selection(%d)", int(s))
	}
}

// ParseSelection accepts the names produced by Selection.String
func ParseSelection(name string) (Selection, error) {
	switch name {
	case "findFirst", "":
		return FindFirst, nil
	case "findAny":
		return FindAny, nil
	default:
		return 0, fmt.Errorf("unknown selection %q (want findFirst or findAny)", name)
	}
}

// Finder resolves coordinates to the stations and stops covering them
type Finder[C any] struct {
	coverage  *Coverage[C]
	selection Selection
	stations  []models.Station
	stops     []models.Stop
}

// NewFinder builds a finder over an immutable graph and coverage
func NewFinder[C any](g *models.Graph, cov *Coverage[C], selection Selection) *Finder[C] {
	return &Finder[C]{
		coverage:  cov,
		selection: selection,
		stations:  g.Stations(),
		stops:     g.Stops(),
	}
}

// Selection returns the preference policy
func (f *Finder[C]) Selection() Selection { return f.selection }

// AvailableStations yields, in graph order, every station covering c.
// The sequence is lazy and can be ranged over more than once.
func (f *Finder[C]) AvailableStations(c C) iter.Seq[models.Station] {
	return available(f.stations, func(s models.Station) bool { return f.coverage.ContainsStation(s, c) })
}

// AvailableStops yields, in graph order, every stop covering c
func (f *Finder[C]) AvailableStops(c C) iter.Seq[models.Stop] {
	return available(f.stops, func(s models.Stop) bool { return f.coverage.ContainsStop(s, c) })
}

// PreferredStation picks one station covering c according to the selection
func (f *Finder[C]) PreferredStation(c C) (models.Station, bool) {
	return prefer(f.selection, f.stations, func(s models.Station) bool { return f.coverage.ContainsStation(s, c) })
}

// PreferredStop picks one stop covering c according to the selection
func (f *Finder[C]) PreferredStop(c C) (models.Stop, bool) {
	return prefer(f.selection, f.stops, func(s models.Stop) bool { return f.coverage.ContainsStop(s, c) })
}

func available[N any](nodes []N, covers func(N) bool) iter.Seq[N] {
	return func(yield func(N) bool) {
		for _, n := range nodes {
			if covers(n) && !yield(n) {
				return
			}
		}
	}
}

func prefer[N any](selection Selection, nodes []N, covers func(N) bool) (N, bool) {
	if selection == FindAny {
		return findAny(nodes, covers)
	}
	for n := range available(nodes, covers) {
		return n, true
	}
	var zero N
	return zero, false
}

// findAny splits nodes into one partition per CPU and scans them in parallel.
// The first match claims the result and the other scanners stop early.
func findAny[N any](nodes []N, covers func(N) bool) (N, bool) {
	var zero N
	parts := min(runtime.GOMAXPROCS(0), len(nodes))
	if parts <= 1 {
		for _, n := range nodes {
			if covers(n) {
				return n, true
			}
		}
		return zero, false
	}

	var (
		wg      sync.WaitGroup
		claimed atomic.Bool
		result  N
	)
	size := (len(nodes) + parts - 1) / parts
	for start := 0; start < len(nodes); start += size {
		chunk := nodes[start:min(start+size, len(nodes))]
		wg.Go(func() {
			for _, n := range chunk {
				if claimed.Load() {
					return
				}
				if covers(n) && claimed.CompareAndSwap(false, true) {
					result = n
					return
				}
			}
		})
	}
	wg.Wait()

	if !claimed.Load() {
		return zero, false
	}
	return result, true
}
