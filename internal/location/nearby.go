package location

import (
	"cmp"
	"slices"
)

// Placed is a network node with a known position
type Placed struct {
	ID       string
	Position Point
}

// Ranked is a node together with its distance from a query point
type Ranked struct {
	ID             string  `json:"id"`
	DistanceMeters float64 `json:"distance_meters"`
	DistanceMiles  float64 `json:"distance_miles"`
}

// Nearby returns the nodes within radiusMeters of from, closest first
func Nearby(from Point, nodes []Placed, radiusMeters float64) []Ranked {
	var results []Ranked
	for _, n := range nodes {
		dist := Distance(from, n.Position)
		if dist <= radiusMeters {
			results = append(results, rank(n.ID, dist))
		}
	}
	sortByDistance(results)
	return results
}

// Closest returns the limit nodes nearest to from. A limit <= 0 returns all.
func Closest(from Point, nodes []Placed, limit int) []Ranked {
	results := make([]Ranked, 0, len(nodes))
	for _, n := range nodes {
		results = append(results, rank(n.ID, Distance(from, n.Position)))
	}
	sortByDistance(results)

	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results
}

func rank(id string, meters float64) Ranked {
	return Ranked{ID: id, DistanceMeters: meters, DistanceMiles: MetersToMiles(meters)}
}

func sortByDistance(results []Ranked) {
	slices.SortStableFunc(results, func(a, b Ranked) int {
		return cmp.Compare(a.DistanceMeters, b.DistanceMeters)
	})
}
