package location

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/randytsao24/navnet/internal/area"
)

// Radius covers every point within meters of center
func Radius(center Point, meters float64) area.Area[Point] {
	name := fmt.Sprintf("radius(%s, %gm)", center, meters)
	return area.Predicate(name, func(p Point) bool {
		return Distance(center, p) <= meters
	})
}

// Bound covers the lat/lng rectangle between two corners, edges included
func Bound(lo, hi Point) area.Area[Point] {
	b := orb.Bound{Min: lo.Orb(), Max: hi.Orb()}
	name := fmt.Sprintf("bound(%s, %s)", lo, hi)
	return area.Predicate(name, func(p Point) bool {
		return b.Contains(p.Orb())
	})
}

// Polygon covers the interior of the ring through vertices. The ring is
// closed automatically.
func Polygon(vertices []Point) (area.Area[Point], error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 vertices, got %d", len(vertices))
	}
	ring := make(orb.Ring, 0, len(vertices)+1)
	for _, v := range vertices {
		ring = append(ring, v.Orb())
	}
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	poly := orb.Polygon{ring}
	name := fmt.Sprintf("polygon(%d vertices)", len(vertices))
	return area.Predicate(name, func(p Point) bool {
		return planar.PolygonContains(poly, p.Orb())
	}), nil
}
