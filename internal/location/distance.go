package location

import (
	"github.com/paulmach/orb/geo"
)

// Distance returns the great circle distance in meters between two points
func Distance(a, b Point) float64 {
	return geo.DistanceHaversine(a.Orb(), b.Orb())
}

// MetersToMiles converts meters to miles
func MetersToMiles(meters float64) float64 {
	return meters / 1609.344
}
