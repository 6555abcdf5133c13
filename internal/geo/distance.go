// Package geo provides great-circle distance calculations.
package geo

import "math"

// Unit selects the distance unit for Haversine.
type Unit int

const (
	Miles Unit = iota
	Kilometers
)

// Mean Earth radius per unit.
const (
	earthRadiusMiles      = 3959.0
	earthRadiusKilometers = 6371.0
)

// Haversine returns the great-circle distance between two points given as
// decimal-degree coordinates. It is symmetric and returns exactly 0 for
// identical points.
func Haversine(lat1, lon1, lat2, lon2 float64, unit Unit) float64 {
	radius := earthRadiusMiles
	if unit == Kilometers {
		radius = earthRadiusKilometers
	}

	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return radius * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
