// Package geo provides the spatial helpers the pipeline needs for drift
// reporting between requested and resolved coordinates.
package geo

import (
	"math"

	"github.com/seichi-tools/panotabi/internal/model"
)

// earthRadiusMeters is the WGS84 semi-major axis.
const earthRadiusMeters = 6378137.0

// DistanceMeters returns the great-circle distance between two points using
// the haversine formula.
func DistanceMeters(a, b model.GeoPoint) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
