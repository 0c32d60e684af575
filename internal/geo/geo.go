// Package geo provides the coordinate type and great-circle distance math
// used by route risk annotation.
//
// Distances use the haversine formula with a spherical Earth of radius
// 6371 km. The hazard-proximity radius and risk thresholds elsewhere in the
// service were tuned against this formula, so the radius constant must not
// change independently.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusKm is the mean Earth radius used for haversine distances.
const EarthRadiusKm = 6371.0

// ErrInvalidCoordinate marks a latitude/longitude pair outside WGS-84 bounds.
// Validation happens at ingestion boundaries, not inside the distance math.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate represents a WGS-84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate returns ErrInvalidCoordinate (wrapped with the offending value)
// when the coordinate is outside [-90,90] latitude or [-180,180] longitude.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %g out of range [-90, 90]", ErrInvalidCoordinate, c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: longitude %g out of range [-180, 180]", ErrInvalidCoordinate, c.Lng)
	}
	return nil
}

// Distance returns the great-circle distance between a and b in kilometers.
func Distance(a, b Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}
