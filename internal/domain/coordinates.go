package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates in WGS84 degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// NorthPole is the default depot where every trip starts, ends and reloads.
var NorthPole = Coordinates{Lat: 90, Lon: 0}

// Key returns a stable cache key rounded to roughly 0.1 m.
func (c Coordinates) Key() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}

// Validate reports coordinates outside the latitude/longitude ranges.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Lat)
	}
	if math.IsNaN(c.Lon) || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Lon)
	}
	return nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%.5f, %.5f)", c.Lat, c.Lon)
}
