package domain

import (
	"fmt"
	"math"
	"time"
)

// Metadata labels used by the specification file.
const (
	SpecMaxWeight   = "maximum weight"
	SpecMaxVolume   = "maximum volume"
	SpecSpeed       = "speed (km/h)"
	SpecTimePerStop = "time per stop (min)"
)

// DefaultDeliveryWindow is the length of the night available for the tour.
const DefaultDeliveryWindow = 7 * time.Hour

// Specification describes the sleigh: capacity limits, cruise speed and the
// fixed service time spent at every delivery stop.
type Specification struct {
	MaxWeight   float64
	MaxVolume   float64
	SpeedKmh    float64
	TimePerStop time.Duration
}

// SpecificationFromMetadata builds a Specification from the metadata/value
// pairs of the specification file. All four rows are required.
func SpecificationFromMetadata(values map[string]float64) (Specification, error) {
	required := []string{SpecMaxWeight, SpecMaxVolume, SpecSpeed, SpecTimePerStop}
	for _, k := range required {
		if _, ok := values[k]; !ok {
			return Specification{}, fmt.Errorf("%w: missing %q", ErrInvalidSpecification, k)
		}
	}

	spec := Specification{
		MaxWeight:   values[SpecMaxWeight],
		MaxVolume:   values[SpecMaxVolume],
		SpeedKmh:    values[SpecSpeed],
		TimePerStop: time.Duration(values[SpecTimePerStop] * float64(time.Minute)),
	}
	if err := spec.Validate(); err != nil {
		return Specification{}, err
	}
	return spec, nil
}

func (s Specification) Validate() error {
	if math.IsNaN(s.MaxWeight) || s.MaxWeight <= 0 {
		return fmt.Errorf("%w: maximum weight must be positive, got %v", ErrInvalidSpecification, s.MaxWeight)
	}
	if math.IsNaN(s.MaxVolume) || s.MaxVolume <= 0 {
		return fmt.Errorf("%w: maximum volume must be positive, got %v", ErrInvalidSpecification, s.MaxVolume)
	}
	if math.IsNaN(s.SpeedKmh) || s.SpeedKmh <= 0 {
		return fmt.Errorf("%w: speed must be positive, got %v", ErrInvalidSpecification, s.SpeedKmh)
	}
	if s.TimePerStop < 0 {
		return fmt.Errorf("%w: time per stop must not be negative, got %s", ErrInvalidSpecification, s.TimePerStop)
	}
	return nil
}

// Fits reports whether a single piece of the article fits into an empty sleigh.
func (s Specification) Fits(a Article) bool {
	return a.Weight <= s.MaxWeight+capacityEpsilon && a.Volume <= s.MaxVolume+capacityEpsilon
}

// TravelTime converts a distance in kilometres to flight time at cruise speed.
func (s Specification) TravelTime(km float64) time.Duration {
	return time.Duration(km / s.SpeedKmh * float64(time.Hour))
}

// MetadataValues is the inverse of SpecificationFromMetadata.
func (s Specification) MetadataValues() map[string]float64 {
	return map[string]float64{
		SpecMaxWeight:   s.MaxWeight,
		SpecMaxVolume:   s.MaxVolume,
		SpecSpeed:       s.SpeedKmh,
		SpecTimePerStop: s.TimePerStop.Minutes(),
	}
}
