package valueobjects

import (
	"fmt"
	"math"

	"petcare/internal/petcare/domain/domainerr"
)

// EarthRadiusKm - средний радиус Земли для формулы гаверсинусов.
const EarthRadiusKm = 6371.0

var (
	ErrInvalidLatitude  = domainerr.InvalidArgument("latitude must be within [-90, 90]")
	ErrInvalidLongitude = domainerr.InvalidArgument("longitude must be within [-180, 180]")
)

// Coordinates - географическая точка. Сравнение с точностью 6 знаков (~0.11 м).
type Coordinates struct {
	latitude  float64
	longitude float64
}

func NewCoordinates(latitude, longitude float64) (Coordinates, error) {
	if math.IsNaN(latitude) || latitude < -90 || latitude > 90 {
		return Coordinates{}, ErrInvalidLatitude
	}
	if math.IsNaN(longitude) || longitude < -180 || longitude > 180 {
		return Coordinates{}, ErrInvalidLongitude
	}
	return Coordinates{latitude: latitude, longitude: longitude}, nil
}

func (c Coordinates) Latitude() float64 { return c.latitude }

func (c Coordinates) Longitude() float64 { return c.longitude }

// DistanceTo возвращает расстояние по большому кругу в километрах.
func (c Coordinates) DistanceTo(other Coordinates) float64 {
	lat1 := toRadians(c.latitude)
	lat2 := toRadians(other.latitude)
	dLat := lat2 - lat1
	dLon := toRadians(other.longitude - c.longitude)

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// WKT возвращает точку в формате Well-Known Text: долгота, затем широта.
func (c Coordinates) WKT() string {
	return fmt.Sprintf("POINT(%.6f %.6f)", c.longitude, c.latitude)
}

func (c Coordinates) Equals(other Coordinates) bool { return Equal(c, other) }

func (c Coordinates) EqualityComponents() []any {
	return []any{round6(c.latitude), round6(c.longitude)}
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

func round6(v float64) float64 {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		return 0
	}
	return r
}
