package rating

import (
	"math"
	"strings"

	"github.com/99minutos/carrier-rating/internal/core/domain"
)

const (
	earthRadiusMiles = 3959.0

	sameZoneMiles    = 200.0
	defaultZoneMiles = 500.0

	UnknownZone = "UNKNOWN"
)

// ResolveRoute classifies the trip between two addresses and estimates its
// length in whole miles. Distance is 0 when neither coordinates nor postal codes
// are available on both ends.
func ResolveRoute(origin, destination domain.Address, t Tables) (int, domain.Route) {
	oz := Zone(origin, t)
	dz := Zone(destination, t)
	route := domain.Route{
		OriginZone:      oz,
		DestinationZone: dz,
		RouteKey:        oz + "-" + dz,
	}

	var miles float64
	switch {
	case origin.Coordinates != nil && destination.Coordinates != nil:
		miles = Haversine(*origin.Coordinates, *destination.Coordinates)
	case strings.TrimSpace(origin.PostalCode) != "" && strings.TrimSpace(destination.PostalCode) != "":
		miles = zoneDistance(oz, dz, t)
	}
	return int(math.Round(miles)), route
}

// Haversine returns the great-circle distance between two points in miles.
func Haversine(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Zone derives the coarse region of an address. Priority: explicit province,
// postal-code letter, first three postal characters, UnknownZone.
func Zone(a domain.Address, t Tables) string {
	if p := strings.ToUpper(strings.TrimSpace(a.Province)); p != "" {
		return p
	}
	postal := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(a.PostalCode), " ", ""))
	if postal == "" {
		return UnknownZone
	}
	runes := []rune(postal)
	if region, ok := t.PostalRegions[string(runes[0])]; ok {
		return region
	}
	if len(runes) > 3 {
		return string(runes[:3])
	}
	return postal
}

func zoneDistance(a, b string, t Tables) float64 {
	if a == b {
		return sameZoneMiles
	}
	if d, ok := t.RegionDistances[RegionPairKey(a, b)]; ok {
		return d
	}
	return defaultZoneMiles
}
