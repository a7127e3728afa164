package utils

import "math"

// EarthRadiusKm is the mean Earth radius used for all haversine computations.
const EarthRadiusKm = 6371.0

// HaversineDistance returns the great-circle distance between two points in
// kilometers. Inputs are in degrees.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// KmToRadians converts a distance in kilometers to the central angle used by
// the spatial index. The index stores coordinates in radians and measures
// distance on the unit sphere, so query radii must go through this conversion.
func KmToRadians(km float64) float64 {
	return km / EarthRadiusKm
}

// RadiansToKm is the inverse of KmToRadians.
func RadiansToKm(rad float64) float64 {
	return rad * EarthRadiusKm
}

// ValidateCoordinates reports whether lat/lon form a valid geographic point.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
