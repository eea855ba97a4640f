package utils

import "math"

const earthRadiusKm = 6371

// HaversineKm returns the great-circle distance between two points in
// kilometers, rounded to 2 decimal places.
func HaversineKm(lon1, lat1, lon2, lat2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusKm*c*100) / 100
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// EstimatedDeliveryMinutes maps distance to an ETA: 3 minutes per km
// plus a 15 minute base, clamped to [20,60].
func EstimatedDeliveryMinutes(distanceKm float64) int {
	minutes := int(math.Round(distanceKm*3)) + 15
	if minutes < 20 {
		return 20
	}
	if minutes > 60 {
		return 60
	}
	return minutes
}

// AdjustedDeliveryCharge adds 2 currency units per rounded km beyond
// 5 km to the shop's base charge.
func AdjustedDeliveryCharge(base, distanceKm float64) float64 {
	if distanceKm <= 5 {
		return base
	}
	return base + math.Round(distanceKm-5)*2
}
