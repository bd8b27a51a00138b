// file: internals/features/geofence/service/circle.go
package service

import "math"

// Circle adalah boundary lingkaran sebuah site: titik pusat + radius meter.
type Circle struct {
	CenterLat float64
	CenterLon float64
	RadiusM   float64
}

// Contains: true kalau koordinat berada di dalam (atau tepat di tepi) lingkaran.
func (b Circle) Contains(p Coordinate) bool {
	return haversineMeters(b.CenterLat, b.CenterLon, p.Lat, p.Lon) <= b.RadiusM
}

const earthRadiusM = 6371000.0

// haversineMeters menghitung jarak great-circle dua koordinat dalam meter.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
