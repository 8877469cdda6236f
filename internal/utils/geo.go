package utils

import (
	"fmt"
	"math"
)

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Ring []Point

func (p Point) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}

func NewPointFromCoordinates(coordinates []float64) Point {
	if len(coordinates) >= 2 {
		return Point{Lat: coordinates[1], Lng: coordinates[0]}
	}
	return Point{}
}

// RingFromCoordinates converts a stored [lng, lat] coordinate list into a
// Ring, skipping malformed vertices.
func RingFromCoordinates(coordinates [][]float64) Ring {
	ring := make(Ring, 0, len(coordinates))
	for _, c := range coordinates {
		if len(c) >= 2 {
			ring = append(ring, Point{Lat: c[1], Lng: c[0]})
		}
	}
	return ring
}

func IsValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// IsValidRing reports whether the ring has at least 3 distinct vertices.
// A closing vertex equal to the first is tolerated and not counted twice.
func IsValidRing(ring Ring) bool {
	distinct := make(map[Point]struct{}, len(ring))
	for _, p := range ring {
		distinct[p] = struct{}{}
	}
	return len(distinct) >= 3
}

const geoEpsilon = 1e-9

// IsPointOnSegment reports whether p lies on the segment a-b.
func IsPointOnSegment(p, a, b Point) bool {
	cross := (b.Lng-a.Lng)*(p.Lat-a.Lat) - (b.Lat-a.Lat)*(p.Lng-a.Lng)
	if math.Abs(cross) > geoEpsilon {
		return false
	}
	return p.Lng >= math.Min(a.Lng, b.Lng)-geoEpsilon &&
		p.Lng <= math.Max(a.Lng, b.Lng)+geoEpsilon &&
		p.Lat >= math.Min(a.Lat, b.Lat)-geoEpsilon &&
		p.Lat <= math.Max(a.Lat, b.Lat)+geoEpsilon
}

// IsPointInRing tests point containment in a simple polygon ring using
// ray casting. Points on an edge or vertex count as contained.
func IsPointInRing(point Point, ring Ring) bool {
	if len(ring) < 3 {
		return false
	}

	x, y := point.Lng, point.Lat
	inside := false

	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		if IsPointOnSegment(point, ring[j], ring[i]) {
			return true
		}

		xi, yi := ring[i].Lng, ring[i].Lat
		xj, yj := ring[j].Lng, ring[j].Lat

		if (yi > y) != (yj > y) {
			xinters := (y-yi)/(yj-yi)*(xj-xi) + xi
			if x < xinters {
				inside = !inside
			}
		}
		j = i
	}

	return inside
}

// CalculateDistance returns the haversine distance between two points in
// kilometers.
func CalculateDistance(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKM = 6371.0

	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}
