// Package geom holds the small amount of spherical and planar math needed to
// compare road segments against a direction. Points are orb.Points, so the
// first coordinate is longitude and the second is latitude.
package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// EarthRadiusKm is the sphere radius used by Haversine. Reports are compared
// against output computed with exactly this value, so do not swap it for the
// WGS84 mean radius.
const EarthRadiusKm = 6367.0

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// Haversine returns the great circle distance between two points in
// kilometers.
func Haversine(p1, p2 orb.Point) float64 {
	lon1, lat1 := radians(p1.Lon()), radians(p1.Lat())
	lon2, lat2 := radians(p2.Lon()), radians(p2.Lat())

	dlon := lon2 - lon1
	dlat := lat2 - lat1
	a := math.Pow(math.Sin(dlat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}

// Vector is a displacement in the lon/lat plane. It is not reprojected; at
// metro scale the distortion does not matter for alignment checks.
type Vector struct {
	DX, DY float64
}

// Sub returns the displacement from p0 to p1 in degrees.
func Sub(p1, p0 orb.Point) Vector {
	return Vector{p1.Lon() - p0.Lon(), p1.Lat() - p0.Lat()}
}

// FromAzimuth converts a compass bearing (degrees clockwise from north) into
// a unit vector pointing east by DX and north by DY.
func FromAzimuth(deg float64) Vector {
	r := radians(deg)
	return Vector{math.Sin(r), math.Cos(r)}
}

func (v Vector) Dot(w Vector) float64 {
	return v.DX*w.DX + v.DY*w.DY
}

// Cosine is the cosine of the angle between v and w. It is NaN when either
// vector has zero length.
func (v Vector) Cosine(w Vector) float64 {
	return v.Dot(w) / math.Sqrt(v.Dot(v)*w.Dot(w))
}
