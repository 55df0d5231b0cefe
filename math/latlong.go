// math/latlong.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
)

const NauticalMilesToKm = 1.852

// FeetPerMeter is used to normalize metric altitudes.
const FeetPerMeter = 3.28084

///////////////////////////////////////////////////////////////////////////
// Point2LL

// Point2LL represents a 2D point on the Earth in latitude-longitude.
// Important: 0 (x) is longitude, 1 (y) is latitude
type Point2LL [2]float64

func (p Point2LL) Latitude() float64 {
	return p[1]
}

// Less orders points by longitude and then latitude; it gives the
// canonical order for unordered pairs of points.
func (p Point2LL) Less(q Point2LL) bool {
	if p[0] != q[0] {
		return p[0] < q[0]
	}
	return p[1] < q[1]
}

// DMSString returns the position in the degrees:minutes:seconds notation
// used by OpenAir files, e.g. 48:46:26 N 008:52:40 E
func (p Point2LL) DMSString() string {
	format := func(v float64, width int) string {
		total := int(Round(Abs(v) * 3600))
		return fmt.Sprintf("%0*d:%02d:%02d", width, total/3600, (total/60)%60, total%60)
	}

	ns, ew := "N", "E"
	if p[1] < 0 {
		ns = "S"
	}
	if p[0] < 0 {
		ew = "W"
	}
	return format(p[1], 2) + " " + ns + " " + format(p[0], 3) + " " + ew
}

func (p Point2LL) String() string {
	return p.DMSString()
}

///////////////////////////////////////////////////////////////////////////
// Flat-earth geodesy
//
// Airspace boundaries span at most a few tens of kilometers, so all
// distance computations use a local planar approximation with
// latitude-dependent scale factors rather than great circles.

// LatLonScale returns the number of kilometers per degree of longitude
// (kx) and per degree of latitude (ky) at the given latitude. The
// factors come from a fifth-order cosine series fit to the WGS84
// ellipsoid (http://1.usa.gov/1Wb1bv7).
func LatLonScale(lat float64) (kx, ky float64) {
	fcos := Cos(Radians(lat))
	cos2 := 2*fcos*fcos - 1
	cos3 := 2*fcos*cos2 - fcos
	cos4 := 2*fcos*cos3 - cos2
	cos5 := 2*fcos*cos4 - cos3

	kx = 111.41513*fcos - 0.09455*cos3 + 0.00012*cos5
	ky = 111.13209 - 0.56605*cos2 + 0.0012*cos4
	return
}

// Distance returns the distance in meters between the two points and the
// bearing from a to b in degrees [0,360). The scale factors are taken at
// the mean latitude of the two points. Coincident points give (0, 0).
func Distance(a, b Point2LL) (float64, float64) {
	kx, ky := LatLonScale((a[1] + b[1]) / 2)
	dx := (b[0] - a[0]) * kx
	dy := (b[1] - a[1]) * ky

	if dx == 0 && dy == 0 {
		return 0, 0
	}

	meters := Sqrt(dx*dx+dy*dy) * 1000
	// atan2(x, y) measures clockwise from north.
	return meters, NormalizeHeading(Degrees(Atan2(dx, dy)))
}

// Destination returns the point at the given distance (in km) along the
// given bearing from p. Unlike Distance, the scale factors are taken at
// the origin's latitude; arcs are always walked outward from their
// center.
func Destination(p Point2LL, bearing float64, km float64) Point2LL {
	a := Radians(bearing)
	dx := Sin(a) * km
	dy := Cos(a) * km

	kx, ky := LatLonScale(p[1])
	return Point2LL{p[0] + dx/kx, p[1] + dy/ky}
}

// DegreesForDistance returns conservative longitude and latitude extents,
// in degrees, that cover the given distance in meters around latitude
// lat. It is used to build search boxes for proximity queries.
func DegreesForDistance(lat float64, meters float64) (dlon, dlat float64) {
	kx, ky := LatLonScale(lat)
	// Guard against the pole, where kx goes to zero.
	kx = max(kx, 1)
	km := meters / 1000 * 1.1
	return km / kx, km / ky
}
