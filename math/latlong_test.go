// math/latlong_test.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestLatLonScale(t *testing.T) {
	kx, ky := LatLonScale(0)
	if Abs(kx-111.32070) > 1e-4 {
		t.Errorf("kx at equator: got %f, expected ~111.3207", kx)
	}
	if Abs(ky-110.56724) > 1e-4 {
		t.Errorf("ky at equator: got %f, expected ~110.5672", ky)
	}

	kx, ky = LatLonScale(60)
	if kx < 55 || kx > 56.5 {
		t.Errorf("kx at 60N: got %f, expected ~55.8", kx)
	}
	if ky < 111 || ky > 111.5 {
		t.Errorf("ky at 60N: got %f, expected ~111.4", ky)
	}

	// Symmetric about the equator
	kxn, kyn := LatLonScale(48.5)
	kxs, kys := LatLonScale(-48.5)
	if kxn != kxs || kyn != kys {
		t.Errorf("scale not symmetric: (%f,%f) vs (%f,%f)", kxn, kyn, kxs, kys)
	}
}

func TestDistance(t *testing.T) {
	pts := []Point2LL{
		{8.877760, 48.773972},
		{8.9, 48.8},
		{-122.3, 47.6},
		{-122.31, 47.59},
		{0, 0},
		{0.001, -0.001},
	}

	for _, a := range pts {
		if d, b := Distance(a, a); d != 0 || b != 0 {
			t.Errorf("%v: distance to self (%f, %f), expected (0, 0)", a, d, b)
		}

		for _, b := range pts {
			if a == b {
				continue
			}
			dab, bab := Distance(a, b)
			dba, bba := Distance(b, a)
			if dab != dba {
				t.Errorf("%v-%v: distance not symmetric: %f vs %f", a, b, dab, dba)
			}
			if HeadingDifference(bab, OppositeHeading(bba)) > 1e-9 {
				t.Errorf("%v-%v: bearings %f and %f are not reciprocal", a, b, bab, bba)
			}
			if bab < 0 || bab >= 360 {
				t.Errorf("%v-%v: bearing %f out of range", a, b, bab)
			}
		}
	}

	// One arc minute of latitude is roughly a nautical mile.
	d, b := Distance(Point2LL{8, 48}, Point2LL{8, 48 + 1./60})
	if Abs(d-1853) > 5 {
		t.Errorf("1' of latitude: got %fm, expected ~1853m", d)
	}
	if b != 0 {
		t.Errorf("due north: got bearing %f", b)
	}
	if _, b := Distance(Point2LL{8, 48}, Point2LL{7.9, 48}); Abs(b-270) > 1e-9 {
		t.Errorf("due west: got bearing %f", b)
	}
}

func TestDestination(t *testing.T) {
	center := Point2LL{8.5, 48.5}
	for _, bearing := range []float64{0, 45, 90, 135, 180, 225, 270, 315, 359} {
		for _, km := range []float64{0.5, 5, 20} {
			p := Destination(center, bearing, km)
			d, b := Distance(center, p)
			// Destination scales at the origin latitude while Distance
			// uses the mean latitude, so allow for a small discrepancy.
			if Abs(d-km*1000) > km*2 {
				t.Errorf("bearing %f, %fkm: round trip distance %fm", bearing, km, d)
			}
			if HeadingDifference(b, bearing) > 0.1 {
				t.Errorf("bearing %f, %fkm: round trip bearing %f", bearing, km, b)
			}
		}
	}

	if p := Destination(center, 123, 0); p != center {
		t.Errorf("zero distance moved the point to %v", p)
	}
}

func TestDMSString(t *testing.T) {
	for _, test := range []struct {
		p    Point2LL
		want string
	}{
		{Point2LL{8.877778, 48.773889}, "48:46:26 N 008:52:40 E"},
		{Point2LL{-73.771385, 40.6328888}, "40:37:58 N 073:46:17 W"},
		{Point2LL{151.2, -33.85}, "33:51:00 S 151:12:00 E"},
		// Rounding carries into the minutes rather than printing 60 seconds.
		{Point2LL{9.99999, 49.99999}, "50:00:00 N 010:00:00 E"},
	} {
		if got := test.p.DMSString(); got != test.want {
			t.Errorf("%v: got %q, expected %q", [2]float64(test.p), got, test.want)
		}
	}
}

func TestNormalizeHeading(t *testing.T) {
	for _, test := range [][2]float64{{0, 0}, {360, 0}, {-90, 270}, {725, 5}, {-360, 0}, {359.5, 359.5}} {
		if got := NormalizeHeading(test[0]); got != test[1] {
			t.Errorf("NormalizeHeading(%f) = %f, expected %f", test[0], got, test[1])
		}
	}
}
