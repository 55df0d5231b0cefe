// math/core.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

// Degrees converts an angle expressed in radians to degrees
func Degrees(r float64) float64 {
	return r * 180 / gomath.Pi
}

// Radians converts an angle expressed in degrees to radians
func Radians(d float64) float64 {
	return d / 180 * gomath.Pi
}

// Thin wrappers so that callers don't need to import both this package
// and the standard library's math package.

func Sin(a float64) float64 { return gomath.Sin(a) }
func Cos(a float64) float64 { return gomath.Cos(a) }
func Atan2(y, x float64) float64 { return gomath.Atan2(y, x) }
func Sqrt(a float64) float64 { return gomath.Sqrt(a) }
func Mod(a, b float64) float64 { return gomath.Mod(a, b) }
func Round(v float64) float64 { return gomath.Round(v) }

func Sign(v float64) float64 {
	if v > 0 {
		return 1
	} else if v < 0 {
		return -1
	}
	return 0
}

func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

// NormalizeHeading reduces h to [0,360).
func NormalizeHeading(h float64) float64 {
	h = Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		// h was a tiny negative value
		h = 0
	}
	return h
}

// OppositeHeading returns the reciprocal of h in [0,360).
func OppositeHeading(h float64) float64 {
	return NormalizeHeading(h + 180)
}

// HeadingDifference returns the minimum difference between two
// headings. (i.e., the result is always in the range [0,180].)
func HeadingDifference(a float64, b float64) float64 {
	d := Abs(a - b)
	d = Mod(d, 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}
