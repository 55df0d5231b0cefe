// planar/engine.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package planar provides the two-dimensional polygon predicates the
// consistency checks need: validity of a ring and the area shared by two
// rings. Coordinates are treated as planar (longitude as x, latitude as
// y); areas are in square degrees.
package planar

import (
	"github.com/airspace-tools/aircheck/math"
)

// Engine implementations must be safe for concurrent use.
type Engine interface {
	// Name identifies the engine in logs.
	Name() string
	// Valid reports whether the polygon is a simple ring with non-zero
	// area.
	Valid(p *math.Polygon) bool
	// IntersectionArea returns the area of the intersection of a and b.
	IntersectionArea(a, b *math.Polygon) float64
	// Intersection returns the intersection of a and b as a set of
	// polygons.
	Intersection(a, b *math.Polygon) [][]math.Point2LL
}

// DefaultCacheSize is the number of polygons whose derived geometry an
// engine keeps around.
const DefaultCacheSize = 4096

// MinArea is the smallest intersection area, in square degrees, that is
// taken to be a real overlap; it is about one square meter. Anything
// below it is numerical noise along shared boundaries.
const MinArea = 1e-10
