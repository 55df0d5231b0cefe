// airspace/record.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"github.com/airspace-tools/aircheck/math"
)

// Record is a single airspace as read from the input.
type Record struct {
	ID      int // position in the input
	Name    string
	Class   string
	Floor   string // as written; empty if missing
	Ceiling string
	Line    int // source line of the AC statement

	FloorLine, CeilingLine int

	Elements []Element

	// Set by the height check.
	FloorFt, CeilingFt float64
	HeightsValid       bool

	resolved     []ResolvedPoint
	polygon      *math.Polygon
	polygonBuilt bool
}

// ResolvedPoint is a boundary vertex after arcs and circles have been
// turned into points. Computed is set for points that were not written
// out in the source.
type ResolvedPoint struct {
	P        math.Point2LL
	Computed bool
}

// Resolved returns the record's resolved boundary, or nil if it hasn't
// been resolved yet.
func (r *Record) Resolved() []ResolvedPoint {
	return r.resolved
}

// Polygon returns the record's boundary polygon, building it from the
// resolved points the first time it's called. It returns nil if the
// boundary has fewer than three distinct points.
func (r *Record) Polygon() *math.Polygon {
	if !r.polygonBuilt {
		r.polygon = BuildPolygon(r.resolved)
		r.polygonBuilt = true
	}
	return r.polygon
}

// IsOpen reports whether the boundary of the record does not end where
// it starts; it also returns the two points. Records that start or end
// with a circle are never open.
func (r *Record) IsOpen() (first, last math.Point2LL, open bool) {
	if len(r.Elements) == 0 {
		return
	}
	var okf, okl bool
	first, okf = FirstPoint(r.Elements[0])
	last, okl = LastPoint(r.Elements[len(r.Elements)-1])
	open = okf && okl && first != last
	return
}

// HasHeights reports whether the record gives both a floor and a ceiling.
func (r *Record) HasHeights() bool {
	return r.Floor != "" && r.Ceiling != ""
}

// DisplayName returns the name:class string used to identify the record
// in reports and, if both heights are given, its height band.
func (r *Record) DisplayName() (name string, heights string) {
	name = r.Name + ":" + r.Class
	if r.HasHeights() {
		heights = "(" + r.Floor + "-" + r.Ceiling + ")"
	}
	return
}
