// airspace/element.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"github.com/airspace-tools/aircheck/math"
)

// Element is one boundary statement of an airspace. The set of
// implementations is closed: PointElement, ArcByRadius, ArcByEndpoints
// and Circle.
type Element interface {
	// Line returns the source line of the element, or 0 if unknown.
	Line() int
	isElement()
}

// PointElement is a boundary vertex (DP).
type PointElement struct {
	Location   math.Point2LL
	SourceLine int
}

// ArcByRadius is an arc given by its center, radius and the bearings of
// its endpoints (DA).
type ArcByRadius struct {
	Center       math.Point2LL
	RadiusNM     float64
	StartBearing float64
	EndBearing   float64
	Clockwise    bool
	SourceLine   int
}

// ArcByEndpoints is an arc given by its center and two points on it (DB).
type ArcByEndpoints struct {
	Center     math.Point2LL
	Start      math.Point2LL
	End        math.Point2LL
	Clockwise  bool
	SourceLine int
}

// Circle is a full circle (DC); it makes up the whole boundary of its
// airspace.
type Circle struct {
	Center     math.Point2LL
	RadiusNM   float64
	SourceLine int
}

func (e PointElement) Line() int   { return e.SourceLine }
func (e ArcByRadius) Line() int    { return e.SourceLine }
func (e ArcByEndpoints) Line() int { return e.SourceLine }
func (e Circle) Line() int         { return e.SourceLine }

func (PointElement) isElement()   {}
func (ArcByRadius) isElement()    {}
func (ArcByEndpoints) isElement() {}
func (Circle) isElement()         {}

// LiteralPoints returns the points of the element that are written out
// in the source. The endpoints of DA arcs are derived from the radius and
// are not literal; neither is anything about a circle.
func LiteralPoints(e Element) []math.Point2LL {
	switch el := e.(type) {
	case PointElement:
		return []math.Point2LL{el.Location}
	case ArcByEndpoints:
		return []math.Point2LL{el.Start, el.End}
	default:
		return nil
	}
}

// FirstPoint returns the point at which the element starts; ok is false
// for circles, which have none.
func FirstPoint(e Element) (p math.Point2LL, ok bool) {
	switch el := e.(type) {
	case PointElement:
		return el.Location, true
	case ArcByEndpoints:
		return el.Start, true
	case ArcByRadius:
		return math.Destination(el.Center, el.StartBearing, el.RadiusNM*math.NauticalMilesToKm), true
	default:
		return math.Point2LL{}, false
	}
}

// LastPoint is the counterpart of FirstPoint.
func LastPoint(e Element) (p math.Point2LL, ok bool) {
	switch el := e.(type) {
	case PointElement:
		return el.Location, true
	case ArcByEndpoints:
		return el.End, true
	case ArcByRadius:
		return math.Destination(el.Center, el.EndBearing, el.RadiusNM*math.NauticalMilesToKm), true
	default:
		return math.Point2LL{}, false
	}
}
