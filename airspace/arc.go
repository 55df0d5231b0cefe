// airspace/arc.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"errors"
	"fmt"
	"slices"

	"github.com/airspace-tools/aircheck/math"
)

var ErrUnknownElement = errors.New("unknown airspace element")

// Resolver turns arcs and circles into sequences of points.
type Resolver struct {
	// Step is the angular increment in degrees between computed points.
	Step float64
	// NoArc replaces arcs with the chord between their endpoints.
	NoArc bool
}

func NewResolver(opts Options) Resolver {
	r := Resolver{Step: 1, NoArc: opts.NoArc}
	if opts.FastArc {
		r.Step = 10
	}
	return r
}

// ArcByBearings returns the points of the arc around center with the
// given radius from the start bearing to the end bearing. If includeEdges
// is false, the points at the two bearings are omitted.
func (r Resolver) ArcByBearings(center math.Point2LL, radiusKm, start, end float64, clockwise, includeEdges bool) []ResolvedPoint {
	if !clockwise {
		start, end = end, start
	}
	for end < start {
		end += 360
	}
	for end > start+360 {
		end -= 360
	}

	var pts []ResolvedPoint
	emit := func(bearing float64) {
		pts = append(pts, ResolvedPoint{
			P:        math.Destination(center, math.NormalizeHeading(bearing), radiusKm),
			Computed: true,
		})
	}

	if includeEdges {
		emit(start)
	}
	if !r.NoArc && r.Step > 0 {
		// Points closer to the end than this are dropped in favor of the
		// end point itself.
		const eps = 1e-9
		for k := 1; ; k++ {
			a := start + float64(k)*r.Step
			if a >= end-eps {
				break
			}
			emit(a)
		}
	}
	if includeEdges {
		emit(end)
	}

	if !clockwise {
		slices.Reverse(pts)
	}
	return pts
}

// ArcByEndpoints resolves a DB arc. The radius is taken from the start
// point; the two endpoints are included as given.
func (r Resolver) ArcByEndpoints(center, start, end math.Point2LL, clockwise bool) []ResolvedPoint {
	d, startBearing := math.Distance(center, start)
	_, endBearing := math.Distance(center, end)

	pts := []ResolvedPoint{{P: start}}
	pts = append(pts, r.ArcByBearings(center, d/1000, startBearing, endBearing, clockwise, false)...)
	return append(pts, ResolvedPoint{P: end})
}

// Circle resolves a full circle as two half circles.
func (r Resolver) Circle(center math.Point2LL, radiusKm float64) []ResolvedPoint {
	if r.NoArc {
		// Two points can't bound an area, so use the four cardinal points.
		pts := make([]ResolvedPoint, 4)
		for i := range pts {
			pts[i] = ResolvedPoint{P: math.Destination(center, float64(90*i), radiusKm), Computed: true}
		}
		return pts
	}

	pts := r.ArcByBearings(center, radiusKm, 0, 180, true, true)
	return append(pts, r.ArcByBearings(center, radiusKm, 180, 360, true, true)...)
}

func (r Resolver) Element(e Element) ([]ResolvedPoint, error) {
	switch el := e.(type) {
	case PointElement:
		return []ResolvedPoint{{P: el.Location}}, nil
	case ArcByRadius:
		return r.ArcByBearings(el.Center, el.RadiusNM*math.NauticalMilesToKm, el.StartBearing, el.EndBearing,
			el.Clockwise, true), nil
	case ArcByEndpoints:
		return r.ArcByEndpoints(el.Center, el.Start, el.End, el.Clockwise), nil
	case Circle:
		return r.Circle(el.Center, el.RadiusNM*math.NauticalMilesToKm), nil
	default:
		return nil, fmt.Errorf("%T: %w", e, ErrUnknownElement)
	}
}

// Record resolves all of the record's elements and stores the result in
// the record. Records are only resolved once; later calls return the
// stored points.
func (r Resolver) Record(rec *Record) ([]ResolvedPoint, error) {
	if rec.resolved != nil {
		return rec.resolved, nil
	}

	pts := []ResolvedPoint{}
	for _, e := range rec.Elements {
		ep, err := r.Element(e)
		if err != nil {
			return nil, fmt.Errorf("%s, line %d: %w", rec.Name, e.Line(), err)
		}
		pts = append(pts, ep...)
	}
	rec.resolved = pts
	return pts, nil
}
