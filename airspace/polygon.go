// airspace/polygon.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"github.com/airspace-tools/aircheck/math"
)

// BuildPolygon returns the polygon bounded by the given points in order.
// Repeated consecutive points are collapsed and a final point that
// repeats the first is dropped. Nil is returned if fewer than three
// points remain.
func BuildPolygon(points []ResolvedPoint) *math.Polygon {
	var v []math.Point2LL
	for _, p := range points {
		if len(v) > 0 && v[len(v)-1] == p.P {
			continue
		}
		v = append(v, p.P)
	}
	if len(v) > 1 && v[0] == v[len(v)-1] {
		v = v[:len(v)-1]
	}

	if len(v) < 3 {
		return nil
	}
	return math.MakePolygon(v)
}

// findCrossing looks for two non-adjacent edges of the polygon that
// cross each other; touching edges don't count.
func findCrossing(p *math.Polygon) (a0, a1, b0, b1 math.Point2LL, found bool) {
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		a0, a1 = p.Segment(i)
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // adjacent via the closing edge
			}
			b0, b1 = p.Segment(j)
			if math.SegmentsCross(a0, a1, b0, b1) {
				return a0, a1, b0, b1, true
			}
		}
	}
	return
}
