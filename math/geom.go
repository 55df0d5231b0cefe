// math/geom.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// 2D vectors

// Various useful functions for arithmetic with 2D points/vectors.
// Names are brief in order to avoid clutter when they're used.

// a+b
func Add2f(a [2]float64, b [2]float64) [2]float64 {
	return [2]float64{a[0] + b[0], a[1] + b[1]}
}

// a-b
func Sub2f(a [2]float64, b [2]float64) [2]float64 {
	return [2]float64{a[0] - b[0], a[1] - b[1]}
}

// a*s
func Scale2f(a [2]float64, s float64) [2]float64 {
	return [2]float64{s * a[0], s * a[1]}
}

// Cross returns the z component of the cross product of (a-o) and (b-o);
// it is positive if o, a, b make a counter-clockwise turn.
func Cross(o, a, b [2]float64) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

///////////////////////////////////////////////////////////////////////////
// Extent2D

// Extent2D represents a 2D bounding box with the two vertices at its
// opposite minimum and maximum corners.
type Extent2D struct {
	P0, P1 [2]float64
}

// EmptyExtent2D returns an Extent2D representing an empty bounding box.
func EmptyExtent2D() Extent2D {
	// Degenerate bounds
	return Extent2D{P0: [2]float64{1e30, 1e30}, P1: [2]float64{-1e30, -1e30}}
}

// Extent2DFromP2LLs returns an Extent2D that bounds all of the provided
// points.
func Extent2DFromP2LLs(pts []Point2LL) Extent2D {
	e := EmptyExtent2D()
	for _, p := range pts {
		e = Union(e, p)
	}
	return e
}

func (e Extent2D) Center() [2]float64 {
	return [2]float64{(e.P0[0] + e.P1[0]) / 2, (e.P0[1] + e.P1[1]) / 2}
}

func (e Extent2D) Inside(p [2]float64) bool {
	return p[0] >= e.P0[0] && p[0] <= e.P1[0] && p[1] >= e.P0[1] && p[1] <= e.P1[1]
}

// Overlaps returns true if the two provided Extent2Ds overlap.
func Overlaps(a Extent2D, b Extent2D) bool {
	x := (a.P1[0] >= b.P0[0]) && (a.P0[0] <= b.P1[0])
	y := (a.P1[1] >= b.P0[1]) && (a.P0[1] <= b.P1[1])
	return x && y
}

func Union(e Extent2D, p [2]float64) Extent2D {
	e.P0[0] = min(e.P0[0], p[0])
	e.P0[1] = min(e.P0[1], p[1])
	e.P1[0] = max(e.P1[0], p[0])
	e.P1[1] = max(e.P1[1], p[1])
	return e
}

///////////////////////////////////////////////////////////////////////////
// Segments

// SegmentsCross reports whether the segments (p1, p2) and (p3, p4) cross
// each other at a single interior point. Segments that merely touch (an
// endpoint of one lies on the other) or that are collinear do not cross.
func SegmentsCross(p1, p2, p3, p4 [2]float64) bool {
	d1 := Sign(Cross(p1, p2, p3))
	d2 := Sign(Cross(p1, p2, p4))
	d3 := Sign(Cross(p3, p4, p1))
	d4 := Sign(Cross(p3, p4, p2))
	return d1*d2 < 0 && d3*d4 < 0
}

// SegmentsIntersect reports whether the closed segments (p1, p2) and (p3,
// p4) share at least one point, including touching endpoints and
// collinear overlap.
func SegmentsIntersect(p1, p2, p3, p4 [2]float64) bool {
	onSegment := func(p, q, r [2]float64) bool {
		// q is known to be collinear with p and r
		return q[0] >= min(p[0], r[0]) && q[0] <= max(p[0], r[0]) &&
			q[1] >= min(p[1], r[1]) && q[1] <= max(p[1], r[1])
	}

	d1 := Cross(p3, p4, p1)
	d2 := Cross(p3, p4, p2)
	d3 := Cross(p1, p2, p3)
	d4 := Cross(p1, p2, p4)

	if Sign(d1)*Sign(d2) < 0 && Sign(d3)*Sign(d4) < 0 {
		return true
	}
	return (d1 == 0 && onSegment(p3, p1, p4)) ||
		(d2 == 0 && onSegment(p3, p2, p4)) ||
		(d3 == 0 && onSegment(p1, p3, p2)) ||
		(d4 == 0 && onSegment(p1, p4, p2))
}

///////////////////////////////////////////////////////////////////////////
// Polygon

// Polygon is a simple closed ring of lat-long vertices. The ring is
// stored open: the edge from the last vertex back to the first one is
// implicit.
type Polygon struct {
	Vertices []Point2LL
	Bounds   Extent2D
}

func MakePolygon(v []Point2LL) *Polygon {
	return &Polygon{Vertices: v, Bounds: Extent2DFromP2LLs(v)}
}

// Segment returns the i'th edge of the ring.
func (p *Polygon) Segment(i int) (Point2LL, Point2LL) {
	return p.Vertices[i], p.Vertices[(i+1)%len(p.Vertices)]
}

// SignedArea returns the area of the polygon in square degrees; it is
// positive for counter-clockwise rings (with longitude as x).
func (p *Polygon) SignedArea() float64 {
	return SignedArea(p.Vertices)
}

// Closed returns the vertices with the first one repeated at the end.
func (p *Polygon) Closed() []Point2LL {
	return append(append([]Point2LL(nil), p.Vertices...), p.Vertices[0])
}

// SignedArea returns the shoelace area of the given open ring.
func SignedArea[P ~[2]float64](pts []P) float64 {
	var a float64
	for i := range pts {
		p0, p1 := pts[i], pts[(i+1)%len(pts)]
		a += p0[0]*p1[1] - p1[0]*p0[1]
	}
	return a / 2
}

// ClipConvex clips the polygon subject against the convex,
// counter-clockwise polygon clip (Sutherland-Hodgman) and returns the
// vertices of the clipped polygon, which may be empty.
func ClipConvex(subject, clip [][2]float64) [][2]float64 {
	out := subject
	for i := range clip {
		if len(out) == 0 {
			break
		}
		c0, c1 := clip[i], clip[(i+1)%len(clip)]
		in := out
		out = nil

		inside := func(p [2]float64) bool { return Cross(c0, c1, p) >= 0 }
		intersect := func(a, b [2]float64) [2]float64 {
			da, db := Cross(c0, c1, a), Cross(c0, c1, b)
			t := da / (da - db)
			return Add2f(a, Scale2f(Sub2f(b, a), t))
		}

		for j := range in {
			cur, prev := in[j], in[(j+len(in)-1)%len(in)]
			if inside(cur) {
				if !inside(prev) {
					out = append(out, intersect(prev, cur))
				}
				out = append(out, cur)
			} else if inside(prev) {
				out = append(out, intersect(prev, cur))
			}
		}
	}
	return out
}
