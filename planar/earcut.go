// planar/earcut.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planar

import (
	"github.com/airspace-tools/aircheck/math"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mmp/earcut-go"
)

// EarcutEngine is the pure Go engine: polygons are triangulated with
// earcut and intersections are found by clipping pairs of triangles.
type EarcutEngine struct {
	tris *lru.Cache[*math.Polygon, []triangle]
}

type triangle struct {
	v      [][2]float64 // counter-clockwise
	bounds math.Extent2D
}

func NewEarcutEngine(cacheSize int) *EarcutEngine {
	c, err := lru.New[*math.Polygon, []triangle](cacheSize)
	if err != nil {
		// Only happens for a non-positive size.
		c, _ = lru.New[*math.Polygon, []triangle](DefaultCacheSize)
	}
	return &EarcutEngine{tris: c}
}

func (e *EarcutEngine) Name() string { return "earcut" }

// Valid reports touching or crossing edges as invalid, along with
// degenerate rings.
func (e *EarcutEngine) Valid(p *math.Polygon) bool {
	n := len(p.Vertices)
	if n < 3 || p.SignedArea() == 0 {
		return false
	}

	for i := 0; i < n; i++ {
		a0, a1 := p.Segment(i)
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				// Adjacent edges share a vertex; they are only a problem
				// if the ring doubles back on itself.
				b0, b1 := p.Segment(j)
				if j == i+1 && doublesBack(a0, a1, b1) {
					return false
				}
				if i == 0 && j == n-1 && doublesBack(b0, b1, a1) {
					return false
				}
				continue
			}
			b0, b1 := p.Segment(j)
			if math.SegmentsIntersect(a0, a1, b0, b1) {
				return false
			}
		}
	}
	return true
}

// doublesBack reports whether the path p0->p1->p2 reverses direction
// along a line, so that the two edges overlap.
func doublesBack(p0, p1, p2 math.Point2LL) bool {
	if math.Cross(p0, p1, p2) != 0 {
		return false
	}
	d0, d1 := math.Sub2f(p1, p0), math.Sub2f(p2, p1)
	return d0[0]*d1[0]+d0[1]*d1[1] < 0
}

func (e *EarcutEngine) triangles(p *math.Polygon) []triangle {
	if t, ok := e.tris.Get(p); ok {
		return t
	}

	vertices := make([]earcut.Vertex, len(p.Vertices))
	for i, v := range p.Vertices {
		vertices[i].P = [2]float64(v)
	}

	var tris []triangle
	for _, tri := range earcut.Triangulate(earcut.Polygon{Rings: [][]earcut.Vertex{vertices}}) {
		v := [][2]float64{tri.Vertices[0].P, tri.Vertices[1].P, tri.Vertices[2].P}
		if math.SignedArea(v) < 0 {
			v[1], v[2] = v[2], v[1]
		}
		bounds := math.EmptyExtent2D()
		for _, pt := range v {
			bounds = math.Union(bounds, pt)
		}
		tris = append(tris, triangle{v: v, bounds: bounds})
	}

	e.tris.Add(p, tris)
	return tris
}

func (e *EarcutEngine) fragments(a, b *math.Polygon, f func([][2]float64)) {
	if !math.Overlaps(a.Bounds, b.Bounds) {
		return
	}

	tb := e.triangles(b)
	for _, ta := range e.triangles(a) {
		if !math.Overlaps(ta.bounds, b.Bounds) {
			continue
		}
		for _, t := range tb {
			if !math.Overlaps(ta.bounds, t.bounds) {
				continue
			}
			if c := math.ClipConvex(ta.v, t.v); len(c) >= 3 {
				f(c)
			}
		}
	}
}

func (e *EarcutEngine) IntersectionArea(a, b *math.Polygon) float64 {
	var area float64
	e.fragments(a, b, func(c [][2]float64) {
		if ar := math.Abs(math.SignedArea(c)); ar > MinArea*1e-4 {
			area += ar
		}
	})
	return area
}

func (e *EarcutEngine) Intersection(a, b *math.Polygon) [][]math.Point2LL {
	var r [][]math.Point2LL
	e.fragments(a, b, func(c [][2]float64) {
		if math.Abs(math.SignedArea(c)) > MinArea*1e-4 {
			pts := make([]math.Point2LL, len(c))
			for i, p := range c {
				pts[i] = math.Point2LL(p)
			}
			r = append(r, pts)
		}
	})
	return r
}
