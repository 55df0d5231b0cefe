// planar/geos.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build geos

package planar

import (
	"github.com/airspace-tools/aircheck/math"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/twpayne/go-geos"
)

// GEOSEngine answers the planar predicates with the GEOS library.
type GEOSEngine struct {
	ctx   *geos.Context
	geoms *lru.Cache[*math.Polygon, *geos.Geom]
}

func NewGEOSEngine(cacheSize int) *GEOSEngine {
	c, err := lru.New[*math.Polygon, *geos.Geom](cacheSize)
	if err != nil {
		c, _ = lru.New[*math.Polygon, *geos.Geom](DefaultCacheSize)
	}
	return &GEOSEngine{ctx: geos.NewContext(), geoms: c}
}

func Default() Engine {
	return NewGEOSEngine(DefaultCacheSize)
}

func (e *GEOSEngine) Name() string { return "geos" }

func (e *GEOSEngine) geom(p *math.Polygon) *geos.Geom {
	if g, ok := e.geoms.Get(p); ok {
		return g
	}

	ring := make([][]float64, 0, len(p.Vertices)+1)
	for _, v := range p.Closed() {
		ring = append(ring, []float64{v[0], v[1]})
	}
	g := e.ctx.NewPolygon([][][]float64{ring})
	e.geoms.Add(p, g)
	return g
}

func (e *GEOSEngine) Valid(p *math.Polygon) bool {
	if len(p.Vertices) < 3 {
		return false
	}
	return e.geom(p).IsValid()
}

func (e *GEOSEngine) IntersectionArea(a, b *math.Polygon) float64 {
	if !math.Overlaps(a.Bounds, b.Bounds) {
		return 0
	}
	return e.geom(a).Intersection(e.geom(b)).Area()
}

func (e *GEOSEngine) Intersection(a, b *math.Polygon) [][]math.Point2LL {
	if !math.Overlaps(a.Bounds, b.Bounds) {
		return nil
	}

	var r [][]math.Point2LL
	var collect func(g *geos.Geom)
	collect = func(g *geos.Geom) {
		switch g.TypeID() {
		case geos.TypeIDPolygon:
			var pts []math.Point2LL
			for _, c := range g.ExteriorRing().CoordSeq().ToCoords() {
				pts = append(pts, math.Point2LL{c[0], c[1]})
			}
			if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
				pts = pts[:len(pts)-1]
			}
			if len(pts) >= 3 {
				r = append(r, pts)
			}
		case geos.TypeIDMultiPolygon, geos.TypeIDGeometryCollection:
			for i := range g.NumGeometries() {
				collect(g.Geometry(i))
			}
		}
	}
	collect(e.geom(a).Intersection(e.geom(b)))
	return r
}
