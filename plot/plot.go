// plot/plot.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package plot draws resolved airspace boundaries as SVG.
package plot

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	gomath "math"
	"strings"

	"github.com/airspace-tools/aircheck/airspace"
	"github.com/airspace-tools/aircheck/math"
	"github.com/airspace-tools/aircheck/planar"
)

// Intersections larger than this, in square degrees, are not drawn;
// they usually come from airspaces stacked on top of each other rather
// than from digitizing errors. It's about 1km².
const MaxIntersectionArea = 1. / 110 * 1. / 110

const (
	margin      = 20
	numColors   = 30
	colorStep   = 7
	firstColor  = 25
	overlapFill = "red"
)

type Options struct {
	// Width of the image in pixels; the height follows from the extent
	// of the airspaces.
	Width int
	// ShowCoords labels points given in the input with their
	// coordinates.
	ShowCoords bool
	// Intersections colors the airspaces by whether they overlap
	// another one and fills the intersections.
	Intersections bool
	Title         string
}

// Write draws the resolved boundaries of the records to w. With
// Options.Intersections, the records involved in overlaps are drawn in
// blue, all others in black, and the intersections are filled in red.
func Write(w io.Writer, records []*airspace.Record, overlaps []airspace.Overlap, engine planar.Engine,
	opts Options) error {
	if opts.Width <= 0 {
		opts.Width = 1000
	}

	ext := math.EmptyExtent2D()
	n := 0
	for _, r := range records {
		for _, p := range r.Resolved() {
			ext = math.Union(ext, p.P)
			n++
		}
	}
	if n == 0 {
		return fmt.Errorf("nothing to plot")
	}

	pr := makeProjection(ext, opts.Width)
	var b bytes.Buffer

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		pr.width, pr.height, pr.width, pr.height)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="white"/>`+"\n")
	if opts.Title != "" {
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="14" font-family="sans-serif">%s</text>`+"\n", margin,
			margin-4, escape(opts.Title))
	}

	involved := make(map[*airspace.Record]bool)
	if opts.Intersections {
		for _, o := range overlaps {
			involved[o.A], involved[o.B] = true, true
			for _, ring := range engine.Intersection(o.A.Polygon(), o.B.Polygon()) {
				if math.Abs(math.SignedArea(ring)) >= MaxIntersectionArea {
					continue
				}
				fmt.Fprintf(&b, `<polygon points="%s" fill="%s" fill-opacity="0.5" stroke="%s"/>`+"\n",
					pr.points(ring), overlapFill, overlapFill)
			}
		}
	}

	colorIndex := firstColor
	for _, r := range records {
		pts := r.Resolved()
		if len(pts) == 0 {
			continue
		}

		var color string
		if opts.Intersections {
			color = "black"
			if involved[r] {
				color = "blue"
			}
		} else {
			color = fmt.Sprintf("hsl(%d,100%%,40%%)", colorIndex*360/numColors)
			colorIndex = (colorIndex + colorStep) % numColors
		}

		ll := make([]math.Point2LL, len(pts))
		for i, p := range pts {
			ll[i] = p.P
		}

		name, heights := r.DisplayName()
		fmt.Fprintf(&b, `<g stroke="%s" fill="%s">`+"\n", color, color)
		fmt.Fprintf(&b, `<title>%s %s (line %d)</title>`+"\n", escape(name), escape(heights), r.Line)
		fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke-width="0.5"/>`+"\n", pr.points(ll))

		if opts.ShowCoords {
			for _, p := range pts {
				if p.Computed {
					continue
				}
				x, y := pr.project(p.P)
				fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="1.5" stroke="none"/>`+"\n", x, y)
				fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="9" font-family="monospace" stroke="none">%s</text>`+"\n",
					x+3, y-3, p.P.DMSString())
			}
		}
		b.WriteString("</g>\n")
	}

	b.WriteString("</svg>\n")
	_, err := w.Write(b.Bytes())
	return err
}

func escape(s string) string {
	var sb strings.Builder
	xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

// projection maps latitude/longitude to image coordinates, scaling
// longitude by the local length of a degree so that shapes aren't
// distorted.
type projection struct {
	ext           math.Extent2D
	kx, ky, scale float64
	width, height int
}

func makeProjection(ext math.Extent2D, width int) projection {
	c := ext.Center()
	kx, ky := math.LatLonScale(c[1])

	wkm := max((ext.P1[0]-ext.P0[0])*kx, 1e-3)
	hkm := max((ext.P1[1]-ext.P0[1])*ky, 1e-3)
	scale := float64(width-2*margin) / wkm

	return projection{
		ext:    ext,
		kx:     kx,
		ky:     ky,
		scale:  scale,
		width:  width,
		height: int(gomath.Ceil(hkm*scale)) + 2*margin,
	}
}

func (pr projection) project(p math.Point2LL) (x, y float64) {
	x = margin + (p[0]-pr.ext.P0[0])*pr.kx*pr.scale
	y = margin + (pr.ext.P1[1]-p[1])*pr.ky*pr.scale
	return
}

func (pr projection) points(pts []math.Point2LL) string {
	var sb strings.Builder
	for i, p := range pts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		x, y := pr.project(p)
		fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
	}
	return sb.String()
}
