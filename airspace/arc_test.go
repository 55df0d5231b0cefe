// airspace/arc_test.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/airspace-tools/aircheck/math"
)

var center = math.Point2LL{8.5, 48.5}

func checkOnCircle(t *testing.T, pts []ResolvedPoint, radiusKm float64) {
	t.Helper()
	for i, p := range pts {
		d, _ := math.Distance(center, p.P)
		// Destination and Distance scale at different latitudes, so allow
		// a little slack.
		if gomath.Abs(d-radiusKm*1000) > radiusKm*2 {
			t.Errorf("point %d at %.1fm from center, expected %.1fm", i, d, radiusKm*1000)
		}
	}
}

func bearingTo(p math.Point2LL) float64 {
	_, b := math.Distance(center, p)
	return b
}

func TestArcByBearingsEdges(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		clockwise  bool
		n          int
	}{
		{name: "clockwise", start: 10, end: 50, clockwise: true, n: 41},
		{name: "counter-clockwise", start: 50, end: 10, clockwise: false, n: 41},
		{name: "clockwise through north", start: 350, end: 20, clockwise: true, n: 31},
		{name: "counter-clockwise through north", start: 20, end: 340, clockwise: false, n: 41},
		{name: "fractional", start: 0, end: 2.5, clockwise: true, n: 4},
	}

	r := Resolver{Step: 1}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			pts := r.ArcByBearings(center, 10, test.start, test.end, test.clockwise, true)
			if len(pts) != test.n {
				t.Fatalf("got %d points, expected %d", len(pts), test.n)
			}
			checkOnCircle(t, pts, 10)

			if b := bearingTo(pts[0].P); math.HeadingDifference(b, test.start) > 0.05 {
				t.Errorf("first point at bearing %f, expected %f", b, test.start)
			}
			if b := bearingTo(pts[len(pts)-1].P); math.HeadingDifference(b, test.end) > 0.05 {
				t.Errorf("last point at bearing %f, expected %f", b, test.end)
			}

			// Monotone in the direction of travel.
			prev := bearingTo(pts[0].P)
			for i, p := range pts[1:] {
				b := bearingTo(p.P)
				delta := math.NormalizeHeading(b - prev)
				if !test.clockwise {
					delta = math.NormalizeHeading(prev - b)
				}
				if delta <= 0 || delta > 1.5 {
					t.Errorf("point %d: bearing step %f from %f to %f", i+1, delta, prev, b)
				}
				prev = b
			}

			for i, p := range pts {
				if !p.Computed {
					t.Errorf("point %d not marked computed", i)
				}
			}
		})
	}
}

func TestArcByBearingsNoEdges(t *testing.T) {
	r := Resolver{Step: 10}
	with := r.ArcByBearings(center, 5, 0, 90, true, true)
	without := r.ArcByBearings(center, 5, 0, 90, true, false)

	if len(with) != 10 {
		t.Errorf("with edges: got %d points, expected 10", len(with))
	}
	if len(without) != 8 {
		t.Fatalf("without edges: got %d points, expected 8", len(without))
	}
	for i := range without {
		if without[i] != with[i+1] {
			t.Errorf("point %d: got %v, expected %v", i, without[i], with[i+1])
		}
	}
}

func TestArcByEndpoints(t *testing.T) {
	start := math.Destination(center, 30, 10)
	end := math.Destination(center, 120, 10)

	r := Resolver{Step: 1}
	pts := r.ArcByEndpoints(center, start, end, true)
	if pts[0].P != start || pts[0].Computed {
		t.Errorf("first point %v, expected literal start %v", pts[0], start)
	}
	if pts[len(pts)-1].P != end || pts[len(pts)-1].Computed {
		t.Errorf("last point %v, expected literal end %v", pts[len(pts)-1], end)
	}
	for i, p := range pts[1 : len(pts)-1] {
		if !p.Computed {
			t.Errorf("interior point %d not computed", i)
		}
	}
	checkOnCircle(t, pts, 10)
	if len(pts) < 89 || len(pts) > 92 {
		t.Errorf("got %d points for a 90 degree arc", len(pts))
	}

	ccw := r.ArcByEndpoints(center, start, end, false)
	// Counter-clockwise goes the long way around.
	if len(ccw) < 269 || len(ccw) > 272 {
		t.Errorf("got %d points for a 270 degree arc", len(ccw))
	}

	r.NoArc = true
	chord := r.ArcByEndpoints(center, start, end, true)
	if len(chord) != 2 || chord[0].P != start || chord[1].P != end {
		t.Errorf("NoArc: got %v, expected chord from start to end", chord)
	}
}

func TestCircle(t *testing.T) {
	r := Resolver{Step: 1}
	pts := r.Circle(center, 5)
	if len(pts) != 362 {
		t.Errorf("got %d points, expected 362", len(pts))
	}
	checkOnCircle(t, pts, 5)

	poly := BuildPolygon(pts)
	if poly == nil {
		t.Fatalf("no polygon built from circle")
	}
	if len(poly.Vertices) != 360 {
		t.Errorf("circle polygon has %d vertices, expected 360", len(poly.Vertices))
	}

	r.NoArc = true
	if pts := r.Circle(center, 5); len(pts) != 4 {
		t.Errorf("NoArc circle: got %d points, expected 4", len(pts))
	}

	r = Resolver{Step: 10}
	if pts := r.Circle(center, 5); len(pts) != 38 {
		t.Errorf("fast circle: got %d points, expected 38", len(pts))
	}
}

type bogusElement struct{}

func (bogusElement) Line() int  { return 12 }
func (bogusElement) isElement() {}

func TestResolveRecord(t *testing.T) {
	rec := &Record{
		Name: "TEST",
		Elements: []Element{
			PointElement{Location: math.Point2LL{8, 48}},
			ArcByRadius{Center: center, RadiusNM: 5, StartBearing: 0, EndBearing: 90, Clockwise: true},
			PointElement{Location: math.Point2LL{8, 48}},
		},
	}

	r := Resolver{Step: 1}
	pts, err := r.Record(rec)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 1+91+1 {
		t.Errorf("got %d points, expected 93", len(pts))
	}
	if pts[0].Computed || pts[len(pts)-1].Computed {
		t.Errorf("literal points marked computed")
	}

	// Resolving again returns the stored points, even with other options.
	again, err := Resolver{Step: 10}.Record(rec)
	if err != nil || len(again) != len(pts) {
		t.Errorf("re-resolving changed the points: %d vs %d (%v)", len(again), len(pts), err)
	}

	bad := &Record{Name: "BAD", Elements: []Element{bogusElement{}}}
	if _, err := r.Record(bad); !errors.Is(err, ErrUnknownElement) {
		t.Errorf("expected ErrUnknownElement, got %v", err)
	}
}

func TestBuildPolygon(t *testing.T) {
	p := func(x, y float64) ResolvedPoint { return ResolvedPoint{P: math.Point2LL{x, y}} }

	tests := []struct {
		name  string
		pts   []ResolvedPoint
		nvert int
	}{
		{name: "triangle", pts: []ResolvedPoint{p(0, 0), p(1, 0), p(0, 1)}, nvert: 3},
		{name: "closed square", pts: []ResolvedPoint{p(0, 0), p(1, 0), p(1, 1), p(0, 1), p(0, 0)}, nvert: 4},
		{name: "duplicates", pts: []ResolvedPoint{p(0, 0), p(1, 0), p(1, 0), p(1, 1), p(0, 0)}, nvert: 3},
		{name: "two points", pts: []ResolvedPoint{p(0, 0), p(1, 0)}, nvert: 0},
		{name: "closed two points", pts: []ResolvedPoint{p(0, 0), p(1, 0), p(0, 0)}, nvert: 0},
		{name: "empty", nvert: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			poly := BuildPolygon(test.pts)
			if test.nvert == 0 {
				if poly != nil {
					t.Errorf("expected nil polygon, got %v", poly.Vertices)
				}
			} else if poly == nil {
				t.Errorf("expected polygon with %d vertices, got nil", test.nvert)
			} else if len(poly.Vertices) != test.nvert {
				t.Errorf("got %d vertices, expected %d", len(poly.Vertices), test.nvert)
			}
		})
	}
}

func TestFindCrossing(t *testing.T) {
	bowtie := math.MakePolygon([]math.Point2LL{{0, 0}, {1, 1}, {1, 0}, {0, 1}})
	if _, _, _, _, found := findCrossing(bowtie); !found {
		t.Errorf("no crossing found in bowtie")
	}

	// Touching at a vertex isn't a crossing.
	touching := math.MakePolygon([]math.Point2LL{{0, 0}, {4, 0}, {2, 2}, {4, 4}, {0, 4}, {2, 2}})
	if a0, a1, b0, b1, found := findCrossing(touching); found {
		t.Errorf("unexpected crossing %v-%v / %v-%v", a0, a1, b0, b1)
	}

	square := math.MakePolygon([]math.Point2LL{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	if _, _, _, _, found := findCrossing(square); found {
		t.Errorf("unexpected crossing in square")
	}
}
