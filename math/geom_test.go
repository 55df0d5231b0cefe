// math/geom_test.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"slices"
	"testing"
)

func TestSegmentsCross(t *testing.T) {
	type seg [2][2]float64
	tests := []struct {
		name      string
		a, b      seg
		cross     bool
		intersect bool
	}{
		{name: "X", a: seg{{0, 0}, {2, 2}}, b: seg{{0, 2}, {2, 0}}, cross: true, intersect: true},
		{name: "disjoint", a: seg{{0, 0}, {1, 0}}, b: seg{{0, 1}, {1, 1}}, cross: false, intersect: false},
		{name: "T touch", a: seg{{0, 0}, {2, 0}}, b: seg{{1, 0}, {1, 1}}, cross: false, intersect: true},
		{name: "shared endpoint", a: seg{{0, 0}, {1, 1}}, b: seg{{1, 1}, {2, 0}}, cross: false, intersect: true},
		{name: "collinear overlap", a: seg{{0, 0}, {2, 0}}, b: seg{{1, 0}, {3, 0}}, cross: false, intersect: true},
		{name: "collinear apart", a: seg{{0, 0}, {1, 0}}, b: seg{{2, 0}, {3, 0}}, cross: false, intersect: false},
		{name: "lines cross outside", a: seg{{0, 0}, {1, 1}}, b: seg{{3, 0}, {2, 1}}, cross: false, intersect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentsCross(tt.a[0], tt.a[1], tt.b[0], tt.b[1]); got != tt.cross {
				t.Errorf("SegmentsCross = %v, expected %v", got, tt.cross)
			}
			if got := SegmentsCross(tt.b[0], tt.b[1], tt.a[0], tt.a[1]); got != tt.cross {
				t.Errorf("SegmentsCross (swapped) = %v, expected %v", got, tt.cross)
			}
			if got := SegmentsIntersect(tt.a[0], tt.a[1], tt.b[0], tt.b[1]); got != tt.intersect {
				t.Errorf("SegmentsIntersect = %v, expected %v", got, tt.intersect)
			}
		})
	}
}

func TestSignedArea(t *testing.T) {
	ccw := []Point2LL{{0, 0}, {2, 0}, {2, 1}, {0, 1}}
	if a := SignedArea(ccw); a != 2 {
		t.Errorf("ccw rectangle: got area %f, expected 2", a)
	}
	cw := slices.Clone(ccw)
	slices.Reverse(cw)
	if a := SignedArea(cw); a != -2 {
		t.Errorf("cw rectangle: got area %f, expected -2", a)
	}
	if a := MakePolygon(ccw).SignedArea(); a != 2 {
		t.Errorf("polygon: got area %f, expected 2", a)
	}
}

func TestClipConvex(t *testing.T) {
	square := func(x0, y0, s float64) [][2]float64 {
		return [][2]float64{{x0, y0}, {x0 + s, y0}, {x0 + s, y0 + s}, {x0, y0 + s}}
	}

	clipped := ClipConvex(square(0, 0, 2), square(1, 1, 2))
	if a := SignedArea(clipped); Abs(a-1) > 1e-12 {
		t.Errorf("overlapping squares: got area %f, expected 1", a)
	}

	if clipped := ClipConvex(square(0, 0, 1), square(5, 5, 1)); SignedArea(clipped) != 0 {
		t.Errorf("disjoint squares: got %v", clipped)
	}

	clipped = ClipConvex(square(0, 0, 4), square(1, 1, 1))
	if a := SignedArea(clipped); Abs(a-1) > 1e-12 {
		t.Errorf("contained square: got area %f, expected 1", a)
	}
}

func TestKDTreeInExtent(t *testing.T) {
	if idx := BuildKDTree(nil).InExtent(Extent2D{P1: [2]float64{1, 1}}); len(idx) != 0 {
		t.Errorf("empty tree returned %v", idx)
	}

	var pts []Point2LL
	for i := range 20 {
		for j := range 20 {
			pts = append(pts, Point2LL{float64(i), float64(j)})
		}
	}
	// Duplicates must all be found.
	pts = append(pts, Point2LL{3, 3}, Point2LL{3, 3})

	tree := BuildKDTree(slices.Clone(pts))
	e := Extent2D{P0: [2]float64{2.5, 2.5}, P1: [2]float64{4, 3}}
	got := tree.InExtent(e)

	var expected []int
	for i, p := range pts {
		if e.Inside(p) {
			expected = append(expected, i)
		}
	}
	if !slices.Equal(got, expected) {
		t.Errorf("InExtent: got %v, expected %v", got, expected)
	}
}
