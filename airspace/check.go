// airspace/check.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/airspace-tools/aircheck/log"
	"github.com/airspace-tools/aircheck/math"
	"github.com/airspace-tools/aircheck/planar"
	"github.com/airspace-tools/aircheck/util"

	"golang.org/x/sync/errgroup"
)

const (
	// Differences between the distances from the center of a DB arc to
	// its two endpoints above these are reported.
	arcRadiusWarning = 40  // meters
	arcRadiusError   = 500 // meters

	encodingBanner = "Use of non-ascii characters detected. Please switch to ASCII as some embedded devices do not have full character set.\n" +
		"Using 'iconv -f iso-8859-1 -t ascii//TRANSLIT' on the linux command line may help."
)

// Checker runs the consistency checks over a set of airspace records.
type Checker struct {
	records  []*Record
	lines    []string
	report   *Report
	opts     Options
	resolver Resolver
	engine   planar.Engine
	lg       *log.Logger

	// Literal boundary points (DP and DB endpoints) and circle centers,
	// in the order they appear in the input.
	points     []literalPoint
	pointTree  *math.KDNode
	circles    []literalPoint
	circleTree *math.KDNode

	occurrences map[math.Point2LL]*occurrence
}

type literalPoint struct {
	p      math.Point2LL
	record *Record
}

// occurrence records how often a point appears in the input and on which
// lines.
type occurrence struct {
	count int
	lines []int
}

// NewChecker returns a Checker for the given records; lines holds the
// text of the input, one entry per line, for the encoding check.
func NewChecker(records []*Record, lines []string, report *Report, engine planar.Engine, lg *log.Logger) *Checker {
	c := &Checker{
		records:     records,
		lines:       lines,
		report:      report,
		opts:        report.Options(),
		resolver:    NewResolver(report.Options()),
		engine:      engine,
		lg:          lg,
		occurrences: make(map[math.Point2LL]*occurrence),
	}

	var pts, circles []math.Point2LL
	for _, r := range records {
		for _, e := range r.Elements {
			for _, p := range LiteralPoints(e) {
				c.points = append(c.points, literalPoint{p: p, record: r})
				pts = append(pts, p)
				c.addOccurrence(p, e.Line())
			}
			if ci, ok := e.(Circle); ok {
				c.circles = append(c.circles, literalPoint{p: ci.Center, record: r})
				circles = append(circles, ci.Center)
				c.addOccurrence(ci.Center, e.Line())
			}
		}
	}
	c.pointTree = math.BuildKDTree(pts)
	c.circleTree = math.BuildKDTree(circles)

	lg.Infof("%d airspaces, %d literal points, %d circles, %s engine", len(records), len(c.points),
		len(c.circles), engine.Name())

	return c
}

func (c *Checker) addOccurrence(p math.Point2LL, line int) {
	o, ok := c.occurrences[p]
	if !ok {
		o = &occurrence{}
		c.occurrences[p] = o
	}
	o.count++
	if line > 0 {
		o.lines = append(o.lines, line)
	}
}

// Resolve resolves the boundaries of all records that haven't been
// resolved yet.
func (c *Checker) Resolve() error {
	for _, r := range c.records {
		if _, err := c.resolver.Record(r); err != nil {
			return err
		}
	}
	return nil
}

// Run performs all of the checks, reporting problems as they are found.
func (c *Checker) Run(ctx context.Context) error {
	if err := c.Resolve(); err != nil {
		return err
	}

	c.CheckEncoding()
	c.CheckClosure()
	c.CheckNameEncoding()
	c.CheckCircles()
	c.CheckPoints()
	c.CheckArcRadii()
	c.CheckHeights()
	c.CheckSelfIntersection()
	return c.CheckOverlap(ctx)
}

// CheckEncoding reports lines of the input with non-ASCII characters.
func (c *Checker) CheckEncoding() {
	for i, line := range c.lines {
		line = strings.TrimSpace(line)
		if util.IsASCII(line) {
			continue
		}

		if !c.report.encodingBannerPrinted {
			c.report.encodingBannerPrinted = true
			c.report.Problem(Warning, 0, encodingBanner)
		}

		var caret strings.Builder
		for _, ch := range line {
			if ch < utf8.RuneSelf {
				caret.WriteByte(' ')
			} else {
				caret.WriteByte('^')
			}
		}
		c.report.Problem(Warning, i+1, "Use of non-ascii characters detected.\n"+line+"\n"+caret.String()+"\n")
	}
}

// CheckClosure reports airspaces whose boundary doesn't end where it
// starts.
func (c *Checker) CheckClosure() {
	for _, r := range c.records {
		first, last, open := r.IsOpen()
		if !open {
			continue
		}

		gap, _ := math.Distance(first, last)
		name, dims := r.DisplayName()
		c.report.Problem(Warning, r.Elements[0].Line(),
			fmt.Sprintf(`airspace "%s,%s" is not closed with a gap of %.1fkm.`, name, dims, gap/1000))
	}
}

func (c *Checker) CheckNameEncoding() {
	for _, r := range c.records {
		if !util.IsASCII(r.Name) {
			c.report.Problem(Error, r.Line, fmt.Sprintf(`Airspace name contains non-ascii characters: "%s"`, r.Name))
		}
	}
}

// nearby returns the indices of the points in the tree that may be
// within the distance threshold of p.
func (c *Checker) nearby(tree *math.KDNode, p math.Point2LL) []int {
	dlon, dlat := math.DegreesForDistance(p.Latitude(), c.opts.DistanceThreshold)
	return tree.InExtent(math.Extent2D{
		P0: [2]float64{p[0] - dlon, p[1] - dlat},
		P1: [2]float64{p[0] + dlon, p[1] + dlat},
	})
}

// CheckCircles reports circles whose centers are close to each other
// without being identical.
func (c *Checker) CheckCircles() {
	for i, base := range c.circles {
		for _, idx := range c.nearby(c.circleTree, base.p) {
			if idx == i {
				continue
			}
			other := c.circles[idx]
			d, _ := math.Distance(base.p, other.p)
			if m := int(d); m > 0 && float64(m) < c.opts.DistanceThreshold {
				c.findingForTwoPoints(fmt.Sprintf("Airspaces with near circles (%dm)", m), base.record, other.record,
					base.p, other.p)
			}
		}
	}
}

// CheckPoints reports literal boundary points that are close to each
// other without being identical.
func (c *Checker) CheckPoints() {
	for _, base := range c.points {
		c.findNearPoints(base.record, base.p)
	}
}

// FindNearPoint reports all literal boundary points close to p.
func (c *Checker) FindNearPoint(p math.Point2LL) {
	c.findNearPoints(&Record{ID: -1, Name: "POINT " + p.DMSString()}, p)
}

func (c *Checker) findNearPoints(base *Record, p math.Point2LL) {
	for _, idx := range c.nearby(c.pointTree, p) {
		other := c.points[idx]
		d, _ := math.Distance(p, other.p)
		if d > 0 && d < c.opts.DistanceThreshold {
			c.findingForTwoPoints(fmt.Sprintf("Airspaces with close points (%dm):", int(d)), base, other.record,
				p, other.p)
		}
	}
}

func (c *Checker) findingForTwoPoints(message string, r1, r2 *Record, p1, p2 math.Point2LL) {
	if !c.report.ledger.Record(message, r1.ID, r2.ID, p1, p2) {
		return
	}

	n1, h1 := r1.DisplayName()
	n2, h2 := r2.DisplayName()
	l1 := max(utf8.RuneCountInString(n1), utf8.RuneCountInString(n2))
	l2 := max(utf8.RuneCountInString(h1), utf8.RuneCountInString(h2))

	var b strings.Builder
	b.WriteString(message + "\n")
	for _, side := range []struct {
		name, heights string
		p             math.Point2LL
	}{{n1, h1, p1}, {n2, h2, p2}} {
		var count int
		var lines []string
		if o, ok := c.occurrences[side.p]; ok {
			count = o.count
			for _, l := range o.lines {
				lines = append(lines, strconv.Itoa(l))
			}
		}
		fmt.Fprintf(&b, "  %-*s %-*s: %s (%dx: lineno [%s])\n", l1, side.name, l2, side.heights,
			side.p.DMSString(), count, strings.Join(lines, ", "))
	}
	c.report.Problem(Warning, 0, b.String())
}

// CheckArcRadii reports DB arcs whose endpoints are at noticeably
// different distances from the center.
func (c *Checker) CheckArcRadii() {
	for _, r := range c.records {
		for _, e := range r.Elements {
			db, ok := e.(ArcByEndpoints)
			if !ok {
				continue
			}

			d1, _ := math.Distance(db.Center, db.Start)
			d2, _ := math.Distance(db.Center, db.End)
			diff := math.Abs(d1 - d2)
			if diff <= arcRadiusWarning {
				continue
			}

			sev := Warning
			if diff > arcRadiusError {
				sev = Error
			}
			name, dims := r.DisplayName()
			c.report.Problem(sev, e.Line(), fmt.Sprintf(`airspace "%s,%s" has a big difference radius of %dm (%.3fkm to start, %.3fkm to end)`,
				name, dims, int(math.Round(diff)), d1/1000, d2/1000))
		}
	}
}

// CheckHeights grades the floor and ceiling of each record and stores
// their values in feet.
func (c *Checker) CheckHeights() {
	for _, r := range c.records {
		name, dims := r.DisplayName()

		check := func(what, s string, line int) (float64, bool) {
			if line == 0 {
				line = r.Line
			}
			if s == "" {
				c.report.Problem(Error, line, fmt.Sprintf(`airspace "%s" has no %s`, name, what))
				return 0, false
			}

			h := ParseHeightDetail(s, c.opts.LenientReferences)
			if h.Severity != OK {
				c.report.Problem(h.Severity, line, fmt.Sprintf(`airspace "%s,%s" has a bad %s "%s": %s`, name, dims,
					what, s, h.Reason()))
			}
			return h.Feet, h.Severity != Error
		}

		var okFloor, okCeiling bool
		r.FloorFt, okFloor = check("floor", r.Floor, r.FloorLine)
		r.CeilingFt, okCeiling = check("ceiling", r.Ceiling, r.CeilingLine)
		r.HeightsValid = okFloor && okCeiling
	}
}

// CheckSelfIntersection reports airspaces whose boundary crosses itself.
func (c *Checker) CheckSelfIntersection() {
	for _, r := range c.records {
		poly := r.Polygon()
		if poly == nil || c.engine.Valid(poly) {
			continue
		}

		a0, a1, b0, b1, found := findCrossing(poly)
		if !found {
			c.lg.Debugf("%s: invalid polygon without crossing edges", r.Name)
			continue
		}

		name, dims := r.DisplayName()
		c.report.Problem(Error, r.Line, fmt.Sprintf(`airspace "%s,%s" intersects itself: %s - %s crosses %s - %s`,
			name, dims, a0, a1, b0, b1))
	}
}

// Overlap is a pair of airspaces that overlap both in height and
// horizontally. Area is the area of their intersection in square
// degrees.
type Overlap struct {
	A, B *Record
	Area float64
}

// Overlaps returns the pairs of airspaces that overlap, ordered by the
// position of the records in the input. Heights must have been checked
// before. Intersection areas are computed concurrently.
func (c *Checker) Overlaps(ctx context.Context) ([]Overlap, error) {
	var candidates []Overlap
	for i, a := range c.records {
		if !a.HeightsValid || a.Polygon() == nil {
			continue
		}
		for _, b := range c.records[i+1:] {
			if !b.HeightsValid || b.Polygon() == nil || !intersectsInHeight(a, b) {
				continue
			}
			if !math.Overlaps(a.Polygon().Bounds, b.Polygon().Bounds) {
				continue
			}
			candidates = append(candidates, Overlap{A: a, B: b})
		}
	}
	c.lg.Infof("%d overlap candidates", len(candidates))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(1, c.opts.Workers))
	for i := range candidates {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			candidates[i].Area = c.engine.IntersectionArea(candidates[i].A.Polygon(), candidates[i].B.Polygon())
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var overlaps []Overlap
	for _, cand := range candidates {
		if cand.Area > planar.MinArea {
			overlaps = append(overlaps, cand)
		}
	}
	return overlaps, nil
}

// CheckOverlap reports pairs of airspaces that overlap both in height and
// horizontally.
func (c *Checker) CheckOverlap(ctx context.Context) error {
	overlaps, err := c.Overlaps(ctx)
	if err != nil {
		return err
	}

	const message = "Overlapping Airspaces"
	for _, o := range overlaps {
		if !c.report.ledger.Record(message, o.A.ID, o.B.ID, math.Point2LL{}, math.Point2LL{}) {
			continue
		}

		center := o.A.Polygon().Bounds.Center()
		kx, ky := math.LatLonScale(center[1])

		n1, h1 := o.A.DisplayName()
		n2, h2 := o.B.DisplayName()
		l1 := max(utf8.RuneCountInString(n1), utf8.RuneCountInString(n2))

		var b strings.Builder
		fmt.Fprintf(&b, "%s (%.3f sqkm)\n", message, o.Area*kx*ky)
		fmt.Fprintf(&b, "  %-*s %s (line %d)\n", l1, n1, h1, o.A.Line)
		fmt.Fprintf(&b, "  %-*s %s (line %d)\n", l1, n2, h2, o.B.Line)
		c.report.Problem(Error, o.A.Line, b.String())
	}
	return nil
}
