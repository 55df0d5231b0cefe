// openair/openair.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package openair reads airspace definitions in the OpenAir text format.
package openair

import (
	"fmt"
	"strings"

	"github.com/airspace-tools/aircheck/airspace"
	"github.com/airspace-tools/aircheck/math"
	"github.com/airspace-tools/aircheck/util"
)

// ParseError is returned for input that can't be read as OpenAir.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// File is a parsed OpenAir file.
type File struct {
	// Lines holds the input lines including their line endings, so
	// that they can be written out again unchanged.
	Lines   []string
	Records []*airspace.Record
}

// Read parses Latin-1 encoded OpenAir data.
func Read(data []byte) (*File, error) {
	return Parse(util.DecodeLatin1(data))
}

// Statements that carry no boundary or height information.
var ignored = map[string]bool{
	"AT": true, // label placement
	"AY": true, // type
	"AF": true, // frequency
	"AG": true, // station
	"SP": true, // pen
	"SB": true, // brush
	"DY": true, // airway segment
}

// Parse parses OpenAir text.
func Parse(text string) (*File, error) {
	f := &File{Lines: strings.SplitAfter(text, "\n")}
	if n := len(f.Lines); n > 0 && f.Lines[n-1] == "" {
		f.Lines = f.Lines[:n-1]
	}

	p := &parser{}
	for i, line := range f.Lines {
		p.line = i + 1
		if err := p.statement(strings.TrimSpace(line)); err != nil {
			return nil, err
		}
	}
	p.finish()

	f.Records = p.records
	return f, nil
}

type parser struct {
	line    int
	records []*airspace.Record
	cur     *airspace.Record

	// Set by V statements; reset for each airspace.
	center     math.Point2LL
	haveCenter bool
	clockwise  bool
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) finish() {
	if p.cur != nil {
		p.records = append(p.records, p.cur)
		p.cur = nil
	}
}

func (p *parser) statement(s string) error {
	if s == "" || strings.HasPrefix(s, "*") {
		return nil
	}

	cmd, arg, _ := strings.Cut(s, " ")
	cmd = strings.ToUpper(cmd)
	arg = strings.TrimSpace(arg)

	if cmd == "AC" {
		p.finish()
		p.cur = &airspace.Record{
			ID:    len(p.records),
			Class: arg,
			Line:  p.line,
		}
		p.center, p.haveCenter = math.Point2LL{}, false
		p.clockwise = true
		return nil
	}
	if ignored[cmd] {
		return nil
	}
	if p.cur == nil {
		return p.errorf("%s: statement outside of an airspace", cmd)
	}

	switch cmd {
	case "AN":
		p.cur.Name = arg
	case "AL":
		p.cur.Floor, p.cur.FloorLine = arg, p.line
	case "AH":
		p.cur.Ceiling, p.cur.CeilingLine = arg, p.line
	case "V":
		return p.variable(arg)
	case "DP":
		pt, err := ParseCoordinate(arg)
		if err != nil {
			return p.errorf("%v", err)
		}
		p.add(airspace.PointElement{Location: pt, SourceLine: p.line})
	case "DA":
		return p.arcByRadius(arg)
	case "DB":
		return p.arcByEndpoints(arg)
	case "DC":
		if !p.haveCenter {
			return p.errorf("DC: no center set")
		}
		r, err := util.Atof(arg)
		if err != nil || r <= 0 {
			return p.errorf("DC: %q: invalid radius", arg)
		}
		p.add(airspace.Circle{Center: p.center, RadiusNM: r, SourceLine: p.line})
	default:
		return p.errorf("%s: unknown statement", cmd)
	}
	return nil
}

func (p *parser) add(e airspace.Element) {
	p.cur.Elements = append(p.cur.Elements, e)
}

func (p *parser) variable(arg string) error {
	name, value, ok := strings.Cut(arg, "=")
	if !ok {
		return p.errorf("V %s: expected name=value", arg)
	}
	name, value = strings.ToUpper(strings.TrimSpace(name)), strings.TrimSpace(value)

	switch name {
	case "X":
		pt, err := ParseCoordinate(value)
		if err != nil {
			return p.errorf("%v", err)
		}
		p.center, p.haveCenter = pt, true
	case "D":
		switch value {
		case "+":
			p.clockwise = true
		case "-":
			p.clockwise = false
		default:
			return p.errorf("V D=%s: direction must be + or -", value)
		}
	case "W", "Z":
		// airway width and zoom level
	default:
		return p.errorf("V %s: unknown variable", name)
	}
	return nil
}

func (p *parser) arcByRadius(arg string) error {
	if !p.haveCenter {
		return p.errorf("DA: no center set")
	}

	f := strings.Split(arg, ",")
	if len(f) != 3 {
		return p.errorf("DA %s: expected radius, start and end angle", arg)
	}
	var v [3]float64
	for i, s := range f {
		var err error
		if v[i], err = util.Atof(s); err != nil {
			return p.errorf("DA %s: %q: not a number", arg, strings.TrimSpace(s))
		}
	}
	if v[0] <= 0 {
		return p.errorf("DA %s: invalid radius", arg)
	}

	p.add(airspace.ArcByRadius{
		Center:       p.center,
		RadiusNM:     v[0],
		StartBearing: v[1],
		EndBearing:   v[2],
		Clockwise:    p.clockwise,
		SourceLine:   p.line,
	})
	return nil
}

func (p *parser) arcByEndpoints(arg string) error {
	if !p.haveCenter {
		return p.errorf("DB: no center set")
	}

	m := reCoordinatePair.FindStringSubmatch(arg)
	if m == nil {
		return p.errorf("DB %s: expected two coordinates", arg)
	}
	start, err := ParseCoordinate(m[1])
	if err != nil {
		return p.errorf("%v", err)
	}
	end, err := ParseCoordinate(m[2])
	if err != nil {
		return p.errorf("%v", err)
	}

	p.add(airspace.ArcByEndpoints{
		Center:     p.center,
		Start:      start,
		End:        end,
		Clockwise:  p.clockwise,
		SourceLine: p.line,
	})
	return nil
}
