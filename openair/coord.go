// openair/coord.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package openair

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/airspace-tools/aircheck/math"
)

// Matches e.g. "48:15:30 N 008:01:05.5 E" or "48:15.5N 8:01.09E".
var reCoordinate = regexp.MustCompile(`^(\d{1,2}):(\d{1,2}(?:\.\d+)?)(?::(\d{1,2}(?:\.\d+)?))?\s*([NSns])[\s,]*` +
	`(\d{1,3}):(\d{1,2}(?:\.\d+)?)(?::(\d{1,2}(?:\.\d+)?))?\s*([EWew])$`)

// Two coordinates separated by a comma, as used by DB.
var reCoordinatePair = regexp.MustCompile(`^(.*?[NSns][\s,]*[^,]*?[EWew])\s*,\s*(.*[EWew])$`)

// ParseCoordinate parses an OpenAir coordinate, with either degrees,
// minutes and seconds or degrees and decimal minutes.
func ParseCoordinate(s string) (math.Point2LL, error) {
	m := reCoordinate.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return math.Point2LL{}, fmt.Errorf("%q: invalid coordinate", s)
	}

	parse := func(deg, min, sec, hemi string, limit float64) (float64, error) {
		d, err := strconv.Atoi(deg)
		if err != nil {
			return 0, err
		}
		mn, err := strconv.ParseFloat(min, 64)
		if err != nil {
			return 0, err
		}
		var sc float64
		if sec != "" {
			if strings.Contains(min, ".") {
				return 0, fmt.Errorf("%q: decimal minutes with seconds", s)
			}
			if sc, err = strconv.ParseFloat(sec, 64); err != nil {
				return 0, err
			}
		}
		if mn >= 60 || sc >= 60 {
			return 0, fmt.Errorf("%q: minutes and seconds must be less than 60", s)
		}

		v := float64(d) + mn/60 + sc/3600
		if v > limit {
			return 0, fmt.Errorf("%q: out of range", s)
		}
		if h := strings.ToUpper(hemi); h == "S" || h == "W" {
			v = -v
		}
		return v, nil
	}

	var p math.Point2LL
	var err error
	if p[1], err = parse(m[1], m[2], m[3], m[4], 90); err != nil {
		return math.Point2LL{}, err
	}
	if p[0], err = parse(m[5], m[6], m[7], m[8], 180); err != nil {
		return math.Point2LL{}, err
	}
	return p, nil
}
