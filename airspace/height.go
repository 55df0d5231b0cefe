// airspace/height.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/airspace-tools/aircheck/math"
	"github.com/airspace-tools/aircheck/util"
)

// HeightResult is the outcome of parsing an airspace floor or ceiling.
type HeightResult struct {
	Feet     float64
	Severity Severity
	// Reasons explains a Warning or Error severity.
	Reasons []string
}

func (h *HeightResult) warn(reason string) {
	h.Severity = Worst(h.Severity, Warning)
	h.Reasons = append(h.Reasons, reason)
}

func heightError(reason string) HeightResult {
	return HeightResult{Severity: Error, Reasons: []string{reason}}
}

// Reason returns the reasons joined into a single string.
func (h HeightResult) Reason() string {
	return strings.Join(h.Reasons, "; ")
}

// ParseHeight converts a height as written in an airspace file to feet
// and grades how well it follows the conventions. lenient allows MSL,
// GND and SFC as references after a number.
func ParseHeight(s string, lenient bool) (float64, Severity) {
	h := ParseHeightDetail(s, lenient)
	return h.Feet, h.Severity
}

// ParseHeightDetail is like ParseHeight but also explains its grading.
func ParseHeightDetail(s string, lenient bool) HeightResult {
	t := strings.TrimSpace(s)
	u := strings.ToUpper(t)

	switch {
	case u == "GND" || u == "SFC":
		return HeightResult{}

	case strings.HasPrefix(u, "FL"):
		num := strings.TrimSpace(t[2:])
		if num == "" || !util.IsAllNumbers(num) {
			return heightError("flight level is not a number")
		}
		fl, err := strconv.Atoi(num)
		if err != nil {
			return heightError("flight level is not a number")
		}

		h := HeightResult{Feet: float64(fl) * 100}
		if t[:2] != "FL" {
			h.warn("flight level should be written as FL")
		}
		if fl%5 != 0 {
			h.warn("flight level is not a multiple of 5")
		}
		return h

	case t != "" && t[0] >= '0' && t[0] <= '9':
		return parseNumericHeight(t, lenient)

	default:
		return heightError("unknown height")
	}
}

// parseNumericHeight handles heights of the form <digits> <unit>
// <reference>, where the whitespace is optional.
func parseNumericHeight(t string, lenient bool) HeightResult {
	// The number runs up to the first letter or space; anything in there
	// that's not a digit makes it malformed.
	idx := strings.IndexFunc(t, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsSpace(r) })
	if idx == -1 {
		idx = len(t)
	}
	num := t[:idx]
	if !util.IsAllNumbers(num) {
		return heightError("height is not a decimal number")
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return heightError("height is not a decimal number")
	}

	rest := strings.TrimSpace(t[idx:])
	idx = strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsLetter(r) })
	if idx == -1 {
		idx = len(rest)
	}
	unit := strings.ToUpper(rest[:idx])
	ref := strings.ToUpper(strings.TrimSpace(rest[idx:]))

	var h HeightResult
	switch unit {
	case "FT":
		h.Feet = float64(n)
	case "M":
		h.Feet = float64(n) * math.FeetPerMeter
	default:
		return heightError("unknown unit")
	}

	switch ref {
	case "AGL", "AMSL":
	case "MSL", "GND", "SFC":
		if !lenient {
			h.warn("reference should be AGL or AMSL")
		}
	default:
		return heightError("unknown reference")
	}

	if n%100 != 0 {
		h.warn("height is not a multiple of 100")
	}
	return h
}

// intersectsInHeight reports whether the height bands [floor, ceiling)
// of the two records overlap.
func intersectsInHeight(a, b *Record) bool {
	inside := func(a, b *Record) bool {
		c1 := b.FloorFt < a.CeilingFt && a.CeilingFt <= b.CeilingFt
		c2 := b.FloorFt <= a.FloorFt && a.FloorFt < b.CeilingFt
		c3 := a.FloorFt <= b.FloorFt && a.CeilingFt >= b.CeilingFt
		return c1 || c2 || c3
	}
	return inside(a, b) || inside(b, a)
}
