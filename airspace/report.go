// airspace/report.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/airspace-tools/aircheck/log"

	"github.com/iancoleman/orderedmap"
)

// Options control the consistency checks.
type Options struct {
	// DistanceThreshold is the distance in meters below which two
	// distinct points are reported as close.
	DistanceThreshold float64
	NoArc             bool
	FastArc           bool
	// ErrorsOnly suppresses the output of warnings; they are still
	// counted.
	ErrorsOnly bool
	// IgnoreMessages are suppressed entirely when they match a problem's
	// message exactly.
	IgnoreMessages []string
	// LenientReferences accepts MSL, GND and SFC as height references.
	LenientReferences bool
	// Workers bounds the number of goroutines used for the overlap check.
	Workers int
}

func DefaultOptions() Options {
	return Options{
		DistanceThreshold: 100,
		Workers:           runtime.NumCPU(),
	}
}

// Problem is a single reported finding.
type Problem struct {
	Severity Severity
	Line     int // 0 if unknown
	Message  string
}

func (p Problem) String() string {
	if p.Line > 0 {
		return fmt.Sprintf("%s, line %d: %s", p.Severity, p.Line, p.Message)
	}
	return fmt.Sprintf("%s: %s", p.Severity, p.Message)
}

// Report collects the problems found during a run, prints them as they
// come in and keeps the per-severity counts.
type Report struct {
	w        io.Writer
	opts     Options
	lg       *log.Logger
	ignore   map[string]struct{}
	counts   [NumSeverities]int
	problems []Problem
	ledger   *Ledger

	encodingBannerPrinted bool
}

func NewReport(w io.Writer, opts Options, lg *log.Logger) *Report {
	r := &Report{
		w:      w,
		opts:   opts,
		lg:     lg,
		ignore: make(map[string]struct{}),
		ledger: NewLedger(),
	}
	for _, m := range opts.IgnoreMessages {
		r.ignore[m] = struct{}{}
	}
	return r
}

func (r *Report) Options() Options {
	return r.opts
}

func (r *Report) Ledger() *Ledger {
	return r.ledger
}

// Problem reports a finding. line is the source line it refers to, or 0.
func (r *Report) Problem(sev Severity, line int, msg string) {
	if _, ok := r.ignore[msg]; ok {
		r.lg.Debugf("ignoring %q", msg)
		return
	}

	r.counts[sev]++
	p := Problem{Severity: sev, Line: line, Message: msg}
	r.problems = append(r.problems, p)

	if sev == Warning && r.opts.ErrorsOnly {
		return
	}
	fmt.Fprintln(r.w, p.String())
}

func (r *Report) Count(sev Severity) int {
	return r.counts[sev]
}

func (r *Report) Problems() []Problem {
	return r.problems
}

// Failed reports whether any errors were found.
func (r *Report) Failed() bool {
	return r.counts[Error] > 0
}

// PrintSummary prints the error and warning counts and returns true if
// the run failed.
func (r *Report) PrintSummary() bool {
	for _, sev := range []Severity{Error, Warning} {
		fmt.Fprintf(r.w, "%d %s\n", r.counts[sev], sev)
	}
	return r.Failed()
}

// WriteJSON writes the summary and all problems as JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	summary := orderedmap.New()
	for _, sev := range []Severity{Error, Warning} {
		summary.Set(sev.String(), r.counts[sev])
	}

	problems := make([]*orderedmap.OrderedMap, 0, len(r.problems))
	for _, p := range r.problems {
		m := orderedmap.New()
		m.Set("severity", p.Severity.String())
		if p.Line > 0 {
			m.Set("line", p.Line)
		}
		m.Set("message", p.Message)
		problems = append(problems, m)
	}

	o := orderedmap.New()
	o.Set("summary", summary)
	o.Set("problems", problems)

	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
