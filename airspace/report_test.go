// airspace/report_test.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestReportProblem(t *testing.T) {
	opts := DefaultOptions()
	opts.ErrorsOnly = true
	opts.IgnoreMessages = []string{"ignore me"}

	var out strings.Builder
	r := NewReport(&out, opts, nil)

	r.Problem(Error, 12, "an error")
	r.Problem(Warning, 13, "a warning")
	r.Problem(Error, 0, "ignore me")
	r.Problem(Error, 0, "multi\nline\n")

	if r.Count(Error) != 2 || r.Count(Warning) != 1 {
		t.Errorf("got %d errors and %d warnings, expected 2 and 1", r.Count(Error), r.Count(Warning))
	}
	expected := "error, line 12: an error\nerror: multi\nline\n\n"
	if out.String() != expected {
		t.Errorf("got output %q, expected %q", out.String(), expected)
	}
	if !r.Failed() {
		t.Errorf("report with errors didn't fail")
	}

	out.Reset()
	r.PrintSummary()
	if out.String() != "2 error\n1 warning\n" {
		t.Errorf("unexpected summary %q", out.String())
	}
}

func TestReportWarningsOnly(t *testing.T) {
	var out strings.Builder
	r := NewReport(&out, DefaultOptions(), nil)
	r.Problem(Warning, 1, "just a warning")

	if r.PrintSummary() {
		t.Errorf("warnings alone made the run fail")
	}
	if out.String() != "warning, line 1: just a warning\n0 error\n1 warning\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestReportJSON(t *testing.T) {
	var out strings.Builder
	r := NewReport(&out, DefaultOptions(), nil)
	r.Problem(Warning, 3, "w")
	r.Problem(Error, 0, "e")

	var b strings.Builder
	if err := r.WriteJSON(&b); err != nil {
		t.Fatal(err)
	}

	s := b.String()
	// Keys keep their insertion order.
	if strings.Index(s, `"summary"`) > strings.Index(s, `"problems"`) ||
		strings.Index(s, `"error"`) > strings.Index(s, `"warning"`) {
		t.Errorf("keys out of order in %s", s)
	}

	var parsed struct {
		Summary  map[string]int
		Problems []struct {
			Severity string
			Line     int
			Message  string
		}
	}
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		t.Fatal(err)
	}
	if parsed.Summary["error"] != 1 || parsed.Summary["warning"] != 1 {
		t.Errorf("unexpected summary %v", parsed.Summary)
	}
	if len(parsed.Problems) != 2 || parsed.Problems[0].Severity != "warning" || parsed.Problems[0].Line != 3 ||
		parsed.Problems[1].Message != "e" || parsed.Problems[1].Line != 0 {
		t.Errorf("unexpected problems %+v", parsed.Problems)
	}
}
