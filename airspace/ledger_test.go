// airspace/ledger_test.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"testing"

	"github.com/airspace-tools/aircheck/math"
)

func TestLedger(t *testing.T) {
	p1, p2 := math.Point2LL{8.5, 48.5}, math.Point2LL{8.5005, 48.5}
	msg := "Airspaces with close points (36m):"

	l := NewLedger()
	if !l.Record(msg, 1, 2, p1, p2) {
		t.Errorf("first finding reported as duplicate")
	}

	for _, dup := range []struct {
		a, b   int
		pa, pb math.Point2LL
	}{
		{1, 2, p1, p2},
		{2, 1, p1, p2},
		{1, 2, p2, p1},
		{2, 1, p2, p1},
	} {
		if l.Record(msg, dup.a, dup.b, dup.pa, dup.pb) {
			t.Errorf("duplicate (%d, %d, %v, %v) not detected", dup.a, dup.b, dup.pa, dup.pb)
		}
	}

	if !l.Record("Airspaces with near circles (36m)", 1, 2, p1, p2) {
		t.Errorf("different message treated as duplicate")
	}
	if !l.Record(msg, 1, 3, p1, p2) {
		t.Errorf("different record pair treated as duplicate")
	}
	if !l.Record(msg, 1, 2, p1, math.Point2LL{8.5, 48.5005}) {
		t.Errorf("different point pair treated as duplicate")
	}
	if l.Len() != 4 {
		t.Errorf("ledger holds %d findings, expected 4", l.Len())
	}
}
