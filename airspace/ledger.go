// airspace/ledger.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"github.com/airspace-tools/aircheck/math"
)

// Ledger remembers the pairwise findings of a run so that each one is
// reported only once, whichever way around the pair was found.
type Ledger struct {
	seen map[findingKey]struct{}
}

type findingKey struct {
	message          string
	recordA, recordB int
	pointA, pointB   math.Point2LL
}

func NewLedger() *Ledger {
	return &Ledger{seen: make(map[findingKey]struct{})}
}

// Record returns true if the finding hasn't been recorded before; the
// order within the record pair and within the point pair is irrelevant.
func (l *Ledger) Record(message string, recA, recB int, pA, pB math.Point2LL) bool {
	if recB < recA {
		recA, recB = recB, recA
	}
	if pB.Less(pA) {
		pA, pB = pB, pA
	}

	k := findingKey{message: message, recordA: recA, recordB: recB, pointA: pA, pointB: pB}
	if _, ok := l.seen[k]; ok {
		return false
	}
	l.seen[k] = struct{}{}
	return true
}

func (l *Ledger) Len() int {
	return len(l.seen)
}
