// airspace/severity.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

// Severity grades a finding. The order is OK < Error < Warning; Error is
// the only severity that makes a run fail.
type Severity int

const (
	OK Severity = iota
	Error
	Warning
	NumSeverities
)

func (s Severity) String() string {
	switch s {
	case OK:
		return "ok"
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Worst returns the more serious of the two severities: any Error wins,
// then Warning, then OK.
func Worst(a, b Severity) Severity {
	if a == Error || b == Error {
		return Error
	}
	if a == Warning || b == Warning {
		return Warning
	}
	return OK
}
