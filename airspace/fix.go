// airspace/fix.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/airspace-tools/aircheck/util"

	"github.com/brunoga/deep"
)

// CloseRecord returns a copy of the record whose boundary is closed by
// an additional point at its start, if it was open. The original record
// is left untouched.
func CloseRecord(r *Record) *Record {
	c := &Record{
		ID:          r.ID,
		Name:        r.Name,
		Class:       r.Class,
		Floor:       r.Floor,
		Ceiling:     r.Ceiling,
		Line:        r.Line,
		FloorLine:   r.FloorLine,
		CeilingLine: r.CeilingLine,
		Elements:    deep.MustCopy(r.Elements),
	}
	if first, _, open := r.IsOpen(); open {
		c.Elements = append(c.Elements, PointElement{Location: first})
	}
	return c
}

// FixedFilename returns the name under which the fixed version of the
// named file is written, e.g. airspace-2024-05-01T12:00:00.txt.
func FixedFilename(name string, now time.Time) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "-" + now.Format("2006-01-02T15:04:05") + ext
}

// WriteClosed writes the input lines to w, adding a point that closes
// each open airspace after the line of its last element. The output is
// Latin-1 encoded, like the input. It returns the number of airspaces
// closed.
func WriteClosed(w io.Writer, lines []string, records []*Record) (int, error) {
	insert := make(map[int][]string)
	n := 0
	for _, r := range records {
		if _, _, open := r.IsOpen(); !open {
			continue
		}
		last := r.Elements[len(r.Elements)-1].Line()
		if last == 0 {
			continue
		}

		c := CloseRecord(r)
		dp := c.Elements[len(c.Elements)-1].(PointElement)
		insert[last] = append(insert[last], "DP "+dp.Location.DMSString()+"\n")
		n++
	}

	for i, line := range lines {
		if _, err := w.Write(util.EncodeLatin1(line)); err != nil {
			return n, err
		}
		if ins, ok := insert[i+1]; ok {
			if !strings.HasSuffix(line, "\n") {
				ins = append([]string{"\n"}, ins...)
			}
			for _, s := range ins {
				if _, err := io.WriteString(w, s); err != nil {
					return n, err
				}
			}
		}
	}
	return n, nil
}
