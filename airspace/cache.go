// airspace/cache.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"bytes"
	"fmt"

	"github.com/airspace-tools/aircheck/log"
	"github.com/airspace-tools/aircheck/util"
)

// ResolutionCache saves resolved boundaries between runs. Entries are
// keyed by the contents of the input and the resolver settings, so a
// changed input never sees stale points.
type ResolutionCache struct {
	cache *util.ObjectCache
	key   string
	lg    *log.Logger
}

type cachedResolution struct {
	Records [][]ResolvedPoint
}

func NewResolutionCache(c *util.ObjectCache, input []byte, r Resolver, lg *log.Logger) (*ResolutionCache, error) {
	h, err := util.Hash(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}
	return &ResolutionCache{
		cache: c,
		key:   fmt.Sprintf("resolved/%x-%g-%v.msgpack", h, r.Step, r.NoArc),
		lg:    lg,
	}, nil
}

// Load sets the resolved points of the records from the cache and
// returns true if there was a matching entry.
func (rc *ResolutionCache) Load(records []*Record) bool {
	var cr cachedResolution
	t, err := rc.cache.Retrieve(rc.key, &cr)
	if err != nil {
		rc.lg.Debugf("%s: %v", rc.key, err)
		return false
	}
	if len(cr.Records) != len(records) {
		rc.lg.Warnf("%s: cached %d records, expected %d", rc.key, len(cr.Records), len(records))
		return false
	}

	for i, r := range records {
		if r.resolved == nil && cr.Records[i] != nil {
			r.resolved = cr.Records[i]
		}
	}
	rc.lg.Infof("%s: loaded resolved points cached at %s", rc.key, t)
	return true
}

// Store saves the resolved points of the records.
func (rc *ResolutionCache) Store(records []*Record) error {
	cr := cachedResolution{Records: make([][]ResolvedPoint, len(records))}
	for i, r := range records {
		cr.Records[i] = r.resolved
	}
	return rc.cache.Store(rc.key, cr)
}
