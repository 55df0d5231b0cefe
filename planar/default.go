// planar/default.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build !geos

package planar

// Default returns the engine selected at build time; build with "-tags
// geos" to use GEOS instead of the pure Go engine.
func Default() Engine {
	return NewEarcutEngine(DefaultCacheSize)
}
