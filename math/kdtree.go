// math/kdtree.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"slices"
)

// KDNode is a node in a 2D KD-tree for Point2LL. Index records the
// position of the point in the slice the tree was built from.
type KDNode struct {
	Location Point2LL
	Index    int
	Left     *KDNode
	Right    *KDNode
}

type kdEntry struct {
	p Point2LL
	i int
}

// BuildKDTree constructs a balanced KD-tree from a slice of points.
// The tree alternates splitting by X (longitude) and Y (latitude) at each level.
func BuildKDTree(points []Point2LL) *KDNode {
	if len(points) == 0 {
		return nil
	}
	entries := make([]kdEntry, len(points))
	for i, p := range points {
		entries[i] = kdEntry{p: p, i: i}
	}
	return buildKDTreeRecursive(entries, 0)
}

func buildKDTreeRecursive(entries []kdEntry, depth int) *KDNode {
	if len(entries) == 0 {
		return nil
	}
	if len(entries) == 1 {
		return &KDNode{Location: entries[0].p, Index: entries[0].i}
	}

	// Alternate between X (depth even) and Y (depth odd)
	axis := depth % 2

	// Sort by the splitting axis and find median
	slices.SortFunc(entries, func(a, b kdEntry) int {
		if a.p[axis] < b.p[axis] {
			return -1
		} else if a.p[axis] > b.p[axis] {
			return 1
		}
		return 0
	})

	median := len(entries) / 2

	return &KDNode{
		Location: entries[median].p,
		Index:    entries[median].i,
		Left:     buildKDTreeRecursive(entries[:median], depth+1),
		Right:    buildKDTreeRecursive(entries[median+1:], depth+1),
	}
}

// InExtent returns the indices of all points inside the given extent, in
// increasing order.
func (tree *KDNode) InExtent(e Extent2D) []int {
	var result []int
	tree.inExtent(e, 0, &result)
	slices.Sort(result)
	return result
}

func (tree *KDNode) inExtent(e Extent2D, depth int, result *[]int) {
	if tree == nil {
		return
	}
	if e.Inside(tree.Location) {
		*result = append(*result, tree.Index)
	}

	// Points equal to the median on the splitting axis may be on either
	// side, so both comparisons are inclusive.
	axis := depth % 2
	if e.P0[axis] <= tree.Location[axis] {
		tree.Left.inExtent(e, depth+1, result)
	}
	if e.P1[axis] >= tree.Location[axis] {
		tree.Right.inExtent(e, depth+1, result)
	}
}
