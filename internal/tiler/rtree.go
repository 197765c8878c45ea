// Package tiler implements tile binning for the rasterizer: a compact
// R-tree that indexes each primitive's screen-space bounding box, and a
// Tiler that walks a grid of tiles over the scene's extent, dispatching
// the primitives overlapping each tile to the fragment back end in
// insertion order.
//
// No third-party R-tree package is available in the ecosystem this module
// draws its other dependencies from, so this is a small from-scratch
// implementation (Guttman-style quadratic split) rather than a reused
// library.
package tiler

import "github.com/chinmaygarde/sft-sub000/internal/geom"

const maxEntries = 8

// entry is a leaf record: a bounding box and the index of the primitive it
// belongs to.
type entry struct {
	box   geom.IRect
	index int
}

// node is either a leaf (holding entries directly) or an internal node
// (holding child nodes), matching the classic R-tree shape.
type node struct {
	box      geom.IRect
	leaf     bool
	entries  []entry
	children []*node
}

// Tree is an R-tree indexing integer bounding boxes against an opaque
// payload index. It is not safe for concurrent inserts, but concurrent
// Search calls against a tree that is no longer being mutated are safe.
type Tree struct {
	root  *node
	count int
}

// NewTree returns an empty R-tree.
func NewTree() *Tree {
	return &Tree{root: &node{leaf: true, box: emptyBox()}}
}

func emptyBox() geom.IRect {
	return geom.IRect{MinX: maxInt, MinY: maxInt, MaxX: minInt, MaxY: minInt}
}

const (
	maxInt = int(^uint(0) >> 1)
	minInt = -maxInt - 1
)

func unionBox(a, b geom.IRect) geom.IRect {
	return geom.IRect{
		MinX: minOf(a.MinX, b.MinX),
		MinY: minOf(a.MinY, b.MinY),
		MaxX: maxOf(a.MaxX, b.MaxX),
		MaxY: maxOf(a.MaxY, b.MaxY),
	}
}

func minOf(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func overlaps(a, b geom.IRect) bool {
	return a.MinX <= b.MaxX && a.MaxX >= b.MinX && a.MinY <= b.MaxY && a.MaxY >= b.MinY
}

func area(b geom.IRect) int64 {
	w := int64(b.MaxX-b.MinX) + 1
	h := int64(b.MaxY-b.MinY) + 1
	if w < 0 || h < 0 {
		return 0
	}
	return w * h
}

// Insert adds a bounding box associated with an opaque payload index
// (typically an index into the caller's own slice of primitives).
func (t *Tree) Insert(box geom.IRect, index int) {
	t.count++
	leaf := chooseLeaf(t.root, box)
	leaf.entries = append(leaf.entries, entry{box: box, index: index})
	leaf.box = unionBox(leaf.box, box)
	if len(leaf.entries) > maxEntries {
		splitLeaf(leaf)
	}
	t.root.box = unionBox(t.root.box, box)
}

// chooseLeaf descends the tree choosing, at each level, the child whose
// bounding box requires the least enlargement to contain box.
func chooseLeaf(n *node, box geom.IRect) *node {
	for !n.leaf {
		best := 0
		bestEnlargement := enlargement(n.children[0].box, box)
		for i := 1; i < len(n.children); i++ {
			e := enlargement(n.children[i].box, box)
			if e < bestEnlargement {
				bestEnlargement = e
				best = i
			}
		}
		n.box = unionBox(n.box, box)
		n = n.children[best]
	}
	return n
}

func enlargement(box, add geom.IRect) int64 {
	return area(unionBox(box, add)) - area(box)
}

// splitLeaf performs a simple quadratic-cost split of an overflowing leaf:
// n itself becomes an internal node whose two children are new leaves
// holding the two groups. The tree keeps no parent pointers and is never
// rebalanced, so each split adds a level under n; Tiler rebuilds the tree
// per frame.
func splitLeaf(n *node) {
	entries := n.entries
	a, b := quadraticSeeds(entries)
	groupA := []entry{entries[a]}
	groupB := []entry{entries[b]}
	boxA := entries[a].box
	boxB := entries[b].box

	for i, e := range entries {
		if i == a || i == b {
			continue
		}
		if enlargement(boxA, e.box) <= enlargement(boxB, e.box) {
			groupA = append(groupA, e)
			boxA = unionBox(boxA, e.box)
		} else {
			groupB = append(groupB, e)
			boxB = unionBox(boxB, e.box)
		}
	}

	childA := &node{leaf: true, entries: groupA, box: boxA}
	childB := &node{leaf: true, entries: groupB, box: boxB}

	n.leaf = false
	n.entries = nil
	n.children = []*node{childA, childB}
	n.box = unionBox(boxA, boxB)
}

// quadraticSeeds picks the pair of entries whose combined box wastes the
// most area, the classic Guttman PickSeeds heuristic.
func quadraticSeeds(entries []entry) (int, int) {
	bestI, bestJ := 0, 1
	var bestWaste int64 = -1
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			waste := area(unionBox(entries[i].box, entries[j].box)) - area(entries[i].box) - area(entries[j].box)
			if waste > bestWaste {
				bestWaste = waste
				bestI, bestJ = i, j
			}
		}
	}
	return bestI, bestJ
}

// Search invokes fn for every payload index whose box overlaps query. The
// order of invocation within a leaf is insertion order; across leaves it
// follows tree traversal order, which need not match global insertion
// order (the Tiler re-sorts indices before dispatch where order matters).
func (t *Tree) Search(query geom.IRect, fn func(index int)) {
	searchNode(t.root, query, fn)
}

func searchNode(n *node, query geom.IRect, fn func(index int)) {
	if !overlaps(n.box, query) {
		return
	}
	if n.leaf {
		for _, e := range n.entries {
			if overlaps(e.box, query) {
				fn(e.index)
			}
		}
		return
	}
	for _, c := range n.children {
		searchNode(c, query, fn)
	}
}

// Count returns the number of entries inserted since the last Reset.
func (t *Tree) Count() int { return t.count }

// Reset empties the tree so it can be reused for the next frame.
func (t *Tree) Reset() {
	t.root = &node{leaf: true, box: emptyBox()}
	t.count = 0
}
