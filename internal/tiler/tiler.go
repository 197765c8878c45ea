package tiler

import "github.com/chinmaygarde/sft-sub000/internal/geom"

// defaultSlices and minSpan define the tile size: tiles are square,
// max(extent width / defaultSlices, minSpan) pixels on a side, so the
// number of tiles along each axis depends on the extent and is not capped
// at defaultSlices.
const (
	defaultSlices = 16
	minSpan       = 256
)

// Tiler bins primitives of type T into a grid of tiles and dispatches each
// tile's overlapping primitives, in insertion order, to a caller-supplied
// shader function. T is typically a pointer to a fragment work item; boxOf
// extracts its screen-space bounding box.
type Tiler[T any] struct {
	boxOf func(T) geom.IRect

	items []T
	tree  *Tree
	min   geom.IRect
}

// New returns a Tiler that extracts bounding boxes via boxOf.
func New[T any](boxOf func(T) geom.IRect) *Tiler[T] {
	return &Tiler[T]{
		boxOf: boxOf,
		tree:  NewTree(),
		min:   geom.IRect{MinX: maxInt, MinY: maxInt, MaxX: minInt, MaxY: minInt},
	}
}

// Add appends a primitive to the tiler, indexing its bounding box.
func (t *Tiler[T]) Add(item T) {
	index := len(t.items)
	t.items = append(t.items, item)
	box := t.boxOf(item)
	t.tree.Insert(box, index)

	t.min.MinX = minOf(t.min.MinX, box.MinX)
	t.min.MinY = minOf(t.min.MinY, box.MinY)
	t.min.MaxX = maxOf(t.min.MaxX, box.MaxX)
	t.min.MaxY = maxOf(t.min.MaxY, box.MaxY)
}

// Len returns the number of primitives currently indexed.
func (t *Tiler[T]) Len() int { return len(t.items) }

// Reset clears the tiler so it can be reused for the next frame.
func (t *Tiler[T]) Reset() {
	t.items = t.items[:0]
	t.tree.Reset()
	t.min = geom.IRect{MinX: maxInt, MinY: maxInt, MaxX: minInt, MaxY: minInt}
}

// tileSpan computes the per-tile width/height for the tiler's current
// extent: a square tile sized off the full extent's width alone (divided
// into defaultSlices x defaultSlices tiles), never smaller than minSpan,
// applied to both axes regardless of the extent's height.
func (t *Tiler[T]) tileSpan() (w, h int) {
	fullW := t.min.Width()
	span := fullW / defaultSlices
	if span < minSpan {
		span = minSpan
	}
	return span, span
}

// Dispatch walks the tiler's bounding extent in tileSpan-sized tiles; for
// every tile that overlaps at least one primitive, it invokes shade with
// the tile rect and the overlapping primitives, sorted into ascending
// insertion order so that a back-to-front (or depth-tested) draw order is
// reproducible regardless of how the R-tree's internal traversal visited
// them.
func (t *Tiler[T]) Dispatch(shade func(tile geom.IRect, items []T)) {
	if t.Len() == 0 {
		return
	}
	spanW, spanH := t.tileSpan()

	var indexSet []int
	for y := t.min.MinY; y <= t.min.MaxY; y += spanH {
		for x := t.min.MinX; x <= t.min.MaxX; x += spanW {
			tile := geom.IRect{
				MinX: x,
				MinY: y,
				MaxX: minOf(x+spanW-1, t.min.MaxX),
				MaxY: minOf(y+spanH-1, t.min.MaxY),
			}

			indexSet = indexSet[:0]
			t.tree.Search(tile, func(index int) {
				indexSet = append(indexSet, index)
			})
			if len(indexSet) == 0 {
				continue
			}
			sortInts(indexSet)

			items := make([]T, len(indexSet))
			for i, idx := range indexSet {
				items[i] = t.items[idx]
			}
			shade(tile, items)
		}
	}
}

// sortInts is a tiny insertion sort; tile occupancy is small enough
// (bounded by maxEntries fan-out in practice) that this beats importing
// sort.Ints for the common case while remaining correct for the rare
// large tile.
func sortInts(a []int) {
	for i := 1; i < len(a); i++ {
		v := a[i]
		j := i - 1
		for j >= 0 && a[j] > v {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = v
	}
}
