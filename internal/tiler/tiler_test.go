package tiler

import (
	"testing"

	"github.com/chinmaygarde/sft-sub000/internal/geom"
)

type primitive struct {
	id  int
	box geom.IRect
}

func boxOfPrimitive(p primitive) geom.IRect { return p.box }

func TestTilerDispatchCoversAllPrimitives(t *testing.T) {
	tl := New(boxOfPrimitive)
	tl.Add(primitive{id: 0, box: geom.IRect{MinX: 0, MinY: 0, MaxX: 9, MaxY: 9}})
	tl.Add(primitive{id: 1, box: geom.IRect{MinX: 500, MinY: 500, MaxX: 520, MaxY: 520}})

	if tl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tl.Len())
	}

	seen := map[int]bool{}
	tl.Dispatch(func(tile geom.IRect, items []primitive) {
		for _, it := range items {
			seen[it.id] = true
		}
	})
	if !seen[0] || !seen[1] {
		t.Errorf("expected Dispatch to visit both primitives, saw %v", seen)
	}
}

func TestTilerDispatchEmptyIsNoOp(t *testing.T) {
	tl := New(boxOfPrimitive)
	called := false
	tl.Dispatch(func(tile geom.IRect, items []primitive) { called = true })
	if called {
		t.Error("Dispatch on an empty tiler should not invoke shade")
	}
}

func TestTilerDispatchPreservesInsertionOrderWithinTile(t *testing.T) {
	tl := New(boxOfPrimitive)
	for i := 0; i < 5; i++ {
		tl.Add(primitive{id: i, box: geom.IRect{MinX: 0, MinY: 0, MaxX: 9, MaxY: 9}})
	}

	var order []int
	tl.Dispatch(func(tile geom.IRect, items []primitive) {
		for _, it := range items {
			order = append(order, it.id)
		}
	})
	for i, id := range order {
		if id != i {
			t.Errorf("order[%d] = %d, want %d (insertion order within a tile)", i, id, i)
		}
	}
}

func TestTilerResetClearsState(t *testing.T) {
	tl := New(boxOfPrimitive)
	tl.Add(primitive{id: 0, box: geom.IRect{MinX: 0, MinY: 0, MaxX: 9, MaxY: 9}})
	tl.Reset()
	if tl.Len() != 0 {
		t.Errorf("Len() after Reset() = %d, want 0", tl.Len())
	}
	called := false
	tl.Dispatch(func(tile geom.IRect, items []primitive) { called = true })
	if called {
		t.Error("Dispatch after Reset() should not invoke shade")
	}
}
