package gpubuf

import (
	"encoding/binary"
	"testing"
)

func TestAppendReturnsOffset(t *testing.T) {
	b := New()
	off1 := b.Append([]byte{1, 2, 3})
	off2 := b.Append([]byte{4, 5})
	if off1 != 0 {
		t.Errorf("first Append offset = %d, want 0", off1)
	}
	if off2 != 3 {
		t.Errorf("second Append offset = %d, want 3", off2)
	}
	if b.Len() != 5 {
		t.Errorf("Len() = %d, want 5", b.Len())
	}
}

func TestViewData(t *testing.T) {
	b := New()
	b.Append([]byte{1, 2, 3, 4})
	v := b.View()
	if !v.Valid() {
		t.Error("expected View() to be valid")
	}
	if v.Len() != 4 {
		t.Errorf("View().Len() = %d, want 4", v.Len())
	}

	var zero BufferView
	if zero.Valid() {
		t.Error("expected zero-value BufferView to be invalid")
	}
	if zero.Data() != nil {
		t.Error("expected zero-value BufferView.Data() to be nil")
	}
}

func TestViewAtWindow(t *testing.T) {
	b := New()
	b.Append([]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE})
	v := b.ViewAt(1, 3)
	want := []byte{0xBB, 0xCC, 0xDD}
	got := v.Data()
	if len(got) != len(want) {
		t.Fatalf("ViewAt data len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ViewAt data[%d] = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestLoadUint16AndUint32(t *testing.T) {
	b := New()
	var raw []byte
	raw = binary.LittleEndian.AppendUint16(raw, 0x1234)
	raw = binary.LittleEndian.AppendUint32(raw, 0xDEADBEEF)
	b.Append(raw)
	v := b.View()

	if got := v.LoadUint16(0); got != 0x1234 {
		t.Errorf("LoadUint16(0) = %#x, want 0x1234", got)
	}
	if got := v.LoadUint32(2); got != 0xDEADBEEF {
		t.Errorf("LoadUint32(2) = %#x, want 0xDEADBEEF", got)
	}
}
