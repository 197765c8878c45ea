// Package gpubuf implements the rasterizer's host-side vertex, index and
// uniform storage: an append-only Buffer and the BufferView windows into it
// that draw calls and dispatch resources share.
package gpubuf

import "encoding/binary"

// Buffer is an append-only byte store. Once data is appended its backing
// slice is never relocated out from under existing BufferViews other than
// by further appends.
type Buffer struct {
	data []byte
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// Append copies p onto the end of the buffer and returns the byte offset it
// was written at.
func (b *Buffer) Append(p []byte) (offset int) {
	offset = len(b.data)
	b.data = append(b.data, p...)
	return offset
}

// Len returns the buffer's current length in bytes.
func (b *Buffer) Len() int { return len(b.data) }

// Data returns the buffer's full backing slice.
func (b *Buffer) Data() []byte { return b.data }

// View returns a BufferView over the entire buffer.
func (b *Buffer) View() BufferView {
	return BufferView{buffer: b, offset: 0, length: len(b.data)}
}

// ViewAt returns a BufferView over [offset, offset+length) of the buffer.
func (b *Buffer) ViewAt(offset, length int) BufferView {
	return BufferView{buffer: b, offset: offset, length: length}
}

// BufferView is a read-only window into a Buffer. Its zero value is a valid
// "no buffer" view, analogous to an empty shared_ptr in the reference
// implementation.
type BufferView struct {
	buffer *Buffer
	offset int
	length int
}

// Valid reports whether the view refers to a buffer.
func (v BufferView) Valid() bool { return v.buffer != nil }

// Len returns the view's length in bytes.
func (v BufferView) Len() int { return v.length }

// Data returns the byte slice the view covers.
func (v BufferView) Data() []byte {
	if v.buffer == nil {
		return nil
	}
	return v.buffer.data[v.offset : v.offset+v.length]
}

// LoadUint16 reads a little-endian uint16 at byte offset off within the
// view, used to decode 16-bit index buffers.
func (v BufferView) LoadUint16(off int) uint16 {
	return binary.LittleEndian.Uint16(v.Data()[off:])
}

// LoadUint32 reads a little-endian uint32 at byte offset off within the
// view, used to decode 32-bit index buffers.
func (v BufferView) LoadUint32(off int) uint32 {
	return binary.LittleEndian.Uint32(v.Data()[off:])
}
