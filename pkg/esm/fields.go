package esm

import (
	"encoding/binary"
	"math"

	"github.com/Faultbox/resdayn/pkg/encoding"
)

// FieldReader decodes the fixed-layout field blocks carried inside
// subrecords. Reads never cross the end of the payload: once the remaining
// bytes run out the scalar methods return zero values, so a block shorter
// than a decoder expects yields conservative defaults for the missing tail
// instead of corrupting the stream. Older and hand-edited plugin files carry
// such short blocks in the wild.
type FieldReader struct {
	b   []byte
	off int
}

// NewFieldReader wraps a subrecord payload.
func NewFieldReader(b []byte) *FieldReader {
	return &FieldReader{b: b}
}

// Remaining returns the number of unread bytes.
func (f *FieldReader) Remaining() int { return len(f.b) - f.off }

// Skip advances past n bytes, clamping at the end of the payload.
func (f *FieldReader) Skip(n int) {
	f.off += n
	if f.off > len(f.b) {
		f.off = len(f.b)
	}
}

func (f *FieldReader) take(n int) []byte {
	if f.off+n > len(f.b) {
		f.off = len(f.b)
		return nil
	}
	b := f.b[f.off : f.off+n]
	f.off += n
	return b
}

// Uint8 reads one unsigned byte.
func (f *FieldReader) Uint8() uint8 {
	b := f.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// Int8 reads one signed byte.
func (f *FieldReader) Int8() int8 { return int8(f.Uint8()) }

// Uint16 reads a little-endian unsigned 16-bit integer.
func (f *FieldReader) Uint16() uint16 {
	b := f.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// Int16 reads a little-endian signed 16-bit integer.
func (f *FieldReader) Int16() int16 { return int16(f.Uint16()) }

// Uint32 reads a little-endian unsigned 32-bit integer.
func (f *FieldReader) Uint32() uint32 {
	b := f.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// Int32 reads a little-endian signed 32-bit integer.
func (f *FieldReader) Int32() int32 { return int32(f.Uint32()) }

// Uint64 reads a little-endian unsigned 64-bit integer.
func (f *FieldReader) Uint64() uint64 {
	b := f.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// Float32 reads a little-endian IEEE 754 single-precision float.
func (f *FieldReader) Float32() float32 {
	return math.Float32frombits(f.Uint32())
}

// Bytes reads n raw bytes. The result aliases the payload; it is nil when
// fewer than n bytes remain.
func (f *FieldReader) Bytes(n int) []byte { return f.take(n) }

// String reads an n-byte fixed-width field as a Windows-1252 string, trimming
// at the first null byte.
func (f *FieldReader) String(n int) string {
	b := f.take(n)
	if b == nil {
		return ""
	}
	return encoding.FixedString(b)
}
