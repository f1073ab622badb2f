package esm

import (
	"encoding/binary"
	"fmt"

	"github.com/Faultbox/resdayn/pkg/encoding"
)

// Reader decodes the two-level chunk framing of an ESM/ESP file held in
// memory. Top-level records carry a 12-byte header (tag, payload size, flags);
// the subrecords inside them carry an 8-byte header (tag, payload size). All
// integers are little-endian.
//
// The cursor only ever moves forward. A decoder that reads a subrecord tag
// belonging to the next logical entity hands it back with PushBackSubTag; the
// tag value is cached in a one-slot buffer rather than rewinding the cursor.
type Reader struct {
	data   []byte
	pos    int
	recEnd int // end offset of the current record's payload
	subEnd int // end offset of the current subrecord's payload
	pushed Tag // pending pushed-back subrecord tag, "" when empty
}

// NewReader creates a Reader over raw file bytes.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the current byte offset from the start of the data.
func (r *Reader) Offset() int { return r.pos }

// HasMoreRecords reports whether another top-level record can start at the
// current position. Only meaningful between records.
func (r *Reader) HasMoreRecords() bool { return r.pos < len(r.data) }

// ReadRecordHeader consumes a top-level record header and returns its tag,
// payload size and flags. The reader is positioned at the first subrecord.
func (r *Reader) ReadRecordHeader() (Tag, uint32, RecordFlags, error) {
	if r.pos+12 > len(r.data) {
		return "", 0, 0, fmt.Errorf("%w: record header at offset %#x", ErrTruncated, r.pos)
	}
	tag, err := r.readTag()
	if err != nil {
		return "", 0, 0, err
	}
	size := binary.LittleEndian.Uint32(r.data[r.pos:])
	flags := RecordFlags(binary.LittleEndian.Uint32(r.data[r.pos+4:]))
	r.pos += 8

	end := r.pos + int(size)
	if end > len(r.data) {
		return "", 0, 0, fmt.Errorf("%w: record %s payload (%d bytes) at offset %#x", ErrTruncated, tag, size, r.pos)
	}
	r.recEnd = end
	r.subEnd = r.pos
	r.pushed = ""
	return tag, size, flags, nil
}

// HasMoreSubrecords reports whether the current record has unread subrecords,
// including a pushed-back tag waiting to be re-read.
func (r *Reader) HasMoreSubrecords() bool {
	return r.pushed != "" || r.pos < r.recEnd
}

// ReadSubTag consumes and returns the next subrecord's tag. A pushed-back tag
// is returned first without touching the cursor.
func (r *Reader) ReadSubTag() (Tag, error) {
	if r.pushed != "" {
		tag := r.pushed
		r.pushed = ""
		return tag, nil
	}
	if r.pos+4 > r.recEnd {
		return "", fmt.Errorf("%w: subrecord tag at offset %#x", ErrTruncated, r.pos)
	}
	return r.readTag()
}

// PushBackSubTag hands an already-read subrecord tag back to the reader so the
// next ReadSubTag returns it again. At most one tag may be pending; pushing
// onto an occupied slot is a decoder bug.
func (r *Reader) PushBackSubTag(tag Tag) {
	if r.pushed != "" {
		panic(fmt.Sprintf("esm: tag %q pushed back while %q is pending", tag, r.pushed))
	}
	r.pushed = tag
}

// ReadSubHeader consumes the subrecord size field, committing the reader to
// the subrecord whose tag was just read. A size that would extend past the
// enclosing record marks the file malformed.
func (r *Reader) ReadSubHeader() (uint32, error) {
	if r.pos+4 > r.recEnd {
		return 0, fmt.Errorf("%w: subrecord size at offset %#x", ErrTruncated, r.pos)
	}
	size := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4

	end := r.pos + int(size)
	if end > r.recEnd {
		return 0, fmt.Errorf("%w: %d bytes declared at offset %#x, record ends at %#x",
			ErrSubrecordOverrun, size, r.pos, r.recEnd)
	}
	r.subEnd = end
	return size, nil
}

// SubRemaining returns the number of unread bytes in the current subrecord.
func (r *Reader) SubRemaining() int {
	if r.subEnd < r.pos {
		return 0
	}
	return r.subEnd - r.pos
}

// SubBytes consumes and returns the remaining payload of the current
// subrecord. The returned slice is a copy and stays valid after the reader's
// backing buffer is released.
func (r *Reader) SubBytes() []byte {
	b := make([]byte, r.SubRemaining())
	copy(b, r.data[r.pos:r.subEnd])
	r.pos = r.subEnd
	return b
}

// ReadString consumes the remaining payload of the current subrecord as a
// Windows-1252 string, trimming trailing null bytes.
func (r *Reader) ReadString() string {
	b := r.data[r.pos:r.subEnd]
	r.pos = r.subEnd
	return encoding.Win1252ToUTF8(encoding.TrimNullBytes(b))
}

// SkipSubrecord advances the cursor to the end of the current subrecord,
// discarding unread payload. Safe to call when nothing remains.
func (r *Reader) SkipSubrecord() {
	if r.pos < r.subEnd {
		r.pos = r.subEnd
	}
}

// SkipRecord advances the cursor to the end of the current record, discarding
// unread subrecords and any pending pushed-back tag. Callers invoke this
// after every record, even fully-decoded ones, so a decoder bug cannot
// desynchronize the rest of the stream.
func (r *Reader) SkipRecord() {
	if r.pos < r.recEnd {
		r.pos = r.recEnd
	}
	r.subEnd = r.pos
	r.pushed = ""
}

// readTag reads four raw tag bytes and validates them as printable ASCII.
func (r *Reader) readTag() (Tag, error) {
	b := r.data[r.pos : r.pos+4]
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return "", fmt.Errorf("%w: % x at offset %#x", ErrBadTag, b, r.pos)
		}
	}
	r.pos += 4
	return Tag(b), nil
}
