package esm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// writeSub appends one subrecord (tag, size, payload) to buf.
func writeSub(buf *bytes.Buffer, tag string, payload []byte) {
	buf.WriteString(tag)
	binary.Write(buf, binary.LittleEndian, uint32(len(payload)))
	buf.Write(payload)
}

// sub builds one subrecord.
func sub(tag string, payload []byte) []byte {
	buf := new(bytes.Buffer)
	writeSub(buf, tag, payload)
	return buf.Bytes()
}

// subZ builds a subrecord holding a null-terminated string.
func subZ(tag, s string) []byte {
	return sub(tag, append([]byte(s), 0))
}

// pack encodes fixed-size values little-endian, in order.
func pack(vals ...any) []byte {
	buf := new(bytes.Buffer)
	for _, v := range vals {
		binary.Write(buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

// rec builds one top-level record (tag, size, flags, body) from its
// subrecords.
func rec(tag string, flags uint32, subs ...[]byte) []byte {
	body := new(bytes.Buffer)
	for _, s := range subs {
		body.Write(s)
	}
	buf := new(bytes.Buffer)
	buf.WriteString(tag)
	binary.Write(buf, binary.LittleEndian, uint32(body.Len()))
	binary.Write(buf, binary.LittleEndian, flags)
	buf.Write(body.Bytes())
	return buf.Bytes()
}

// concat joins records into one in-memory content file.
func concat(recs ...[]byte) []byte {
	buf := new(bytes.Buffer)
	for _, r := range recs {
		buf.Write(r)
	}
	return buf.Bytes()
}

func TestReaderRecordHeader(t *testing.T) {
	data := rec("STAT", 0x0400, subZ("NAME", "rock_01"))

	r := NewReader(data)
	if !r.HasMoreRecords() {
		t.Fatal("expected a record")
	}
	tag, size, flags, err := r.ReadRecordHeader()
	if err != nil {
		t.Fatalf("ReadRecordHeader failed: %v", err)
	}
	if tag != TagSTAT {
		t.Errorf("expected tag STAT, got %s", tag)
	}
	if int(size) != len(data)-12 {
		t.Errorf("expected size %d, got %d", len(data)-12, size)
	}
	if !flags.Persistent() {
		t.Error("expected persistent flag")
	}
	r.SkipRecord()
	if r.HasMoreRecords() {
		t.Error("expected no more records after skip")
	}
}

func TestReaderSubrecordLoop(t *testing.T) {
	data := rec("STAT", 0,
		subZ("NAME", "rock_01"),
		subZ("MODL", `f\rock_01.nif`),
		sub("XXXX", pack(uint32(7))),
	)

	r := NewReader(data)
	if _, _, _, err := r.ReadRecordHeader(); err != nil {
		t.Fatalf("ReadRecordHeader failed: %v", err)
	}

	var tags []Tag
	var sizes []uint32
	for r.HasMoreSubrecords() {
		tag, err := r.ReadSubTag()
		if err != nil {
			t.Fatalf("ReadSubTag failed: %v", err)
		}
		size, err := r.ReadSubHeader()
		if err != nil {
			t.Fatalf("ReadSubHeader failed: %v", err)
		}
		tags = append(tags, tag)
		sizes = append(sizes, size)
		r.SkipSubrecord()
	}

	want := []Tag{"NAME", "MODL", "XXXX"}
	if len(tags) != len(want) {
		t.Fatalf("expected %d subrecords, got %d", len(want), len(tags))
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("subrecord %d: expected %s, got %s", i, want[i], tags[i])
		}
	}
	if sizes[2] != 4 {
		t.Errorf("expected XXXX size 4, got %d", sizes[2])
	}
}

func TestReaderEmptyRecord(t *testing.T) {
	r := NewReader(rec("STAT", 0))
	if _, _, _, err := r.ReadRecordHeader(); err != nil {
		t.Fatalf("ReadRecordHeader failed: %v", err)
	}
	if r.HasMoreSubrecords() {
		t.Error("expected no subrecords in empty record")
	}
}

func TestReaderMultipleRecords(t *testing.T) {
	data := concat(
		rec("STAT", 0, subZ("NAME", "a")),
		rec("ACTI", 0, subZ("NAME", "b")),
	)

	r := NewReader(data)
	var tags []Tag
	for r.HasMoreRecords() {
		tag, _, _, err := r.ReadRecordHeader()
		if err != nil {
			t.Fatalf("ReadRecordHeader failed: %v", err)
		}
		tags = append(tags, tag)
		r.SkipRecord()
	}
	if len(tags) != 2 || tags[0] != TagSTAT || tags[1] != TagACTI {
		t.Errorf("expected [STAT ACTI], got %v", tags)
	}
}

func TestReaderPushBack(t *testing.T) {
	data := rec("CELL", 0, sub("FRMR", pack(uint32(42))))

	r := NewReader(data)
	if _, _, _, err := r.ReadRecordHeader(); err != nil {
		t.Fatalf("ReadRecordHeader failed: %v", err)
	}

	tag, err := r.ReadSubTag()
	if err != nil {
		t.Fatalf("ReadSubTag failed: %v", err)
	}
	r.PushBackSubTag(tag)

	if !r.HasMoreSubrecords() {
		t.Fatal("expected pushed-back tag to count as a pending subrecord")
	}
	again, err := r.ReadSubTag()
	if err != nil {
		t.Fatalf("ReadSubTag after push back failed: %v", err)
	}
	if again != tag {
		t.Errorf("expected pushed-back tag %s, got %s", tag, again)
	}

	// The size field must still be unread: one header read yields the
	// payload.
	if _, err := r.ReadSubHeader(); err != nil {
		t.Fatalf("ReadSubHeader failed: %v", err)
	}
	if got := NewFieldReader(r.SubBytes()).Uint32(); got != 42 {
		t.Errorf("expected payload 42, got %d", got)
	}
	if r.HasMoreSubrecords() {
		t.Error("expected record exhausted")
	}
}

func TestReaderPushBackTwicePanics(t *testing.T) {
	r := NewReader(rec("CELL", 0, sub("FRMR", pack(uint32(1)))))
	if _, _, _, err := r.ReadRecordHeader(); err != nil {
		t.Fatalf("ReadRecordHeader failed: %v", err)
	}
	tag, err := r.ReadSubTag()
	if err != nil {
		t.Fatalf("ReadSubTag failed: %v", err)
	}
	r.PushBackSubTag(tag)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on second push back")
		}
	}()
	r.PushBackSubTag(tag)
}

func TestReaderSkipRecordClearsPushBack(t *testing.T) {
	data := concat(
		rec("CELL", 0, sub("FRMR", pack(uint32(1)))),
		rec("STAT", 0, subZ("NAME", "a")),
	)

	r := NewReader(data)
	if _, _, _, err := r.ReadRecordHeader(); err != nil {
		t.Fatalf("ReadRecordHeader failed: %v", err)
	}
	tag, err := r.ReadSubTag()
	if err != nil {
		t.Fatalf("ReadSubTag failed: %v", err)
	}
	r.PushBackSubTag(tag)
	r.SkipRecord()

	next, _, _, err := r.ReadRecordHeader()
	if err != nil {
		t.Fatalf("ReadRecordHeader after skip failed: %v", err)
	}
	if next != TagSTAT {
		t.Errorf("expected STAT after skip, got %s", next)
	}
}

func TestReaderTruncatedHeader(t *testing.T) {
	_, _, _, err := NewReader([]byte("STAT\x04\x00")).ReadRecordHeader()
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestReaderTruncatedPayload(t *testing.T) {
	// Declared size larger than the data that follows.
	buf := new(bytes.Buffer)
	buf.WriteString("STAT")
	binary.Write(buf, binary.LittleEndian, uint32(100))
	binary.Write(buf, binary.LittleEndian, uint32(0))
	buf.WriteString("NAME")

	_, _, _, err := NewReader(buf.Bytes()).ReadRecordHeader()
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestReaderSubrecordOverrun(t *testing.T) {
	// Subrecord claims 200 bytes inside a record that ends after 12.
	body := sub("NAME", make([]byte, 4))
	binary.LittleEndian.PutUint32(body[4:], 200)

	r := NewReader(rec("STAT", 0, body))
	if _, _, _, err := r.ReadRecordHeader(); err != nil {
		t.Fatalf("ReadRecordHeader failed: %v", err)
	}
	if _, err := r.ReadSubTag(); err != nil {
		t.Fatalf("ReadSubTag failed: %v", err)
	}
	if _, err := r.ReadSubHeader(); !errors.Is(err, ErrSubrecordOverrun) {
		t.Errorf("expected ErrSubrecordOverrun, got %v", err)
	}
}

func TestReaderBadTag(t *testing.T) {
	data := rec("STAT", 0)
	data[0] = 0x01

	_, _, _, err := NewReader(data).ReadRecordHeader()
	if !errors.Is(err, ErrBadTag) {
		t.Errorf("expected ErrBadTag, got %v", err)
	}
}

func TestFieldReaderScalars(t *testing.T) {
	f := NewFieldReader(pack(
		uint8(1), int8(-2), uint16(3), int16(-4),
		uint32(5), int32(-6), float32(7.5), uint64(8),
	))

	if v := f.Uint8(); v != 1 {
		t.Errorf("Uint8: expected 1, got %d", v)
	}
	if v := f.Int8(); v != -2 {
		t.Errorf("Int8: expected -2, got %d", v)
	}
	if v := f.Uint16(); v != 3 {
		t.Errorf("Uint16: expected 3, got %d", v)
	}
	if v := f.Int16(); v != -4 {
		t.Errorf("Int16: expected -4, got %d", v)
	}
	if v := f.Uint32(); v != 5 {
		t.Errorf("Uint32: expected 5, got %d", v)
	}
	if v := f.Int32(); v != -6 {
		t.Errorf("Int32: expected -6, got %d", v)
	}
	if v := f.Float32(); v != 7.5 {
		t.Errorf("Float32: expected 7.5, got %v", v)
	}
	if v := f.Uint64(); v != 8 {
		t.Errorf("Uint64: expected 8, got %d", v)
	}
	if f.Remaining() != 0 {
		t.Errorf("expected 0 remaining, got %d", f.Remaining())
	}
}

func TestFieldReaderShortPayload(t *testing.T) {
	f := NewFieldReader(pack(uint16(9)))

	// A four-byte read from a two-byte payload yields zero, not garbage.
	if v := f.Uint32(); v != 0 {
		t.Errorf("expected 0 from short read, got %d", v)
	}
	if v := f.Uint8(); v != 0 {
		t.Errorf("expected 0 after exhaustion, got %d", v)
	}
	if f.Bytes(4) != nil {
		t.Error("expected nil from short Bytes read")
	}
	if s := f.String(8); s != "" {
		t.Errorf("expected empty string, got %q", s)
	}
}

func TestFieldReaderString(t *testing.T) {
	f := NewFieldReader([]byte("sword\x00\x00\x00extra"))
	if s := f.String(8); s != "sword" {
		t.Errorf("expected %q, got %q", "sword", s)
	}
	if s := f.String(5); s != "extra" {
		t.Errorf("expected %q, got %q", "extra", s)
	}
}

func TestReaderStringWindows1252(t *testing.T) {
	// 0xF4 is o-circumflex in Windows-1252.
	data := rec("STAT", 0, sub("NAME", []byte{'S', 0xF4, 't', 'h', 'a', 0}))

	r := NewReader(data)
	if _, _, _, err := r.ReadRecordHeader(); err != nil {
		t.Fatalf("ReadRecordHeader failed: %v", err)
	}
	if _, err := r.ReadSubTag(); err != nil {
		t.Fatalf("ReadSubTag failed: %v", err)
	}
	if _, err := r.ReadSubHeader(); err != nil {
		t.Fatalf("ReadSubHeader failed: %v", err)
	}
	if s := r.ReadString(); s != "Sôtha" {
		t.Errorf("expected %q, got %q", "Sôtha", s)
	}
}
