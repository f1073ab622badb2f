package bsa

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// writeArchive builds a minimal archive holding the given files, in sorted
// name order, and writes it under dir. The hash table is zeroed; lookups go
// through the name block.
func writeArchive(t *testing.T, dir string, files map[string][]byte) string {
	t.Helper()

	names := make([]string, 0, len(files))
	for n := range files {
		names = append(names, n)
	}
	sort.Strings(names)

	records := new(bytes.Buffer)
	nameOffs := new(bytes.Buffer)
	nameBlock := new(bytes.Buffer)
	data := new(bytes.Buffer)

	for _, n := range names {
		content := files[n]
		binary.Write(records, binary.LittleEndian, uint32(len(content)))
		binary.Write(records, binary.LittleEndian, uint32(data.Len()))
		binary.Write(nameOffs, binary.LittleEndian, uint32(nameBlock.Len()))
		nameBlock.WriteString(n)
		nameBlock.WriteByte(0)
		data.Write(content)
	}

	hashOffset := records.Len() + nameOffs.Len() + nameBlock.Len()

	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, uint32(bsaVersion))
	binary.Write(buf, binary.LittleEndian, uint32(hashOffset))
	binary.Write(buf, binary.LittleEndian, uint32(len(names)))
	buf.Write(records.Bytes())
	buf.Write(nameOffs.Bytes())
	buf.Write(nameBlock.Bytes())
	buf.Write(make([]byte, 8*len(names)))
	buf.Write(data.Bytes())

	path := filepath.Join(dir, "test.bsa")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing archive: %v", err)
	}
	return path
}

func TestOpenAndList(t *testing.T) {
	path := writeArchive(t, t.TempDir(), map[string][]byte{
		`Meshes\o\Contain_Barrel_01.NIF`: []byte("nif data"),
		`Textures\tx_wood.dds`:           []byte("dds data"),
	})

	archive, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open BSA: %v", err)
	}
	defer archive.Close()

	files := archive.List()
	if len(files) != 2 {
		t.Fatalf("List returned %d files, want 2", len(files))
	}
	sort.Strings(files)
	if files[0] != "meshes/o/contain_barrel_01.nif" {
		t.Errorf("paths not normalized: %q", files[0])
	}
}

func TestContains(t *testing.T) {
	path := writeArchive(t, t.TempDir(), map[string][]byte{
		`meshes\rock_01.nif`: []byte("x"),
	})

	archive, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open BSA: %v", err)
	}
	defer archive.Close()

	// Lookups accept either slash style and any case.
	for _, q := range []string{
		`meshes\rock_01.nif`,
		"meshes/rock_01.nif",
		`MESHES\Rock_01.NIF`,
	} {
		if !archive.Contains(q) {
			t.Errorf("Contains(%q) = false, want true", q)
		}
	}
	if archive.Contains("meshes/missing.nif") {
		t.Error("Contains returned true for non-existent file")
	}
}

func TestRead(t *testing.T) {
	want := map[string][]byte{
		`meshes\a.nif`:   []byte("first"),
		`meshes\b.nif`:   []byte("second, longer payload"),
		`icons\gold.tga`: {0x00, 0x01, 0x02},
	}
	path := writeArchive(t, t.TempDir(), want)

	archive, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open BSA: %v", err)
	}
	defer archive.Close()

	for name, content := range want {
		got, err := archive.Read(name)
		if err != nil {
			t.Fatalf("Read(%q) failed: %v", name, err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("Read(%q) = %q, want %q", name, got, content)
		}
	}

	if got := archive.Size(`meshes\b.nif`); got != 22 {
		t.Errorf("Size = %d, want 22", got)
	}
	if _, err := archive.Read("meshes/missing.nif"); err == nil {
		t.Error("Read of missing file did not fail")
	}
}

func TestOpenRejectsBadVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bsa")
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, uint32(0x200))
	binary.Write(buf, binary.LittleEndian, uint32(0))
	binary.Write(buf, binary.LittleEndian, uint32(0))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path); err == nil {
		t.Fatal("Open accepted an unsupported version")
	}
}

func TestOpenTruncatedMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.bsa")
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, uint32(bsaVersion))
	binary.Write(buf, binary.LittleEndian, uint32(4096)) // claims more than the file holds
	binary.Write(buf, binary.LittleEndian, uint32(1))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path); err == nil {
		t.Fatal("Open accepted a truncated archive")
	}
}
