package vfs

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeBSA builds a minimal v1.0 archive holding the given files and writes
// it under dir.
func writeBSA(t *testing.T, dir, name string, files map[string][]byte) string {
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

	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, uint32(0x100))
	binary.Write(buf, binary.LittleEndian, uint32(records.Len()+nameOffs.Len()+nameBlock.Len()))
	binary.Write(buf, binary.LittleEndian, uint32(len(names)))
	buf.Write(records.Bytes())
	buf.Write(nameOffs.Bytes())
	buf.Write(nameBlock.Bytes())
	buf.Write(make([]byte, 8*len(names)))
	buf.Write(data.Bytes())

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func writeLoose(t *testing.T, dir, rel string, content []byte) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, content, 0o644))
}

func TestLoadFromArchive(t *testing.T) {
	dir := t.TempDir()
	archive := writeBSA(t, dir, "base.bsa", map[string][]byte{
		`meshes\rock_01.nif`: []byte("rock mesh"),
	})

	m := NewManager("")
	defer m.Close()
	require.NoError(t, m.AddArchive(archive))

	data, err := m.Load(`Meshes\Rock_01.NIF`)
	require.NoError(t, err)
	assert.Equal(t, []byte("rock mesh"), data)

	_, err = m.Load("meshes/missing.nif")
	assert.Error(t, err)
}

func TestLooseFileOverridesArchive(t *testing.T) {
	dir := t.TempDir()
	archive := writeBSA(t, dir, "base.bsa", map[string][]byte{
		`meshes\rock_01.nif`: []byte("from archive"),
	})

	dataDir := filepath.Join(dir, "Data Files")
	writeLoose(t, dataDir, "meshes/rock_01.nif", []byte("from disk"))

	m := NewManager(dataDir)
	defer m.Close()
	require.NoError(t, m.AddArchive(archive))

	data, err := m.Load(`meshes\rock_01.nif`)
	require.NoError(t, err)
	assert.Equal(t, []byte("from disk"), data)
}

func TestLastArchiveWins(t *testing.T) {
	dir := t.TempDir()
	base := writeBSA(t, dir, "base.bsa", map[string][]byte{
		`textures\tx_wood.dds`: []byte("base"),
	})
	patch := writeBSA(t, dir, "patch.bsa", map[string][]byte{
		`textures\tx_wood.dds`: []byte("patch"),
	})

	m := NewManager("")
	defer m.Close()
	require.NoError(t, m.AddArchive(base))
	require.NoError(t, m.AddArchive(patch))

	data, err := m.Load("textures/tx_wood.dds")
	require.NoError(t, err)
	assert.Equal(t, []byte("patch"), data)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	archive := writeBSA(t, dir, "base.bsa", map[string][]byte{
		`meshes\in_archive.nif`: []byte("a"),
	})

	dataDir := filepath.Join(dir, "data")
	writeLoose(t, dataDir, "meshes/on_disk.nif", []byte("b"))

	m := NewManager(dataDir)
	defer m.Close()
	require.NoError(t, m.AddArchive(archive))

	assert.True(t, m.Exists(`meshes\in_archive.nif`))
	assert.True(t, m.Exists("MESHES/ON_DISK.NIF"))
	assert.False(t, m.Exists("meshes/neither.nif"))
}

func TestCacheCountsHitsAndMisses(t *testing.T) {
	dir := t.TempDir()
	archive := writeBSA(t, dir, "base.bsa", map[string][]byte{
		`meshes\rock_01.nif`: []byte("rock mesh"),
	})

	m := NewManager("")
	defer m.Close()
	require.NoError(t, m.AddArchive(archive))

	_, err := m.Load("meshes/rock_01.nif")
	require.NoError(t, err)
	// Different spellings of the same path share one cache entry.
	_, err = m.Load(`MESHES\ROCK_01.NIF`)
	require.NoError(t, err)

	hits, misses := m.cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}
