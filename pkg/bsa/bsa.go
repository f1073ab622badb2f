// Package bsa provides reading functionality for Morrowind BSA archives.
package bsa

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
)

const bsaVersion = 0x100

// headerSize is the fixed part of the archive: version, hash table offset,
// file count. All metadata offsets in the archive count from the end of it.
const headerSize = 12

// Archive represents an opened BSA archive.
type Archive struct {
	file     *os.File
	header   Header
	fileList map[string]*Entry
	dataOff  int64
}

// Header contains BSA file header information. HashOffset locates the hash
// table relative to the end of the header; the size/offset records, name
// offsets and name block fill the space in between.
type Header struct {
	Version    uint32
	HashOffset uint32
	FileCount  uint32
}

// Entry represents a file entry in the archive. Offset is relative to the
// start of the data section; BSA files store content uncompressed.
type Entry struct {
	Name   string
	Size   uint32
	Offset uint32
}

// Open opens a BSA archive for reading.
func Open(path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	archive := &Archive{
		file:     file,
		fileList: make(map[string]*Entry),
	}

	if err := archive.readHeader(); err != nil {
		file.Close()
		return nil, fmt.Errorf("reading header: %w", err)
	}

	if err := archive.readFileTable(); err != nil {
		file.Close()
		return nil, fmt.Errorf("reading file table: %w", err)
	}

	return archive, nil
}

// Close closes the archive.
func (a *Archive) Close() error {
	if a.file != nil {
		return a.file.Close()
	}
	return nil
}

func (a *Archive) readHeader() error {
	if _, err := a.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	if err := binary.Read(a.file, binary.LittleEndian, &a.header); err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	if a.header.Version != bsaVersion {
		return fmt.Errorf("unsupported BSA version: %#x", a.header.Version)
	}

	return nil
}

// readFileTable parses the metadata block between the header and the hash
// table: per-file size/offset pairs, name offsets, then the packed
// null-terminated names.
func (a *Archive) readFileTable() error {
	count := int(a.header.FileCount)
	if int(a.header.HashOffset) < 12*count {
		return fmt.Errorf("invalid BSA header: %d files do not fit before hash table at %#x",
			count, a.header.HashOffset)
	}

	meta := make([]byte, a.header.HashOffset)
	if _, err := io.ReadFull(a.file, meta); err != nil {
		return fmt.Errorf("reading metadata block: %w", err)
	}

	names := meta[12*count:]
	for i := 0; i < count; i++ {
		size := binary.LittleEndian.Uint32(meta[8*i:])
		offset := binary.LittleEndian.Uint32(meta[8*i+4:])
		nameOff := binary.LittleEndian.Uint32(meta[8*count+4*i:])

		if int(nameOff) >= len(names) {
			return fmt.Errorf("file %d: name offset %#x outside name block", i, nameOff)
		}
		end := nameOff
		for end < uint32(len(names)) && names[end] != 0 {
			end++
		}

		entry := &Entry{
			Name:   normalizePath(string(names[nameOff:end])),
			Size:   size,
			Offset: offset,
		}
		a.fileList[entry.Name] = entry
	}

	// The hash table sits between the names and the data; readers that look
	// files up by name have no use for it.
	a.dataOff = headerSize + int64(a.header.HashOffset) + 8*int64(count)
	return nil
}

// List returns all file paths in the archive.
func (a *Archive) List() []string {
	result := make([]string, 0, len(a.fileList))
	for path := range a.fileList {
		result = append(result, path)
	}
	return result
}

// Contains checks if a file exists.
func (a *Archive) Contains(path string) bool {
	_, ok := a.fileList[normalizePath(path)]
	return ok
}

// Size returns the stored size of a file, or 0 if it is not present.
func (a *Archive) Size(path string) uint32 {
	entry, ok := a.fileList[normalizePath(path)]
	if !ok {
		return 0
	}
	return entry.Size
}

// Read reads a file from the archive.
func (a *Archive) Read(path string) ([]byte, error) {
	entry, ok := a.fileList[normalizePath(path)]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	if _, err := a.file.Seek(a.dataOff+int64(entry.Offset), io.SeekStart); err != nil {
		return nil, err
	}

	data := make([]byte, entry.Size)
	if _, err := io.ReadFull(a.file, data); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// normalizePath maps a path to the form used for lookups. Archives store
// paths with backslashes and arbitrary case.
func normalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	return strings.ToLower(path)
}
