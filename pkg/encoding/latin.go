// Package encoding provides text encoding utilities for Morrowind file formats.
package encoding

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Win1252ToUTF8 converts Windows-1252 encoded bytes to a UTF-8 string.
// Morrowind content files store all text in the Windows-1252 code page.
// Returns the input reinterpreted byte-for-byte if conversion fails.
func Win1252ToUTF8(data []byte) string {
	decoder := charmap.Windows1252.NewDecoder()
	result, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// UTF8ToWin1252 converts a UTF-8 string to Windows-1252 encoded bytes.
// Characters outside the code page are dropped by the encoder; callers that
// need round-trip fidelity should not feed it arbitrary Unicode.
func UTF8ToWin1252(s string) []byte {
	encoder := charmap.Windows1252.NewEncoder()
	result, _, err := transform.Bytes(encoder, []byte(s))
	if err != nil {
		return []byte(s)
	}
	return result
}

// NormalizeArchivePath normalizes a BSA file path for case-insensitive lookup.
// The game ships paths with backslashes and mixed case.
func NormalizeArchivePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	return strings.ToLower(path)
}

// TrimNullBytes removes trailing null bytes from a byte slice.
func TrimNullBytes(data []byte) []byte {
	return bytes.TrimRight(data, "\x00")
}

// FixedString converts a fixed-size, null-padded Windows-1252 byte array to a
// UTF-8 string. Content after the first null byte is ignored.
func FixedString(data []byte) string {
	if idx := bytes.IndexByte(data, 0); idx >= 0 {
		data = data[:idx]
	}
	return Win1252ToUTF8(data)
}

// PadFixedString converts a UTF-8 string to a fixed-size Windows-1252 byte
// array, padded with null bytes. Overlong input is truncated at size.
func PadFixedString(s string, size int) []byte {
	result := make([]byte, size)
	copy(result, UTF8ToWin1252(s))
	return result
}
