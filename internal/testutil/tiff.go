// Package testutil builds small media fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

const (
	TagMake     uint16 = 0x010F
	TagModel    uint16 = 0x0110
	TagDateTime uint16 = 0x0132
)

// TIFF field types used by the fixtures.
const (
	TypeASCII uint16 = 2
	TypeShort uint16 = 3
)

// Entry is one raw IFD0 field. Count is in units of Type.
type Entry struct {
	Tag   uint16
	Type  uint16
	Count uint32
	Data  []byte
}

// TIFF returns a little-endian TIFF stream whose IFD0 holds the given ASCII
// tags. Camera RAW formats such as NEF and ARW share this layout.
func TIFF(tags map[uint16]string) []byte {
	entries := make([]Entry, 0, len(tags))
	for id, s := range tags {
		val := append([]byte(s), 0)
		entries = append(entries, Entry{Tag: id, Type: TypeASCII, Count: uint32(len(val)), Data: val})
	}
	return TIFFEntries(entries)
}

// TIFFEntries is TIFF with full control over each field's type.
func TIFFEntries(entries []Entry) []byte {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Tag < entries[j].Tag })

	le := binary.LittleEndian
	var head, data bytes.Buffer
	head.WriteString("II")
	_ = binary.Write(&head, le, uint16(42))
	_ = binary.Write(&head, le, uint32(8))
	_ = binary.Write(&head, le, uint16(len(entries)))

	dataStart := uint32(8 + 2 + 12*len(entries) + 4)
	for _, e := range entries {
		val := e.Data
		_ = binary.Write(&head, le, e.Tag)
		_ = binary.Write(&head, le, e.Type)
		_ = binary.Write(&head, le, e.Count)
		if len(val) <= 4 {
			inline := make([]byte, 4)
			copy(inline, val)
			head.Write(inline)
			continue
		}
		_ = binary.Write(&head, le, dataStart+uint32(data.Len()))
		data.Write(val)
		if data.Len()%2 == 1 {
			data.WriteByte(0)
		}
	}
	_ = binary.Write(&head, le, uint32(0))
	head.Write(data.Bytes())
	return head.Bytes()
}

// Camera describes the tags written by WriteRAW. Empty fields are omitted.
type Camera struct {
	Make     string
	Model    string
	DateTime string
}

// WriteRAW writes a TIFF-structured file at dir/name and returns its path.
func WriteRAW(t testing.TB, dir, name string, cam Camera) string {
	t.Helper()
	tags := map[uint16]string{}
	if cam.Make != "" {
		tags[TagMake] = cam.Make
	}
	if cam.Model != "" {
		tags[TagModel] = cam.Model
	}
	if cam.DateTime != "" {
		tags[TagDateTime] = cam.DateTime
	}
	return WriteFile(t, dir, name, TIFF(tags))
}

// WriteFile writes data at dir/name, creating parent directories.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
