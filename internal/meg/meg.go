// Package meg reads and writes unencrypted Petroglyph MEG (version 3)
// archives, the container the remastered game loads custom maps from.
package meg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	magic1 uint32 = 0xFFFFFFFF
	magic2 uint32 = 0x3F7D70A4

	headerSize = 24
	recordSize = 20
)

// Header is the fixed archive header.
type Header struct {
	Magic1        uint32
	Magic2        uint32
	DataStart     uint32
	NumNames      uint32
	NumFiles      uint32
	NameTableSize uint32
}

// record is one file table entry.
type record struct {
	Flags     uint16
	CRC       uint32
	Index     uint32
	Size      uint32
	Start     uint32
	NameIndex uint16
}

// File is an archive member to write.
type File struct {
	Name string
	Data []byte
}

// Entry describes an archive member.
type Entry struct {
	Name  string
	CRC   uint32
	Size  uint32
	Start uint32
}

var ErrInvalidArchive = errors.New("invalid MEG archive")

// archiveName is the stored form of a member name.
func archiveName(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "/", "\\"))
}

// Write writes files as a MEG archive. Names are stored upper case, and
// the file table is sorted by the CRC-32 of the name as the game
// searches it with a binary search.
func Write(w io.Writer, files []File) error {
	type member struct {
		name string
		crc  uint32
		data []byte
	}
	members := make([]member, len(files))
	seen := make(map[string]bool, len(files))
	for i, f := range files {
		name := archiveName(f.Name)
		if name == "" || len(name) > 0xFFFF {
			return fmt.Errorf("invalid member name %q", f.Name)
		}
		if seen[name] {
			return fmt.Errorf("duplicate member name %q", name)
		}
		seen[name] = true
		members[i] = member{name: name, crc: crc32.ChecksumIEEE([]byte(name)), data: f.Data}
	}
	sort.SliceStable(members, func(i, j int) bool { return members[i].crc < members[j].crc })

	var names bytes.Buffer
	for _, m := range members {
		binary.Write(&names, binary.LittleEndian, uint16(len(m.name)))
		names.WriteString(m.name)
	}

	h := Header{
		Magic1:        magic1,
		Magic2:        magic2,
		NumNames:      uint32(len(members)),
		NumFiles:      uint32(len(members)),
		NameTableSize: uint32(names.Len()),
	}
	h.DataStart = headerSize + h.NameTableSize + recordSize*h.NumFiles

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	buf.Write(names.Bytes())

	start := h.DataStart
	for i, m := range members {
		rec := record{
			CRC:       m.crc,
			Index:     uint32(i),
			Size:      uint32(len(m.data)),
			Start:     start,
			NameIndex: uint16(i),
		}
		if err := binary.Write(&buf, binary.LittleEndian, rec); err != nil {
			return fmt.Errorf("write file table: %w", err)
		}
		start += rec.Size
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	for _, m := range members {
		if _, err := w.Write(m.data); err != nil {
			return fmt.Errorf("write %s: %w", m.name, err)
		}
	}
	return nil
}

// Read parses the header and file table of an archive of the given size.
func Read(r io.ReaderAt, size int64) ([]Entry, error) {
	sr := io.NewSectionReader(r, 0, size)

	var h Header
	if err := binary.Read(sr, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if h.Magic1 != magic1 || h.Magic2 != magic2 {
		return nil, fmt.Errorf("%w: unsupported signature %08X %08X", ErrInvalidArchive, h.Magic1, h.Magic2)
	}
	if int64(h.DataStart) > size || int64(h.NameTableSize)+headerSize > size {
		return nil, fmt.Errorf("%w: tables exceed file size", ErrInvalidArchive)
	}

	names := make([]string, h.NumNames)
	for i := range names {
		var n uint16
		if err := binary.Read(sr, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("read name %d: %w", i, err)
		}
		b := make([]byte, n)
		if _, err := io.ReadFull(sr, b); err != nil {
			return nil, fmt.Errorf("read name %d: %w", i, err)
		}
		names[i] = string(b)
	}

	entries := make([]Entry, 0, h.NumFiles)
	for i := uint32(0); i < h.NumFiles; i++ {
		var rec record
		if err := binary.Read(sr, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("read file record %d: %w", i, err)
		}
		if rec.Flags != 0 {
			return nil, fmt.Errorf("%w: record %d is encrypted", ErrInvalidArchive, i)
		}
		if int(rec.NameIndex) >= len(names) {
			return nil, fmt.Errorf("%w: record %d has name index %d", ErrInvalidArchive, i, rec.NameIndex)
		}
		if int64(rec.Start)+int64(rec.Size) > size {
			return nil, fmt.Errorf("%w: %s extends past the end of the archive", ErrInvalidArchive, names[rec.NameIndex])
		}
		entries = append(entries, Entry{
			Name:  names[rec.NameIndex],
			CRC:   rec.CRC,
			Size:  rec.Size,
			Start: rec.Start,
		})
	}
	return entries, nil
}

// ReadFile returns the contents of one entry.
func ReadFile(r io.ReaderAt, e Entry) ([]byte, error) {
	data := make([]byte, e.Size)
	if e.Size == 0 {
		return data, nil
	}
	n, err := r.ReadAt(data, int64(e.Start))
	if n == len(data) {
		return data, nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return nil, fmt.Errorf("read %s: %w", e.Name, err)
}

// Extract unpacks every member of the archive at megPath below
// outputDir and returns the written paths.
func Extract(megPath, outputDir string) ([]string, error) {
	file, err := os.Open(megPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}
	entries, err := Read(file, stat.Size())
	if err != nil {
		return nil, err
	}

	var extracted []string
	for _, e := range entries {
		rel := filepath.FromSlash(strings.ReplaceAll(e.Name, "\\", "/"))
		if !filepath.IsLocal(rel) {
			return nil, fmt.Errorf("%w: member %s escapes the output directory", ErrInvalidArchive, e.Name)
		}
		outputPath := filepath.Join(outputDir, rel)
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}

		data, err := ReadFile(file, e)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", outputPath, err)
		}
		extracted = append(extracted, outputPath)
	}

	if len(extracted) == 0 {
		return nil, fmt.Errorf("no files found in %s", megPath)
	}
	return extracted, nil
}
