// Package pack implements the chunked, LCW-compressed and Base64-wrapped
// stream layout of the MapPack and OverlayPack INI sections.
//
// The decoded payload is a sequence of chunk records:
//
//	u16 compressed length, u16 decompressed length, compressed bytes
//
// Each chunk decompresses to at most ChunkSize bytes. The Base64 text
// of the whole payload is split into LineWidth character values stored
// under the keys "1", "2", ...
package pack

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"sort"
	"strconv"

	"github.com/dyuri/ramap/internal/lcw"
)

const (
	// ChunkSize is the maximum decompressed size of a single chunk.
	ChunkSize = 8192

	// LineWidth is the number of Base64 characters per INI value.
	LineWidth = 70

	headerSize = 4
)

// KeyValue is a single INI entry.
type KeyValue struct {
	Key   string
	Value string
}

// Pack compresses data into numbered INI entries.
func Pack(data []byte) []KeyValue {
	var stream []byte
	for start := 0; start < len(data); start += ChunkSize {
		chunk := data[start:min(start+ChunkSize, len(data))]
		packed := lcw.Compress(chunk)

		var header [headerSize]byte
		binary.LittleEndian.PutUint16(header[0:], uint16(len(packed)))
		binary.LittleEndian.PutUint16(header[2:], uint16(len(chunk)))
		stream = append(stream, header[:]...)
		stream = append(stream, packed...)
	}

	text := base64.StdEncoding.EncodeToString(stream)

	entries := make([]KeyValue, 0, len(text)/LineWidth+1)
	for i := 0; i < len(text); i += LineWidth {
		entries = append(entries, KeyValue{
			Key:   strconv.Itoa(len(entries) + 1),
			Value: text[i:min(i+LineWidth, len(text))],
		})
	}
	return entries
}

// Unpack decodes the values of a packed section, given in key order,
// into a buffer of exactly size bytes. Problems are reported as
// messages; the returned buffer holds whatever was decoded before the
// first fatal problem.
func Unpack(values []string, size int) ([]byte, []string) {
	out := make([]byte, size)

	var text []byte
	for _, v := range values {
		text = append(text, v...)
	}

	stream := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(stream, text)
	if err != nil {
		return out, []string{fmt.Sprintf("Failed to decode Base64 data: %v", err)}
	}
	stream = stream[:n]

	var msgs []string
	cursor := 0
	pos := 0
	for pos < len(stream) {
		if pos+headerSize > len(stream) {
			msgs = append(msgs, fmt.Sprintf("Truncated chunk header at byte %d.", pos))
			break
		}
		compLen := int(binary.LittleEndian.Uint16(stream[pos:]))
		decompLen := int(binary.LittleEndian.Uint16(stream[pos+2:]))
		pos += headerSize

		if cursor+decompLen > size {
			msgs = append(msgs, fmt.Sprintf("Data exceeds map size: chunk of %d bytes at offset %d does not fit in %d bytes.", decompLen, cursor, size))
			break
		}
		if pos+compLen > len(stream) {
			msgs = append(msgs, fmt.Sprintf("Truncated chunk: %d compressed bytes expected at byte %d, %d available.", compLen, pos, len(stream)-pos))
			break
		}

		readPos := pos
		written, err := lcw.Decompress(stream[:pos+compLen], &readPos, out[:cursor+decompLen], cursor)
		if err != nil {
			msgs = append(msgs, fmt.Sprintf("Failed to decompress chunk at byte %d: %v", pos-headerSize, err))
			break
		}
		if written != decompLen {
			msgs = append(msgs, fmt.Sprintf("Chunk at byte %d decompressed to %d bytes instead of %d.", pos-headerSize, written, decompLen))
		}
		cursor += decompLen
		pos += compLen
	}

	return out, msgs
}

// SortedValues returns the values of numbered keys in numeric key order.
// Keys that are not numbers are ignored.
func SortedValues(entries []KeyValue) []string {
	type numbered struct {
		n     int
		value string
	}
	list := make([]numbered, 0, len(entries))
	for _, e := range entries {
		n, err := strconv.Atoi(e.Key)
		if err != nil {
			continue
		}
		list = append(list, numbered{n, e.Value})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].n < list[j].n })

	values := make([]string, len(list))
	for i, e := range list {
		values[i] = e.value
	}
	return values
}
