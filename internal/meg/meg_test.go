package meg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	files := []File{
		{Name: "data/custom_maps/test.mpr", Data: []byte("[Basic]\r\nName=Test\r\n")},
		{Name: "data/custom_maps/test.json", Data: []byte(`{"Theater":"TEMPERATE"}`)},
		{Name: "data/custom_maps/empty.tga", Data: nil},
	}

	var buf bytes.Buffer
	if err := Write(&buf, files); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data := buf.Bytes()

	entries, err := Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(entries) != len(files) {
		t.Fatalf("got %d entries, want %d", len(entries), len(files))
	}

	byName := make(map[string]Entry)
	for i, e := range entries {
		if e.CRC != crc32.ChecksumIEEE([]byte(e.Name)) {
			t.Errorf("%s: CRC %08X does not match name", e.Name, e.CRC)
		}
		if i > 0 && entries[i-1].CRC > e.CRC {
			t.Errorf("entries not sorted by CRC at %d", i)
		}
		byName[e.Name] = e
	}

	for _, f := range files {
		name := archiveName(f.Name)
		e, ok := byName[name]
		if !ok {
			t.Fatalf("missing %s", name)
		}
		got, err := ReadFile(bytes.NewReader(data), e)
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", name, err)
		}
		if !bytes.Equal(got, f.Data) {
			t.Errorf("%s = %q, want %q", name, got, f.Data)
		}
	}
}

func TestHeaderLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []File{{Name: "a.ini", Data: []byte("xyz")}}); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	le := binary.LittleEndian
	if le.Uint32(data[0:]) != 0xFFFFFFFF || le.Uint32(data[4:]) != 0x3F7D70A4 {
		t.Errorf("bad signature % x", data[:8])
	}
	nameTable := 2 + len("A.INI")
	wantStart := headerSize + nameTable + recordSize
	if got := le.Uint32(data[8:]); int(got) != wantStart {
		t.Errorf("data start = %d, want %d", got, wantStart)
	}
	if string(data[headerSize+2:headerSize+nameTable]) != "A.INI" {
		t.Errorf("name = %q", data[headerSize+2:headerSize+nameTable])
	}
	if len(data) != wantStart+3 || string(data[wantStart:]) != "xyz" {
		t.Errorf("data = %q", data[wantStart:])
	}
}

func TestWriteRejectsDuplicates(t *testing.T) {
	err := Write(&bytes.Buffer{}, []File{{Name: "x.mpr"}, {Name: "X.MPR"}})
	if err == nil {
		t.Fatal("duplicate names accepted")
	}
}

func TestReadInvalid(t *testing.T) {
	data := make([]byte, 64)
	_, err := Read(bytes.NewReader(data), int64(len(data)))
	if !errors.Is(err, ErrInvalidArchive) {
		t.Errorf("err = %v, want ErrInvalidArchive", err)
	}
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "maps.meg")

	var buf bytes.Buffer
	if err := Write(&buf, []File{{Name: "maps/one.mpr", Data: []byte("1")}}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(archive, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out")
	paths, err := Extract(archive, out)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := filepath.Join(out, "MAPS", "ONE.MPR")
	if len(paths) != 1 || paths[0] != want {
		t.Fatalf("paths = %v, want [%s]", paths, want)
	}
	got, err := os.ReadFile(want)
	if err != nil || string(got) != "1" {
		t.Errorf("extracted %q, %v", got, err)
	}
}
