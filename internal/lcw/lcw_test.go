package lcw

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func roundTrip(t *testing.T, name string, data []byte) {
	t.Helper()

	packed := Compress(data)
	out := make([]byte, len(data))
	pos := 0
	n, err := Decompress(packed, &pos, out, 0)
	if err != nil {
		t.Fatalf("%s: Decompress failed: %v", name, err)
	}
	if n != len(data) {
		t.Fatalf("%s: wrote %d bytes, want %d", name, n, len(data))
	}
	if pos != len(packed) {
		t.Errorf("%s: consumed %d of %d compressed bytes", name, pos, len(packed))
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("%s: round trip mismatch", name)
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	random := make([]byte, 8192)
	rng.Read(random)

	distinct := make([]byte, 256)
	for i := range distinct {
		distinct[i] = byte(i)
	}

	pattern := make([]byte, 8192)
	for i := range pattern {
		pattern[i] = byte(i % 7)
	}

	tiles := make([]byte, 8192)
	for i := range tiles {
		if i%128 < 3 || i%5 == 0 {
			tiles[i] = 0xFF
		} else {
			tiles[i] = byte(i / 300)
		}
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"single", []byte{7}},
		{"two", []byte{1, 1}},
		{"zeros", make([]byte, 8192)},
		{"distinct", distinct},
		{"random", random},
		{"pattern", pattern},
		{"tiles", tiles},
		{"short literal", []byte("abcabcabcabcXabc")},
	}

	for _, tt := range tests {
		roundTrip(t, tt.name, tt.data)
	}
}

func TestRoundTripAllSizes(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for size := 0; size <= 8192; size += 127 {
		data := make([]byte, size)
		for i := range data {
			// Low-entropy bytes so copies and fills both show up.
			data[i] = byte(rng.Intn(4))
		}
		roundTrip(t, "sized", data)
	}
}

func TestCompressShrinksRepetitiveData(t *testing.T) {
	data := bytes.Repeat([]byte{0xFF}, 8192)
	packed := Compress(data)
	if len(packed) > 16 {
		t.Errorf("compressed fill is %d bytes, want <= 16", len(packed))
	}
}

func TestDecompressAtOffset(t *testing.T) {
	data := []byte("hello hello hello hello")
	packed := append([]byte{0xAA, 0xBB}, Compress(data)...)

	out := make([]byte, 4+len(data))
	pos := 2
	n, err := Decompress(packed, &pos, out, 4)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if n != len(data) {
		t.Errorf("n = %d, want %d", n, len(data))
	}
	if !bytes.Equal(out[4:], data) {
		t.Errorf("out = %q, want %q", out[4:], data)
	}
}

func TestDecompressRelative(t *testing.T) {
	// Relative stream: literal "ab", then a medium copy of 4 bytes from 2 back.
	src := []byte{0x00, 0x82, 'a', 'b', 0xC1, 0x02, 0x00, 0x80}
	out := make([]byte, 6)
	pos := 0
	n, err := Decompress(src, &pos, out, 0)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if n != 6 || string(out) != "ababab" {
		t.Errorf("got %q (%d), want %q", out, n, "ababab")
	}
}

func TestDecompressErrors(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		size int
		want error
	}{
		{"truncated literal", []byte{0x85, 'a', 'b'}, 5, ErrCorrupt},
		{"missing end", []byte{0x81, 'a'}, 4, ErrCorrupt},
		{"copy before start", []byte{0x81, 'a', 0x00, 0x05, 0x80}, 8, ErrCorrupt},
		{"fill overflow", []byte{0xFE, 0x10, 0x00, 0x01, 0x80}, 8, ErrOverflow},
		{"absolute ahead", []byte{0x81, 'a', 0xC0, 0x05, 0x00, 0x80}, 8, ErrCorrupt},
	}

	for _, tt := range tests {
		out := make([]byte, tt.size)
		pos := 0
		_, err := Decompress(tt.src, &pos, out, 0)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}
}
