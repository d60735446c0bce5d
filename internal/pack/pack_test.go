package pack

import (
	"bytes"
	"math/rand"
	"strconv"
	"strings"
	"testing"
)

func values(entries []KeyValue) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Value
	}
	return out
}

func TestPackRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	data := make([]byte, 50000)
	for i := range data {
		if i%3 == 0 {
			data[i] = byte(rng.Intn(256))
		} else {
			data[i] = byte(i / 1000)
		}
	}

	entries := Pack(data)
	got, msgs := Unpack(values(entries), len(data))
	if len(msgs) != 0 {
		t.Fatalf("Unpack reported problems: %v", msgs)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("round trip mismatch")
	}
}

func TestPackLayout(t *testing.T) {
	data := make([]byte, ChunkSize*2+10)
	entries := Pack(data)

	if len(entries) == 0 {
		t.Fatal("no entries")
	}
	for i, e := range entries {
		if e.Key != strconv.Itoa(i+1) {
			t.Errorf("entry %d key = %q, want %q", i, e.Key, strconv.Itoa(i+1))
		}
		if i < len(entries)-1 && len(e.Value) != LineWidth {
			t.Errorf("entry %d has %d chars, want %d", i, len(e.Value), LineWidth)
		}
		if len(e.Value) > LineWidth {
			t.Errorf("entry %d has %d chars, max %d", i, len(e.Value), LineWidth)
		}
	}
}

func TestUnpackBadBase64(t *testing.T) {
	_, msgs := Unpack([]string{"!!!not base64!!!"}, 100)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1: %v", len(msgs), msgs)
	}
	if !strings.Contains(msgs[0], "Base64") {
		t.Errorf("message %q does not mention Base64", msgs[0])
	}
}

func TestUnpackExceedsMapSize(t *testing.T) {
	data := bytes.Repeat([]byte{9}, ChunkSize+100)
	entries := Pack(data)

	got, msgs := Unpack(values(entries), ChunkSize)
	if len(msgs) != 1 || !strings.Contains(msgs[0], "exceeds map size") {
		t.Fatalf("messages = %v, want one 'exceeds map size'", msgs)
	}
	if !bytes.Equal(got, data[:ChunkSize]) {
		t.Error("first chunk was not kept")
	}
}

func TestSortedValues(t *testing.T) {
	entries := []KeyValue{
		{"10", "j"},
		{"2", "b"},
		{"x", "ignored"},
		{"1", "a"},
	}
	got := strings.Join(SortedValues(entries), "")
	if got != "abj" {
		t.Errorf("SortedValues = %q, want %q", got, "abj")
	}
}
