package mapfile

import (
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Map files are DOS-437 text. Newer tools store the free text fields as
// UTF-8 instead; those files are valid UTF-8 as a whole.

func decodeDOS(data []byte) (string, error) {
	out, err := charmap.CodePage437.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// isUTF8 reports whether data is valid UTF-8 that is not plain ASCII.
func isUTF8(data []byte) bool {
	if !utf8.Valid(data) {
		return false
	}
	for _, b := range data {
		if b >= 0x80 {
			return true
		}
	}
	return false
}

// newDOSWriter encodes to DOS-437, replacing characters it cannot store.
func newDOSWriter(w io.Writer) *transform.Writer {
	return transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.CodePage437.NewEncoder()))
}
