package mapfile

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dyuri/ramap/internal/model"
)

// Metadata is the JSON sidecar published next to a map.
type Metadata struct {
	Theater      string `json:"Theater"`
	Width        int    `json:"Width"`
	Height       int    `json:"Height"`
	PlayerStarts []int  `json:"PlayerStarts"`
}

// NewMetadata describes m. Width and Height are the playable area.
func NewMetadata(m *model.Map) Metadata {
	starts := m.PlayerStartCells()
	if starts == nil {
		starts = []int{}
	}
	return Metadata{
		Theater:      m.Theater.String(),
		Width:        m.Bounds.Width,
		Height:       m.Bounds.Height,
		PlayerStarts: starts,
	}
}

// WriteMetadata writes the sidecar for m.
func WriteMetadata(w io.Writer, m *model.Map) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewMetadata(m)); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}
