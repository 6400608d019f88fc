package export

import (
	"bytes"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/bubblemap/pkg/model"
)

// EncodeJSON writes the snapshot pretty-printed with two-space indentation.
// HTML in node content is written as-is.
func EncodeJSON(w io.Writer, snap model.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(snap)); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// MarshalJSON returns the encoded snapshot.
func MarshalJSON(snap model.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveJSON writes the snapshot to path.
func SaveJSON(snap model.Snapshot, path string) error {
	data, err := MarshalJSON(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// normalize makes every collection encode as an array, never null.
func normalize(snap model.Snapshot) model.Snapshot {
	if snap.Bubbles == nil {
		snap.Bubbles = []model.Bubble{}
	}
	if snap.Nodes == nil {
		snap.Nodes = []model.Node{}
	}
	if snap.Links == nil {
		snap.Links = []model.Link{}
	}
	nodes := make([]model.Node, len(snap.Nodes))
	for i, n := range snap.Nodes {
		if n.Bubbles == nil {
			n.Bubbles = []string{}
		}
		nodes[i] = n
	}
	snap.Nodes = nodes
	return snap
}
