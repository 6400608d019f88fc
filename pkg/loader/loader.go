// Package loader reads the initial graph from JSON, YAML or an HTML page
// carrying a <script id="initial-data"> block, and places nodes in world
// space.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/bubblemap/pkg/model"
)

// InitialDataID is the id of the script element holding embedded data.
const InitialDataID = "initial-data"

// Format is an ingest format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHTML Format = "html"
)

// DetectFormat picks a format from the file extension, falling back to
// sniffing the content.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".html", ".htm":
		return FormatHTML
	}
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(trimmed, []byte("{")):
		return FormatJSON
	case bytes.HasPrefix(trimmed, []byte("<")):
		return FormatHTML
	default:
		return FormatYAML
	}
}

// Parse decodes a snapshot. Node positions are never read from the input.
func Parse(data []byte, format Format) (model.Snapshot, error) {
	var snap model.Snapshot
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &snap); err != nil {
			return snap, fmt.Errorf("parse json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return snap, fmt.Errorf("parse yaml: %w", err)
		}
	case FormatHTML:
		raw, err := ExtractInitialData(bytes.NewReader(data))
		if err != nil {
			return snap, err
		}
		return Parse(raw, FormatJSON)
	default:
		return snap, fmt.Errorf("unknown format %q", format)
	}
	if err := snap.Validate(); err != nil {
		return snap, fmt.Errorf("invalid data: %w", err)
	}
	return snap, nil
}

// ExtractInitialData returns the text of <script id="initial-data">.
func ExtractInitialData(r io.Reader) ([]byte, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	script := findByID(doc, "script", InitialDataID)
	if script == nil {
		return nil, fmt.Errorf("no <script id=%q> element found", InitialDataID)
	}
	var sb strings.Builder
	for c := script.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return []byte(sb.String()), nil
}

func findByID(n *html.Node, tag, id string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, tag, id); found != nil {
			return found
		}
	}
	return nil
}

// LoadFile reads, parses and places the graph stored at path.
func LoadFile(path string, placements []model.Point) (model.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("read %s: %w", path, err)
	}
	snap, err := Parse(data, DetectFormat(path, data))
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("load %s: %w", path, err)
	}
	Place(snap.Nodes, placements)
	return snap, nil
}
