// Package export writes the graph out: the JSON snapshot plus optional
// Markdown, PNG, SVG, SQLite and HTML renditions.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/bubblemap/pkg/model"
	"github.com/vanderheijden86/bubblemap/pkg/present"
)

// Format names an export target.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatPNG      Format = "png"
	FormatSVG      Format = "svg"
	FormatSQLite   Format = "sqlite"
	FormatHTML     Format = "html"
)

// DefaultBaseName is the fixed file name stem of exports.
const DefaultBaseName = "bubble-map"

// AllFormats lists every supported format.
var AllFormats = []Format{FormatJSON, FormatMarkdown, FormatPNG, FormatSVG, FormatSQLite, FormatHTML}

// ParseFormats turns a list like ["json", "svg"] or "json,svg" into formats.
func ParseFormats(names []string) ([]Format, error) {
	var out []Format
	seen := map[Format]bool{}
	for _, raw := range names {
		for _, name := range strings.Split(raw, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			if name == "all" {
				return append([]Format(nil), AllFormats...), nil
			}
			if name == "markdown" {
				name = string(FormatMarkdown)
			}
			f := Format(name)
			if !f.valid() {
				return nil, fmt.Errorf("unknown export format %q", name)
			}
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	if len(out) == 0 {
		out = []Format{FormatJSON}
	}
	return out, nil
}

func (f Format) valid() bool {
	for _, known := range AllFormats {
		if f == known {
			return true
		}
	}
	return false
}

// Extension returns the file extension, with the dot.
func (f Format) Extension() string {
	if f == FormatSQLite {
		return ".db"
	}
	return "." + string(f)
}

// Document is what every format renders from: the persisted snapshot plus
// the presentation frame that carries session positions.
type Document struct {
	Title    string
	Snapshot model.Snapshot
	Frame    present.Frame
}

// Options controls where WriteAll puts files.
type Options struct {
	Dir      string
	BaseName string
	Formats  []Format
}

// Result records one written file.
type Result struct {
	Format Format
	Path   string
}

// Path returns the output path for a format.
func (o Options) Path(f Format) string {
	base := o.BaseName
	if base == "" {
		base = DefaultBaseName
	}
	return filepath.Join(o.Dir, base+f.Extension())
}

// WriteAll writes every requested format concurrently. The first failure
// cancels the rest.
func WriteAll(ctx context.Context, doc Document, opts Options) ([]Result, error) {
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create export dir: %w", err)
		}
	}
	formats := opts.Formats
	if len(formats) == 0 {
		formats = []Format{FormatJSON}
	}

	var mu sync.Mutex
	results := make([]Result, 0, len(formats))

	g, ctx := errgroup.WithContext(ctx)
	for _, f := range formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := opts.Path(f)
			if err := writeFormat(ctx, f, doc, path); err != nil {
				return fmt.Errorf("export %s: %w", f, err)
			}
			mu.Lock()
			results = append(results, Result{Format: f, Path: path})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	order := map[Format]int{}
	for i, f := range formats {
		order[f] = i
	}
	sort.Slice(results, func(i, j int) bool {
		return order[results[i].Format] < order[results[j].Format]
	})
	return results, nil
}

func writeFormat(ctx context.Context, f Format, doc Document, path string) error {
	switch f {
	case FormatJSON:
		return SaveJSON(doc.Snapshot, path)
	case FormatMarkdown:
		return SaveMarkdownToFile(doc, path)
	case FormatPNG:
		return RenderPNG(doc.Frame, doc.Title, path)
	case FormatSVG:
		return RenderSVG(doc.Frame, doc.Title, path)
	case FormatSQLite:
		return SaveSQLite(ctx, doc.Snapshot, path)
	case FormatHTML:
		return SaveHTMLPage(doc, path)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}
