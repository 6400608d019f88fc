package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vanderheijden86/bubblemap/pkg/app"
	"github.com/vanderheijden86/bubblemap/pkg/config"
	"github.com/vanderheijden86/bubblemap/pkg/export"
	"github.com/vanderheijden86/bubblemap/pkg/graph"
	"github.com/vanderheijden86/bubblemap/pkg/loader"
	"github.com/vanderheijden86/bubblemap/pkg/model"
	"github.com/vanderheijden86/bubblemap/pkg/present"
	"github.com/vanderheijden86/bubblemap/pkg/ui"
	"github.com/vanderheijden86/bubblemap/pkg/version"
	"github.com/vanderheijden86/bubblemap/pkg/view"
)

const sidebarStateFile = "sidebar-state.json"

type options struct {
	data       string
	configPath string
	export     bool
	formats    string
	out        string
	dump       string
	selectID   string
	watch      bool
	version    bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("bm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.data, "data", "", "Graph data file (.json, .yaml or .html); discovered when empty")
	fs.StringVar(&o.configPath, "config", "", "Config file; replaces user and project config discovery")
	fs.BoolVar(&o.export, "export", false, "Write the configured export formats and exit")
	fs.StringVar(&o.formats, "formats", "", "Comma-separated export formats (json, md, png, svg, sqlite, html)")
	fs.StringVar(&o.out, "out", "", "Export directory (overrides export.dir)")
	fs.StringVar(&o.dump, "dump", "", "Print a text projection and exit: text or content")
	fs.StringVar(&o.selectID, "select", "", "Node to select on start (defaults to the first node)")
	fs.BoolVar(&o.watch, "watch", true, "Reload the data file when it changes")
	fs.BoolVar(&o.version, "version", false, "Show version")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: bm [options]")
		fmt.Fprintln(stderr, "\nA terminal explorer and editor for bubble maps.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.dump != "" && o.dump != "text" && o.dump != "content" {
		return o, fmt.Errorf("--dump must be text or content, got %q", o.dump)
	}
	return o, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if opts.version {
		fmt.Fprintf(stdout, "bm %s\n", version.Version)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	if opts.out != "" {
		cfg.Export.Dir = opts.out
	}
	if opts.formats != "" {
		cfg.Export.Formats = strings.Split(opts.formats, ",")
	}

	path, err := resolveDataPath(opts.data, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	snap, err := loader.LoadFile(path, cfg.Placements)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading data: %v\n", err)
		return 1
	}
	initial := initialSelection(snap, opts.selectID)

	switch {
	case opts.export:
		return runExport(stdout, stderr, cfg, snap, initial)
	case opts.dump != "":
		printDump(stdout, newState(cfg, snap, initial), opts.dump)
		return 0
	case !isInteractive():
		printDump(stdout, newState(cfg, snap, initial), "text")
		return 0
	}

	if err := runTUI(cfg, snap, path, initial, opts.watch); err != nil {
		fmt.Fprintf(stderr, "Error running bubble map: %v\n", err)
		return 1
	}
	return 0
}

// resolveDataPath returns the explicit path or the first discovered data
// file.
func resolveDataPath(explicit string, cfg config.Config) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	found := config.DiscoverDataFiles(cfg)
	if len(found) == 0 {
		return "", fmt.Errorf("no data file found (looked for %s); pass --data", strings.Join(config.DataFileNames, ", "))
	}
	return found[0], nil
}

// initialSelection returns want when it names a node, otherwise the first
// node.
func initialSelection(snap model.Snapshot, want string) string {
	for _, n := range snap.Nodes {
		if n.ID == want {
			return want
		}
	}
	if len(snap.Nodes) > 0 {
		return snap.Nodes[0].ID
	}
	return ""
}

func newState(cfg config.Config, snap model.Snapshot, selected string) *app.State {
	st := app.NewState(graph.New(snap), view.New(cfg.View.InitialScale))
	st.SelectedID = selected
	if selected != "" {
		st.Editor.CurrentID = selected
	}
	return st
}

func printDump(w io.Writer, st *app.State, kind string) {
	switch kind {
	case "content":
		fmt.Fprint(w, present.ContentDump(st))
	default:
		fmt.Fprintln(w, present.BuildTextMap(st).String())
	}
}

func runExport(stdout, stderr io.Writer, cfg config.Config, snap model.Snapshot, selected string) int {
	formats, err := export.ParseFormats(cfg.Export.Formats)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	st := newState(cfg, snap, selected)
	doc := export.Document{
		Title:    ui.DefaultTitle,
		Snapshot: st.Graph.Snapshot(),
		Frame:    present.Project(st),
	}
	results, err := export.WriteAll(context.Background(), doc, export.Options{
		Dir:      cfg.ExportDir(),
		BaseName: cfg.Export.BaseName,
		Formats:  formats,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error exporting: %v\n", err)
		return 1
	}
	for _, r := range results {
		fmt.Fprintf(stdout, "%-7s %s\n", r.Format, r.Path)
	}
	return 0
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

func sidebarStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, config.AppName, sidebarStateFile)
}

func runTUI(cfg config.Config, snap model.Snapshot, path, selected string, watch bool) error {
	if os.Getenv("BM_DEBUG") != "" {
		f, err := tea.LogToFile("bm-debug.log", "bm")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	m := ui.NewModel(snap, ui.Options{
		Config:    cfg,
		DataPath:  path,
		StatePath: sidebarStatePath(),
	})
	if selected != "" {
		m = m.Select(selected)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	worker, err := ui.NewBackgroundWorker(ui.WorkerConfig{
		DataPath:      path,
		DebounceDelay: cfg.Watch.Debounce,
		Placements:    cfg.Placements,
		Program:       p,
	})
	if err != nil {
		log.Printf("reload disabled: %v", err)
	} else {
		m.SetReloader(worker)
		if watch {
			if err := worker.Start(); err != nil {
				log.Printf("watch disabled: %v", err)
			}
		}
		defer worker.Stop()
	}

	_, err = p.Run()
	return err
}
