package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/bubblemap/pkg/export"
)

// ExportOperation is the kind of output produced.
type ExportOperation int

const (
	ExportOpWrite ExportOperation = iota
	ExportOpCopy
)

// ExportResultMsg is returned after an export or clipboard copy completes.
type ExportResultMsg struct {
	Operation ExportOperation
	Results   []export.Result
	Success   bool
	Error     error
	Output    string
}

// ExportWriter writes exports and copies text off the UI thread.
type ExportWriter struct {
	opts    export.Options
	timeout time.Duration

	copyText  func(string) error
	available bool
}

// NewExportWriter creates a writer for opts, detecting clipboard support.
func NewExportWriter(opts export.Options) *ExportWriter {
	return &ExportWriter{
		opts:      opts,
		timeout:   30 * time.Second,
		copyText:  clipboard.WriteAll,
		available: !clipboard.Unsupported,
	}
}

// ClipboardAvailable reports whether copying is supported here.
func (w *ExportWriter) ClipboardAvailable() bool {
	return w.available
}

// Options returns the configured export options.
func (w *ExportWriter) Options() export.Options {
	return w.opts
}

// Write renders doc in every configured format.
func (w *ExportWriter) Write(doc export.Document) tea.Cmd {
	opts := w.opts
	timeout := w.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		results, err := export.WriteAll(ctx, doc, opts)
		if err != nil {
			return ExportResultMsg{Operation: ExportOpWrite, Results: results, Error: err}
		}
		return ExportResultMsg{
			Operation: ExportOpWrite,
			Results:   results,
			Success:   true,
			Output:    summarizeExport(results),
		}
	}
}

// Copy puts text on the system clipboard.
func (w *ExportWriter) Copy(text string) tea.Cmd {
	if !w.available {
		return func() tea.Msg {
			return ExportResultMsg{
				Operation: ExportOpCopy,
				Error:     fmt.Errorf("no clipboard utility found"),
			}
		}
	}
	copyText := w.copyText
	return func() tea.Msg {
		if err := copyText(text); err != nil {
			return ExportResultMsg{Operation: ExportOpCopy, Error: err}
		}
		return ExportResultMsg{
			Operation: ExportOpCopy,
			Success:   true,
			Output:    fmt.Sprintf("Copied %d lines", strings.Count(text, "\n")+1),
		}
	}
}

// summarizeExport describes written files, e.g. "Exported json, svg to /out".
func summarizeExport(results []export.Result) string {
	if len(results) == 0 {
		return "Nothing exported"
	}
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, string(r.Format))
	}
	return fmt.Sprintf("Exported %s to %s", strings.Join(names, ", "), filepath.Dir(results[0].Path))
}
