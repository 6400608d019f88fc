package ui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vanderheijden86/bubblemap/pkg/export"
	"github.com/vanderheijden86/bubblemap/pkg/model"
)

func TestNewExportWriter(t *testing.T) {
	w := NewExportWriter(export.Options{Dir: "/tmp"})
	if w == nil {
		t.Fatal("NewExportWriter returned nil")
	}
	if w.Options().Dir != "/tmp" {
		t.Errorf("Options().Dir = %q", w.Options().Dir)
	}
}

func TestExportWriter_Write(t *testing.T) {
	dir := t.TempDir()
	w := NewExportWriter(export.Options{Dir: dir, Formats: []export.Format{export.FormatJSON, export.FormatMarkdown}})
	doc := export.Document{
		Title:    "Map",
		Snapshot: model.Snapshot{Nodes: []model.Node{{ID: "a", Title: "Alpha"}}},
	}

	msg, ok := w.Write(doc)().(ExportResultMsg)
	if !ok {
		t.Fatal("Write should return an ExportResultMsg")
	}
	if !msg.Success || msg.Error != nil {
		t.Fatalf("export failed: %v", msg.Error)
	}
	if msg.Operation != ExportOpWrite || len(msg.Results) != 2 {
		t.Errorf("unexpected result: %+v", msg)
	}
	if _, err := os.Stat(filepath.Join(dir, "bubble-map.json")); err != nil {
		t.Errorf("json export missing: %v", err)
	}
	if msg.Output != "Exported json, md to "+dir {
		t.Errorf("Output = %q", msg.Output)
	}
}

func TestExportWriter_CopyUsesClipboard(t *testing.T) {
	var copied string
	w := &ExportWriter{available: true, copyText: func(s string) error {
		copied = s
		return nil
	}}
	msg := w.Copy("a\nb")().(ExportResultMsg)
	if !msg.Success || copied != "a\nb" {
		t.Errorf("copy failed: %+v copied=%q", msg, copied)
	}
	if msg.Output != "Copied 2 lines" {
		t.Errorf("Output = %q", msg.Output)
	}
}

func TestExportWriter_CopyErrors(t *testing.T) {
	boom := errors.New("boom")
	w := &ExportWriter{available: true, copyText: func(string) error { return boom }}
	if msg := w.Copy("x")().(ExportResultMsg); msg.Success || !errors.Is(msg.Error, boom) {
		t.Errorf("expected copy error, got %+v", msg)
	}

	unavailable := &ExportWriter{available: false}
	if msg := unavailable.Copy("x")().(ExportResultMsg); msg.Success || msg.Error == nil {
		t.Errorf("expected unavailable error, got %+v", msg)
	}
}

func TestSummarizeExport(t *testing.T) {
	if got := summarizeExport(nil); got != "Nothing exported" {
		t.Errorf("summarizeExport(nil) = %q", got)
	}
	got := summarizeExport([]export.Result{{Format: export.FormatSVG, Path: filepath.Join("out", "bubble-map.svg")}})
	if got != "Exported svg to out" {
		t.Errorf("summarizeExport = %q", got)
	}
}
