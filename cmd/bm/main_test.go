package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/bubblemap/pkg/config"
	"github.com/vanderheijden86/bubblemap/pkg/model"
)

const testData = `{
  "bubbles": [{"id": "b1", "title": "Ideas", "x": 0, "y": 0, "radius": 200}],
  "nodes": [
    {"id": "n1", "title": "Alpha", "bubbles": ["b1"], "contentHtml": "<p>first</p>"},
    {"id": "n2", "title": "Beta", "bubbles": []}
  ],
  "links": [{"from": "n1", "to": "n2", "label": "leads to"}]
}`

// writeInputs writes a data file and a minimal config file so the user's own
// config never leaks into a test.
func writeInputs(t *testing.T) (dataPath, cfgPath string) {
	t.Helper()
	dir := t.TempDir()
	dataPath = filepath.Join(dir, "bubble-map.json")
	if err := os.WriteFile(dataPath, []byte(testData), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath = filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("view:\n  initial_scale: 0.8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dataPath, cfgPath
}

func TestParseFlags(t *testing.T) {
	var stderr bytes.Buffer
	o, err := parseFlags([]string{"--data", "m.json", "--dump", "content", "--watch=false"}, &stderr)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if o.data != "m.json" || o.dump != "content" || o.watch {
		t.Errorf("options = %+v", o)
	}

	if _, err := parseFlags([]string{"--dump", "xml"}, &stderr); err == nil {
		t.Error("expected an error for an unknown dump kind")
	}
}

func TestInitialSelection(t *testing.T) {
	snap := model.Snapshot{Nodes: []model.Node{{ID: "a"}, {ID: "b"}}}
	tests := []struct {
		want string
		snap model.Snapshot
		out  string
	}{
		{"", snap, "a"},
		{"b", snap, "b"},
		{"missing", snap, "a"},
		{"a", model.Snapshot{}, ""},
	}
	for _, tt := range tests {
		if got := initialSelection(tt.snap, tt.want); got != tt.out {
			t.Errorf("initialSelection(%q) = %q, want %q", tt.want, got, tt.out)
		}
	}
}

func TestResolveDataPath(t *testing.T) {
	if got, err := resolveDataPath("x.json", config.Default()); err != nil || got != "x.json" {
		t.Errorf("explicit path: %q, %v", got, err)
	}

	cfg := config.Default()
	cfg.Discovery.ScanPaths = []string{t.TempDir()}
	if _, err := resolveDataPath("", cfg); err == nil {
		t.Error("expected an error when nothing is discovered")
	}

	dataPath, _ := writeInputs(t)
	cfg.Discovery.ScanPaths = []string{filepath.Dir(dataPath)}
	if got, err := resolveDataPath("", cfg); err != nil || got != dataPath {
		t.Errorf("discovered %q, %v; want %q", got, err, dataPath)
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "bm ") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRun_DumpText(t *testing.T) {
	dataPath, cfgPath := writeInputs(t)
	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", cfgPath, "--data", dataPath, "--dump", "text"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "Ideas: Alpha.") {
		t.Errorf("missing bubble line:\n%s", out)
	}
	if !strings.Contains(out, "Alpha → Beta (leads to).") {
		t.Errorf("missing link line:\n%s", out)
	}
}

func TestRun_DumpContent(t *testing.T) {
	dataPath, cfgPath := writeInputs(t)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--config", cfgPath, "--data", dataPath, "--dump", "content"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "<p>first</p>") {
		t.Errorf("content dump missing node html:\n%s", stdout.String())
	}
}

func TestRun_Export(t *testing.T) {
	dataPath, cfgPath := writeInputs(t)
	out := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", cfgPath, "--data", dataPath, "--export", "--formats", "json,md", "--out", out}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, stderr.String())
	}
	for _, name := range []string{"bubble-map.json", "bubble-map.md"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	data, err := os.ReadFile(filepath.Join(out, "bubble-map.json"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"diameter"`) {
		t.Errorf("export leaked session fields:\n%s", data)
	}
}

func TestRun_Errors(t *testing.T) {
	dataPath, cfgPath := writeInputs(t)
	var stdout, stderr bytes.Buffer

	if code := run([]string{"--config", cfgPath, "--data", filepath.Join(t.TempDir(), "none.json")}, &stdout, &stderr); code != 1 {
		t.Errorf("missing data: exit code %d", code)
	}
	if code := run([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, &stdout, &stderr); code != 1 {
		t.Errorf("missing config: exit code %d", code)
	}
	if code := run([]string{"--config", cfgPath, "--data", dataPath, "--export", "--formats", "gif"}, &stdout, &stderr); code != 2 {
		t.Errorf("bad format: exit code %d", code)
	}
	if code := run([]string{"--bogus"}, &stdout, &stderr); code != 2 {
		t.Errorf("bad flag: exit code %d", code)
	}
}
