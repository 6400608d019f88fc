// Package config loads bubblemap settings from YAML. A user file under the
// OS config dir is read first, then a project .bubblemap.yaml found by
// walking up from the working directory; later files override earlier ones
// key by key.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/bubblemap/pkg/model"
)

const (
	AppName         = "bubblemap"
	UserFileName    = "config.yaml"
	ProjectFileName = ".bubblemap.yaml"
)

type ViewConfig struct {
	InitialScale float64 `yaml:"initial_scale"`
	PanStep      float64 `yaml:"pan_step"`
	ZoomIn       float64 `yaml:"zoom_in"`
	ZoomOut      float64 `yaml:"zoom_out"`
}

// CanvasConfig sets how many screen pixels one terminal cell covers.
type CanvasConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

type UIConfig struct {
	SidebarWidth    int    `yaml:"sidebar_width"`
	DetailWidth     int    `yaml:"detail_width"`
	GlamourStyle    string `yaml:"glamour_style"`
	SanitizeContent bool   `yaml:"sanitize_content"`
}

type ExportConfig struct {
	Dir      string   `yaml:"dir"`
	BaseName string   `yaml:"base_name"`
	Formats  []string `yaml:"formats"`
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// DiscoveryConfig controls where data files are looked for when no --data
// flag is given.
type DiscoveryConfig struct {
	ScanPaths []string `yaml:"scan_paths"`
	MaxDepth  int      `yaml:"max_depth"`
}

// Config is the merged configuration.
type Config struct {
	View       ViewConfig      `yaml:"view"`
	Canvas     CanvasConfig    `yaml:"canvas"`
	UI         UIConfig        `yaml:"ui"`
	Export     ExportConfig    `yaml:"export"`
	Placements []model.Point   `yaml:"placements"`
	Watch      WatchConfig     `yaml:"watch"`
	Discovery  DiscoveryConfig `yaml:"discovery"`

	// Sources lists the files that were merged, in order.
	Sources []string `yaml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		View:   ViewConfig{InitialScale: 0.8, PanStep: 40, ZoomIn: 1.1, ZoomOut: 0.9},
		Canvas: CanvasConfig{CellWidth: 8, CellHeight: 16},
		UI:     UIConfig{SidebarWidth: 28, DetailWidth: 44, GlamourStyle: "theme"},
		Export: ExportConfig{Dir: ".", BaseName: "bubble-map", Formats: []string{"json"}},
		Watch:  WatchConfig{Debounce: 200 * time.Millisecond},
		Discovery: DiscoveryConfig{
			ScanPaths: []string{"."},
			MaxDepth:  2,
		},
	}
}

// UserPath returns the per-user config file location.
func UserPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, UserFileName), nil
}

// Load merges defaults, the user file and the nearest project file. An
// explicit path replaces discovery.
func Load(explicit string) (Config, error) {
	cfg := Default()
	if explicit != "" {
		if err := cfg.mergeFile(explicit); err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	if p, err := UserPath(); err == nil {
		if err := cfg.mergeFile(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
	}
	if p, ok := DetectProjectConfig(); ok {
		if err := cfg.mergeFile(p); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	c.Sources = append(c.Sources, path)
	return nil
}

// Validate rejects values the view or canvas cannot work with.
func (c Config) Validate() error {
	if c.View.InitialScale <= 0 {
		return fmt.Errorf("view.initial_scale must be positive, got %v", c.View.InitialScale)
	}
	if c.View.ZoomIn <= 1 || c.View.ZoomOut <= 0 || c.View.ZoomOut >= 1 {
		return fmt.Errorf("view zoom factors must satisfy zoom_in > 1 and 0 < zoom_out < 1")
	}
	if c.Canvas.CellWidth <= 0 || c.Canvas.CellHeight <= 0 {
		return fmt.Errorf("canvas cell size must be positive")
	}
	return nil
}

// ExportDir returns the export directory with ~ expanded.
func (c Config) ExportDir() string {
	return expandHome(c.Export.Dir)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
