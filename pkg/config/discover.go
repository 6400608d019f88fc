package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DataFileNames are the file names recognised as graph data, in preference
// order.
var DataFileNames = []string{
	"bubble-map.json",
	"bubble-map.yaml",
	"bubble-map.yml",
	"bubble-map.html",
}

// DiscoverDataFiles scans the configured paths for graph data files.
func DiscoverDataFiles(cfg Config) []string {
	seen := make(map[string]bool)
	var result []string

	for _, scanPath := range cfg.Discovery.ScanPaths {
		maxDepth := cfg.Discovery.MaxDepth
		if maxDepth <= 0 {
			maxDepth = 2
		}
		for _, f := range scanForData(scanPath, maxDepth) {
			if !seen[f] {
				seen[f] = true
				result = append(result, f)
			}
		}
	}
	return result
}

// scanForData walks a directory tree up to maxDepth levels deep, collecting
// recognised data files.
func scanForData(root string, maxDepth int) []string {
	root = expandHome(root)
	var results []string

	rootDepth := strings.Count(filepath.Clean(root), string(filepath.Separator))

	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return filepath.SkipDir
		}
		if !d.IsDir() {
			return nil
		}

		currentDepth := strings.Count(filepath.Clean(path), string(filepath.Separator)) - rootDepth
		if currentDepth > maxDepth {
			return filepath.SkipDir
		}

		name := d.Name()
		if path != root && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}

		for _, candidate := range DataFileNames {
			file := filepath.Join(path, candidate)
			if info, err := os.Stat(file); err == nil && !info.IsDir() {
				results = append(results, file)
				break
			}
		}
		return nil
	})

	return results
}

// DetectProjectConfig walks up from the working directory looking for a
// project config file.
func DetectProjectConfig() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	return findProjectConfig(dir)
}

// findProjectConfig walks up from dir looking for .bubblemap.yaml.
func findProjectConfig(dir string) (string, bool) {
	home, _ := os.UserHomeDir()

	for {
		candidate := filepath.Join(dir, ProjectFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached filesystem root
		}
		// Don't go above home directory
		if home != "" && dir == home {
			break
		}
		dir = parent
	}
	return "", false
}
