package dev

import (
	"path/filepath"

	"github.com/vango-dev/popover/internal/config"
)

// CollectWatchPaths returns a normalized list of existing watch paths for
// the project.
func CollectWatchPaths(cfg *config.Config) []string {
	paths := cfg.WatchPaths()
	if cfg.Path() != "" {
		paths = append(paths, cfg.Path())
	}

	unique := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		if path == "" || !exists(path) {
			continue
		}
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		unique = append(unique, clean)
	}

	return unique
}

// CollectIgnore returns the ignore patterns for the project. The build
// output is always ignored so a rebuild does not trigger another.
func CollectIgnore(cfg *config.Config) []string {
	ignore := append([]string(nil), cfg.Watch.Ignore...)
	if rel, err := filepath.Rel(cfg.Dir(), cfg.OutputPath()); err == nil && rel != "." && !filepath.IsAbs(rel) {
		ignore = append(ignore, filepath.ToSlash(rel)+"/**")
	}
	return ignore
}
