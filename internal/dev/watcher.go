package dev

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vango-dev/popover/internal/errors"
)

// ChangeType represents the type of file change.
type ChangeType int

const (
	ChangeGo ChangeType = iota
	ChangeAsset
	ChangeConfig
)

func (t ChangeType) String() string {
	switch t {
	case ChangeGo:
		return "go"
	case ChangeConfig:
		return "config"
	}
	return "asset"
}

// Change represents a detected file change.
type Change struct {
	Path string
	Type ChangeType
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Root is the directory ignore patterns are relative to.
	Root string

	// Paths are the directories to watch.
	Paths []string

	// Ignore contains doublestar patterns to skip, e.g. "dist/**".
	Ignore []string

	// Interval is the polling interval.
	Interval time.Duration
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".git/**",
	"**/node_modules/**",
	"**/*_test.go",
	"**/*.tmp",
	"**/*.swp",
	"**/*~",
}

// Watcher polls files for changes.
type Watcher struct {
	config     WatcherConfig
	onChange   func([]Change)
	mu         sync.Mutex
	running    bool
	primed     bool
	stopCh     chan struct{}
	timestamps map[string]time.Time
}

// NewWatcher creates a new file watcher. It fails if an ignore pattern
// is malformed.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	if config.Interval == 0 {
		config.Interval = 200 * time.Millisecond
	}
	config.Ignore = append(append([]string(nil), DefaultIgnore...), config.Ignore...)
	for _, pattern := range config.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.New("P021").WithDetailf("invalid watch ignore pattern %q", pattern)
		}
	}

	return &Watcher{
		config:     config,
		timestamps: make(map[string]time.Time),
	}, nil
}

// OnChange sets the callback for file changes. It receives every change
// found by one poll.
func (w *Watcher) OnChange(fn func([]Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start polls for changes until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	w.Scan()

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			changes := w.Scan()
			w.mu.Lock()
			callback := w.onChange
			w.mu.Unlock()
			if len(changes) > 0 && callback != nil {
				callback(changes)
			}
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Scan compares the watched tree against the previous scan and returns
// the created, modified and deleted files, sorted by path. The first scan
// only records the current state.
func (w *Watcher) Scan() []Change {
	seen := make(map[string]time.Time)
	for _, root := range w.config.Paths {
		filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if w.shouldIgnore(p) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			seen[p] = info.ModTime()
			return nil
		})
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	var changes []Change
	if w.primed {
		for p, mod := range seen {
			if last, ok := w.timestamps[p]; !ok || mod.After(last) {
				changes = append(changes, Change{Path: p, Type: classifyChange(p)})
			}
		}
		for p := range w.timestamps {
			if _, ok := seen[p]; !ok {
				changes = append(changes, Change{Path: p, Type: classifyChange(p)})
			}
		}
	}
	w.timestamps = seen
	w.primed = true

	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes
}

// shouldIgnore checks if a path matches an ignore pattern. Patterns are
// matched against the slash-separated path relative to the root.
func (w *Watcher) shouldIgnore(fullPath string) bool {
	rel := fullPath
	if w.config.Root != "" {
		if r, err := filepath.Rel(w.config.Root, fullPath); err == nil {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return false
	}

	for _, pattern := range w.config.Ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// classifyChange determines the type of change based on the file name.
func classifyChange(path string) ChangeType {
	name := filepath.Base(path)
	if strings.HasPrefix(name, "popover.") {
		switch filepath.Ext(name) {
		case ".json", ".yaml", ".yml":
			return ChangeConfig
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go", ".mod", ".sum":
		return ChangeGo
	}
	return ChangeAsset
}

// exists reports whether path exists.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
