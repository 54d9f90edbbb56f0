package main

import (
	"bytes"
	stderrors "errors"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/vango-dev/popover/internal/config"
	"github.com/vango-dev/popover/internal/errors"
)

func TestRunInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")

	if err := runInit(dir, "demo", true, false); err != nil {
		t.Fatalf("runInit() error = %v", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "demo" || filepath.Base(cfg.Path()) != config.YAMLConfigFileName {
		t.Errorf("loaded %q from %s", cfg.Name, cfg.Path())
	}

	if err := runInit(dir, "", false, false); !stderrors.Is(err, errors.New("P022")) {
		t.Errorf("second init error = %v, want P022", err)
	}
	if err := runInit(dir, "again", false, true); err != nil {
		t.Errorf("forced init error = %v", err)
	}
}

func TestHookCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := hookCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"Hi", "--placement=right", "--click"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	want := `v-hook="Popover:{&#34;content&#34;:&#34;Hi&#34;,&#34;click&#34;:true,&#34;placement&#34;:&#34;right&#34;}"`
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("output = %s, want %s", got, want)
	}
}

func TestResolveBuild(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.24.1",
		Main:      debug.Module{Path: "github.com/vango-dev/popover", Version: "v0.3.0"},
		Deps:      []*debug.Module{{Path: "github.com/spf13/cobra", Version: "v1.10.1"}},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	info := resolveBuild(bi)
	if info.Module != "github.com/vango-dev/popover" || info.Version != "v0.3.0" {
		t.Errorf("module = %s %s", info.Module, info.Version)
	}
	if info.Revision != "abc123" || info.Time != "2026-01-02T03:04:05Z" || !info.Modified {
		t.Errorf("vcs = %+v", info)
	}

	var out bytes.Buffer
	info.write(&out, true)
	for _, want := range []string{"abc123 (modified)", "go1.24.1", "github.com/spf13/cobra v1.10.1"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	// A devel build keeps the default version.
	bi.Main.Version = "(devel)"
	if got := resolveBuild(bi).Version; got != "dev" {
		t.Errorf("devel version = %q, want dev", got)
	}
	if got := resolveBuild(nil).Revision; got != "none" {
		t.Errorf("revision without build info = %q", got)
	}
}

func TestVersionShort(t *testing.T) {
	var out bytes.Buffer
	cmd := versionCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--short"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got == "" || strings.Contains(got, "\n") {
		t.Errorf("short output = %q", got)
	}
}
