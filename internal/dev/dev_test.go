package dev

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/popover/internal/config"
	"github.com/vango-dev/popover/pkg/hooks"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// touch moves a file's modification time forward so polling sees it.
func touch(t *testing.T, path string) {
	t.Helper()
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
}

func TestWatcherScan(t *testing.T) {
	root := t.TempDir()
	main := filepath.Join(root, "main.go")
	writeFile(t, main, "package main")
	writeFile(t, filepath.Join(root, "dist", "main.wasm"), "wasm")

	w, err := NewWatcher(WatcherConfig{
		Root:   root,
		Paths:  []string{root},
		Ignore: []string{"dist/**"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if changes := w.Scan(); len(changes) != 0 {
		t.Fatalf("first scan reported %v", changes)
	}

	touch(t, main)
	style := filepath.Join(root, "web", "style.css")
	writeFile(t, style, "body{}")
	writeFile(t, filepath.Join(root, "main_test.go"), "package main")
	writeFile(t, filepath.Join(root, "dist", "wasm_exec.js"), "js")

	changes := w.Scan()
	if len(changes) != 2 {
		t.Fatalf("changes = %v, want main.go and style.css", changes)
	}
	if changes[0].Path != main || changes[0].Type != ChangeGo {
		t.Errorf("changes[0] = %+v", changes[0])
	}
	if changes[1].Path != style || changes[1].Type != ChangeAsset {
		t.Errorf("changes[1] = %+v", changes[1])
	}

	if changes := w.Scan(); len(changes) != 0 {
		t.Errorf("unchanged tree reported %v", changes)
	}

	if err := os.Remove(style); err != nil {
		t.Fatal(err)
	}
	changes = w.Scan()
	if len(changes) != 1 || changes[0].Path != style {
		t.Errorf("deletion changes = %v", changes)
	}
}

func TestWatcherStartDeliversChanges(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "popover.json")
	writeFile(t, file, "{}")

	w, err := NewWatcher(WatcherConfig{Root: root, Paths: []string{root}, Interval: 20 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	got := make(chan []Change, 4)
	w.OnChange(func(c []Change) { got <- c })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	deadline := time.Now().Add(time.Second)
	for !w.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	touch(t, file)

	select {
	case changes := <-got:
		if changes[0].Type != ChangeConfig {
			t.Errorf("Type = %v, want config", changes[0].Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change")
	}

	w.Stop()
	if w.IsRunning() {
		t.Error("watcher still running after Stop")
	}
}

func TestNewWatcherRejectsBadPattern(t *testing.T) {
	if _, err := NewWatcher(WatcherConfig{Ignore: []string{"[oops"}}); err == nil {
		t.Error("expected an error for a malformed pattern")
	}
}

func TestClassifyChange(t *testing.T) {
	tests := map[string]ChangeType{
		"a/main.go":      ChangeGo,
		"go.mod":         ChangeGo,
		"popover.json":   ChangeConfig,
		"x/popover.yaml": ChangeConfig,
		"package.json":   ChangeAsset,
		"index.html":     ChangeAsset,
	}
	for path, want := range tests {
		if got := classifyChange(path); got != want {
			t.Errorf("classifyChange(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestFindWasmExec(t *testing.T) {
	goroot := t.TempDir()
	if _, err := FindWasmExec(goroot); err == nil {
		t.Fatal("expected an error without wasm_exec.js")
	}

	legacy := filepath.Join(goroot, "misc", "wasm", WasmExecFileName)
	writeFile(t, legacy, "// legacy")
	if got, err := FindWasmExec(goroot); err != nil || got != legacy {
		t.Fatalf("FindWasmExec() = %q, %v", got, err)
	}

	current := filepath.Join(goroot, "lib", "wasm", WasmExecFileName)
	writeFile(t, current, "// current")
	if got, _ := FindWasmExec(goroot); got != current {
		t.Errorf("FindWasmExec() = %q, want lib/wasm preferred", got)
	}
}

func TestCompilerArgs(t *testing.T) {
	c := NewCompiler(CompilerConfig{
		ProjectPath: "/proj",
		OutputDir:   "/proj/dist",
		Entry:       "./cmd/popover-wasm",
		Tags:        []string{"debug", "demo"},
		LDFlags:     "-s -w",
	})

	want := []string{"build", "-o", filepath.Join("/proj/dist", WasmFileName), "-tags", "debug,demo", "-ldflags", "-s -w", "./cmd/popover-wasm"}
	got := c.args()
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("args() = %q, want %q", got, want)
	}

	env := strings.Join(c.env(), "\n")
	if !strings.Contains(env, "GOOS=js") || !strings.Contains(env, "GOARCH=wasm") {
		t.Error("build environment does not target js/wasm")
	}
}

func TestCompilerCopiesWasmExec(t *testing.T) {
	goroot := t.TempDir()
	writeFile(t, filepath.Join(goroot, "lib", "wasm", WasmExecFileName), "// support")

	out := t.TempDir()
	c := NewCompiler(CompilerConfig{OutputDir: out, GoRoot: goroot})
	if err := c.copyWasmExec(context.Background()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(c.WasmExecPath())
	if err != nil || string(data) != "// support" {
		t.Fatalf("copied = %q, %v", data, err)
	}

	if err := c.Clean(); err != nil {
		t.Fatal(err)
	}
	if exists(c.WasmExecPath()) {
		t.Error("Clean left wasm_exec.js")
	}
}

func newTestServer(t *testing.T, hotReload bool) (*Server, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.New()
	cfg.Name = "Demo <1>"
	cfg.Server.HotReload = hotReload
	if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
		t.Fatal(err)
	}
	return NewServer(ServerOptions{Config: cfg, Logger: quietLogger()}), cfg
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServerPage(t *testing.T) {
	srv, _ := newTestServer(t, true)
	rec := get(t, srv.Handler(), "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<title>Demo &lt;1&gt;</title>",
		`v-hook="Popover:{&#34;content&#34;:&#34;Tooltip on top&#34;}"`,
		`id="popover-config"`,
		`"className":"v-popover"`,
		"/wasm_exec.js",
		ReloadPath,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if got := strings.Count(body, `class="trigger"`); got != len(Demos) {
		t.Errorf("triggers = %d, want %d", got, len(Demos))
	}
}

func TestPageComponents(t *testing.T) {
	render := func(c interface {
		Render(context.Context, io.Writer) error
	}) string {
		t.Helper()
		var b strings.Builder
		if err := c.Render(context.Background(), &b); err != nil {
			t.Fatal(err)
		}
		return b.String()
	}

	got := render(trigger(Demo{Label: "a < b", Config: hooks.Config{Content: "x", Click: true}}))
	want := `<button type="button" class="trigger" v-hook="Popover:{&#34;content&#34;:&#34;x&#34;,&#34;click&#34;:true}">a &lt; b</button>`
	if got != want {
		t.Errorf("trigger = %s, want %s", got, want)
	}

	if got := render(element("p", "", text("1"), text("2"))); got != "<p>12</p>" {
		t.Errorf("element = %s", got)
	}

	scripts := render(clientScripts(PageData{ConfigJSON: `{"zIndex":1}`}))
	if !strings.HasPrefix(scripts, `<script id="popover-config" type="application/json">{"zIndex":1}</script><script src="/wasm_exec.js"></script>`) {
		t.Errorf("scripts = %s", scripts)
	}
	if strings.Contains(scripts, ReloadPath) {
		t.Error("reload client rendered without hot reload")
	}
}

func TestServerPageWithoutHotReload(t *testing.T) {
	srv, _ := newTestServer(t, false)
	h := srv.Handler()

	if strings.Contains(get(t, h, "/").Body.String(), ReloadPath) {
		t.Error("reload client injected with hot reload disabled")
	}
	if rec := get(t, h, ReloadPath); rec.Code != http.StatusNotFound {
		t.Errorf("reload endpoint status = %d, want 404", rec.Code)
	}
}

func TestServerConfigEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, false)
	rec := get(t, srv.Handler(), "/_popover/config")

	var got config.PopoverConfig
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Placement != "top" || got.FadeMs != 200 {
		t.Errorf("config = %+v", got)
	}
}

func TestServerWasmFiles(t *testing.T) {
	srv, cfg := newTestServer(t, false)
	h := srv.Handler()

	if rec := get(t, h, "/main.wasm"); rec.Code != http.StatusNotFound {
		t.Errorf("status before build = %d, want 404", rec.Code)
	}

	writeFile(t, filepath.Join(cfg.OutputPath(), WasmFileName), "\x00asm")
	rec := get(t, h, "/main.wasm")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/wasm" {
		t.Errorf("Content-Type = %q", got)
	}
	if rec.Header().Get("Cache-Control") == "" {
		t.Error("expected no-cache headers")
	}
}

func TestServerMetrics(t *testing.T) {
	srv, _ := newTestServer(t, false)
	srv.builds.WithLabelValues("success").Inc()

	body := get(t, srv.Handler(), "/metrics").Body.String()
	if !strings.Contains(body, `popover_dev_builds_total{result="success"} 1`) {
		t.Errorf("metrics missing build counter:\n%s", body)
	}
	if !strings.Contains(body, "popover_dev_build_duration_seconds") {
		t.Error("metrics missing build duration")
	}
}

func TestServerReloadsConfig(t *testing.T) {
	srv, cfg := newTestServer(t, false)

	updated := config.New()
	updated.Popover.Placement = "bottom"
	if err := updated.SaveTo(cfg.Path()); err != nil {
		t.Fatal(err)
	}

	srv.handleChanges(context.Background(), []Change{{Path: cfg.Path(), Type: ChangeConfig}})

	body := get(t, srv.Handler(), "/_popover/config").Body.String()
	if !strings.Contains(body, `"placement":"bottom"`) {
		t.Errorf("config not reloaded: %s", body)
	}
}

func TestCollectWatchPaths(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "web"), 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, config.ConfigFileName)
	cfg := config.New()
	cfg.Watch.Paths = []string{"web", "missing", "web"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	got := CollectWatchPaths(cfg)
	want := []string{filepath.Join(dir, "web"), path}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("CollectWatchPaths() = %v, want %v", got, want)
	}

	ignore := CollectIgnore(cfg)
	if ignore[len(ignore)-1] != "dist/**" {
		t.Errorf("CollectIgnore() = %v, want build output ignored", ignore)
	}
}

func TestReloadServerBroadcast(t *testing.T) {
	rs := NewReloadServer(quietLogger())
	ts := httptest.NewServer(http.HandlerFunc(rs.HandleWebSocket))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(time.Second)
	for rs.ClientCount() != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if rs.ClientCount() != 1 {
		t.Fatalf("ClientCount() = %d, want 1", rs.ClientCount())
	}

	rs.NotifyError("boom")
	rs.NotifyReload()

	for _, want := range []ReloadMessage{{Type: ReloadTypeError, Error: "boom"}, {Type: ReloadTypeFull}} {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		var msg ReloadMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg != want {
			t.Errorf("message = %+v, want %+v", msg, want)
		}
	}

	rs.Close()
	if rs.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after Close", rs.ClientCount())
	}
}

func TestFilterAdvertiseIPs(t *testing.T) {
	cidr := func(s string) net.Addr {
		ip, n, err := net.ParseCIDR(s)
		if err != nil {
			t.Fatal(err)
		}
		n.IP = ip
		return n
	}

	got := filterAdvertiseIPs([]net.Addr{
		cidr("127.0.0.1/8"),
		cidr("fe80::1/64"),
		cidr("2001:db8::5/64"),
		cidr("192.168.1.20/24"),
		cidr("192.168.1.20/24"),
		cidr("10.0.0.7/8"),
	})

	want := []string{"10.0.0.7", "192.168.1.20", "2001:db8::5"}
	if len(got) != len(want) {
		t.Fatalf("filterAdvertiseIPs() = %v, want %v", got, want)
	}
	for i, ip := range got {
		if ip.String() != want[i] {
			t.Errorf("ip[%d] = %s, want %s", i, ip, want[i])
		}
	}

	if filterAdvertiseIPs([]net.Addr{cidr("127.0.0.1/8")}) != nil {
		t.Error("loopback-only addresses should yield nil")
	}
}
