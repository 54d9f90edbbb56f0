package dev

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/popover/internal/config"
	"github.com/vango-dev/popover/internal/errors"
)

// ServerOptions configures the development server.
type ServerOptions struct {
	// Config is the project configuration.
	Config *config.Config

	// Logger receives server logs. Default: slog.Default().
	Logger *slog.Logger

	// Registry collects the server's metrics and backs /metrics.
	// Default: a fresh registry.
	Registry *prometheus.Registry

	// OnBuildComplete is called when a build completes.
	OnBuildComplete func(result BuildResult)

	// OnReload is called when browsers are reloaded.
	OnReload func(clients int)
}

// Server is the development server. It serves the demo page and the
// compiled client, rebuilds on change, and reloads connected browsers.
type Server struct {
	options      ServerOptions
	logger       *slog.Logger
	compiler     *Compiler
	reloadServer *ReloadServer
	registry     *prometheus.Registry
	builds       *prometheus.CounterVec
	buildTime    prometheus.Histogram
	httpServer   *http.Server

	mu      sync.Mutex
	config  *config.Config
	running bool
	lastErr string
}

// NewServer creates a new development server.
func NewServer(options ServerOptions) *Server {
	cfg := options.Config
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := options.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	factory := promauto.With(registry)

	var reloadServer *ReloadServer
	if cfg.Server.HotReload {
		reloadServer = NewReloadServer(logger)
	}

	return &Server{
		options:      options,
		logger:       logger,
		config:       cfg,
		compiler:     newCompiler(cfg),
		reloadServer: reloadServer,
		registry:     registry,
		builds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "popover",
			Subsystem: "dev",
			Name:      "builds_total",
			Help:      "Total number of WebAssembly builds",
		}, []string{"result"}),
		buildTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "popover",
			Subsystem: "dev",
			Name:      "build_duration_seconds",
			Help:      "WebAssembly build duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30},
		}),
	}
}

func newCompiler(cfg *config.Config) *Compiler {
	return NewCompiler(CompilerConfig{
		ProjectPath: cfg.Dir(),
		OutputDir:   cfg.OutputPath(),
		Entry:       cfg.Build.Entry,
		Tags:        cfg.Build.Tags,
		LDFlags:     cfg.Build.LDFlags,
	})
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.pageHandler)
	r.Get("/_popover/config", s.configHandler)
	r.Get("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}).ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NoCache)
		r.Get("/"+WasmFileName, s.fileHandler((*Compiler).WasmPath, "application/wasm"))
		r.Get("/"+WasmExecFileName, s.fileHandler((*Compiler).WasmExecPath, "text/javascript; charset=utf-8"))
	})

	if s.reloadEnabled() {
		r.Get(ReloadPath, s.reloadServer.HandleWebSocket)
	}
	return r
}

// Start builds the client, then serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	cfg := s.config
	s.mu.Unlock()

	s.build(ctx)

	watcher, err := NewWatcher(WatcherConfig{
		Root:   cfg.Dir(),
		Paths:  CollectWatchPaths(cfg),
		Ignore: CollectIgnore(cfg),
	})
	if err != nil {
		return err
	}
	changeCh := make(chan []Change, 16)
	watcher.OnChange(func(changes []Change) {
		select {
		case changeCh <- changes:
		default:
		}
	})
	go watcher.Start(ctx)
	go s.processChanges(ctx, changeCh)

	s.httpServer = &http.Server{
		Addr:              cfg.DevAddress(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("dev server running", "url", cfg.DevURL())

	if cfg.Server.Advertise {
		stopAdvertise := advertise(cfg.Name, cfg.Server.Port, s.logger)
		defer stopAdvertise()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- errors.New("P040").Wrap(err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		watcher.Stop()
		s.Stop()
		return nil
	case err := <-errCh:
		watcher.Stop()
		s.Stop()
		return err
	}
}

// Stop stops the development server.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false

	if s.reloadServer != nil {
		s.reloadServer.Close()
	}
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}
}

// processChanges serializes change handling and coalesces bursts.
func (s *Server) processChanges(ctx context.Context, changeCh <-chan []Change) {
	for {
		select {
		case <-ctx.Done():
			return
		case changes := <-changeCh:
			draining := true
			for draining {
				select {
				case next := <-changeCh:
					changes = append(changes, next...)
				default:
					draining = false
				}
			}
			s.handleChanges(ctx, changes)
		}
	}
}

// handleChanges reloads configuration, rebuilds, and notifies browsers as
// the batch requires.
func (s *Server) handleChanges(ctx context.Context, changes []Change) {
	var hasGo, hasConfig bool
	for _, change := range changes {
		s.logger.Debug("file changed", "path", change.Path, "type", change.Type.String())
		switch change.Type {
		case ChangeGo:
			hasGo = true
		case ChangeConfig:
			hasConfig = true
		}
	}

	if hasConfig {
		if err := s.reloadConfig(); err != nil {
			s.logger.Error("config reload failed", "error", err)
			s.notifyError(err.Error())
			return
		}
	}

	if hasGo {
		if result := s.build(ctx); !result.Success {
			return
		}
	}

	s.notifyReload()
}

func (s *Server) reloadConfig() error {
	s.mu.Lock()
	path := s.config.Path()
	s.mu.Unlock()
	if path == "" {
		return nil
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.config = cfg
	s.compiler = newCompiler(cfg)
	s.mu.Unlock()
	s.logger.Info("config reloaded", "path", path)
	return nil
}

// build compiles the client and records the outcome.
func (s *Server) build(ctx context.Context) BuildResult {
	s.mu.Lock()
	compiler := s.compiler
	s.mu.Unlock()

	s.logger.Info("building client")
	result := compiler.Build(ctx)
	s.buildTime.Observe(result.Duration.Seconds())

	if s.options.OnBuildComplete != nil {
		s.options.OnBuildComplete(result)
	}

	if !result.Success {
		s.builds.WithLabelValues("error").Inc()
		s.logger.Error("build failed", "output", result.Output, "error", result.Error)
		msg := result.Output
		if msg == "" && result.Error != nil {
			msg = result.Error.Error()
		}
		s.notifyError(msg)
		return result
	}

	s.builds.WithLabelValues("success").Inc()
	s.logger.Info("built client", "duration", result.Duration.Round(time.Millisecond))
	s.clearReloadError()
	return result
}

func (s *Server) pageHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	cfg := s.config
	s.mu.Unlock()

	title := cfg.Name
	if title == "" {
		title = "Popover playground"
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := Page(PageData{
		Title:      title,
		ConfigJSON: cfg.Popover.JSON(),
		HotReload:  s.reloadEnabled(),
	})
	if err := page.Render(r.Context(), w); err != nil {
		s.logger.Error("render page", "error", err)
	}
}

func (s *Server) configHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	cfg := s.config
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(cfg.Popover.JSON()))
}

func (s *Server) fileHandler(path func(*Compiler) string, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		p := path(s.compiler)
		s.mu.Unlock()

		if !exists(p) {
			http.Error(w, "not built yet", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", contentType)
		http.ServeFile(w, r, p)
	}
}

func (s *Server) reloadEnabled() bool {
	return s.reloadServer != nil
}

func (s *Server) notifyReload() {
	if !s.reloadEnabled() {
		s.logger.Info("rebuild complete (hot reload disabled)")
		return
	}

	s.reloadServer.NotifyReload()
	clients := s.reloadServer.ClientCount()
	if s.options.OnReload != nil {
		s.options.OnReload(clients)
	}
	s.logger.Info("reloaded browsers", "clients", clients)
}

func (s *Server) notifyError(errMsg string) {
	if !s.reloadEnabled() {
		return
	}
	s.mu.Lock()
	s.lastErr = errMsg
	s.mu.Unlock()
	s.reloadServer.NotifyError(errMsg)
}

func (s *Server) clearReloadError() {
	if !s.reloadEnabled() {
		return
	}
	s.mu.Lock()
	had := s.lastErr != ""
	s.lastErr = ""
	s.mu.Unlock()
	if had {
		s.reloadServer.ClearError()
	}
}
