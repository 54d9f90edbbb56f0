//go:build js && wasm

// Command popover-wasm is the browser client. It attaches popovers to every
// element carrying a Popover hook and keeps them in sync with the page.
package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/vango-dev/popover"
	"github.com/vango-dev/popover/internal/config"
	"github.com/vango-dev/popover/pkg/dom/jsdom"
	"github.com/vango-dev/popover/pkg/hooks"
	"github.com/vango-dev/popover/pkg/mount"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	doc := jsdom.New(jsdom.WithObservedAttributes(hooks.AttrName))

	opts := []popover.Option{
		popover.WithOptions(loadOptions(doc, logger)),
		popover.WithLogger(logger),
	}
	if solver, ok := jsdom.NewFloatingUI(); ok {
		logger.Debug("positioning with Floating UI")
		opts = append(opts, popover.WithSolver(solver))
	}
	d := popover.New(doc, jsdom.NewScheduler(), opts...)

	host := mount.New(doc, d, mount.WithLogger(logger))
	host.Register("clock", func() string {
		return time.Now().Format("15:04:05")
	})

	res := host.Start()
	logger.Info("popover client ready", "attached", res.Attached, "errors", len(res.Errors))

	select {}
}

// loadOptions reads the popover section embedded in the page, falling back
// to the defaults.
func loadOptions(doc *jsdom.Document, logger *slog.Logger) popover.Options {
	cfg := config.New().Popover
	el, ok := doc.ElementByID(config.ElementID)
	if !ok {
		return cfg.Options()
	}
	raw := el.Value().Get("textContent").String()
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		logger.Warn("invalid popover config", "error", err)
		return config.New().Popover.Options()
	}
	return cfg.Options()
}
