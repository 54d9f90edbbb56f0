// Package mount drives a popover.Directive from v-hook attributes in a
// live document.
//
// Host plays the role of the host framework's lifecycle: Sync attaches
// popovers to newly declared triggers, updates triggers whose hook value
// changed, and detaches triggers that lost their hook or left the
// document. Start repeats Sync whenever the document mutates.
package mount

import (
	"log/slog"

	"github.com/vango-dev/popover"
	"github.com/vango-dev/popover/pkg/dom"
	"github.com/vango-dev/popover/pkg/hooks"
)

// Host binds a directive to a document.
type Host struct {
	doc     dom.Document
	d       *popover.Directive
	sources hooks.Sources
	logger  *slog.Logger

	bound map[string]bound
	stop  func()
}

type bound struct {
	el    dom.Element
	value string
}

// Option configures a Host.
type Option func(*Host)

// WithSources registers named content functions for hook configs that
// set "source".
func WithSources(s hooks.Sources) Option {
	return func(h *Host) {
		for name, fn := range s {
			h.sources[name] = fn
		}
	}
}

// WithLogger sets the logger. If nil, slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(h *Host) {
		h.logger = l
	}
}

// New creates a host for doc driving d.
func New(doc dom.Document, d *popover.Directive, opts ...Option) *Host {
	h := &Host{
		doc:     doc,
		d:       d,
		sources: make(hooks.Sources),
		bound:   make(map[string]bound),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	return h
}

// Register adds a named content source. Triggers already bound keep the
// binding they were parsed with until their hook value changes.
func (h *Host) Register(name string, fn func() string) {
	h.sources[name] = fn
}

// SyncResult summarizes one Sync pass.
type SyncResult struct {
	Attached int
	Updated  int
	Detached int

	// Errors holds one entry per hook value that could not be parsed.
	// Those triggers keep their previous binding, or stay unattached.
	Errors []error
}

// Changed reports whether the pass touched any trigger.
func (r SyncResult) Changed() bool {
	return r.Attached+r.Updated+r.Detached > 0
}

// Sync reconciles attached popovers with the hook attributes currently in
// the document.
func (h *Host) Sync() SyncResult {
	var res SyncResult
	seen := make(map[string]bool)

	for _, el := range h.doc.ElementsWithAttr(hooks.AttrName) {
		value, _ := el.Attr(hooks.AttrName)
		if !hooks.IsPopover(value) {
			continue
		}
		key := el.Key()
		seen[key] = true

		prev, attached := h.bound[key]
		if attached && prev.value == value {
			continue
		}

		b, err := hooks.Parse(value, h.sources)
		if err != nil {
			h.logger.Warn("invalid popover hook", "trigger", key, "error", err)
			res.Errors = append(res.Errors, err)
			continue
		}

		if attached {
			if err := h.d.Update(el, b); err != nil {
				res.Errors = append(res.Errors, err)
				continue
			}
			res.Updated++
		} else {
			if err := h.d.Attach(el, b); err != nil {
				res.Errors = append(res.Errors, err)
				continue
			}
			res.Attached++
		}
		h.bound[key] = bound{el: el, value: value}
	}

	for key, b := range h.bound {
		if seen[key] {
			continue
		}
		h.d.Detach(b.el)
		delete(h.bound, key)
		res.Detached++
	}

	if res.Changed() {
		h.logger.Debug("popover hooks synced",
			"attached", res.Attached,
			"updated", res.Updated,
			"detached", res.Detached)
	}
	return res
}

// Start syncs once and then again after every document mutation, until
// Stop is called.
func (h *Host) Start() SyncResult {
	res := h.Sync()
	if h.stop == nil {
		h.stop = h.doc.ObserveMutations(func() { h.Sync() })
	}
	return res
}

// Stop ends mutation observation and detaches every popover the host
// attached.
func (h *Host) Stop() {
	if h.stop != nil {
		h.stop()
		h.stop = nil
	}
	for key, b := range h.bound {
		h.d.Detach(b.el)
		delete(h.bound, key)
	}
}

// Len returns the number of triggers bound by the host.
func (h *Host) Len() int { return len(h.bound) }
