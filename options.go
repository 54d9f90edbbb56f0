package popover

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/popover/pkg/placement"
	"github.com/vango-dev/popover/pkg/position"
)

// =============================================================================
// Options
// =============================================================================

// Options tunes the directive's geometry and timing.
type Options struct {
	// Placement is used for bindings without an argument and for unknown
	// arguments.
	Placement placement.Placement

	// Offset is the gap between trigger and popover in pixels.
	Offset float64

	// Padding is the minimum distance from the viewport edges in pixels.
	Padding float64

	// FadeDuration is the length of the show and hide transition. The
	// floating element is removed this long after a hide.
	FadeDuration time.Duration

	// AutoCloseDelay is how long an interactive popover stays open after
	// the pointer has left both the trigger and the popover.
	AutoCloseDelay time.Duration

	// InitialScale is the scale the popover animates from and back to.
	InitialScale float64

	// ZIndex is the stacking order of the floating element.
	ZIndex int

	// ClassName is set as the floating element's class attribute.
	ClassName string

	// Style holds cosmetic inline CSS applied to every floating element.
	// Layout, visibility and transition properties set by the directive
	// take precedence.
	Style map[string]string
}

// Defaults.
const (
	DefaultOffset         = 8
	DefaultPadding        = 8
	DefaultFadeDuration   = 200 * time.Millisecond
	DefaultAutoCloseDelay = 500 * time.Millisecond
	DefaultInitialScale   = 0.95
	DefaultZIndex         = 9999
	DefaultClassName      = "v-popover"
)

// DefaultOptions returns the standard options.
func DefaultOptions() Options {
	return Options{
		Placement:      placement.Default,
		Offset:         DefaultOffset,
		Padding:        DefaultPadding,
		FadeDuration:   DefaultFadeDuration,
		AutoCloseDelay: DefaultAutoCloseDelay,
		InitialScale:   DefaultInitialScale,
		ZIndex:         DefaultZIndex,
		ClassName:      DefaultClassName,
		Style:          DefaultStyle(),
	}
}

// DefaultStyle returns the default cosmetic CSS.
func DefaultStyle() map[string]string {
	return map[string]string{
		"max-width":       "320px",
		"padding":         "6px 10px",
		"border-radius":   "6px",
		"border":          "1px solid rgba(255, 255, 255, 0.12)",
		"background":      "rgba(17, 24, 39, 0.92)",
		"backdrop-filter": "blur(6px)",
		"color":           "#f9fafb",
		"font-size":       "13px",
		"line-height":     "1.4",
	}
}

// placement returns the default placement, or placement.Default when
// unset or invalid.
func (o Options) placement() placement.Placement {
	if o.Placement.Valid() {
		return o.Placement
	}
	return placement.Default
}

// middleware returns the solver pipeline for these options.
func (o Options) middleware() []position.Middleware {
	return []position.Middleware{
		position.Offset(o.Offset),
		position.Flip(),
		position.Shift(position.ShiftOptions{Padding: o.Padding}),
	}
}

// Option configures a Directive.
type Option func(*Directive)

// WithOptions replaces the directive's options.
func WithOptions(opts Options) Option {
	return func(d *Directive) {
		d.opts = opts
	}
}

// WithSolver sets the placement solver. The default is a
// position.Local solver over the directive's document.
func WithSolver(s position.Solver) Option {
	return func(d *Directive) {
		d.solver = s
	}
}

// WithLogger sets the structured logger. If nil, slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(d *Directive) {
		d.logger = l
	}
}

// WithMetrics records directive activity in m.
func WithMetrics(m *Metrics) Option {
	return func(d *Directive) {
		d.metrics = m
	}
}

// WithTracer sets the tracer used for show, hide and position spans.
// The default comes from the global OpenTelemetry provider.
func WithTracer(t trace.Tracer) Option {
	return func(d *Directive) {
		d.tracer = t
	}
}
