package popover

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/popover/internal/errors"
	"github.com/vango-dev/popover/pkg/dom"
	"github.com/vango-dev/popover/pkg/position"
)

const tracerName = "github.com/vango-dev/popover"

// State is the lifecycle state of one trigger's popover.
type State int

const (
	// Idle means no floating element exists.
	Idle State = iota

	// Showing means the floating element is visible and kept positioned.
	Showing

	// Hiding means the floating element is fading out and will be removed.
	Hiding
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Showing:
		return "showing"
	case Hiding:
		return "hiding"
	}
	return "unknown"
}

// Directive attaches popovers to trigger elements of one document.
type Directive struct {
	doc     dom.Document
	sched   dom.Scheduler
	solver  position.Solver
	opts    Options
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	// triggers is the side table of per-element state, keyed by
	// dom.Element.Key.
	triggers map[string]*trigger
	nextID   uint64
}

// New creates a directive for doc. Timers run on sched.
func New(doc dom.Document, sched dom.Scheduler, opts ...Option) *Directive {
	d := &Directive{
		doc:      doc,
		sched:    sched,
		opts:     DefaultOptions(),
		triggers: make(map[string]*trigger),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.solver == nil {
		d.solver = position.NewLocal(doc)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.tracer == nil {
		d.tracer = otel.Tracer(tracerName)
	}
	return d
}

// Attach wires a popover to el. It fails if el already has one.
func (d *Directive) Attach(el dom.Element, b Binding) error {
	if el == nil {
		return errors.New("P003")
	}
	key := el.Key()
	if _, ok := d.triggers[key]; ok {
		return errors.New("P001").WithDetailf("trigger %s", key)
	}

	t := &trigger{
		d:       d,
		el:      el,
		binding: b,
		mode:    b.Mode(),
	}
	t.requestedPlacement()
	t.listen()
	d.triggers[key] = t

	d.metrics.attached(1)
	d.logger.Debug("popover attached",
		"trigger", key,
		"interaction", t.mode.Interaction.String(),
		"interactive", t.mode.Interactive)
	return nil
}

// Update replaces el's binding. If the popover is currently rendered its
// content is refreshed in place; a new placement applies from the next
// show. The interaction mode stays as it was at Attach.
func (d *Directive) Update(el dom.Element, b Binding) error {
	if el == nil {
		return errors.New("P003")
	}
	t, ok := d.triggers[el.Key()]
	if !ok {
		return errors.New("P002").WithDetailf("trigger %s", el.Key())
	}
	t.update(b)
	return nil
}

// Detach removes every listener Attach registered and destroys any live
// floating element without a fade. Detaching an element without a popover
// is a no-op.
func (d *Directive) Detach(el dom.Element) {
	if el == nil {
		return
	}
	key := el.Key()
	t, ok := d.triggers[key]
	if !ok {
		return
	}
	t.teardown()
	delete(d.triggers, key)

	d.metrics.attached(-1)
	d.logger.Debug("popover detached", "trigger", key)
}

// DetachAll detaches every trigger.
func (d *Directive) DetachAll() {
	for _, t := range d.triggers {
		d.Detach(t.el)
	}
}

// Attached reports whether el has a popover.
func (d *Directive) Attached(el dom.Element) bool {
	if el == nil {
		return false
	}
	_, ok := d.triggers[el.Key()]
	return ok
}

// Len returns the number of attached triggers.
func (d *Directive) Len() int { return len(d.triggers) }

// State returns the popover state of el. Unattached elements are Idle.
func (d *Directive) State(el dom.Element) State {
	if el == nil {
		return Idle
	}
	if t, ok := d.triggers[el.Key()]; ok {
		return t.state
	}
	return Idle
}

// Floating returns el's floating element, or nil if none exists.
func (d *Directive) Floating(el dom.Element) dom.Element {
	if el == nil {
		return nil
	}
	if t, ok := d.triggers[el.Key()]; ok && t.float != nil {
		return t.float.el
	}
	return nil
}

// Show opens el's popover as if the user had activated the trigger. For
// click triggers, outside clicks are watched from the next tick, so calling
// Show from another element's click handler does not close it again.
func (d *Directive) Show(el dom.Element) {
	if t, ok := d.lookup(el); ok {
		t.show()
	}
}

// Hide closes el's popover as if the user had deactivated the trigger.
func (d *Directive) Hide(el dom.Element) {
	if t, ok := d.lookup(el); ok {
		t.hide(reasonProgrammatic)
	}
}

func (d *Directive) lookup(el dom.Element) (*trigger, bool) {
	if el == nil {
		return nil, false
	}
	t, ok := d.triggers[el.Key()]
	return t, ok
}
