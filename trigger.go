package popover

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/popover/pkg/dom"
	"github.com/vango-dev/popover/pkg/placement"
	"github.com/vango-dev/popover/pkg/position"
)

// Hide reasons, used as metric labels.
const (
	reasonLeave        = "leave"
	reasonToggle       = "toggle"
	reasonOutside      = "outside"
	reasonAutoClose    = "autoclose"
	reasonProgrammatic = "programmatic"
)

// floating is one rendered popover. generation changes on every show so
// callbacks scheduled for an earlier show can tell they are stale.
type floating struct {
	el         dom.Element
	id         uint64
	generation uint64
	unlisten   []dom.Unlisten
}

// trigger is the auxiliary state of one attached element.
type trigger struct {
	d       *Directive
	el      dom.Element
	binding Binding
	mode    Mode
	state   State
	float   *floating

	stopAutoUpdate func()
	stopOutside    dom.Unlisten
	closeTimer     dom.Timer
	destroyTimer   dom.Timer

	// unlisten reverses every registration made at attach.
	unlisten []dom.Unlisten

	// warnedArg is the last unknown placement argument logged.
	warnedArg string
}

func (t *trigger) listen() {
	on := func(typ dom.EventType, h dom.Handler) {
		t.unlisten = append(t.unlisten, t.el.AddEventListener(typ, h))
	}

	switch t.mode.Interaction {
	case Hover:
		on(dom.MouseEnter, func(dom.Event) {
			t.cancelClose()
			t.show()
		})
		on(dom.MouseLeave, func(dom.Event) {
			if t.mode.Interactive {
				t.scheduleClose()
				return
			}
			t.hide(reasonLeave)
		})
	case ClickToggle:
		on(dom.Click, func(e dom.Event) {
			e.StopPropagation()
			if t.state == Showing {
				t.hide(reasonToggle)
				return
			}
			t.show()
		})
		on(dom.MouseEnter, func(dom.Event) {
			t.cancelClose()
		})
		on(dom.MouseLeave, func(dom.Event) {
			t.scheduleClose()
		})
	}
}

// requestedPlacement parses the binding argument, logging unknown values.
func (t *trigger) requestedPlacement() placement.Placement {
	if t.binding.Arg == "" {
		return t.d.opts.placement()
	}
	p, ok := t.binding.Placement()
	if !ok {
		p = t.d.opts.placement()
		if t.warnedArg != t.binding.Arg {
			t.warnedArg = t.binding.Arg
			t.d.logger.Warn("unknown popover placement, using default",
				"trigger", t.el.Key(),
				"placement", t.binding.Arg,
				"default", string(p))
		}
	}
	return p
}

func (t *trigger) update(b Binding) {
	t.binding = b
	if t.float != nil {
		t.binding.render(t.float.el)
	}
}

func (t *trigger) show() {
	if t.state == Showing {
		t.binding.render(t.float.el)
		return
	}

	ctx, span := t.d.tracer.Start(context.Background(), "popover.show",
		trace.WithAttributes(
			attribute.String("popover.trigger", t.el.Key()),
			attribute.String("popover.interaction", t.mode.Interaction.String()),
		))
	defer span.End()

	if t.destroyTimer != nil {
		t.destroyTimer.Stop()
		t.destroyTimer = nil
	}

	f := t.float
	if f == nil {
		f = t.create()
	} else {
		t.binding.render(f.el)
	}
	f.generation++
	gen := f.generation
	t.state = Showing

	f.el.SetStyle("display", "block")
	p := t.requestedPlacement()
	t.position(ctx, f, gen, p, true)

	t.stopAutoUpdate = t.d.solver.AutoUpdate(t.el, f.el, func() {
		t.position(context.Background(), f, gen, p, false)
	})

	if t.mode.Interaction == ClickToggle {
		t.listenOutside(f, gen)
	}

	t.d.metrics.shown(t.mode.Interaction)
	t.d.logger.Debug("popover shown", "trigger", t.el.Key(), "floating", f.id, "placement", string(p))
}

// create builds the floating element and inserts it at the end of the body.
func (t *trigger) create() *floating {
	el := t.d.doc.CreateElement("div")
	applyOverlayStyle(el, t.d.opts, t.mode.Interactive)
	if t.mode.Interactive {
		el.SetAttr("role", "dialog")
	} else {
		el.SetAttr("role", "tooltip")
	}
	if t.d.opts.ClassName != "" {
		el.SetAttr("class", t.d.opts.ClassName)
	}
	t.binding.render(el)
	t.d.doc.Body().AppendChild(el)

	t.d.nextID++
	f := &floating{el: el, id: t.d.nextID}
	if t.mode.Interactive {
		f.unlisten = append(f.unlisten,
			el.AddEventListener(dom.MouseEnter, func(dom.Event) { t.cancelClose() }),
			el.AddEventListener(dom.MouseLeave, func(dom.Event) { t.scheduleClose() }),
		)
	}
	t.float = f
	t.d.metrics.opened(1)
	return f
}

// current reports whether a callback scheduled for show gen of f may still
// touch the DOM.
func (t *trigger) current(f *floating, gen uint64) bool {
	return t.state == Showing && t.float == f && f.generation == gen
}

func (t *trigger) position(ctx context.Context, f *floating, gen uint64, p placement.Placement, reveal bool) {
	_, span := t.d.tracer.Start(ctx, "popover.position",
		trace.WithAttributes(attribute.String("popover.placement.requested", string(p))))

	opts := position.Options{Placement: p, Middleware: t.d.opts.middleware()}
	t.d.solver.ComputePosition(t.el, f.el, opts, func(res position.Result, err error) {
		defer span.End()

		if !t.current(f, gen) {
			span.SetAttributes(attribute.Bool("popover.stale", true))
			t.d.metrics.stalePosition()
			t.d.logger.Debug("discarding stale popover position", "trigger", t.el.Key(), "floating", f.id)
			return
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			t.d.metrics.positionFailed()
			t.d.logger.Warn("popover positioning failed", "trigger", t.el.Key(), "error", err)
			// An unplaced popover must not cover the page origin.
			f.el.SetStyle("display", "none")
			f.el.SetStyle("pointer-events", "none")
			return
		}

		span.SetAttributes(attribute.String("popover.placement.resolved", string(res.Placement)))
		f.el.SetStyle("left", px(res.X))
		f.el.SetStyle("top", px(res.Y))
		f.el.SetStyle("transform-origin", placement.TransformOrigin(res.Placement))
		t.d.metrics.positioned(res.Placement)

		if reveal {
			f.el.SetStyle("display", "block")
			f.el.SetStyle("pointer-events", pointerEvents(t.mode.Interactive))
			f.el.ForceLayout()
			f.el.SetStyle("opacity", "1")
			f.el.SetStyle("transform", "scale(1)")
		}
	})
}

func (t *trigger) hide(reason string) {
	if t.state != Showing {
		return
	}

	_, span := t.d.tracer.Start(context.Background(), "popover.hide",
		trace.WithAttributes(
			attribute.String("popover.trigger", t.el.Key()),
			attribute.String("popover.reason", reason),
		))
	defer span.End()

	f := t.float
	t.state = Hiding
	f.el.SetStyle("opacity", "0")
	f.el.SetStyle("transform", scale(t.d.opts.InitialScale))

	t.cancelClose()
	if t.destroyTimer != nil {
		t.destroyTimer.Stop()
	}
	gen := f.generation
	t.destroyTimer = t.d.sched.AfterFunc(t.d.opts.FadeDuration, func() {
		t.destroyTimer = nil
		if t.float != f || f.generation != gen || t.state != Hiding {
			return
		}
		t.destroy()
	})

	t.stopSubscriptions()

	t.d.metrics.hidden(reason)
	t.d.logger.Debug("popover hidden", "trigger", t.el.Key(), "floating", f.id, "reason", reason)
}

func (t *trigger) stopSubscriptions() {
	if t.stopAutoUpdate != nil {
		t.stopAutoUpdate()
		t.stopAutoUpdate = nil
	}
	if t.stopOutside != nil {
		t.stopOutside()
		t.stopOutside = nil
	}
}

// destroy removes the floating element immediately.
func (t *trigger) destroy() {
	f := t.float
	if f == nil {
		return
	}
	for _, off := range f.unlisten {
		off()
	}
	f.el.Remove()
	t.float = nil
	t.state = Idle
	t.d.metrics.opened(-1)
}

// listenOutside registers the outside-click listener on the next tick. A
// listener added while a click is still bubbling would receive that click.
func (t *trigger) listenOutside(f *floating, gen uint64) {
	timer := t.d.sched.AfterFunc(0, func() {
		if !t.current(f, gen) {
			return
		}
		t.stopOutside = t.d.doc.AddEventListener(dom.Click, t.onDocumentClick)
	})
	t.stopOutside = func() { timer.Stop() }
}

func (t *trigger) onDocumentClick(e dom.Event) {
	target := e.Target()
	if target != nil {
		if t.el.Contains(target) {
			return
		}
		if t.float != nil && t.float.el.Contains(target) {
			return
		}
	}
	t.hide(reasonOutside)
}

func (t *trigger) scheduleClose() {
	t.cancelClose()
	if t.state != Showing {
		return
	}
	t.closeTimer = t.d.sched.AfterFunc(t.d.opts.AutoCloseDelay, func() {
		t.closeTimer = nil
		t.hide(reasonAutoClose)
	})
}

func (t *trigger) cancelClose() {
	if t.closeTimer != nil {
		t.closeTimer.Stop()
		t.closeTimer = nil
	}
}

// teardown reverses attach and forces the trigger idle.
func (t *trigger) teardown() {
	for _, off := range t.unlisten {
		off()
	}
	t.unlisten = nil

	t.cancelClose()
	if t.destroyTimer != nil {
		t.destroyTimer.Stop()
		t.destroyTimer = nil
	}
	t.stopSubscriptions()
	t.destroy()
	t.state = Idle
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
