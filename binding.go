package popover

import (
	"strings"

	"github.com/vango-dev/popover/pkg/dom"
	"github.com/vango-dev/popover/pkg/placement"
)

// Value is the content of a popover: plain text, a markup string, or a
// function producing markup. The zero Value is absent content and renders
// empty.
type Value struct {
	s  string
	fn func() string
}

// Text returns a string value. It renders as escaped text unless the
// binding carries the HTML modifier.
func Text(s string) Value {
	return Value{s: s}
}

// Func returns a value whose markup is produced by fn each time content is
// assigned. Func values always render as markup. Panics raised by fn
// propagate to the caller of the directive method that rendered it.
func Func(fn func() string) Value {
	return Value{fn: fn}
}

// IsFunc reports whether the value is produced by a function.
func (v Value) IsFunc() bool { return v.fn != nil }

// Modifiers are the directive's boolean flags.
type Modifiers struct {
	// HTML interprets string values as markup.
	HTML bool

	// Click switches from hover interaction to click-to-toggle.
	Click bool
}

// Binding is the per-attachment directive configuration.
type Binding struct {
	Value Value

	// Arg names the requested placement. Empty means top.
	Arg string

	Modifiers Modifiers
}

// Placement parses Arg. ok is false when Arg is not a recognized
// placement, in which case the default placement is returned.
func (b Binding) Placement() (p placement.Placement, ok bool) {
	return placement.Parse(b.Arg)
}

// Mode derives the interaction mode from the modifiers.
func (b Binding) Mode() Mode {
	m := Mode{Interaction: Hover}
	if b.Modifiers.Click {
		m.Interaction = ClickToggle
	}
	m.Interactive = b.Modifiers.Click || b.Modifiers.HTML
	return m
}

// Interaction is how the user opens and closes a popover.
type Interaction int

const (
	// Hover shows on pointer enter and hides on pointer leave.
	Hover Interaction = iota

	// ClickToggle toggles on click and closes on outside clicks or when the
	// pointer has left both the trigger and the popover for a while.
	ClickToggle
)

func (i Interaction) String() string {
	switch i {
	case Hover:
		return "hover"
	case ClickToggle:
		return "click"
	}
	return "unknown"
}

// Mode is an interaction crossed with the interactive capability.
// Interactive popovers accept pointer input and stay open while the
// pointer is over them.
type Mode struct {
	Interaction Interaction
	Interactive bool
}

// render assigns the value to el following the binding's modifiers.
func (b Binding) render(el dom.Element) {
	switch {
	case b.Value.fn != nil:
		el.SetHTML(b.Value.fn())
	case b.Modifiers.HTML:
		el.SetHTML(b.Value.s)
	default:
		el.SetText(strings.TrimSpace(b.Value.s))
	}
}
