package dom

import "time"

// EventType names a DOM event.
type EventType string

// Events used by the popover directive.
const (
	MouseEnter EventType = "mouseenter"
	MouseLeave EventType = "mouseleave"
	Click      EventType = "click"
)

// Event is a dispatched DOM event.
type Event interface {
	Type() EventType

	// Target is the element the event was originally dispatched to.
	// It may be nil for events without an element target.
	Target() Element

	// StopPropagation prevents the event from bubbling further.
	StopPropagation()
}

// Handler handles a DOM event.
type Handler func(Event)

// Unlisten removes a previously registered listener.
// Calling it more than once is a no-op.
type Unlisten func()

// EventTarget is anything listeners can be registered on.
type EventTarget interface {
	AddEventListener(typ EventType, h Handler) Unlisten
}

// Element is a DOM element handle.
type Element interface {
	EventTarget

	// Key returns a stable identifier for the underlying node. Two handles
	// to the same node return the same key.
	Key() string

	// Attr returns the value of an attribute and whether it is present.
	Attr(name string) (string, bool)
	SetAttr(name, value string)

	SetStyle(property, value string)
	Style(property string) string

	// SetText replaces the element's children with a single text node.
	SetText(text string)

	// SetHTML replaces the element's children with parsed markup.
	SetHTML(markup string)

	AppendChild(child Element)

	// Remove detaches the element from its parent. Removing a detached
	// element is a no-op.
	Remove()

	// Contains reports whether other is the element itself or one of its
	// descendants.
	Contains(other Element) bool

	// Rect returns the element's bounding box in document coordinates.
	Rect() Rect

	// ForceLayout flushes pending style changes so the next style write
	// starts a transition instead of jumping to the end state.
	ForceLayout()
}

// Document is the DOM document.
type Document interface {
	EventTarget
	LayoutObserver

	CreateElement(tag string) Element
	Body() Element

	// Viewport returns the visible area in document coordinates.
	Viewport() Rect

	// ElementsWithAttr returns every connected element that carries the
	// named attribute, in document order.
	ElementsWithAttr(name string) []Element

	// ObserveMutations calls fn after the document's subtree or attributes
	// change. The returned function stops the observation.
	ObserveMutations(fn func()) (stop func())
}

// LayoutObserver reports geometry changes (scroll, resize, reflow) that
// affect the listed elements.
type LayoutObserver interface {
	ObserveLayout(elements []Element, fn func()) (stop func())
}

// Timer is a pending timer callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer.
	Stop() bool
}

// Scheduler runs callbacks on the UI loop after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}
