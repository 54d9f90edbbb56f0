//go:build js && wasm

package jsdom

import (
	"sync"
	"syscall/js"

	"github.com/vango-dev/popover/pkg/dom"
)

// Document wraps the browser document.
type Document struct {
	win   js.Value
	doc   js.Value
	attrs []string
}

var _ dom.Document = (*Document)(nil)

// Option configures a Document.
type Option func(*Document)

// WithObservedAttributes makes ObserveMutations report changes to the
// named attributes in addition to added and removed nodes.
func WithObservedAttributes(names ...string) Option {
	return func(d *Document) {
		d.attrs = append(d.attrs, names...)
	}
}

// New wraps the global document.
func New(opts ...Option) *Document {
	win := js.Global()
	d := &Document{win: win, doc: win.Get("document")}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) dom.Element {
	return Wrap(d.doc.Call("createElement", tag))
}

// Body implements dom.Document.
func (d *Document) Body() dom.Element { return Wrap(d.doc.Get("body")) }

// Viewport implements dom.Document.
func (d *Document) Viewport() dom.Rect {
	root := d.doc.Get("documentElement")
	return dom.Rect{
		X:      d.win.Get("scrollX").Float(),
		Y:      d.win.Get("scrollY").Float(),
		Width:  root.Get("clientWidth").Float(),
		Height: root.Get("clientHeight").Float(),
	}
}

// AddEventListener implements dom.Document.
func (d *Document) AddEventListener(typ dom.EventType, h dom.Handler) dom.Unlisten {
	return listen(d.doc, string(typ), nil, func(args []js.Value) { h(&Event{v: args[0]}) })
}

// ElementsWithAttr implements dom.Document.
func (d *Document) ElementsWithAttr(name string) []dom.Element {
	list := d.doc.Call("querySelectorAll", "["+name+"]")
	out := make([]dom.Element, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		out = append(out, Wrap(list.Index(i)))
	}
	return out
}

// ElementByID returns the element with the given id.
func (d *Document) ElementByID(id string) (*Element, bool) {
	v := d.doc.Call("getElementById", id)
	if !v.Truthy() {
		return nil, false
	}
	return Wrap(v), true
}

// ObserveMutations implements dom.Document with a MutationObserver on the
// body subtree.
func (d *Document) ObserveMutations(fn func()) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	observer := d.win.Get("MutationObserver").New(cb)

	init := map[string]any{"childList": true, "subtree": true}
	if len(d.attrs) > 0 {
		filter := make([]any, len(d.attrs))
		for i, a := range d.attrs {
			filter[i] = a
		}
		init["attributes"] = true
		init["attributeFilter"] = filter
	}
	observer.Call("observe", d.doc.Get("body"), init)

	var once sync.Once
	return func() {
		once.Do(func() {
			observer.Call("disconnect")
			cb.Release()
		})
	}
}

// ObserveLayout implements dom.LayoutObserver. It watches the elements'
// sizes with a ResizeObserver where available, and scrolling and resizing
// of the window.
func (d *Document) ObserveLayout(elements []dom.Element, fn func()) func() {
	var (
		resize   js.Value
		resizeCb js.Func
	)
	if ctor := d.win.Get("ResizeObserver"); ctor.Truthy() {
		resizeCb = js.FuncOf(func(this js.Value, args []js.Value) any {
			fn()
			return nil
		})
		resize = ctor.New(resizeCb)
		for _, el := range elements {
			if e, ok := el.(*Element); ok {
				resize.Call("observe", e.v)
			}
		}
	}

	passive := map[string]any{"capture": true, "passive": true}
	stopScroll := listen(d.win, "scroll", passive, func([]js.Value) { fn() })
	stopResize := listen(d.win, "resize", nil, func([]js.Value) { fn() })

	var once sync.Once
	return func() {
		once.Do(func() {
			stopScroll()
			stopResize()
			if resize.Truthy() {
				resize.Call("disconnect")
				resizeCb.Release()
			}
		})
	}
}
