package domtest

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/popover/pkg/dom"
)

type observer struct {
	id  int
	els []dom.Element
	fn  func()
}

// Document is an in-memory dom.Document.
type Document struct {
	nextKey  int
	body     *Element
	viewport dom.Rect
	ls       listeners

	nextObs   int
	layout    []observer
	mutations []observer
	pending   bool
}

var _ dom.Document = (*Document)(nil)

// NewDocument creates an empty document with a 1024x768 viewport.
func NewDocument() *Document {
	d := &Document{viewport: dom.Rect{Width: 1024, Height: 768}}
	d.body = d.newElement("body")
	return d
}

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) dom.Element {
	return d.newElement(tag)
}

// NewElement is CreateElement returning the concrete type.
func (d *Document) NewElement(tag string) *Element {
	return d.newElement(tag)
}

// Body implements dom.Document.
func (d *Document) Body() dom.Element { return d.body }

// BodyElement returns the body as the concrete type.
func (d *Document) BodyElement() *Element { return d.body }

// Viewport implements dom.Document.
func (d *Document) Viewport() dom.Rect { return d.viewport }

// SetViewport changes the viewport reported by Viewport.
func (d *Document) SetViewport(r dom.Rect) { d.viewport = r }

// AddEventListener implements dom.Document.
func (d *Document) AddEventListener(typ dom.EventType, h dom.Handler) dom.Unlisten {
	return d.ls.add(typ, h)
}

// ListenerCount returns the number of listeners registered on the document.
func (d *Document) ListenerCount() int { return d.ls.count() }

// ClickOutside dispatches a click at the body, as if the user clicked on
// an empty part of the page.
func (d *Document) ClickOutside() { d.body.Click() }

// ElementsWithAttr implements dom.Document.
func (d *Document) ElementsWithAttr(name string) []dom.Element {
	var out []dom.Element
	var walk func(e *Element)
	walk = func(e *Element) {
		for _, c := range e.children {
			if _, ok := c.attrs[name]; ok {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(d.body)
	return out
}

// ObserveLayout implements dom.LayoutObserver.
func (d *Document) ObserveLayout(elements []dom.Element, fn func()) func() {
	d.nextObs++
	id := d.nextObs
	d.layout = append(d.layout, observer{id: id, els: elements, fn: fn})
	return func() { d.layout = without(d.layout, id) }
}

// LayoutObservers returns the number of active layout observers.
func (d *Document) LayoutObservers() int { return len(d.layout) }

// Reflow notifies every layout observer, as after a scroll or resize.
func (d *Document) Reflow() {
	for _, o := range append([]observer(nil), d.layout...) {
		o.fn()
	}
}

// ObserveMutations implements dom.Document.
func (d *Document) ObserveMutations(fn func()) func() {
	d.nextObs++
	id := d.nextObs
	d.mutations = append(d.mutations, observer{id: id, fn: fn})
	return func() { d.mutations = without(d.mutations, id) }
}

// FlushMutations delivers queued mutation notifications. It reports
// whether any observer ran.
func (d *Document) FlushMutations() bool {
	if !d.pending {
		return false
	}
	d.pending = false
	ran := false
	for _, o := range append([]observer(nil), d.mutations...) {
		o.fn()
		ran = true
	}
	return ran
}

// Floating returns the body children whose class attribute contains class.
func (d *Document) Floating(class string) []*Element {
	var out []*Element
	for _, c := range d.body.Children() {
		if cls, ok := c.attrs["class"]; ok && hasClass(cls, class) {
			out = append(out, c)
		}
	}
	return out
}

func (d *Document) mutated() { d.pending = true }

func (d *Document) newElement(tag string) *Element {
	d.nextKey++
	return &Element{
		doc: d,
		key: "el-" + strconv.Itoa(d.nextKey),
		tag: strings.ToLower(tag),
	}
}

// fromNode converts a parsed html node into an element tree.
func (d *Document) fromNode(n *html.Node) *Element {
	switch n.Type {
	case html.TextNode:
		return &Element{doc: d, tag: textTag, text: n.Data}
	case html.ElementNode:
		e := d.newElement(n.Data)
		for _, a := range n.Attr {
			if e.attrs == nil {
				e.attrs = make(map[string]string)
			}
			e.attrs[a.Key] = a.Val
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := d.fromNode(c); child != nil {
				e.adopt(child)
			}
		}
		return e
	}
	return nil
}

func without(list []observer, id int) []observer {
	for i, o := range list {
		if o.id == id {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

func hasClass(attr, class string) bool {
	for _, c := range strings.Fields(attr) {
		if c == class {
			return true
		}
	}
	return false
}
