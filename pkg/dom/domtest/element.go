package domtest

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/popover/pkg/dom"
)

const textTag = "#text"

type listener struct {
	id int
	h  dom.Handler
}

// listeners is a registry shared by elements and the document.
type listeners struct {
	next  int
	byTyp map[dom.EventType][]listener
}

func (l *listeners) add(typ dom.EventType, h dom.Handler) dom.Unlisten {
	if l.byTyp == nil {
		l.byTyp = make(map[dom.EventType][]listener)
	}
	l.next++
	id := l.next
	l.byTyp[typ] = append(l.byTyp[typ], listener{id: id, h: h})
	return func() {
		list := l.byTyp[typ]
		for i, ln := range list {
			if ln.id == id {
				l.byTyp[typ] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

func (l *listeners) fire(e *Event) {
	// Copy so handlers can unlisten while iterating.
	list := append([]listener(nil), l.byTyp[e.typ]...)
	for _, ln := range list {
		ln.h(e)
	}
}

func (l *listeners) count() int {
	n := 0
	for _, list := range l.byTyp {
		n += len(list)
	}
	return n
}

// Element is an in-memory DOM element.
type Element struct {
	doc      *Document
	key      string
	tag      string
	text     string
	attrs    map[string]string
	style    map[string]string
	parent   *Element
	children []*Element
	rect     dom.Rect
	layouts  int
	ls       listeners
}

var _ dom.Element = (*Element)(nil)

// Key implements dom.Element.
func (e *Element) Key() string { return e.key }

// Tag returns the lower-case tag name.
func (e *Element) Tag() string { return e.tag }

// Attr implements dom.Element.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttr sets an attribute and queues a mutation record.
func (e *Element) SetAttr(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
	e.doc.mutated()
}

// RemoveAttr removes an attribute and queues a mutation record.
func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
	e.doc.mutated()
}

// SetStyle implements dom.Element.
func (e *Element) SetStyle(property, value string) {
	if e.style == nil {
		e.style = make(map[string]string)
	}
	e.style[property] = value
}

// Style implements dom.Element.
func (e *Element) Style(property string) string {
	return e.style[property]
}

// CSSText renders the inline style sorted by property.
func (e *Element) CSSText() string {
	props := make([]string, 0, len(e.style))
	for p := range e.style {
		props = append(props, p)
	}
	sort.Strings(props)
	var b strings.Builder
	for _, p := range props {
		fmt.Fprintf(&b, "%s: %s; ", p, e.style[p])
	}
	return strings.TrimSpace(b.String())
}

// SetText implements dom.Element.
func (e *Element) SetText(text string) {
	e.clearChildren()
	if text != "" {
		e.adopt(&Element{doc: e.doc, tag: textTag, text: text})
	}
}

// SetHTML implements dom.Element. Markup that fails to parse leaves the
// element empty.
func (e *Element) SetHTML(markup string) {
	e.clearChildren()
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return
	}
	for _, n := range nodes {
		if c := e.doc.fromNode(n); c != nil {
			e.adopt(c)
		}
	}
}

// AppendChild implements dom.Element.
func (e *Element) AppendChild(child dom.Element) {
	c, ok := child.(*Element)
	if !ok || c == nil {
		return
	}
	c.Remove()
	e.adopt(c)
	e.doc.mutated()
}

// Remove implements dom.Element.
func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
	e.doc.mutated()
}

// Contains implements dom.Element.
func (e *Element) Contains(other dom.Element) bool {
	o, ok := other.(*Element)
	if !ok || o == nil {
		return false
	}
	for n := o; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Rect implements dom.Element.
func (e *Element) Rect() dom.Rect { return e.rect }

// SetRect sets the bounding box reported by Rect.
func (e *Element) SetRect(r dom.Rect) { e.rect = r }

// ForceLayout implements dom.Element.
func (e *Element) ForceLayout() { e.layouts++ }

// LayoutFlushes returns how often ForceLayout was called.
func (e *Element) LayoutFlushes() int { return e.layouts }

// AddEventListener implements dom.Element.
func (e *Element) AddEventListener(typ dom.EventType, h dom.Handler) dom.Unlisten {
	return e.ls.add(typ, h)
}

// ListenerCount returns the number of registered listeners of any type.
func (e *Element) ListenerCount() int { return e.ls.count() }

// Parent returns the parent element, or nil when detached.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the element children, excluding text nodes.
func (e *Element) Children() []*Element {
	var out []*Element
	for _, c := range e.children {
		if c.tag != textTag {
			out = append(out, c)
		}
	}
	return out
}

// Connected reports whether the element is attached under the document body.
func (e *Element) Connected() bool {
	return e.doc.body.Contains(e)
}

// TextContent returns the concatenated text of all descendants.
func (e *Element) TextContent() string {
	if e.tag == textTag {
		return e.text
	}
	var b strings.Builder
	for _, c := range e.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// InnerHTML serializes the element's children.
func (e *Element) InnerHTML() string {
	var b strings.Builder
	for _, c := range e.children {
		c.render(&b)
	}
	return b.String()
}

// Query returns the first descendant with the given tag, or nil.
func (e *Element) Query(tag string) *Element {
	for _, c := range e.children {
		if c.tag == tag {
			return c
		}
		if found := c.Query(tag); found != nil {
			return found
		}
	}
	return nil
}

// Hover dispatches mouseenter to the element.
func (e *Element) Hover() { e.Dispatch(dom.MouseEnter) }

// Leave dispatches mouseleave to the element.
func (e *Element) Leave() { e.Dispatch(dom.MouseLeave) }

// Click dispatches a bubbling click to the element.
func (e *Element) Click() { e.Dispatch(dom.Click) }

// Dispatch fires an event at the element. Click events bubble through the
// ancestors to the document until a handler stops propagation; mouseenter
// and mouseleave do not bubble.
func (e *Element) Dispatch(typ dom.EventType) *Event {
	evt := &Event{typ: typ, target: e}
	e.ls.fire(evt)
	if typ != dom.Click {
		return evt
	}
	for p := e.parent; p != nil && !evt.stopped; p = p.parent {
		p.ls.fire(evt)
	}
	if !evt.stopped && e.Connected() {
		e.doc.ls.fire(evt)
	}
	return evt
}

func (e *Element) adopt(c *Element) {
	c.parent = e
	e.children = append(e.children, c)
}

func (e *Element) clearChildren() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
}

func (e *Element) render(b *strings.Builder) {
	if e.tag == textTag {
		b.WriteString(html.EscapeString(e.text))
		return
	}
	b.WriteString("<" + e.tag)
	names := make([]string, 0, len(e.attrs))
	for n := range e.attrs {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(b, " %s=%q", n, html.EscapeString(e.attrs[n]))
	}
	b.WriteString(">")
	for _, c := range e.children {
		c.render(b)
	}
	b.WriteString("</" + e.tag + ">")
}

// Event is a dispatched in-memory event.
type Event struct {
	typ     dom.EventType
	target  *Element
	stopped bool
}

var _ dom.Event = (*Event)(nil)

// Type implements dom.Event.
func (e *Event) Type() dom.EventType { return e.typ }

// Target implements dom.Event.
func (e *Event) Target() dom.Element {
	if e.target == nil {
		return nil
	}
	return e.target
}

// StopPropagation implements dom.Event.
func (e *Event) StopPropagation() { e.stopped = true }

// Stopped reports whether a handler stopped propagation.
func (e *Event) Stopped() bool { return e.stopped }
