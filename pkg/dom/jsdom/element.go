//go:build js && wasm

package jsdom

import (
	"strconv"
	"sync"
	"syscall/js"

	"github.com/vango-dev/popover/pkg/dom"
)

// keyProp is the expando property holding an element's key.
const keyProp = "__popoverKey"

var nextKey int

// Element wraps a browser element.
type Element struct {
	v   js.Value
	key string
}

var _ dom.Element = (*Element)(nil)

// Wrap returns a handle for a browser element.
func Wrap(v js.Value) *Element {
	k := v.Get(keyProp)
	if k.Type() != js.TypeString {
		nextKey++
		k = js.ValueOf("js-" + strconv.Itoa(nextKey))
		v.Set(keyProp, k)
	}
	return &Element{v: v, key: k.String()}
}

// Value returns the underlying JavaScript object.
func (e *Element) Value() js.Value { return e.v }

// Key implements dom.Element.
func (e *Element) Key() string { return e.key }

// Attr implements dom.Element.
func (e *Element) Attr(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

// SetAttr implements dom.Element.
func (e *Element) SetAttr(name, value string) {
	e.v.Call("setAttribute", name, value)
}

// SetStyle implements dom.Element.
func (e *Element) SetStyle(property, value string) {
	e.v.Get("style").Call("setProperty", property, value)
}

// Style implements dom.Element.
func (e *Element) Style(property string) string {
	return e.v.Get("style").Call("getPropertyValue", property).String()
}

// SetText implements dom.Element.
func (e *Element) SetText(text string) { e.v.Set("textContent", text) }

// SetHTML implements dom.Element.
func (e *Element) SetHTML(markup string) { e.v.Set("innerHTML", markup) }

// AppendChild implements dom.Element.
func (e *Element) AppendChild(child dom.Element) {
	if c, ok := child.(*Element); ok {
		e.v.Call("appendChild", c.v)
	}
}

// Remove implements dom.Element.
func (e *Element) Remove() { e.v.Call("remove") }

// Contains implements dom.Element.
func (e *Element) Contains(other dom.Element) bool {
	o, ok := other.(*Element)
	if !ok || o == nil {
		return false
	}
	return e.v.Call("contains", o.v).Bool()
}

// Rect implements dom.Element. The origin comes from the client rectangle
// and the size from offsetWidth and offsetHeight, so a popover measured
// while still scaled down gets its final size.
func (e *Element) Rect() dom.Rect {
	r := e.v.Call("getBoundingClientRect")
	win := js.Global()
	client := dom.Rect{
		X:      r.Get("left").Float(),
		Y:      r.Get("top").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}
	return documentRect(client,
		win.Get("scrollX").Float(), win.Get("scrollY").Float(),
		floatProp(e.v, "offsetWidth"), floatProp(e.v, "offsetHeight"))
}

// floatProp reads a numeric property, or 0 when v does not have it (SVG
// elements have no offset size).
func floatProp(v js.Value, name string) float64 {
	p := v.Get(name)
	if p.Type() != js.TypeNumber {
		return 0
	}
	return p.Float()
}

// ForceLayout implements dom.Element by reading offsetHeight.
func (e *Element) ForceLayout() { e.v.Get("offsetHeight") }

// AddEventListener implements dom.Element.
func (e *Element) AddEventListener(typ dom.EventType, h dom.Handler) dom.Unlisten {
	return listen(e.v, string(typ), nil, func(args []js.Value) { h(&Event{v: args[0]}) })
}

// listen registers fn for typ on target. options is passed to both
// addEventListener and removeEventListener when non-nil.
func listen(target js.Value, typ string, options map[string]any, fn func(args []js.Value)) dom.Unlisten {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn(args)
		return nil
	})
	if options != nil {
		target.Call("addEventListener", typ, cb, options)
	} else {
		target.Call("addEventListener", typ, cb)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if options != nil {
				target.Call("removeEventListener", typ, cb, options)
			} else {
				target.Call("removeEventListener", typ, cb)
			}
			cb.Release()
		})
	}
}

// Event wraps a browser event.
type Event struct {
	v js.Value
}

var _ dom.Event = (*Event)(nil)

// Type implements dom.Event.
func (e *Event) Type() dom.EventType { return dom.EventType(e.v.Get("type").String()) }

// Target implements dom.Event. Text node targets resolve to their parent
// element.
func (e *Event) Target() dom.Element {
	t := e.v.Get("target")
	for t.Truthy() && t.Get("nodeType").Int() != 1 {
		t = t.Get("parentNode")
	}
	if !t.Truthy() {
		return nil
	}
	return Wrap(t)
}

// StopPropagation implements dom.Event.
func (e *Event) StopPropagation() { e.v.Call("stopPropagation") }
