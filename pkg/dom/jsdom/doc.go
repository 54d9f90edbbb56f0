//go:build js && wasm

// Package jsdom implements the dom interfaces on the browser DOM through
// syscall/js.
//
// Element handles are cheap wrappers; wrapping the same node twice yields
// handles with the same Key. Listener, observer and timer callbacks are
// js.Funcs released when the returned stop function runs or the timer
// fires.
//
//	doc := jsdom.New(jsdom.WithObservedAttributes(hooks.AttrName))
//	d := popover.New(doc, jsdom.NewScheduler())
//
// FloatingUI delegates positioning to window.FloatingUIDOM when the page
// loads the Floating UI browser build.
package jsdom
