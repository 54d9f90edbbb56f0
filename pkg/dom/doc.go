// Package dom defines the slice of the browser DOM the popover directive
// depends on.
//
// The interfaces are deliberately narrow: element creation under the
// document body, inline style mutation, text and markup content, event
// listeners that return their own removal function, bounding rectangles,
// layout observation and timers. Two implementations ship with the module:
//
//   - jsdom: the syscall/js driver used by the wasm client
//   - domtest: an in-memory document with a manual clock for tests
//
// # Listener Removal
//
// AddEventListener returns an Unlisten function instead of requiring the
// caller to keep the handler around:
//
//	off := el.AddEventListener(dom.MouseEnter, func(e dom.Event) { ... })
//	defer off()
//
// # Threading
//
// All methods are expected to be called from the UI event loop. Solvers
// and schedulers deliver their callbacks on the same loop.
package dom
