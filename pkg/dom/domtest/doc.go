// Package domtest provides an in-memory dom.Document and a manual clock for
// testing code written against package dom.
//
// # Quick Start
//
//	doc := domtest.NewDocument()
//	clock := domtest.NewClock()
//
//	btn := doc.CreateElement("button").(*domtest.Element)
//	doc.Body().AppendChild(btn)
//	btn.SetRect(dom.Rect{X: 100, Y: 100, Width: 40, Height: 20})
//
//	btn.Hover()                    // dispatches mouseenter
//	clock.Advance(200 * time.Millisecond)
//
// # Markup
//
// SetHTML parses markup with golang.org/x/net/html so tests can inspect the
// resulting tree with Query, while SetText keeps the string as a single
// text node:
//
//	el.SetHTML(`<a href="/x">go</a>`)
//	el.Query("a") // *Element for the anchor
//
// # Observers
//
// Layout observers run when Reflow is called. Mutation observers are queued
// like the browser's and run on FlushMutations.
package domtest
