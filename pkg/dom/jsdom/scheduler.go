//go:build js && wasm

package jsdom

import (
	"syscall/js"
	"time"

	"github.com/vango-dev/popover/pkg/dom"
)

// Scheduler runs callbacks with window.setTimeout.
type Scheduler struct {
	win js.Value
}

var _ dom.Scheduler = (*Scheduler)(nil)

// NewScheduler creates a setTimeout scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{win: js.Global()}
}

type timer struct {
	win  js.Value
	id   js.Value
	cb   js.Func
	done bool
}

// AfterFunc implements dom.Scheduler.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) dom.Timer {
	t := &timer{win: s.win}
	t.cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		if t.done {
			return nil
		}
		t.done = true
		t.cb.Release()
		fn()
		return nil
	})
	t.id = s.win.Call("setTimeout", t.cb, d.Milliseconds())
	return t
}

// Stop implements dom.Timer.
func (t *timer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.win.Call("clearTimeout", t.id)
	t.cb.Release()
	return true
}
