//go:build js && wasm

package jsdom

import (
	"fmt"
	"sync"
	"syscall/js"

	"github.com/vango-dev/popover/pkg/dom"
	"github.com/vango-dev/popover/pkg/placement"
	"github.com/vango-dev/popover/pkg/position"
)

// FloatingUI is a position.Solver backed by the Floating UI browser build.
// Middleware are looked up on the library by name and called with their
// Param.
type FloatingUI struct {
	lib js.Value
}

var _ position.Solver = (*FloatingUI)(nil)

// NewFloatingUI returns a solver for window.FloatingUIDOM, or false when
// the page did not load it.
func NewFloatingUI() (*FloatingUI, bool) {
	lib := js.Global().Get("FloatingUIDOM")
	if !lib.Truthy() || lib.Get("computePosition").Type() != js.TypeFunction {
		return nil, false
	}
	return &FloatingUI{lib: lib}, true
}

// ComputePosition implements position.Solver. done runs when the
// library's promise settles.
func (f *FloatingUI) ComputePosition(reference, floating dom.Element, opts position.Options, done func(position.Result, error)) {
	ref, ok := reference.(*Element)
	fl, ok2 := floating.(*Element)
	if !ok || !ok2 {
		done(position.Result{}, fmt.Errorf("jsdom: FloatingUI needs jsdom elements"))
		return
	}

	middleware := make([]any, 0, len(opts.Middleware))
	for _, mw := range opts.Middleware {
		factory := f.lib.Get(mw.Name)
		if factory.Type() != js.TypeFunction {
			done(position.Result{}, fmt.Errorf("jsdom: Floating UI has no %q middleware", mw.Name))
			return
		}
		if mw.Param != nil {
			middleware = append(middleware, factory.Invoke(mw.Param))
		} else {
			middleware = append(middleware, factory.Invoke())
		}
	}

	var resolve, reject js.Func
	release := func() {
		resolve.Release()
		reject.Release()
	}
	resolve = js.FuncOf(func(this js.Value, args []js.Value) any {
		release()
		r := args[0]
		done(position.Result{
			X:         r.Get("x").Float(),
			Y:         r.Get("y").Float(),
			Placement: placement.Placement(r.Get("placement").String()),
		}, nil)
		return nil
	})
	reject = js.FuncOf(func(this js.Value, args []js.Value) any {
		release()
		done(position.Result{}, fmt.Errorf("jsdom: computePosition: %s", args[0].Call("toString").String()))
		return nil
	})

	f.lib.Call("computePosition", ref.v, fl.v, map[string]any{
		"placement":  opts.Placement.String(),
		"middleware": middleware,
	}).Call("then", resolve, reject)
}

// AutoUpdate implements position.Solver with the library's autoUpdate.
func (f *FloatingUI) AutoUpdate(reference, floating dom.Element, update func()) func() {
	ref, ok := reference.(*Element)
	fl, ok2 := floating.(*Element)
	if !ok || !ok2 {
		return func() {}
	}

	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		update()
		return nil
	})
	cleanup := f.lib.Call("autoUpdate", ref.v, fl.v, cb)

	var once sync.Once
	return func() {
		once.Do(func() {
			cleanup.Invoke()
			cb.Release()
		})
	}
}
