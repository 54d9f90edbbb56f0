// Package popover attaches popovers and tooltips to DOM elements.
//
// A Directive manages, for every attached trigger element, a companion
// floating element: it shows it on hover or click, positions it next to the
// trigger with a collision-aware solver, keeps it aligned while visible,
// and fades it out and removes it afterwards.
//
// Usage:
//
//	d := popover.New(doc, scheduler)
//
//	d.Attach(button, popover.Binding{
//	    Value: popover.Text("Copy to clipboard"),
//	    Arg:   "right",
//	})
//
//	d.Attach(help, popover.Binding{
//	    Value:     popover.Text(`See <a href="/docs">the docs</a>`),
//	    Modifiers: popover.Modifiers{HTML: true, Click: true},
//	})
//
//	// Later, when the host re-renders or removes the elements:
//	d.Update(button, popover.Binding{Value: popover.Text("Copied!"), Arg: "right"})
//	d.Detach(help)
//
// # Interaction
//
// Bindings without the Click modifier use Hover interaction: pointer enter
// shows, pointer leave hides. With Click, the trigger toggles the popover,
// clicks anywhere else close it, and moving the pointer off both the
// trigger and the popover closes it after Options.AutoCloseDelay.
//
// Popovers with Click or HTML are interactive: they accept pointer input
// (links inside markup stay clickable) and stay open while the pointer is
// over them.
//
// # Content
//
// Func values always render as markup. Text values render as markup under
// the HTML modifier and as trimmed, escaped text otherwise.
//
// # Threading
//
// A Directive is not safe for concurrent use. All methods, event handlers,
// timers and solver callbacks run on the UI loop.
package popover
