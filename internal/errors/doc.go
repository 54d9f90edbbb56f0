// Package errors provides structured, actionable error messages for the
// popover directive and its tooling.
//
// Each error carries a code from a registry, a category, a short message,
// an optional detail and fix hint, and a documentation link:
//
//	err := errors.New("P021").
//	    WithDetail("popover.fadeMs must not be negative").
//	    WithSuggestion(`Set "fadeMs" to 0 to disable the fade`)
//
//	fmt.Print(err.Format())
//	// ERROR P021: Invalid configuration
//	//
//	//   popover.fadeMs must not be negative
//	//
//	//   Hint: Set "fadeMs" to 0 to disable the fade
//	//
//	//   Learn more: https://vango.dev/docs/popover/errors/P021
//
// # Categories
//
//   - directive: misuse of Attach, Update and Detach
//   - hook: malformed v-hook attributes
//   - config: unreadable or invalid popover.json / popover.yaml
//   - build: wasm compilation failures
//   - server: dev server failures
//
// PopoverError implements Unwrap, so errors.Is and errors.As from the
// standard library see through it.
package errors
