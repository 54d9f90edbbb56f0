// Package hooks encodes and decodes popover hook attributes.
//
// A popover is declared in markup with a v-hook attribute whose value is
// the hook name, a colon, and a JSON config:
//
//	<button v-hook='Popover:{"content":"Copy","placement":"right"}'>
//
// Server code builds the attribute with Popover; the client runtime
// decodes it back into a popover.Binding with Parse. Function content
// cannot travel through markup, so it is referenced by name and resolved
// against a Sources table registered on the client.
package hooks
