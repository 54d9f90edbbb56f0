// Package dev provides the development server for popover projects.
//
// This package implements:
//   - Polling file watching with doublestar ignore patterns
//   - WebAssembly compilation of the client (GOOS=js GOARCH=wasm)
//   - A demo page exercising every popover mode
//   - WebSocket-based browser refresh and a build error overlay
//
// # Usage
//
//	srv := dev.NewServer(dev.ServerOptions{Config: cfg})
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Routes
//
//	GET /                  demo page
//	GET /main.wasm         compiled client
//	GET /wasm_exec.js      Go WebAssembly support script
//	GET /_popover/config   popover options as JSON
//	GET /_popover/reload   hot reload WebSocket (server.hotReload)
//	GET /metrics           Prometheus metrics
//
// # Hot Reload Protocol
//
// Messages are JSON-encoded:
//
//	{"type": "reload"}                // Triggers full page reload
//	{"type": "error", "error": "..."} // Shows error overlay
//	{"type": "clear"}                 // Clears error overlay
package dev
