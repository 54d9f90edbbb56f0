// Package position computes where a floating element should sit next to
// its reference element.
//
// Compute is a pure function over rectangles. It places the floating
// element on the requested side, then runs a middleware pipeline that can
// nudge the coordinates or restart the pipeline with a different placement:
//
//	res := position.Compute(ref, floating, viewport, position.Options{
//	    Placement: placement.Right,
//	    Middleware: []position.Middleware{
//	        position.Offset(8),
//	        position.Flip(),
//	        position.Shift(position.ShiftOptions{Padding: 8}),
//	    },
//	})
//
// The resolved res.Placement can differ from the requested one when Flip
// moves the element to the opposite side to avoid overflowing the boundary.
//
// Solver abstracts the computation over live DOM elements so the directive
// can use either the in-process Local solver or a browser-side library.
package position
