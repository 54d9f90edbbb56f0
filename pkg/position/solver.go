package position

import "github.com/vango-dev/popover/pkg/dom"

// Solver computes positions for live elements.
type Solver interface {
	// ComputePosition resolves the floating element's coordinates. done is
	// called exactly once on the UI loop, possibly after ComputePosition
	// has returned.
	ComputePosition(reference, floating dom.Element, opts Options, done func(Result, error))

	// AutoUpdate calls update whenever the geometry of either element may
	// have changed, until cancel is called.
	AutoUpdate(reference, floating dom.Element, update func()) (cancel func())
}

// Local solves positions in-process with Compute, using the document
// viewport as the collision boundary.
type Local struct {
	doc dom.Document
}

// NewLocal creates a Local solver for the given document.
func NewLocal(doc dom.Document) *Local {
	return &Local{doc: doc}
}

// ComputePosition implements Solver. It completes synchronously.
func (l *Local) ComputePosition(reference, floating dom.Element, opts Options, done func(Result, error)) {
	done(Compute(reference.Rect(), floating.Rect(), l.doc.Viewport(), opts), nil)
}

// AutoUpdate implements Solver using the document's layout observer.
func (l *Local) AutoUpdate(reference, floating dom.Element, update func()) func() {
	return l.doc.ObserveLayout([]dom.Element{reference, floating}, update)
}
