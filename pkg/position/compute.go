package position

import (
	"github.com/vango-dev/popover/pkg/dom"
	"github.com/vango-dev/popover/pkg/placement"
)

// maxResets bounds how often middleware may restart the pipeline.
const maxResets = 50

// Options configures a computation.
type Options struct {
	Placement  placement.Placement
	Middleware []Middleware
}

// Result is the outcome of a computation.
type Result struct {
	X         float64
	Y         float64
	Placement placement.Placement
}

// State is the mutable state middleware operates on.
type State struct {
	X float64
	Y float64

	// Placement is the placement currently being tried.
	Placement placement.Placement

	// InitialPlacement is the placement that was requested.
	InitialPlacement placement.Placement

	Reference dom.Rect
	Floating  dom.Rect
	Boundary  dom.Rect

	// Data is scratch space that survives pipeline resets, keyed by
	// middleware name.
	Data map[string]any
}

// Reset asks Compute to restart the pipeline. A non-empty Placement
// replaces the current one before coordinates are recomputed.
type Reset struct {
	Reset     bool
	Placement placement.Placement
}

// Middleware adjusts the state in a pipeline step.
type Middleware struct {
	Name string
	Fn   func(s *State) Reset

	// Param is the middleware's argument in the form Floating UI expects,
	// for solvers that run the pipeline in the browser. Nil means no
	// argument.
	Param any
}

// Compute positions a floating rectangle of the given size next to the
// reference rectangle. Only the Width and Height of floating are used.
// Invalid placements are treated as placement.Default.
func Compute(reference, floating, boundary dom.Rect, opts Options) Result {
	p := opts.Placement
	if !p.Valid() {
		p = placement.Default
	}

	s := &State{
		Placement:        p,
		InitialPlacement: p,
		Reference:        reference,
		Floating:         floating,
		Boundary:         boundary,
		Data:             make(map[string]any),
	}
	s.X, s.Y = coords(reference, floating, p)

	resets := 0
	for i := 0; i < len(opts.Middleware); i++ {
		mw := opts.Middleware[i]
		if mw.Fn == nil {
			continue
		}
		r := mw.Fn(s)
		if !r.Reset || resets >= maxResets {
			continue
		}
		resets++
		if r.Placement != "" {
			s.Placement = r.Placement
		}
		s.X, s.Y = coords(reference, floating, s.Placement)
		i = -1
	}

	return Result{X: s.X, Y: s.Y, Placement: s.Placement}
}

// coords returns the top-left corner of the floating element flush against
// the reference on the placement's side.
func coords(ref, fl dom.Rect, p placement.Placement) (x, y float64) {
	switch p.Side() {
	case placement.SideTop:
		x, y = ref.CenterX()-fl.Width/2, ref.Top()-fl.Height
	case placement.SideBottom:
		x, y = ref.CenterX()-fl.Width/2, ref.Bottom()
	case placement.SideLeft:
		x, y = ref.Left()-fl.Width, ref.CenterY()-fl.Height/2
	case placement.SideRight:
		x, y = ref.Right(), ref.CenterY()-fl.Height/2
	}

	vertical := p.Vertical()
	switch p.Alignment() {
	case placement.AlignStart:
		if vertical {
			x = ref.Left()
		} else {
			y = ref.Top()
		}
	case placement.AlignEnd:
		if vertical {
			x = ref.Right() - fl.Width
		} else {
			y = ref.Bottom() - fl.Height
		}
	}
	return x, y
}

// Overflow is how far each edge of the floating element extends past the
// boundary. Positive values overflow, negative values are free space.
type Overflow struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Side returns the overflow on one side.
func (o Overflow) Side(side placement.Side) float64 {
	switch side {
	case placement.SideTop:
		return o.Top
	case placement.SideRight:
		return o.Right
	case placement.SideBottom:
		return o.Bottom
	case placement.SideLeft:
		return o.Left
	}
	return 0
}

// DetectOverflow measures the current state against its boundary shrunk by
// padding.
func DetectOverflow(s *State, padding float64) Overflow {
	b := s.Boundary.Inset(padding)
	return Overflow{
		Top:    b.Top() - s.Y,
		Right:  s.X + s.Floating.Width - b.Right(),
		Bottom: s.Y + s.Floating.Height - b.Bottom(),
		Left:   b.Left() - s.X,
	}
}
