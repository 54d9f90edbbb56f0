package position

import (
	"math"

	"github.com/vango-dev/popover/pkg/placement"
)

// Offset moves the floating element away from the reference along the
// placement's main axis.
func Offset(distance float64) Middleware {
	return Middleware{
		Name: "offset",
		Fn: func(s *State) Reset {
			switch s.Placement.Side() {
			case placement.SideTop:
				s.Y -= distance
			case placement.SideBottom:
				s.Y += distance
			case placement.SideLeft:
				s.X -= distance
			case placement.SideRight:
				s.X += distance
			}
			return Reset{}
		},
		Param: distance,
	}
}

type flipAttempt struct {
	placement placement.Placement
	overflow  float64
}

type flipData struct {
	index    int
	attempts []flipAttempt
}

// Flip moves the floating element to the opposite side when the requested
// side overflows the boundary. When both sides overflow it keeps whichever
// overflows least.
func Flip() Middleware {
	return Middleware{
		Name: "flip",
		Fn: func(s *State) Reset {
			candidates := []placement.Placement{s.InitialPlacement, s.InitialPlacement.Opposite()}

			data, _ := s.Data["flip"].(*flipData)
			if data == nil {
				data = &flipData{}
				s.Data["flip"] = data
			}

			over := DetectOverflow(s, 0).Side(s.Placement.Side())
			data.attempts = append(data.attempts, flipAttempt{placement: s.Placement, overflow: over})
			if over <= 0 {
				return Reset{}
			}

			if next := data.index + 1; next < len(candidates) {
				data.index = next
				return Reset{Reset: true, Placement: candidates[next]}
			}

			best := data.attempts[0]
			for _, a := range data.attempts[1:] {
				if a.overflow < best.overflow {
					best = a
				}
			}
			if best.placement != s.Placement {
				return Reset{Reset: true, Placement: best.placement}
			}
			return Reset{}
		},
	}
}

// ShiftOptions configures Shift.
type ShiftOptions struct {
	// Padding is the minimum distance kept from the boundary edges.
	Padding float64
}

// Shift slides the floating element along its side so it stays inside the
// boundary. If the element is larger than the boundary it is pinned to the
// start edge.
func Shift(opts ShiftOptions) Middleware {
	return Middleware{
		Name: "shift",
		Fn: func(s *State) Reset {
			b := s.Boundary.Inset(opts.Padding)
			if s.Placement.Vertical() {
				s.X = clamp(s.X, b.Left(), b.Right()-s.Floating.Width)
			} else {
				s.Y = clamp(s.Y, b.Top(), b.Bottom()-s.Floating.Height)
			}
			return Reset{}
		},
		Param: map[string]any{"padding": opts.Padding},
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
