package position

import (
	"testing"

	"github.com/vango-dev/popover/pkg/dom"
	"github.com/vango-dev/popover/pkg/placement"
)

var viewport = dom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}

func defaultMiddleware() []Middleware {
	return []Middleware{Offset(8), Flip(), Shift(ShiftOptions{Padding: 8})}
}

func TestComputeSides(t *testing.T) {
	ref := dom.Rect{X: 100, Y: 100, Width: 50, Height: 20}
	fl := dom.Rect{Width: 80, Height: 30}

	tests := []struct {
		placement placement.Placement
		wantX     float64
		wantY     float64
	}{
		{placement.Top, 85, 62},
		{placement.Bottom, 85, 128},
		{placement.Right, 158, 95},
		{placement.Left, 12, 95},
		{placement.BottomStart, 100, 128},
		{placement.TopEnd, 70, 62},
		{placement.LeftEnd, 12, 90},
		{placement.RightStart, 158, 100},
	}

	for _, tt := range tests {
		t.Run(string(tt.placement), func(t *testing.T) {
			got := Compute(ref, fl, viewport, Options{Placement: tt.placement, Middleware: defaultMiddleware()})
			if got.X != tt.wantX || got.Y != tt.wantY {
				t.Errorf("coords = (%v, %v), want (%v, %v)", got.X, got.Y, tt.wantX, tt.wantY)
			}
			if got.Placement != tt.placement {
				t.Errorf("Placement = %q, want %q", got.Placement, tt.placement)
			}
		})
	}
}

func TestComputeFlipsWhenSideOverflows(t *testing.T) {
	ref := dom.Rect{X: 100, Y: 10, Width: 50, Height: 20}
	fl := dom.Rect{Width: 80, Height: 30}

	got := Compute(ref, fl, viewport, Options{Placement: placement.Top, Middleware: defaultMiddleware()})
	if got.Placement != placement.Bottom {
		t.Fatalf("Placement = %q, want bottom", got.Placement)
	}
	if got.Y != 38 {
		t.Errorf("Y = %v, want 38", got.Y)
	}
}

func TestComputeFlipKeepsAlignment(t *testing.T) {
	ref := dom.Rect{X: 960, Y: 100, Width: 30, Height: 20}
	fl := dom.Rect{Width: 80, Height: 30}

	got := Compute(ref, fl, viewport, Options{Placement: placement.RightStart, Middleware: defaultMiddleware()})
	if got.Placement != placement.LeftStart {
		t.Errorf("Placement = %q, want left-start", got.Placement)
	}
}

func TestComputeFlipBestFit(t *testing.T) {
	small := dom.Rect{Width: 1000, Height: 50}
	ref := dom.Rect{X: 100, Y: 10, Width: 50, Height: 20}
	fl := dom.Rect{Width: 80, Height: 40}

	// Top overflows by 38, bottom by 28: bottom wins.
	got := Compute(ref, fl, small, Options{Placement: placement.Top, Middleware: defaultMiddleware()})
	if got.Placement != placement.Bottom {
		t.Errorf("Placement = %q, want bottom", got.Placement)
	}

	// Bottom overflows more than top: stays on top after trying both.
	ref = dom.Rect{X: 100, Y: 30, Width: 50, Height: 15}
	got = Compute(ref, fl, small, Options{Placement: placement.Bottom, Middleware: defaultMiddleware()})
	if got.Placement != placement.Top {
		t.Errorf("Placement = %q, want top", got.Placement)
	}
}

func TestComputeShiftKeepsInsideBoundary(t *testing.T) {
	ref := dom.Rect{X: 0, Y: 100, Width: 20, Height: 20}
	fl := dom.Rect{Width: 80, Height: 30}

	got := Compute(ref, fl, viewport, Options{Placement: placement.Top, Middleware: defaultMiddleware()})
	if got.X != 8 {
		t.Errorf("X = %v, want 8", got.X)
	}

	ref = dom.Rect{X: 990, Y: 100, Width: 10, Height: 20}
	got = Compute(ref, fl, viewport, Options{Placement: placement.Bottom, Middleware: defaultMiddleware()})
	if got.X != 1000-8-80 {
		t.Errorf("X = %v, want %v", got.X, 1000-8-80)
	}
}

func TestComputeShiftOversizedPinsToStart(t *testing.T) {
	ref := dom.Rect{X: 400, Y: 400, Width: 20, Height: 20}
	fl := dom.Rect{Width: 2000, Height: 30}

	got := Compute(ref, fl, viewport, Options{Placement: placement.Top, Middleware: defaultMiddleware()})
	if got.X != 8 {
		t.Errorf("X = %v, want 8", got.X)
	}
}

func TestComputeInvalidPlacementFallsBackToTop(t *testing.T) {
	ref := dom.Rect{X: 100, Y: 100, Width: 50, Height: 20}
	fl := dom.Rect{Width: 80, Height: 30}

	got := Compute(ref, fl, viewport, Options{Placement: "diagonal"})
	if got.Placement != placement.Top {
		t.Errorf("Placement = %q, want top", got.Placement)
	}
	if got.X != 85 || got.Y != 70 {
		t.Errorf("coords = (%v, %v), want (85, 70)", got.X, got.Y)
	}
}

func TestComputeResetLimit(t *testing.T) {
	calls := 0
	loop := Middleware{Name: "loop", Fn: func(s *State) Reset {
		calls++
		return Reset{Reset: true}
	}}

	Compute(dom.Rect{}, dom.Rect{}, viewport, Options{Middleware: []Middleware{loop}})
	if calls != maxResets+1 {
		t.Errorf("calls = %d, want %d", calls, maxResets+1)
	}
}

func TestDetectOverflow(t *testing.T) {
	s := &State{
		X:        -10,
		Y:        20,
		Floating: dom.Rect{Width: 100, Height: 50},
		Boundary: dom.Rect{Width: 200, Height: 60},
	}
	o := DetectOverflow(s, 0)
	if o.Left != 10 || o.Top != -20 || o.Right != -110 || o.Bottom != 10 {
		t.Errorf("overflow = %+v", o)
	}
}

func TestMiddlewareParams(t *testing.T) {
	if p := Offset(8).Param; p != 8.0 {
		t.Errorf("Offset param = %v, want 8", p)
	}
	if p := Flip().Param; p != nil {
		t.Errorf("Flip param = %v, want nil", p)
	}
	shift, ok := Shift(ShiftOptions{Padding: 8}).Param.(map[string]any)
	if !ok || shift["padding"] != 8.0 {
		t.Errorf("Shift param = %v, want padding 8", shift)
	}
}
