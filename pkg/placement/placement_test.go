package placement

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   Placement
		wantOK bool
	}{
		{"", Top, true},
		{"top", Top, true},
		{"Bottom-Start", BottomStart, true},
		{"  right ", Right, true},
		{"left-end", LeftEnd, true},
		{"middle", Top, false},
		{"top-center", Top, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Parse(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestAllHasTwelveValidPlacements(t *testing.T) {
	ps := All()
	if len(ps) != 12 {
		t.Fatalf("len(All()) = %d, want 12", len(ps))
	}
	seen := map[Placement]bool{}
	for _, p := range ps {
		if !p.Valid() {
			t.Errorf("%q not valid", p)
		}
		if seen[p] {
			t.Errorf("duplicate %q", p)
		}
		seen[p] = true
	}
}

func TestSideAndAlignment(t *testing.T) {
	if got := RightEnd.Side(); got != SideRight {
		t.Errorf("RightEnd.Side() = %q", got)
	}
	if got := RightEnd.Alignment(); got != AlignEnd {
		t.Errorf("RightEnd.Alignment() = %q", got)
	}
	if got := Bottom.Alignment(); got != AlignCenter {
		t.Errorf("Bottom.Alignment() = %q", got)
	}
	if got := Placement("bogus").Side(); got != SideTop {
		t.Errorf("bogus.Side() = %q, want top", got)
	}
}

func TestOpposite(t *testing.T) {
	tests := map[Placement]Placement{
		Top:         Bottom,
		BottomStart: TopStart,
		LeftEnd:     RightEnd,
		Right:       Left,
	}
	for in, want := range tests {
		if got := in.Opposite(); got != want {
			t.Errorf("%q.Opposite() = %q, want %q", in, got, want)
		}
	}
}

func TestTransformOrigin(t *testing.T) {
	want := map[Side]string{
		SideTop:    "bottom",
		SideBottom: "top",
		SideLeft:   "right",
		SideRight:  "left",
	}
	for _, p := range All() {
		if got := TransformOrigin(p); got != want[p.Side()] {
			t.Errorf("TransformOrigin(%q) = %q, want %q", p, got, want[p.Side()])
		}
	}
	if got := TransformOrigin("sideways"); got != "top" {
		t.Errorf("TransformOrigin(invalid) = %q, want top", got)
	}
}
