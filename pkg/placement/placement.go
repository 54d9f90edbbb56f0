// Package placement names the twelve positions a floating element can take
// relative to its reference element.
//
// A placement is a side (top, right, bottom, left) with an optional
// alignment along that side ("-start" or "-end"):
//
//	placement.Parse("bottom-start") // BottomStart, true
//	placement.Parse("")             // Top, true
//	placement.Parse("middle")       // Top, false
package placement

import "strings"

// Placement is a side with an optional alignment, e.g. "top" or "left-end".
type Placement string

// The twelve standard placements.
const (
	Top         Placement = "top"
	TopStart    Placement = "top-start"
	TopEnd      Placement = "top-end"
	Right       Placement = "right"
	RightStart  Placement = "right-start"
	RightEnd    Placement = "right-end"
	Bottom      Placement = "bottom"
	BottomStart Placement = "bottom-start"
	BottomEnd   Placement = "bottom-end"
	Left        Placement = "left"
	LeftStart   Placement = "left-start"
	LeftEnd     Placement = "left-end"
)

// Default is used when no placement is requested.
const Default = Top

// Side is the edge of the reference element the floating element sits on.
type Side string

const (
	SideTop    Side = "top"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
)

// Alignment positions the floating element along its side.
type Alignment string

const (
	AlignCenter Alignment = ""
	AlignStart  Alignment = "start"
	AlignEnd    Alignment = "end"
)

var all = []Placement{
	Top, TopStart, TopEnd,
	Right, RightStart, RightEnd,
	Bottom, BottomStart, BottomEnd,
	Left, LeftStart, LeftEnd,
}

// All returns the twelve standard placements.
func All() []Placement {
	out := make([]Placement, len(all))
	copy(out, all)
	return out
}

// Parse converts a directive argument into a placement. An empty argument
// yields Default. Unrecognized arguments also yield Default, with ok false.
func Parse(s string) (Placement, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Default, true
	}
	p := Placement(s)
	if p.Valid() {
		return p, true
	}
	return Default, false
}

// Valid reports whether p is one of the twelve standard placements.
func (p Placement) Valid() bool {
	for _, q := range all {
		if p == q {
			return true
		}
	}
	return false
}

// Side returns the side component. Invalid placements report SideTop.
func (p Placement) Side() Side {
	side, _, _ := strings.Cut(string(p), "-")
	switch Side(side) {
	case SideTop, SideRight, SideBottom, SideLeft:
		return Side(side)
	}
	return SideTop
}

// Alignment returns the alignment component.
func (p Placement) Alignment() Alignment {
	_, align, _ := strings.Cut(string(p), "-")
	switch Alignment(align) {
	case AlignStart, AlignEnd:
		return Alignment(align)
	}
	return AlignCenter
}

// Opposite returns the placement on the other side with the same alignment.
func (p Placement) Opposite() Placement {
	return Compose(p.Side().Opposite(), p.Alignment())
}

// Vertical reports whether the side is top or bottom.
func (p Placement) Vertical() bool {
	return p.Side().Vertical()
}

func (p Placement) String() string { return string(p) }

// Compose builds a placement from a side and an alignment.
func Compose(side Side, align Alignment) Placement {
	if align == AlignCenter {
		return Placement(side)
	}
	return Placement(string(side) + "-" + string(align))
}

// Opposite returns the facing side.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	}
	return s
}

// Vertical reports whether the side is top or bottom.
func (s Side) Vertical() bool {
	return s == SideTop || s == SideBottom
}

// TransformOrigin returns the CSS transform-origin that anchors a scale
// animation toward the reference element for a resolved placement. Values
// that are not a standard placement default to "top".
func TransformOrigin(resolved Placement) string {
	if !resolved.Valid() {
		return "top"
	}
	return string(resolved.Side().Opposite())
}
