package jsdom

import "github.com/vango-dev/popover/pkg/dom"

// documentRect converts a client rectangle into document coordinates. A
// positive layout size replaces the client size, which is scaled by any
// CSS transform on the element.
func documentRect(client dom.Rect, scrollX, scrollY, layoutWidth, layoutHeight float64) dom.Rect {
	r := dom.Rect{
		X:      client.X + scrollX,
		Y:      client.Y + scrollY,
		Width:  client.Width,
		Height: client.Height,
	}
	if layoutWidth > 0 || layoutHeight > 0 {
		r.Width = layoutWidth
		r.Height = layoutHeight
	}
	return r
}
