package popover

import (
	"sort"
	"strconv"

	"github.com/vango-dev/popover/pkg/dom"
)

// applyOverlayStyle sets the initial inline style of a floating element:
// cosmetic properties first, then the layout, visibility and transition
// properties the directive relies on.
func applyOverlayStyle(el dom.Element, opts Options, interactive bool) {
	props := make([]string, 0, len(opts.Style))
	for p := range opts.Style {
		props = append(props, p)
	}
	sort.Strings(props)
	for _, p := range props {
		el.SetStyle(p, opts.Style[p])
	}

	fade := seconds(opts.FadeDuration.Seconds())

	el.SetStyle("position", "absolute")
	el.SetStyle("top", "0px")
	el.SetStyle("left", "0px")
	el.SetStyle("z-index", strconv.Itoa(opts.ZIndex))
	el.SetStyle("pointer-events", pointerEvents(interactive))
	el.SetStyle("display", "none")
	el.SetStyle("opacity", "0")
	el.SetStyle("transform", scale(opts.InitialScale))
	el.SetStyle("transition", "opacity "+fade+" ease, transform "+fade+" ease")
}

func pointerEvents(interactive bool) string {
	if interactive {
		return "auto"
	}
	return "none"
}

func scale(f float64) string {
	return "scale(" + strconv.FormatFloat(f, 'f', -1, 64) + ")"
}

func seconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64) + "s"
}
