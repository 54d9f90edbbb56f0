package dev

import (
	"github.com/a-h/templ"

	"github.com/vango-dev/popover/internal/config"
	"github.com/vango-dev/popover/pkg/hooks"
)

// ConfigElementID is the id of the script element holding the directive
// options as JSON.
const ConfigElementID = config.ElementID

// PageData is the input of the demo page.
type PageData struct {
	Title string

	// ConfigJSON is the popover config section, embedded for the client.
	ConfigJSON string

	// HotReload injects the reload client.
	HotReload bool
}

// Demo is one trigger on the demo page.
type Demo struct {
	Label  string
	Config hooks.Config
}

// Demos are the triggers rendered on the demo page. The "clock" source is
// registered by the wasm client.
var Demos = []Demo{
	{Label: "Hover (top)", Config: hooks.Config{Content: "Tooltip on top"}},
	{Label: "Hover (right)", Config: hooks.Config{Content: "Copy to clipboard", Placement: "right"}},
	{Label: "Hover (bottom-start)", Config: hooks.Config{Content: "Aligned to the start edge", Placement: "bottom-start"}},
	{Label: "Rich content", Config: hooks.Config{Content: `See the <a href="https://vango.dev/docs">docs</a>`, HTML: true}},
	{Label: "Click to toggle", Config: hooks.Config{Content: "<b>Hi</b> there", HTML: true, Click: true, Placement: "bottom"}},
	{Label: "Live content", Config: hooks.Config{Source: "clock", Placement: "left"}},
}

// Page renders the demo page.
func Page(data PageData) templ.Component {
	demos := make([]templ.Component, 0, len(Demos))
	for _, demo := range Demos {
		demos = append(demos, trigger(demo))
	}
	return templ.Join(
		templ.Raw("<!DOCTYPE html>"),
		element("html", `lang="en"`,
			element("head", "",
				templ.Raw(`<meta charset="utf-8">`),
				element("title", "", text(data.Title)),
				templ.Raw(pageStyle),
			),
			element("body", "",
				element("main", "",
					element("h1", "", text(data.Title)),
					element("div", `class="demos"`, demos...),
				),
				clientScripts(data),
			),
		),
	)
}

// element wraps children in a tag. attrs must already be escaped.
func element(tag, attrs string, children ...templ.Component) templ.Component {
	open := "<" + tag
	if attrs != "" {
		open += " " + attrs
	}
	return templ.Join(
		templ.Raw(open+">"),
		templ.Join(children...),
		templ.Raw("</"+tag+">"),
	)
}

func text(s string) templ.Component {
	return templ.Raw(templ.EscapeString(s))
}

func trigger(demo Demo) templ.Component {
	attr := hooks.Popover(demo.Config)
	return element("button", `type="button" class="trigger" `+attr.String(), text(demo.Label))
}

func clientScripts(data PageData) templ.Component {
	// json.Marshal escapes <, > and &, so the config cannot close the
	// script element.
	scripts := []templ.Component{
		element("script", `id="`+ConfigElementID+`" type="application/json"`, templ.Raw(data.ConfigJSON)),
		element("script", `src="/`+WasmExecFileName+`"`),
		element("script", "", templ.Raw(`
const go = new Go();
WebAssembly.instantiateStreaming(fetch("/`+WasmFileName+`"), go.importObject)
    .then((result) => go.run(result.instance))
    .catch((err) => console.error("[popover] failed to load client", err));
`)),
	}
	if data.HotReload {
		scripts = append(scripts, templ.Raw(DevClientScript))
	}
	return templ.Join(scripts...)
}

const pageStyle = `<style>
body { font-family: system-ui, sans-serif; margin: 0; background: #f3f4f6; color: #111827; }
main { max-width: 720px; margin: 80px auto; padding: 0 24px; }
.demos { display: flex; flex-wrap: wrap; gap: 16px; }
.trigger { padding: 10px 16px; border-radius: 8px; border: 1px solid #d1d5db; background: #fff; cursor: pointer; }
.v-popover a { color: #93c5fd; }
</style>`
