package popover

import (
	"testing"

	"github.com/vango-dev/popover/pkg/dom/domtest"
	"github.com/vango-dev/popover/pkg/placement"
)

func TestBindingMode(t *testing.T) {
	tests := []struct {
		mods Modifiers
		want Mode
	}{
		{Modifiers{}, Mode{Interaction: Hover}},
		{Modifiers{HTML: true}, Mode{Interaction: Hover, Interactive: true}},
		{Modifiers{Click: true}, Mode{Interaction: ClickToggle, Interactive: true}},
		{Modifiers{Click: true, HTML: true}, Mode{Interaction: ClickToggle, Interactive: true}},
	}
	for _, tt := range tests {
		if got := (Binding{Modifiers: tt.mods}).Mode(); got != tt.want {
			t.Errorf("Mode(%+v) = %+v, want %+v", tt.mods, got, tt.want)
		}
	}
}

func TestBindingPlacement(t *testing.T) {
	tests := []struct {
		arg    string
		want   placement.Placement
		wantOK bool
	}{
		{"", placement.Top, true},
		{"bottom-end", placement.BottomEnd, true},
		{"left", placement.Left, true},
		{"middle", placement.Top, false},
	}
	for _, tt := range tests {
		got, ok := Binding{Arg: tt.arg}.Placement()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Placement(%q) = %q, %v; want %q, %v", tt.arg, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRender(t *testing.T) {
	doc := domtest.NewDocument()

	el := doc.NewElement("div")
	Binding{Value: Text(" <em>hi</em> ")}.render(el)
	if el.Query("em") != nil || el.TextContent() != "<em>hi</em>" {
		t.Errorf("text render = %q", el.InnerHTML())
	}

	el = doc.NewElement("div")
	Binding{Value: Text("<em>hi</em>"), Modifiers: Modifiers{HTML: true}}.render(el)
	if el.Query("em") == nil {
		t.Errorf("html render = %q", el.InnerHTML())
	}

	el = doc.NewElement("div")
	el.SetText("stale")
	Binding{}.render(el)
	if el.TextContent() != "" {
		t.Errorf("absent render = %q", el.TextContent())
	}
}

func TestValue(t *testing.T) {
	if Text("x").IsFunc() {
		t.Error("Text value reported as func")
	}
	if !Func(func() string { return "" }).IsFunc() {
		t.Error("Func value not reported as func")
	}
	if Hover.String() != "hover" || ClickToggle.String() != "click" || Interaction(7).String() != "unknown" {
		t.Error("unexpected Interaction strings")
	}
}
