package hooks

import (
	stderrors "errors"
	"testing"

	"github.com/vango-dev/popover/internal/errors"
)

func TestPopoverAttr(t *testing.T) {
	attr := Popover(Config{Content: "Copy", Placement: "right"})

	if attr.Key != "v-hook" {
		t.Errorf("Key = %q, want v-hook", attr.Key)
	}
	want := `Popover:{"content":"Copy","placement":"right"}`
	if attr.Value != want {
		t.Errorf("Value = %q, want %q", attr.Value, want)
	}
	if got := attr.String(); got != `v-hook="Popover:{&#34;content&#34;:&#34;Copy&#34;,&#34;placement&#34;:&#34;right&#34;}"` {
		t.Errorf("String() = %s", got)
	}
}

func TestHookEmptyConfig(t *testing.T) {
	attr := Hook("Empty", nil)
	if attr.Value != "Empty:null" {
		t.Errorf("Value = %q", attr.Value)
	}
}

func TestParseRoundTrip(t *testing.T) {
	attr := Popover(Config{Content: "<b>Hi</b>", HTML: true, Click: true, Placement: "bottom-end"})

	b, err := Parse(attr.Value, nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if b.Arg != "bottom-end" || !b.Modifiers.HTML || !b.Modifiers.Click {
		t.Errorf("binding = %+v", b)
	}
	if b.Value.IsFunc() {
		t.Error("content should be a text value")
	}
}

func TestParseSource(t *testing.T) {
	calls := 0
	sources := Sources{"clock": func() string {
		calls++
		return "<time>now</time>"
	}}

	b, err := Parse(`Popover:{"source":"clock","content":"ignored"}`, sources)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !b.Value.IsFunc() {
		t.Fatal("expected a function value")
	}
	if calls != 0 {
		t.Error("source evaluated during parse")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		value string
		code  string
	}{
		{"no separator", "Popover", "P010"},
		{"empty name", `:{"content":"x"}`, "P010"},
		{"bad json", `Popover:{"content":`, "P010"},
		{"wrong type", `Popover:{"click":"yes"}`, "P010"},
		{"other hook", `Sortable:{"group":"a"}`, "P011"},
		{"missing source", `Popover:{"source":"nope"}`, "P012"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.value, Sources{})
			if !stderrors.Is(err, errors.New(tt.code)) {
				t.Errorf("Parse(%q) error = %v, want %s", tt.value, err, tt.code)
			}
		})
	}
}

func TestParseEmptyConfig(t *testing.T) {
	b, err := Parse("Popover:", nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if b.Arg != "" || b.Modifiers.HTML || b.Modifiers.Click {
		t.Errorf("binding = %+v", b)
	}
}

func TestIsPopover(t *testing.T) {
	for value, want := range map[string]bool{
		`Popover:{}`:  true,
		`Popover`:     false,
		`Sortable:{}`: false,
		``:            false,
	} {
		if got := IsPopover(value); got != want {
			t.Errorf("IsPopover(%q) = %v, want %v", value, got, want)
		}
	}
}
