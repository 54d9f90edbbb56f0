package hooks

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/vango-dev/popover"
	"github.com/vango-dev/popover/internal/errors"
)

const (
	// AttrName is the attribute carrying hook declarations.
	AttrName = "v-hook"

	// Name is the hook name of popovers.
	Name = "Popover"
)

// Attr is a single markup attribute.
type Attr struct {
	Key   string
	Value string
}

// String renders the attribute as HTML, escaping the value.
func (a Attr) String() string {
	return a.Key + `="` + html.EscapeString(a.Value) + `"`
}

// Hook creates a hook attribute. The config is serialized to JSON.
// Format: "HookName:{...}"
func Hook(name string, config any) Attr {
	b, _ := json.Marshal(config)
	return Attr{Key: AttrName, Value: name + ":" + string(b)}
}

// Config configures the Popover hook.
type Config struct {
	Content   string `json:"content,omitempty"`
	HTML      bool   `json:"html,omitempty"`
	Click     bool   `json:"click,omitempty"`
	Placement string `json:"placement,omitempty"` // top, bottom-start, right-end, ...

	// Source names a registered content function. It takes precedence
	// over Content.
	Source string `json:"source,omitempty"`
}

// Popover creates a Popover hook attribute.
func Popover(config Config) Attr {
	return Hook(Name, config)
}

// Sources maps names to content functions.
type Sources map[string]func() string

// Split separates a hook attribute value into the hook name and its JSON
// config.
func Split(value string) (name, config string, ok bool) {
	name, config, ok = strings.Cut(value, ":")
	if !ok || name == "" {
		return "", "", false
	}
	return name, config, true
}

// IsPopover reports whether a hook attribute value declares a popover.
func IsPopover(value string) bool {
	name, _, ok := Split(value)
	return ok && name == Name
}

// Decode parses a Popover hook attribute value into its config.
func Decode(value string) (Config, error) {
	name, raw, ok := Split(value)
	if !ok {
		return Config{}, errors.New("P010").WithDetailf("value %q", value)
	}
	if name != Name {
		return Config{}, errors.New("P011").WithDetailf("hook %q", name)
	}

	var c Config
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return Config{}, errors.New("P010").Wrap(err)
		}
	}
	return c, nil
}

// Binding converts the config into a directive binding, resolving Source
// against sources.
func (c Config) Binding(sources Sources) (popover.Binding, error) {
	b := popover.Binding{
		Value: popover.Text(c.Content),
		Arg:   c.Placement,
		Modifiers: popover.Modifiers{
			HTML:  c.HTML,
			Click: c.Click,
		},
	}
	if c.Source != "" {
		fn, ok := sources[c.Source]
		if !ok || fn == nil {
			return popover.Binding{}, errors.New("P012").WithDetailf("source %q", c.Source)
		}
		b.Value = popover.Func(fn)
	}
	return b, nil
}

// Parse decodes a Popover hook attribute value into a binding.
func Parse(value string, sources Sources) (popover.Binding, error) {
	c, err := Decode(value)
	if err != nil {
		return popover.Binding{}, err
	}
	return c.Binding(sources)
}
