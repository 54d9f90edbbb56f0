package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://vango.dev/docs/popover/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Directive (P001-P009)
	"P001": {
		Category: CategoryDirective,
		Message:  "Popover already attached",
		Detail:   "Attach was called for an element that already has a popover. Use Update to change its binding.",
		DocURL:   docBase + "P001",
	},
	"P002": {
		Category: CategoryDirective,
		Message:  "Popover not attached",
		Detail:   "Update was called for an element without a popover.",
		DocURL:   docBase + "P002",
	},
	"P003": {
		Category: CategoryDirective,
		Message:  "Nil element",
		Detail:   "The directive needs a trigger element.",
		DocURL:   docBase + "P003",
	},

	// Hooks (P010-P019)
	"P010": {
		Category: CategoryHook,
		Message:  "Malformed hook attribute",
		Detail:   `Hook attributes have the form Name:{json}, e.g. Popover:{"content":"Hi"}.`,
		DocURL:   docBase + "P010",
	},
	"P011": {
		Category: CategoryHook,
		Message:  "Not a popover hook",
		DocURL:   docBase + "P011",
	},
	"P012": {
		Category: CategoryHook,
		Message:  "Unknown content source",
		Detail:   "The hook names a content source that was not registered with the host.",
		DocURL:   docBase + "P012",
	},

	// Configuration (P020-P029)
	"P020": {
		Category: CategoryConfig,
		Message:  "Cannot read configuration",
		DocURL:   docBase + "P020",
	},
	"P021": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		DocURL:   docBase + "P021",
	},
	"P022": {
		Category: CategoryConfig,
		Message:  "Cannot write configuration",
		DocURL:   docBase + "P022",
	},

	// Build (P030-P039)
	"P030": {
		Category: CategoryBuild,
		Message:  "WebAssembly build failed",
		DocURL:   docBase + "P030",
	},
	"P031": {
		Category: CategoryBuild,
		Message:  "wasm_exec.js not found",
		Detail:   "The Go installation does not ship the WebAssembly support script.",
		DocURL:   docBase + "P031",
	},

	// Server (P040-P049)
	"P040": {
		Category: CategoryServer,
		Message:  "Dev server failed",
		DocURL:   docBase + "P040",
	},

	// Publish (P050-P059)
	"P050": {
		Category: CategoryPublish,
		Message:  "No publish bucket configured",
		Detail:   "Set publish.bucket in the configuration or pass --bucket.",
		DocURL:   docBase + "P050",
	},
	"P051": {
		Category: CategoryPublish,
		Message:  "Missing AWS credentials",
		Detail:   "AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set.",
		DocURL:   docBase + "P051",
	},
	"P052": {
		Category: CategoryPublish,
		Message:  "Upload failed",
		DocURL:   docBase + "P052",
	},
}

// Lookup returns the template for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
