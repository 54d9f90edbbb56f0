package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryDirective Category = "directive"
	CategoryHook      Category = "hook"
	CategoryConfig    Category = "config"
	CategoryBuild     Category = "build"
	CategoryServer    Category = "server"
	CategoryPublish   Category = "publish"
)

// PopoverError is a structured error with a code, suggestion and
// documentation link.
type PopoverError struct {
	// Code is a unique error identifier (e.g., "P001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *PopoverError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *PopoverError) Unwrap() error {
	return e.Wrapped
}

// Is matches another PopoverError with the same code.
func (e *PopoverError) Is(target error) bool {
	t, ok := target.(*PopoverError)
	return ok && t.Code != "" && t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *PopoverError) WithSuggestion(s string) *PopoverError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *PopoverError) WithDetail(d string) *PopoverError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detail to the error.
func (e *PopoverError) WithDetailf(format string, args ...any) *PopoverError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *PopoverError) Wrap(err error) *PopoverError {
	e.Wrapped = err
	return e
}

// New creates a PopoverError from a registered error code.
func New(code string) *PopoverError {
	template, ok := registry[code]
	if !ok {
		return &PopoverError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &PopoverError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new PopoverError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *PopoverError {
	return &PopoverError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a PopoverError.
func FromError(err error, code string) *PopoverError {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*PopoverError); ok {
		return pe
	}
	return New(code).Wrap(err)
}
