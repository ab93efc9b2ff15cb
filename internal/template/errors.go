package template

import "fmt"

// ErrorKind classifies template engine errors.
//
// Compile-time kinds (UnterminatedPlaceholder through InvalidFilterArgument)
// are detected once per template and should be treated as fatal configuration
// errors: every subsequent render of the same template would fail identically.
// PathTraversal is the only render-time kind and is detected per item.
type ErrorKind int

const (
	// ErrUnterminatedPlaceholder indicates a '{' without a matching '}',
	// or a bare '{' nested inside a placeholder.
	ErrUnterminatedPlaceholder ErrorKind = iota

	// ErrUnknownField indicates a placeholder or ${...} reference naming
	// a field outside the enumerated field set.
	ErrUnknownField

	// ErrUnknownFilter indicates a filter name not present in the registry.
	ErrUnknownFilter

	// ErrInvalidFilterArity indicates a filter invoked with an argument
	// count outside its declared arity.
	ErrInvalidFilterArity

	// ErrInvalidFilterArgument indicates a malformed filter argument,
	// such as a non-integer index for char or forbidden rule-text syntax.
	ErrInvalidFilterArgument

	// ErrPathTraversal indicates rendered output that would escape the
	// destination root: an absolute path, a '.' or '..' segment, an empty
	// segment, or a path separator introduced by a field or filter value.
	ErrPathTraversal
)

// String returns a short identifier for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnterminatedPlaceholder:
		return "UnterminatedPlaceholder"
	case ErrUnknownField:
		return "UnknownField"
	case ErrUnknownFilter:
		return "UnknownFilter"
	case ErrInvalidFilterArity:
		return "InvalidFilterArity"
	case ErrInvalidFilterArgument:
		return "InvalidFilterArgument"
	case ErrPathTraversal:
		return "PathTraversal"
	default:
		return "Unknown"
	}
}

// Error is the error type returned by Compile, Render and ValidatePath.
//
// Use errors.As to recover the Kind:
//
//	_, err := template.Compile("{TYPO}")
//	var terr *template.Error
//	if errors.As(err, &terr) && terr.Kind == template.ErrUnknownField {
//	    // bad configuration, abort the run
//	}
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Placeholder is the inner text of the placeholder the error occurred
	// in, without braces. Empty for errors outside any placeholder.
	Placeholder string

	// Detail is a human-readable description of the failure.
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Placeholder != "" {
		return fmt.Sprintf("template: in placeholder {%s}: %s", e.Placeholder, e.Detail)
	}
	return "template: " + e.Detail
}

func compileErr(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
