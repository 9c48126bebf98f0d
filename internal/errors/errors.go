package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates client specified an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeInternal indicates internal system error
	CodeInternal Code = "internal"

	// CodeParse indicates malformed reference syntax
	CodeParse Code = "parse_error"

	// CodeMissingReference indicates a required reference matched nothing
	CodeMissingReference Code = "missing_reference"

	// CodeCatalogLoad indicates a catalog document could not be read or decoded
	CodeCatalogLoad Code = "catalog_load"

	// CodeSelection indicates a weighted selection was asked to pick from nothing
	CodeSelection Code = "selection"
)

// Meta keys used by the content errors
const (
	MetaInput       = "input"
	MetaSubstring   = "substring"
	MetaPosition    = "position"
	MetaReference   = "reference"
	MetaSegment     = "segment"
	MetaSuggestions = "suggestions"
	MetaResource    = "resource"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	// If it's already our error type, preserve the code
	var rcErr *Error
	if errors.As(err, &rcErr) {
		return &Error{
			Code:    rcErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(rcErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// ParseError reports malformed reference syntax. position is the byte offset
// of substring within input.
func ParseError(input string, position int, substring, reason string) *Error {
	return Newf(CodeParse, "invalid reference %q at position %d (%q): %s", input, position, substring, reason).
		WithMeta(MetaInput, input).
		WithMeta(MetaSubstring, substring).
		WithMeta(MetaPosition, position)
}

// MissingReference reports a required reference that resolved to nothing.
// segment names the property that was missing, empty when no entry matched.
func MissingReference(reference, segment string) *Error {
	var err *Error
	if segment == "" {
		err = Newf(CodeMissingReference, "reference %s matched no entries", reference)
	} else {
		err = Newf(CodeMissingReference, "reference %s has no property %q", reference, segment).
			WithMeta(MetaSegment, segment)
	}
	return err.WithMeta(MetaReference, reference)
}

// CatalogLoad reports a catalog resource that could not be read or decoded
func CatalogLoad(resource string, cause error) *Error {
	return &Error{
		Code:    CodeCatalogLoad,
		Message: fmt.Sprintf("failed to load catalog %s", resource),
		Cause:   cause,
		Meta:    map[string]any{MetaResource: resource},
	}
}

// Selection reports a weighted selection over an empty candidate list
func Selection(message string) *Error {
	return New(CodeSelection, message)
}

// Error checking functions

// Is checks if the outermost coded error has a specific code
func Is(err error, code Code) bool {
	var rcErr *Error
	if errors.As(err, &rcErr) {
		return rcErr.Code == code
	}
	return false
}

// Has checks every coded error in the chain for a specific code
func Has(err error, code Code) bool {
	for err != nil {
		var rcErr *Error
		if !errors.As(err, &rcErr) {
			return false
		}
		if rcErr.Code == code {
			return true
		}
		err = rcErr.Cause
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsParseError checks if the error is a reference parse error
func IsParseError(err error) bool {
	return Is(err, CodeParse)
}

// IsMissingReference checks if the error is a missing reference error
func IsMissingReference(err error) bool {
	return Is(err, CodeMissingReference)
}

// IsCatalogLoad checks if the error is a catalog load error
func IsCatalogLoad(err error) bool {
	return Is(err, CodeCatalogLoad)
}

// IsSelection checks if the error is a selection error
func IsSelection(err error) bool {
	return Is(err, CodeSelection)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var rcErr *Error
	if errors.As(err, &rcErr) {
		return rcErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var rcErr *Error
	if errors.As(err, &rcErr) {
		return rcErr.Meta
	}
	return nil
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
