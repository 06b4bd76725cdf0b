// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure for exit-path decisions and display.
type Kind int

const (
	// KindUnknown is the zero value for unclassified errors.
	KindUnknown Kind = iota
	// KindParse marks a malformed input document (configuration fragment,
	// package descriptor). Fragment-level parse failures are logged and
	// skipped by the reader; descriptor parse failures are fatal.
	KindParse
	// KindNotFound marks a missing template, package, or output directory.
	KindNotFound
	// KindValidation marks a missing or invalid CLI option, reported before
	// any I/O happens.
	KindValidation
	// KindIO marks a filesystem read or write failure.
	KindIO
)

// String returns the human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse error"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation error"
	case KindIO:
		return "i/o error"
	default:
		return "error"
	}
}

type (
	// ActionableError is an error with context for user-facing messages.
	// It records what operation failed, what resource was involved, how the
	// failure is classified, and suggestions for fixing it.
	//
	// Use the ErrorContext builder for construction:
	//
	//	err := issue.NewErrorContext().
	//		WithKind(issue.KindNotFound).
	//		WithOperation("render client settings").
	//		WithResource(templatePath).
	//		WithSuggestion("Run 'webdesk build' before generating settings").
	//		Wrap(originalErr).
	//		BuildError()
	ActionableError struct {
		// Kind classifies the failure (parse, not-found, validation, I/O).
		Kind Kind

		// Operation describes what was being attempted (e.g., "read configuration tree").
		Operation string

		// Resource identifies the file, path, or entity involved (optional).
		Resource string

		// Suggestions provides hints on how to fix the issue (optional).
		Suggestions []string

		// Cause is the underlying error that triggered this error (optional).
		Cause error
	}

	// ErrorContext is a builder for constructing ActionableError instances.
	ErrorContext struct {
		kind        Kind
		operation   string
		resource    string
		suggestions []string
		cause       error
	}
)

// NewErrorContext creates a new ErrorContext builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithOperation wraps an error with operation context. Shorthand for
// common wrapping patterns where no further context is available.
func WrapWithOperation(err error, operation string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Cause: err}
}

// KindOf returns the Kind of err if it is (or wraps) an ActionableError,
// KindUnknown otherwise.
func KindOf(err error) Kind {
	var ae *ActionableError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// Error implements the error interface with a concise single-line message.
func (e *ActionableError) Error() string {
	var msg strings.Builder

	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)

	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}

	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}

	return msg.String()
}

// Unwrap returns the underlying cause for use with errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format returns a formatted message. In verbose mode the full error chain
// is appended below the suggestions.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder

	msg.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, suggestion := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(suggestion)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		err := e.Cause
		depth := 1
		for err != nil {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			err = errors.Unwrap(err)
			depth++
		}
	}

	return msg.String()
}

// HasSuggestions reports whether the error carries any suggestions.
func (e *ActionableError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// WithKind sets the failure classification.
func (c *ErrorContext) WithKind(k Kind) *ErrorContext {
	c.kind = k
	return c
}

// WithOperation sets the operation being performed. The operation should be
// a verb phrase like "read configuration tree" or "build package".
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the resource (file, path, entity) involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion adds a suggestion for how to fix the issue. Can be called
// multiple times.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

// Wrap records an underlying error as the cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build creates an ActionableError from the context. Returns nil if no
// operation is set (operation is required).
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}

	return &ActionableError{
		Kind:        c.kind,
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Cause:       c.cause,
	}
}

// BuildError creates an ActionableError and returns it as an error
// interface, for direct use in return statements.
func (c *ErrorContext) BuildError() error {
	ae := c.Build()
	if ae == nil {
		return nil
	}
	return ae
}
