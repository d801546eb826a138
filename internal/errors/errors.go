// Package errors defines the structured error taxonomy for configuration
// decoding and the user-facing CLI surface.
//
// Decoding is the only layer that can fail: resolution functions are total
// over well-formed input. A failed decode always yields a structured error
// and never a partially-populated value.
package errors

import (
	"fmt"
	"strings"
)

// DecodeError reports a configuration value that does not match the
// expected shape or type for a field. Field carries the field path.
type DecodeError struct {
	Field   string
	Value   interface{}
	Message string
	Err     error
}

func (e DecodeError) Error() string {
	msg := "decode error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e DecodeError) Unwrap() error {
	return e.Err
}

// UnknownDiscriminatorError reports a tagged field whose value is outside
// its closed legal set.
type UnknownDiscriminatorError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e UnknownDiscriminatorError) Error() string {
	return fmt.Sprintf("unknown value %q for field '%s' (allowed: %s)",
		e.Value, e.Field, strings.Join(e.Allowed, ", "))
}

// InvariantViolationError reports a structurally valid decode that breaks a
// stated invariant. Invariants fail at construction; they are never
// silently corrected.
type InvariantViolationError struct {
	Field   string
	Message string
}

func (e InvariantViolationError) Error() string {
	msg := "invariant violation"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	return msg + ": " + e.Message
}

// UserError represents an error that should be shown to the user with
// helpful context.
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}
