// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing errors with remediation hints.
//
// Build failures in this tool are almost always environmental (a missing
// package list, an absent profile directory, no container engine on PATH),
// so errors carry the failed operation, the resource involved, and concrete
// suggestions for fixing the setup.
package issue

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Error is an error with enough context to tell the user what to do next.
type Error struct {
	// Op describes what was being attempted, as a verb phrase
	// ("sort package list", "run mkarchiso").
	Op string

	// Resource identifies the file, directory, or tool involved (optional).
	Resource string

	// Hints are remediation suggestions shown under the message (optional).
	Hints []string

	// Cause is the underlying error (optional).
	Cause error
}

// New creates an Error for the given operation.
func New(op string) *Error {
	return &Error{Op: op}
}

// Wrap attaches a cause and returns the receiver for chaining.
func (e *Error) Wrap(err error) *Error {
	e.Cause = err
	return e
}

// On attaches the resource involved and returns the receiver for chaining.
func (e *Error) On(resource string) *Error {
	e.Resource = resource
	return e
}

// Hint appends remediation suggestions and returns the receiver for chaining.
func (e *Error) Hint(hints ...string) *Error {
	e.Hints = append(e.Hints, hints...)
	return e
}

// Error implements the error interface with the concise one-line form.
func (e *Error) Error() string {
	var msg strings.Builder
	msg.WriteString("failed to ")
	msg.WriteString(e.Op)
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

// Unwrap returns the cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Suggestions returns a copy of the remediation hints.
func (e *Error) Suggestions() []string {
	return slices.Clone(e.Hints)
}

// Format renders the error for terminal display. Hints are listed as
// bullets under the message; verbose mode appends the full cause chain.
func (e *Error) Format(verbose bool) string {
	var msg strings.Builder
	msg.WriteString(e.Error())

	for _, hint := range e.Hints {
		msg.WriteString("\n  • ")
		msg.WriteString(hint)
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			depth++
		}
	}

	return msg.String()
}
