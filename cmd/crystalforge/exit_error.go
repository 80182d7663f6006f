// SPDX-License-Identifier: MPL-2.0

package main

import "fmt"

// ExitError signals a specific non-zero exit code without calling os.Exit
// inside a RunE handler.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the message of the wrapped error, or the exit status.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
