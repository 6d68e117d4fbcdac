// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// File operations
	OpOpenFile  Op = "open video file"
	OpCloseFile Op = "close video file"

	// Decoding operations
	OpDecodeFrame Op = "decode frame"

	// State operations
	OpStateOpen Op = "open state database"
	OpStateLoad Op = "load saved state"
	OpStateSave Op = "save state"

	// Config operations
	OpConfigLoad Op = "load configuration"

	// Comparison operations
	OpDifference Op = "compute frame difference"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
