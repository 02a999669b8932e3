// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package errors provides structured, user-facing errors for the foundry CLI.
//
// A UserError says what went wrong, why it happened and how to fix it, and
// carries the exit code the process should end with.
//
// # Usage Example
//
// Creating and reporting an error:
//
//	err := errors.NewConfigError(
//	    "Cannot read foundry configuration",
//	    "The file .strata/foundry.yaml is not valid YAML",
//	    "Fix the file or delete it to use the defaults",
//	    parseErr,
//	)
//	errors.FatalError(err, false)
//
// # Formatted Output
//
// Format renders the error for a terminal:
//
//	fmt.Fprint(os.Stderr, err.Format(false))
//	// Output (with colors):
//	// Error: Cannot read foundry configuration
//	// Cause: The file .strata/foundry.yaml is not valid YAML
//	// Fix:   Fix the file or delete it to use the defaults
//
// With --json the same error is written as ErrorJSON:
//
//	// {
//	//   "error": "Cannot read foundry configuration",
//	//   "cause": "The file .strata/foundry.yaml is not valid YAML",
//	//   "fix": "Fix the file or delete it to use the defaults",
//	//   "exit_code": 1
//	// }
//
// # Bridge Errors
//
// Errors coming back from the Strata bridge are translated with FromBridge,
// which picks the exit code from the bridge error kind.
//
// # Exit Codes
//
//   - ExitSuccess (0): Successful execution
//   - ExitConfig (1): Configuration errors, including no open database
//   - ExitDatabase (2): The engine reported a failure
//   - ExitInput (4): Invalid user input
//   - ExitNotFound (6): Requested key, branch or document does not exist
//   - ExitInternal (10): Protocol mismatches and bugs
package errors

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/kraklabs/strata-foundry/pkg/bridge"
	"github.com/kraklabs/strata-foundry/pkg/ffi"
)

// Exit codes for different error categories.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitConfig covers missing or invalid configuration and calls made
	// without an open database.
	ExitConfig = 1

	// ExitDatabase means the engine itself reported a failure.
	ExitDatabase = 2

	// ExitInput indicates invalid arguments or command text.
	ExitInput = 4

	// ExitNotFound indicates a missing key, branch or document.
	ExitNotFound = 6

	// ExitInternal indicates a protocol mismatch or a bug. Exit code 10
	// signals "this is a bug that should be reported".
	ExitInternal = 10
)

// UserError is an error with context for end users.
//
// It carries three levels of information:
//   - Message: what went wrong
//   - Cause: why it happened, often the engine's own reason
//   - Fix: what to do about it
//
// UserError also carries the process exit code and wraps the underlying
// error so errors.Is and errors.As still see bridge errors.
type UserError struct {
	// Message describes what went wrong.
	Message string

	// Cause explains why it happened.
	Cause string

	// Fix is an actionable suggestion. It may be empty.
	Fix string

	// ExitCode is the code FatalError exits with.
	ExitCode int

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface. The underlying error, when present,
// is appended after the message.
func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewConfigError creates an error with exit code ExitConfig.
func NewConfigError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitConfig, Err: err}
}

// NewDatabaseError creates an error with exit code ExitDatabase.
func NewDatabaseError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitDatabase, Err: err}
}

// NewInputError creates an error with exit code ExitInput. Input errors do
// not wrap an underlying error.
func NewInputError(msg, cause, fix string) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitInput}
}

// NewNotFoundError creates an error with exit code ExitNotFound.
func NewNotFoundError(msg, cause, fix string) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitNotFound}
}

// NewInternalError creates an error with exit code ExitInternal.
func NewInternalError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitInternal, Err: err}
}

// reportFix is the Fix of every error that points at a bug.
const reportFix = "This is a bug or a client/engine version mismatch. Please report it with the output of: foundry ping"

// FromBridge turns an error returned by the bridge or the services into a
// UserError. action names what was being attempted, e.g. "Cannot read key".
// A UserError is returned unchanged; nil stays nil.
func FromBridge(action string, err error) *UserError {
	if err == nil {
		return nil
	}
	var ue *UserError
	if goerrors.As(err, &ue) {
		return ue
	}

	var be *bridge.BridgeError
	switch {
	case goerrors.Is(err, ffi.ErrNativeUnavailable):
		return NewConfigError(action,
			"This build does not include the native Strata bridge",
			"Rebuild with CGO_ENABLED=1 -tags strata and libstrata_foundry_bridge on the linker path",
			err)

	case bridge.IsNotOpen(err):
		return NewConfigError(action,
			"No database is open",
			"Pass --db <path> or --memory, or set database.path in .strata/foundry.yaml",
			err)

	case bridge.IsUnsupported(err):
		return NewDatabaseError(action,
			"The engine does not support this command",
			"Upgrade the Strata engine to a version that matches this client",
			err)

	case goerrors.As(err, &be) && be.Kind == bridge.KindBridge:
		cause := be.Reason()
		if cause == "" {
			cause = string(be.Detail)
		}
		return NewDatabaseError(action, cause, "", err)

	case bridge.IsInvalidResponse(err):
		return NewInternalError(action, "The engine returned a reply this client cannot read", reportFix, err)

	case goerrors.Is(err, context.DeadlineExceeded):
		return NewDatabaseError(action,
			"Timed out waiting for the engine",
			"Retry with a larger --timeout",
			err)

	case goerrors.Is(err, bridge.ErrShutdown):
		return NewInternalError(action, "The bridge was already shut down", reportFix, err)

	default:
		return NewInternalError(action, err.Error(), reportFix, err)
	}
}

// Colors used by Format.
var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format returns the error for terminal display: Error in red, Cause in
// yellow, Fix in green. Empty sections are omitted. NO_COLOR and noColor
// disable colors.
//
// Format swaps the global color.NoColor and restores it before returning.
func (e *UserError) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")

	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}
	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}
	return out.String()
}

// ErrorJSON is the --json form of a UserError.
type ErrorJSON struct {
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// ToJSON converts the error to its --json form. Empty Cause and Fix are
// omitted when encoded.
func (e *UserError) ToJSON() ErrorJSON {
	return ErrorJSON{
		Error:    e.Message,
		Cause:    e.Cause,
		Fix:      e.Fix,
		ExitCode: e.ExitCode,
	}
}

// FatalError prints err to stderr and exits. A UserError exits with its
// own code; anything else exits with ExitInternal.
func FatalError(err error, jsonOutput bool) {
	if err == nil {
		return
	}

	var ue *UserError
	if goerrors.As(err, &ue) {
		if jsonOutput {
			enc := json.NewEncoder(os.Stderr)
			enc.SetIndent("", "  ")
			_ = enc.Encode(ue.ToJSON())
		} else {
			fmt.Fprint(os.Stderr, ue.Format(false))
		}
		os.Exit(ue.ExitCode)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(ExitInternal)
}
