// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - CLI error types and exit code mapping for spnlab.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jeranaias/spnlab/internal/config"
	"github.com/jeranaias/spnlab/internal/runlog"
	"github.com/jeranaias/spnlab/internal/spn"
)

// =============================================================================
// EXIT CODES
// =============================================================================

// Exit codes. Every command maps its failure onto exactly one of
// these; scripts branch on the code without parsing stderr.
const (
	ExitSuccess  = 0 // Command completed
	ExitError    = 1 // Internal fault (run log I/O, unexpected state)
	ExitUsage    = 2 // Bad command line
	ExitConfig   = 3 // Invalid cipher or attack configuration
	ExitFormat   = 4 // Malformed hex input, trail, or block stream
	ExitNotFound = 5 // Missing input file or run record
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError reports a command line the parser understood enough to
// name but not to execute: a missing positional, an unknown
// subcommand, a flag without its value.
type UsageError struct {
	Command string
	Reason  string
}

func (e *UsageError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("usage error: %s", e.Reason)
	}
	return fmt.Sprintf("usage error in %q: %s", e.Command, e.Reason)
}

// NewUsageError creates a UsageError with a formatted reason.
func NewUsageError(command, format string, args ...interface{}) error {
	return &UsageError{Command: command, Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing resource: an input file that does
// not exist or a run record no prefix matches.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// GetExitCode maps an error to its exit code. Typed errors carry
// their category; everything unrecognized is an internal fault.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsage
	}
	// An ambiguous run prefix is the caller's to disambiguate.
	if errors.Is(err, runlog.ErrAmbiguousID) {
		return ExitUsage
	}

	var configErr *spn.ConfigurationError
	if errors.As(err, &configErr) {
		return ExitConfig
	}
	var validationErr config.ValidationError
	if errors.As(err, &validationErr) {
		return ExitConfig
	}
	var validateErrs config.ValidateErrors
	if errors.As(err, &validateErrs) {
		return ExitConfig
	}

	var formatErr *spn.FormatError
	if errors.As(err, &formatErr) {
		return ExitFormat
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return ExitNotFound
	}
	if errors.Is(err, runlog.ErrRunNotFound) || errors.Is(err, fs.ErrNotExist) {
		return ExitNotFound
	}

	return ExitError
}

// IsUsageError reports whether err is a UsageError.
func IsUsageError(err error) bool {
	var usageErr *UsageError
	return errors.As(err, &usageErr)
}

// IsNotFoundError reports whether err maps to ExitNotFound.
func IsNotFoundError(err error) bool {
	return GetExitCode(err) == ExitNotFound
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError prints an error to stderr, styled when the terminal
// supports it.
func DisplayError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle.Render("[ERROR]"), err)
}

// DisplayErrorJSON prints an error as a JSON object to stderr for
// --json consumers.
func DisplayErrorJSON(err error) {
	if err == nil {
		return
	}
	kind := "internal"
	switch GetExitCode(err) {
	case ExitUsage:
		kind = "usage"
	case ExitConfig:
		kind = "configuration"
	case ExitFormat:
		kind = "format"
	case ExitNotFound:
		kind = "not_found"
	}
	payload := map[string]interface{}{
		"error":      err.Error(),
		"error_type": kind,
		"exit_code":  GetExitCode(err),
	}
	encoder := json.NewEncoder(os.Stderr)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(payload)
}

// HandleErrorAndExit displays an error and exits with its mapped
// code. A nil error is a no-op.
func HandleErrorAndExit(err error, jsonMode bool) {
	if err == nil {
		return
	}
	if jsonMode {
		DisplayErrorJSON(err)
	} else {
		DisplayError(err)
	}
	os.Exit(GetExitCode(err))
}
